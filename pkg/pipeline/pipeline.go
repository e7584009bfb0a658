// Package pipeline runs the call-sheet pipeline: load → layout → render.
//
// The CLI (and anything else embedding callsheet) goes through this package
// so that defaults, validation and caching behave the same everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read a document file, validate it and fill in missing IDs
//  2. Layout: place boxes, number rows and assign sections to pages
//  3. Render: write the plan as json, xlsx, txt or png
//
// Each stage can be run on its own or through [Runner.Execute].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "week7.yaml",
//	    Formats: []string{"xlsx"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	xlsx := result.Artifacts["xlsx"]
//
// Run individual stages:
//
//	doc, err := runner.Load(ctx, opts)
//	plan, err := runner.ComputeLayout(ctx, doc, opts)
//	artifacts, err := runner.Render(ctx, plan, doc, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/callsheet/pkg/cache"
	"github.com/matzehuels/callsheet/pkg/errors"
	"github.com/matzehuels/callsheet/pkg/layout"
	"github.com/matzehuels/callsheet/pkg/render/sink"
	"github.com/matzehuels/callsheet/pkg/sheet"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultScale is the PNG size of one grid row in pixels.
const DefaultScale = 14

// Output formats.
const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"
	FormatText = "txt"
	FormatPNG  = "png"
)

// DefaultFormats are rendered when no format is requested.
var DefaultFormats = []string{FormatJSON}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatXLSX: true,
	FormatText: true,
	FormatPNG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Load options
	Input   string `json:"input,omitempty"`
	Refresh bool   `json:"refresh,omitempty"` // bypass cached plans and artifacts

	// Layout options. Empty values fall back to the document's settings.
	PageFormat  string `json:"page_format,omitempty"`
	Orientation string `json:"orientation,omitempty"`
	Editing     bool   `json:"editing,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Print   bool     `json:"print,omitempty"` // render booklet print pages
	Scale   int      `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the loaded and normalized document.
	Document *sheet.Document

	// DocHash is the content hash of the normalized document.
	DocHash string

	// Plan is the computed layout.
	Plan layout.Plan

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains counts and timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	layout.Stats
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the plan came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that an output format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, xlsx, txt, png)", format)
	}
	return nil
}

// ValidateFormats checks that all output formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePageFormat checks a page format. Empty means "use the document's".
func ValidatePageFormat(format string) error {
	if format != "" && !sheet.PageFormat(format).Valid() {
		return errors.New(errors.ErrCodeInvalidPageFormat, "invalid page format: %q (must be 2-page or 4-page)", format)
	}
	return nil
}

// ValidateOrientation checks an orientation. Empty means "use the document's".
func ValidateOrientation(orientation string) error {
	if orientation != "" && !sheet.Orientation(orientation).Valid() {
		return errors.New(errors.ErrCodeInvalidOrientation, "invalid orientation: %q (must be portrait or landscape)", orientation)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the input path.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input document is required")
	}
	if err := errors.ValidatePath(o.Input); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults normalizes layout options.
func (o *Options) SetLayoutDefaults() {
	o.PageFormat = strings.ToLower(strings.TrimSpace(o.PageFormat))
	o.Orientation = strings.ToLower(strings.TrimSpace(o.Orientation))
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidatePageFormat(o.PageFormat); err != nil {
		return err
	}
	return ValidateOrientation(o.Orientation)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	o.Scale = min(max(o.Scale, sink.MinScale), sink.MaxScale)
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LayoutOptions resolves the layout options against a document.
func (o *Options) LayoutOptions(doc *sheet.Document) layout.Options {
	return layout.Options{
		Format:      sheet.PageFormat(o.PageFormat),
		Orientation: sheet.Orientation(o.Orientation),
		Editing:     o.Editing,
	}.Resolve(doc)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts(doc *sheet.Document) cache.LayoutKeyOpts {
	lo := o.LayoutOptions(doc)
	return cache.LayoutKeyOpts{
		Format:      string(lo.Format),
		Orientation: string(lo.Orientation),
		Editing:     lo.Editing,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Print: o.Print}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
