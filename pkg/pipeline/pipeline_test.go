package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/callsheet/pkg/cache"
	"github.com/matzehuels/callsheet/pkg/errors"
	"github.com/matzehuels/callsheet/pkg/layout"
	"github.com/matzehuels/callsheet/pkg/observability"
	"github.com/matzehuels/callsheet/pkg/render/sink"
	"github.com/matzehuels/callsheet/pkg/sheet"
)

const testDoc = `title: Week 7
opponent: Rivals
format: 2-page
sections:
  - title: OPENERS
    boxes:
      - type: script
        header: OPENERS
        locked: true
        position: {row: 0, col: 0}
        script:
          - {label: "1", left: Trips Rt 24 Power}
          - {label: "2", left: Gun Lt 52 Mesh, right: Y Cross}
      - type: list
        header: SHORT YARDAGE
        items: [Sneak, Wedge]
  - title: RED ZONE
    page: 2
    boxes:
      - type: fzdnd
        row_count: 2
        columns: [LEFT, MIDDLE, RIGHT]
        cells: [[Fade, "", Slant]]
`

func writeDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "week7.yaml")
	if err := os.WriteFile(path, []byte(testDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"xlsx", false},
		{"txt", false},
		{"png", false},
		{"svg", true},
		{"JSON", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want %s", tt.format, errors.GetCode(err), errors.ErrCodeInvalidFormat)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"json", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"json", "pdf"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidatePageFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"", false},
		{"2-page", false},
		{"4-page", false},
		{"3-page", true},
	}
	for _, tt := range tests {
		err := ValidatePageFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePageFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
	if err := ValidateOrientation("sideways"); !errors.Is(err, errors.ErrCodeInvalidOrientation) {
		t.Errorf("ValidateOrientation(sideways) = %v, want %s", err, errors.ErrCodeInvalidOrientation)
	}
	if err := ValidateOrientation("portrait"); err != nil {
		t.Errorf("ValidateOrientation(portrait) = %v", err)
	}
}

func TestOptions_ValidateAndSetDefaults(t *testing.T) {
	var empty Options
	if err := empty.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing input: err = %v, want %s", err, errors.ErrCodeInvalidInput)
	}

	bad := Options{Input: "../escape.yaml"}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("bad path: err = %v, want %s", err, errors.ErrCodeInvalidPath)
	}

	opts := Options{Input: "week7.yaml", PageFormat: " 4-PAGE ", Orientation: "Portrait"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() = %v", err)
	}
	if opts.PageFormat != "4-page" || opts.Orientation != "portrait" {
		t.Errorf("layout options = %q %q, want normalized", opts.PageFormat, opts.Orientation)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %d, want %d", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent.
	opts.Formats = []string{"bogus"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second ValidateAndSetDefaults() = %v, want nil", err)
	}
}

func TestOptions_ScaleBounds(t *testing.T) {
	for _, scale := range []int{1, 1_000_000} {
		opts := Options{Input: "week7.yaml", Scale: scale}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatalf("ValidateAndSetDefaults() = %v", err)
		}
		if opts.Scale < sink.MinScale || opts.Scale > sink.MaxScale {
			t.Errorf("Scale %d = %d, want within %d..%d", scale, opts.Scale, sink.MinScale, sink.MaxScale)
		}
	}
}

func TestOptions_LayoutKeyOpts(t *testing.T) {
	doc := &sheet.Document{Format: sheet.FormatFourPage}

	var opts Options
	got := opts.LayoutKeyOpts(doc)
	if got.Format != "4-page" || got.Orientation != "landscape" {
		t.Errorf("LayoutKeyOpts() = %+v, want document format and default orientation", got)
	}

	opts = Options{PageFormat: "2-page", Orientation: "portrait", Editing: true}
	got = opts.LayoutKeyOpts(doc)
	want := cache.LayoutKeyOpts{Format: "2-page", Orientation: "portrait", Editing: true}
	if got != want {
		t.Errorf("LayoutKeyOpts() = %+v, want %+v", got, want)
	}

	if k := opts.ArtifactKeyOpts(FormatXLSX); k.Scale != 0 {
		t.Errorf("xlsx key carries scale %d", k.Scale)
	}
	opts.Scale = 20
	if k := opts.ArtifactKeyOpts(FormatPNG); k.Scale != 20 {
		t.Errorf("png key scale = %d, want 20", k.Scale)
	}
}

func TestLoad(t *testing.T) {
	doc, err := Load(writeDoc(t))
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(doc.Sections))
	}
	for _, s := range doc.Sections {
		if s.ID == "" {
			t.Errorf("section %q has no ID after Load", s.Title)
		}
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) = %v, want %s", err, errors.ErrCodeFileNotFound)
	}

	invalid := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(invalid, []byte(`{"format": "9-page", "sections": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("Load(invalid) = %v, want %s", err, errors.ErrCodeInvalidDocument)
	}
}

func TestComputeLayout(t *testing.T) {
	doc, err := Load(writeDoc(t))
	if err != nil {
		t.Fatal(err)
	}

	plan, err := ComputeLayout(doc, Options{})
	if err != nil {
		t.Fatalf("ComputeLayout() = %v", err)
	}
	if plan.Format != sheet.FormatTwoPage || len(plan.Pages) != 2 {
		t.Errorf("plan = %s with %d pages, want 2-page with 2", plan.Format, len(plan.Pages))
	}

	plan, err = ComputeLayout(doc, Options{PageFormat: "4-page"})
	if err != nil {
		t.Fatalf("ComputeLayout(4-page) = %v", err)
	}
	if len(plan.Print) == 0 {
		t.Error("4-page plan has no print pages")
	}

	if _, err := ComputeLayout(doc, Options{PageFormat: "1-page"}); !errors.Is(err, errors.ErrCodeInvalidPageFormat) {
		t.Errorf("ComputeLayout(1-page) = %v, want %s", err, errors.ErrCodeInvalidPageFormat)
	}
}

func TestRender(t *testing.T) {
	doc, err := Load(writeDoc(t))
	if err != nil {
		t.Fatal(err)
	}
	plan := layout.Build(doc, layout.Options{})

	artifacts, err := Render(plan, doc, Options{Formats: []string{"json", "xlsx", "txt", "png"}})
	if err != nil {
		t.Fatalf("Render() = %v", err)
	}
	for _, f := range []string{"json", "xlsx", "txt", "png"} {
		if len(artifacts[f]) == 0 {
			t.Errorf("artifact %s is empty", f)
		}
	}
	if !strings.Contains(string(artifacts["txt"]), "SHORT YARDAGE") {
		t.Error("text artifact misses box header")
	}

	if _, err := Render(plan, doc, Options{Formats: []string{"pdf"}}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Render(pdf) = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

type countingHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets map[string]int
}

func newCountingHooks() *countingHooks {
	return &countingHooks{hits: map[string]int{}, misses: map[string]int{}, sets: map[string]int{}}
}

func (h *countingHooks) OnCacheHit(_ context.Context, keyType string)     { h.hits[keyType]++ }
func (h *countingHooks) OnCacheMiss(_ context.Context, keyType string)    { h.misses[keyType]++ }
func (h *countingHooks) OnCacheSet(_ context.Context, keyType string, _ int) { h.sets[keyType]++ }

func TestRunner_Execute(t *testing.T) {
	hooks := newCountingHooks()
	observability.SetCacheHooks(hooks)
	t.Cleanup(observability.Reset)

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	ctx := context.Background()
	opts := Options{Input: writeDoc(t), Formats: []string{"json", "txt"}}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() = %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", first.CacheInfo)
	}
	if first.Stats.Pages != 2 || first.Stats.Boxes != 3 {
		t.Errorf("Stats = %+v, want 2 pages and 3 boxes", first.Stats.Stats)
	}
	if first.DocHash == "" {
		t.Error("DocHash is empty")
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() second run = %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if string(second.Artifacts["txt"]) != string(first.Artifacts["txt"]) {
		t.Error("cached text artifact differs")
	}

	opts.Refresh = true
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() refresh = %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh CacheInfo = %+v, want misses", third.CacheInfo)
	}

	if hooks.hits["layout"] != 1 || hooks.hits["artifact"] != 2 {
		t.Errorf("hits = %v, want layout 1 and artifact 2", hooks.hits)
	}
	if hooks.sets["layout"] != 2 || hooks.sets["artifact"] != 4 {
		t.Errorf("sets = %v, want layout 2 and artifact 4", hooks.sets)
	}
}

func TestRunner_ExecuteMissingFile(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), Options{Input: filepath.Join(t.TempDir(), "gone.toml")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Execute() = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestRunner_Canceled(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runner.Execute(ctx, Options{Input: writeDoc(t)}); err == nil {
		t.Error("Execute() with canceled context should fail")
	}
}
