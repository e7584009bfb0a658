package pipeline

import (
	"fmt"

	"github.com/matzehuels/callsheet/pkg/layout"
	"github.com/matzehuels/callsheet/pkg/render/sink"
	"github.com/matzehuels/callsheet/pkg/sheet"
)

// Render generates output artifacts in the requested formats.
func Render(plan layout.Plan, doc *sheet.Document, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	sinkOpts := []sink.Option{sink.WithScale(opts.Scale)}
	if opts.Print {
		sinkOpts = append(sinkOpts, sink.WithPrint())
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = sink.RenderJSON(plan)
		case FormatXLSX:
			data, err = sink.RenderXLSX(plan, doc, sinkOpts...)
		case FormatText:
			data, err = sink.RenderText(plan, doc, sinkOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(plan, sinkOpts...)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
