package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/stackchart/pkg/frame"
	"github.com/matzehuels/stackchart/pkg/render/sink"
	"github.com/matzehuels/stackchart/pkg/render/sink/styles"
)

// RenderFrame draws f in every format of opts. Options must be validated.
func RenderFrame(ctx context.Context, f *frame.Frame, opts Options) (map[string][]byte, error) {
	svgOpts, err := svgOptions(opts)
	if err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(f, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, f, sink.WithScale(opts.Scale), sink.WithPNGSVGOptions(svgOpts...))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, f, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(f)
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

func svgOptions(opts Options) ([]sink.SVGOption, error) {
	style, err := styles.Lookup(opts.Style)
	if err != nil {
		return nil, err
	}
	svgOpts := []sink.SVGOption{sink.WithStyle(style)}
	if opts.Grid {
		svgOpts = append(svgOpts, sink.WithGrid())
	}
	if opts.Legend {
		svgOpts = append(svgOpts, sink.WithLegend())
	}
	return svgOpts, nil
}
