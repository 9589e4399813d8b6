package io

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/stackchart/pkg/frame"
)

// WriteFrameJSON encodes f as indented JSON and writes it to w. The output
// can be read back with [frame.Unmarshal].
func WriteFrameJSON(f *frame.Frame, w io.Writer) error {
	data, err := frame.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// ExportFrame writes f to a JSON file at path.
func ExportFrame(f *frame.Frame, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteFrameJSON(f, out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
