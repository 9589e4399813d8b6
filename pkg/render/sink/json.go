package sink

import "github.com/matzehuels/stackchart/pkg/frame"

// RenderJSON serializes the frame in its wire format.
func RenderJSON(f *frame.Frame) ([]byte, error) {
	return frame.Marshal(f)
}
