package styles

import (
	"bytes"
	"encoding/xml"
)

// charWidth approximates the advance of one character relative to the
// font size.
const charWidth = 0.55

// TextWidth estimates the rendered width of s at the given font size.
func TextWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * charWidth
}

// Truncate shortens s to fit width at the given font size, ending in "..".
func Truncate(s string, width, size float64) string {
	r := []rune(s)
	maxChars := max(3, int(width/(size*charWidth)))
	if len(r) <= maxChars {
		return s
	}
	return string(r[:maxChars-2]) + ".."
}

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
