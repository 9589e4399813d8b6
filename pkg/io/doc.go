// Package io loads chart configurations and writes laid out frames.
//
// # Config Formats
//
// A chart is declared in TOML, YAML or JSON. [ReadConfig] picks the decoder
// from the file extension; [DecodeConfig] reads from any io.Reader:
//
//	cfg, err := io.ReadConfig("sales.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The same chart in TOML:
//
//	title = "Sales"
//	categories = ["Mon", "Tue", "Wed"]
//
//	[[series]]
//	id = "north"
//	stack_id = "region"
//	data = [4, 6, "null"]
//
//	[[series]]
//	id = "band"
//	data = [[1, 3], [2, 5], [0, 4]]
//
// TOML has no null, so gaps are written as "null", "nan" or "". YAML and
// JSON may use null directly. Unknown keys are rejected in every format so
// that typos surface instead of silently falling back to defaults.
//
// # Frames
//
// [WriteFrameJSON] and [ExportFrame] write a laid out frame as indented
// JSON, the same document the json render format produces.
package io
