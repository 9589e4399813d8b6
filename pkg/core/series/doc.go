// Package series holds ingested chart data.
//
// Each data point is a [Value]: a gap, a scalar, or a pre-stacked [lo, hi]
// range. The variant is decided once by [Ingest], so layout code switches on
// Value.Kind instead of inspecting raw shapes. A series either contains
// scalars or ranges, never both.
//
// Raw data arrives from JSON, TOML or YAML decoders as []any; [ParseValue]
// accepts the number types each decoder produces. TOML has no null, so the
// strings "null" and "" and NaN also denote gaps.
package series
