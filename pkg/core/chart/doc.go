// Package chart turns a declarative [Config] into the read-only [Context]
// of a render pass.
//
// [Build] ingests the series, derives a domain per y axis (stacked sums
// for stacked series, always including zero for bar charts unless the axis
// is logarithmic, overridden by configured bounds) and builds one scale per
// axis. Problems that affect a single element become [Warning] values: a
// malformed series is skipped, a log axis over a domain that touches zero
// falls back to linear. The rest of the chart keeps rendering.
package chart
