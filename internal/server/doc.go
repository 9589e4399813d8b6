// Package server exposes the chart pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz            liveness and build info
//	POST /v1/render          chart config → svg, png, pdf or json (?format=)
//	POST /v1/animate         two chart configs → JSON frames
//	POST /v1/ticks           axis description → planned ticks
//	POST /v1/scrub           pixels and a pointer position → nearest index
//	GET  /v1/stats           pipeline, cache and request counters
//
// Chart configs are JSON by default. Bodies sent as application/toml or
// application/yaml are decoded with the matching config decoder.
//
// Every response carries an X-Request-ID header. An incoming id is kept
// when it is a valid UUID; otherwise a new one is generated. Errors are
// JSON objects of the form {"code": "...", "error": "...", "request_id": "..."}.
package server
