package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/matzehuels/stackchart/pkg/buildinfo"
	"github.com/matzehuels/stackchart/pkg/core/chart"
	"github.com/matzehuels/stackchart/pkg/core/scrub"
	"github.com/matzehuels/stackchart/pkg/core/transition"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/frame"
	chartio "github.com/matzehuels/stackchart/pkg/io"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

// handleRender builds the chart in the body and renders one format.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cfg, err := decodeConfig(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := renderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	f, frameHit, err := s.runner.BuildWithCacheInfo(ctx, cfg, opts.Refresh)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	artifacts, artifactHit, err := s.runner.RenderWithCacheInfo(ctx, f, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Frame-ID", f.ID)
	w.Header().Set("X-Chart-Warnings", strconv.Itoa(len(f.Warnings)))
	w.Header().Set("X-Cache", cacheStatus(frameHit && artifactHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func renderOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Style:   q.Get("style"),
		Grid:    q.Get("grid") == "true",
		Legend:  q.Get("legend") == "true",
		Refresh: q.Get("refresh") == "true",
	}
	if format := q.Get("format"); format != "" {
		opts.Formats = []string{format}
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid scale %q", v)
		}
		opts.Scale = scale
	}
	if err := opts.ValidateForRender(); err != nil {
		return opts, err
	}
	return opts, nil
}

// animateRequest is the body of /v1/animate. A missing From animates the
// target in from its baseline.
type animateRequest struct {
	From       *chart.Config    `json:"from,omitempty"`
	To         chart.Config     `json:"to"`
	FPS        int              `json:"fps,omitempty"`
	Transition *transition.Spec `json:"transition,omitempty"`
}

type animateResponse struct {
	Frames []*frame.Frame `json:"frames"`
}

func (s *Server) handleAnimate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req animateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	var from *frame.Frame
	if req.From != nil {
		f, err := s.runner.Build(ctx, *req.From)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		from = f
	}
	to, err := s.runner.Build(ctx, req.To)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	frames, err := s.runner.Animate(ctx, from, to, pipeline.Options{FPS: req.FPS, Transition: req.Transition})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, animateResponse{Frames: frames})
}

func (s *Server) handleTicks(w http.ResponseWriter, r *http.Request) {
	var req pipeline.TickRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	ticks, err := pipeline.PlanTicks(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ticks": ticks})
}

// scrubRequest is the body of /v1/scrub. Sorted selects the binary search
// for pixels known to be monotonic; otherwise every pixel is scanned.
type scrubRequest struct {
	Pixels []float64 `json:"pixels"`
	Target float64   `json:"target"`
	Sorted bool      `json:"sorted,omitempty"`
}

func (s *Server) handleScrub(w http.ResponseWriter, r *http.Request) {
	var req scrubRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	index := scrub.NearestIndexLinear(req.Pixels, req.Target)
	if req.Sorted {
		index = scrub.NearestIndexSorted(req.Pixels, req.Target)
	}
	writeJSON(w, http.StatusOK, map[string]int{"index": index})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "stats are disabled"))
		return
	}
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

// decodeConfig reads a chart config in the encoding named by the request
// content type. JSON is the default.
func decodeConfig(w http.ResponseWriter, r *http.Request) (chart.Config, error) {
	format := chartio.FormatJSON
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil {
		switch mt {
		case "application/toml":
			format = chartio.FormatTOML
		case "application/yaml", "application/x-yaml", "text/yaml":
			format = chartio.FormatYAML
		}
	}
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	return chartio.DecodeConfig(body, format)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

type errorResponse struct {
	Code      errors.Code `json:"code,omitempty"`
	Error     string      `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

// writeError maps an error to its status code and writes it as JSON.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= 500 {
		s.logger.Error("request failed", "id", RequestIDFromContext(r.Context()), "err", err)
	}
	writeJSON(w, status, errorResponse{
		Code:      errors.GetCode(err),
		Error:     message(err),
		RequestID: RequestIDFromContext(r.Context()),
	})
}

// message returns the user facing text of err, keeping the cause of
// wrapped errors.
func message(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) && e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return errors.UserMessage(err)
}

func statusOf(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidScale, errors.ErrCodeInvalidGradient,
		errors.ErrCodeInvalidSeries, errors.ErrCodeInvalidTransition, errors.ErrCodeInvalidPath,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
