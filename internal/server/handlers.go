package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/archscope/archscope/pkg/analysis"
	"github.com/archscope/archscope/pkg/buildinfo"
	"github.com/archscope/archscope/pkg/cache"
	"github.com/archscope/archscope/pkg/depgraph"
	"github.com/archscope/archscope/pkg/errors"
	"github.com/archscope/archscope/pkg/facts"
	"github.com/archscope/archscope/pkg/observability"
	"github.com/archscope/archscope/pkg/report"
)

// impactRequest asks for the blast radius (or ancestors) of one service.
type impactRequest struct {
	Service   string    `json:"service"`
	Ancestors bool      `json:"ancestors,omitempty"`
	Facts     facts.Set `json:"facts"`
}

// sharedRequest asks for the dependencies common to a set of services.
type sharedRequest struct {
	Services []string  `json:"services"`
	Facts    facts.Set `json:"facts"`
}

// errorEnvelope is the JSON error response body.
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// healthResponse is the /healthz response body.
type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Version:   buildinfo.Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// handleAnalyze runs the full analysis over the posted facts document.
// Identical documents (after canonical ordering) are served from the cache.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	set, err := facts.ReadSet(r.Body)
	if err != nil {
		s.writeError(w, err)
		return
	}

	doc, err := facts.MarshalSet(set)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "canonicalize facts"))
		return
	}
	key := cache.ReportKey(doc)

	if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		writeRawJSON(w, http.StatusOK, data)
		return
	} else if err != nil {
		s.logger.Warn("cache read failed", "err", err)
	}

	observability.Analysis().OnAnalyzeStart(ctx, len(set.Services), len(set.Layers))
	g := depgraph.Build(set.Services, set.Layers)
	rep := report.Build(ctx, g)

	data, err := report.Marshal(rep)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode report"))
		return
	}

	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("cache write failed", "err", err)
	}
	s.persist(r, rep)

	writeRawJSON(w, http.StatusOK, data)
}

// handleImpact computes the blast radius of one service, or its ancestors
// when the request sets "ancestors": true.
func (s *Server) handleImpact(w http.ResponseWriter, r *http.Request) {
	var req impactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode impact request"))
		return
	}
	if err := errors.ValidateServiceName(req.Service); err != nil {
		s.writeError(w, err)
		return
	}
	if err := facts.Validate(req.Facts); err != nil {
		s.writeError(w, err)
		return
	}

	g := depgraph.Build(req.Facts.Services, req.Facts.Layers)
	if req.Ancestors {
		result, ok := analysis.Ancestors(g, req.Service)
		if !ok {
			s.writeError(w, errors.New(errors.ErrCodeServiceNotFound, "unknown service %q", req.Service))
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}
	result, ok := analysis.BlastRadius(g, req.Service)
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeServiceNotFound, "unknown service %q", req.Service))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleShared computes the common ancestors of the requested services.
func (s *Server) handleShared(w http.ResponseWriter, r *http.Request) {
	var req sharedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode shared request"))
		return
	}
	if len(req.Services) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "at least one service is required"))
		return
	}
	if err := facts.Validate(req.Facts); err != nil {
		s.writeError(w, err)
		return
	}

	g := depgraph.Build(req.Facts.Services, req.Facts.Layers)
	writeJSON(w, http.StatusOK, analysis.CommonAncestors(g, req.Services))
}

// handleGetReport serves a previously archived report.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "report archive is not configured"))
		return
	}
	id := chi.URLParam(r, "id")
	rep, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// persist archives the report when a store is configured. Archive failures
// are logged, never surfaced: the response is already computed.
func (s *Server) persist(r *http.Request, rep *report.Report) {
	if s.store == nil {
		return
	}
	ctx := r.Context()
	err := cache.RetryWithBackoff(ctx, func() error {
		return cache.Retryable(s.store.Put(ctx, rep))
	})
	if err != nil {
		s.logger.Warn("archive report failed", "id", rep.ID, "err", err)
		return
	}
	s.logger.Debug("archived report", "id", rep.ID)
}

// writeError maps a structured error code to an HTTP status and writes the
// JSON error envelope.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	writeJSON(w, status, errorEnvelope{Error: errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFacts, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidService, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeServiceNotFound, errors.ErrCodeReportNotFound,
		errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeRawJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
