package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/katalvlaran/kgraph/core"
	"github.com/katalvlaran/kgraph/tool"
)

// ErrorBody is the error envelope of every failed request.
type ErrorBody struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails describes a failure. Code is a tool.Outcome* label or "too_large".
type ErrorDetails struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ResultBody wraps a successful tool result.
type ResultBody struct {
	Result any `json:"result"`
}

// HealthBody is returned by /healthz.
type HealthBody struct {
	Status string          `json:"status"`
	Graph  core.GraphStats `json:"graph"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthBody{Status: "ok", Graph: s.registry.Stats()})
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]tool.Tool{"tools": s.registry.Tools()})
}

func (s *Server) handleCallTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes()))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge, "too_large", err)
			return
		}
		s.writeError(w, r, http.StatusBadRequest, tool.OutcomeInvalidArgs, err)
		return
	}

	res, err := s.registry.Call(r.Context(), name, body)
	if err != nil {
		outcome := tool.Outcome(err)
		s.writeError(w, r, statusFor(outcome), outcome, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ResultBody{Result: res})
}

func (s *Server) maxBodyBytes() int64 {
	if s.cfg.MaxBodyBytes > 0 {
		return s.cfg.MaxBodyBytes
	}

	return 1 << 20
}

// statusFor maps a call outcome to an HTTP status.
func statusFor(outcome string) int {
	switch outcome {
	case tool.OutcomeUnknownTool, tool.OutcomeNotFound:
		return http.StatusNotFound
	case tool.OutcomeInvalidArgs:
		return http.StatusBadRequest
	case tool.OutcomeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, code string, err error) {
	s.writeJSON(w, status, ErrorBody{Error: ErrorDetails{
		Code:      code,
		Message:   err.Error(),
		RequestID: middleware.GetReqID(r.Context()),
	}})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("write response", zap.Error(err))
	}
}
