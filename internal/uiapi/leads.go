package uiapi

import (
	"errors"
	"net/http"

	"github.com/awaistahir/sunquote/internal/engine"
	"github.com/awaistahir/sunquote/internal/leads"
	"github.com/awaistahir/sunquote/internal/metrics"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req leads.ContactRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	receipt, err := s.leads.SubmitContact(r.Context(), req)
	s.respondLead(w, r, receipt, err)
}

func (s *Server) handleApplication(w http.ResponseWriter, r *http.Request) {
	var req leads.ApplicationRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	receipt, err := s.leads.SubmitApplication(r.Context(), req)
	s.respondLead(w, r, receipt, err)
}

func (s *Server) respondLead(w http.ResponseWriter, r *http.Request, receipt leads.Receipt, err error) {
	switch {
	case err == nil:
		metrics.IncreaseLeadsTotalMetric(string(receipt.Kind))
		respondJSON(w, r, http.StatusAccepted, receipt)
	case errors.Is(err, leads.ErrInvalidLead), errors.Is(err, engine.ErrInvalidInput):
		respondInvalid(w, r, err)
	default:
		s.log.Error("failed to submit lead", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "failed to submit form")
	}
}
