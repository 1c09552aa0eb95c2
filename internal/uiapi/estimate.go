package uiapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/awaistahir/sunquote/internal/engine"
	"github.com/awaistahir/sunquote/internal/metrics"
	"github.com/awaistahir/sunquote/internal/report"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// maxScheduleYears bounds the years query parameter
const maxScheduleYears = 50

type estimateReply struct {
	Input     engine.EstimateInput `json:"input"`
	Breakdown engine.CostBreakdown `json:"breakdown"`
	Shares    []engine.CostShare   `json:"shares"`
	Warnings  []string             `json:"warnings"`
}

type scheduleReply struct {
	Breakdown     engine.CostBreakdown `json:"breakdown"`
	Schedule      []engine.PaybackYear `json:"schedule"`
	BreakEvenYear int                  `json:"breakEvenYear"`
}

// decodeInput reads an EstimateInput, leaving omitted fields at the calculator defaults
func decodeInput(r *http.Request) (engine.EstimateInput, error) {
	in := engine.DefaultInput()
	if err := render.DecodeJSON(r.Body, &in); err != nil && !errors.Is(err, io.EOF) {
		return in, fmt.Errorf("invalid request body: %w", err)
	}
	return in, nil
}

// quote decodes and prices the request, writing the error response itself when it fails
func (s *Server) quote(w http.ResponseWriter, r *http.Request) (engine.EstimateInput, engine.CostBreakdown, bool) {
	in, err := decodeInput(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return in, engine.CostBreakdown{}, false
	}

	b, err := engine.Quote(in, s.rates)
	if err != nil {
		var inputErr *engine.InvalidInputError
		if errors.As(err, &inputErr) {
			metrics.IncreaseInvalidInputsTotalMetric(inputErr.Field)
		} else {
			metrics.IncreaseInvalidInputsTotalMetric("")
		}
		respondInvalid(w, r, err)
		return in, engine.CostBreakdown{}, false
	}

	_, known := s.rates.Lookup(in.Region)
	metrics.IncreaseEstimatesTotalMetric(known)
	metrics.ObserveNetCost(b.NetCost)
	return in, b, true
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	in, b, ok := s.quote(w, r)
	if !ok {
		return
	}

	shares := engine.Shares(b)
	if shares == nil {
		shares = []engine.CostShare{}
	}
	respondJSON(w, r, http.StatusOK, estimateReply{
		Input:     in,
		Breakdown: b,
		Shares:    shares,
		Warnings:  engine.Warnings(in, s.rates),
	})
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	opts, err := scheduleOptions(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	_, b, ok := s.quote(w, r)
	if !ok {
		return
	}

	schedule := engine.PaybackSchedule(b, opts...)
	respondJSON(w, r, http.StatusOK, scheduleReply{
		Breakdown:     b,
		Schedule:      schedule,
		BreakEvenYear: engine.BreakEvenYear(schedule),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	opts, err := scheduleOptions(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	in, b, ok := s.quote(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, in, b, engine.PaybackSchedule(b, opts...)); err != nil {
		s.log.Error("failed to build workbook", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "failed to build workbook")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="solar-estimate.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func scheduleOptions(r *http.Request) ([]engine.ScheduleOption, error) {
	var opts []engine.ScheduleOption
	q := r.URL.Query()

	if v := q.Get("years"); v != "" {
		years, err := strconv.Atoi(v)
		if err != nil || years < 1 || years > maxScheduleYears {
			return nil, fmt.Errorf("years must be an integer between 1 and %d", maxScheduleYears)
		}
		opts = append(opts, engine.WithHorizon(years))
	}
	if v := q.Get("escalation"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil || rate < 0 || rate > 1 {
			return nil, fmt.Errorf("escalation must be a rate between 0 and 1")
		}
		opts = append(opts, engine.WithEscalation(rate))
	}
	return opts, nil
}
