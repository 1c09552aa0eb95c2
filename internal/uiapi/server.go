package uiapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/awaistahir/sunquote/internal/engine"
	"github.com/awaistahir/sunquote/internal/leads"
	"github.com/awaistahir/sunquote/internal/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const version = "1.0.0"

// Server exposes the estimator and the lead forms over HTTP. The rate table is fixed
// for the lifetime of the server.
type Server struct {
	rates          engine.RateTable
	leads          leads.Submitter
	log            *zap.Logger
	corsOrigins    []string
	requestTimeout time.Duration
}

type Option func(*Server)

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

func NewServer(rates engine.RateTable, submitter leads.Submitter, opts ...Option) *Server {
	s := &Server{
		rates:          rates,
		leads:          submitter,
		log:            zap.L(),
		corsOrigins:    []string{"*"},
		requestTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(log.RequestID)
	r.Use(log.Logger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", log.RequestIDHeader},
		ExposedHeaders: []string{log.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/rates", s.handleGetRates)
		r.Post("/estimate", s.handleEstimate)
		r.Post("/estimate/schedule", s.handleSchedule)
		r.Post("/estimate/export", s.handleExport)
		r.Post("/leads/contact", s.handleContact)
		r.Post("/leads/application", s.handleApplication)
	})

	return r
}

type statusReply struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Regions int    `json:"regions"`
}

type ratesReply struct {
	Regions  map[engine.Region]engine.RegionRates `json:"regions"`
	Fallback engine.RegionRates                   `json:"fallback"`
}

type errorReply struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, statusReply{
		Status:  "ok",
		Version: version,
		Regions: s.rates.Len(),
	})
}

func (s *Server) handleGetRates(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, ratesReply{
		Regions:  s.rates.Snapshot(),
		Fallback: s.rates.Resolve(""),
	})
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respondJSON(w, r, status, errorReply{Error: message})
}

// respondInvalid maps validation errors onto a 400 naming the offending field
func respondInvalid(w http.ResponseWriter, r *http.Request, err error) {
	reply := errorReply{Error: err.Error()}

	var inputErr *engine.InvalidInputError
	var leadErr *leads.FieldError
	switch {
	case errors.As(err, &inputErr):
		reply.Field = inputErr.Field
	case errors.As(err, &leadErr):
		reply.Field = leadErr.Field
	}
	respondJSON(w, r, http.StatusBadRequest, reply)
}
