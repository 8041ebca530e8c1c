// Package httpapi exposes the property search agent over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nestscout/nestscout/internal/domain/search/filter"
	"github.com/nestscout/nestscout/internal/store"
)

// Agent handles search requests.
type Agent interface {
	Search(ctx context.Context, query string, spec filter.Spec) (string, error)
	Stats(ctx context.Context) (store.Stats, error)
}

// Server is the HTTP front end.
type Server struct {
	agent  Agent
	logger *zap.Logger
}

// NewServer creates a Server.
func NewServer(agent Agent, logger *zap.Logger) *Server {
	return &Server{agent: agent, logger: logger}
}

// Router builds the HTTP route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Get("/stats", s.handleStats)
	})

	return r
}

type searchRequest struct {
	Query        string   `json:"query"`
	PropertyType string   `json:"property_type,omitempty"`
	City         string   `json:"city,omitempty"`
	State        string   `json:"state,omitempty"`
	Neighborhood string   `json:"neighborhood,omitempty"`
	MinBedrooms  *int     `json:"min_bedrooms,omitempty"`
	MinBathrooms *float64 `json:"min_bathrooms,omitempty"`
	MinPrice     *int     `json:"min_price,omitempty"`
	MaxPrice     *int     `json:"max_price,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
	Status       string   `json:"status,omitempty"`
}

type searchResponse struct {
	Response string `json:"response"`
}

type statsResponse struct {
	TotalVectors int `json:"total_vectors"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if req.Query == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query is required"})
		return
	}

	spec := filter.Spec{
		PropertyType:      req.PropertyType,
		City:              req.City,
		State:             req.State,
		Neighborhood:      req.Neighborhood,
		MinBedrooms:       req.MinBedrooms,
		MinBathrooms:      req.MinBathrooms,
		MinPrice:          req.MinPrice,
		MaxPrice:          req.MaxPrice,
		RequiredAmenities: req.Amenities,
		Status:            req.Status,
	}

	resp, err := s.agent.Search(r.Context(), req.Query, spec)
	if err != nil {
		s.logger.Error("search request failed", zap.Error(err))
		status := http.StatusInternalServerError
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		writeJSON(w, status, errorResponse{Error: "search failed"})
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{Response: resp})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.agent.Stats(r.Context())
	if err != nil {
		s.logger.Error("stats request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "stats unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{TotalVectors: stats.TotalVectors})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
