package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"trip_budget/internal/adapters/observability"
	"trip_budget/internal/app"
	"trip_budget/internal/domain"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	Q       *app.QueryService
	Catalog *app.CatalogService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/predictions", h.predict)
	s.mux.Get("/v1/destinations/compare", h.compare)
	s.mux.Get("/v1/destinations/{name}/stats", h.cityStats)
	s.mux.Get("/v1/model", h.model)
	if h.Catalog != nil {
		s.mux.Post("/v1/admin/reload", h.reload)
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write JSON body")
	}
}

// writeCached answers GETs with a weak ETag and honors If-None-Match.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}

type predictRequest struct {
	DestinationCity string `json:"destinationCity"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (req predictRequest) trip() (domain.Trip, error) {
	if strings.TrimSpace(req.DestinationCity) == "" {
		return domain.Trip{}, errors.New("destinationCity is required")
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return domain.Trip{}, errors.New("startDate must be YYYY-MM-DD or RFC 3339")
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return domain.Trip{}, errors.New("endDate must be YYYY-MM-DD or RFC 3339")
	}
	return domain.Trip{DestinationCity: req.DestinationCity, StartDate: start, EndDate: end}, nil
}

func (h *Handlers) predict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		observability.ObservePrediction("invalid")
		writeProblem(w, http.StatusBadRequest, "Invalid body", "expected a JSON object with destinationCity, startDate and endDate")
		return
	}
	trip, err := req.trip()
	if err != nil {
		observability.ObservePrediction("invalid")
		writeProblem(w, http.StatusBadRequest, "Invalid trip", err.Error())
		return
	}

	out, err := h.Q.Predict(r.Context(), trip)
	switch {
	case errors.Is(err, domain.ErrDestinationNotFound):
		observability.ObservePrediction("not_found")
		writeProblem(w, http.StatusNotFound, "Destination Not Found", fmt.Sprintf("no destination named %q", trip.DestinationCity))
		return
	case errors.Is(err, domain.ErrInvalidDateRange):
		observability.ObservePrediction("invalid")
		writeProblem(w, http.StatusBadRequest, "Invalid Date Range", "endDate must not be before startDate")
		return
	case err != nil:
		observability.ObservePrediction("error")
		log.Error().Err(err).Str("destination", trip.DestinationCity).Msg("prediction failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	observability.ObservePrediction("ok")
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) cityStats(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	cs, err := h.Q.CityStats(r.Context(), name)
	if err != nil {
		log.Error().Err(err).Str("destination", name).Msg("city stats failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if cs == nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "destination not found")
		return
	}
	writeCached(w, r, cs)
}

func (h *Handlers) compare(w http.ResponseWriter, r *http.Request) {
	var names []string
	for _, v := range r.URL.Query()["names"] {
		for _, n := range strings.Split(v, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
	}
	if len(names) == 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid names", "names must list at least one destination")
		return
	}
	writeCached(w, r, h.Q.Compare(r.Context(), names))
}

func (h *Handlers) model(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, h.Q.Model())
}

func (h *Handlers) reload(w http.ResponseWriter, r *http.Request) {
	v, err := h.Catalog.Reload(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("catalog reload failed")
		writeProblem(w, http.StatusServiceUnavailable, "Reload Failed", "catalog could not be loaded; previous model still serving")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"version": v})
}
