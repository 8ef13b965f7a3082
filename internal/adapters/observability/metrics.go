package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "tripbudget"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "external_requests_total", Help: "Outbound requests."},
		[]string{"service", "endpoint", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "external_request_duration_seconds",
			Help:    "Outbound request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	Predictions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "predictions_total", Help: "Budget predictions by outcome."},
		[]string{"outcome"}, // ok|not_found|invalid|error
	)
	ModelTrainings = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "model_trainings_total", Help: "Completed model trainings."},
	)
	TrainingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "model_training_duration_seconds",
			Help:    "Model training duration seconds.",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
	)
	CatalogDestinations = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: namespace, Name: "catalog_destinations", Help: "Destinations in the live catalog."},
	)
	ModelVersion = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: namespace, Name: "model_version", Help: "Version of the live model."},
	)
)

// Serve exposes h on a dedicated listener, for when metrics must not share
// the API port.
func Serve(addr string, h http.Handler) {
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ExternalRequests, ExternalLatency, CacheEvents,
		Predictions, ModelTrainings, TrainingDuration, CatalogDestinations, ModelVersion)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObservePrediction(outcome string) {
	Predictions.WithLabelValues(outcome).Inc()
}

func ObserveTraining(dur time.Duration) {
	ModelTrainings.Inc()
	TrainingDuration.Observe(dur.Seconds())
}

func ObserveModel(version int64, destinations int) {
	ModelVersion.Set(float64(version))
	CatalogDestinations.Set(float64(destinations))
}
