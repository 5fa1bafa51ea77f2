package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/carelink/care-coordination/internal/coordination"
	"github.com/carelink/care-coordination/internal/metrics"
)

type RouterConfig struct {
	Service     *coordination.Service
	Logger      zerolog.Logger
	HTTPMetrics *metrics.HTTP
	Env         string
	Version     string
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))
	r.Use(MetricsMiddleware(cfg.HTTPMetrics))

	health := NewHealthHandler(cfg.Service.Store(), cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Landing surface; anything unroutable falls back to it.
	r.Get("/", rolesHandler)
	r.NotFound(fallbackHandler)

	svc := cfg.Service
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", createSessionHandler(svc))

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Delete("/", deleteSessionHandler(svc))
			r.Get("/events", eventLogHandler(svc))

			r.Route("/coordinator", func(r chi.Router) {
				r.Get("/cases", listOpenCasesHandler(svc))
				r.Get("/patients", listPatientsHandler(svc))
				r.Get("/providers", listProvidersHandler(svc))
				r.Get("/notifications", listNotificationsHandler(svc))
				r.Post("/patients/{patientID}/call-attempts", logCallAttemptHandler(svc))
			})

			r.Route("/provider", func(r chi.Router) {
				r.Get("/requests", listRequestsHandler(svc))
				r.Get("/schedule", scheduleHandler(svc))
				r.Get("/appointments/{appointmentID}", resolveAppointmentHandler(svc))
				r.Post("/requests/{requestID}/accept", acceptRequestHandler(svc))
				r.Post("/requests/{requestID}/decline", declineRequestHandler(svc))
				r.Post("/requests/{requestID}/reschedule", proposeRescheduleHandler(svc))
			})

			r.Route("/patient", func(r chi.Router) {
				r.Get("/appointment", patientAppointmentHandler(svc))
				r.Post("/appointment/confirm", patientConfirmHandler(svc))
				r.Post("/appointment/reschedule", patientRescheduleHandler(svc))
			})
		})
	})

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	})

	return c.Handler(r)
}
