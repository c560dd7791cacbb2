package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/huzi29/crmsystemdesign/internal/observability/metrics"
	"github.com/huzi29/crmsystemdesign/internal/security/middleware"
)

// RouterDeps bundles everything the router mounts.
type RouterDeps struct {
	Auth        *AuthHandler
	Lead        *LeadHandler
	Interaction *InteractionHandler
	Enquiry     *EnquiryHandler
	Booking     *BookingHandler
	Stats       *StatsHandler
	Health      *HealthHandler

	SessionGuard func(http.Handler) http.Handler

	CORSAllowedOrigins []string
	Logger             *slog.Logger
}

// NewRouter wires all routes under /api/v1 plus the operational
// endpoints at the root.
func NewRouter(deps RouterDeps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.HTTPMetricsMiddleware)

	origins := deps.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept", middleware.TokenHeader},
		AllowCredentials: true,
	}))

	r.Get("/healthz", deps.Health.Health)
	r.Get("/readyz", deps.Health.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.Auth.Register)
			r.Post("/login", deps.Auth.Login)
			r.Post("/logout", deps.Auth.Logout)
			r.Get("/refresh/{token}", deps.Auth.Refresh)
			r.Get("/token", deps.Auth.ListTokens)

			r.Group(func(r chi.Router) {
				r.Use(deps.SessionGuard)
				r.Get("/users", deps.Auth.ListUsers)
				r.Get("/delete/{id}", deps.Auth.DeleteUser)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(deps.SessionGuard)

			mountCRUD(r, "/leads", crudHandlers{
				create: deps.Lead.Create,
				getAll: deps.Lead.GetAll,
				getOne: deps.Lead.GetByID,
				update: deps.Lead.Update,
				delete: deps.Lead.Delete,
			})
			mountCRUD(r, "/interaction", crudHandlers{
				create: deps.Interaction.Create,
				getAll: deps.Interaction.GetAll,
				getOne: deps.Interaction.GetByID,
				update: deps.Interaction.Update,
				delete: deps.Interaction.Delete,
			})
			mountCRUD(r, "/enquiry", crudHandlers{
				create: deps.Enquiry.Create,
				getAll: deps.Enquiry.GetAll,
				getOne: deps.Enquiry.GetByID,
				update: deps.Enquiry.Update,
				delete: deps.Enquiry.Delete,
			})
			mountCRUD(r, "/booking", crudHandlers{
				create: deps.Booking.Create,
				getAll: deps.Booking.GetAll,
				getOne: deps.Booking.GetByID,
				update: deps.Booking.Update,
				delete: deps.Booking.Delete,
			})

			r.Get("/stats", deps.Stats.Get)
		})
	})

	return r
}

type crudHandlers struct {
	create http.HandlerFunc
	getAll http.HandlerFunc
	getOne http.HandlerFunc
	update http.HandlerFunc
	delete http.HandlerFunc
}

// mountCRUD mounts the dashboard's action-style CRUD routes for one entity.
func mountCRUD(r chi.Router, prefix string, h crudHandlers) {
	r.Route(prefix, func(r chi.Router) {
		r.Post("/add", h.create)
		r.Get("/getall", h.getAll)
		r.Get("/getbyid/{id}", h.getOne)
		r.Put("/update/{id}", h.update)
		r.Delete("/delete/{id}", h.delete)
	})
}

// requestLogger logs each completed request with its request ID
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Info("request completed",
				slog.String("request_id", chimiddleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration_ms", time.Since(start)),
			)
		})
	}
}
