package rest

import (
	"net/http"
	"time"

	"coursehub-backend/infrastructure/config"
	"coursehub-backend/interfaces/http/rest/handlers"
	custommiddleware "coursehub-backend/interfaces/http/rest/middleware"
	"coursehub-backend/pkg/auth"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router wires handlers and middleware into the HTTP surface
type Router struct {
	cfg          *config.Config
	courses      *handlers.CourseHandler
	registration *handlers.RegistrationHandler
	validator    *auth.JWTValidator
	limiter      auth.RateLimiter
	logger       *zap.Logger
}

// NewRouter creates a new router
func NewRouter(
	cfg *config.Config,
	courses *handlers.CourseHandler,
	registration *handlers.RegistrationHandler,
	validator *auth.JWTValidator,
	limiter auth.RateLimiter,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:          cfg,
		courses:      courses,
		registration: registration,
		validator:    validator,
		limiter:      limiter,
		logger:       logger,
	}
}

// Setup builds the chi handler tree
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(custommiddleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	r.Get("/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(custommiddleware.Authenticate(rt.validator, rt.limiter))

		api.Route("/courses", func(c chi.Router) {
			c.Post("/", rt.courses.CreateCourse)
			c.Get("/{courseID}", rt.courses.GetCourse)
			c.Post("/{courseID}/allotment", rt.courses.AllotCourse)
			c.Get("/{courseID}/registrations", rt.courses.ListRegistrations)
		})

		api.Route("/registrations", func(reg chi.Router) {
			reg.Post("/", rt.registration.Register)
			reg.Delete("/{registrationID}", rt.registration.Cancel)
		})
	})

	return r
}
