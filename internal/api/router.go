package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/teamboard/teamboard/internal/api/handler"
	"github.com/teamboard/teamboard/internal/api/middleware"
	"github.com/teamboard/teamboard/internal/auth"
	"github.com/teamboard/teamboard/internal/post"
	"github.com/teamboard/teamboard/internal/team"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	DBPinger           handler.DBPinger
	Version            string
	AuthService        *auth.Service
	TeamRepo           team.Repository
	PostRepo           post.Repository
	Metrics            *middleware.Metrics
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
	OpenAPISpec        []byte
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) (*chi.Mux, error) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}
	if len(deps.CORSAllowedOrigins) > 0 {
		r.Use(corsMiddleware(deps.CORSAllowedOrigins))
	}

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	if len(deps.OpenAPISpec) > 0 {
		openapiHandler, err := handler.NewOpenAPIHandler(deps.OpenAPISpec, deps.Version)
		if err != nil {
			return nil, fmt.Errorf("building openapi handler: %w", err)
		}
		r.Get("/openapi.json", openapiHandler.ServeHTTP)
	}

	if deps.AuthService == nil {
		return r, nil
	}

	requireToken := middleware.Auth(deps.AuthService)

	if deps.TeamRepo != nil {
		teamHandler := handler.NewTeamHandler(deps.AuthService, deps.TeamRepo)
		r.Route("/teams", func(r chi.Router) {
			r.Post("/register", teamHandler.Register)
			r.Post("/login", teamHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(requireToken)
				r.Get("/me", teamHandler.Me)
				r.Patch("/me", teamHandler.UpdateMe)
				r.Delete("/me", teamHandler.DeleteMe)
			})
		})
	}

	if deps.PostRepo != nil {
		postHandler := handler.NewPostHandler(deps.PostRepo)
		r.Route("/posts", func(r chi.Router) {
			r.Use(requireToken)
			r.Post("/", postHandler.Create)
			r.Get("/", postHandler.List)
			r.Get("/{id}", postHandler.GetByID)
			r.Patch("/{id}", postHandler.Update)
			r.Delete("/{id}", postHandler.Delete)
		})
	}

	return r, nil
}

func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.TokenHeader, middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})
	return c.Handler
}
