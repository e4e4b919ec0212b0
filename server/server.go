package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kayceeDev/altschooltestingBE/config"
	"github.com/kayceeDev/altschooltestingBE/handlers"
	"github.com/kayceeDev/altschooltestingBE/middleware"
	"github.com/kayceeDev/altschooltestingBE/services"
)

// Dependencies are the collaborators the HTTP surface is built from
type Dependencies struct {
	UsersService   services.UsersService
	RateLimitStore middleware.RateLimitStore
	Readiness      services.ReadinessChecker
}

// NewHandler assembles the request pipeline:
// request logging and panic recovery, then the gate chain in fixed order
// (body parser, CORS, rate limiter), then the router.
func NewHandler(cfg *config.AppConfig, deps Dependencies) http.Handler {
	errorMiddleware := middleware.NewErrorMiddleware()

	router := NewRouter(cfg, deps)

	var handler http.Handler = router
	handler = middleware.NewRateLimiter(deps.RateLimitStore, cfg.RateLimitConfig.Max, errorMiddleware).Middleware(handler)
	handler = middleware.NewCORSMiddleware(middleware.NewOriginPolicy(cfg.CORSConfig), errorMiddleware).Middleware(handler)
	handler = middleware.NewBodyParser(cfg.BodyLimitBytes).Middleware(handler)
	handler = errorMiddleware.HTTPMiddleware(handler)
	handler = middleware.RequestLogger(handler)

	return handler
}

// NewRouter maps verb and path to the resource handlers
func NewRouter(cfg *config.AppConfig, deps Dependencies) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(handlers.NotFoundHandler)
	router.MethodNotAllowedHandler = http.HandlerFunc(handlers.NotFoundHandler)

	handlers.NewHealthHandler(deps.Readiness).SetupEndpoints(router)

	api := router.PathPrefix("/api").Subrouter()
	if cfg.RequireDatastoreReady {
		api.Use(middleware.NewReadinessMiddleware(deps.Readiness).Middleware)
	}
	handlers.NewUsersHandler(deps.UsersService).SetupEndpoints(api)

	return router
}
