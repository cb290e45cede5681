package rest

import (
	"net/http"

	"github.com/alesweet/order-service/pkg/accesslog"
	"github.com/alesweet/order-service/pkg/logger"
	"github.com/alesweet/order-service/pkg/unzip"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nanmu42/gzip"
)

// InitChi builds the root router with the shared middleware stack.
func InitChi(logger logger.Logger) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(accesslog.Handler(logger))
	router.Use(middleware.Recoverer)
	router.Use(gzip.DefaultHandler().WrapHandler)
	router.Use(unzip.Middleware(logger))

	return router
}

type (
	MiddlewareFunc func(http.Handler) http.Handler

	ChiServerOptions struct {
		BaseRouter chi.Router
		BaseURL    string
		// Middlewares wrap every route of the controller.
		Middlewares []MiddlewareFunc
		// AdminMiddlewares additionally wrap destructive routes.
		AdminMiddlewares []MiddlewareFunc
	}
)
