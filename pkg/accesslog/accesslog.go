package accesslog

import (
	"net/http"
	"time"

	"github.com/alesweet/order-service/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler returns a middleware that logs every HTTP request with its
// status, payload size and duration.
func Handler(logger logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		f := func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.With(r.Context(),
				"duration", time.Since(start).String(),
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
			).Infof("%s %s %s %d", r.Method, r.URL.Path, r.Proto, ww.Status())
		}

		return http.HandlerFunc(f)
	}
}
