package router

import (
	"net/http"

	"product-api/internal/handler"
	"product-api/internal/metrics"
	"product-api/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	recorder *metrics.Recorder,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	if recorder != nil {
		mux.Handle("GET /metrics", recorder.Handler())
	}

	// Collection routes (both with and without trailing slash)
	mux.HandleFunc("POST /products", productHandler.Create)
	mux.HandleFunc("POST /products/{$}", productHandler.Create)
	mux.HandleFunc("GET /products", productHandler.List)
	mux.HandleFunc("GET /products/{$}", productHandler.List)

	mux.HandleFunc("GET /products/{id}", productHandler.Get)
	mux.HandleFunc("PUT /products/{id}", productHandler.Update)
	mux.HandleFunc("DELETE /products/{id}", productHandler.Delete)

	// Apply middleware in order: Recovery -> RequestID -> Logging -> Metrics -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = middleware.Metrics(recorder)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
