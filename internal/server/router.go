package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"radagast/internal/availability"
	stockcontroller "radagast/internal/stock/controller"
)

func NewRouter(
	reallocCtrl *stockcontroller.ReallocateController,
	availCtrl *availability.Controller,
	apiKey string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1/stock", func(r chi.Router) {
		r.Use(BearerAuth(apiKey, logger))
		r.Post("/reallocate", reallocCtrl.Reallocate)
		r.Post("/availability", availCtrl.HandleAvailability)
	})

	return r
}
