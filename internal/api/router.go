package api

import (
	"net/http"

	_ "fxcross/docs"
	"fxcross/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(rateHandler *handler.Handler, metricsHandler http.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	router.Get("/swagger/*", swagger.WrapHandler)
	router.Method(http.MethodGet, "/metrics", metricsHandler)

	router.Post("/api/v1/currencies", rateHandler.AddCurrency)
	router.Get("/api/v1/currencies", rateHandler.ListCurrencies)
	router.Get("/api/v1/currencies/{code}/rates", rateHandler.GetRates)
	return router
}
