package api

import (
	"fleet-ops-service/internal/api/handlers"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(svc handlers.FleetAPI) http.Handler {
	mux := http.NewServeMux()

	flights := &handlers.FlightHandler{Service: svc}
	stats := &handlers.StatsHandler{Service: svc}
	aircraft := &handlers.AircraftHandler{Service: svc}
	reports := &handlers.ReportHandler{Service: svc}

	mux.HandleFunc("GET /health", handlers.Health)

	mux.HandleFunc("GET /flights", flights.List)
	mux.HandleFunc("POST /flights", flights.Create)
	mux.HandleFunc("POST /flights/import", flights.Import)
	mux.HandleFunc("GET /flights/export", flights.Export)
	mux.HandleFunc("PUT /flights/{id}", flights.Update)
	mux.HandleFunc("DELETE /flights/{id}", flights.Delete)

	mux.HandleFunc("GET /stats", stats.Fleet)
	mux.HandleFunc("GET /aircraft", aircraft.List)
	mux.HandleFunc("GET /aircraft/stats", stats.Aircraft)
	mux.HandleFunc("GET /recommendations", aircraft.Recommend)

	mux.HandleFunc("GET /reports/comparison", reports.Comparison)
	mux.HandleFunc("GET /reports/fleet", reports.Fleet)

	return requestIDMiddleware(loggingMiddleware(mux))
}
