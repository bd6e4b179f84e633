package handlers

import (
	"fleet-ops-service/internal/api/dto"
	"fleet-ops-service/internal/domain"
	"net/http"
	"strconv"
	"strings"
)

type AircraftHandler struct {
	Service FleetAPI
}

func (h *AircraftHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.Service.Aircraft(r.Context())
	if err != nil {
		writeServiceError(w, r, "list aircraft", err)
		return
	}
	if profiles == nil {
		profiles = []domain.AircraftProfile{}
	}

	writeJSON(w, r, http.StatusOK, dto.ListAircraftResponse{Aircraft: profiles})
}

// Recommend ranks operational aircraft for a flight on the "route" query
// parameter ("FROM-TO"). An optional "limit" keeps the top results.
func (h *AircraftHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	p, err := period(r, h.Service)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	limit := 0
	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeError(w, r, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
	}

	route := strings.ToUpper(strings.TrimSpace(q.Get("route")))
	results, err := h.Service.Recommend(r.Context(), p, route, limit)
	if err != nil {
		writeServiceError(w, r, "recommend aircraft", err)
		return
	}
	if results == nil {
		results = []domain.RecommendationResult{}
	}

	writeJSON(w, r, http.StatusOK, dto.ListRecommendationsResponse{
		Period:          p.String(),
		Route:           route,
		Recommendations: results,
	})
}
