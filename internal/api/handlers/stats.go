package handlers

import (
	"fleet-ops-service/internal/api/dto"
	"net/http"
)

type StatsHandler struct {
	Service FleetAPI
}

// Fleet returns fleet-wide statistics for the requested period.
func (h *StatsHandler) Fleet(w http.ResponseWriter, r *http.Request) {
	p, err := period(r, h.Service)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := h.Service.Snapshot(r.Context(), p)
	if err != nil {
		writeServiceError(w, r, "fleet stats", err)
		return
	}

	writeJSON(w, r, http.StatusOK, snap.Fleet)
}

// Aircraft returns per-aircraft statistics in registration order.
func (h *StatsHandler) Aircraft(w http.ResponseWriter, r *http.Request) {
	p, err := period(r, h.Service)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := h.Service.Snapshot(r.Context(), p)
	if err != nil {
		writeServiceError(w, r, "aircraft stats", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListAircraftStatsResponse{
		Period:   p.String(),
		Aircraft: dto.AircraftStatsList(snap.Aircraft),
	})
}
