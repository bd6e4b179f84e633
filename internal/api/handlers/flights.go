package handlers

import (
	"bytes"
	"fleet-ops-service/internal/adapters/importer"
	"fleet-ops-service/internal/api/dto"
	"log"
	"net/http"
	"strings"
)

// FlightHandler exposes the flight log and its mutations. Every mutation
// answers with the full refreshed snapshot.
type FlightHandler struct {
	Service FleetAPI
}

func (h *FlightHandler) List(w http.ResponseWriter, r *http.Request) {
	p, err := period(r, h.Service)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := h.Service.Snapshot(r.Context(), p)
	if err != nil {
		writeServiceError(w, r, "list flights", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewSnapshotResponse(*snap))
}

func (h *FlightHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := period(r, h.Service)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req dto.FlightRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.Service.AddFlight(r.Context(), req.ToDomain(), p)
	if err != nil {
		writeServiceError(w, r, "add flight", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.MutationResponse{
		ID:       res.ID,
		Snapshot: dto.NewSnapshotResponse(res.Snapshot),
	})
}

func (h *FlightHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "flight id is required")
		return
	}

	p, err := period(r, h.Service)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req dto.FlightRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.ID != "" && req.ID != id {
		writeError(w, r, http.StatusBadRequest, "body id does not match path id")
		return
	}

	res, err := h.Service.UpdateFlight(r.Context(), id, req.ToDomain(), p)
	if err != nil {
		writeServiceError(w, r, "update flight", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.MutationResponse{
		ID:       res.ID,
		Snapshot: dto.NewSnapshotResponse(res.Snapshot),
	})
}

func (h *FlightHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))

	p, err := period(r, h.Service)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.Service.RemoveFlight(r.Context(), id, p)
	if err != nil {
		writeServiceError(w, r, "remove flight", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.MutationResponse{
		ID:       res.ID,
		Snapshot: dto.NewSnapshotResponse(res.Snapshot),
	})
}

// Import accepts a CSV log-book export as the request body. Nothing is
// stored when any row is invalid.
func (h *FlightHandler) Import(w http.ResponseWriter, r *http.Request) {
	p, err := period(r, h.Service)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	defer r.Body.Close()
	legs, err := importer.DecodeFlights(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeServiceError(w, r, "import flights", err)
		return
	}
	if len(legs) == 0 {
		writeError(w, r, http.StatusBadRequest, "csv body contains no flights")
		return
	}

	snap, err := h.Service.ImportFlights(r.Context(), legs, p)
	if err != nil {
		writeServiceError(w, r, "import flights", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewSnapshotResponse(*snap))
}

// Export writes every processed flight with its running totals as CSV.
func (h *FlightHandler) Export(w http.ResponseWriter, r *http.Request) {
	p, err := period(r, h.Service)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := h.Service.Snapshot(r.Context(), p)
	if err != nil {
		writeServiceError(w, r, "export flights", err)
		return
	}

	var buf bytes.Buffer
	if err := importer.EncodeFlights(&buf, snap.Flights); err != nil {
		writeServiceError(w, r, "export flights", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="flights-`+p.String()+`.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("export flights: write body: %v", err)
	}
}
