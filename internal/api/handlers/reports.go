package handlers

import (
	"net/http"
	"strings"
)

type ReportHandler struct {
	Service FleetAPI
}

// Comparison contrasts two date-prefix periods. Without parameters it
// compares the current month with the one before.
func (h *ReportHandler) Comparison(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	current := strings.TrimSpace(q.Get("current"))
	previous := strings.TrimSpace(q.Get("previous"))

	if current == "" {
		p := h.Service.CurrentPeriod()
		current = p.String()
		if previous == "" {
			previous = p.PreviousMonth().String()
		}
	}
	if previous == "" {
		writeError(w, r, http.StatusBadRequest, "previous is required when current is set")
		return
	}

	cmp, err := h.Service.Compare(r.Context(), current, previous, strings.TrimSpace(q.Get("aircraft")))
	if err != nil {
		writeServiceError(w, r, "compare periods", err)
		return
	}

	writeJSON(w, r, http.StatusOK, cmp)
}

func (h *ReportHandler) Fleet(w http.ResponseWriter, r *http.Request) {
	p, err := period(r, h.Service)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sum, err := h.Service.FleetSummary(r.Context(), p)
	if err != nil {
		writeServiceError(w, r, "fleet summary", err)
		return
	}

	writeJSON(w, r, http.StatusOK, sum)
}
