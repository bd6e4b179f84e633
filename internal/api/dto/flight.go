package dto

import "fleet-ops-service/internal/domain"

// Body of POST /flights and PUT /flights/{id}.
type FlightRequest struct {
	ID             string `json:"id"`
	Ser            int    `json:"ser"`
	Date           string `json:"date"`
	Registration   string `json:"registration"`
	From           string `json:"from"`
	To             string `json:"to"`
	FlightHours    int    `json:"flight_hours"`
	FlightMinutes  int    `json:"flight_minutes"`
	LandingHours   int    `json:"landing_hours"`
	LandingMinutes int    `json:"landing_minutes"`
	FWIHours       int    `json:"fwi_hours"`
	FWIMinutes     int    `json:"fwi_minutes"`
	Cycles         int    `json:"cycles"`
	TLBNumber      string `json:"tlb_number"`
	PilotID        string `json:"pilot_id"`
	CoPilotID      string `json:"co_pilot_id"`
}

func (r FlightRequest) ToDomain() domain.FlightLeg {
	return domain.FlightLeg{
		ID:           r.ID,
		Ser:          r.Ser,
		Date:         r.Date,
		Registration: r.Registration,
		From:         r.From,
		To:           r.To,
		Flight:       domain.HoursMinutes{Hours: r.FlightHours, Minutes: r.FlightMinutes},
		Landing:      domain.HoursMinutes{Hours: r.LandingHours, Minutes: r.LandingMinutes},
		FWI:          domain.HoursMinutes{Hours: r.FWIHours, Minutes: r.FWIMinutes},
		Cycles:       r.Cycles,
		TLBNumber:    r.TLBNumber,
		PilotID:      r.PilotID,
		CoPilotID:    r.CoPilotID,
	}
}

type FlightTotalsResponse struct {
	TotalHours      int `json:"total_hours"`
	TotalCycles     int `json:"total_cycles"`
	TotalFWIHours   int `json:"total_fwi_hours"`
	TotalFWIMinutes int `json:"total_fwi_minutes"`
	MonthHours      int `json:"month_hours"`
	MonthCycles     int `json:"month_cycles"`
}

type FlightResponse struct {
	ID           string               `json:"id"`
	Ser          int                  `json:"ser"`
	Date         string               `json:"date"`
	Registration string               `json:"registration"`
	From         string               `json:"from"`
	To           string               `json:"to"`
	Route        string               `json:"route"`
	Flight       domain.HoursMinutes  `json:"flight"`
	Landing      domain.HoursMinutes  `json:"landing"`
	FWI          domain.HoursMinutes  `json:"fwi"`
	Cycles       int                  `json:"cycles"`
	TLBNumber    string               `json:"tlb_number"`
	PilotID      string               `json:"pilot_id,omitempty"`
	CoPilotID    string               `json:"co_pilot_id,omitempty"`
	Totals       FlightTotalsResponse `json:"totals"`
}

func NewFlightResponse(f domain.FlightLeg) FlightResponse {
	return FlightResponse{
		ID:           f.ID,
		Ser:          f.Ser,
		Date:         f.Date,
		Registration: f.Registration,
		From:         f.From,
		To:           f.To,
		Route:        f.Route(),
		Flight:       f.Flight,
		Landing:      f.Landing,
		FWI:          f.FWI,
		Cycles:       f.Cycles,
		TLBNumber:    f.TLBNumber,
		PilotID:      f.PilotID,
		CoPilotID:    f.CoPilotID,
		Totals: FlightTotalsResponse{
			TotalHours:      f.Derived.TotalHours,
			TotalCycles:     f.Derived.TotalCycles,
			TotalFWIHours:   f.Derived.TotalFWIHours,
			TotalFWIMinutes: f.Derived.TotalFWIMinutes,
			MonthHours:      f.Derived.MonthHours,
			MonthCycles:     f.Derived.MonthCycles,
		},
	}
}
