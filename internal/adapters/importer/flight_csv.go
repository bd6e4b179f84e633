package importer

import (
	"encoding/csv"
	"errors"
	"fleet-ops-service/internal/domain"
	"fmt"
	"io"
	"log"

	"github.com/jszwec/csvutil"
)

// One log-book line as it appears in a flight CSV export.
// Headers must match the csv tags exactly.
type flightRow struct {
	ID             string `csv:"id,omitempty"`
	Ser            int    `csv:"ser"`
	Date           string `csv:"date"`
	Registration   string `csv:"registration"`
	From           string `csv:"from"`
	To             string `csv:"to"`
	FlightHours    int    `csv:"flight_hours"`
	FlightMinutes  int    `csv:"flight_minutes"`
	LandingHours   int    `csv:"landing_hours"`
	LandingMinutes int    `csv:"landing_minutes"`
	FWIHours       int    `csv:"fwi_hours"`
	FWIMinutes     int    `csv:"fwi_minutes"`
	Cycles         int    `csv:"cycles"`
	TLBNumber      string `csv:"tlb_number"`
}

// Export line: the input columns plus the computed running totals.
type flightExportRow struct {
	flightRow
	TotalHours      int `csv:"total_hours"`
	TotalCycles     int `csv:"total_cycles"`
	TotalFWIHours   int `csv:"total_fwi_hours"`
	TotalFWIMinutes int `csv:"total_fwi_minutes"`
	MonthHours      int `csv:"month_hours"`
	MonthCycles     int `csv:"month_cycles"`
}

// DecodeFlights reads flight legs from CSV with a header line. Derived
// totals are never read. An empty input yields no flights.
func DecodeFlights(r io.Reader) ([]domain.FlightLeg, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.FlightLeg{}, nil
		}
		return nil, fmt.Errorf("decode flights csv: create decoder: %w", err)
	}

	var rows []flightRow
	if err := dec.Decode(&rows); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode flights csv: %w: %w", domain.ErrInvalidInput, err)
	}

	flights := make([]domain.FlightLeg, 0, len(rows))
	for _, row := range rows {
		flights = append(flights, row.toDomain())
	}

	log.Printf("decoded flights csv rows=%d", len(flights))
	return flights, nil
}

// EncodeFlights writes legs, including derived totals, as CSV with a
// header line.
func EncodeFlights(w io.Writer, flights []domain.FlightLeg) error {
	rows := make([]flightExportRow, 0, len(flights))
	for _, f := range flights {
		rows = append(rows, flightExportRow{
			flightRow:       rowFromDomain(f),
			TotalHours:      f.Derived.TotalHours,
			TotalCycles:     f.Derived.TotalCycles,
			TotalFWIHours:   f.Derived.TotalFWIHours,
			TotalFWIMinutes: f.Derived.TotalFWIMinutes,
			MonthHours:      f.Derived.MonthHours,
			MonthCycles:     f.Derived.MonthCycles,
		})
	}

	data, err := csvutil.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode flights csv: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("encode flights csv: write: %w", err)
	}
	return nil
}

func (row flightRow) toDomain() domain.FlightLeg {
	return domain.FlightLeg{
		ID:           row.ID,
		Ser:          row.Ser,
		Date:         row.Date,
		Registration: row.Registration,
		From:         row.From,
		To:           row.To,
		Flight:       domain.HoursMinutes{Hours: row.FlightHours, Minutes: row.FlightMinutes},
		Landing:      domain.HoursMinutes{Hours: row.LandingHours, Minutes: row.LandingMinutes},
		FWI:          domain.HoursMinutes{Hours: row.FWIHours, Minutes: row.FWIMinutes},
		Cycles:       row.Cycles,
		TLBNumber:    row.TLBNumber,
	}
}

func rowFromDomain(f domain.FlightLeg) flightRow {
	return flightRow{
		ID:             f.ID,
		Ser:            f.Ser,
		Date:           f.Date,
		Registration:   f.Registration,
		From:           f.From,
		To:             f.To,
		FlightHours:    f.Flight.Hours,
		FlightMinutes:  f.Flight.Minutes,
		LandingHours:   f.Landing.Hours,
		LandingMinutes: f.Landing.Minutes,
		FWIHours:       f.FWI.Hours,
		FWIMinutes:     f.FWI.Minutes,
		Cycles:         f.Cycles,
		TLBNumber:      f.TLBNumber,
	}
}
