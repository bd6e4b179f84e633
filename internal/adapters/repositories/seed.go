package repositories

import (
	"context"
	"encoding/json"
	"fleet-ops-service/internal/adapters/importer"
	"fleet-ops-service/internal/domain"
	"fleet-ops-service/internal/ports"
	"fmt"
	"os"
	"strings"
)

type aircraftSaver interface {
	SaveAircraft(ctx context.Context, profiles []domain.AircraftProfile) error
}

// Populate aircraft reference data from a JSON file.
func SeedAircraftFromJSON(ctx context.Context, repo aircraftSaver, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed aircraft: read %q: %w", jsonPath, err)
	}

	var data []domain.AircraftProfile
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed aircraft: parse json: %w", err)
	}

	for i, p := range data {
		reg := strings.TrimSpace(p.Registration)
		if reg == "" {
			return fmt.Errorf("seed aircraft: item at index %d: registration cannot be empty", i+1)
		}
		if !p.Status.Valid() {
			return fmt.Errorf("seed aircraft: %s: unknown status %q", reg, p.Status)
		}
		if p.Efficiency < 0 || p.Efficiency > 100 {
			return fmt.Errorf("seed aircraft: %s: efficiency %.1f outside 0-100", reg, p.Efficiency)
		}
		data[i].Registration = strings.ToUpper(reg)
	}

	if err := repo.SaveAircraft(ctx, data); err != nil {
		return fmt.Errorf("seed aircraft: %w", err)
	}
	return nil
}

// Populate flight legs from a CSV log-book export.
func SeedFlightsFromCSV(ctx context.Context, repo ports.FlightRepository, csvPath string) (int, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("seed flights: open %q: %w", csvPath, err)
	}
	defer f.Close()

	legs, err := importer.DecodeFlights(f)
	if err != nil {
		return 0, fmt.Errorf("seed flights: %w", err)
	}

	for i := range legs {
		if legs[i].ID == "" {
			legs[i].ID = legs[i].StableID()
		}
	}
	if err := domain.ValidateFlights(legs); err != nil {
		return 0, fmt.Errorf("seed flights: %w", err)
	}

	if err := repo.SaveFlights(ctx, legs); err != nil {
		return 0, fmt.Errorf("seed flights: %w", err)
	}
	return len(legs), nil
}
