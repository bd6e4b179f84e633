package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fleet-ops-service/internal/domain"
	"fleet-ops-service/internal/platform/obs"
	"fmt"
)

// SQL-backed implementation of the FlightRepository port, for SQLite and
// Postgres.
type SQLFlightRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLFlightRepository(db *sql.DB, dialect Dialect) *SQLFlightRepository {
	return &SQLFlightRepository{DB: db, Dialect: dialect}
}

const upsertFlightQuery = `
	INSERT INTO flights (
		id, ser, flight_date, registration, origin, destination,
		flight_hours, flight_minutes, landing_hours, landing_minutes,
		fwi_hours, fwi_minutes, cycles, tlb_number, pilot_id, co_pilot_id
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		ser = EXCLUDED.ser,
		flight_date = EXCLUDED.flight_date,
		registration = EXCLUDED.registration,
		origin = EXCLUDED.origin,
		destination = EXCLUDED.destination,
		flight_hours = EXCLUDED.flight_hours,
		flight_minutes = EXCLUDED.flight_minutes,
		landing_hours = EXCLUDED.landing_hours,
		landing_minutes = EXCLUDED.landing_minutes,
		fwi_hours = EXCLUDED.fwi_hours,
		fwi_minutes = EXCLUDED.fwi_minutes,
		cycles = EXCLUDED.cycles,
		tlb_number = EXCLUDED.tlb_number,
		pilot_id = EXCLUDED.pilot_id,
		co_pilot_id = EXCLUDED.co_pilot_id;
	`

// Return all flight legs stored in the database.
func (s *SQLFlightRepository) ListFlights(ctx context.Context) (_ []domain.FlightLeg, err error) {
	defer obs.Time(ctx, "flights.List")(&err)

	if s.DB == nil {
		return nil, errors.New("flight repository: DB is nil")
	}

	query := `
	SELECT
		id, ser, flight_date, registration, origin, destination,
		flight_hours, flight_minutes, landing_hours, landing_minutes,
		fwi_hours, fwi_minutes, cycles, tlb_number, pilot_id, co_pilot_id
	FROM flights
	ORDER BY flight_date, ser, id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list flights: query flights table: %w", err)
	}
	defer rows.Close()

	flights := make([]domain.FlightLeg, 0, 64)
	for rows.Next() {
		var f domain.FlightLeg
		err := rows.Scan(
			&f.ID, &f.Ser, &f.Date, &f.Registration, &f.From, &f.To,
			&f.Flight.Hours, &f.Flight.Minutes, &f.Landing.Hours, &f.Landing.Minutes,
			&f.FWI.Hours, &f.FWI.Minutes, &f.Cycles, &f.TLBNumber, &f.PilotID, &f.CoPilotID,
		)
		if err != nil {
			return nil, fmt.Errorf("list flights: scan row: %w", err)
		}
		flights = append(flights, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list flights: row iteration: %w", err)
	}

	return flights, nil
}

// Insert or replace a single flight leg.
func (s *SQLFlightRepository) SaveFlight(ctx context.Context, leg domain.FlightLeg) error {
	return s.SaveFlights(ctx, []domain.FlightLeg{leg})
}

// Insert or replace many flight legs in one transaction.
func (s *SQLFlightRepository) SaveFlights(ctx context.Context, legs []domain.FlightLeg) (err error) {
	defer obs.Time(ctx, "flights.Save")(&err)

	if s.DB == nil {
		return errors.New("flight repository: DB is nil")
	}
	if len(legs) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save flights: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, s.Dialect.rebind(upsertFlightQuery))
	if err != nil {
		return fmt.Errorf("save flights: prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, f := range legs {
		if f.ID == "" {
			return errors.New("save flights: flight id must not be empty")
		}
		_, err := stmt.ExecContext(ctx,
			f.ID, f.Ser, f.Date, f.Registration, f.From, f.To,
			f.Flight.Hours, f.Flight.Minutes, f.Landing.Hours, f.Landing.Minutes,
			f.FWI.Hours, f.FWI.Minutes, f.Cycles, f.TLBNumber, f.PilotID, f.CoPilotID,
		)
		if err != nil {
			return fmt.Errorf("save flights: upsert id=%s: %w", f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save flights: commit tx: %w", err)
	}

	return nil
}

// Delete a flight leg by ID.
func (s *SQLFlightRepository) DeleteFlight(ctx context.Context, id string) (err error) {
	defer obs.Time(ctx, "flights.Delete")(&err)

	if s.DB == nil {
		return errors.New("flight repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, s.Dialect.rebind(`DELETE FROM flights WHERE id = ?;`), id)
	if err != nil {
		return fmt.Errorf("delete flight id=%s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete flight id=%s: rows affected: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete flight id=%s: %w", id, domain.ErrFlightNotFound)
	}

	return nil
}

func (s *SQLFlightRepository) FlightExists(ctx context.Context, id string) (bool, error) {
	if s.DB == nil {
		return false, errors.New("flight repository: DB is nil")
	}

	var one int
	err := s.DB.QueryRowContext(ctx, s.Dialect.rebind(`SELECT 1 FROM flights WHERE id = ?;`), id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("flight exists id=%s: %w", id, err)
	}
	return true, nil
}
