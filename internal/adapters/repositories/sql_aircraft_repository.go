package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fleet-ops-service/internal/domain"
	"fleet-ops-service/internal/platform/obs"
	"fmt"
)

// SQL-backed implementation of the AircraftRepository port.
type SQLAircraftRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLAircraftRepository(db *sql.DB, dialect Dialect) *SQLAircraftRepository {
	return &SQLAircraftRepository{DB: db, Dialect: dialect}
}

// Return every aircraft profile with its issues, ordered by registration.
func (s *SQLAircraftRepository) ListAircraft(ctx context.Context) (_ []domain.AircraftProfile, err error) {
	defer obs.Time(ctx, "aircraft.List")(&err)

	if s.DB == nil {
		return nil, errors.New("aircraft repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT registration, model, status, efficiency, next_maintenance_date
	FROM aircraft
	ORDER BY registration;
	`)
	if err != nil {
		return nil, fmt.Errorf("list aircraft: query aircraft table: %w", err)
	}
	defer rows.Close()

	profiles := make([]domain.AircraftProfile, 0, 16)
	index := make(map[string]int)
	for rows.Next() {
		var p domain.AircraftProfile
		var status string
		if err := rows.Scan(&p.Registration, &p.Model, &status, &p.Efficiency, &p.NextMaintenanceDate); err != nil {
			return nil, fmt.Errorf("list aircraft: scan row: %w", err)
		}
		p.Status = domain.AircraftStatus(status)
		p.Issues = []domain.Issue{}
		index[p.Registration] = len(profiles)
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list aircraft: row iteration: %w", err)
	}

	issueRows, err := s.DB.QueryContext(ctx, `
	SELECT id, registration, issue_type, description, reported_date, status, priority
	FROM aircraft_issues
	ORDER BY registration, reported_date, id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list aircraft: query aircraft_issues table: %w", err)
	}
	defer issueRows.Close()

	for issueRows.Next() {
		var is domain.Issue
		var reg, status string
		if err := issueRows.Scan(&is.ID, &reg, &is.Type, &is.Description, &is.ReportedDate, &status, &is.Priority); err != nil {
			return nil, fmt.Errorf("list aircraft: scan issue row: %w", err)
		}
		is.Status = domain.IssueStatus(status)

		i, ok := index[reg]
		if !ok {
			continue
		}
		profiles[i].Issues = append(profiles[i].Issues, is)
	}
	if err := issueRows.Err(); err != nil {
		return nil, fmt.Errorf("list aircraft: issue row iteration: %w", err)
	}

	return profiles, nil
}

// Insert or replace profiles. Each profile's issue list replaces the
// stored one.
func (s *SQLAircraftRepository) SaveAircraft(ctx context.Context, profiles []domain.AircraftProfile) (err error) {
	defer obs.Time(ctx, "aircraft.Save")(&err)

	if s.DB == nil {
		return errors.New("aircraft repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save aircraft: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upsertAircraft := s.Dialect.rebind(`
	INSERT INTO aircraft (registration, model, status, efficiency, next_maintenance_date)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (registration) DO UPDATE SET
		model = EXCLUDED.model,
		status = EXCLUDED.status,
		efficiency = EXCLUDED.efficiency,
		next_maintenance_date = EXCLUDED.next_maintenance_date;
	`)
	deleteIssues := s.Dialect.rebind(`DELETE FROM aircraft_issues WHERE registration = ?;`)
	insertIssue := s.Dialect.rebind(`
	INSERT INTO aircraft_issues (id, registration, issue_type, description, reported_date, status, priority)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`)

	for _, p := range profiles {
		if _, err := tx.ExecContext(ctx, upsertAircraft,
			p.Registration, p.Model, string(p.Status), p.Efficiency, p.NextMaintenanceDate,
		); err != nil {
			return fmt.Errorf("save aircraft %s: %w", p.Registration, err)
		}

		if _, err := tx.ExecContext(ctx, deleteIssues, p.Registration); err != nil {
			return fmt.Errorf("save aircraft %s: clear issues: %w", p.Registration, err)
		}
		for _, is := range p.Issues {
			if _, err := tx.ExecContext(ctx, insertIssue,
				is.ID, p.Registration, is.Type, is.Description, is.ReportedDate, string(is.Status), is.Priority,
			); err != nil {
				return fmt.Errorf("save aircraft %s: insert issue %s: %w", p.Registration, is.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save aircraft: commit tx: %w", err)
	}

	return nil
}
