package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Placeholder style of the backing database.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// DialectFor maps a db driver name to its dialect.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "sqlite":
		return DialectSQLite, nil
	case "postgres", "pgx":
		return DialectPostgres, nil
	}
	return 0, fmt.Errorf("unknown sql driver %q", driver)
}

// rebind rewrites "?" placeholders as "$1, $2, ..." for Postgres.
// Queries in this package never contain a literal "?".
func (d Dialect) rebind(q string) string {
	if d != DialectPostgres {
		return q
	}

	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Initialize the database schema. The DDL is valid for both SQLite and
// Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createFlightsQuery := `
	CREATE TABLE IF NOT EXISTS flights (
		id TEXT PRIMARY KEY,
		ser INTEGER NOT NULL,
		flight_date TEXT NOT NULL,
		registration TEXT NOT NULL,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		flight_hours INTEGER NOT NULL,
		flight_minutes INTEGER NOT NULL,
		landing_hours INTEGER NOT NULL,
		landing_minutes INTEGER NOT NULL,
		fwi_hours INTEGER NOT NULL,
		fwi_minutes INTEGER NOT NULL,
		cycles INTEGER NOT NULL,
		tlb_number TEXT NOT NULL DEFAULT '',
		pilot_id TEXT NOT NULL DEFAULT '',
		co_pilot_id TEXT NOT NULL DEFAULT ''
	);
	`

	createAircraftQuery := `
	CREATE TABLE IF NOT EXISTS aircraft (
		registration TEXT PRIMARY KEY,
		model TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		efficiency DOUBLE PRECISION NOT NULL,
		next_maintenance_date TEXT NOT NULL DEFAULT ''
	);
	`

	createIssuesQuery := `
	CREATE TABLE IF NOT EXISTS aircraft_issues (
		id TEXT PRIMARY KEY,
		registration TEXT NOT NULL REFERENCES aircraft(registration),
		issue_type TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		reported_date TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		priority TEXT NOT NULL DEFAULT ''
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_flights_registration_date
	ON flights(registration, flight_date, ser);
	`

	statements := []string{
		createFlightsQuery,
		createAircraftQuery,
		createIssuesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
