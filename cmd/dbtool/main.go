package main

import (
	"context"
	"database/sql"
	"flag"
	"fleet-ops-service/internal/adapters/repositories"
	"fleet-ops-service/internal/config"
	"fleet-ops-service/internal/platform/db"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// dbtool prepares a database out of band: it creates the schema and, unless
// -schema-only is set, loads the aircraft and flight seed files.
func main() {
	schemaOnly := flag.Bool("schema-only", false, "create tables without seeding")
	flag.Parse()

	cfg := config.Load()

	conn, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	dialect, err := repositories.DialectFor(cfg.DBDriver)
	if err != nil {
		log.Fatal(err)
	}

	initAndSeed(conn, dialect, cfg, *schemaOnly)
}

func initAndSeed(conn *sql.DB, dialect repositories.Dialect, cfg config.Config, schemaOnly bool) {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if schemaOnly {
		return
	}

	ctx := context.Background()

	log.Println("Seeding aircraft...")
	aircraft := repositories.NewSQLAircraftRepository(conn, dialect)
	if err := repositories.SeedAircraftFromJSON(ctx, aircraft, cfg.AircraftSeedPath); err != nil {
		log.Fatalf("seeding aircraft failed: %v", err)
	}

	log.Println("Seeding flights...")
	flights := repositories.NewSQLFlightRepository(conn, dialect)
	n, err := repositories.SeedFlightsFromCSV(ctx, flights, cfg.FlightSeedPath)
	if err != nil {
		log.Fatalf("seeding flights failed: %v", err)
	}
	log.Printf("Seeding complete. flights=%d", n)
}
