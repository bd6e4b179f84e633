package main

import (
	"context"
	"database/sql"
	"errors"
	"fleet-ops-service/internal/adapters/cache"
	"fleet-ops-service/internal/adapters/repositories"
	"fleet-ops-service/internal/api"
	"fleet-ops-service/internal/config"
	"fleet-ops-service/internal/platform/db"
	"fleet-ops-service/internal/ports"
	"fleet-ops-service/internal/services"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQL, Redis) behind ports and starts the HTTP server.
func main() {
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

	flights := repositories.NewSQLFlightRepository(conn, dialect)
	aircraft := repositories.NewSQLAircraftRepository(conn, dialect)

	// Initialize schema and seed demo data on first start for local runs.
	if err := initAndSeed(conn, flights, aircraft, cfg); err != nil {
		log.Fatal(err)
	}

	snapshots, closeCache, err := snapshotCache(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	svc, err := services.NewFleetService(flights, aircraft, snapshots, services.FleetServiceOptions{
		UtilizationDays: cfg.UtilizationDays,
		CacheTTL:        cfg.CacheTTL,
	})
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(svc),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening addr=:%s driver=%s", cfg.Port, cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}

// snapshotCache picks Redis when an address is configured and a
// process-local cache otherwise.
func snapshotCache(cfg config.Config) (ports.SnapshotCache, func(), error) {
	if cfg.RedisAddr == "" {
		return cache.NewMemorySnapshotCache(), func() {}, nil
	}

	client, err := cache.DialRedis(context.Background(), cfg.RedisAddr)
	if err != nil {
		return nil, nil, err
	}
	return cache.NewRedisSnapshotCache(client), func() { _ = client.Close() }, nil
}

func initAndSeed(
	conn *sql.DB,
	flights *repositories.SQLFlightRepository,
	aircraft *repositories.SQLAircraftRepository,
	cfg config.Config,
) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	ctx := context.Background()
	existing, err := flights.ListFlights(ctx)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if len(existing) > 0 {
		log.Printf("skipping seed: flights=%d already stored", len(existing))
		return nil
	}

	if err := repositories.SeedAircraftFromJSON(ctx, aircraft, cfg.AircraftSeedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	n, err := repositories.SeedFlightsFromCSV(ctx, flights, cfg.FlightSeedPath)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Printf("seeded flights=%d", n)

	return nil
}
