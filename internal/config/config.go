package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Settings for the server and the db tool. Every field has an env key and
// a fallback.
type Config struct {
	Port             string
	DBDriver         string
	DBPath           string
	DatabaseURL      string
	AircraftSeedPath string
	FlightSeedPath   string
	RedisAddr        string
	CacheTTL         time.Duration
	UtilizationDays  int
}

// Load reads .env when present, then the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	return Config{
		Port:             Get("PORT", "8080"),
		DBDriver:         strings.ToLower(Get("DB_DRIVER", "sqlite")),
		DBPath:           Get("DB_PATH", "data/fleet.db"),
		DatabaseURL:      Get("DATABASE_URL", ""),
		AircraftSeedPath: Get("AIRCRAFT_SEED_PATH", "data/seeds/aircraft.json"),
		FlightSeedPath:   Get("FLIGHT_SEED_PATH", "data/seeds/flights.csv"),
		RedisAddr:        Get("REDIS_ADDR", ""),
		CacheTTL:         GetDuration("CACHE_TTL", 10*time.Minute),
		UtilizationDays:  GetInt("UTILIZATION_DAYS", 30),
	}
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.DatabaseURL
	}
	return c.DBPath
}

func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: %s=%q is not a duration, using %s", key, v, fallback)
		return fallback
	}
	return d
}
