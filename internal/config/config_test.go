package config

import (
	"testing"
	"time"
)

func TestGetFallsBack(t *testing.T) {
	t.Setenv("FLEET_TEST_EMPTY", "  ")
	if got := Get("FLEET_TEST_EMPTY", "x"); got != "x" {
		t.Errorf("Get = %q, want x", got)
	}
}

func TestGetIntAndDuration(t *testing.T) {
	t.Setenv("FLEET_TEST_DAYS", "31")
	t.Setenv("FLEET_TEST_BAD", "many")
	t.Setenv("FLEET_TEST_TTL", "90s")

	if got := GetInt("FLEET_TEST_DAYS", 30); got != 31 {
		t.Errorf("GetInt = %d, want 31", got)
	}
	if got := GetInt("FLEET_TEST_BAD", 30); got != 30 {
		t.Errorf("GetInt(bad) = %d, want fallback 30", got)
	}
	if got := GetDuration("FLEET_TEST_TTL", time.Minute); got != 90*time.Second {
		t.Errorf("GetDuration = %s, want 90s", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://fleet@localhost/fleet")
	t.Setenv("UTILIZATION_DAYS", "")

	cfg := Load()
	if cfg.DBDriver != "postgres" {
		t.Errorf("DBDriver = %q, want postgres", cfg.DBDriver)
	}
	if cfg.DSN() != "postgres://fleet@localhost/fleet" {
		t.Errorf("DSN = %q", cfg.DSN())
	}
	if cfg.UtilizationDays != 30 {
		t.Errorf("UtilizationDays = %d, want 30", cfg.UtilizationDays)
	}
}
