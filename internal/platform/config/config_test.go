package config

import "testing"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_DSN", "postgres://localhost/ganjine")
	t.Setenv("TG_API_ID", "12345")
	t.Setenv("TG_API_HASH", "hash")
	t.Setenv("CHANNEL_USERNAME", "somechannel")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HomeCityEn != "Tehran" {
		t.Errorf("HomeCityEn = %q, want Tehran", cfg.HomeCityEn)
	}

	if cfg.DefaultJalaliYear != 1404 {
		t.Errorf("DefaultJalaliYear = %d, want 1404", cfg.DefaultJalaliYear)
	}

	if cfg.WorkerBatchSize != 10 {
		t.Errorf("WorkerBatchSize = %d, want 10", cfg.WorkerBatchSize)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("WORKER_POLL_INTERVAL", "30s")
	t.Setenv("GAZETTEER_MIN_POPULATION", "1000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.WorkerPollInterval.Seconds() != 30 {
		t.Errorf("WorkerPollInterval = %v, want 30s", cfg.WorkerPollInterval)
	}

	if cfg.GazetteerMinPopulation != 1000 {
		t.Errorf("GazetteerMinPopulation = %d, want 1000", cfg.GazetteerMinPopulation)
	}
}
