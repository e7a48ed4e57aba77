package cache

import (
	"testing"
)

func TestConfigValidateValidSingleMode(t *testing.T) {
	cfg := Config{
		Mode: ModeSingle,
		Ristretto: RistrettoConfig{
			NumCounters: 1000,
			MaxCost:     1 << 20,
			BufferItems: 64,
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestConfigValidateValidDisabledMode(t *testing.T) {
	cfg := Config{
		Mode: ModeDisabled,
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestConfigValidateEmptyMode(t *testing.T) {
	cfg := Config{
		Mode: "",
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() error = nil, want error")
	}
	if !containsString(err.Error(), "mode is required") {
		t.Errorf("error %q should contain 'mode is required'", err.Error())
	}
}

func TestConfigValidateUnknownMode(t *testing.T) {
	cfg := Config{
		Mode: "invalid-mode",
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() error = nil, want error")
	}
	if !containsString(err.Error(), "invalid-mode") {
		t.Errorf("error %q should contain 'invalid-mode'", err.Error())
	}
}

func TestConfigValidateSingleModeZeroMaxCost(t *testing.T) {
	cfg := Config{
		Mode: ModeSingle,
		Ristretto: RistrettoConfig{
			NumCounters: 1000,
			MaxCost:     0,
			BufferItems: 64,
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() error = nil, want error")
	}
	if !containsString(err.Error(), "max_cost must be positive") {
		t.Errorf("error %q should contain 'max_cost must be positive'", err.Error())
	}
}

func TestConfigValidateSingleModeZeroNumCounters(t *testing.T) {
	cfg := Config{
		Mode: ModeSingle,
		Ristretto: RistrettoConfig{
			NumCounters: 0,
			MaxCost:     1 << 20,
			BufferItems: 64,
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() error = nil, want error")
	}
	if !containsString(err.Error(), "num_counters must be positive") {
		t.Errorf("error %q should contain 'num_counters must be positive'", err.Error())
	}
}

func TestDefaultRistrettoConfig(t *testing.T) {
	cfg := DefaultRistrettoConfig()

	if cfg.NumCounters != 100_000 {
		t.Errorf("NumCounters = %d, want 100000", cfg.NumCounters)
	}
	if cfg.MaxCost != 16<<20 {
		t.Errorf("MaxCost = %d, want %d", cfg.MaxCost, 16<<20)
	}
	if cfg.BufferItems != 64 {
		t.Errorf("BufferItems = %d, want 64", cfg.BufferItems)
	}
}
