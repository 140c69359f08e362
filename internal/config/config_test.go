package config

import (
	"testing"
)

func TestLoad(t *testing.T) {
	t.Setenv("DATA_FILES", "exp1.csv, exp2.csv,exp3.xlsx")
	t.Setenv("N_TRIALS", "8")
	t.Setenv("OUTPUT_CSV", "report.csv")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Data.Files) != 3 || cfg.Data.Files[1] != "exp2.csv" {
		t.Errorf("files = %v", cfg.Data.Files)
	}
	if cfg.Data.NTrials != 8 {
		t.Errorf("n_trials = %d, want 8", cfg.Data.NTrials)
	}
	if cfg.Output.CSVPath != "report.csv" {
		t.Errorf("csv path = %q", cfg.Output.CSVPath)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATA_FILES", "exp1.csv")
	t.Setenv("N_TRIALS", "")
	t.Setenv("OUTPUT_CSV", "")
	t.Setenv("OUTPUT_HTML", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Data.NTrials != 4 {
		t.Errorf("default n_trials = %d, want 4", cfg.Data.NTrials)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("DATA_FILES", "")
	if _, err := Load(); err == nil {
		t.Error("expected error when DATA_FILES is empty")
	}

	t.Setenv("DATA_FILES", "exp1.csv")
	t.Setenv("N_TRIALS", "0")
	if _, err := Load(); err == nil {
		t.Error("expected error when N_TRIALS is zero")
	}
}
