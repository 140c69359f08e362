package testkit

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"psychstats/domain/trial"
)

func TestGenerateExperiment_Deterministic(t *testing.T) {
	cfg := DefaultGeneratorConfig()

	first := GenerateExperiment(cfg)
	second := GenerateExperiment(cfg)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("record %d differs between seeded runs", i)
		}
	}

	cfg.Seed = 2
	other := GenerateExperiment(cfg)
	same := true
	for i := range first {
		if first[i] != other[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical tables")
	}
}

func TestGenerateExperiment_ValidAndQuantized(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	table := GenerateExperiment(cfg)

	if len(table) != 2*cfg.ParticipantsPerCondition {
		t.Fatalf("got %d records, want %d", len(table), 2*cfg.ParticipantsPerCondition)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("generated table invalid: %v", err)
	}

	n := float64(cfg.NTrials)
	for _, rec := range table {
		for _, st := range trial.RawStimulusTypes() {
			v, err := rec.Rate(st)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(v*n-math.Round(v*n)) > 1e-9 {
				t.Errorf("rate %g is not on the 1/%d grid", v, cfg.NTrials)
			}
		}
	}
}

func TestWriteCSV_Schema(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.ParticipantsPerCondition = 2

	var buf bytes.Buffer
	if err := WriteCSV(&buf, GenerateExperiment(cfg)); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want header plus 4 rows", len(lines))
	}
	if lines[0] != "Condition,ParticipantsID,Matching Member,Non-matching Member,Matching Morph,Non-matching Morph" {
		t.Errorf("header = %q", lines[0])
	}
}
