package testkit

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand"

	"psychstats/domain/core"
	"psychstats/domain/trial"
)

// GeneratorConfig controls synthetic experiment generation. Seeded runs
// are fully deterministic, so tests and demos can assert exact tables.
type GeneratorConfig struct {
	Seed                     int64
	Experiment               string
	ParticipantsPerCondition int

	// Mean probability of a correct judgment on matching stimuli, per
	// condition. Non-matching (false alarm) rates center on the
	// complement.
	SimultaneousAccuracy float64
	SequentialAccuracy   float64

	// Noise is the SD of the per-participant gaussian jitter.
	Noise float64

	// NTrials quantizes rates to multiples of 1/NTrials, which also
	// produces occasional exact 0 and 1 scores for the correction path.
	NTrials int
}

// DefaultGeneratorConfig mirrors the shape of a typical face-matching
// study: 4 trials per stimulus type, simultaneous presentation easier
// than sequential.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:                     1,
		Experiment:               "synthetic",
		ParticipantsPerCondition: 24,
		SimultaneousAccuracy:     0.85,
		SequentialAccuracy:       0.70,
		Noise:                    0.12,
		NTrials:                  4,
	}
}

// GenerateExperiment produces a synthetic trial table.
func GenerateExperiment(cfg GeneratorConfig) trial.Table {
	rng := rand.New(rand.NewSource(cfg.Seed))
	table := make(trial.Table, 0, 2*cfg.ParticipantsPerCondition)

	accuracy := map[trial.Condition]float64{
		trial.Simultaneous: cfg.SimultaneousAccuracy,
		trial.Sequential:   cfg.SequentialAccuracy,
	}

	id := 0
	for _, cond := range trial.Conditions() {
		acc := accuracy[cond]
		for i := 0; i < cfg.ParticipantsPerCondition; i++ {
			id++
			table = append(table, trial.Record{
				Condition:     cond,
				ParticipantID: core.ParticipantID(fmt.Sprintf("P%03d", id)),
				Experiment:    cfg.Experiment,
				// Morph discrimination is harder than member matching,
				// so shrink its accuracy toward chance.
				MatchingMember:    cfg.sampleRate(rng, acc),
				NonMatchingMember: cfg.sampleRate(rng, 1-acc),
				MatchingMorph:     cfg.sampleRate(rng, 0.5+(acc-0.5)*0.6),
				NonMatchingMorph:  cfg.sampleRate(rng, 0.5-(acc-0.5)*0.6),
			})
		}
	}
	return table
}

// sampleRate draws a jittered rate and quantizes it to the trial grid.
func (cfg GeneratorConfig) sampleRate(rng *rand.Rand, mean float64) float64 {
	v := mean + rng.NormFloat64()*cfg.Noise
	v = math.Max(0, math.Min(1, v))
	n := float64(cfg.NTrials)
	return math.Round(v*n) / n
}

// WriteCSV emits a trial table in the canonical experiment-file schema,
// suitable as DataReader input.
func WriteCSV(w io.Writer, table trial.Table) error {
	cw := csv.NewWriter(w)
	header := []string{
		"Condition", "ParticipantsID",
		"Matching Member", "Non-matching Member",
		"Matching Morph", "Non-matching Morph",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, rec := range table {
		row := []string{
			string(rec.Condition),
			string(rec.ParticipantID),
			formatRate(rec.MatchingMember),
			formatRate(rec.NonMatchingMember),
			formatRate(rec.MatchingMorph),
			formatRate(rec.NonMatchingMorph),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatRate(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return fmt.Sprintf("%g", v)
}
