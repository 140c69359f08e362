package trial

import (
	"psychstats/domain/core"
)

// Sensitivity is a derived per-participant d-prime observation. It is
// transient: produced during analysis, consumed by the summary step, and
// never persisted on its own.
type Sensitivity struct {
	Condition     Condition          `json:"condition"`
	ParticipantID core.ParticipantID `json:"participant_id"`
	StimulusType  StimulusType       `json:"stimulus_type"` // d' Member or d' Morph
	DPrime        float64            `json:"d_prime"`
}

// SensitivityTable collects d-prime observations for one label.
type SensitivityTable []Sensitivity

// ByCondition partitions d-prime values by condition.
func (t SensitivityTable) ByCondition() map[Condition][]float64 {
	out := map[Condition][]float64{}
	for _, s := range t {
		out[s.Condition] = append(out[s.Condition], s.DPrime)
	}
	return out
}
