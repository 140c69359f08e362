package trial

import (
	"fmt"
	"math"

	"psychstats/domain/core"
)

// Condition is the presentation condition a participant was assigned to.
type Condition string

const (
	Simultaneous Condition = "Simultaneous"
	Sequential   Condition = "Sequential"
)

// Conditions returns both presentation conditions in canonical order.
// Simultaneous is always the first sample of a comparison.
func Conditions() [2]Condition {
	return [2]Condition{Simultaneous, Sequential}
}

// ParseCondition maps a raw label onto a known condition.
func ParseCondition(s string) (Condition, error) {
	switch Condition(s) {
	case Simultaneous, Sequential:
		return Condition(s), nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnknownCondition, s)
}

// StimulusType identifies which rate or derived measure a value describes.
type StimulusType string

const (
	MatchingMember    StimulusType = "Matching Member"
	NonMatchingMember StimulusType = "Non-matching Member"
	MatchingMorph     StimulusType = "Matching Morph"
	NonMatchingMorph  StimulusType = "Non-matching Morph"
	DPrimeMember      StimulusType = "d' Member"
	DPrimeMorph       StimulusType = "d' Morph"
)

// RawStimulusTypes returns the four observed rate columns in their
// original column order. Report rows follow this order exactly.
func RawStimulusTypes() []StimulusType {
	return []StimulusType{MatchingMember, NonMatchingMember, MatchingMorph, NonMatchingMorph}
}

// SensitivityPair names the (hit, false alarm) rate columns that combine
// into one d-prime measure.
type SensitivityPair struct {
	Hit        StimulusType
	FalseAlarm StimulusType
	Label      StimulusType
}

// SensitivityPairs returns the two hit/false-alarm pairings, member first.
func SensitivityPairs() []SensitivityPair {
	return []SensitivityPair{
		{Hit: MatchingMember, FalseAlarm: NonMatchingMember, Label: DPrimeMember},
		{Hit: MatchingMorph, FalseAlarm: NonMatchingMorph, Label: DPrimeMorph},
	}
}

// Record is one participant's outcome in one experiment. Rate fields are
// fractions of correct judgments in [0,1]; NaN marks a missing
// observation. Fields are accessed by name, never by column position.
type Record struct {
	Condition     Condition          `json:"condition"`
	ParticipantID core.ParticipantID `json:"participant_id"`
	Experiment    string             `json:"experiment,omitempty"` // source file provenance

	MatchingMember    float64 `json:"matching_member"`
	NonMatchingMember float64 `json:"non_matching_member"`
	MatchingMorph     float64 `json:"matching_morph"`
	NonMatchingMorph  float64 `json:"non_matching_morph"`
}

// Rate returns the named rate field.
func (r Record) Rate(st StimulusType) (float64, error) {
	switch st {
	case MatchingMember:
		return r.MatchingMember, nil
	case NonMatchingMember:
		return r.NonMatchingMember, nil
	case MatchingMorph:
		return r.MatchingMorph, nil
	case NonMatchingMorph:
		return r.NonMatchingMorph, nil
	}
	return 0, fmt.Errorf("no rate field for stimulus type %q", st)
}

// Validate checks the condition label and rate bounds. NaN rates are
// valid (missing observation); 0 and 1 are valid and corrected later.
func (r Record) Validate() error {
	if _, err := ParseCondition(string(r.Condition)); err != nil {
		return fmt.Errorf("participant %s: %w", r.ParticipantID, err)
	}
	for _, st := range RawStimulusTypes() {
		v, err := r.Rate(st)
		if err != nil {
			return err
		}
		if math.IsNaN(v) {
			continue
		}
		if v < 0 || v > 1 {
			return fmt.Errorf("participant %s: %w: %s = %g", r.ParticipantID, core.ErrRateOutOfRange, st, v)
		}
	}
	return nil
}

// Table is an in-memory collection of trial records, typically the
// row-concatenation of several experiment files.
type Table []Record

// Validate checks every record and requires both conditions to be present.
func (t Table) Validate() error {
	if len(t) == 0 {
		return core.NewInsufficientDataError("trial table", 0)
	}
	seen := map[Condition]int{}
	for _, r := range t {
		if err := r.Validate(); err != nil {
			return err
		}
		seen[r.Condition]++
	}
	for _, c := range Conditions() {
		if seen[c] == 0 {
			return fmt.Errorf("%w: %s", core.ErrMissingCondition, c)
		}
	}
	return nil
}

// RatesByCondition partitions the non-missing observations of one
// stimulus-type column by condition.
func (t Table) RatesByCondition(st StimulusType) (map[Condition][]float64, error) {
	out := map[Condition][]float64{}
	for _, r := range t {
		v, err := r.Rate(st)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(v) {
			continue
		}
		out[r.Condition] = append(out[r.Condition], v)
	}
	return out, nil
}
