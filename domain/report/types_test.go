package report

import (
	"testing"

	"psychstats/domain/trial"
)

func TestHeader_Contract(t *testing.T) {
	want := []string{
		"StimulusType",
		"Mean_Simultaneous", "Mean_Sequential",
		"SD_Simultaneous", "SD_Sequential",
		"N_Simultaneous", "N_Sequential",
		"Cohens_d", "t_value", "p_value", "df",
	}
	got := Header()
	if len(got) != len(want) {
		t.Fatalf("header has %d columns, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRowOrder(t *testing.T) {
	want := []trial.StimulusType{
		trial.MatchingMember,
		trial.NonMatchingMember,
		trial.MatchingMorph,
		trial.NonMatchingMorph,
		trial.DPrimeMember,
		trial.DPrimeMorph,
	}
	got := RowOrder()
	if len(got) != 6 {
		t.Fatalf("row order has %d entries, want 6", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReport_Validate(t *testing.T) {
	rep := &Report{}
	for _, st := range RowOrder() {
		rep.Rows = append(rep.Rows, Row{StimulusType: st})
	}
	if err := rep.Validate(); err != nil {
		t.Errorf("well-formed report rejected: %v", err)
	}

	short := &Report{Rows: rep.Rows[:5]}
	if err := short.Validate(); err == nil {
		t.Error("five-row report accepted")
	}

	swapped := &Report{Rows: append([]Row(nil), rep.Rows...)}
	swapped.Rows[0], swapped.Rows[1] = swapped.Rows[1], swapped.Rows[0]
	if err := swapped.Validate(); err == nil {
		t.Error("out-of-order report accepted")
	}
}
