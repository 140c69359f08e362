package report

import (
	"fmt"

	"psychstats/domain/core"
	"psychstats/domain/trial"
)

// Row is one summary line of the final report. Statistics arrive already
// rounded: means, SDs, Cohen's d and t to 2 decimals, p to 2 significant
// figures, df to the nearest integer.
type Row struct {
	StimulusType trial.StimulusType `json:"stimulus_type"`

	MeanSimultaneous float64 `json:"mean_simultaneous"`
	MeanSequential   float64 `json:"mean_sequential"`
	SDSimultaneous   float64 `json:"sd_simultaneous"`
	SDSequential     float64 `json:"sd_sequential"`
	NSimultaneous    int     `json:"n_simultaneous"`
	NSequential      int     `json:"n_sequential"`

	CohensD float64 `json:"cohens_d"`
	TValue  float64 `json:"t_value"`
	PValue  float64 `json:"p_value"`
	DF      int     `json:"df"`
}

// Report is the assembled summary table plus provenance metadata. The
// metadata never appears in the tabular output; downstream consumers key
// on the column contract alone.
type Report struct {
	ID          core.ReportID  `json:"id"`
	GeneratedAt core.Timestamp `json:"generated_at"`
	NTrials     int            `json:"n_trials"`
	Rows        []Row          `json:"rows"`
}

// NewReportID mints a time-ordered report identifier.
func NewReportID() core.ReportID {
	return core.ReportID(core.NewID())
}

// Header is the exact output column contract, in order. Consumers of the
// exported CSV depend on these names verbatim.
func Header() []string {
	return []string{
		"StimulusType",
		"Mean_Simultaneous",
		"Mean_Sequential",
		"SD_Simultaneous",
		"SD_Sequential",
		"N_Simultaneous",
		"N_Sequential",
		"Cohens_d",
		"t_value",
		"p_value",
		"df",
	}
}

// RowOrder is the fixed row order: the four raw rate types in their
// original column order, then the two derived d-prime types.
func RowOrder() []trial.StimulusType {
	order := trial.RawStimulusTypes()
	for _, pair := range trial.SensitivityPairs() {
		order = append(order, pair.Label)
	}
	return order
}

// Validate checks the six-row fixed-order contract.
func (r *Report) Validate() error {
	want := RowOrder()
	if len(r.Rows) != len(want) {
		return fmt.Errorf("report has %d rows, want %d", len(r.Rows), len(want))
	}
	for i, row := range r.Rows {
		if row.StimulusType != want[i] {
			return fmt.Errorf("row %d is %q, want %q", i, row.StimulusType, want[i])
		}
	}
	return nil
}
