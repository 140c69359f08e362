package app

import (
	"fmt"
	"math"

	"psychstats/adapters/stats"
	"psychstats/domain/core"
	"psychstats/domain/report"
	"psychstats/domain/trial"
	"psychstats/internal"
)

// DefaultNTrials is the number of trials behind each rate field. The
// judgment task presents 4 trials per stimulus type; callers reporting
// over pooled blocks can override it explicitly.
const DefaultNTrials = 4

// Analyzer turns a trial table into the six-row summary report. It is a
// pure function of its input: no I/O, no shared state, deterministic
// output for a given (table, nTrials).
type Analyzer struct {
	nTrials int
	log     *internal.Logger
}

// NewAnalyzer creates an analyzer for the given per-stimulus trial count.
func NewAnalyzer(nTrials int, logger *internal.Logger) (*Analyzer, error) {
	if nTrials < 1 {
		return nil, fmt.Errorf("n_trials must be at least 1, got %d", nTrials)
	}
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	return &Analyzer{nTrials: nTrials, log: logger}, nil
}

// Summarize runs the full analysis: descriptives and Welch comparisons
// for the four raw rate columns, per-participant d-prime for the two
// hit/false-alarm pairs, the same comparison over the d-prime values,
// and assembly into the fixed-order report.
func (a *Analyzer) Summarize(table trial.Table) (*report.Report, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	a.log.Debug("summarizing %d trial records (n_trials=%d)", len(table), a.nTrials)

	rows := make([]report.Row, 0, len(report.RowOrder()))

	// Raw rate columns, in original column order
	for _, st := range trial.RawStimulusTypes() {
		groups, err := table.RatesByCondition(st)
		if err != nil {
			return nil, err
		}
		row, err := a.compareConditions(st, groups)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	// Derived d-prime measures
	for _, pair := range trial.SensitivityPairs() {
		sens, err := a.sensitivities(table, pair)
		if err != nil {
			return nil, err
		}
		row, err := a.compareConditions(pair.Label, sens.ByCondition())
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	rep := &report.Report{
		ID:          report.NewReportID(),
		GeneratedAt: core.Now(),
		NTrials:     a.nTrials,
		Rows:        rows,
	}
	if err := rep.Validate(); err != nil {
		return nil, err
	}
	a.log.Info("report %s assembled: %d rows", rep.ID, len(rep.Rows))
	return rep, nil
}

// sensitivities computes one d-prime observation per participant for a
// hit/false-alarm pair. Participants missing either rate contribute no
// observation.
func (a *Analyzer) sensitivities(table trial.Table, pair trial.SensitivityPair) (trial.SensitivityTable, error) {
	sens := make(trial.SensitivityTable, 0, len(table))
	for _, rec := range table {
		hit, err := rec.Rate(pair.Hit)
		if err != nil {
			return nil, err
		}
		fa, err := rec.Rate(pair.FalseAlarm)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(hit) || math.IsNaN(fa) {
			continue
		}
		sens = append(sens, trial.Sensitivity{
			Condition:     rec.Condition,
			ParticipantID: rec.ParticipantID,
			StimulusType:  pair.Label,
			DPrime:        stats.DPrime(hit, fa, a.nTrials),
		})
	}
	return sens, nil
}

// compareConditions builds one summary row: per-condition descriptives,
// Welch's t-test, pooled-SD Cohen's d, presentation rounding.
func (a *Analyzer) compareConditions(st trial.StimulusType, groups map[trial.Condition][]float64) (report.Row, error) {
	sim := groups[trial.Simultaneous]
	seq := groups[trial.Sequential]

	simSummary, err := stats.Describe(sim, fmt.Sprintf("%s / %s", st, trial.Simultaneous))
	if err != nil {
		return report.Row{}, err
	}
	seqSummary, err := stats.Describe(seq, fmt.Sprintf("%s / %s", st, trial.Sequential))
	if err != nil {
		return report.Row{}, err
	}

	tt, err := stats.WelchTTest(sim, seq)
	if err != nil {
		return report.Row{}, fmt.Errorf("%s: %w", st, err)
	}
	d, err := stats.CohensD(sim, seq)
	if err != nil {
		return report.Row{}, fmt.Errorf("%s: %w", st, err)
	}

	return report.Row{
		StimulusType:     st,
		MeanSimultaneous: stats.Round2(simSummary.Mean),
		MeanSequential:   stats.Round2(seqSummary.Mean),
		SDSimultaneous:   stats.Round2(simSummary.SD),
		SDSequential:     stats.Round2(seqSummary.SD),
		NSimultaneous:    simSummary.N,
		NSequential:      seqSummary.N,
		CohensD:          stats.Round2(d),
		TValue:           stats.Round2(tt.T),
		PValue:           stats.SignificantFigures(tt.P, 2),
		DF:               stats.RoundDF(tt.DF),
	}, nil
}
