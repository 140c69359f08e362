package app

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psychstats/adapters/stats"
	"psychstats/domain/core"
	"psychstats/domain/trial"
	"psychstats/internal"
)

func testTable() trial.Table {
	// Three participants per condition, simultaneous clearly stronger.
	rates := map[trial.Condition][][4]float64{
		trial.Simultaneous: {
			{1.0, 0.25, 0.75, 0.25},
			{0.75, 0.0, 1.0, 0.5},
			{1.0, 0.25, 0.75, 0.0},
		},
		trial.Sequential: {
			{0.5, 0.5, 0.5, 0.5},
			{0.75, 0.75, 0.25, 0.75},
			{0.25, 0.5, 0.5, 0.25},
		},
	}

	var table trial.Table
	id := 0
	for _, cond := range trial.Conditions() {
		for _, r := range rates[cond] {
			id++
			table = append(table, trial.Record{
				Condition:         cond,
				ParticipantID:     core.ParticipantID(string(rune('A' + id))),
				MatchingMember:    r[0],
				NonMatchingMember: r[1],
				MatchingMorph:     r[2],
				NonMatchingMorph:  r[3],
			})
		}
	}
	return table
}

func newTestAnalyzer(t *testing.T, nTrials int) *Analyzer {
	t.Helper()
	analyzer, err := NewAnalyzer(nTrials, internal.NewLogger(internal.LogLevelError))
	require.NoError(t, err)
	return analyzer
}

func TestAnalyzer_SixRowsFixedOrder(t *testing.T) {
	analyzer := newTestAnalyzer(t, DefaultNTrials)

	rep, err := analyzer.Summarize(testTable())
	require.NoError(t, err)

	require.Len(t, rep.Rows, 6)
	want := []trial.StimulusType{
		trial.MatchingMember,
		trial.NonMatchingMember,
		trial.MatchingMorph,
		trial.NonMatchingMorph,
		trial.DPrimeMember,
		trial.DPrimeMorph,
	}
	seen := map[trial.StimulusType]bool{}
	for i, row := range rep.Rows {
		assert.Equal(t, want[i], row.StimulusType, "row %d", i)
		assert.False(t, seen[row.StimulusType], "duplicate stimulus type %s", row.StimulusType)
		seen[row.StimulusType] = true
	}

	assert.False(t, core.ID(rep.ID).IsEmpty())
	assert.False(t, rep.GeneratedAt.IsZero())
	assert.Equal(t, DefaultNTrials, rep.NTrials)
}

func TestAnalyzer_DescriptiveValues(t *testing.T) {
	analyzer := newTestAnalyzer(t, DefaultNTrials)

	rep, err := analyzer.Summarize(testTable())
	require.NoError(t, err)

	member := rep.Rows[0]
	require.Equal(t, trial.MatchingMember, member.StimulusType)
	// Simultaneous {1, 0.75, 1}: mean 0.9167 -> 0.92; Sequential {0.5, 0.75, 0.25}: mean 0.5
	assert.InDelta(t, 0.92, member.MeanSimultaneous, 1e-9)
	assert.InDelta(t, 0.50, member.MeanSequential, 1e-9)
	assert.Equal(t, 3, member.NSimultaneous)
	assert.Equal(t, 3, member.NSequential)
	assert.Greater(t, member.CohensD, 0.0)
}

func TestAnalyzer_DPrimeRowsMatchDirectComputation(t *testing.T) {
	analyzer := newTestAnalyzer(t, DefaultNTrials)
	table := testTable()

	rep, err := analyzer.Summarize(table)
	require.NoError(t, err)

	// Recompute the d' Member row from first principles.
	groups := map[trial.Condition][]float64{}
	for _, rec := range table {
		d := stats.DPrime(rec.MatchingMember, rec.NonMatchingMember, DefaultNTrials)
		groups[rec.Condition] = append(groups[rec.Condition], d)
	}
	simSummary, err := stats.Describe(groups[trial.Simultaneous], "sim")
	require.NoError(t, err)
	seqSummary, err := stats.Describe(groups[trial.Sequential], "seq")
	require.NoError(t, err)

	dMember := rep.Rows[4]
	require.Equal(t, trial.DPrimeMember, dMember.StimulusType)
	assert.InDelta(t, stats.Round2(simSummary.Mean), dMember.MeanSimultaneous, 1e-9)
	assert.InDelta(t, stats.Round2(seqSummary.Mean), dMember.MeanSequential, 1e-9)
	assert.Equal(t, 3, dMember.NSimultaneous)
	assert.Equal(t, 3, dMember.NSequential)
}

func TestAnalyzer_MissingRatesAreSkipped(t *testing.T) {
	analyzer := newTestAnalyzer(t, DefaultNTrials)
	table := testTable()

	// Blank one participant's member pair; the d' Member group shrinks
	// but the morph columns keep all observations.
	table[0].MatchingMember = math.NaN()

	rep, err := analyzer.Summarize(table)
	require.NoError(t, err)

	assert.Equal(t, 2, rep.Rows[0].NSimultaneous, "raw matching member loses the NaN observation")
	assert.Equal(t, 2, rep.Rows[4].NSimultaneous, "d' member drops participants missing either pair rate")
	assert.Equal(t, 3, rep.Rows[2].NSimultaneous, "morph column unaffected")
}

func TestAnalyzer_ErrorPaths(t *testing.T) {
	analyzer := newTestAnalyzer(t, DefaultNTrials)

	t.Run("empty table", func(t *testing.T) {
		_, err := analyzer.Summarize(nil)
		require.Error(t, err)
	})

	t.Run("missing condition", func(t *testing.T) {
		var table trial.Table
		for _, rec := range testTable() {
			if rec.Condition == trial.Simultaneous {
				table = append(table, rec)
			}
		}
		_, err := analyzer.Summarize(table)
		require.ErrorIs(t, err, core.ErrMissingCondition)
	})

	t.Run("group below two observations", func(t *testing.T) {
		table := testTable()[:4] // three simultaneous, one sequential
		_, err := analyzer.Summarize(table)
		require.Error(t, err)
		assert.True(t, core.IsInsufficientDataError(err), "got %v", err)
	})

	t.Run("invalid rate", func(t *testing.T) {
		table := testTable()
		table[2].MatchingMorph = 1.5
		_, err := analyzer.Summarize(table)
		require.ErrorIs(t, err, core.ErrRateOutOfRange)
	})
}

func TestNewAnalyzer_RejectsBadTrialCount(t *testing.T) {
	_, err := NewAnalyzer(0, nil)
	require.Error(t, err)
}

func TestAnalyzer_Deterministic(t *testing.T) {
	analyzer := newTestAnalyzer(t, DefaultNTrials)
	table := testTable()

	first, err := analyzer.Summarize(table)
	require.NoError(t, err)
	second, err := analyzer.Summarize(table)
	require.NoError(t, err)

	assert.Equal(t, first.Rows, second.Rows)
}
