package tabular

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"psychstats/domain/core"
	"psychstats/domain/trial"
	"psychstats/internal"
	apperrors "psychstats/internal/errors"
)

// DataReader reads experiment trial files. Both CSV and XLSX are
// accepted; XLSX always reads Sheet1.
type DataReader struct {
	log *internal.Logger
}

// NewDataReader creates a reader for experiment data files.
func NewDataReader(logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	return &DataReader{log: logger}
}

// LoadExperiment reads a single experiment file into a trial table.
func (r *DataReader) LoadExperiment(ctx context.Context, path string) (trial.Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, apperrors.IOError(fmt.Sprintf("experiment file not found: %s", path), err)
	}

	start := time.Now()
	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = r.readExcelRows(path)
	default:
		rows, err = r.readCSVRows(path)
	}
	if err != nil {
		return nil, err
	}
	r.log.Debug("[DataReader] %s read in %.2fms (%d rows)",
		filepath.Base(path), float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, apperrors.SchemaInvalid(
			fmt.Sprintf("%s must have a header row and at least one data row", path), nil)
	}

	experiment := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	table, err := r.parseRows(experiment, rows)
	if err != nil {
		return nil, apperrors.SchemaInvalid(fmt.Sprintf("parsing %s", path), err)
	}
	return table, nil
}

// LoadExperiments reads several experiment files concurrently and
// row-concatenates them in the given order. Participant IDs repeat
// across experiments and are deliberately not deduplicated.
func (r *DataReader) LoadExperiments(ctx context.Context, paths []string) (trial.Table, error) {
	if len(paths) == 0 {
		return nil, apperrors.InvalidInput("no experiment files given")
	}

	tables := make([]trial.Table, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			table, err := r.LoadExperiment(gctx, path)
			if err != nil {
				return err
			}
			tables[i] = table
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var combined trial.Table
	for _, t := range tables {
		combined = append(combined, t...)
	}
	r.log.Info("[DataReader] loaded %d records from %d experiments", len(combined), len(paths))
	return combined, nil
}

func (r *DataReader) readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.IOError(fmt.Sprintf("failed to open CSV file %s", path), err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, apperrors.IOError(fmt.Sprintf("failed to read CSV file %s", path), err)
	}
	return rows, nil
}

func (r *DataReader) readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.IOError(fmt.Sprintf("failed to open Excel file %s", path), err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, apperrors.IOError(fmt.Sprintf("failed to read Sheet1 of %s", path), err)
	}
	return rows, nil
}

// Column keys after header normalization. Rate columns are resolved by
// name, never by position.
const (
	colCondition         = "condition"
	colParticipantsID    = "participantsid"
	colMatchingMember    = "matchingmember"
	colNonMatchingMember = "nonmatchingmember"
	colMatchingMorph     = "matchingmorph"
	colNonMatchingMorph  = "nonmatchingmorph"
)

var requiredColumns = []string{
	colCondition,
	colParticipantsID,
	colMatchingMember,
	colNonMatchingMember,
	colMatchingMorph,
	colNonMatchingMorph,
}

// normalizeHeader makes header matching case- and punctuation-insensitive,
// so "Non-Matching Member" and "non_matching member" both resolve.
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(h) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func (r *DataReader) parseRows(experiment string, rows [][]string) (trial.Table, error) {
	index := map[string]int{}
	for i, h := range rows[0] {
		index[normalizeHeader(h)] = i
	}
	// ParticipantsID appears as ParticipantID in some exports
	if _, ok := index[colParticipantsID]; !ok {
		if i, ok := index["participantid"]; ok {
			index[colParticipantsID] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, core.NewMissingColumnError(col)
		}
	}

	cell := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	table := make(trial.Table, 0, len(rows)-1)
	for n, row := range rows[1:] {
		rowNum := n + 2 // 1-based, after header

		condition, err := trial.ParseCondition(cell(row, colCondition))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		participant, err := core.ParseParticipantID(cell(row, colParticipantsID))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		rec := trial.Record{
			Condition:     condition,
			ParticipantID: participant,
			Experiment:    experiment,
		}
		for col, field := range map[string]*float64{
			colMatchingMember:    &rec.MatchingMember,
			colNonMatchingMember: &rec.NonMatchingMember,
			colMatchingMorph:     &rec.MatchingMorph,
			colNonMatchingMorph:  &rec.NonMatchingMorph,
		} {
			v, err := parseRate(cell(row, col), col, rowNum)
			if err != nil {
				return nil, err
			}
			*field = v
		}

		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		table = append(table, rec)
	}
	return table, nil
}

// parseRate parses one rate cell. Empty cells are missing observations.
func parseRate(raw, column string, rowNum int) (float64, error) {
	if raw == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, core.NewMalformedValueError(column, rowNum, raw)
	}
	if v < 0 || v > 1 {
		return 0, core.NewRateOutOfRangeError(column, rowNum, v)
	}
	return v, nil
}
