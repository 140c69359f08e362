package ports

import (
	"context"

	"psychstats/domain/trial"
)

// TrialSource loads trial tables from external storage (one file per
// experiment). Implementations own all filesystem assumptions; the
// analyzer never touches a path.
type TrialSource interface {
	// LoadExperiment reads a single experiment file into a trial table.
	LoadExperiment(ctx context.Context, path string) (trial.Table, error)

	// LoadExperiments reads several experiment files and row-concatenates
	// them in the given order. Participant IDs are not deduplicated
	// across experiments.
	LoadExperiments(ctx context.Context, paths []string) (trial.Table, error)
}
