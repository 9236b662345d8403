package driven

import (
	"context"
	"time"

	"github.com/ericfisherdev/agencysampler/internal/domain/model"
)

// RunJournal defines the driven port for persisting sampling-run history.
// The journal is ancillary to the output file: services log journal write
// failures but never abort a run over them.
type RunJournal interface {
	// StartRun records the beginning of a run.
	StartRun(ctx context.Context, run model.SampleRun) error

	// RecordOutcome appends the outcome for a single agency.
	RecordOutcome(ctx context.Context, outcome model.AgencyOutcome) error

	// FinishRun marks a run complete with its failure count.
	FinishRun(ctx context.Context, runID string, finishedAt time.Time, agenciesFailed int) error

	// OutcomesForRun returns a run's outcomes in processing order.
	OutcomesForRun(ctx context.Context, runID string) ([]model.AgencyOutcome, error)
}
