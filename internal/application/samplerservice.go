package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ericfisherdev/agencysampler/internal/domain/model"
	"github.com/ericfisherdev/agencysampler/internal/domain/port/driven"
)

// SamplerOptions configure a sampling run.
type SamplerOptions struct {
	// AgencyFile is the path to the agency name list.
	AgencyFile string
	// Search constrains every per-agency query.
	Search driven.SearchOptions
	// RequestDelay is the pause between agencies, keeping load on the
	// archive polite.
	RequestDelay time.Duration
	// IncludeEmpty controls whether agencies with zero collected articles
	// (including failed ones) appear in the output with an empty list.
	IncludeEmpty bool
}

// SamplerService orchestrates the per-agency sampling loop: one search per
// agency in file order, incremental flushes of the result file, and journal
// bookkeeping. A failed agency is logged and skipped; it never aborts the run.
type SamplerService struct {
	client  driven.ArchiveClient
	results driven.ResultStore
	journal driven.RunJournal
	opts    SamplerOptions
}

// NewSamplerService creates a new SamplerService with all required
// dependencies.
func NewSamplerService(client driven.ArchiveClient, results driven.ResultStore, journal driven.RunJournal, opts SamplerOptions) *SamplerService {
	return &SamplerService{
		client:  client,
		results: results,
		journal: journal,
		opts:    opts,
	}
}

// Run processes every agency in the configured list and returns the completed
// run record. The returned error is non-nil only for fatal conditions: an
// unreadable agency list, a canceled context, or a journal that cannot even
// open a run. Per-agency failures are reflected in the run's failure count.
func (s *SamplerService) Run(ctx context.Context) (*model.SampleRun, error) {
	agencies, err := LoadAgencyList(s.opts.AgencyFile)
	if err != nil {
		return nil, err
	}

	results, err := s.results.Load(ctx)
	if err != nil {
		// A corrupt or unreadable output file is not fatal: sampling starts
		// over and the next flush replaces it.
		slog.Warn("could not load existing results, starting fresh", "error", err)
		results = model.ResultMap{}
	} else if resumed := countNonEmpty(results); resumed > 0 {
		slog.Info("loaded existing results", "agencies", resumed)
	}

	run := &model.SampleRun{
		ID:            uuid.NewString(),
		AgencyFile:    s.opts.AgencyFile,
		StartedAt:     time.Now(),
		AgenciesTotal: len(agencies),
	}

	if err := s.journal.StartRun(ctx, *run); err != nil {
		return nil, err
	}

	slog.Info("sampling run started",
		"run_id", run.ID,
		"agency_file", s.opts.AgencyFile,
		"agencies", len(agencies),
	)

	for i, agency := range agencies {
		if ctx.Err() != nil {
			return run, ctx.Err()
		}

		if existing, ok := results[agency]; ok && len(existing) > 0 {
			slog.Info("agency already sampled, skipping", "agency", agency, "articles", len(existing))
			s.recordOutcome(ctx, run.ID, agency, len(existing), model.OutcomeSkipped, nil)
			continue
		}

		slog.Info("sampling agency", "agency", agency, "index", i+1, "total", len(agencies))

		articles, err := s.client.SearchArticles(ctx, agency, s.opts.Search)
		if err != nil {
			slog.Error("agency search failed", "agency", agency, "error", err)
			run.AgenciesFailed++
			s.recordOutcome(ctx, run.ID, agency, 0, model.OutcomeFailed, err)
			if s.opts.IncludeEmpty {
				results[agency] = []model.Article{}
			}
		} else {
			if len(articles) > 0 || s.opts.IncludeEmpty {
				results[agency] = articles
			}
			slog.Info("agency sampled", "agency", agency, "articles", len(articles))
			s.recordOutcome(ctx, run.ID, agency, len(articles), model.OutcomeOK, nil)
		}

		// Flush after every agency so an interrupted run keeps its progress.
		if err := s.results.Save(ctx, results); err != nil {
			slog.Error("saving results failed", "agency", agency, "error", err)
		}

		if s.opts.RequestDelay > 0 && i < len(agencies)-1 {
			select {
			case <-ctx.Done():
				return run, ctx.Err()
			case <-time.After(s.opts.RequestDelay):
			}
		}
	}

	finishedAt := time.Now()
	run.FinishedAt = &finishedAt
	if err := s.journal.FinishRun(ctx, run.ID, finishedAt, run.AgenciesFailed); err != nil {
		slog.Error("finishing run journal entry failed", "run_id", run.ID, "error", err)
	}

	slog.Info("sampling run complete",
		"run_id", run.ID,
		"agencies", run.AgenciesTotal,
		"failed", run.AgenciesFailed,
		"duration", finishedAt.Sub(run.StartedAt).Round(time.Millisecond),
	)

	return run, nil
}

// recordOutcome journals one agency's outcome. Journal write failures are
// logged and swallowed; the journal never blocks sampling.
func (s *SamplerService) recordOutcome(ctx context.Context, runID, agency string, count int, status model.OutcomeStatus, cause error) {
	outcome := model.AgencyOutcome{
		RunID:        runID,
		Agency:       agency,
		ArticleCount: count,
		Status:       status,
		ProcessedAt:  time.Now(),
	}
	if cause != nil {
		outcome.Error = cause.Error()
	}

	if err := s.journal.RecordOutcome(ctx, outcome); err != nil {
		slog.Error("journaling outcome failed", "agency", agency, "error", err)
	}
}

// countNonEmpty returns the number of agencies that already have articles.
func countNonEmpty(results model.ResultMap) int {
	var n int
	for _, articles := range results {
		if len(articles) > 0 {
			n++
		}
	}
	return n
}
