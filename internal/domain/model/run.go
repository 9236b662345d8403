package model

import "time"

// OutcomeStatus classifies how a single agency was handled during a run.
type OutcomeStatus string

const (
	// OutcomeOK means the agency was searched and its articles recorded.
	OutcomeOK OutcomeStatus = "ok"
	// OutcomeFailed means the search failed; the run continued without it.
	OutcomeFailed OutcomeStatus = "failed"
	// OutcomeSkipped means the agency already had results from a previous run.
	OutcomeSkipped OutcomeStatus = "skipped"
)

// SampleRun is one execution of the sampler over an agency list.
type SampleRun struct {
	ID             string
	AgencyFile     string
	StartedAt      time.Time
	FinishedAt     *time.Time
	AgenciesTotal  int
	AgenciesFailed int
}

// AgencyOutcome records the result of processing a single agency within a run.
type AgencyOutcome struct {
	ID           int64
	RunID        string
	Agency       string
	ArticleCount int
	Status       OutcomeStatus
	Error        string
	ProcessedAt  time.Time
}
