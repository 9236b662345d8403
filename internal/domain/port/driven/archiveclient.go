package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/agencysampler/internal/domain/model"
)

// ErrAuthenticationFailed is returned when a login against the archive API
// fails, either because the request could not be made or because the API
// rejected the credentials. Callers treat this as fatal: without a token no
// query is possible.
var ErrAuthenticationFailed = errors.New("authentication failed")

// SearchOptions constrain a per-agency article search.
type SearchOptions struct {
	// PageLimit is the number of articles requested per API call. Valid range
	// is 1-100; the adapter applies its default when zero.
	PageLimit int
	// MaxHits caps the total number of articles collected for a single term.
	// Zero means no cap.
	MaxHits int
	// DateFrom and DateTo optionally constrain the search to a date range,
	// formatted as YYYY-MM-DD.
	DateFrom string
	DateTo   string
}

// ArchiveClient defines the driven port for the remote news-archive API.
type ArchiveClient interface {
	// Authenticate exchanges the configured credentials for bearer tokens.
	// The secondary token is empty when no secondary credentials exist.
	// Returns ErrAuthenticationFailed (wrapped) on any login failure.
	Authenticate(ctx context.Context) (model.TokenPair, error)

	// SearchArticles returns every article matching the term, paginating
	// until the result set is exhausted or opts.MaxHits is reached. Article
	// payloads are passed through exactly as the API returned them.
	SearchArticles(ctx context.Context, term string, opts SearchOptions) ([]model.Article, error)
}
