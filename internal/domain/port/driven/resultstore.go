package driven

import (
	"context"

	"github.com/ericfisherdev/agencysampler/internal/domain/model"
)

// ResultStore defines the driven port for the sampled-article output file.
// The sampler flushes after every agency, so a Save must atomically replace
// the previous contents -- an interrupted run leaves the last complete flush
// on disk, never a torn write.
type ResultStore interface {
	// Load reads previously collected results for resume. A missing file is
	// not an error; it yields an empty map.
	Load(ctx context.Context) (model.ResultMap, error)

	// Save atomically replaces the output file with the given results.
	Save(ctx context.Context, results model.ResultMap) error
}
