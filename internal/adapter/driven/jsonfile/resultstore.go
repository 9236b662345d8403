// Package jsonfile implements the ResultStore port as a single JSON file on
// disk, the run's canonical output artifact.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/natefinch/atomic"

	"github.com/ericfisherdev/agencysampler/internal/domain/model"
	"github.com/ericfisherdev/agencysampler/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ResultStore = (*ResultStore)(nil)

// ResultStore reads and writes the agency-to-articles output file. Saves go
// through a temp-file-and-rename so the sampler's per-agency flushes never
// leave a torn file behind.
type ResultStore struct {
	path string
}

// NewResultStore creates a ResultStore writing to the given path.
func NewResultStore(path string) *ResultStore {
	return &ResultStore{path: path}
}

// Load reads previously collected results. A missing file yields an empty
// map, which callers use to start a fresh run.
func (s *ResultStore) Load(_ context.Context) (model.ResultMap, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return model.ResultMap{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading results file %s: %w", s.path, err)
	}

	var results model.ResultMap
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parsing results file %s: %w", s.path, err)
	}
	if results == nil {
		results = model.ResultMap{}
	}

	return results, nil
}

// Save atomically replaces the output file with the given results.
func (s *ResultStore) Save(_ context.Context, results model.ResultMap) error {
	if results == nil {
		results = model.ResultMap{}
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}

	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing results file %s: %w", s.path, err)
	}

	return nil
}
