// Package tenderscan extracts structured line items ("positions") from
// the page text of construction-tender documents and scores them
// against a user-maintained manager catalog.
package tenderscan

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tenderscan/tenderscan/pkg/tenderscan/catalog"
	"github.com/tenderscan/tenderscan/pkg/tenderscan/extract"
	"github.com/tenderscan/tenderscan/pkg/tenderscan/score"
	"github.com/tenderscan/tenderscan/pkg/tenderscan/summary"
)

// PageSource supplies pre-cleaned text lines per page. It is the
// boundary to the document-decoding collaborator; pages are 1-based.
type PageSource interface {
	PageCount() int
	Lines(pageNumber int) ([]string, error)
}

// Progress reports one completed page. Current increases strictly
// monotonically from 1 to Total over a run.
type Progress struct {
	Current int
	Total   int
}

// Options configures an Analyzer.
type Options struct {
	// Catalog supplies the manager entries scored against. Read once
	// per run; nil means an empty catalog.
	Catalog catalog.Source

	// Progress, if set, is called after each extracted page. It runs on
	// the analysis goroutine and must not block.
	Progress func(Progress)

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// Analyzer runs the extraction-plus-scoring pipeline. Each run owns
// its position list and result exclusively; concurrent runs on one
// Analyzer are isolated from each other.
type Analyzer struct {
	cat      catalog.Source
	progress func(Progress)
	now      func() time.Time

	mu      sync.Mutex // guards entropy
	entropy *ulid.MonotonicEntropy
}

// New creates an Analyzer with the given dependencies.
func New(opts Options) *Analyzer {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Analyzer{
		cat:      opts.Catalog,
		progress: opts.Progress,
		now:      now,
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
}

// AnalysisResult is the terminal output of one successful run. It is
// assembled once, after every page has been processed; a failed run
// produces no result at all.
type AnalysisResult struct {
	RunID       string                 `json:"runId"`
	FileName    string                 `json:"fileName"`
	TotalPages  int                    `json:"totalPages"`
	DurationMs  int64                  `json:"durationMs"`
	Positions   []score.ScoredPosition `json:"positions"`
	Overview    []string               `json:"overview"`
	GeneratedAt time.Time              `json:"generatedAt"`
}

// Analyze processes one document: sequential per-page extraction,
// scoring of the flat position list against the active catalog, and
// the overview. Cancellation is honored at page boundaries only. Any
// page error aborts the run; no partial result is ever returned.
func (a *Analyzer) Analyze(ctx context.Context, src PageSource, fileName string) (*AnalysisResult, error) {
	start := a.now()
	total := src.PageCount()

	var positions []extract.Position
	for page := 1; page <= total; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lines, err := src.Lines(page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		positions = append(positions, extract.Extract(lines, page)...)
		if a.progress != nil {
			a.progress(Progress{Current: page, Total: total})
		}
	}

	var managers []catalog.Manager
	if a.cat != nil {
		var err error
		managers, err = a.cat.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
	}

	scored := score.Score(positions, managers)
	end := a.now()
	duration := end.Sub(start)

	overview := summary.Build(summary.Metadata{
		FileName:    fileName,
		TotalPages:  total,
		Duration:    duration,
		GeneratedAt: end,
	}, scored)

	return &AnalysisResult{
		RunID:       a.newRunID(),
		FileName:    fileName,
		TotalPages:  total,
		DurationMs:  duration.Milliseconds(),
		Positions:   scored,
		Overview:    overview,
		GeneratedAt: end,
	}, nil
}

func (a *Analyzer) newRunID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return ulid.MustNew(ulid.Now(), a.entropy).String()
}
