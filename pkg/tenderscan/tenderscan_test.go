package tenderscan

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tenderscan/tenderscan/pkg/tenderscan/catalog"
	"github.com/tenderscan/tenderscan/pkg/tenderscan/catalog/memstore"
)

// fakeSource serves fixed per-page lines, optionally failing a page.
type fakeSource struct {
	pages    [][]string
	failPage int
}

func (s *fakeSource) PageCount() int { return len(s.pages) }

func (s *fakeSource) Lines(pageNumber int) ([]string, error) {
	if pageNumber == s.failPage {
		return nil, errors.New("unreadable page")
	}
	return s.pages[pageNumber-1], nil
}

func testCatalog(t *testing.T) catalog.Store {
	t.Helper()
	st := memstore.New()
	ctx := context.Background()
	managers := []catalog.Manager{
		{
			ID:         "mgr-beton",
			Name:       "Betonarbeiten",
			Synonyms:   []string{"Stahlbeton", "C25/30"},
			Exclusions: []string{"Abbruch"},
			Active:     true,
		},
		{
			ID:       "mgr-erd",
			Name:     "Erdarbeiten",
			Synonyms: []string{"Aushub", "Baugrube"},
			Active:   true,
		},
	}
	for _, m := range managers {
		if err := st.Upsert(ctx, m); err != nil {
			t.Fatalf("seed catalog: %v", err)
		}
	}
	return st
}

func fixedClock(start time.Time, step time.Duration) func() time.Time {
	now := start
	return func() time.Time {
		current := now
		now = now.Add(step)
		return current
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	src := &fakeSource{pages: [][]string{
		{
			"Allgemeine Vorbemerkungen",
			"1.1 Stahlbetonarbeiten 10,5 m³ Fundament",
			"weitere Details",
		},
		{
			"2.1 Erdaushub 120 m³",
			"Baugrube gemäß DIN 18300",
		},
	}}

	var progress []Progress
	a := New(Options{
		Catalog: testCatalog(t),
		Progress: func(p Progress) {
			progress = append(progress, p)
		},
		Now: fixedClock(time.Date(2026, 3, 15, 14, 30, 0, 0, time.Local), 1500*time.Millisecond),
	})

	result, err := a.Analyze(context.Background(), src, "angebot.pdf")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.RunID == "" {
		t.Error("missing RunID")
	}
	if result.FileName != "angebot.pdf" || result.TotalPages != 2 {
		t.Errorf("result metadata = %s / %d", result.FileName, result.TotalPages)
	}
	if result.DurationMs != 1500 {
		t.Errorf("DurationMs = %d, want 1500", result.DurationMs)
	}

	// One progress event per page, strictly increasing.
	if len(progress) != 2 {
		t.Fatalf("progress events = %d, want 2", len(progress))
	}
	for i, p := range progress {
		if p.Current != i+1 || p.Total != 2 {
			t.Errorf("progress[%d] = %+v", i, p)
		}
	}

	if len(result.Positions) != 2 {
		t.Fatalf("positions = %d, want 2", len(result.Positions))
	}
	first := result.Positions[0]
	if first.PositionNumber != "1.1" || first.PageNumber != 1 {
		t.Errorf("positions[0] = %+v", first)
	}
	if first.MatchedManagerName != "Betonarbeiten" || first.Relevance == 0 {
		t.Errorf("positions[0] match = %q / %d", first.MatchedManagerName, first.Relevance)
	}
	second := result.Positions[1]
	if second.PageNumber != 2 || second.MatchedManagerName != "Erdarbeiten" {
		t.Errorf("positions[1] = %+v", second)
	}

	if len(result.Overview) == 0 || !strings.HasPrefix(result.Overview[0], "Datei: angebot.pdf") {
		t.Errorf("overview = %v", result.Overview)
	}
}

func TestAnalyzePageErrorAbortsRun(t *testing.T) {
	src := &fakeSource{
		pages: [][]string{
			{"1.1 Erdaushub 120 m³"},
			{"2.1 Betonarbeiten 10,5 m³"},
			{"3.1 Abdichtung 8 St"},
		},
		failPage: 2,
	}

	var progress []Progress
	a := New(Options{
		Catalog:  testCatalog(t),
		Progress: func(p Progress) { progress = append(progress, p) },
	})

	result, err := a.Analyze(context.Background(), src, "angebot.pdf")
	if err == nil {
		t.Fatal("expected error from failing page")
	}
	if result != nil {
		t.Error("no partial result may be published on failure")
	}
	if !strings.Contains(err.Error(), "page 2") {
		t.Errorf("error = %v, want page context", err)
	}
	// Page 3 must not have been processed.
	if len(progress) != 1 {
		t.Errorf("progress events = %d, want 1", len(progress))
	}
}

func TestAnalyzeCancellationAtPageBoundary(t *testing.T) {
	src := &fakeSource{pages: [][]string{{"1.1 Erdaushub 120 m³"}}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := New(Options{Catalog: testCatalog(t)})
	result, err := a.Analyze(ctx, src, "angebot.pdf")
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if result != nil {
		t.Error("no result may be published after cancellation")
	}
}

func TestAnalyzeWithoutCatalog(t *testing.T) {
	src := &fakeSource{pages: [][]string{{"1.1 Erdaushub 120 m³"}}}

	a := New(Options{})
	result, err := a.Analyze(context.Background(), src, "")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(result.Positions) != 1 {
		t.Fatalf("positions = %d, want 1", len(result.Positions))
	}
	if result.Positions[0].Relevance != 0 {
		t.Errorf("Relevance = %d, want 0 without a catalog", result.Positions[0].Relevance)
	}
	if !strings.HasPrefix(result.Overview[0], "Datei: Unbenannt") {
		t.Errorf("overview[0] = %q, want fallback file name", result.Overview[0])
	}
}

func TestAnalyzeRunIDsUnique(t *testing.T) {
	src := &fakeSource{pages: [][]string{{"1.1 Erdaushub 120 m³"}}}
	a := New(Options{})

	seen := make(map[string]struct{})
	for i := 0; i < 5; i++ {
		result, err := a.Analyze(context.Background(), src, "doc.txt")
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if _, ok := seen[result.RunID]; ok {
			t.Fatalf("duplicate RunID %q", result.RunID)
		}
		seen[result.RunID] = struct{}{}
	}
}
