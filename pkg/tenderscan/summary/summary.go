// Package summary builds the bounded human-readable overview of one
// analysis run.
package summary

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/tenderscan/tenderscan/pkg/tenderscan/score"
)

// RelevanceThreshold is the fixed relevance score at or above which a
// position counts as relevant.
const RelevanceThreshold = 30

// MaxLines bounds the overview length. The trailing lines (coverage,
// average quantity, timestamp) are the first to be dropped; the file,
// page and position counts always survive.
const MaxLines = 12

// Metadata describes the analysis run being summarized. GeneratedAt is
// supplied by the caller so Build stays pure; a zero value falls back
// to the current time.
type Metadata struct {
	FileName    string
	TotalPages  int
	Duration    time.Duration
	GeneratedAt time.Time
}

var german = message.NewPrinter(language.German)

// Build assembles the overview lines in a fixed order and truncates the
// result to MaxLines.
func Build(meta Metadata, positions []score.ScoredPosition) []string {
	fileName := meta.FileName
	if fileName == "" {
		fileName = "Unbenannt"
	}
	generatedAt := meta.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	relevant := make([]score.ScoredPosition, 0, len(positions))
	for _, pos := range positions {
		if pos.Relevance >= RelevanceThreshold {
			relevant = append(relevant, pos)
		}
	}

	seconds := math.Round(float64(meta.Duration.Milliseconds())/100) / 10

	overview := []string{
		fmt.Sprintf("Datei: %s", fileName),
		fmt.Sprintf("Analysezeit: %s Sekunden", formatSeconds(seconds)),
		fmt.Sprintf("Seiten: %d", meta.TotalPages),
		fmt.Sprintf("Gefundene Positionen: %d", len(positions)),
		fmt.Sprintf("Relevante Positionen (Score ≥ %d): %d", RelevanceThreshold, len(relevant)),
		fmt.Sprintf("Durchschnittsscore Top-Positionen: %d", averageRelevance(relevant)),
	}

	if lines := unitTotals(positions); len(lines) > 0 {
		overview = append(overview, "Mengenschwerpunkte: "+strings.Join(lines, ", "))
	}
	if lines := topPositions(relevant); len(lines) > 0 {
		overview = append(overview, "Top-Treffer: "+strings.Join(lines, " | "))
	}
	if lines := managerCoverage(positions); len(lines) > 0 {
		overview = append(overview, "Abgedeckte Positionstypen: "+strings.Join(lines, ", "))
	}
	if len(relevant) > 0 {
		sum := 0.0
		for _, pos := range relevant {
			sum += pos.Quantity.Float()
		}
		avg := sum / float64(len(relevant))
		overview = append(overview, fmt.Sprintf("Ø Menge relevanter Positionen: %s", formatAmount(avg)))
	}
	overview = append(overview, fmt.Sprintf("Analysezeitpunkt: %s", generatedAt.Format("02.01.2006, 15:04:05")))

	if len(overview) > MaxLines {
		overview = overview[:MaxLines]
	}
	return overview
}

// averageRelevance returns the rounded mean relevance of the relevant
// positions, 0 when there are none.
func averageRelevance(relevant []score.ScoredPosition) int {
	if len(relevant) == 0 {
		return 0
	}
	sum := 0
	for _, pos := range relevant {
		sum += pos.Relevance
	}
	return int(math.Round(float64(sum) / float64(len(relevant))))
}

// unitTotals sums quantities per distinct unit (non-numeric quantities
// count as 0) and returns the top three units by total, descending.
// Units keep first-seen order on equal totals.
func unitTotals(positions []score.ScoredPosition) []string {
	totals := make(map[string]float64)
	var order []string
	for _, pos := range positions {
		if pos.Unit == "" {
			continue
		}
		if _, ok := totals[pos.Unit]; !ok {
			order = append(order, pos.Unit)
		}
		totals[pos.Unit] += pos.Quantity.Float()
	}

	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]] > totals[order[j]]
	})
	if len(order) > 3 {
		order = order[:3]
	}

	lines := make([]string, len(order))
	for i, unit := range order {
		lines[i] = fmt.Sprintf("%s: %s", unit, formatAmount(totals[unit]))
	}
	return lines
}

// topPositions lists the three most relevant positions, descending by
// relevance with original order kept on ties.
func topPositions(relevant []score.ScoredPosition) []string {
	top := append([]score.ScoredPosition(nil), relevant...)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Relevance > top[j].Relevance
	})
	if len(top) > 3 {
		top = top[:3]
	}

	lines := make([]string, len(top))
	for i, pos := range top {
		lines[i] = fmt.Sprintf("%s – %s", pos.PositionNumber, pos.ShortText)
	}
	return lines
}

// managerCoverage counts matched positions per manager name and
// returns the top three, descending by count.
func managerCoverage(positions []score.ScoredPosition) []string {
	counts := make(map[string]int)
	var order []string
	for _, pos := range positions {
		if pos.MatchedManagerID == "" {
			continue
		}
		name := pos.MatchedManagerName
		if name == "" {
			name = pos.MatchedManagerID
		}
		if _, ok := counts[name]; !ok {
			order = append(order, name)
		}
		counts[name]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > 3 {
		order = order[:3]
	}

	lines := make([]string, len(order))
	for i, name := range order {
		lines[i] = fmt.Sprintf("%s: %d Treffer", name, counts[name])
	}
	return lines
}

// formatAmount renders a quantity with German grouping and at most two
// fraction digits.
func formatAmount(v float64) string {
	return german.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// formatSeconds renders elapsed seconds with exactly one fraction digit.
func formatSeconds(v float64) string {
	return german.Sprint(number.Decimal(v,
		number.MinFractionDigits(1), number.MaxFractionDigits(1)))
}
