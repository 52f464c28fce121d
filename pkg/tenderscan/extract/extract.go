package extract

import (
	"regexp"
	"strings"

	"github.com/tenderscan/tenderscan/pkg/tenderscan/ingest"
)

// Position is one extracted tender line item tied to its source page.
type Position struct {
	PositionNumber string   `json:"positionNumber"`
	ShortText      string   `json:"shortText"`
	LongText       string   `json:"longText"`
	Quantity       Quantity `json:"quantity"`
	Unit           string   `json:"unit"`
	PageNumber     int      `json:"pageNumber"`
}

// startPattern recognizes a position start line: a dotted numeric
// identifier of one to four groups of one to four digits, the short
// text, a quantity token with optional grouping separators, a unit
// token, and an optional trailing remainder.
var startPattern = regexp.MustCompile(`^(\d{1,4}(?:\.\d{1,4}){0,3})\s+(.+?)\s+(\d+[\d.,]*)\s+([\p{L}²³%/]+)(.*)$`)

// Extract scans one page's cleaned text lines and returns the positions
// found on it. The scan is a two-state classifier with no backtracking:
// lines before the first start line are ignored; once a start line is
// matched, every following line that is not itself a start line is a
// continuation and extends the current position's long text. A page
// without any start line yields an empty result.
func Extract(lines []string, pageNumber int) []Position {
	var positions []Position
	var current *Position
	var long []string

	flush := func() {
		if current == nil {
			return
		}
		current.LongText = strings.Join(long, " ")
		positions = append(positions, *current)
		current = nil
		long = nil
	}

	for _, line := range lines {
		line = ingest.CleanLine(line)
		if line == "" {
			continue
		}
		m := startPattern.FindStringSubmatch(line)
		if m == nil {
			if current != nil {
				long = append(long, line)
			}
			continue
		}
		flush()
		current = &Position{
			PositionNumber: m[1],
			ShortText:      ingest.CleanLine(m[2]),
			Quantity:       NormalizeQuantity(m[3]),
			Unit:           ingest.CleanLine(m[4]),
			PageNumber:     pageNumber,
		}
		if rest := ingest.CleanLine(m[5]); rest != "" {
			long = append(long, rest)
		}
	}
	flush()

	return positions
}
