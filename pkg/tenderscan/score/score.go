// Package score matches extracted positions against the manager
// catalog and annotates each position with its best match.
package score

import (
	"math"
	"strings"

	"github.com/tenderscan/tenderscan/pkg/tenderscan/catalog"
	"github.com/tenderscan/tenderscan/pkg/tenderscan/extract"
	"github.com/tenderscan/tenderscan/pkg/tenderscan/ingest"
)

// ScoredPosition is a Position enriched with its relevance score and
// best-matching catalog entry. Relevance is 0 exactly when no manager
// was selected: no keyword overlap, disqualified by an exclusion term,
// or an empty catalog.
type ScoredPosition struct {
	extract.Position
	Relevance          int      `json:"relevance"`
	MatchedManagerID   string   `json:"matchedManagerId,omitempty"`
	MatchedManagerName string   `json:"matchedManagerName,omitempty"`
	MatchedKeywords    []string `json:"matchedKeywords"`
}

// positionText is one position's tokenized text: the token sequence
// plus a set view for exact O(1) hits. Keywords not found exactly are
// retried as substrings of the sequence, so compound words like
// "Stahlbetonarbeiten" still match the keyword "stahlbeton".
type positionText struct {
	tokens []string
	set    map[string]struct{}
}

func newPositionText(text string) positionText {
	tokens := ingest.Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return positionText{tokens: tokens, set: set}
}

func (p positionText) contains(term string) bool {
	if _, ok := p.set[term]; ok {
		return true
	}
	for _, tok := range p.tokens {
		if strings.Contains(tok, term) {
			return true
		}
	}
	return false
}

// Score evaluates every position against every active catalog entry
// and returns the positions enriched with their best match. The
// relevance of a match is fractional keyword coverage: the share of a
// manager's keyword tokens (name plus synonyms, duplicates counted)
// found in the position text, scaled to 0..100 and rounded. A manager
// whose exclusion tokens appear anywhere in the position text is
// disqualified before any counting. Ties on the top score keep the
// manager encountered first in catalog order, so reordering the
// catalog can change matches without changing any score. The catalog
// is never mutated.
func Score(positions []extract.Position, managers []catalog.Manager) []ScoredPosition {
	active := make([]catalog.Manager, 0, len(managers))
	for _, m := range managers {
		if m.Active {
			active = append(active, m)
		}
	}

	scored := make([]ScoredPosition, len(positions))
	for i, pos := range positions {
		text := newPositionText(pos.ShortText + " " + pos.LongText)

		sp := ScoredPosition{Position: pos, MatchedKeywords: []string{}}
		for _, m := range active {
			keywords := ingest.Tokenize(m.Name + " " + strings.Join(m.Synonyms, " "))
			if len(keywords) == 0 {
				continue
			}
			if excluded(text, m.Exclusions) {
				continue
			}
			matches, matched := countMatches(text, keywords)
			if matches == 0 {
				continue
			}
			s := int(math.Round(float64(matches) / float64(len(keywords)) * 100))
			if s > sp.Relevance {
				sp.Relevance = s
				sp.MatchedManagerID = m.ID
				sp.MatchedManagerName = m.Name
				sp.MatchedKeywords = matched
			}
		}
		scored[i] = sp
	}
	return scored
}

// excluded reports whether any exclusion token occurs in the position
// text. Exclusion always wins, regardless of how many keywords would
// have matched.
func excluded(text positionText, exclusions []string) bool {
	for _, tok := range ingest.Tokenize(strings.Join(exclusions, " ")) {
		if text.contains(tok) {
			return true
		}
	}
	return false
}

// countMatches counts keyword tokens present in the position text.
// Duplicates in the keyword list count every time; the returned values
// are distinct.
func countMatches(text positionText, keywords []string) (int, []string) {
	matches := 0
	var matched []string
	seen := make(map[string]struct{})
	for _, kw := range keywords {
		if !text.contains(kw) {
			continue
		}
		matches++
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		matched = append(matched, kw)
	}
	return matches, matched
}
