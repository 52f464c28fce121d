// Package catalog holds the user-maintained category definitions
// ("managers") that extracted positions are scored against, plus their
// persistence and interchange formats. The scoring core only reads the
// catalog; everything here that mutates it is caller-side tooling.
package catalog

import (
	"crypto/rand"
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/tenderscan/tenderscan/pkg/tenderscan/internalerr"
)

// DefaultName replaces a missing entry name during normalization.
const DefaultName = "Unbenannt"

// Manager is one catalog entry: a category label with keyword synonyms
// and exclusion terms. All optional fields carry explicit defaults,
// applied by Normalize: absent synonyms/exclusions are empty, absent
// active is true.
type Manager struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Synonyms    []string `json:"synonyms" yaml:"synonyms"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Unit        string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	Exclusions  []string `json:"exclusions" yaml:"exclusions"`
	Active      bool     `json:"active" yaml:"active"`
}

var idMu sync.Mutex
var idEntropy = ulid.Monotonic(rand.Reader, 0)

// NewID returns a fresh catalog entry identifier.
func NewID() string {
	idMu.Lock()
	defer idMu.Unlock()
	return "mgr-" + ulid.MustNew(ulid.Now(), idEntropy).String()
}

// rawManager is the decoded interchange shape before defaults are
// applied. Synonyms and exclusions accept either a list or a single
// comma-joined string; active is a tri-state so that "absent" can
// default to true.
type rawManager struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Synonyms    stringList `json:"synonyms" yaml:"synonyms"`
	Description string     `json:"description" yaml:"description"`
	Unit        string     `json:"unit" yaml:"unit"`
	Exclusions  stringList `json:"exclusions" yaml:"exclusions"`
	Active      *bool      `json:"active" yaml:"active"`
}

// normalize applies the documented defaults and returns a complete
// Manager. Entries without an ID get a generated one.
func (r rawManager) normalize() Manager {
	m := Manager{
		ID:          r.ID,
		Name:        r.Name,
		Synonyms:    r.Synonyms.clean(),
		Description: r.Description,
		Unit:        r.Unit,
		Exclusions:  r.Exclusions.clean(),
		Active:      r.Active == nil || *r.Active,
	}
	if m.ID == "" {
		m.ID = NewID()
	}
	if m.Name == "" {
		m.Name = DefaultName
	}
	return m
}

// Validate checks the catalog-wide invariant that entry IDs are unique.
func Validate(managers []Manager) error {
	seen := make(map[string]struct{}, len(managers))
	for _, m := range managers {
		if _, ok := seen[m.ID]; ok {
			return fmt.Errorf("%w: manager %q", internalerr.ErrDuplicateID, m.ID)
		}
		seen[m.ID] = struct{}{}
	}
	return nil
}
