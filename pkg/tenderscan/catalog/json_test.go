package catalog

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tenderscan/tenderscan/pkg/tenderscan/internalerr"
)

func TestImportJSON(t *testing.T) {
	input := `[
		{
			"id": "m1",
			"name": "Betonarbeiten",
			"synonyms": ["Stahlbeton", "C25/30"],
			"exclusions": ["Abbruch"],
			"active": true
		},
		{
			"name": "Erdarbeiten",
			"synonyms": "Aushub, Baugrube",
			"unit": "m³"
		}
	]`

	managers, err := ImportJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if len(managers) != 2 {
		t.Fatalf("expected 2 managers, got %d", len(managers))
	}

	if managers[0].ID != "m1" || len(managers[0].Synonyms) != 2 {
		t.Errorf("manager[0] = %+v", managers[0])
	}

	// Comma-joined synonyms split, defaults applied.
	second := managers[1]
	if second.ID == "" {
		t.Error("missing id should be generated on import")
	}
	if len(second.Synonyms) != 2 || second.Synonyms[0] != "Aushub" || second.Synonyms[1] != "Baugrube" {
		t.Errorf("Synonyms = %v", second.Synonyms)
	}
	if !second.Active {
		t.Error("absent active should default to true")
	}
	if second.Unit != "m³" {
		t.Errorf("Unit = %q", second.Unit)
	}
}

func TestImportJSONRejectsNonArray(t *testing.T) {
	_, err := ImportJSON(strings.NewReader(`{"name": "Betonarbeiten"}`))
	if err == nil {
		t.Fatal("expected error for non-array input")
	}
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestImportJSONDuplicateIDs(t *testing.T) {
	input := `[{"id": "m1", "name": "A"}, {"id": "m1", "name": "B"}]`

	_, err := ImportJSON(strings.NewReader(input))
	if !errors.Is(err, internalerr.ErrDuplicateID) {
		t.Errorf("error = %v, want ErrDuplicateID", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	managers := []Manager{
		{
			ID:         "m1",
			Name:       "Betonarbeiten",
			Synonyms:   []string{"Stahlbeton"},
			Exclusions: []string{"Abbruch"},
			Active:     true,
		},
		{
			ID:       "m2",
			Name:     "Erdarbeiten",
			Synonyms: []string{},
			Active:   false,
		},
	}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, managers); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	back, err := ImportJSON(&buf)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if len(back) != 2 {
		t.Fatalf("expected 2 managers, got %d", len(back))
	}
	if back[0].Name != "Betonarbeiten" || back[0].Exclusions[0] != "Abbruch" {
		t.Errorf("manager[0] = %+v", back[0])
	}
	if back[1].Active {
		t.Error("exported inactive flag must survive the round trip")
	}
}
