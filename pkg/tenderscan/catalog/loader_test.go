package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCatalog(t *testing.T) {
	content := `managers:
  - id: m1
    name: Betonarbeiten
    synonyms: [Stahlbeton, C25/30]
    exclusions: [Abbruch]
  - name: Erdarbeiten
    synonyms: "Aushub, Baugrube"
    active: false
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	managers, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(managers) != 2 {
		t.Fatalf("expected 2 managers, got %d", len(managers))
	}

	first := managers[0]
	if first.ID != "m1" || !first.Active {
		t.Errorf("manager[0] = %+v", first)
	}
	if len(first.Synonyms) != 2 || first.Exclusions[0] != "Abbruch" {
		t.Errorf("manager[0] terms = %v / %v", first.Synonyms, first.Exclusions)
	}

	second := managers[1]
	if second.ID == "" {
		t.Error("missing id should be generated")
	}
	if second.Active {
		t.Error("active: false must be preserved")
	}
	if len(second.Synonyms) != 2 || second.Synonyms[1] != "Baugrube" {
		t.Errorf("comma-joined synonyms = %v", second.Synonyms)
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadCatalogInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("managers: [unclosed"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	if _, err := LoadCatalog(path); err == nil {
		t.Fatal("expected parse error")
	}
}
