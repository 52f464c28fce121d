package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML catalog layout:
//
//	managers:
//	  - name: Betonarbeiten
//	    synonyms: [Stahlbeton, C25/30]
//	    exclusions: [Abbruch]
type catalogFile struct {
	Managers []rawManager `yaml:"managers"`
}

// LoadCatalog loads and normalizes a catalog from a YAML file.
func LoadCatalog(path string) ([]Manager, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	managers := make([]Manager, len(file.Managers))
	for i, raw := range file.Managers {
		managers[i] = raw.normalize()
	}
	if err := Validate(managers); err != nil {
		return nil, err
	}
	return managers, nil
}
