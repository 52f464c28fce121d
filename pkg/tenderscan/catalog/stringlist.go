package catalog

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// stringList decodes either a sequence of strings or one comma-joined
// string. Catalog exports from older tooling stored synonyms and
// exclusions both ways.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*l = splitTerms(joined)
	return nil
}

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var joined string
		if err := value.Decode(&joined); err != nil {
			return err
		}
		*l = splitTerms(joined)
		return nil
	}
	var items []string
	if err := value.Decode(&items); err != nil {
		return err
	}
	*l = items
	return nil
}

// clean trims every term and drops empties, returning a non-nil slice.
func (l stringList) clean() []string {
	out := make([]string, 0, len(l))
	for _, term := range l {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		out = append(out, term)
	}
	return out
}

func splitTerms(joined string) []string {
	var out []string
	for _, part := range strings.Split(joined, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
