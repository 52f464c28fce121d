package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tenderscan/tenderscan/pkg/tenderscan/internalerr"
)

// ImportJSON decodes a catalog export (a JSON array of entries),
// applies the normalization defaults to each entry, and validates the
// result. A document that is not an array is rejected.
func ImportJSON(r io.Reader) ([]Manager, error) {
	var raws []rawManager
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return nil, fmt.Errorf("%w: decode catalog: %v", internalerr.ErrInvalidInput, err)
	}

	managers := make([]Manager, len(raws))
	for i, raw := range raws {
		managers[i] = raw.normalize()
	}
	if err := Validate(managers); err != nil {
		return nil, err
	}
	return managers, nil
}

// ExportJSON writes the catalog as an indented JSON array, the same
// shape ImportJSON accepts.
func ExportJSON(w io.Writer, managers []Manager) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(managers)
}
