package extract

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Quantity is a position amount that may or may not have parsed as a
// number. Malformed quantities keep their original text instead of
// raising an error.
type Quantity struct {
	Value   float64
	Raw     string
	Numeric bool
}

// NormalizeQuantity parses a raw quantity token using the European
// convention: '.' is a thousands separator, ',' is the decimal
// separator. A value formatted the other way around ("1,234" meaning
// one thousand) is silently misparsed; this follows the documents the
// extractor targets and is not corrected here.
func NormalizeQuantity(raw string) Quantity {
	cleaned := strings.ReplaceAll(raw, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return Quantity{Raw: raw}
	}
	return Quantity{Value: v, Raw: raw, Numeric: true}
}

// Float returns the numeric value, or 0 for a non-numeric quantity.
func (q Quantity) Float() float64 {
	if !q.Numeric {
		return 0
	}
	return q.Value
}

// String returns the parsed value, or the original text when parsing
// failed.
func (q Quantity) String() string {
	if !q.Numeric {
		return q.Raw
	}
	return strconv.FormatFloat(q.Value, 'f', -1, 64)
}

// MarshalJSON encodes numeric quantities as JSON numbers and
// unparseable ones as their original string.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if !q.Numeric {
		return json.Marshal(q.Raw)
	}
	return json.Marshal(q.Value)
}

// UnmarshalJSON accepts either a number or a string.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*q = Quantity{Value: v, Raw: string(data), Numeric: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*q = NormalizeQuantity(s)
	return nil
}
