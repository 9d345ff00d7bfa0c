package params

import (
	"encoding/json"
	"math"
)

// paramJSON is the wire shape of Param. Infinite bounds are not representable
// in JSON, so an absent (null) bound means unbounded on that side.
type paramJSON struct {
	Name     string   `json:"name"`
	Value    float64  `json:"value"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Vary     bool     `json:"vary"`
	Category string   `json:"category"`
}

// MarshalJSON implements json.Marshaler.
func (p Param) MarshalJSON() ([]byte, error) {
	w := paramJSON{Name: p.Name, Value: p.Value, Vary: p.Vary, Category: p.Category.String()}
	if !math.IsInf(p.Min, 0) {
		lo := p.Min
		w.Min = &lo
	}
	if !math.IsInf(p.Max, 0) {
		hi := p.Max
		w.Max = &hi
	}

	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Param) UnmarshalJSON(data []byte) error {
	var w paramJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	cat, err := ParseCategory(w.Category)
	if err != nil {
		return err
	}
	*p = Param{Name: w.Name, Value: w.Value, Vary: w.Vary, Category: cat, Min: math.Inf(-1), Max: math.Inf(1)}
	if w.Min != nil {
		p.Min = *w.Min
	}
	if w.Max != nil {
		p.Max = *w.Max
	}

	return nil
}
