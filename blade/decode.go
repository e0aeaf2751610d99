// SPDX-License-Identifier: MIT

package blade

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cast"
)

// DecodeSections reads a JSON array of section objects. Numbers may be
// written as strings; sweep and offset default to zero.
//
//	[{"location": 0.1, "airfoil": "naca4412", "chord": "0.05", "twist": 30}, ...]
func DecodeSections(r io.Reader) ([]Section, error) {
	var raw []map[string]any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode sections: %v: %w", err, ErrBadSection)
	}
	out := make([]Section, 0, len(raw))
	for i, m := range raw {
		s := Section{Airfoil: cast.ToString(m["airfoil"])}
		fields := []struct {
			key      string
			dst      *float64
			required bool
		}{
			{"location", &s.Location, true},
			{"chord", &s.Chord, true},
			{"twist", &s.Twist, true},
			{"sweep", &s.Sweep, false},
			{"offset", &s.Offset, false},
		}
		for _, f := range fields {
			v, ok := m[f.key]
			if !ok {
				if f.required {
					return nil, fmt.Errorf("section %d: missing %q: %w", i, f.key, ErrBadSection)
				}
				continue
			}
			x, err := cast.ToFloat64E(v)
			if err != nil {
				return nil, fmt.Errorf("section %d: %q: %v: %w", i, f.key, err, ErrBadSection)
			}
			*f.dst = x
		}
		out = append(out, s)
	}

	return out, nil
}
