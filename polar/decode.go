// SPDX-License-Identifier: MIT

package polar

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/spf13/cast"
)

// Training file keys.
const (
	KeyCL    = "CL"
	KeyCD    = "CD"
	KeyRe    = "Re"
	KeyAlpha = "alpha"
	KeyMach  = "mach"
)

// Coordinate file keys.
const (
	KeyUpperX       = "UPPER_X_COORD"
	KeyUpperY       = "UPPER_Y_COORD"
	KeyLowerX       = "LOWER_X_COORD"
	KeyLowerY       = "LOWER_Y_COORD"
	KeyMaxThickness = "MAX_THICKNESS"
)

// coordinateShift recentres chordwise coordinates on mid-chord.
const coordinateShift = 0.5

// DecodeTraining parses a polar table. Every key must be present and hold an
// array of numbers; numeric strings are accepted.
func DecodeTraining(r io.Reader) (TrainingData, error) {
	raw, err := decodeObject(r)
	if err != nil {
		return TrainingData{}, err
	}
	var td TrainingData
	for _, f := range []struct {
		key string
		dst *[]float64
	}{
		{KeyCL, &td.CL}, {KeyCD, &td.CD}, {KeyRe, &td.Re}, {KeyAlpha, &td.Alpha}, {KeyMach, &td.Mach},
	} {
		v, err := floatArray(raw, f.key)
		if err != nil {
			return TrainingData{}, err
		}
		*f.dst = v
	}

	return td, nil
}

// DecodeCoordinates parses an airfoil coordinate file and shifts x by -0.5.
func DecodeCoordinates(r io.Reader) (Coordinates, error) {
	raw, err := decodeObject(r)
	if err != nil {
		return Coordinates{}, err
	}
	var c Coordinates
	for _, f := range []struct {
		key string
		dst *[]float64
	}{
		{KeyUpperX, &c.UpperX}, {KeyUpperY, &c.UpperY}, {KeyLowerX, &c.LowerX}, {KeyLowerY, &c.LowerY},
	} {
		v, err := floatArray(raw, f.key)
		if err != nil {
			return Coordinates{}, err
		}
		*f.dst = v
	}
	if len(c.UpperX) != len(c.UpperY) || len(c.LowerX) != len(c.LowerY) {
		return Coordinates{}, fmt.Errorf("coordinate arrays differ in length: %w", ErrDataFormat)
	}
	mt, ok := raw[KeyMaxThickness]
	if !ok {
		return Coordinates{}, fmt.Errorf("missing %q: %w", KeyMaxThickness, ErrDataFormat)
	}
	if c.MaxThickness, err = finite(mt); err != nil {
		return Coordinates{}, fmt.Errorf("%q: %w", KeyMaxThickness, err)
	}
	for i := range c.UpperX {
		c.UpperX[i] -= coordinateShift
	}
	for i := range c.LowerX {
		c.LowerX[i] -= coordinateShift
	}

	return c, nil
}

func decodeObject(r io.Reader) (map[string]any, error) {
	var raw map[string]any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode json: %v: %w", err, ErrDataFormat)
	}
	if raw == nil {
		return nil, fmt.Errorf("expected a JSON object: %w", ErrDataFormat)
	}

	return raw, nil
}

func floatArray(raw map[string]any, key string) ([]float64, error) {
	v, ok := raw[key]
	if !ok {
		return nil, fmt.Errorf("missing %q: %w", key, ErrDataFormat)
	}
	if _, isArr := v.([]any); !isArr {
		return nil, fmt.Errorf("%q is not an array: %w", key, ErrDataFormat)
	}
	items, err := cast.ToSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("%q: %v: %w", key, err, ErrDataFormat)
	}
	out := make([]float64, len(items))
	for i, it := range items {
		if out[i], err = finite(it); err != nil {
			return nil, fmt.Errorf("%q[%d]: %w", key, i, err)
		}
	}

	return out, nil
}

func finite(v any) (float64, error) {
	if n, ok := v.(json.Number); ok {
		v = n.String()
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("%v: %w", err, ErrDataFormat)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite value: %w", ErrDataFormat)
	}

	return f, nil
}
