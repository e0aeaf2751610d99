// SPDX-License-Identifier: MIT

package component

import (
	"context"
	"fmt"
	"sync"

	"github.com/katalvlaran/propel/atmosphere"
	"github.com/katalvlaran/propel/blade"
)

// WingInput is what an external wing solver needs for one operating point.
type WingInput struct {
	Name          string
	Sections      []blade.Section // Location is the spanwise station in m
	Symmetric     bool
	ReferenceArea float64 // m²; 0 lets the solver derive it
	ReferenceSpan float64 // mean aerodynamic chord, m; 0 lets the solver derive it
	Environment   atmosphere.Snapshot
	AngleOfAttack float64 // deg
	Sideslip      float64 // deg
}

// WingLoads is the solver output in wing axes.
type WingLoads struct {
	Force  Vec3
	Moment Vec3
	CL     float64
	CD     float64
	CM     float64
}

// WingSolver wraps an external aerodynamic package. Implementations need
// not be safe for concurrent use.
type WingSolver interface {
	SolveWing(ctx context.Context, in WingInput) (WingLoads, error)
}

// wingMu serialises every call into a WingSolver.
var wingMu sync.Mutex

// SolveWing runs solver for w and stores the loads on it. Only the
// solver call itself holds the package wing lock.
func SolveWing(ctx context.Context, solver WingSolver, w *Component, in WingInput) (WingLoads, error) {
	if solver == nil {
		return WingLoads{}, ErrNoWingSolver
	}
	if w.Kind != KindWing {
		return WingLoads{}, fmt.Errorf("%q is %v: %w", w.Name, w.Kind, ErrNotWing)
	}
	if in.Name == "" {
		in.Name = w.Name
	}

	loads, err := func() (WingLoads, error) {
		wingMu.Lock()
		defer wingMu.Unlock()

		return solver.SolveWing(ctx, in)
	}()
	if err != nil {
		return WingLoads{}, fmt.Errorf("wing %q: %w", w.Name, err)
	}
	w.Wing = &loads

	return loads, nil
}
