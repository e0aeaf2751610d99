// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/sgostarter/i/l"

	"github.com/katalvlaran/propel/blade"
	"github.com/katalvlaran/propel/component"
	"github.com/katalvlaran/propel/metrics"
	"github.com/katalvlaran/propel/polar"
	"github.com/katalvlaran/propel/propeller"
	"github.com/katalvlaran/propel/propulsion"
	"github.com/katalvlaran/propel/source"
	"github.com/katalvlaran/propel/source/core"
)

// Runtime carries the process-wide collaborators handed to every
// component built from a Config. All fields are optional.
type Runtime struct {
	Logger  l.Wrapper
	Metrics *metrics.Collectors
	Sink    *propeller.DetailedSink
}

func (rt Runtime) logger() l.Wrapper {
	if rt.Logger == nil {
		return l.NewNopLoggerWrapper()
	}

	return rt.Logger
}

// Sections returns the sections of p, reading sections_file if set.
func (c *Config) Sections(p Propeller) ([]blade.Section, error) {
	if len(p.Sections) > 0 {
		return p.Sections, nil
	}
	f, err := os.Open(c.Path(p.SectionsFile))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	defer func() { _ = f.Close() }()
	secs, err := blade.DecodeSections(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", p.Name, p.SectionsFile, err)
	}

	return secs, nil
}

// Airfoils returns the sorted set of airfoils named by all sections.
func (c *Config) Airfoils() ([]string, error) {
	set := map[string]bool{}
	for _, p := range c.Propellers {
		secs, err := c.Sections(p)
		if err != nil {
			return nil, err
		}
		for _, s := range secs {
			set[s.Airfoil] = true
		}
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, ErrNoAirfoils
	}

	return names, nil
}

// OpenSource opens the configured training-data source.
func (c *Config) OpenSource(ctx context.Context) (core.Source, error) {
	return source.OpenDriver(ctx, core.Driver(c.Source.Driver), c.Path(c.Source.Root))
}

// LoadPolars loads every airfoil used by the propellers from src into a new
// store and freezes it.
func (c *Config) LoadPolars(ctx context.Context, src core.Source, rt Runtime) (*polar.Store, error) {
	policy, err := c.RangePolicy()
	if err != nil {
		return nil, err
	}
	names, err := c.Airfoils()
	if err != nil {
		return nil, err
	}
	store := polar.NewStore(
		polar.WithLogger(rt.logger()),
		polar.WithMetrics(rt.Metrics),
		polar.WithRangePolicy(policy),
		polar.WithMach(c.Polars.Mach),
	)
	if err := polar.NewLoader(src, c.Polars.CacheTTL, rt.logger()).Load(ctx, store, names...); err != nil {
		return nil, err
	}
	store.Freeze()

	return store, nil
}

// System assembles a propulsion system over a frozen polar store.
func (c *Config) System(store *polar.Store, rt Runtime) (*propulsion.System, error) {
	sysOpts := []propulsion.Option{propulsion.WithLogger(rt.logger()), propulsion.WithMetrics(rt.Metrics)}
	if c.Solver.RootCut > 0 {
		sysOpts = append(sysOpts, propulsion.WithAcousticRootCut(c.Solver.RootCut))
	}
	sys, err := propulsion.New(c.Atmosphere, sysOpts...)
	if err != nil {
		return nil, err
	}
	for _, p := range c.Propellers {
		secs, err := c.Sections(p)
		if err != nil {
			return nil, err
		}
		b, err := blade.New(p.Radius, secs,
			blade.WithBlades(p.Blades),
			blade.WithMesh(p.Radial, p.Azimuthal),
			blade.WithPolars(store),
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name, err)
		}
		ctrl, err := p.Controller()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name, err)
		}
		if err := sys.Add(propeller.New(p.Name, c.propellerOptions(rt)...), b, ctrl); err != nil {
			return nil, err
		}
	}

	return sys, nil
}

func (c *Config) propellerOptions(rt Runtime) []propeller.Option {
	opts := []propeller.Option{propeller.WithLogger(rt.logger()), propeller.WithMetrics(rt.Metrics)}
	if rt.Sink != nil {
		opts = append(opts, propeller.WithSink(rt.Sink))
	}
	s := c.Solver
	if s.RootCut > 0 {
		opts = append(opts, propeller.WithRootCut(s.RootCut))
	}
	if s.ConstraintTol > 0 || s.XTol > 0 {
		ctol, xtol := s.ConstraintTol, s.XTol
		if ctol == 0 {
			ctol = propeller.DefaultConstraintTol
		}
		if xtol == 0 {
			xtol = propeller.DefaultXTolRel
		}
		opts = append(opts, propeller.WithTrimTolerance(ctol, xtol))
	}
	if s.MaxEval > 0 {
		opts = append(opts, propeller.WithMaxEval(s.MaxEval))
	}

	return opts
}

// Aircraft returns the plane tree over sys: the airframe weight at the
// root and the propulsion system with one node per configured propeller.
func (c *Config) Aircraft(sys *propulsion.System) *component.Component {
	arms := make(map[string]component.Vec3, len(c.Propellers))
	for _, p := range c.Propellers {
		arms[p.Name] = p.Position
	}
	props := component.FromSystem(c.Name, sys, arms)
	props.Position = c.Airframe.Position
	props.Angles = c.Airframe.Propulsion

	return &component.Component{
		Kind:     component.KindPlane,
		Name:     c.Name,
		Weight:   c.Airframe.Weight,
		Angles:   c.Airframe.Attitude,
		Children: []*component.Component{props},
	}
}
