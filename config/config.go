// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/propel/atmosphere"
	"github.com/katalvlaran/propel/blade"
	"github.com/katalvlaran/propel/component"
	"github.com/katalvlaran/propel/polar"
	"github.com/katalvlaran/propel/propeller"
	"github.com/katalvlaran/propel/propulsion"
	"github.com/katalvlaran/propel/results"
	"github.com/katalvlaran/propel/source/core"
)

// Defaults filled in by Load.
const (
	DefaultName       = "propel"
	DefaultServerAddr = ":8080"
	DefaultRate       = 1.0
	DefaultBurst      = 3
)

// Config is a complete run description.
type Config struct {
	Name       string                      `yaml:"name"`
	Source     Source                      `yaml:"source"`
	Polars     Polars                      `yaml:"polars"`
	Atmosphere atmosphere.Conditions       `yaml:"atmosphere"`
	Propellers []Propeller                 `yaml:"propellers"`
	Solver     Solver                      `yaml:"solver"`
	Sweep      []propulsion.OperatingPoint `yaml:"sweep"`
	Results    Results                     `yaml:"results"`
	Server     Server                      `yaml:"server"`
	Outputs    Outputs                     `yaml:"outputs"`
	Airframe   Airframe                    `yaml:"airframe"`

	dir string
}

// Source selects where polar training files come from.
type Source struct {
	Driver string `yaml:"driver"`
	Root   string `yaml:"root"`
}

// Polars configures the polar store.
type Polars struct {
	Mach     bool          `yaml:"mach"`
	Policy   string        `yaml:"policy"` // clamp | abort
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// Propeller is one rotor of the system. Sections are given inline or in
// a JSON file readable by blade.DecodeSections.
type Propeller struct {
	Name         string          `yaml:"name"`
	Radius       float64         `yaml:"radius"`
	Blades       int             `yaml:"blades"`
	Radial       int             `yaml:"radial"`
	Azimuthal    int             `yaml:"azimuthal"`
	Sections     []blade.Section `yaml:"sections"`
	SectionsFile string          `yaml:"sections_file"`
	Mode         string          `yaml:"mode"`
	RPM          float64         `yaml:"rpm"`
	Pitch        float64         `yaml:"pitch"`
	Lower        *[2]float64     `yaml:"lower"`
	Upper        *[2]float64     `yaml:"upper"`
	Position     component.Vec3  `yaml:"position"` // hub, relative to the propulsion system
}

// Solver holds the trim settings shared by every propeller. Zero values
// keep the propeller package defaults.
type Solver struct {
	RootCut       float64 `yaml:"root_cut"`
	ConstraintTol float64 `yaml:"constraint_tol"`
	XTol          float64 `yaml:"xtol"`
	MaxEval       int     `yaml:"max_eval"`
}

// Results selects the sweep archive.
type Results struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Server configures the HTTP surface.
type Server struct {
	Addr  string  `yaml:"addr"`
	Rate  float64 `yaml:"rate"`  // requests per second per client
	Burst int     `yaml:"burst"` // token bucket size
}

// Airframe places the propulsion system on the aircraft so that solved
// points can be reduced to loads at the centre of gravity.
type Airframe struct {
	Weight     float64               `yaml:"weight"` // N
	Position   component.Vec3        `yaml:"propulsion_position"`
	Attitude   component.EulerAngles `yaml:"attitude"`
	Propulsion component.EulerAngles `yaml:"propulsion_angles"`
}

// Outputs names optional report files written after a CLI sweep.
type Outputs struct {
	XLSX   string `yaml:"xlsx"`
	PDF    string `yaml:"pdf"`
	Detail bool   `yaml:"detail"`
}

// Load reads, defaults and validates the run file at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.dir = filepath.Dir(path)

	return c, nil
}

// Decode reads a run file from r. Relative paths resolve against the
// working directory.
func Decode(r io.Reader) (*Config, error) {
	c := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	c.defaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) defaults() {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.Source.Driver == "" {
		c.Source.Driver = string(core.DriverFilesystem)
	}
	if c.Polars.Policy == "" {
		c.Polars.Policy = "clamp"
	}
	if c.Results.Driver == "" {
		c.Results.Driver = results.DriverSQLite
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Server.Rate == 0 {
		c.Server.Rate = DefaultRate
	}
	if c.Server.Burst == 0 {
		c.Server.Burst = DefaultBurst
	}
	for i := range c.Propellers {
		p := &c.Propellers[i]
		if p.Blades == 0 {
			p.Blades = blade.DefaultBlades
		}
		if p.Radial == 0 {
			p.Radial = blade.DefaultRadialNodes
		}
		if p.Azimuthal == 0 {
			p.Azimuthal = blade.DefaultAzimuthalNodes
		}
		if p.Mode == "" {
			p.Mode = propeller.ModeBoth.String()
		}
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks every field that would otherwise fail deep inside a
// solve. It does not read sections files or touch the network.
func (c *Config) Validate() error {
	switch core.Driver(c.Source.Driver) {
	case core.DriverFilesystem, core.DriverS3, core.DriverMemory:
	default:
		return invalid("source.driver %q", c.Source.Driver)
	}
	if _, err := c.RangePolicy(); err != nil {
		return err
	}
	if c.Polars.CacheTTL < 0 {
		return invalid("polars.cache_ttl %v", c.Polars.CacheTTL)
	}
	if len(c.Propellers) == 0 {
		return invalid("no propellers")
	}
	seen := make(map[string]bool, len(c.Propellers))
	for i, p := range c.Propellers {
		switch {
		case p.Name == "":
			return invalid("propellers[%d]: empty name", i)
		case seen[p.Name]:
			return invalid("propellers[%d]: duplicate name %q", i, p.Name)
		case !(p.Radius > 0):
			return invalid("%s: radius %g", p.Name, p.Radius)
		case p.Blades < 1:
			return invalid("%s: blades %d", p.Name, p.Blades)
		case p.Radial < 2 || p.Azimuthal < 1:
			return invalid("%s: mesh %dx%d", p.Name, p.Radial, p.Azimuthal)
		case len(p.Sections) == 0 && p.SectionsFile == "":
			return invalid("%s: no sections", p.Name)
		case len(p.Sections) > 0 && p.SectionsFile != "":
			return invalid("%s: both sections and sections_file", p.Name)
		}
		seen[p.Name] = true
		if _, err := p.Controller(); err != nil {
			return invalid("%s: %v", p.Name, err)
		}
	}
	s := c.Solver
	if s.RootCut < 0 || s.RootCut >= 1 {
		return invalid("solver.root_cut %g", s.RootCut)
	}
	if s.ConstraintTol < 0 || s.XTol < 0 || s.MaxEval < 0 {
		return invalid("solver tolerances %g/%g, max_eval %d", s.ConstraintTol, s.XTol, s.MaxEval)
	}
	switch c.Results.Driver {
	case results.DriverSQLite, results.DriverPostgres:
	default:
		return invalid("results.driver %q", c.Results.Driver)
	}
	if !(c.Server.Rate > 0) || c.Server.Burst < 1 {
		return invalid("server rate %g, burst %d", c.Server.Rate, c.Server.Burst)
	}

	return nil
}

// RangePolicy maps polars.policy onto polar.RangePolicy.
func (c *Config) RangePolicy() (polar.RangePolicy, error) {
	switch c.Polars.Policy {
	case "clamp":
		return polar.Clamp, nil
	case "abort":
		return polar.Abort, nil
	}

	return 0, invalid("polars.policy %q", c.Polars.Policy)
}

// Controller builds the initial controller of p.
func (p Propeller) Controller() (propeller.Controller, error) {
	mode, err := propeller.ParseMode(p.Mode)
	if err != nil {
		return propeller.Controller{}, err
	}
	ctrl := propeller.NewController(mode, p.RPM, p.Pitch)
	if p.Lower != nil {
		ctrl.Lower = *p.Lower
	}
	if p.Upper != nil {
		ctrl.Upper = *p.Upper
	}

	return ctrl, ctrl.Validate()
}

// Path resolves name against the directory of the run file.
func (c *Config) Path(name string) string {
	if name == "" || filepath.IsAbs(name) || c.dir == "" {
		return name
	}

	return filepath.Join(c.dir, name)
}
