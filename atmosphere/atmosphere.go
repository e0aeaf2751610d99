// SPDX-License-Identifier: MIT

package atmosphere

import (
	"fmt"
	"math"
	"sync"
)

// ISA constants.
const (
	SeaLevelTemperature = 288.15  // K
	SeaLevelPressure    = 101325. // Pa
	SeaLevelDensity     = 1.225   // kg/m³
	LapseRate           = 6.5e-3  // K/m
	Gamma               = 1.4
	GasConstant         = 287.05 // J/(kg·K)

	// MaxAltitude is where the density fit reaches zero.
	MaxAltitude = 1 / 22.558e-6
	// MinAltitude bounds the model below sea level.
	MinAltitude = -1000.
)

// Conditions is the user-facing operating point. Angles are in degrees.
type Conditions struct {
	Altitude          float64 `json:"altitude" yaml:"altitude"`
	TemperatureOffset float64 `json:"temperature_offset" yaml:"temperature_offset"`
	Velocity          float64 `json:"velocity" yaml:"velocity"`
	AngleOfAttack     float64 `json:"angle_of_attack" yaml:"angle_of_attack"`
	Sideslip          float64 `json:"sideslip" yaml:"sideslip"`
}

// Atmosphere holds Conditions and the derived state. Reset replaces both
// under a lock, so readers see either the old or the new point.
type Atmosphere struct {
	mu sync.RWMutex
	c  Conditions

	temperature  float64
	viscosity    float64
	speedOfSound float64
	pressure     float64
	density      float64
}

// New validates c and evaluates the model.
func New(c Conditions) (*Atmosphere, error) {
	a := &Atmosphere{}
	if err := a.Reset(c); err != nil {
		return nil, err
	}

	return a, nil
}

// SeaLevel returns the standard day at zero altitude and the given speed.
func SeaLevel(velocity float64) (*Atmosphere, error) {
	return New(Conditions{Velocity: velocity})
}

// Reset moves the atmosphere to a new operating point. On error the
// previous state is kept.
func (a *Atmosphere) Reset(c Conditions) error {
	for _, v := range []float64{c.Altitude, c.TemperatureOffset, c.Velocity, c.AngleOfAttack, c.Sideslip} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrBadConditions
		}
	}
	if c.Altitude < MinAltitude || c.Altitude >= MaxAltitude {
		return fmt.Errorf("altitude %g m: %w", c.Altitude, ErrAltitudeRange)
	}
	if c.Velocity < 0 {
		return fmt.Errorf("velocity %g m/s: %w", c.Velocity, ErrBadConditions)
	}
	t := SeaLevelTemperature - LapseRate*c.Altitude + c.TemperatureOffset
	if !(t > 0) {
		return fmt.Errorf("temperature %g K: %w", t, ErrBadConditions)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.c = c
	a.temperature = t
	a.viscosity = 1.48e-6 * math.Pow(t, 1.5) / (t + 110.4)
	a.speedOfSound = math.Sqrt(Gamma * GasConstant * t)
	a.pressure = SeaLevelPressure * math.Pow(1-0.0065*c.Altitude/t, 5.2561)
	a.density = SeaLevelDensity * math.Pow(1-22.558e-6*c.Altitude, 4.2559)

	return nil
}

// Conditions returns the current operating point.
func (a *Atmosphere) Conditions() Conditions {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.c
}

// Velocity returns the freestream speed in m/s.
func (a *Atmosphere) Velocity() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.c.Velocity
}

// AngleOfAttack returns the freestream angle of attack in degrees.
func (a *Atmosphere) AngleOfAttack() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.c.AngleOfAttack
}

// Temperature returns the static temperature in K.
func (a *Atmosphere) Temperature() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.temperature
}

// Viscosity returns the dynamic viscosity in Pa·s.
func (a *Atmosphere) Viscosity() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.viscosity
}

// SpeedOfSound returns a in m/s.
func (a *Atmosphere) SpeedOfSound() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.speedOfSound
}

// Pressure returns the static pressure in Pa.
func (a *Atmosphere) Pressure() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.pressure
}

// Density returns ρ in kg/m³.
func (a *Atmosphere) Density() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.density
}

// DynamicPressure returns ρV²/2 at the freestream speed.
func (a *Atmosphere) DynamicPressure() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return 0.5 * a.density * a.c.Velocity * a.c.Velocity
}

// DynamicPressureAt returns ρV²/2 for an arbitrary speed v.
func (a *Atmosphere) DynamicPressureAt(v float64) float64 {
	return 0.5 * a.Density() * v * v
}

// Snapshot is an immutable copy of the derived state.
type Snapshot struct {
	Conditions
	Temperature  float64 `json:"temperature"`
	Viscosity    float64 `json:"viscosity"`
	SpeedOfSound float64 `json:"speed_of_sound"`
	Pressure     float64 `json:"pressure"`
	Density      float64 `json:"density"`
}

// Snapshot copies the current state in one lock acquisition. Solvers take
// one per operating point.
func (a *Atmosphere) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return Snapshot{
		Conditions:   a.c,
		Temperature:  a.temperature,
		Viscosity:    a.viscosity,
		SpeedOfSound: a.speedOfSound,
		Pressure:     a.pressure,
		Density:      a.density,
	}
}
