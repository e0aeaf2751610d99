// SPDX-License-Identifier: MIT

package export

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/propel/propeller"
	"github.com/katalvlaran/propel/propulsion"
)

// Sheet names.
const (
	SheetSweep         = "Sweep"
	SheetSummary       = "Summary"
	SheetVelocity      = "Velocity"
	SheetAngleOfAttack = "AngleOfAttack"
	SheetForce         = "Force"
	SheetAcoustic      = "Acoustic"
)

var sweepHeader = []any{
	"Point", "Altitude [m]", "dT [K]", "Velocity [m/s]", "AoA [deg]", "Thrust X [N]", "Thrust Z [N]",
	"Propeller", "State", "Thrust [N]", "Thrust obtained [N]", "Power [W]", "Torque [N·m]",
	"Pitch [deg]", "RPM [rad/s]", "Ct error", "SPL [dB]", "Error",
}

// WriteWorkbook writes one row per propeller per point to the Sweep
// sheet and one row per point to Summary. When detail is non-nil its
// sectional data goes to four more sheets.
func WriteWorkbook(w io.Writer, outcomes []propulsion.Outcome, detail *propeller.Snapshot) (retErr error) {
	if w == nil {
		return ErrNilWriter
	}
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()
	if err := f.SetSheetName("Sheet1", SheetSweep); err != nil {
		return err
	}
	tw := &tableWriter{f: f}

	tw.sheet(SheetSweep, sweepHeader)
	for i, o := range outcomes {
		failed := make(map[string]string, len(o.Failures))
		for _, fl := range o.Failures {
			failed[fl.Propeller] = fl.Error
		}
		c := o.Point.Conditions
		point := []any{i + 1, c.Altitude, c.TemperatureOffset, c.Velocity, c.AngleOfAttack, o.Point.ThrustX, o.Point.ThrustZ}
		if o.Err != nil || len(o.Solution.Propellers) == 0 {
			msg := ""
			if o.Err != nil {
				msg = o.Err.Error()
			}
			tw.row(append(point, "", "", "", "", "", "", "", "", "", "", msg))
			continue
		}
		for _, ps := range o.Solution.Propellers {
			r := ps.Result
			tw.row(append(point[:7:7], ps.Name, r.State.String(), num(r.Thrust), num(r.ThrustObtained),
				num(r.Power), num(r.Torque), num(r.Pitch), num(r.RPM), num(r.Error()), num(ps.SPL), failed[ps.Name]))
		}
	}

	tw.sheet(SheetSummary, []any{"Point", "Power [W]", "SPL [dB]", "Trimmed"})
	for i, o := range outcomes {
		tw.row([]any{i + 1, num(o.Solution.Power), num(o.Solution.SPL), o.OK()})
	}

	if detail != nil {
		tw.sheet(SheetVelocity, []any{"X [m/s]", "Y [m/s]", "Z [m/s]"})
		for _, v := range detail.Velocity {
			tw.row([]any{v.X, v.Y, v.Z})
		}
		tw.sheet(SheetAngleOfAttack, []any{"AoA [deg]"})
		for _, a := range detail.AngleOfAttack {
			tw.row([]any{a})
		}
		tw.sheet(SheetForce, []any{"X", "Y", "Z"})
		for _, v := range detail.Force {
			tw.row([]any{v.X, v.Y, v.Z})
		}
		tw.sheet(SheetAcoustic, []any{"Real [Pa]", "Imag [Pa]"})
		for _, p := range detail.Acoustic {
			tw.row([]any{real(p), imag(p)})
		}
	}
	if tw.err != nil {
		return tw.err
	}

	return f.Write(w)
}

// tableWriter appends rows to the current sheet and keeps the first error.
type tableWriter struct {
	f    *excelize.File
	name string
	next int
	err  error
}

func (t *tableWriter) sheet(name string, header []any) {
	if t.err != nil {
		return
	}
	if name != SheetSweep {
		if _, err := t.f.NewSheet(name); err != nil {
			t.err = fmt.Errorf("sheet %s: %w", name, err)
			return
		}
	}
	t.name, t.next = name, 1
	t.row(header)
}

func (t *tableWriter) row(values []any) {
	if t.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, t.next)
	if err == nil {
		err = t.f.SetSheetRow(t.name, cell, &values)
	}
	if err != nil {
		t.err = fmt.Errorf("%s row %d: %w", t.name, t.next, err)
		return
	}
	t.next++
}

// num blanks the failure sentinel and non-finite values.
func num(v float64) any {
	if v == math.MaxFloat64 || math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}

	return v
}
