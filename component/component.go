// SPDX-License-Identifier: MIT

package component

import (
	"fmt"

	"github.com/katalvlaran/propel/propeller"
)

// Kind tags a Component.
type Kind int

const (
	// KindPlane is the root; its position is the centre of gravity.
	KindPlane Kind = iota
	// KindWing carries loads from a WingSolver.
	KindWing
	// KindPropulsionSystem groups propellers.
	KindPropulsionSystem
	// KindPropeller is one rotor, repeated Count times.
	KindPropeller
)

func (k Kind) String() string {
	switch k {
	case KindPlane:
		return "plane"
	case KindWing:
		return "wing"
	case KindPropulsionSystem:
		return "propulsion_system"
	case KindPropeller:
		return "propeller"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Component is one node of the aircraft tree.
type Component struct {
	Kind     Kind
	Name     string
	Weight   float64     // N, acting along +z
	Position Vec3        // relative to the parent, m
	Angles   EulerAngles // attitude relative to the parent
	Count    int         // identical copies; 0 counts as 1
	Children []*Component

	// Wing holds the last SolveWing result of a KindWing node.
	Wing *WingLoads
	// Rotor supplies thrust along +x for a KindPropeller node.
	Rotor *propeller.Propeller
}

func (c *Component) copies() float64 {
	if c.Count <= 0 {
		return 1
	}

	return float64(c.Count)
}

// own returns the force and moment the node carries itself, about its
// own position, excluding children.
func (c *Component) own() (force, moment Vec3, err error) {
	force = Vec3{0, 0, c.Weight}
	switch c.Kind {
	case KindPlane, KindPropulsionSystem:
	case KindWing:
		if c.Wing != nil {
			force = force.Add(c.Wing.Force)
			moment = c.Wing.Moment
		}
	case KindPropeller:
		if c.Rotor != nil && c.Rotor.State() == propeller.StateTrimmed {
			force = force.Add(Vec3{c.Rotor.Result().ThrustObtained, 0, 0})
			moment = Vec3{-c.Rotor.Result().Torque, 0, 0}
		}
	default:
		return Vec3{}, Vec3{}, fmt.Errorf("%q %v: %w", c.Name, c.Kind, ErrUnknownKind)
	}

	return force, moment, nil
}

// ResolveForce returns the total force of c and its subtree expressed in
// c's axes, multiplied by c's copy count.
func ResolveForce(c *Component) (Vec3, error) {
	total, _, err := resolve(c)
	if err != nil {
		return Vec3{}, err
	}

	return total.Scale(c.copies()), nil
}

// ResolveMoment returns the total moment of c and its subtree about c's
// position, in c's axes, multiplied by c's copy count.
func ResolveMoment(c *Component) (Vec3, error) {
	_, total, err := resolve(c)
	if err != nil {
		return Vec3{}, err
	}

	return total.Scale(c.copies()), nil
}

// resolve folds the subtree into (force, moment) at c. Each child is
// rotated out of its own attitude into c's axes before its arm is applied.
func resolve(c *Component) (force, moment Vec3, err error) {
	if force, moment, err = c.own(); err != nil {
		return Vec3{}, Vec3{}, err
	}
	for _, ch := range c.Children {
		f, m, err := resolve(ch)
		if err != nil {
			return Vec3{}, Vec3{}, err
		}
		k := ch.copies()
		f = Unrotate(f, ch.Angles).Scale(k)
		m = Unrotate(m, ch.Angles).Scale(k)
		force = force.Add(f)
		moment = moment.Add(m).Add(ch.Position.Cross(f))
	}

	return force, moment, nil
}

// ResolvePosition returns the position of c in its parent's axes. A plane
// reports its centre of gravity.
func ResolvePosition(c *Component) Vec3 { return c.Position }

// ResolveEulerAngles returns the attitude of c. For a plane these are the
// flight yaw, pitch and roll angles.
func ResolveEulerAngles(c *Component) EulerAngles { return c.Angles }

// Walk visits c and its subtree depth first.
func Walk(c *Component, visit func(*Component) error) error {
	if err := visit(c); err != nil {
		return err
	}
	for _, ch := range c.Children {
		if err := Walk(ch, visit); err != nil {
			return err
		}
	}

	return nil
}
