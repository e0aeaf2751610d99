// Package propulsion groups propellers that share one atmosphere and
// splits a required force between them.
//
// 🚀 Ownership
//
//	A System owns its *atmosphere.Atmosphere. Propellers added to it keep
//	only a weak reference, so dropping the System leaves them unusable
//	(propeller.ErrConfiguration) rather than pinning a stale state.
//
// ✨ Key features:
//   - SetRequiredThrust splits |F| evenly and tilts every disk towards F
//   - Solve trims all propellers concurrently; one failure never stops
//     the others
//   - PowerRequired, SoundPressureLevel (energetic sum), per-propeller
//     Pitches, RPMs and Errors
//   - Sweep runs a batch of operating points and records failures per
//     point and per propeller
//
// ⚙️ Usage:
//
//	sys, err := propulsion.New(atmosphere.Conditions{Velocity: 20}, propulsion.WithLogger(logger))
//	err = sys.Add(propeller.New("left"), bld, propeller.NewController(propeller.ModeBoth, 60, 5))
//	sys.SetRequiredThrust(100, 0)
//	err = sys.Solve(ctx)
//	power := sys.PowerRequired()
package propulsion
