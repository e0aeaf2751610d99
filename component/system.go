// SPDX-License-Identifier: MIT

package component

import (
	"github.com/katalvlaran/propel/propulsion"
)

// FromSystem returns a propulsion-system node holding one propeller node
// per rotor of sys. Each propeller sits at arms[name] (origin when absent)
// and is pitched so that its +x thrust points along the required thrust
// direction of the system.
func FromSystem(name string, sys *propulsion.System, arms map[string]Vec3) *Component {
	node := &Component{Kind: KindPropulsionSystem, Name: name}
	tilt := sys.DiskTilt()
	for _, p := range sys.Propellers() {
		node.Children = append(node.Children, &Component{
			Kind:     KindPropeller,
			Name:     p.Name(),
			Position: arms[p.Name()],
			Angles:   EulerAngles{Theta: -tilt},
			Rotor:    p,
		})
	}

	return node
}
