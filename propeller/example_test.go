package propeller_test

import (
	"fmt"

	"github.com/katalvlaran/propel/atmosphere"
	"github.com/katalvlaran/propel/blade"
	"github.com/katalvlaran/propel/polar"
	"github.com/katalvlaran/propel/propeller"
)

// ExamplePropeller_SolveThrust trims a two-bladed rotor to 50 N in hover.
func ExamplePropeller_SolveThrust() {
	store := polar.NewStore()
	if err := store.Build("thin", thinTable().Build()); err != nil {
		fmt.Println(err)
		return
	}
	store.Freeze()
	bld, err := blade.New(1, []blade.Section{
		{Location: 0, Airfoil: "thin", Chord: 0.1, Twist: 20},
		{Location: 1, Airfoil: "thin", Chord: 0.1, Twist: -4},
	}, blade.WithPolars(store))
	if err != nil {
		fmt.Println(err)
		return
	}
	env, _ := atmosphere.SeaLevel(0)

	p := propeller.New("front")
	if err = p.Attach(bld, propeller.NewController(propeller.ModeBoth, 60, 5), env); err != nil {
		fmt.Println(err)
		return
	}
	res, err := p.SolveThrust(50, 0)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%v thrust=%.2f N, power in range: %v\n", res.State, res.ThrustObtained, res.Power > 150 && res.Power < 250)
	// Output:
	// trimmed thrust=50.00 N, power in range: true
}
