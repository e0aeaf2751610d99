package polar_test

import (
	"fmt"

	"github.com/katalvlaran/propel/polar"
	"github.com/katalvlaran/propel/polar/polartest"
)

// ExampleStore_AeroValues builds a synthetic airfoil and queries a trained point.
func ExampleStore_AeroValues() {
	s := polar.NewStore()
	if err := s.Build("thin", polartest.Default().Build()); err != nil {
		fmt.Println(err)
		return
	}
	s.Freeze()

	cl, cd, _ := s.AeroValues("thin", 5, 2e5, 0, 1)
	pos, neg, _ := s.StallAngles("thin", 2e5, 0)
	fmt.Printf("CL=%.4f CD=%.5f stall=[%.0f, %.0f]\n", cl, cd, neg, pos)
	// Output:
	// CL=0.5483 CD=0.01101 stall=[-13, 13]
}
