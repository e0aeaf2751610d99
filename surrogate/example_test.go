package surrogate_test

import (
	"fmt"

	"github.com/katalvlaran/propel/surrogate"
)

// ExampleInterpolator_EvaluateWeighted shows the exact-match short-circuit
// and an interpolated value between two training rows.
func ExampleInterpolator_EvaluateWeighted() {
	ip, err := surrogate.New(1, 8, surrogate.WithMeanSize(2))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	_ = ip.AddTrainingData([][]float64{{1}, {2}, {4}}, []float64{10, 20, 40})

	exact, _ := ip.EvaluateWeighted([]float64{2})
	between, _ := ip.EvaluateWeighted([]float64{3})
	fmt.Printf("%.1f %.1f\n", exact, between)
	// Output: 20.0 30.0
}

// ExampleNewShared shows two outputs over one input matrix.
func ExampleNewShared() {
	cl, _ := surrogate.New(1, 4)
	_ = cl.AddTrainingData([][]float64{{1}, {2}}, []float64{0.1, 0.2})

	cd, _ := surrogate.NewShared(cl.Inputs())
	_ = cd.SetOutputs([]float64{0.01, 0.02})

	nb, _ := cl.Query([]float64{2})
	v, _ := cd.Weighted(nb)
	fmt.Println(v)
	// Output: 0.02
}
