// Package optim minimizes a scalar objective over a box subject to one
// equality constraint, using only function values.
//
// 🚀 Method
//
//	The solver keeps n+1 points (a simplex) in coordinates normalised to
//	the unit box and fits linear models of the objective f and the
//	constraint c through them. Each step moves to the model optimum inside
//	a trust region of radius ρ: first toward c = 0 along the constraint
//	gradient, then down the projected objective gradient with whatever
//	radius is left. Points are ranked by the merit f + μ|c|, with μ taken
//	from the current Lagrange multiplier estimate. ρ shrinks from
//	DefaultRhoBegin to xtol_rel as the models stop improving, and a short
//	secant restoration along the last constraint gradient removes the
//	residual infeasibility when the budget runs low.
//
// ✨ Properties
//   - bound constraints are honoured exactly; trial points are clipped
//   - an evaluation error or NaN marks a point as rejected, never fatal,
//     except at the starting point
//   - the evaluation budget is a hard cap
//   - fully deterministic: no randomness, stable tie-breaking
//
// ⚙️ Usage:
//
//	res, err := optim.Minimize(optim.Problem{
//		Eval:  func(x []float64) (f, c float64, err error) { ... },
//		Lower: []float64{0, 0},
//		Upper: []float64{100, 90},
//	}, []float64{60, 5}, optim.WithMaxEval(100))
//
// Result.Feasible reports |c| <= the constraint tolerance. When the budget
// runs out first, Minimize returns ErrMaxEval together with the best point
// seen (feasible points first, then lowest merit).
package optim
