package rating

import "math"

const (
	solverTolerance = 1e-7 // absolute, on the log-variance
	solverMaxIter   = 100
)

// solveVolatility finds the new volatility sigma' by Newton-Raphson on
// x = ln(sigma'^2), per step 5 of the Glicko-2 paper. The reference loop
// runs unguarded; here it is capped and checked for non-finite iterates so
// that pathological inputs (huge delta, tiny v) surface as ErrDivergence
// instead of spinning or handing NaN back to the caller.
func solveVolatility(phi, v, delta, sigma, tau float64) (float64, error) {
	a := math.Log(sigma * sigma)
	x := a
	for i := 0; i < solverMaxIter; i++ {
		ex := math.Exp(x)
		d := phi*phi + v + ex
		h1 := -(x-a)/(tau*tau) - 0.5*ex/d + 0.5*ex*(delta/d)*(delta/d)
		h2 := -1.0/(tau*tau) - 0.5*ex*(phi*phi+v)/(d*d) + 0.5*delta*delta*ex*(phi*phi+v-ex)/(d*d*d)
		next := x - h1/h2
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return 0, ErrDivergence
		}
		if math.Abs(next-x) <= solverTolerance {
			return math.Exp(next / 2.0), nil
		}
		x = next
	}
	return 0, ErrDivergence
}
