package returns

import (
	"errors"
	"math"
)

var (
	// ErrNoRoot means the cash-flow vector has no sign change, so no
	// discount rate can zero its NPV.
	ErrNoRoot = errors.New("cash flows have no sign change, no rate exists")

	// ErrNonConvergent means the solver exhausted its iteration budget.
	ErrNonConvergent = errors.New("rate solve did not converge")
)

const (
	maxNewtonIters = 60
	maxBisectIters = 200

	// Root search domain as periodic rates: just above total loss up to 1000%.
	rateFloor = -0.9999
	rateCeil  = 10.0
)

// NPV discounts flows at a periodic rate expressed as a fraction (0.08 = 8%).
// flows[0] lands at time zero, each subsequent flow one period later.
func NPV(rate float64, flows []float64) float64 {
	npv := 0.0
	for t, cf := range flows {
		npv += cf / math.Pow(1+rate, float64(t))
	}
	return npv
}

// IRR finds the rate that zeroes the NPV of flows and returns it as a
// percentage (24.3 means 24.3%). Newton's method from a 10% seed, falling
// back to bisection on a bracket scanned over [rateFloor, rateCeil].
//
// The vector must contain at least one strictly positive and one strictly
// negative flow; anything else returns ErrNoRoot.
func IRR(flows []float64) (float64, error) {
	hasPos, hasNeg := false, false
	for _, cf := range flows {
		if cf > 0 {
			hasPos = true
		}
		if cf < 0 {
			hasNeg = true
		}
	}
	if !hasPos || !hasNeg {
		return 0, ErrNoRoot
	}

	tol := npvTolerance(flows)

	if r, ok := newton(flows, 0.10, tol); ok {
		return r * 100, nil
	}

	r, err := bisect(flows, tol)
	if err != nil {
		return 0, err
	}
	return r * 100, nil
}

// npvTolerance scales the convergence target to the magnitude of the flows.
func npvTolerance(flows []float64) float64 {
	scale := 0.0
	for _, cf := range flows {
		scale += math.Abs(cf)
	}
	if scale == 0 {
		return 1e-9
	}
	return 1e-9 * scale
}

func newton(flows []float64, seed, tol float64) (float64, bool) {
	r := seed
	for i := 0; i < maxNewtonIters; i++ {
		npv := NPV(r, flows)
		if math.Abs(npv) <= tol {
			return r, true
		}
		d := npvDerivative(r, flows)
		if math.Abs(d) < 1e-12 {
			return 0, false
		}
		next := r - npv/d
		if next <= rateFloor || next > rateCeil || math.IsNaN(next) || math.IsInf(next, 0) {
			return 0, false
		}
		if math.Abs(next-r) < 1e-14 {
			r = next
			break
		}
		r = next
	}
	if math.Abs(NPV(r, flows)) <= tol {
		return r, true
	}
	return 0, false
}

func npvDerivative(rate float64, flows []float64) float64 {
	d := 0.0
	for t, cf := range flows {
		if t == 0 {
			continue
		}
		d -= float64(t) * cf / math.Pow(1+rate, float64(t+1))
	}
	return d
}

// bisect scans [rateFloor, rateCeil] for a sign change of the NPV, then
// halves the bracket. Returns ErrNonConvergent when no bracket exists in the
// search domain or the iteration budget runs out.
func bisect(flows []float64, tol float64) (float64, error) {
	const step = 0.05

	lo := rateFloor
	flo := NPV(lo, flows)
	if math.Abs(flo) <= tol {
		return lo, nil
	}

	hi := lo
	found := false
	for x := lo + step; x <= rateCeil+1e-12; x += step {
		fx := NPV(x, flows)
		if math.Abs(fx) <= tol {
			return x, nil
		}
		if flo*fx < 0 {
			hi = x
			found = true
			break
		}
		lo, flo = x, fx
	}
	if !found {
		return 0, ErrNonConvergent
	}

	for i := 0; i < maxBisectIters; i++ {
		mid := (lo + hi) / 2
		fmid := NPV(mid, flows)
		if math.Abs(fmid) <= tol || (hi-lo)/2 < 1e-12 {
			return mid, nil
		}
		if flo*fmid < 0 {
			hi = mid
		} else {
			lo, flo = mid, fmid
		}
	}
	return 0, ErrNonConvergent
}
