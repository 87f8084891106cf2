// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abmath

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
)

const (
	// maxQuantileSteps bounds each phase of the quantile search.
	maxQuantileSteps = 100

	// quantileTol is the relative width at which the search
	// bracket counts as converged.
	quantileTol = 1e-12
)

// tQuantile returns the x at which the CDF of the Student-t
// distribution with v degrees of freedom reaches p, for p in (0, 1).
//
// go-moremath exposes the t CDF but not its inverse, so this inverts
// the CDF numerically: the bracket [0, hi] doubles until it spans p,
// then bisects. Each phase is bounded by maxQuantileSteps iterations
// and reports ErrNoConvergence on exhaustion rather than looping
// further; bisection halves the bracket each step, so the budget is
// far more than float64 resolution requires.
func tQuantile(v, p float64) (float64, error) {
	if !(p > 0 && p < 1) {
		return math.NaN(), fmt.Errorf("probability %v: %w", p, ErrOutOfRange)
	}
	if p < 0.5 {
		// The distribution is symmetric about zero; search the
		// upper tail only.
		x, err := tQuantile(v, 1-p)
		return -x, err
	}
	dist := stats.TDist{V: v}

	lo, hi := 0.0, 1.0
	for i := 0; dist.CDF(hi) < p; i++ {
		if i == maxQuantileSteps {
			return math.NaN(), ErrNoConvergence
		}
		lo, hi = hi, hi*2
	}
	for i := 0; i < maxQuantileSteps; i++ {
		mid := lo + (hi-lo)/2
		if dist.CDF(mid) < p {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo <= quantileTol*(1+hi) {
			return lo + (hi-lo)/2, nil
		}
	}
	return math.NaN(), ErrNoConvergence
}
