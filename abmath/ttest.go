// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abmath

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
)

// WelchTTest compares the means of two arms of raw observations with
// Welch's unequal-variance t-test, using the Welch–Satterthwaite
// approximation for the degrees of freedom.
//
// NaN observations are dropped. Each arm needs at least two remaining
// observations to estimate a sample variance (ErrSampleSize), and
// neither sample variance may be exactly zero (ErrZeroVariance).
func WelchTTest(control, treatment []float64, cfg Config) (*Comparison, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}
	cs := stats.Sample{Xs: dropNaNs(control)}
	ts := stats.Sample{Xs: dropNaNs(treatment)}
	if len(cs.Xs) < 2 || len(ts.Xs) < 2 {
		return nil, fmt.Errorf("each arm needs at least 2 observations, have control %d and treatment %d: %w", len(cs.Xs), len(ts.Xs), ErrSampleSize)
	}
	if cs.Variance() == 0 || ts.Variance() == 0 {
		return nil, fmt.Errorf("constant arm: %w", ErrZeroVariance)
	}

	// Treatment is the first sample so the statistic is signed
	// treatment minus control, matching ProportionsZTest.
	res, err := stats.TwoSampleWelchTTest(ts, cs, stats.LocationDiffers)
	if err != nil {
		// Unreachable: the guards above reject the same
		// degenerate inputs the test does.
		return nil, err
	}

	return &Comparison{
		Control:   meanGroup(cs),
		Treatment: meanGroup(ts),
		Statistic: res.T,
		P:         res.P,
		DoF:       res.DoF,
		Config:    cfg,
	}, nil
}

// meanGroup summarizes a sample by its mean and the variance of the
// mean estimator (unbiased sample variance over n).
func meanGroup(s stats.Sample) Group {
	n := len(s.Xs)
	return Group{
		N:        n,
		Estimate: s.Mean(),
		Variance: s.Variance() / float64(n),
	}
}

// dropNaNs returns xs without NaN values. The input is not modified.
func dropNaNs(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}
