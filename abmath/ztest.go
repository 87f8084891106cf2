// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abmath

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
)

// ProportionsZTest compares the success proportions of two arms with a
// two-sample z-test.
//
// The standard error of the difference is unpooled: each arm
// contributes the variance of its own observed proportion rather than
// a pooled estimate. The same variance model feeds the confidence
// intervals derived from the returned Comparison, so statistic and
// intervals always agree.
func ProportionsZTest(controlN, controlSuccesses, treatmentN, treatmentSuccesses int, cfg Config) (*Comparison, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}
	if controlN < 1 || treatmentN < 1 {
		return nil, fmt.Errorf("arm has no observations (control %d, treatment %d): %w", controlN, treatmentN, ErrSampleSize)
	}
	if controlSuccesses < 0 || controlSuccesses > controlN {
		return nil, fmt.Errorf("control successes %d of %d: %w", controlSuccesses, controlN, ErrOutOfRange)
	}
	if treatmentSuccesses < 0 || treatmentSuccesses > treatmentN {
		return nil, fmt.Errorf("treatment successes %d of %d: %w", treatmentSuccesses, treatmentN, ErrOutOfRange)
	}

	control := binomialGroup(controlSuccesses, controlN)
	treatment := binomialGroup(treatmentSuccesses, treatmentN)

	// If both proportions sit on a boundary, the unpooled SE
	// collapses to zero. Clamp it so an identical pair still
	// reports z=0, p=1 rather than NaN.
	se := math.Sqrt(control.Variance + treatment.Variance)
	if se <= 0 {
		se = epsilon
	}
	z := (treatment.Estimate - control.Estimate) / se

	return &Comparison{
		Control:   control,
		Treatment: treatment,
		Statistic: z,
		P:         2 * stats.StdNormal.CDF(-math.Abs(z)),
		Config:    cfg,
	}, nil
}

// binomialGroup summarizes successes out of n Bernoulli trials.
func binomialGroup(successes, n int) Group {
	p := float64(successes) / float64(n)
	return Group{
		N:        n,
		Estimate: p,
		Variance: p * (1 - p) / float64(n),
	}
}
