// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package abmath provides statistical comparisons of the control and
// treatment arms of an A/B experiment.
//
// Two tests are provided: an unpooled two-sample z-test on proportions
// (ProportionsZTest) and Welch's unequal-variance t-test on means
// (WelchTTest). Both reduce their inputs to the same pair of Group
// summaries and produce a Comparison, from which callers derive the
// treatment-versus-control difference with delta-method confidence
// intervals (Comparison.Delta) and a post-hoc minimum sample size
// diagnostic (Comparison.MinSampleSize).
//
// All computation is pure: repeated calls with identical inputs return
// bit-identical results. Results that are only partially defined carry
// a list of warnings, captured as an []error value. These aren't
// errors that prevent analysis, but should be presented to the user
// along with analysis results.
package abmath

import "fmt"

// epsilon guards divisions by estimates and standard errors that are
// zero or within float noise of it.
const epsilon = 1e-10

// A Config holds the parameters of a significance test.
//
// This should be initialized from DefaultConfig because it may be
// extended with other fields in the future.
type Config struct {
	// Alpha is the two-sided significance level, in (0, 1).
	Alpha float64

	// Power is the target power 1-beta used by MinSampleSize, in
	// (0, 1).
	Power float64

	// AllocationRatio is the control:treatment sample size ratio k
	// assumed by MinSampleSize. If zero, the ratio actually
	// observed in the comparison's two arms is used, keeping the
	// answer consistent with the as-run design.
	AllocationRatio float64
}

// DefaultConfig contains the conventional test parameters.
var DefaultConfig = Config{Alpha: 0.05, Power: 0.8}

func (c Config) check() error {
	if !(c.Alpha > 0 && c.Alpha < 1) {
		return fmt.Errorf("alpha %v: %w", c.Alpha, ErrOutOfRange)
	}
	if !(c.Power > 0 && c.Power < 1) {
		return fmt.Errorf("power %v: %w", c.Power, ErrOutOfRange)
	}
	if c.AllocationRatio < 0 {
		return fmt.Errorf("allocation ratio %v: %w", c.AllocationRatio, ErrOutOfRange)
	}
	return nil
}

// A Group summarizes one arm of an experiment.
type Group struct {
	// N is the number of observations in the arm.
	N int

	// Estimate is the arm's point estimate: the observed
	// proportion for count data, the sample mean for measurement
	// data.
	Estimate float64

	// Variance is the variance of Estimate, not of a single
	// observation. For a proportion p over n observations this is
	// p(1-p)/n; for a mean it is the sample variance over n.
	Variance float64
}

// obsVariance returns the arm's per-observation variance.
func (g Group) obsVariance() float64 {
	return g.Variance * float64(g.N)
}

// A Comparison is the result of testing a treatment arm against a
// control arm.
type Comparison struct {
	// Control and Treatment summarize the two arms.
	Control, Treatment Group

	// Statistic is the test statistic, signed treatment minus
	// control: a z value for ProportionsZTest, a Welch t value for
	// WelchTTest.
	Statistic float64

	// P is the two-sided p-value of the null hypothesis that the
	// two arms share one underlying proportion or mean.
	P float64

	// DoF is the Welch–Satterthwaite degrees of freedom of the
	// statistic. It is 0 for the z-test, which has none.
	DoF float64

	// Config records the parameters the test was run with.
	Config Config
}
