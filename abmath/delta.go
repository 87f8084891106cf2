// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abmath

import (
	"math"

	"github.com/aclements/go-moremath/stats"
)

// An Interval is a two-sided confidence interval.
type Interval struct {
	Lo, Hi float64
}

// A Delta reports the difference between the treatment and control
// arms of a Comparison, in absolute and relative terms, with a
// confidence interval for each at level 1-alpha.
//
// When the control estimate is zero, the relative change is undefined:
// Relative and RelativeCI are NaN and Warnings records ErrZeroControl.
// The absolute fields are always valid.
type Delta struct {
	// Absolute is the treatment estimate minus the control
	// estimate.
	Absolute float64

	// AbsoluteCI is the confidence interval around Absolute.
	AbsoluteCI Interval

	// Relative is Absolute as a fraction of the control estimate;
	// 0.05 means a 5% uplift.
	Relative float64

	// RelativeCI is the delta-method confidence interval around
	// Relative.
	RelativeCI Interval

	// Warnings is a list of warnings about fields of this delta
	// that could not be computed.
	Warnings []error
}

// Delta computes the treatment-minus-control difference of c and its
// confidence intervals.
//
// Both intervals use one shared critical value: the standard normal
// quantile z_{1-alpha/2} for the z-test, or the Student-t quantile at
// the comparison's degrees of freedom for the t-test. The variance of
// the relative change comes from the first-order Taylor expansion of
// the ratio of the two independent estimates T and C:
//
//	Var(T/C - 1) ≈ Var(T)/C² + T²·Var(C)/C⁴
func (c *Comparison) Delta() (Delta, error) {
	crit, err := c.criticalValue()
	if err != nil {
		return Delta{}, err
	}

	d := Delta{Absolute: c.Treatment.Estimate - c.Control.Estimate}
	se := math.Sqrt(c.Control.Variance + c.Treatment.Variance)
	d.AbsoluteCI = Interval{d.Absolute - crit*se, d.Absolute + crit*se}

	mc := c.Control.Estimate
	if math.Abs(mc) <= epsilon {
		d.Relative = math.NaN()
		d.RelativeCI = Interval{math.NaN(), math.NaN()}
		d.Warnings = append(d.Warnings, ErrZeroControl)
		return d, nil
	}
	mt := c.Treatment.Estimate
	d.Relative = d.Absolute / mc
	rse := math.Sqrt(c.Treatment.Variance/(mc*mc) + mt*mt*c.Control.Variance/(mc*mc*mc*mc))
	d.RelativeCI = Interval{d.Relative - crit*rse, d.Relative + crit*rse}
	return d, nil
}

// criticalValue returns the two-sided critical value of c's test
// distribution at c's alpha level.
func (c *Comparison) criticalValue() (float64, error) {
	p := 1 - c.Config.Alpha/2
	if c.DoF > 0 {
		return tQuantile(c.DoF, p)
	}
	return stats.StdNormal.InvCDF(p), nil
}
