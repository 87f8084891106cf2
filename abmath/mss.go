// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abmath

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
)

// A SampleSize is the outcome of a post-hoc minimum sample size
// calculation.
type SampleSize struct {
	// RequiredN is the minimum treatment arm size at which the
	// observed effect would be detected at the configured alpha
	// and power.
	RequiredN int

	// Ratio is the actual treatment arm size as a fraction of
	// RequiredN. A value of 1 or more means the experiment was
	// large enough for its own observed effect.
	Ratio float64
}

// MinSampleSize answers, after the fact, what treatment arm size the
// experiment would have needed for the effect and variances actually
// observed to be detectable at the configured alpha and power. It is a
// diagnostic, not a pre-experiment design tool: it sizes the observed
// effect, not a hypothesized one.
//
// The control arm is assumed to keep its allocation ratio k to the
// treatment arm: Config.AllocationRatio if nonzero, otherwise the
// ratio observed in the comparison. The closed form, on
// per-observation variances, is
//
//	n = (z_{1-alpha/2} + z_power)² · (σc²/k + σt²) / Δ²
//
// rounded up to an integer.
//
// The answer is undefined when the observed effect is zero
// (ErrZeroEffect) and when either arm has zero per-observation
// variance, as a proportion of exactly 0 or 1 does (ErrZeroVariance).
func (c *Comparison) MinSampleSize() (SampleSize, error) {
	vc, vt := c.Control.obsVariance(), c.Treatment.obsVariance()
	if vc <= 0 || vt <= 0 {
		return SampleSize{}, fmt.Errorf("per-observation variance is zero: %w", ErrZeroVariance)
	}
	delta := math.Abs(c.Treatment.Estimate - c.Control.Estimate)
	if delta <= epsilon {
		return SampleSize{}, ErrZeroEffect
	}
	k := c.Config.AllocationRatio
	if k == 0 {
		k = float64(c.Control.N) / float64(c.Treatment.N)
	}

	zAlpha := stats.StdNormal.InvCDF(1 - c.Config.Alpha/2)
	zPower := stats.StdNormal.InvCDF(c.Config.Power)
	n := (zAlpha + zPower) * (zAlpha + zPower) * (vc/k + vt) / (delta * delta)
	required := int(math.Ceil(n))
	return SampleSize{
		RequiredN: required,
		Ratio:     float64(c.Treatment.N) / float64(required),
	}, nil
}
