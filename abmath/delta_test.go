// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abmath

import (
	"math"
	"testing"
)

func TestDeltaCoverage(t *testing.T) {
	// Both intervals are centered on their estimate by
	// construction; check that over a spread of inputs.
	cases := []struct {
		cn, cs, tn, ts int
	}{
		{998, 101, 1001, 122},
		{100, 1, 100, 99},
		{10, 5, 1000, 400},
		{500, 250, 500, 251},
		{3, 1, 3, 2},
	}
	for _, c := range cases {
		cmp, err := ProportionsZTest(c.cn, c.cs, c.tn, c.ts, DefaultConfig)
		if err != nil {
			t.Fatal(err)
		}
		d, err := cmp.Delta()
		if err != nil {
			t.Fatal(err)
		}
		if !(d.AbsoluteCI.Lo <= d.Absolute && d.Absolute <= d.AbsoluteCI.Hi) {
			t.Errorf("%d/%d vs %d/%d: absolute CI %v does not contain %v", c.cs, c.cn, c.ts, c.tn, d.AbsoluteCI, d.Absolute)
		}
		if !(d.RelativeCI.Lo <= d.Relative && d.Relative <= d.RelativeCI.Hi) {
			t.Errorf("%d/%d vs %d/%d: relative CI %v does not contain %v", c.cs, c.cn, c.ts, c.tn, d.RelativeCI, d.Relative)
		}
		// Centered means equal distance to either bound.
		if !aeq(d.Absolute-d.AbsoluteCI.Lo, d.AbsoluteCI.Hi-d.Absolute) {
			t.Errorf("%d/%d vs %d/%d: absolute CI %v is not centered on %v", c.cs, c.cn, c.ts, c.tn, d.AbsoluteCI, d.Absolute)
		}
	}
}

func TestDeltaAlpha(t *testing.T) {
	// A smaller alpha must widen both intervals.
	width := func(alpha float64) (abs, rel float64) {
		t.Helper()
		cfg := Config{Alpha: alpha, Power: 0.8}
		c, err := ProportionsZTest(998, 101, 1001, 122, cfg)
		if err != nil {
			t.Fatal(err)
		}
		d, err := c.Delta()
		if err != nil {
			t.Fatal(err)
		}
		return d.AbsoluteCI.Hi - d.AbsoluteCI.Lo, d.RelativeCI.Hi - d.RelativeCI.Lo
	}
	abs5, rel5 := width(0.05)
	abs1, rel1 := width(0.01)
	if abs1 <= abs5 || rel1 <= rel5 {
		t.Errorf("alpha 0.01 widths (%v, %v) not wider than alpha 0.05 widths (%v, %v)", abs1, rel1, abs5, rel5)
	}
}

func TestDeltaCriticalValue(t *testing.T) {
	// The t-test must use a t critical value, not the normal one:
	// at small degrees of freedom the interval is visibly wider.
	c, err := WelchTTest([]float64{1, 2, 3}, []float64{5, 7, 9}, DefaultConfig)
	if err != nil {
		t.Fatal(err)
	}
	d, err := c.Delta()
	if err != nil {
		t.Fatal(err)
	}
	se := math.Sqrt(c.Control.Variance + c.Treatment.Variance)
	crit := (d.AbsoluteCI.Hi - d.Absolute) / se
	// z_{0.975} would be 1.96; t_{0.975} at these degrees of
	// freedom is well above 2.5.
	if crit < 2.5 {
		t.Errorf("critical value = %v, want the Student-t value > 2.5", crit)
	}
}
