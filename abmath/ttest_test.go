// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abmath

import (
	"errors"
	"math"
	"testing"
)

var (
	welchControl   = []float64{10.1, 9.8, 11.2, 10.5, 9.9, 10.8, 10.3, 11.0, 9.7, 10.4, 9.8, 10.1}
	welchTreatment = []float64{11.0, 10.5, 11.8, 10.9, 11.2, 10.5, 10.7, 10.1, 10.3, 10.8}
)

func TestWelchTTest(t *testing.T) {
	// Reference values from scipy.stats over the same inputs.
	c, err := WelchTTest(welchControl, welchTreatment, DefaultConfig)
	if err != nil {
		t.Fatal(err)
	}
	if !aeq(c.Control.Estimate, 10.3) || !aeq(c.Treatment.Estimate, 10.78) {
		t.Errorf("means = %v, %v, want 10.3, 10.78", c.Control.Estimate, c.Treatment.Estimate)
	}
	if c.Control.N != 12 || c.Treatment.N != 10 {
		t.Errorf("ns = %d, %d, want 12, 10", c.Control.N, c.Treatment.N)
	}
	if !aeq(c.Control.obsVariance(), 0.24545454545454548) {
		t.Errorf("control sample variance = %v, want 0.2454545...", c.Control.obsVariance())
	}
	checkNear(t, "t", c.Statistic, 2.2834402937, 1e-8)
	checkNear(t, "DoF", c.DoF, 19.4051819217, 1e-8)
	checkNear(t, "p", c.P, 0.0338321628, 1e-6)

	d, err := c.Delta()
	if err != nil {
		t.Fatal(err)
	}
	if !aeq(d.Absolute, 0.48) {
		t.Errorf("absolute delta = %v, want 0.48", d.Absolute)
	}
	checkNear(t, "abs CI lo", d.AbsoluteCI.Lo, 0.0406481866, 1e-6)
	checkNear(t, "abs CI hi", d.AbsoluteCI.Hi, 0.9193518134, 1e-6)
	checkNear(t, "relative", d.Relative, 0.0466019417, 1e-8)
	checkNear(t, "rel CI lo", d.RelativeCI.Lo, 0.0030149893, 1e-6)
	checkNear(t, "rel CI hi", d.RelativeCI.Hi, 0.0901888942, 1e-6)

	mss, err := c.MinSampleSize()
	if err != nil {
		t.Fatal(err)
	}
	if mss.RequiredN != 16 {
		t.Errorf("required n = %d, want 16", mss.RequiredN)
	}
	if mss.Ratio != 10.0/16 {
		t.Errorf("ratio = %v, want 0.625", mss.Ratio)
	}
}

func TestWelchTTestNaNs(t *testing.T) {
	// NaN observations are dropped, not propagated.
	nan := math.NaN()
	control := append([]float64{nan}, welchControl...)
	treatment := append(append([]float64{}, welchTreatment...), nan, nan)
	c1, err := WelchTTest(control, treatment, DefaultConfig)
	if err != nil {
		t.Fatal(err)
	}
	c2, err := WelchTTest(welchControl, welchTreatment, DefaultConfig)
	if err != nil {
		t.Fatal(err)
	}
	if c1.Statistic != c2.Statistic || c1.P != c2.P || c1.DoF != c2.DoF {
		t.Errorf("with NaNs got %+v, want %+v", c1, c2)
	}
}

func TestWelchTTestErrors(t *testing.T) {
	check := func(err, want error) {
		t.Helper()
		if !errors.Is(err, want) {
			t.Errorf("got error %v, want %v", err, want)
		}
	}
	_, err := WelchTTest([]float64{1}, []float64{1, 2}, DefaultConfig)
	check(err, ErrSampleSize)
	_, err = WelchTTest([]float64{1, 2}, nil, DefaultConfig)
	check(err, ErrSampleSize)
	// A NaN-only arm is empty after filtering.
	nan := math.NaN()
	_, err = WelchTTest([]float64{1, 2}, []float64{nan, nan}, DefaultConfig)
	check(err, ErrSampleSize)
	// Constant arms have no variance to test against.
	_, err = WelchTTest([]float64{3, 3, 3}, []float64{1, 2, 3}, DefaultConfig)
	check(err, ErrZeroVariance)
	_, err = WelchTTest([]float64{1, 2, 3}, []float64{3, 3, 3}, DefaultConfig)
	check(err, ErrZeroVariance)
	_, err = WelchTTest([]float64{1, 2}, []float64{1, 2}, Config{Alpha: 1, Power: 0.8})
	check(err, ErrOutOfRange)
}

func TestWelchTTestSymmetry(t *testing.T) {
	c1, err := WelchTTest(welchControl, welchTreatment, DefaultConfig)
	if err != nil {
		t.Fatal(err)
	}
	c2, err := WelchTTest(welchTreatment, welchControl, DefaultConfig)
	if err != nil {
		t.Fatal(err)
	}
	if c2.Statistic != -c1.Statistic {
		t.Errorf("swapped statistic = %v, want %v", c2.Statistic, -c1.Statistic)
	}
	if c2.P != c1.P {
		t.Errorf("swapped p = %v, want %v", c2.P, c1.P)
	}
	if c2.DoF != c1.DoF {
		t.Errorf("swapped DoF = %v, want %v", c2.DoF, c1.DoF)
	}
}
