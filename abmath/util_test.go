// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abmath

import (
	"math"
	"testing"
)

func aeq(x, y float64) bool {
	if x < 0 && y < 0 {
		x, y = -x, -y
	}
	// Check that x and y are equal to 8 digits.
	const factor = 1 - 1e-7
	return x*factor <= y && y*factor <= x
}

// near reports whether got is within tol of want. Reference values
// below come from SciPy and are only quoted to limited precision.
func near(want, got, tol float64) bool {
	return math.Abs(want-got) <= tol
}

func checkNear(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if !near(want, got, tol) {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, tol)
	}
}
