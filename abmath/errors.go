// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abmath

import "errors"

// Analysis fails in a small number of well-defined ways, each with its
// own sentinel error so callers can tell them apart with errors.Is.
// Errors returned by this package either are one of these values or
// wrap one with detail about the offending input.
var (
	// ErrOutOfRange indicates a parameter outside its legal range,
	// such as alpha or power outside (0, 1) or a success count
	// exceeding its arm's size.
	ErrOutOfRange = errors.New("parameter out of range")

	// ErrSampleSize indicates an arm with too few observations to
	// run the requested test.
	ErrSampleSize = errors.New("sample is too small")

	// ErrZeroVariance indicates a degenerate sample whose variance
	// is zero, which would divide by zero downstream.
	ErrZeroVariance = errors.New("sample has zero variance")

	// ErrZeroControl indicates a control estimate of zero, for
	// which relative change is undefined.
	ErrZeroControl = errors.New("control estimate is zero")

	// ErrZeroEffect indicates an observed effect of zero, which no
	// finite sample size makes detectable.
	ErrZeroEffect = errors.New("observed effect is zero")

	// ErrNoConvergence indicates that the bounded quantile search
	// did not converge within its iteration budget.
	ErrNoConvergence = errors.New("quantile search did not converge")
)
