// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package abstat assembles abmath comparisons into the tabular report
// rows printed by the abstat command.
package abstat

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/abtest/abmath"
)

// A Row is the one-line report for a single experiment.
//
// Numeric columns keep full precision and are rounded by the
// formatters; string columns are preformatted in the report style:
// percentages to two decimal places, intervals as "[lo, hi]", the
// sample size diagnostic as "ratio% (n)" with thousands separators.
type Row struct {
	// Experiment names the experiment.
	Experiment string

	// MetricFormula shows the treatment arm's raw data as "sum/n":
	// successes over size for count data, the (truncated) sum of
	// observations over their number for measurement data.
	MetricFormula string

	// MetricValue is the treatment arm's point estimate.
	MetricValue float64

	// DeltaRelative is the uplift as a signed percentage, or "?"
	// when the control estimate is zero.
	DeltaRelative string

	// DeltaAbsolute is the treatment minus control difference.
	DeltaAbsolute float64

	// PValue is the two-sided p-value of the comparison.
	PValue float64

	// CIRelative and CIAbsolute are the delta-method confidence
	// intervals; CIRelative is "?" when the control estimate is
	// zero.
	CIRelative string
	CIAbsolute string

	// MSS compares the treatment arm size against the post-hoc
	// minimum, e.g. "27.5% (3,641)", or "0.0% (∞)" when the
	// minimum is undefined.
	MSS string

	// Statistic is the z or t statistic.
	Statistic float64

	// DoF is the Welch–Satterthwaite degrees of freedom, or NaN
	// for the proportion test.
	DoF float64
}

// BuildRow assembles the report row for a comparison.
//
// Undefined portions don't fail the row: a zero control estimate
// renders the relative columns as "?", and an undefined minimum sample
// size renders as "0.0% (∞)". The remaining columns are still
// reported.
func BuildRow(name string, c *abmath.Comparison) (Row, error) {
	d, err := c.Delta()
	if err != nil {
		return Row{}, err
	}

	row := Row{
		Experiment:    name,
		MetricFormula: metricFormula(c),
		MetricValue:   c.Treatment.Estimate,
		DeltaAbsolute: d.Absolute,
		PValue:        c.P,
		CIAbsolute:    formatCI(d.AbsoluteCI),
		Statistic:     c.Statistic,
		DoF:           math.NaN(),
	}
	if c.DoF > 0 {
		row.DoF = c.DoF
	}
	if math.IsNaN(d.Relative) {
		row.DeltaRelative, row.CIRelative = "?", "?"
	} else {
		row.DeltaRelative = formatPercent(d.Relative)
		row.CIRelative = formatPercentCI(d.RelativeCI)
	}

	mss, err := c.MinSampleSize()
	switch {
	case err == nil:
		row.MSS = fmt.Sprintf("%.1f%% (%s)", 100*mss.Ratio, comma(mss.RequiredN))
	case errors.Is(err, abmath.ErrZeroEffect) || errors.Is(err, abmath.ErrZeroVariance):
		row.MSS = "0.0% (∞)"
	default:
		return Row{}, err
	}
	return row, nil
}

// metricFormula renders the treatment arm's data as "sum/n". Count
// data has an integral sum by construction; a measurement sum is
// truncated.
func metricFormula(c *abmath.Comparison) string {
	sum := c.Treatment.Estimate * float64(c.Treatment.N)
	if c.DoF == 0 {
		// Count data. Round away the float division noise.
		return fmt.Sprintf("%d/%d", int(math.Round(sum)), c.Treatment.N)
	}
	return fmt.Sprintf("%d/%d", int(sum), c.Treatment.N)
}

// cells renders the row's columns, in the order of columns below.
func (r Row) cells() []string {
	dof := ""
	if !math.IsNaN(r.DoF) {
		dof = fmt.Sprintf("%.2f", r.DoF)
	}
	return []string{
		r.Experiment,
		r.MetricFormula,
		fmt.Sprintf("%.6g", r.MetricValue),
		r.DeltaRelative,
		fmt.Sprintf("%.4f", r.DeltaAbsolute),
		fmt.Sprintf("%.5f", r.PValue),
		r.CIRelative,
		r.CIAbsolute,
		r.MSS,
		fmt.Sprintf("%.2f", r.Statistic),
		dof,
	}
}

// columns are the report's column headers, matching Row.cells.
var columns = []string{
	"experiment",
	"metric_formula",
	"metric_value",
	"delta_relative",
	"delta_absolute",
	"p_value",
	"CI_relative",
	"CI_absolute",
	"MSS",
	"statistic",
	"df",
}
