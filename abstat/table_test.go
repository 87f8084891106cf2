// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abstat

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func testTable() *Table {
	return &Table{Rows: []Row{
		{
			Experiment:    "alpha",
			MetricFormula: "122/1001",
			MetricValue:   0.121878,
			DeltaRelative: "+20.43%",
			DeltaAbsolute: 0.0207,
			PValue:        0.1418,
			CIRelative:    "[-9.52%, 50.38%]",
			CIAbsolute:    "[-0.0069, 0.0483]",
			MSS:           "27.5% (3,641)",
			Statistic:     1.47,
			DoF:           math.NaN(),
		},
		{
			Experiment:    "bravo-long-name",
			MetricFormula: "107/10",
			MetricValue:   10.78,
			DeltaRelative: "+4.66%",
			DeltaAbsolute: 0.48,
			PValue:        0.03383,
			CIRelative:    "[0.30%, 9.02%]",
			CIAbsolute:    "[0.0406, 0.9194]",
			MSS:           "62.5% (16)",
			Statistic:     2.28,
			DoF:           19.41,
		},
	}}
}

func TestFormatText(t *testing.T) {
	want := `experiment       metric_formula  metric_value  delta_relative  delta_absolute  p_value       CI_relative        CI_absolute            MSS  statistic     df
alpha                  122/1001      0.121878         +20.43%          0.0207  0.14180  [-9.52%, 50.38%]  [-0.0069, 0.0483]  27.5% (3,641)       1.47
bravo-long-name          107/10         10.78          +4.66%          0.4800  0.03383    [0.30%, 9.02%]   [0.0406, 0.9194]     62.5% (16)       2.28  19.41
`
	var buf bytes.Buffer
	FormatText(&buf, testTable())
	if got := buf.String(); got != want {
		t.Errorf("got:\n%swant:\n%s", got, want)
	}
}

func TestFormatTextWideRune(t *testing.T) {
	// "∞" is multi-byte; alignment must count runes, not bytes.
	tab := testTable()
	tab.Rows[1].MSS = "0.0% (∞)"
	var buf bytes.Buffer
	FormatText(&buf, tab)
	lines := strings.Split(buf.String(), "\n")
	// "27.5% (3,641)" is 13 runes wide, so the 8-rune "0.0% (∞)"
	// gets 5 runes of padding after the 2-space separator.
	if !strings.Contains(lines[2], "       0.0% (∞)       2.28") {
		t.Errorf("MSS column misaligned: %q", lines[2])
	}
}

func TestFormatCSV(t *testing.T) {
	want := `experiment,metric_formula,metric_value,delta_relative,delta_absolute,p_value,CI_relative,CI_absolute,MSS,statistic,df
alpha,122/1001,0.121878,+20.43%,0.0207,0.14180,"[-9.52%, 50.38%]","[-0.0069, 0.0483]","27.5% (3,641)",1.47,
bravo-long-name,107/10,10.78,+4.66%,0.4800,0.03383,"[0.30%, 9.02%]","[0.0406, 0.9194]",62.5% (16),2.28,19.41
`
	var buf bytes.Buffer
	FormatCSV(&buf, testTable())
	if got := buf.String(); got != want {
		t.Errorf("got:\n%swant:\n%s", got, want)
	}
}

func TestFormatHTML(t *testing.T) {
	var buf bytes.Buffer
	FormatHTML(&buf, testTable())
	got := buf.String()
	for _, want := range []string{"<table", "bravo-long-name", "27.5% (3,641)", "</table>"} {
		if !strings.Contains(got, want) {
			t.Errorf("HTML output missing %q", want)
		}
	}
}
