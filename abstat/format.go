// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abstat

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/abtest/abmath"
)

// formatPercent renders a fraction as a signed percentage to two
// decimal places: formatPercent(0.2043) = "+20.43%".
func formatPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", 100*v)
}

// formatCI renders an absolute confidence interval to four decimal
// places: "[-0.0069, 0.0483]".
func formatCI(iv abmath.Interval) string {
	return fmt.Sprintf("[%.4f, %.4f]", iv.Lo, iv.Hi)
}

// formatPercentCI renders a fractional confidence interval as
// percentages to two decimal places: "[-9.52%, 50.38%]".
func formatPercentCI(iv abmath.Interval) string {
	return fmt.Sprintf("[%.2f%%, %.2f%%]", 100*iv.Lo, 100*iv.Hi)
}

// comma inserts thousands separators: comma(3641) = "3,641".
func comma(n int) string {
	s := strconv.Itoa(n)
	start := 0
	if n < 0 {
		start = 1
	}
	var groups []string
	for end := len(s); end > start; end -= 3 {
		begin := end - 3
		if begin < start {
			begin = start
		}
		groups = append([]string{s[begin:end]}, groups...)
	}
	return s[:start] + strings.Join(groups, ",")
}
