// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abstat

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"
)

// A Table is an ordered collection of report rows.
type Table struct {
	Rows []Row
}

// FormatText appends a fixed-width text formatting of the table to
// buf. The experiment column is left-aligned; all others are
// right-aligned.
func FormatText(buf *bytes.Buffer, t *Table) {
	cells := [][]string{columns}
	for _, r := range t.Rows {
		cells = append(cells, r.cells())
	}

	max := make([]int, len(columns))
	for _, row := range cells {
		for i, s := range row {
			if n := utf8.RuneCountInString(s); max[i] < n {
				max[i] = n
			}
		}
	}

	for _, row := range cells {
		var line strings.Builder
		for i, s := range row {
			switch i {
			case 0:
				fmt.Fprintf(&line, "%-*s", max[i], s)
			default:
				// utf8 runes, not bytes; "∞" is wide.
				fmt.Fprintf(&line, "  %*s%s", max[i]-utf8.RuneCountInString(s), "", s)
			}
		}
		buf.WriteString(strings.TrimRight(line.String(), " "))
		buf.WriteByte('\n')
	}
}

// FormatCSV appends a CSV formatting of the table to buf.
func FormatCSV(buf *bytes.Buffer, t *Table) {
	w := csv.NewWriter(buf)
	w.Write(columns)
	for _, r := range t.Rows {
		w.Write(r.cells())
	}
	w.Flush()
}
