// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abfmt

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// A Writer writes the abstat experiment results format.
type Writer struct {
	w   io.Writer
	buf bytes.Buffer

	first bool
}

// NewWriter returns a writer that writes experiment results to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, first: true}
}

// Write writes Record rec to w. Experiment blocks are separated by a
// blank line. *SyntaxError records are ignored, so a Reader's records
// can be piped straight through.
func (w *Writer) Write(rec Record) error {
	switch rec := rec.(type) {
	case *Experiment:
		w.writeExperiment(rec)
	case *SyntaxError:
		// Ignore
		return nil
	default:
		return fmt.Errorf("unknown Record type %T", rec)
	}

	// Writes to the buffer can't fail, so we only have to check if
	// flushing to the io.Writer does.
	_, err := w.w.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

func (w *Writer) writeExperiment(e *Experiment) {
	if !w.first {
		w.buf.WriteByte('\n')
	}
	w.first = false
	fmt.Fprintf(&w.buf, "experiment: %s\n", e.Name)
	w.writeArm("control", e.Control)
	w.writeArm("treatment", e.Treatment)
}

func (w *Writer) writeArm(key string, a Arm) {
	fmt.Fprintf(&w.buf, "%s:", key)
	if a.Counts() {
		fmt.Fprintf(&w.buf, " %d/%d", a.Successes, a.N)
	} else {
		for _, v := range a.Values {
			w.buf.WriteByte(' ')
			w.buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	w.buf.WriteByte('\n')
}
