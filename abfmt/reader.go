// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package abfmt reads and writes the abstat experiment results format.
//
// The format is line-oriented. An experiment is a block of "key:
// value" lines opened by an "experiment:" line naming it, followed by
// one "control:" and one "treatment:" line holding the arm's data:
//
//	# checkout redesign, week 32
//	experiment: signup-conversion
//	control: 101/998
//	treatment: 122/1001
//
//	experiment: checkout-value
//	control: 10.1 9.8 11.2
//	treatment: 11.0 10.5 10.7
//
// An arm of the form "successes/n" holds count data; an arm of
// whitespace-separated reals holds raw observations. The two arms of
// one experiment must hold the same kind of data. Blank lines and
// lines starting with "#" are ignored.
package abfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// An Experiment is one control/treatment pair read from a results
// file.
type Experiment struct {
	// Name identifies the experiment. Names need not be unique
	// within a file.
	Name string

	// Control and Treatment are the two arms.
	Control, Treatment Arm

	fileName string
	line     int
}

// Pos returns the file name and line of the "experiment:" line that
// opened this experiment's block.
func (e *Experiment) Pos() (fileName string, line int) {
	return e.fileName, e.line
}

// An Arm holds the observed data of one arm of an experiment: either
// success counts or raw observed values.
type Arm struct {
	// Successes and N are set for count data; Successes is
	// meaningless for measurement data.
	Successes, N int

	// Values holds the raw observations for measurement data and
	// is nil for count data.
	Values []float64
}

// Counts reports whether the arm holds count data rather than raw
// observations.
func (a Arm) Counts() bool {
	return a.Values == nil
}

// A SyntaxError represents a syntax error on a particular line of a
// results file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// A Record is a single record read from a results file. It is either
// an *Experiment or a *SyntaxError.
type Record interface {
	// Pos returns the position of this record as a file name and a
	// 1-based line number within that file.
	Pos() (fileName string, line int)
}

var _ Record = (*Experiment)(nil)
var _ Record = (*SyntaxError)(nil)

var noResult = &SyntaxError{"", 0, "Reader.Scan has not been called"}

// A Reader reads the abstat experiment results format.
//
// Its API is modeled on bufio.Scanner: Scan advances to the next
// record, Result returns it, and Err reports any I/O error after Scan
// returns false. Records returned by Result are owned by the caller.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	line     int
	err      error // current I/O error

	// q is the queue of records to return before processing the
	// next input line. qPos is the index of the current record.
	q    []Record
	qPos int

	// cur is the experiment block being accumulated, nil between
	// blocks.
	cur                        *Experiment
	haveControl, haveTreatment bool
}

// NewReader constructs a reader to parse the experiment results format
// from r. fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	r.s = bufio.NewScanner(ior)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.fileName = fileName
	r.line = 0
	r.err = nil
	r.qPos = 0
	r.q = r.q[:0]
	r.cur = nil
	r.haveControl, r.haveTreatment = false, false
}

// syntaxErrorf returns a *SyntaxError at the reader's current line.
func (r *Reader) syntaxErrorf(format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{r.fileName, r.line, fmt.Sprintf(format, args...)}
}

// Scan advances the reader to the next record and reports whether one
// was read. The caller should use the Result method to get the record.
// If Scan reaches EOF or an I/O error occurs, it returns false, in
// which case the caller should use the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}

	// If there's anything in the queue from an earlier line, pop
	// it without consuming more input.
	if r.qPos+1 < len(r.q) {
		r.qPos++
		return true
	}
	r.qPos = 0
	r.q = r.q[:0]

	// Process lines until we queue a record or hit EOF.
	for len(r.q) == 0 {
		if !r.s.Scan() {
			// EOF flushes any half-read block.
			r.flush()
			break
		}
		r.line++
		line := strings.TrimSpace(r.s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			r.q = append(r.q, r.syntaxErrorf("expected \"key: value\""))
			continue
		}
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		switch key {
		case "experiment":
			r.flush()
			if val == "" {
				r.q = append(r.q, r.syntaxErrorf("missing experiment name"))
				continue
			}
			r.cur = &Experiment{Name: val, fileName: r.fileName, line: r.line}
		case "control", "treatment":
			r.parseArmLine(key, val)
		default:
			r.q = append(r.q, r.syntaxErrorf("unknown key %q", key))
		}
	}

	if len(r.q) > 0 {
		return true
	}
	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
	}
	return false
}

// parseArmLine parses and attaches one arm of the current block,
// queueing a *SyntaxError instead if the line is malformed.
func (r *Reader) parseArmLine(key, val string) {
	if r.cur == nil {
		r.q = append(r.q, r.syntaxErrorf("%s arm before experiment", key))
		return
	}
	have := &r.haveControl
	dst := &r.cur.Control
	if key == "treatment" {
		have = &r.haveTreatment
		dst = &r.cur.Treatment
	}
	if *have {
		r.q = append(r.q, r.syntaxErrorf("duplicate %s arm for experiment %q", key, r.cur.Name))
		return
	}
	arm, err := r.parseArm(val)
	if err != nil {
		r.q = append(r.q, err)
		return
	}
	*dst = arm
	*have = true
}

// parseArm parses an arm value: "successes/n" for count data, or
// whitespace-separated reals for measurement data.
func (r *Reader) parseArm(val string) (Arm, *SyntaxError) {
	if !strings.ContainsAny(val, " \t") && strings.Contains(val, "/") {
		sStr, nStr, _ := strings.Cut(val, "/")
		successes, err1 := strconv.Atoi(sStr)
		n, err2 := strconv.Atoi(nStr)
		if err1 != nil || err2 != nil {
			return Arm{}, r.syntaxErrorf("parsing counts %q: expected successes/n", val)
		}
		if n < 1 {
			return Arm{}, r.syntaxErrorf("arm has no observations")
		}
		if successes < 0 || successes > n {
			return Arm{}, r.syntaxErrorf("successes %d outside [0, %d]", successes, n)
		}
		return Arm{Successes: successes, N: n}, nil
	}

	fields := strings.Fields(val)
	if len(fields) == 0 {
		return Arm{}, r.syntaxErrorf("missing arm data")
	}
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Arm{}, r.syntaxErrorf("parsing observation %q", f)
		}
		values[i] = v
	}
	return Arm{N: len(values), Values: values}, nil
}

// flush queues the accumulated block, if any, as an *Experiment, or as
// a *SyntaxError if the block is incomplete or mixes data kinds.
func (r *Reader) flush() {
	e := r.cur
	if e == nil {
		return
	}
	hc, ht := r.haveControl, r.haveTreatment
	r.cur = nil
	r.haveControl, r.haveTreatment = false, false

	switch {
	case !hc && !ht:
		r.q = append(r.q, &SyntaxError{e.fileName, e.line, fmt.Sprintf("experiment %q has no arms", e.Name)})
	case !hc:
		r.q = append(r.q, &SyntaxError{e.fileName, e.line, fmt.Sprintf("experiment %q is missing its control arm", e.Name)})
	case !ht:
		r.q = append(r.q, &SyntaxError{e.fileName, e.line, fmt.Sprintf("experiment %q is missing its treatment arm", e.Name)})
	case e.Control.Counts() != e.Treatment.Counts():
		r.q = append(r.q, &SyntaxError{e.fileName, e.line, fmt.Sprintf("experiment %q mixes count and measurement arms", e.Name)})
	default:
		r.q = append(r.q, e)
	}
}

// Result returns the record that was just read by Scan. This is either
// an *Experiment or a *SyntaxError indicating a parse error.
//
// Parse errors are non-fatal, so the caller can continue to call
// Scan.
func (r *Reader) Result() Record {
	if r.qPos >= len(r.q) {
		// This should only happen if Scan has never been called.
		return noResult
	}
	return r.q[r.qPos]
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}
