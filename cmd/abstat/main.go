// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Abstat computes significance statistics for A/B experiments.
//
// Usage:
//
//	abstat [flags] inputs...
//
// Each input file holds experiment results in the abfmt format: a
// block per experiment, opened by an "experiment:" line naming it,
// followed by a "control:" line and a "treatment:" line holding each
// arm's data. An arm of the form "successes/n" holds count data; an
// arm of whitespace-separated reals holds raw observations. For
// example:
//
//	experiment: signup-conversion
//	control: 101/998
//	treatment: 122/1001
//
//	experiment: checkout-value
//	control: 10.1 9.8 11.2 10.5 9.9 10.8 10.3 11.0 9.7 10.4 9.8 10.1
//	treatment: 11.0 10.5 11.8 10.9 11.2 10.5 10.7 10.1 10.3 10.8
//
// For each experiment, abstat compares the treatment arm against the
// control arm: a two-sample z-test on proportions for count data, a
// two-sample Welch t-test for raw observations. It prints one row per
// experiment with the treatment's point estimate, the absolute and
// relative uplift with delta-method confidence intervals, the
// two-sided p-value, and how the treatment arm's size compares
// against the minimum sample size the observed effect would need:
//
//	$ abstat results.txt
//	experiment         metric_formula  metric_value  delta_relative  delta_absolute  p_value       CI_relative        CI_absolute            MSS  statistic     df
//	signup-conversion        122/1001      0.121878         +20.43%          0.0207  0.14180  [-9.52%, 50.38%]  [-0.0069, 0.0483]  27.5% (3,641)       1.47
//	checkout-value             107/10         10.78          +4.66%          0.4800  0.03383    [0.30%, 9.02%]   [0.0406, 0.9194]     62.5% (16)       2.28  19.41
//
// A "?" in the relative columns means the control estimate is zero,
// so relative uplift is undefined. "0.0% (∞)" in the MSS column means
// no finite sample size resolves the observed effect, either because
// the effect is zero or because the arms carry no per-observation
// variance.
//
// The -alpha and -power flags set the significance level of the
// confidence intervals and the power of the sample size diagnostic.
// The -ratio flag fixes the control:treatment allocation ratio used
// by the diagnostic; by default it uses the observed ratio.
//
// The -format flag selects the output format: text (the default),
// csv, or html.
//
// The -store flag names a database to also append the result rows to,
// as driver:DSN, e.g. -store sqlite3:results.db or
// -store "mysql:user:passwd@tcp(host)/abtest".
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/abtest/abfmt"
	"golang.org/x/abtest/abmath"
	"golang.org/x/abtest/abstat"
	"golang.org/x/abtest/storage/db"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

var exit = os.Exit // replaced during testing

func usage() {
	fmt.Fprintf(os.Stderr, "usage: abstat [flags] inputs...\n")
	fmt.Fprintf(os.Stderr, "flags:\n")
	flag.PrintDefaults()
	exit(2)
}

var (
	flagAlpha  = flag.Float64("alpha", 0.05, "two-sided significance `level` of confidence intervals")
	flagPower  = flag.Float64("power", 0.8, "target `power` of the minimum sample size diagnostic")
	flagRatio  = flag.Float64("ratio", 0, "control:treatment allocation `ratio` for the diagnostic (0 = observed)")
	flagFormat = flag.String("format", "text", "print results in `format`: text, csv, or html")
	flagStore  = flag.String("store", "", "also append result rows to `database`, as driver:DSN")
)

func main() {
	log.SetPrefix("abstat: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
	}
	if err := abstatMain(os.Stdout, os.Stderr, flag.Args()); err != nil {
		log.Fatal(err)
	}
}

// abstatMain runs the command on files, writing results to w and
// per-record diagnostics to wErr.
func abstatMain(w, wErr io.Writer, files []string) error {
	switch *flagFormat {
	case "text", "csv", "html":
	default:
		return fmt.Errorf("unknown format %q", *flagFormat)
	}
	cfg := abmath.Config{
		Alpha:           *flagAlpha,
		Power:           *flagPower,
		AllocationRatio: *flagRatio,
	}

	var tab abstat.Table
	var reader abfmt.Reader
	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		reader.Reset(f, file)
		for reader.Scan() {
			switch rec := reader.Result().(type) {
			case *abfmt.SyntaxError:
				fmt.Fprintln(wErr, rec)
			case *abfmt.Experiment:
				row, err := analyze(rec, cfg)
				if err != nil {
					name, line := rec.Pos()
					fmt.Fprintf(wErr, "%s:%d: experiment %q: %v\n", name, line, rec.Name, err)
					continue
				}
				tab.Rows = append(tab.Rows, row)
			}
		}
		err = reader.Err()
		f.Close()
		if err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	switch *flagFormat {
	case "html":
		buf.WriteString(htmlHeader)
		abstat.FormatHTML(&buf, &tab)
		buf.WriteString(htmlFooter)
	case "csv":
		abstat.FormatCSV(&buf, &tab)
	default:
		abstat.FormatText(&buf, &tab)
	}
	w.Write(buf.Bytes())

	if *flagStore != "" {
		return store(*flagStore, &tab)
	}
	return nil
}

// analyze compares an experiment's two arms. The reader guarantees
// both arms hold the same kind of data.
func analyze(e *abfmt.Experiment, cfg abmath.Config) (abstat.Row, error) {
	var c *abmath.Comparison
	var err error
	if e.Control.Counts() {
		c, err = abmath.ProportionsZTest(e.Control.N, e.Control.Successes, e.Treatment.N, e.Treatment.Successes, cfg)
	} else {
		c, err = abmath.WelchTTest(e.Control.Values, e.Treatment.Values, cfg)
	}
	if err != nil {
		return abstat.Row{}, err
	}
	return abstat.BuildRow(e.Name, c)
}

// store appends the table's rows to the database named by the -store
// flag, creating the results table if needed.
func store(spec string, tab *abstat.Table) error {
	driver, dsn, ok := strings.Cut(spec, ":")
	if !ok {
		return fmt.Errorf("-store %q: expected driver:DSN", spec)
	}
	d, err := db.OpenSQL(driver, dsn)
	if err != nil {
		return err
	}
	defer d.Close()
	ctx := context.Background()
	for i := range tab.Rows {
		if err := d.InsertRow(ctx, &tab.Rows[i]); err != nil {
			return err
		}
	}
	return nil
}

var htmlHeader = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>A/B Experiment Results</title>
<style>
.abstat { border-collapse: collapse; }
.abstat th:nth-child(1) { text-align: left; }
.abstat td:nth-child(1n+2) { text-align: right; padding: 0em 1em; }
.abstat th { border-top: 1px solid #666; border-bottom: 1px solid #ccc; }
</style>
</head>
<body>
`

var htmlFooter = `</body>
</html>
`
