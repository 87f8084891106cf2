// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db stores experiment result rows in a SQL database.
package db

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"text/template"

	"golang.org/x/abtest/abstat"
)

// DB is a handle to a database of experiment result rows. It's safe
// for concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertResult *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Results (
	ResultID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Experiment VARCHAR(255),
	MetricFormula VARCHAR(255),
	MetricValue DOUBLE,
	DeltaRelative VARCHAR(64),
	DeltaAbsolute DOUBLE,
	PValue DOUBLE,
	CIRelative VARCHAR(64),
	CIAbsolute VARCHAR(64),
	MSS VARCHAR(64),
	Statistic DOUBLE,
	DoF DOUBLE{{if not .sqlite3}},
	Index (Experiment(100)){{end}}
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS ResultsExperiment ON Results(Experiment);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertResult, err = db.sql.Prepare(
		"INSERT INTO Results (Experiment, MetricFormula, MetricValue, DeltaRelative, DeltaAbsolute, PValue, CIRelative, CIAbsolute, MSS, Statistic, DoF) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	return err
}

// InsertRow appends one result row. A NaN DoF (the proportion test
// has none) is stored as NULL.
func (db *DB) InsertRow(ctx context.Context, r *abstat.Row) error {
	var dof sql.NullFloat64
	if !math.IsNaN(r.DoF) {
		dof = sql.NullFloat64{Float64: r.DoF, Valid: true}
	}
	_, err := db.insertResult.ExecContext(ctx,
		r.Experiment, r.MetricFormula, r.MetricValue, r.DeltaRelative,
		r.DeltaAbsolute, r.PValue, r.CIRelative, r.CIAbsolute, r.MSS,
		r.Statistic, dof)
	if err != nil {
		return fmt.Errorf("insert result: %v", err)
	}
	return nil
}

// Rows returns the stored rows for the named experiment, oldest
// first. If experiment is empty, it returns all stored rows.
func (db *DB) Rows(ctx context.Context, experiment string) ([]abstat.Row, error) {
	q := "SELECT Experiment, MetricFormula, MetricValue, DeltaRelative, DeltaAbsolute, PValue, CIRelative, CIAbsolute, MSS, Statistic, DoF FROM Results"
	var args []interface{}
	if experiment != "" {
		q += " WHERE Experiment = ?"
		args = append(args, experiment)
	}
	q += " ORDER BY ResultID"
	rows, err := db.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rs []abstat.Row
	for rows.Next() {
		var r abstat.Row
		var dof sql.NullFloat64
		err := rows.Scan(&r.Experiment, &r.MetricFormula, &r.MetricValue,
			&r.DeltaRelative, &r.DeltaAbsolute, &r.PValue, &r.CIRelative,
			&r.CIAbsolute, &r.MSS, &r.Statistic, &dof)
		if err != nil {
			return nil, err
		}
		r.DoF = math.NaN()
		if dof.Valid {
			r.DoF = dof.Float64
		}
		rs = append(rs, r)
	}
	return rs, rows.Err()
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if db.insertResult != nil {
		db.insertResult.Close()
	}
	return db.sql.Close()
}
