// Copyright 2016 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db stores plotted benchmark series in a SQL database so
// runs can be compared after the charts are gone.
package db

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/hashmaps/hmbench/benchseries"
	"go.uber.org/multierr"
)

// DB is a high-level interface to a database of benchmark runs. It's
// safe for concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRun   *sql.Stmt
	insertPoint *sql.Stmt
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
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
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

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to configure its connections.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Created VARCHAR(32),
	Trials INTEGER
);
CREATE TABLE IF NOT EXISTS Points (
	RunID BIGINT UNSIGNED,
	LoadFactor VARCHAR(32),
	Operation VARCHAR(32),
	Implementation VARCHAR(8),
	RangeIndex INTEGER,
	Entries BIGINT,
	Value DOUBLE,
	Unit VARCHAR(8),
	PRIMARY KEY (RunID, LoadFactor, Operation, Implementation, RangeIndex),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
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
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(Created, Trials) VALUES (?, ?)")
	if err != nil {
		return err
	}
	db.insertPoint, err = db.sql.Prepare("INSERT INTO Points(RunID, LoadFactor, Operation, Implementation, RangeIndex, Entries, Value, Unit) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// now is a hook for testing
var now = time.Now

// A Run is a set of points stored together by one invocation of the
// tool. Its rows become visible when Commit is called.
type Run struct {
	// ID is the RunID of the Runs row.
	ID int64

	db *DB
	tx *sql.Tx
}

// NewRun starts a transaction storing a new run over the given number
// of trial files.
func (db *DB) NewRun(ctx context.Context, trials int) (*Run, error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	res, err := tx.StmtContext(ctx, db.insertRun).ExecContext(ctx, now().UTC().Format(time.RFC3339), trials)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	return &Run{ID: id, db: db, tx: tx}, nil
}

// InsertChart stores every plotted value of c, in c's display unit.
func (r *Run) InsertChart(ctx context.Context, c *benchseries.Chart) error {
	stmt := r.tx.StmtContext(ctx, r.db.insertPoint)
	for _, s := range c.Series {
		for i, v := range s.Values {
			if _, err := stmt.ExecContext(ctx, r.ID, c.LoadFactor, c.Op.String(), s.Name, i, c.Ranges[i], v, c.Scaler.Unit); err != nil {
				return fmt.Errorf("%s: %s: %w", c.Title, s.Name, err)
			}
		}
	}
	return nil
}

// Commit attempts to commit the run.
func (r *Run) Commit() error {
	return r.tx.Commit()
}

// Abort throws away all the points stored with the run.
func (r *Run) Abort() error {
	return r.tx.Rollback()
}

// A Point is one stored value.
type Point struct {
	RunID          int64
	LoadFactor     string
	Operation      string
	Implementation string
	RangeIndex     int
	Entries        int64
	Value          float64
	Unit           string
}

// Points returns the points of the run for one load factor and
// operation display name, ordered by implementation name and range
// index.
func (db *DB) Points(ctx context.Context, runID int64, loadFactor, op string) ([]Point, error) {
	rows, err := db.sql.QueryContext(ctx, `SELECT RunID, LoadFactor, Operation, Implementation, RangeIndex, Entries, Value, Unit
FROM Points WHERE RunID = ? AND LoadFactor = ? AND Operation = ?
ORDER BY Implementation, RangeIndex`, runID, loadFactor, op)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var pts []Point
	for rows.Next() {
		var p Point
		if err := rows.Scan(&p.RunID, &p.LoadFactor, &p.Operation, &p.Implementation, &p.RangeIndex, &p.Entries, &p.Value, &p.Unit); err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, rows.Err()
}

// CountRuns returns the number of committed runs.
func (db *DB) CountRuns(ctx context.Context) (int, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Runs").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	return multierr.Combine(
		db.insertRun.Close(),
		db.insertPoint.Close(),
		db.sql.Close(),
	)
}
