// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package history records comparison runs in a SQL database so that
// results can be tracked across runs.
package history

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"
	"time"

	"golang.org/x/profcmp/profcmp"
)

// DB is a high-level interface to a history database. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRun *sql.Stmt
	insertRow *sql.Stmt
}

// ParseDSN splits a "driver:dsn" string as accepted on the command
// line, such as "sqlite3:results.db".
func ParseDSN(s string) (driverName, dataSourceName string, err error) {
	driverName, dataSourceName, ok := strings.Cut(s, ":")
	if !ok || driverName == "" || dataSourceName == "" {
		return "", "", fmt.Errorf("%q: want driver:dsn", s)
	}
	return driverName, dataSourceName, nil
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

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Label VARCHAR(255),
	BenchDir VARCHAR(4096),
	DeviceDir VARCHAR(4096),
	Created BIGINT
);
CREATE TABLE IF NOT EXISTS Results (
	RunID BIGINT UNSIGNED,
	RowID BIGINT UNSIGNED,
	API VARCHAR(1024),
	BenchMemory VARCHAR(255),
	BenchTime VARCHAR(255),
	DeviceMemory VARCHAR(255),
	DeviceTime VARCHAR(255),
	TimeRatio DOUBLE,
	MemoryDelta BIGINT,
	PRIMARY KEY (RunID, RowID),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS RunsLabel ON Runs(Label);
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
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(Label, BenchDir, DeviceDir, Created) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertRow, err = db.sql.Prepare("INSERT INTO Results(RunID, RowID, API, BenchMemory, BenchTime, DeviceMemory, DeviceTime, TimeRatio, MemoryDelta) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertRun, db.insertRow} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}

// A Run describes one recorded comparison.
type Run struct {
	ID        int64
	Label     string
	BenchDir  string
	DeviceDir string
	Created   time.Time
}

// InsertRun records run and the rows of t in a single transaction and
// returns the new run's ID. run.ID is ignored; run.Created is stored
// with one second resolution.
func (db *DB) InsertRun(ctx context.Context, run *Run, t *profcmp.Table) (id int64, err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.StmtContext(ctx, db.insertRun).ExecContext(ctx, run.Label, run.BenchDir, run.DeviceDir, run.Created.Unix())
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	insertRow := tx.StmtContext(ctx, db.insertRow)
	for i, row := range t.Rows {
		var (
			benchTime, devMem, devTime sql.NullString
			ratio                      sql.NullFloat64
			delta                      sql.NullInt64
		)
		if row.HasBenchTime {
			benchTime = sql.NullString{String: row.BenchTime, Valid: true}
		}
		if row.HasDeviceMemory {
			devMem = sql.NullString{String: row.DeviceMemory, Valid: true}
			delta = sql.NullInt64{Int64: row.MemoryDelta, Valid: true}
			if row.HasDeviceTime {
				devTime = sql.NullString{String: row.DeviceTime, Valid: true}
				ratio = sql.NullFloat64{Float64: row.TimeRatio, Valid: true}
			}
		}
		if _, err := insertRow.ExecContext(ctx, id, i, row.API, row.BenchMemory, benchTime, devMem, devTime, ratio, delta); err != nil {
			return 0, fmt.Errorf("insert row %q: %w", row.API, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// Runs returns the recorded runs with the given label, or all runs if
// label is empty, oldest first.
func (db *DB) Runs(ctx context.Context, label string) ([]*Run, error) {
	q := "SELECT RunID, Label, BenchDir, DeviceDir, Created FROM Runs"
	var args []interface{}
	if label != "" {
		q += " WHERE Label = ?"
		args = append(args, label)
	}
	q += " ORDER BY RunID"
	rows, err := db.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var runs []*Run
	for rows.Next() {
		var (
			r       Run
			created int64
		)
		if err := rows.Scan(&r.ID, &r.Label, &r.BenchDir, &r.DeviceDir, &created); err != nil {
			return nil, err
		}
		r.Created = time.Unix(created, 0)
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

// Table returns the rows recorded for run id, in their original
// order.
func (db *DB) Table(ctx context.Context, id int64) (*profcmp.Table, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT API, BenchMemory, BenchTime, DeviceMemory, DeviceTime, TimeRatio, MemoryDelta FROM Results WHERE RunID = ? ORDER BY RowID", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	t := new(profcmp.Table)
	for rows.Next() {
		var (
			row                        profcmp.Row
			benchTime, devMem, devTime sql.NullString
			ratio                      sql.NullFloat64
			delta                      sql.NullInt64
		)
		if err := rows.Scan(&row.API, &row.BenchMemory, &benchTime, &devMem, &devTime, &ratio, &delta); err != nil {
			return nil, err
		}
		row.BenchTime, row.HasBenchTime = benchTime.String, benchTime.Valid
		row.DeviceMemory, row.HasDeviceMemory = devMem.String, devMem.Valid
		row.MemoryDelta = delta.Int64
		row.DeviceTime, row.HasDeviceTime = devTime.String, devTime.Valid
		row.TimeRatio = ratio.Float64
		t.Rows = append(t.Rows, &row)
	}
	return t, rows.Err()
}
