package database

import (
	"database/sql"
	"fmt"

	"github.com/lawbase/casedb/errs"
	_ "modernc.org/sqlite"
)

type DB struct {
	db *sql.DB
}

// New opens (creating when absent) the database file for ingestion. A single
// connection keeps table creation and inserts serialized, the pragmas favor
// bulk-load throughput over crash durability.
func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(OFF)", path))
	if err != nil {
		return nil, errs.Wrap(errs.Write, err, "open database %s", path)
	}
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, errs.Wrap(errs.Write, err, "open database %s", path)
	}
	return &DB{db: db}, nil
}

// Open opens an existing database file read-only, for the query side.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err == nil {
		err = db.Ping()
	}
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, errs.Wrap(errs.NotFound, err, "open database %s", path)
	}
	return &DB{db: db}, nil
}

func (d *DB) Exec(sql string, args ...interface{}) (sql.Result, error) {
	return d.db.Exec(sql, args...)
}

func (d *DB) Query(sql string, args ...interface{}) (*sql.Rows, error) {
	return d.db.Query(sql, args...)
}

func (d *DB) Begin() (*sql.Tx, error) {
	return d.db.Begin()
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Tables lists the user relations of the database in name order.
func (d *DB) Tables() ([]string, error) {
	rows, err := d.db.Query("SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, errs.Wrap(errs.Query, err, "list tables")
	}
	defer rows.Close()
	tables := make([]string, 0)
	for rows.Next() {
		name := ""
		if err = rows.Scan(&name); err != nil {
			return nil, errs.Wrap(errs.Query, err, "list tables")
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// TableColumns returns the column names of a table in declared order, empty
// when the table does not exist.
func (d *DB) TableColumns(name string) ([]string, error) {
	rows, err := d.db.Query("SELECT name FROM pragma_table_info(?)", name)
	if err != nil {
		return nil, errs.Wrap(errs.Query, err, "columns of %s", name)
	}
	defer rows.Close()
	cols := make([]string, 0)
	for rows.Next() {
		col := ""
		if err = rows.Scan(&col); err != nil {
			return nil, errs.Wrap(errs.Query, err, "columns of %s", name)
		}
		cols = append(cols, col)
	}
	return cols, rows.Err()
}
