package database

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/lawbase/casedb/consts"
	"github.com/lawbase/casedb/errs"
	"github.com/lawbase/casedb/log"
	"github.com/lawbase/casedb/model"
)

// EnsureTable creates the table when it does not exist yet and otherwise
// reconciles schemas additively: columns the incoming schema has and the
// table lacks are added, existing columns are never dropped or retyped.
func (d *DB) EnsureTable(name string, schema model.Schema) error {
	existing, err := d.TableColumns(name)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		buf := bytes.Buffer{}
		buf.WriteString(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (", quote(name)))
		for i, col := range schema.Cols {
			buf.WriteString(fmt.Sprintf("%s %s", quote(col), schema.Types[i].SQL()))
			if i < schema.Arity()-1 {
				buf.WriteString(", ")
			}
		}
		buf.WriteString(")")
		if _, err = d.Exec(buf.String()); err != nil {
			return errs.Wrap(errs.Write, err, "create table %s", name)
		}
		return nil
	}
	have := map[string]bool{}
	for _, col := range existing {
		have[col] = true
	}
	for i, col := range schema.Cols {
		if have[col] {
			continue
		}
		log.Infof("table %s evolves, adding column %s", name, col)
		if _, err = d.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", quote(name), quote(col), schema.Types[i].SQL())); err != nil {
			return errs.Wrap(errs.Write, err, "add column %s to %s", col, name)
		}
	}
	return nil
}

// AppendRows inserts every row inside one transaction so a failing file
// leaves the table untouched. Statements are multi-row, sized to stay under
// the bound-parameter budget.
func (d *DB) AppendRows(name string, schema model.Schema, rows model.Rows) error {
	if len(rows) == 0 {
		return nil
	}
	batch := consts.InsertBatch / schema.Arity()
	if batch < 1 {
		batch = 1
	}
	prefix := bytes.Buffer{}
	prefix.WriteString(fmt.Sprintf("INSERT INTO %s (", quote(name)))
	for i, col := range schema.Cols {
		prefix.WriteString(quote(col))
		if i < schema.Arity()-1 {
			prefix.WriteString(", ")
		}
	}
	prefix.WriteString(") VALUES ")
	tx, err := d.Begin()
	if err != nil {
		return errs.Wrap(errs.Write, err, "begin %s", name)
	}
	buf := bytes.Buffer{}
	for start := 0; start < len(rows); start += batch {
		end := start + batch
		if end > len(rows) {
			end = len(rows)
		}
		buf.Reset()
		buf.Write(prefix.Bytes())
		args := make([]interface{}, 0, (end-start)*schema.Arity())
		for i := start; i < end; i++ {
			buf.WriteString("(")
			for j, v := range rows[i] {
				buf.WriteString("?")
				if j < len(rows[i])-1 {
					buf.WriteString(",")
				}
				args = append(args, v.V)
			}
			buf.WriteString("),")
		}
		buf.Truncate(buf.Len() - 1)
		if _, err = tx.Exec(buf.String(), args...); err != nil {
			_ = tx.Rollback()
			return errs.Wrap(errs.Write, err, "insert into %s", name)
		}
	}
	if err = tx.Commit(); err != nil {
		return errs.Wrap(errs.Write, err, "commit %s", name)
	}
	return nil
}

func quote(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}
