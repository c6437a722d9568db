package database

import (
	"fmt"

	"github.com/lawbase/casedb/errs"
	"github.com/lawbase/casedb/log"
)

// BuildIndexes creates one secondary index per configured (table, column)
// pair across every table of the database, after all rows are in place.
// colsFor yields the configured column set for a table; columns the table
// does not have are skipped. CREATE INDEX IF NOT EXISTS keeps re-runs
// idempotent. Returns the names of all indexes that now exist for the
// configuration.
func (d *DB) BuildIndexes(colsFor func(table string) []string) ([]string, error) {
	tables, err := d.Tables()
	if err != nil {
		return nil, err
	}
	indexes := make([]string, 0)
	for _, table := range tables {
		cols, err := d.TableColumns(table)
		if err != nil {
			return nil, err
		}
		have := map[string]bool{}
		for _, col := range cols {
			have[col] = true
		}
		for _, col := range colsFor(table) {
			if !have[col] {
				log.Infof("table %s has no column %s, index skipped", table, col)
				continue
			}
			name := fmt.Sprintf("idx_%s_%s", table, col)
			if _, err = d.Exec(fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", quote(name), quote(table), quote(col))); err != nil {
				return nil, errs.Wrap(errs.Write, err, "create index %s", name)
			}
			indexes = append(indexes, name)
		}
	}
	return indexes, nil
}
