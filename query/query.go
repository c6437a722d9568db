package query

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/lawbase/casedb/database"
	"github.com/lawbase/casedb/errs"
)

// Service answers filtered row queries and distinct-value queries against a
// populated database. The connection is read-only, ingestion owns writes.
type Service struct {
	db *database.DB
}

func New(path string) (*Service, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, err
	}
	return &Service{db: db}, nil
}

func (s *Service) Close() error {
	return s.db.Close()
}

// Constraint restricts one column: Values are OR'd together (LIKE %v% when
// Fuzzy), Min and Max bound the column inclusively. Constraints on different
// columns are AND'd.
type Constraint struct {
	Values []string
	Fuzzy  bool
	Min    string
	Max    string
}

type Filter map[string]Constraint

// Result is one query's materialized answer. Each Query call re-executes
// against the database, rows come back in natural storage order.
type Result struct {
	Cols []string
	Rows [][]interface{}
}

func (s *Service) Query(table string, filter Filter, limit int) (*Result, error) {
	cols, err := s.columns(table, filter)
	if err != nil {
		return nil, err
	}
	buf := bytes.Buffer{}
	buf.WriteString(fmt.Sprintf("SELECT * FROM %s", quote(table)))
	args := make([]interface{}, 0)
	names := make([]string, 0, len(filter))
	for name := range filter {
		names = append(names, name)
	}
	sort.Strings(names)
	where := make([]string, 0)
	for _, name := range names {
		c := filter[name]
		if len(c.Values) > 0 {
			conds := make([]string, len(c.Values))
			for i, v := range c.Values {
				if c.Fuzzy {
					conds[i] = fmt.Sprintf("%s LIKE ?", quote(name))
					args = append(args, "%"+v+"%")
				} else {
					conds[i] = fmt.Sprintf("%s = ?", quote(name))
					args = append(args, v)
				}
			}
			where = append(where, "("+strings.Join(conds, " OR ")+")")
		}
		if c.Min != "" {
			where = append(where, fmt.Sprintf("%s >= ?", quote(name)))
			args = append(args, c.Min)
		}
		if c.Max != "" {
			where = append(where, fmt.Sprintf("%s <= ?", quote(name)))
			args = append(args, c.Max)
		}
	}
	if len(where) > 0 {
		buf.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	if limit > 0 {
		buf.WriteString(fmt.Sprintf(" LIMIT %d", limit))
	}
	rows, err := s.db.Query(buf.String(), args...)
	if err != nil {
		return nil, errs.Wrap(errs.Query, err, "query %s", table)
	}
	defer rows.Close()
	result := &Result{Cols: cols, Rows: make([][]interface{}, 0)}
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err = rows.Scan(ptrs...); err != nil {
			return nil, errs.Wrap(errs.Query, err, "query %s", table)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.Wrap(errs.Query, err, "query %s", table)
	}
	return result, nil
}

// DistinctValues returns the unique non-null values of one column, order
// unspecified.
func (s *Service) DistinctValues(table, column string) ([]interface{}, error) {
	if _, err := s.columns(table, Filter{column: {}}); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(fmt.Sprintf("SELECT DISTINCT %s FROM %s WHERE %s IS NOT NULL", quote(column), quote(table), quote(column)))
	if err != nil {
		return nil, errs.Wrap(errs.Query, err, "distinct %s.%s", table, column)
	}
	defer rows.Close()
	values := make([]interface{}, 0)
	for rows.Next() {
		var v interface{}
		if err = rows.Scan(&v); err != nil {
			return nil, errs.Wrap(errs.Query, err, "distinct %s.%s", table, column)
		}
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// columns validates the query target: the table must exist and every column
// the filter references must exist on it.
func (s *Service) columns(table string, filter Filter) ([]string, error) {
	cols, err := s.db.TableColumns(table)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, errs.New(errs.NotFound, "table %s does not exist", table)
	}
	have := map[string]bool{}
	for _, col := range cols {
		have[col] = true
	}
	for name := range filter {
		if !have[name] {
			return nil, errs.New(errs.Query, "table %s has no column %s", table, name)
		}
	}
	return cols, nil
}

func quote(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}
