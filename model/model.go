package model

import (
	"strconv"
)

type Type int

const (
	_ Type = iota
	Integer
	Real
	Text
)

func (t Type) SQL() string {
	switch t {
	case Integer:
		return "INTEGER"
	case Real:
		return "REAL"
	}
	return "TEXT"
}

var TypeParser = map[Type]func(str string) interface{}{
	Integer: func(str string) interface{} {
		v, _ := strconv.ParseInt(str, 10, 64)
		return v
	},
	Real: func(str string) interface{} {
		v, _ := strconv.ParseFloat(str, 64)
		return v
	},
	Text: func(str string) interface{} {
		return str
	},
}

// Infer resolves a column type from every value of the column: Integer when
// all non-empty values parse as integers, Real when all parse as floats,
// Text otherwise. A column with no non-empty values is Text.
func Infer(values []string) Type {
	t := Integer
	seen := false
	for _, v := range values {
		if v == "" {
			continue
		}
		seen = true
		if t == Integer {
			if _, err := strconv.ParseInt(v, 10, 64); err == nil {
				continue
			}
			t = Real
		}
		if t == Real {
			if _, err := strconv.ParseFloat(v, 64); err == nil {
				continue
			}
			t = Text
			break
		}
	}
	if !seen {
		return Text
	}
	return t
}

type Schema struct {
	Cols  []string
	Types []Type
}

func (s Schema) Arity() int {
	return len(s.Cols)
}

type Value struct {
	T Type
	V interface{}
	S string
}

type Row []Value

type Rows []Row

// Table is one loaded data file: the derived relation name, the inferred
// schema and every row aligned to it.
type Table struct {
	Name   string
	Source string
	Schema Schema
	Rows   Rows
}
