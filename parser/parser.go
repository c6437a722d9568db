package parser

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/lawbase/casedb/consts"
	"github.com/lawbase/casedb/errs"
	"github.com/lawbase/casedb/file"
	"github.com/lawbase/casedb/log"
	"github.com/lawbase/casedb/model"
	"github.com/lawbase/casedb/util"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// ParseTable reads one CSV file into a Table: header row becomes the column
// set, every following row becomes values aligned to it. Content that is not
// valid UTF-8 gets one fallback decode as GB18030 before failing, the common
// case for the circulating case-data dumps.
func ParseTable(path string) (*model.Table, error) {
	f, err := file.New(path, os.O_RDONLY)
	if err != nil {
		return nil, errs.Wrap(errs.NotFound, err, "open %s", path)
	}
	defer f.Close()
	log.Infof("parsing %s, %d bytes", path, f.Size())
	raw, err := f.ReadAll()
	if err != nil {
		return nil, errs.Wrap(errs.Parse, err, "read %s", path)
	}
	text, err := decode(raw)
	if err != nil {
		return nil, errs.Wrap(errs.Encoding, err, "decode %s", path)
	}
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = consts.Delimiter
	records, err := r.ReadAll()
	if err != nil {
		return nil, errs.Wrap(errs.Parse, err, "parse %s", path)
	}
	if len(records) == 0 {
		return nil, errs.New(errs.Parse, "%s has no header row", path)
	}
	cols := normalizeHeader(records[0])
	records = records[1:]
	types := make([]model.Type, len(cols))
	column := make([]string, len(records))
	for i := range cols {
		for j, record := range records {
			column[j] = record[i]
		}
		types[i] = model.Infer(column)
	}
	rows := make(model.Rows, len(records))
	for i, record := range records {
		row := make(model.Row, len(cols))
		for j, s := range record {
			v := model.Value{T: types[j], S: s}
			if s != "" {
				v.V = model.TypeParser[types[j]](s)
			}
			row[j] = v
		}
		rows[i] = row
	}
	return &model.Table{
		Name:   util.TableName(path),
		Source: path,
		Schema: model.Schema{Cols: cols, Types: types},
		Rows:   rows,
	}, nil
}

func decode(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return strings.TrimPrefix(string(raw), "\ufeff"), nil
	}
	out, err := simplifiedchinese.GB18030.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	if strings.ContainsRune(string(out), utf8.RuneError) {
		return "", fmt.Errorf("not UTF-8 and not GB18030")
	}
	return string(out), nil
}

// normalizeHeader trims each column name and deduplicates repeats, a second
// 法院 column becomes 法院_2.
func normalizeHeader(fields []string) []string {
	seen := map[string]int{}
	cols := make([]string, len(fields))
	for i, f := range fields {
		name := strings.TrimSpace(strings.TrimPrefix(f, "\ufeff"))
		if name == "" {
			name = fmt.Sprintf("col_%d", i+1)
		}
		n := seen[name]
		seen[name] = n + 1
		if n > 0 {
			name = fmt.Sprintf("%s_%d", name, n+1)
		}
		cols[i] = name
	}
	return cols
}
