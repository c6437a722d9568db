package util

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode"
)

// TableName derives the relation identifier for a data file. The mapping is
// pure: the extension goes, a trailing _YYYY year suffix goes, and any rune
// not valid inside an identifier becomes an underscore. civil_2023.csv and
// civil_2024.csv both land in table civil.
func TableName(path string) string {
	name := filepath.Base(path)
	if i := strings.Index(name, "."); i != -1 {
		name = name[:i]
	}
	if len(name) > 5 && name[len(name)-5] == '_' && isDigits(name[len(name)-4:]) {
		name = name[:len(name)-5]
	}
	buf := bytes.Buffer{}
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			buf.WriteRune(r)
		} else {
			buf.WriteRune('_')
		}
	}
	name = buf.String()
	if name == "" {
		return "t"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "t_" + name
	}
	return name
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
