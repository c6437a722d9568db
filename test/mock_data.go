package test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/simplifiedchinese"
)

// WriteCSV writes one CSV file from raw lines, creating parent directories.
func WriteCSV(t *testing.T, path string, lines ...string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0766); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0666); err != nil {
		t.Fatal(err)
	}
}

// WriteGB18030 is WriteCSV with the content transcoded to GB18030, the
// encoding of the circulating case-data dumps.
func WriteGB18030(t *testing.T, path string, lines ...string) {
	t.Helper()
	raw, err := simplifiedchinese.GB18030.NewEncoder().Bytes([]byte(strings.Join(lines, "\n") + "\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0766); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, raw, 0666); err != nil {
		t.Fatal(err)
	}
}

// WriteBytes writes raw content as-is, for malformed-input cases.
func WriteBytes(t *testing.T, path string, raw []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0766); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, raw, 0666); err != nil {
		t.Fatal(err)
	}
}

// Cases writes the canonical two-table fixture tree under dir: three civil
// rows and two criminal rows in nested subdirectories.
func Cases(t *testing.T, dir string) {
	t.Helper()
	WriteCSV(t, filepath.Join(dir, "2023", "civil_2023.csv"),
		"case_id,court,amount",
		"C1,北京市第一中级人民法院,10000",
		"C2,上海市浦东新区人民法院,2500.5",
		"C3,北京市第一中级人民法院,380",
	)
	WriteCSV(t, filepath.Join(dir, "2023", "criminal", "criminal_2023.csv"),
		"case_id,court,charge",
		"X1,广州市中级人民法院,盗窃罪",
		"X2,北京市第一中级人民法院,诈骗罪",
	)
}
