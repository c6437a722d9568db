package parser

import (
	"path/filepath"
	"testing"

	"github.com/lawbase/casedb/errs"
	"github.com/lawbase/casedb/model"
	"github.com/lawbase/casedb/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "civil_2023.csv")
	test.WriteCSV(t, path,
		"案号,法院,金额",
		"（2023）京01民初1号,北京市第一中级人民法院,10000",
		"（2023）沪0115民初2号,上海市浦东新区人民法院,2500.5",
		",天津市高级人民法院,",
	)
	tab, err := ParseTable(path)
	require.NoError(t, err)
	assert.Equal(t, "civil", tab.Name)
	assert.Equal(t, []string{"案号", "法院", "金额"}, tab.Schema.Cols)
	assert.Equal(t, []model.Type{model.Text, model.Text, model.Real}, tab.Schema.Types)
	require.Len(t, tab.Rows, 3)
	assert.Equal(t, 10000.0, tab.Rows[0][2].V)
	assert.Nil(t, tab.Rows[2][0].V)
	assert.Nil(t, tab.Rows[2][2].V)
}

func TestParseTableIntegerColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "n.csv")
	test.WriteCSV(t, path, "id,label", "1,a", "2,b")
	tab, err := ParseTable(path)
	require.NoError(t, err)
	assert.Equal(t, []model.Type{model.Integer, model.Text}, tab.Schema.Types)
	assert.Equal(t, int64(2), tab.Rows[1][0].V)
}

func TestParseTableDuplicateHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.csv")
	test.WriteCSV(t, path, "法院, 法院 ,案号", "a,b,c")
	tab, err := ParseTable(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"法院", "法院_2", "案号"}, tab.Schema.Cols)
}

func TestParseTableArityMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	test.WriteCSV(t, path, "a,b", "1,2", "1,2,3")
	_, err := ParseTable(path)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.Parse))
}

func TestParseTableGB18030(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gbk.csv")
	test.WriteGB18030(t, path, "案号,法院", "甲1,北京市高级人民法院")
	tab, err := ParseTable(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"案号", "法院"}, tab.Schema.Cols)
	assert.Equal(t, "北京市高级人民法院", tab.Rows[0][1].V)
}

func TestParseTableUndecodable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.csv")
	test.WriteBytes(t, path, []byte{0xff, 0xff, 0xff})
	_, err := ParseTable(path)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.Encoding))
}

func TestParseTableMissingFile(t *testing.T) {
	_, err := ParseTable(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.NotFound))
}
