package query

import (
	"path/filepath"
	"testing"

	"github.com/lawbase/casedb/database"
	"github.com/lawbase/casedb/errs"
	"github.com/lawbase/casedb/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cases.db")
	db, err := database.New(path)
	require.NoError(t, err)
	defer db.Close()
	schema := model.Schema{
		Cols:  []string{"case_id", "court", "amount"},
		Types: []model.Type{model.Text, model.Text, model.Real},
	}
	rows := model.Rows{
		{{V: "C1"}, {V: "北京市第一中级人民法院"}, {V: 100.0}},
		{{V: "C2"}, {V: "上海市浦东新区人民法院"}, {V: 2500.5}},
		{{V: "C3"}, {V: "北京市第一中级人民法院"}, {V: 380.0}},
		{{V: "C4"}, {V: nil}, {V: nil}},
	}
	require.NoError(t, db.EnsureTable("civil", schema))
	require.NoError(t, db.AppendRows("civil", schema, rows))
	return path
}

func service(t *testing.T) *Service {
	t.Helper()
	svc, err := New(seed(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestQueryAll(t *testing.T) {
	svc := service(t)
	result, err := svc.Query("civil", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"case_id", "court", "amount"}, result.Cols)
	assert.Len(t, result.Rows, 4)
}

func TestQueryEquality(t *testing.T) {
	svc := service(t)
	result, err := svc.Query("civil", Filter{"court": {Values: []string{"上海市浦东新区人民法院"}}}, 0)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "C2", result.Rows[0][0])
}

func TestQueryValuesAreOrdWithinColumn(t *testing.T) {
	svc := service(t)
	result, err := svc.Query("civil", Filter{"case_id": {Values: []string{"C1", "C2"}}}, 0)
	require.NoError(t, err)
	assert.Len(t, result.Rows, 2)
}

func TestQueryFuzzy(t *testing.T) {
	svc := service(t)
	result, err := svc.Query("civil", Filter{"court": {Values: []string{"北京"}, Fuzzy: true}}, 0)
	require.NoError(t, err)
	assert.Len(t, result.Rows, 2)
}

func TestQueryRange(t *testing.T) {
	svc := service(t)
	result, err := svc.Query("civil", Filter{"amount": {Min: "100", Max: "400"}}, 0)
	require.NoError(t, err)
	assert.Len(t, result.Rows, 2)
}

func TestQueryLimit(t *testing.T) {
	svc := service(t)
	result, err := svc.Query("civil", nil, 1)
	require.NoError(t, err)
	assert.Len(t, result.Rows, 1)
}

func TestQueryRestartable(t *testing.T) {
	svc := service(t)
	first, err := svc.Query("civil", nil, 0)
	require.NoError(t, err)
	second, err := svc.Query("civil", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestQueryUnknownTable(t *testing.T) {
	svc := service(t)
	_, err := svc.Query("criminal", nil, 0)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.NotFound))
}

func TestQueryUnknownColumn(t *testing.T) {
	svc := service(t)
	_, err := svc.Query("civil", Filter{"judge": {Values: []string{"x"}}}, 0)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.Query))
}

func TestDistinctValues(t *testing.T) {
	svc := service(t)
	values, err := svc.DistinctValues("civil", "court")
	require.NoError(t, err)
	assert.ElementsMatch(t, []interface{}{"北京市第一中级人民法院", "上海市浦东新区人民法院"}, values)
}

func TestDistinctValuesUnknownColumn(t *testing.T) {
	svc := service(t)
	_, err := svc.DistinctValues("civil", "judge")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.Query))
}

func TestNewMissingDatabase(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.db"))
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.NotFound))
}
