package util

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableName(t *testing.T) {
	assert.Equal(t, "civil", TableName(filepath.Join("a", "b", "civil_2023.csv")))
	assert.Equal(t, "criminal", TableName("criminal_2024.csv"))
	assert.Equal(t, "民事判决", TableName("民事判决.csv"))
	assert.Equal(t, "a_b", TableName("a b.csv"))
	assert.Equal(t, "t_2023", TableName("2023.csv"))
	assert.Equal(t, "t", TableName(".csv"))
	assert.Equal(t, TableName("civil_2023.csv"), TableName("civil_2023.csv"))
}
