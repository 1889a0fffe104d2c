package slice

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rolo/listmodel"
)

func TestNewFromMapsSortedColumns(t *testing.T) {
	m, err := NewFromMaps([]map[string]interface{}{
		{"name": "oslo", "population": 709037, "coastal": true},
		{"name": "bergen", "population": 291189, "coastal": true},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, m.RowCount())
	assert.Equal(t, 3, m.ColumnCount())
	assert.Equal(t, listmodel.RoleTable{0: "coastal", 1: "name", 2: "population"}, m.RoleNames())
}

func TestNewFromMapsEmpty(t *testing.T) {
	_, err := NewFromMaps(nil)
	assert.Error(t, err)
}

func TestKeyUnionAndNulls(t *testing.T) {
	m, err := NewFromMaps([]map[string]interface{}{
		{"name": "oslo", "region": "east"},
		{"name": "bergen"},
	})
	require.NoError(t, err)

	require.Equal(t, 2, m.ColumnCount())

	// bergen has no region, so that cell is null
	v, err := m.Value(1, 1)
	require.NoError(t, err)
	assert.True(t, v.IsNull)

	v, err = m.Value(0, 1)
	require.NoError(t, err)
	assert.Equal(t, "east", v.Raw)
}

func TestColumnTypes(t *testing.T) {
	m, err := NewFromMaps([]map[string]interface{}{
		{"name": "oslo", "population": 709037, "rating": 4.5, "coastal": true},
	})
	require.NoError(t, err)

	expect := map[string]listmodel.DataType{
		"name":       listmodel.TypeString,
		"population": listmodel.TypeInt,
		"rating":     listmodel.TypeFloat,
		"coastal":    listmodel.TypeBool,
	}
	for col := 0; col < m.ColumnCount(); col++ {
		name, err := m.ColumnName(col)
		require.NoError(t, err)
		typ, err := m.ColumnType(col)
		require.NoError(t, err)
		assert.Equal(t, expect[name], typ, name)
	}
}

func TestMixedColumnFallsBackToString(t *testing.T) {
	m, err := NewFromMaps([]map[string]interface{}{
		{"id": 1},
		{"id": "two"},
	})
	require.NoError(t, err)

	typ, err := m.ColumnType(0)
	require.NoError(t, err)
	assert.Equal(t, listmodel.TypeString, typ)

	v, err := m.Value(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "1", v.Formatted)
}

func TestUnmarshalledJSONRecords(t *testing.T) {
	var records []map[string]interface{}
	blob := `[{"city":"oslo","population":709037},{"city":"bergen","population":291189}]`
	require.NoError(t, json.Unmarshal([]byte(blob), &records))

	m, err := NewFromMaps(records)
	require.NoError(t, err)

	// encoding/json decodes numbers as float64
	typ, err := m.ColumnType(1)
	require.NoError(t, err)
	assert.Equal(t, listmodel.TypeFloat, typ)

	v, err := m.Value(0, 1)
	require.NoError(t, err)
	assert.Equal(t, "709037", v.Formatted)
}

func TestNestedValuesRenderAsText(t *testing.T) {
	m, err := NewFromMaps([]map[string]interface{}{
		{"name": "oslo", "tags": []interface{}{"capital", "fjord"}},
	})
	require.NoError(t, err)

	v, err := m.Value(0, 1)
	require.NoError(t, err)
	assert.Equal(t, listmodel.TypeString, v.Type)
	assert.Equal(t, "[capital fjord]", v.Formatted)
}

func TestRangeErrors(t *testing.T) {
	m, err := NewFromMaps([]map[string]interface{}{{"name": "oslo"}})
	require.NoError(t, err)

	_, err = m.Value(1, 0)
	assert.ErrorIs(t, err, listmodel.ErrInvalidRow)
	_, err = m.Value(0, 1)
	assert.ErrorIs(t, err, listmodel.ErrInvalidRole)
	_, err = m.Row(-1)
	assert.ErrorIs(t, err, listmodel.ErrInvalidRow)
	_, err = m.ColumnName(-1)
	assert.ErrorIs(t, err, listmodel.ErrInvalidRole)
}
