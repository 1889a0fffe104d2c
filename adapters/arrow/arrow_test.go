package arrow

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rolo/listmodel"
)

// buildCityTable returns a two-column table whose first column is split
// across two chunks, so row lookup has to cross a chunk boundary.
func buildCityTable(t *testing.T) arrow.Table {
	t.Helper()
	pool := memory.NewGoAllocator()

	fields := []arrow.Field{
		{Name: "city", Type: arrow.BinaryTypes.String},
		{Name: "population", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
	}
	schema := arrow.NewSchema(fields, nil)

	sb := array.NewStringBuilder(pool)
	defer sb.Release()
	sb.AppendValues([]string{"oslo", "bergen"}, nil)
	cityA := sb.NewArray()
	defer cityA.Release()
	sb.AppendValues([]string{"tromso"}, nil)
	cityB := sb.NewArray()
	defer cityB.Release()

	ib := array.NewInt64Builder(pool)
	defer ib.Release()
	ib.AppendValues([]int64{709037, 291189, 0}, []bool{true, true, false})
	pop := ib.NewArray()
	defer pop.Release()

	columns := []arrow.Column{
		*arrow.NewColumn(fields[0], arrow.NewChunked(fields[0].Type, []arrow.Array{cityA, cityB})),
		*arrow.NewColumn(fields[1], arrow.NewChunked(fields[1].Type, []arrow.Array{pop})),
	}
	return array.NewTable(schema, columns, 3)
}

func newCityModel(t *testing.T) *Model {
	t.Helper()
	table := buildCityTable(t)
	t.Cleanup(table.Release)

	m, err := NewFromArrowTable(table)
	require.NoError(t, err)
	t.Cleanup(m.Release)
	return m
}

func TestNewFromArrowTableNil(t *testing.T) {
	_, err := NewFromArrowTable(nil)
	assert.Error(t, err)
}

func TestArrowModelShape(t *testing.T) {
	m := newCityModel(t)

	assert.Equal(t, 3, m.RowCount())
	assert.Equal(t, 2, m.ColumnCount())
	assert.Equal(t, listmodel.RoleTable{0: "city", 1: "population"}, m.RoleNames())

	name, err := m.ColumnName(1)
	require.NoError(t, err)
	assert.Equal(t, "population", name)

	typ, err := m.ColumnType(1)
	require.NoError(t, err)
	assert.Equal(t, listmodel.TypeInt, typ)

	_, err = m.ColumnName(2)
	assert.ErrorIs(t, err, listmodel.ErrInvalidRole)
}

func TestArrowModelValuesAcrossChunks(t *testing.T) {
	m := newCityModel(t)

	v, err := m.Value(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "oslo", v.Raw)

	// row 2 lives in the second chunk of the city column
	v, err = m.Value(2, 0)
	require.NoError(t, err)
	assert.Equal(t, "tromso", v.Raw)

	v, err = m.Value(1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(291189), v.Raw)
	assert.Equal(t, listmodel.TypeInt, v.Type)
	assert.Equal(t, "291189", v.Formatted)
}

func TestArrowModelNullCell(t *testing.T) {
	m := newCityModel(t)

	v, err := m.Value(2, 1)
	require.NoError(t, err)
	assert.True(t, v.IsNull)
	assert.Equal(t, "", v.Formatted)
	assert.Equal(t, listmodel.TypeInt, v.Type)
}

func TestArrowModelRangeErrors(t *testing.T) {
	m := newCityModel(t)

	_, err := m.Value(-1, 0)
	assert.ErrorIs(t, err, listmodel.ErrInvalidRow)
	_, err = m.Value(3, 0)
	assert.ErrorIs(t, err, listmodel.ErrInvalidRow)
	_, err = m.Value(0, 2)
	assert.ErrorIs(t, err, listmodel.ErrInvalidRole)
}

func TestArrowModelRow(t *testing.T) {
	m := newCityModel(t)

	row, err := m.Row(1)
	require.NoError(t, err)
	require.Len(t, row, 2)
	assert.Equal(t, "bergen", row[0].Formatted)
	assert.Equal(t, "291189", row[1].Formatted)

	_, err = m.Row(5)
	assert.ErrorIs(t, err, listmodel.ErrInvalidRow)
}
