// Package slice builds read-only list models from in-memory Go values,
// typically the result of unmarshalling JSON. Roles are column ordinals
// over the sorted union of all record keys.
package slice

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"rolo/listmodel"
)

// Model exposes a slice of records as a read-only list model.
type Model struct {
	listmodel.Notifier

	columns []string
	types   []listmodel.DataType
	rows    [][]listmodel.Value
	roles   listmodel.RoleTable
}

var _ listmodel.Model = (*Model)(nil)

// NewFromMaps builds a model from one map per record. Column names are
// the sorted union of every record's keys; records missing a key yield a
// null cell in that column.
func NewFromMaps(records []map[string]interface{}) (*Model, error) {
	if len(records) == 0 {
		return nil, errors.New("no records")
	}

	keySet := make(map[string]struct{})
	for _, rec := range records {
		for k := range rec {
			keySet[k] = struct{}{}
		}
	}
	columns := make([]string, 0, len(keySet))
	for k := range keySet {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	types := make([]listmodel.DataType, len(columns))
	for i, col := range columns {
		types[i] = inferColumnType(col, records)
	}

	rows := make([][]listmodel.Value, len(records))
	for i, rec := range records {
		row := make([]listmodel.Value, len(columns))
		for j, col := range columns {
			row[j] = convertCell(rec[col], types[j])
		}
		rows[i] = row
	}

	roles := make(listmodel.RoleTable, len(columns))
	for i, name := range columns {
		roles[listmodel.Role(i)] = name
	}

	return &Model{columns: columns, types: types, rows: rows, roles: roles}, nil
}

func (m *Model) RowCount() int {
	return len(m.rows)
}

func (m *Model) RoleNames() listmodel.RoleTable {
	return m.roles.Clone()
}

// ColumnCount returns the number of columns, which equals the number of
// roles.
func (m *Model) ColumnCount() int {
	return len(m.columns)
}

// ColumnName returns the key name of the column at col.
func (m *Model) ColumnName(col int) (string, error) {
	if col < 0 || col >= len(m.columns) {
		return "", listmodel.ErrInvalidRole
	}
	return m.columns[col], nil
}

// ColumnType returns the inferred type of the column at col.
func (m *Model) ColumnType(col int) (listmodel.DataType, error) {
	if col < 0 || col >= len(m.columns) {
		return 0, listmodel.ErrInvalidRole
	}
	return m.types[col], nil
}

// Value returns the cell at (row, role). The role is the column ordinal.
func (m *Model) Value(row int, role listmodel.Role) (listmodel.Value, error) {
	if row < 0 || row >= len(m.rows) {
		return listmodel.Value{}, listmodel.ErrInvalidRow
	}
	col := int(role)
	if col < 0 || col >= len(m.columns) {
		return listmodel.Value{}, listmodel.ErrInvalidRole
	}
	return m.rows[row][col], nil
}

// Row returns every column's value at row, in column order.
func (m *Model) Row(row int) ([]listmodel.Value, error) {
	if row < 0 || row >= len(m.rows) {
		return nil, listmodel.ErrInvalidRow
	}
	return slices.Clone(m.rows[row]), nil
}

// inferColumnType returns the shared type of every present value in the
// column, or string when the values disagree.
func inferColumnType(col string, records []map[string]interface{}) listmodel.DataType {
	inferred := listmodel.DataType(-1)
	for _, rec := range records {
		v, ok := rec[col]
		if !ok || v == nil {
			continue
		}
		t := valueType(v)
		if inferred == -1 {
			inferred = t
		} else if inferred != t {
			return listmodel.TypeString
		}
	}
	if inferred == -1 {
		return listmodel.TypeString
	}
	return inferred
}

func valueType(v interface{}) listmodel.DataType {
	switch v.(type) {
	case bool:
		return listmodel.TypeBool
	case int, int32, int64:
		return listmodel.TypeInt
	case float32, float64:
		return listmodel.TypeFloat
	case time.Time:
		return listmodel.TypeTimestamp
	default:
		return listmodel.TypeString
	}
}

func convertCell(v interface{}, typ listmodel.DataType) listmodel.Value {
	if v == nil {
		return listmodel.NewNullValue(typ)
	}
	switch v.(type) {
	case string, bool, int, int32, int64, float32, float64, time.Time:
		if valueType(v) == typ {
			return listmodel.NewValue(v, typ)
		}
	}
	// mixed or structured values render as text
	return listmodel.NewValue(fmt.Sprintf("%v", v), listmodel.TypeString)
}
