// Copyright 2025 The Rolo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package arrow adapts Apache Arrow tables to the list-model read
// contract. Roles are column ordinals and role names are the schema's
// field names, so a view bound to the model addresses columns the same
// way it addresses record fields.
package arrow

import (
	"errors"
	"fmt"
	"sort"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"rolo/listmodel"
)

// Model exposes one Arrow table as a read-only list model. The table is
// immutable, so listeners registered through the embedded Notifier never
// fire; registration is still accepted so the model can be bound like
// any other.
type Model struct {
	listmodel.Notifier

	table arrow.Table
	roles listmodel.RoleTable

	// offsets[col][k] is the starting row of column col's k-th chunk,
	// with a final entry holding the total length. Rows are located by
	// binary search instead of walking the chunk list.
	offsets [][]int64
}

var _ listmodel.Model = (*Model)(nil)

// NewFromArrowTable wraps table in a read-only list model. The table is
// retained; call Release when the model is no longer needed.
func NewFromArrowTable(table arrow.Table) (*Model, error) {
	if table == nil {
		return nil, errors.New("nil arrow table")
	}

	cols := int(table.NumCols())
	roles := make(listmodel.RoleTable, cols)
	offsets := make([][]int64, cols)
	for i := 0; i < cols; i++ {
		roles[listmodel.Role(i)] = table.Schema().Field(i).Name
		offsets[i] = chunkOffsets(table.Column(i))
	}

	table.Retain()
	return &Model{table: table, roles: roles, offsets: offsets}, nil
}

func chunkOffsets(col *arrow.Column) []int64 {
	chunks := col.Data().Chunks()
	offs := make([]int64, len(chunks)+1)
	for i, chunk := range chunks {
		offs[i+1] = offs[i] + int64(chunk.Len())
	}
	return offs
}

// Release drops the model's reference to the underlying table. The model
// must not be used afterwards.
func (m *Model) Release() {
	m.table.Release()
}

func (m *Model) RowCount() int {
	return int(m.table.NumRows())
}

func (m *Model) RoleNames() listmodel.RoleTable {
	return m.roles.Clone()
}

// ColumnCount returns the number of columns, which equals the number of
// roles.
func (m *Model) ColumnCount() int {
	return int(m.table.NumCols())
}

// ColumnName returns the schema name of the column at col.
func (m *Model) ColumnName(col int) (string, error) {
	if col < 0 || col >= int(m.table.NumCols()) {
		return "", listmodel.ErrInvalidRole
	}
	return m.table.Schema().Field(col).Name, nil
}

// ColumnType returns the model data type the column maps to.
func (m *Model) ColumnType(col int) (listmodel.DataType, error) {
	if col < 0 || col >= int(m.table.NumCols()) {
		return 0, listmodel.ErrInvalidRole
	}
	return columnType(m.table.Column(col).DataType()), nil
}

// Value returns the cell at (row, role). The role is the column ordinal.
func (m *Model) Value(row int, role listmodel.Role) (listmodel.Value, error) {
	if row < 0 || int64(row) >= m.table.NumRows() {
		return listmodel.Value{}, listmodel.ErrInvalidRow
	}
	col := int(role)
	if col < 0 || col >= int(m.table.NumCols()) {
		return listmodel.Value{}, listmodel.ErrInvalidRole
	}
	chunk, pos := m.locate(col, int64(row))
	return cellValue(chunk, pos), nil
}

// Row returns every column's value at row, in column order.
func (m *Model) Row(row int) ([]listmodel.Value, error) {
	if row < 0 || int64(row) >= m.table.NumRows() {
		return nil, listmodel.ErrInvalidRow
	}
	out := make([]listmodel.Value, int(m.table.NumCols()))
	for col := range out {
		chunk, pos := m.locate(col, int64(row))
		out[col] = cellValue(chunk, pos)
	}
	return out, nil
}

func (m *Model) locate(col int, row int64) (arrow.Array, int) {
	offs := m.offsets[col]
	k := sort.Search(len(offs)-1, func(i int) bool { return offs[i+1] > row })
	return m.table.Column(col).Data().Chunks()[k], int(row - offs[k])
}

// cellValue converts one Arrow cell into a typed model value.
func cellValue(col arrow.Array, pos int) listmodel.Value {
	if col.IsNull(pos) {
		return listmodel.NewNullValue(columnType(col.DataType()))
	}

	switch col.DataType().ID() {
	case arrow.STRING:
		return listmodel.NewValue(col.(*array.String).Value(pos), listmodel.TypeString)

	case arrow.LARGE_STRING:
		return listmodel.NewValue(col.(*array.LargeString).Value(pos), listmodel.TypeString)

	case arrow.BINARY:
		return listmodel.NewValue(string(col.(*array.Binary).Value(pos)), listmodel.TypeString)

	case arrow.BOOL:
		return listmodel.NewValue(col.(*array.Boolean).Value(pos), listmodel.TypeBool)

	case arrow.INT8:
		return listmodel.NewValue(col.(*array.Int8).Value(pos), listmodel.TypeInt)

	case arrow.INT16:
		return listmodel.NewValue(col.(*array.Int16).Value(pos), listmodel.TypeInt)

	case arrow.INT32:
		return listmodel.NewValue(col.(*array.Int32).Value(pos), listmodel.TypeInt)

	case arrow.INT64:
		return listmodel.NewValue(col.(*array.Int64).Value(pos), listmodel.TypeInt)

	case arrow.UINT8:
		return listmodel.NewValue(col.(*array.Uint8).Value(pos), listmodel.TypeInt)

	case arrow.UINT16:
		return listmodel.NewValue(col.(*array.Uint16).Value(pos), listmodel.TypeInt)

	case arrow.UINT32:
		return listmodel.NewValue(col.(*array.Uint32).Value(pos), listmodel.TypeInt)

	case arrow.UINT64:
		return listmodel.NewValue(col.(*array.Uint64).Value(pos), listmodel.TypeInt)

	case arrow.FLOAT16:
		return listmodel.NewValue(col.(*array.Float16).Value(pos).Float32(), listmodel.TypeFloat)

	case arrow.FLOAT32:
		return listmodel.NewValue(col.(*array.Float32).Value(pos), listmodel.TypeFloat)

	case arrow.FLOAT64:
		return listmodel.NewValue(col.(*array.Float64).Value(pos), listmodel.TypeFloat)

	case arrow.DATE32:
		return listmodel.NewValue(col.(*array.Date32).Value(pos).ToTime(), listmodel.TypeDate)

	case arrow.DATE64:
		return listmodel.NewValue(col.(*array.Date64).Value(pos).ToTime(), listmodel.TypeDate)

	case arrow.TIMESTAMP:
		ts := col.(*array.Timestamp)
		unit := ts.DataType().(*arrow.TimestampType).Unit
		return listmodel.NewValue(ts.Value(pos).ToTime(unit), listmodel.TypeTimestamp)

	case arrow.DECIMAL128:
		d128 := col.(*array.Decimal128)
		return listmodel.NewValue(d128.Value(pos).BigInt().String(), listmodel.TypeString)

	default:
		// structs, lists and anything exotic render through a one-row slice
		sl := array.NewSlice(col, int64(pos), int64(pos+1))
		defer sl.Release()
		return listmodel.NewValue(fmt.Sprintf("%v", sl), listmodel.TypeString)
	}
}

// columnType maps an Arrow type to the closest model data type.
func columnType(dt arrow.DataType) listmodel.DataType {
	switch dt.ID() {
	case arrow.BOOL:
		return listmodel.TypeBool
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return listmodel.TypeInt
	case arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64:
		return listmodel.TypeFloat
	case arrow.DATE32, arrow.DATE64:
		return listmodel.TypeDate
	case arrow.TIMESTAMP:
		return listmodel.TypeTimestamp
	default:
		return listmodel.TypeString
	}
}
