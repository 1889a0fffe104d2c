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

package windows

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"rolo/listmodel"
)

// ExportFormat represents the supported export formats
type ExportFormat int

const (
	FormatCSV ExportFormat = iota
	FormatJSON
	FormatParquet
)

// formatForPath picks the export format from a file extension,
// defaulting to CSV.
func formatForPath(filePath string) ExportFormat {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json":
		return FormatJSON
	case ".parquet":
		return FormatParquet
	default:
		return FormatCSV
	}
}

// ExportModel writes every row of m to filePath in the given format.
// Columns are the model's roles in ascending role order, headed by
// their published names.
func ExportModel(m listmodel.Model, format ExportFormat, filePath string) error {
	switch format {
	case FormatJSON:
		return ExportToJSON(m, filePath)
	case FormatParquet:
		return ExportToParquet(m, filePath)
	default:
		return ExportToCSV(m, filePath)
	}
}

// exportColumns returns the model's roles in ascending order together
// with their names, fixing the column order for every format.
func exportColumns(m listmodel.Model) ([]listmodel.Role, []string) {
	rt := m.RoleNames()
	roles := rt.Roles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = rt[r]
	}
	return roles, names
}

// ExportToCSV exports the model to a CSV file
func ExportToCSV(m listmodel.Model, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	roles, names := exportColumns(m)
	if err := writer.Write(names); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for row := 0; row < m.RowCount(); row++ {
		out := make([]string, len(roles))
		for i, role := range roles {
			v, err := m.Value(row, role)
			if err != nil {
				return fmt.Errorf("failed to read row %d: %w", row, err)
			}
			out[i] = v.Formatted
		}
		if err := writer.Write(out); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

// ExportToJSON exports the model to a JSON file as an array of objects
func ExportToJSON(m listmodel.Model, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	roles, names := exportColumns(m)
	records := make([]map[string]interface{}, 0, m.RowCount())

	for row := 0; row < m.RowCount(); row++ {
		record := make(map[string]interface{}, len(roles))
		for i, role := range roles {
			v, err := m.Value(row, role)
			if err != nil {
				return fmt.Errorf("failed to read row %d: %w", row, err)
			}
			record[names[i]] = jsonValue(v)
		}
		records = append(records, record)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// jsonValue returns the JSON representation of a cell. Times encode as
// their formatted string, everything else keeps its raw value.
func jsonValue(v listmodel.Value) interface{} {
	if v.IsNull {
		return nil
	}
	if _, ok := v.Raw.(time.Time); ok {
		return v.Formatted
	}
	return v.Raw
}

// ExportToParquet exports the model to a Parquet file. Columns are
// typed by their first non-null cell; cells that disagree with the
// column type export as null.
func ExportToParquet(m listmodel.Model, filePath string) error {
	roles, names := exportColumns(m)

	fields := make([]arrow.Field, len(roles))
	for i, role := range roles {
		fields[i] = arrow.Field{
			Name:     names[i],
			Type:     arrowType(columnDataType(m, role)),
			Nullable: true,
		}
	}
	schema := arrow.NewSchema(fields, nil)

	pool := memory.NewGoAllocator()
	columns := make([]arrow.Column, len(roles))
	for i, role := range roles {
		builder := array.NewBuilder(pool, fields[i].Type)
		defer builder.Release()

		for row := 0; row < m.RowCount(); row++ {
			v, err := m.Value(row, role)
			if err != nil {
				return fmt.Errorf("failed to read row %d: %w", row, err)
			}
			appendModelValue(builder, v)
		}

		arr := builder.NewArray()
		defer arr.Release()

		chunked := arrow.NewChunked(fields[i].Type, []arrow.Array{arr})
		columns[i] = *arrow.NewColumn(fields[i], chunked)
	}

	table := array.NewTable(schema, columns, int64(m.RowCount()))
	defer table.Release()

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(schema, file, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	defer writer.Close()

	if err := writer.WriteTable(table, table.NumRows()); err != nil {
		return fmt.Errorf("failed to write table to parquet: %w", err)
	}

	return nil
}

// columnDataType returns the type of the first non-null cell in the
// column, defaulting to string.
func columnDataType(m listmodel.Model, role listmodel.Role) listmodel.DataType {
	for row := 0; row < m.RowCount(); row++ {
		v, err := m.Value(row, role)
		if err != nil {
			break
		}
		if !v.IsNull {
			return v.Type
		}
	}
	return listmodel.TypeString
}

// arrowType maps a model data type to the Arrow type used for export.
func arrowType(dt listmodel.DataType) arrow.DataType {
	switch dt {
	case listmodel.TypeInt:
		return arrow.PrimitiveTypes.Int64
	case listmodel.TypeFloat:
		return arrow.PrimitiveTypes.Float64
	case listmodel.TypeBool:
		return arrow.FixedWidthTypes.Boolean
	case listmodel.TypeDate:
		return arrow.FixedWidthTypes.Date32
	case listmodel.TypeTimestamp:
		return arrow.FixedWidthTypes.Timestamp_us
	default:
		return arrow.BinaryTypes.String
	}
}

// appendModelValue appends one cell to a column builder
func appendModelValue(builder array.Builder, v listmodel.Value) {
	if v.IsNull {
		builder.AppendNull()
		return
	}

	switch b := builder.(type) {
	case *array.StringBuilder:
		b.Append(v.Formatted)

	case *array.Int64Builder:
		if n, ok := toInt64(v.Raw); ok {
			b.Append(n)
		} else {
			b.AppendNull()
		}

	case *array.Float64Builder:
		if f, ok := toFloat64(v.Raw); ok {
			b.Append(f)
		} else {
			b.AppendNull()
		}

	case *array.BooleanBuilder:
		if x, ok := v.Raw.(bool); ok {
			b.Append(x)
		} else {
			b.AppendNull()
		}

	case *array.Date32Builder:
		if t, ok := v.Raw.(time.Time); ok {
			b.Append(arrow.Date32FromTime(t))
		} else {
			b.AppendNull()
		}

	case *array.TimestampBuilder:
		if t, ok := v.Raw.(time.Time); ok {
			b.Append(arrow.Timestamp(t.UnixMicro()))
		} else {
			b.AppendNull()
		}

	default:
		builder.AppendNull()
	}
}

func toInt64(raw interface{}) (int64, bool) {
	switch n := raw.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}

func toFloat64(raw interface{}) (float64, bool) {
	switch f := raw.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	default:
		if n, ok := toInt64(raw); ok {
			return float64(n), true
		}
		return 0, false
	}
}
