// Package csv loads delimiter-separated files into read-only list
// models. Roles are column ordinals; column types are inferred from the
// data so numeric and boolean columns keep their typed values.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"rolo/listmodel"
)

// Config controls how input is parsed.
type Config struct {
	// Delimiter separates fields. Zero means comma.
	Delimiter rune
	// HasHeaders treats the first row as column names. Without headers
	// columns are named column_1, column_2 and so on.
	HasHeaders bool
	// TrimSpace strips surrounding whitespace from every field.
	TrimSpace bool
}

// DefaultConfig returns the conventional comma-separated configuration
// with headers and whitespace trimming enabled.
func DefaultConfig() Config {
	return Config{Delimiter: ',', HasHeaders: true, TrimSpace: true}
}

// Model exposes parsed rows as a read-only list model. Cells are
// converted once at load time, so reads never re-parse.
type Model struct {
	listmodel.Notifier

	headers []string
	types   []listmodel.DataType
	rows    [][]listmodel.Value
	roles   listmodel.RoleTable
}

var _ listmodel.Model = (*Model)(nil)

// NewFromFile parses the file at path.
func NewFromFile(path string, config Config) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	return NewFromReader(f, config)
}

// NewFromReader parses everything r yields.
func NewFromReader(r io.Reader, config Config) (*Model, error) {
	if config.Delimiter == 0 {
		config.Delimiter = ','
	}

	reader := csv.NewReader(r)
	reader.Comma = config.Delimiter

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("empty csv input")
	}

	if config.TrimSpace {
		for _, rec := range records {
			for i := range rec {
				rec[i] = strings.TrimSpace(rec[i])
			}
		}
	}

	var headers []string
	if config.HasHeaders {
		headers = records[0]
		records = records[1:]
	} else {
		headers = make([]string, len(records[0]))
		for i := range headers {
			headers[i] = fmt.Sprintf("column_%d", i+1)
		}
	}

	types := inferTypes(len(headers), records)

	rows := make([][]listmodel.Value, len(records))
	for i, rec := range records {
		row := make([]listmodel.Value, len(headers))
		for j := range headers {
			row[j] = convertCell(rec[j], types[j])
		}
		rows[i] = row
	}

	roles := make(listmodel.RoleTable, len(headers))
	for i, name := range headers {
		roles[listmodel.Role(i)] = name
	}

	return &Model{headers: headers, types: types, rows: rows, roles: roles}, nil
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
	return len(m.headers)
}

// ColumnName returns the header of the column at col.
func (m *Model) ColumnName(col int) (string, error) {
	if col < 0 || col >= len(m.headers) {
		return "", listmodel.ErrInvalidRole
	}
	return m.headers[col], nil
}

// ColumnType returns the inferred type of the column at col.
func (m *Model) ColumnType(col int) (listmodel.DataType, error) {
	if col < 0 || col >= len(m.headers) {
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
	if col < 0 || col >= len(m.headers) {
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

// inferTypes picks the narrowest type every non-empty value in a column
// parses as, falling back to string. Empty cells carry no type
// information.
func inferTypes(cols int, records [][]string) []listmodel.DataType {
	types := make([]listmodel.DataType, cols)
	for col := range types {
		isInt, isFloat, isBool := true, true, true
		seen := false
		for _, rec := range records {
			s := rec[col]
			if s == "" {
				continue
			}
			seen = true
			if _, err := strconv.ParseInt(s, 10, 64); err != nil {
				isInt = false
			}
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				isFloat = false
			}
			if !strings.EqualFold(s, "true") && !strings.EqualFold(s, "false") {
				isBool = false
			}
		}

		switch {
		case !seen:
			types[col] = listmodel.TypeString
		case isInt:
			types[col] = listmodel.TypeInt
		case isFloat:
			types[col] = listmodel.TypeFloat
		case isBool:
			types[col] = listmodel.TypeBool
		default:
			types[col] = listmodel.TypeString
		}
	}
	return types
}

func convertCell(s string, typ listmodel.DataType) listmodel.Value {
	if s == "" {
		return listmodel.NewNullValue(typ)
	}
	switch typ {
	case listmodel.TypeInt:
		n, _ := strconv.ParseInt(s, 10, 64)
		return listmodel.NewValue(n, listmodel.TypeInt)
	case listmodel.TypeFloat:
		f, _ := strconv.ParseFloat(s, 64)
		return listmodel.NewValue(f, listmodel.TypeFloat)
	case listmodel.TypeBool:
		b, _ := strconv.ParseBool(strings.ToLower(s))
		return listmodel.NewValue(b, listmodel.TypeBool)
	default:
		return listmodel.NewValue(s, listmodel.TypeString)
	}
}
