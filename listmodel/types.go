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

// Package listmodel provides observable, role-addressed record lists for
// driving list views. A model exposes its rows by count and its fields by
// (row, role) lookup; structural mutations are announced to listeners
// through a begin/end notification pair so a view can react both before
// and after the rows move.
package listmodel

import (
	"fmt"
	"slices"
	"time"
)

// Role identifies one field of a record. Each model type fixes its own
// role enumeration at construction; role values are private to that model
// and never change for its lifetime.
type Role int

// RoleTable maps roles to the field names a view layer sees.
type RoleTable map[Role]string

// Roles returns the table's roles in ascending order.
// Useful for presenting fields in a stable column order.
func (rt RoleTable) Roles() []Role {
	roles := make([]Role, 0, len(rt))
	for r := range rt {
		roles = append(roles, r)
	}
	slices.Sort(roles)
	return roles
}

// Lookup returns the role carrying the given field name.
func (rt RoleTable) Lookup(name string) (Role, bool) {
	for r, n := range rt {
		if n == name {
			return r, true
		}
	}
	return 0, false
}

// Clone returns a copy so callers cannot alter the model's table.
func (rt RoleTable) Clone() RoleTable {
	out := make(RoleTable, len(rt))
	for r, name := range rt {
		out[r] = name
	}
	return out
}

// DataType represents the type of data behind a role.
type DataType int

const (
	// TypeString represents string data.
	TypeString DataType = iota
	// TypeInt represents integer data (any size).
	TypeInt
	// TypeFloat represents floating-point data (any precision).
	TypeFloat
	// TypeBool represents boolean data.
	TypeBool
	// TypeDate represents date data (without time).
	TypeDate
	// TypeTimestamp represents timestamp data (date + time).
	TypeTimestamp
)

// String returns the string representation of a DataType.
func (dt DataType) String() string {
	switch dt {
	case TypeString:
		return "String"
	case TypeInt:
		return "Int"
	case TypeFloat:
		return "Float"
	case TypeBool:
		return "Bool"
	case TypeDate:
		return "Date"
	case TypeTimestamp:
		return "Timestamp"
	default:
		return fmt.Sprintf("Unknown(%d)", dt)
	}
}

// Value is a typed container for field values.
// It holds the raw value, type information, and a pre-formatted string for
// display. Formatting once at construction keeps repeated view reads cheap.
type Value struct {
	// Raw holds the underlying value.
	// The type depends on the DataType field.
	Raw interface{}

	// Type indicates the data type of this value.
	Type DataType

	// IsNull indicates whether this value is null/nil.
	IsNull bool

	// Formatted is a pre-formatted string representation for display.
	Formatted string
}

// NewValue creates a new Value from a raw value and type.
func NewValue(raw interface{}, dataType DataType) Value {
	if raw == nil {
		return Value{
			Raw:    nil,
			Type:   dataType,
			IsNull: true,
		}
	}

	return Value{
		Raw:       raw,
		Type:      dataType,
		IsNull:    false,
		Formatted: formatValue(raw, dataType),
	}
}

// NewNullValue creates a null value of the specified type.
func NewNullValue(dataType DataType) Value {
	return Value{
		Raw:    nil,
		Type:   dataType,
		IsNull: true,
	}
}

// formatValue converts a raw value to a formatted string.
func formatValue(raw interface{}, dataType DataType) string {
	if raw == nil {
		return ""
	}

	if t, ok := raw.(time.Time); ok {
		switch dataType {
		case TypeDate:
			return t.Format("2006-01-02")
		case TypeTimestamp:
			return t.Format(time.RFC3339)
		}
	}

	return fmt.Sprintf("%v", raw)
}

// Range is an inclusive row range named by a structural notification.
// A single-row insert or remove announces Range{row, row}.
type Range struct {
	// First is the first affected row.
	First int
	// Last is the last affected row (inclusive).
	Last int
}

// Len returns the number of rows in the range.
func (r Range) Len() int {
	return r.Last - r.First + 1
}
