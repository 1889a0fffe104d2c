package listmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewValueFormatsScalars(t *testing.T) {
	v := NewValue("bread", TypeString)
	assert.Equal(t, "bread", v.Formatted)
	assert.False(t, v.IsNull)

	v = NewValue(12, TypeInt)
	assert.Equal(t, "12", v.Formatted)

	v = NewValue(2.5, TypeFloat)
	assert.Equal(t, "2.5", v.Formatted)

	v = NewValue(true, TypeBool)
	assert.Equal(t, "true", v.Formatted)
}

func TestNewValueFormatsTime(t *testing.T) {
	ts := time.Date(2024, 3, 17, 9, 30, 0, 0, time.UTC)

	v := NewValue(ts, TypeDate)
	assert.Equal(t, "2024-03-17", v.Formatted)

	v = NewValue(ts, TypeTimestamp)
	assert.Equal(t, "2024-03-17T09:30:00Z", v.Formatted)
}

func TestNewNullValue(t *testing.T) {
	v := NewNullValue(TypeString)
	assert.True(t, v.IsNull)
	assert.Nil(t, v.Raw)
	assert.Equal(t, "", v.Formatted)
	assert.Equal(t, TypeString, v.Type)
}

func TestDataTypeString(t *testing.T) {
	assert.Equal(t, "String", TypeString.String())
	assert.Equal(t, "Int", TypeInt.String())
	assert.Equal(t, "Float", TypeFloat.String())
	assert.Equal(t, "Bool", TypeBool.String())
	assert.Equal(t, "Date", TypeDate.String())
	assert.Equal(t, "Timestamp", TypeTimestamp.String())
	assert.Equal(t, "Unknown(99)", DataType(99).String())
}

func TestRoleTableRolesSorted(t *testing.T) {
	rt := RoleTable{Role(7): "seven", Role(0): "zero", Role(3): "three"}
	assert.Equal(t, []Role{0, 3, 7}, rt.Roles())
}

func TestRoleTableLookup(t *testing.T) {
	rt := RoleTable{Role(0): "name", Role(1): "qty"}

	role, ok := rt.Lookup("qty")
	assert.True(t, ok)
	assert.Equal(t, Role(1), role)

	_, ok = rt.Lookup("missing")
	assert.False(t, ok)
}

func TestRangeLen(t *testing.T) {
	assert.Equal(t, 1, Range{First: 2, Last: 2}.Len())
	assert.Equal(t, 5, Range{First: 0, Last: 4}.Len())
}
