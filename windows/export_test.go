package windows

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sliceadapter "rolo/adapters/slice"
	"rolo/models"
)

func sampleContacts(t *testing.T) *models.ContactModel {
	t.Helper()
	m := models.NewContactModel()
	m.AddContact("Alice", "555-1234", "alice@example.com")
	m.AddContact("Bob", "555-5678", "bob@example.com")
	return m
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatCSV, formatForPath("contacts.csv"))
	assert.Equal(t, FormatCSV, formatForPath("CONTACTS.CSV"))
	assert.Equal(t, FormatJSON, formatForPath("contacts.json"))
	assert.Equal(t, FormatParquet, formatForPath("contacts.parquet"))
	assert.Equal(t, FormatCSV, formatForPath("contacts"))
}

func TestExportToCSV(t *testing.T) {
	m := sampleContacts(t)
	path := filepath.Join(t.TempDir(), "contacts.csv")

	require.NoError(t, ExportToCSV(m, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"name,phone,email\n"+
			"Alice,555-1234,alice@example.com\n"+
			"Bob,555-5678,bob@example.com\n",
		string(content))
}

func TestExportToJSON(t *testing.T) {
	m := sampleContacts(t)
	path := filepath.Join(t.TempDir(), "contacts.json")

	require.NoError(t, ExportToJSON(m, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Alice", records[0]["name"])
	assert.Equal(t, "alice@example.com", records[0]["email"])
	assert.Equal(t, "555-5678", records[1]["phone"])
}

func TestExportModelPicksFormat(t *testing.T) {
	m := sampleContacts(t)
	path := filepath.Join(t.TempDir(), "contacts.json")

	require.NoError(t, ExportModel(m, formatForPath(path), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &records))
	assert.Len(t, records, 2)
}

func TestExportToParquetRoundTrip(t *testing.T) {
	src, err := sliceadapter.NewFromMaps([]map[string]interface{}{
		{"name": "oslo", "population": 709037, "coastal": true, "score": 1.5},
		{"name": "bergen", "population": 291189, "coastal": true, "score": -0.25},
		{"name": "tromso", "population": 77995, "coastal": false},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cities.parquet")
	require.NoError(t, ExportToParquet(src, path))

	m, err := parquetModelFromFile(path)
	require.NoError(t, err)
	defer m.Release()

	assert.Equal(t, 3, m.RowCount())
	assert.Equal(t, 4, m.ColumnCount())

	rt := m.RoleNames()
	nameRole, ok := rt.Lookup("name")
	require.True(t, ok)
	popRole, ok := rt.Lookup("population")
	require.True(t, ok)
	coastalRole, ok := rt.Lookup("coastal")
	require.True(t, ok)
	scoreRole, ok := rt.Lookup("score")
	require.True(t, ok)

	v, err := m.Value(0, nameRole)
	require.NoError(t, err)
	assert.Equal(t, "oslo", v.Raw)

	v, err = m.Value(1, popRole)
	require.NoError(t, err)
	assert.Equal(t, int64(291189), v.Raw)

	v, err = m.Value(2, coastalRole)
	require.NoError(t, err)
	assert.Equal(t, false, v.Raw)

	v, err = m.Value(1, scoreRole)
	require.NoError(t, err)
	assert.Equal(t, -0.25, v.Raw)

	// the third city has no score; the null must survive the round trip
	v, err = m.Value(2, scoreRole)
	require.NoError(t, err)
	assert.True(t, v.IsNull)
}

func TestExportContactsToParquet(t *testing.T) {
	m := sampleContacts(t)
	path := filepath.Join(t.TempDir(), "contacts.parquet")

	require.NoError(t, ExportToParquet(m, path))

	back, err := parquetModelFromFile(path)
	require.NoError(t, err)
	defer back.Release()

	assert.Equal(t, 2, back.RowCount())
	assert.Equal(t, 3, back.ColumnCount())

	name, err := back.ColumnName(0)
	require.NoError(t, err)
	assert.Equal(t, "name", name)

	phoneRole, ok := back.RoleNames().Lookup("phone")
	require.True(t, ok)
	v, err := back.Value(0, phoneRole)
	require.NoError(t, err)
	assert.Equal(t, "555-1234", v.Formatted)
}
