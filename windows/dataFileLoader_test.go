package windows

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rolo/models"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetectFileType(t *testing.T) {
	assert.Equal(t, FileTypeCSV, DetectFileType("data.csv"))
	assert.Equal(t, FileTypeCSV, DetectFileType("DATA.CSV"))
	assert.Equal(t, FileTypeParquet, DetectFileType("data.parquet"))
	assert.Equal(t, FileTypeJSON, DetectFileType("data.json"))
	assert.Equal(t, FileTypeUnknown, DetectFileType("data.txt"))
	assert.Equal(t, FileTypeUnknown, DetectFileType("data"))
}

func TestDetectCSVSeparator(t *testing.T) {
	path := writeTempFile(t, "semi.csv", "name;phone;email\na;b;c\n")
	sep, err := detectCSVSeparator(path)
	require.NoError(t, err)
	assert.Equal(t, ';', sep)

	path = writeTempFile(t, "tab.csv", "name\tphone\ta\tb\n")
	sep, err = detectCSVSeparator(path)
	require.NoError(t, err)
	assert.Equal(t, '\t', sep)

	path = writeTempFile(t, "pipe.csv", "name|phone\n")
	sep, err = detectCSVSeparator(path)
	require.NoError(t, err)
	assert.Equal(t, '|', sep)
}

func TestDetectCSVSeparatorDefaultsToComma(t *testing.T) {
	path := writeTempFile(t, "single.csv", "name\nAlice\n")
	sep, err := detectCSVSeparator(path)
	require.NoError(t, err)
	assert.Equal(t, ',', sep)

	path = writeTempFile(t, "empty.csv", "")
	sep, err = detectCSVSeparator(path)
	require.NoError(t, err)
	assert.Equal(t, ',', sep)
}

func TestGetSeparatorName(t *testing.T) {
	assert.Equal(t, "comma", getSeparatorName(','))
	assert.Equal(t, "semicolon", getSeparatorName(';'))
	assert.Equal(t, "tab", getSeparatorName('\t'))
	assert.Equal(t, "pipe", getSeparatorName('|'))
	assert.Equal(t, ":", getSeparatorName(':'))
}

func TestCSVModelFromFile(t *testing.T) {
	path := writeTempFile(t, "cities.csv", "name;population\noslo;709037\nbergen;291189\n")

	m, sep, err := csvModelFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, ';', sep)
	assert.Equal(t, 2, m.RowCount())
	assert.Equal(t, 2, m.ColumnCount())

	name, err := m.ColumnName(0)
	require.NoError(t, err)
	assert.Equal(t, "name", name)
}

func TestJSONModelFromFile(t *testing.T) {
	path := writeTempFile(t, "cities.json", `[{"name":"oslo"},{"name":"bergen"}]`)
	m, err := jsonModelFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, m.RowCount())

	path = writeTempFile(t, "single.json", `{"name":"oslo"}`)
	m, err = jsonModelFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, m.RowCount())
}

func TestJSONModelFromFileRejectsBadInput(t *testing.T) {
	path := writeTempFile(t, "broken.json", "not json at all")
	_, err := jsonModelFromFile(path)
	assert.Error(t, err)

	path = writeTempFile(t, "empty.json", "[]")
	_, err = jsonModelFromFile(path)
	assert.Error(t, err)
}

func TestModelFromFile(t *testing.T) {
	path := writeTempFile(t, "cities.csv", "name,population\noslo,709037\n")
	m, cleanup, err := modelFromFile(path)
	require.NoError(t, err)
	assert.Nil(t, cleanup)
	assert.Equal(t, 1, m.RowCount())

	_, _, err = modelFromFile("notes.txt")
	assert.Error(t, err)

	path = writeTempFile(t, "broken.parquet", "not parquet")
	_, _, err = modelFromFile(path)
	assert.Error(t, err)
}

func TestContactRecords(t *testing.T) {
	path := writeTempFile(t, "contacts.csv",
		"name,phone,email,age\n"+
			"Alice,555-1234,alice@example.com,34\n"+
			"Bob,555-5678,bob@example.com,41\n")
	m, _, err := csvModelFromFile(path)
	require.NoError(t, err)

	recs, err := contactRecords(m)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, models.Contact{Name: "Alice", Phone: "555-1234", Email: "alice@example.com"}, recs[0])
	assert.Equal(t, models.Contact{Name: "Bob", Phone: "555-5678", Email: "bob@example.com"}, recs[1])
}

func TestContactRecordsNameOnly(t *testing.T) {
	path := writeTempFile(t, "names.csv", "name\nAlice\n")
	m, _, err := csvModelFromFile(path)
	require.NoError(t, err)

	recs, err := contactRecords(m)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, models.Contact{Name: "Alice"}, recs[0])
}

func TestContactRecordsRequiresNameColumn(t *testing.T) {
	path := writeTempFile(t, "phones.csv", "phone\n555-1234\n")
	m, _, err := csvModelFromFile(path)
	require.NoError(t, err)

	_, err = contactRecords(m)
	assert.Error(t, err)
}

func TestImportContacts(t *testing.T) {
	mw := &MainWindow{contacts: models.NewContactModel()}
	mw.contacts.AddContact("Old", "000", "old@example.com")

	path := writeTempFile(t, "contacts.json",
		`[{"name":"Alice","phone":"555-1234"},{"name":"Bob","email":"bob@example.com"}]`)
	require.NoError(t, mw.ImportContacts(path))

	assert.Equal(t, 2, mw.contacts.RowCount())

	v, err := mw.contacts.Value(0, models.NameRole)
	require.NoError(t, err)
	assert.Equal(t, "Alice", v.Formatted)

	v, err = mw.contacts.Value(0, models.EmailRole)
	require.NoError(t, err)
	assert.Equal(t, "", v.Formatted)

	v, err = mw.contacts.Value(1, models.EmailRole)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", v.Formatted)
}

func TestImportContactsKeepsBookOnFailure(t *testing.T) {
	mw := &MainWindow{contacts: models.NewContactModel()}
	mw.contacts.AddContact("Keep", "555-0000", "keep@example.com")

	path := writeTempFile(t, "nonames.json", `[{"phone":"555-1234"}]`)
	assert.Error(t, mw.ImportContacts(path))
	assert.Equal(t, 1, mw.contacts.RowCount())

	v, err := mw.contacts.Value(0, models.NameRole)
	require.NoError(t, err)
	assert.Equal(t, "Keep", v.Formatted)
}
