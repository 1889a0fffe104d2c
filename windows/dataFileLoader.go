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
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	arrowadapter "rolo/adapters/arrow"
	csvadapter "rolo/adapters/csv"
	sliceadapter "rolo/adapters/slice"
	"rolo/listmodel"
	"rolo/models"
)

// FileType represents the type of data file
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeCSV
	FileTypeParquet
	FileTypeJSON
)

// tableModel is the read surface every file adapter provides: the
// role-addressed model contract plus column-ordered access.
type tableModel interface {
	listmodel.Model
	ColumnCount() int
	ColumnName(col int) (string, error)
	Row(row int) ([]listmodel.Value, error)
}

// DetectFileType determines the type of file based on extension
func DetectFileType(filePath string) FileType {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		return FileTypeCSV
	case ".parquet":
		return FileTypeParquet
	case ".json":
		return FileTypeJSON
	default:
		return FileTypeUnknown
	}
}

// detectCSVSeparator tries to detect the CSV separator from the first line
func detectCSVSeparator(filePath string) (rune, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return ',', fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		// Empty file or error, use default comma
		return ',', nil
	}

	firstLine := scanner.Text()
	if firstLine == "" {
		return ',', nil
	}

	// Count occurrences of common separators
	separators := map[rune]int{
		',':  strings.Count(firstLine, ","),
		';':  strings.Count(firstLine, ";"),
		'\t': strings.Count(firstLine, "\t"),
		'|':  strings.Count(firstLine, "|"),
	}

	// Find the separator with the highest count
	maxCount := 0
	detectedSep := ','
	for sep, count := range separators {
		if count > maxCount {
			maxCount = count
			detectedSep = sep
		}
	}

	// If no separator was found (all counts are 0), default to comma
	if maxCount == 0 {
		return ',', nil
	}

	return detectedSep, nil
}

// getSeparatorName returns a human-readable name for the separator
func getSeparatorName(sep rune) string {
	switch sep {
	case ',':
		return "comma"
	case ';':
		return "semicolon"
	case '\t':
		return "tab"
	case '|':
		return "pipe"
	default:
		return string(sep)
	}
}

// csvModelFromFile loads a CSV file with its separator auto-detected.
func csvModelFromFile(filePath string) (*csvadapter.Model, rune, error) {
	separator, err := detectCSVSeparator(filePath)
	if err != nil {
		separator = ','
	}

	config := csvadapter.DefaultConfig()
	config.Delimiter = separator

	m, err := csvadapter.NewFromFile(filePath, config)
	if err != nil {
		return nil, separator, fmt.Errorf("failed to load CSV file: %w", err)
	}

	return m, separator, nil
}

// parquetModelFromFile reads a Parquet file into an Arrow-backed model.
// The caller owns the returned model and must Release it.
func parquetModelFromFile(filePath string) (*arrowadapter.Model, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer f.Close()

	pf, err := file.NewParquetReader(f, file.WithReadProps(&parquet.ReaderProperties{}))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pf.Close()

	mem := memory.NewGoAllocator()
	arrowReader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	table, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	defer table.Release()

	m, err := arrowadapter.NewFromArrowTable(table)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap parquet data: %w", err)
	}

	return m, nil
}

// jsonModelFromFile loads a JSON file holding an array of objects
// (or a single object) into a slice-backed model.
func jsonModelFromFile(filePath string) (*sliceadapter.Model, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}

	// Try to parse as array of objects
	var data []map[string]interface{}
	if err := json.Unmarshal(content, &data); err != nil {
		// Try as single object
		var singleObj map[string]interface{}
		if err := json.Unmarshal(content, &singleObj); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		data = []map[string]interface{}{singleObj}
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("JSON file is empty or has no records")
	}

	m, err := sliceadapter.NewFromMaps(data)
	if err != nil {
		return nil, fmt.Errorf("failed to build model from JSON: %w", err)
	}

	return m, nil
}

// modelFromFile loads any supported file into a table model. The second
// return value, when non-nil, releases resources held by the model and
// must run once the model is no longer displayed.
func modelFromFile(filePath string) (tableModel, func(), error) {
	switch DetectFileType(filePath) {
	case FileTypeCSV:
		m, _, err := csvModelFromFile(filePath)
		if err != nil {
			return nil, nil, err
		}
		return m, nil, nil
	case FileTypeParquet:
		m, err := parquetModelFromFile(filePath)
		if err != nil {
			return nil, nil, err
		}
		return m, m.Release, nil
	case FileTypeJSON:
		m, err := jsonModelFromFile(filePath)
		if err != nil {
			return nil, nil, err
		}
		return m, nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported file type")
	}
}

// LoadDataFile loads a data file using the appropriate adapter and displays it
func (t *MainWindow) LoadDataFile(filePath string) error {
	switch DetectFileType(filePath) {
	case FileTypeCSV:
		return t.loadCSVFile(filePath)
	case FileTypeParquet:
		return t.loadParquetFile(filePath)
	case FileTypeJSON:
		return t.loadJSONFile(filePath)
	default:
		return fmt.Errorf("unsupported file type")
	}
}

// loadCSVFile loads a CSV file using the CSV adapter
func (t *MainWindow) loadCSVFile(filePath string) error {
	t.SetStatus("Loading CSV file: " + filepath.Base(filePath))

	m, separator, err := csvModelFromFile(filePath)
	if err != nil {
		return err
	}

	t.displayModel(m, filepath.Base(filePath), nil)
	t.SetStatus(fmt.Sprintf("Loaded CSV file: %s (%d rows, %d columns, separator: %s)",
		filepath.Base(filePath), m.RowCount(), m.ColumnCount(), getSeparatorName(separator)))

	return nil
}

// loadParquetFile loads a Parquet file using the Arrow adapter
func (t *MainWindow) loadParquetFile(filePath string) error {
	t.SetStatus("Loading Parquet file: " + filepath.Base(filePath))

	m, err := parquetModelFromFile(filePath)
	if err != nil {
		return err
	}

	sizeMB := 0.0
	if info, err := os.Stat(filePath); err == nil {
		sizeMB = float64(info.Size()) / (1024 * 1024)
	}

	t.displayModel(m, filepath.Base(filePath), m.Release)
	t.SetStatus(fmt.Sprintf("Loaded Parquet file: %s (%d rows, %d columns, %.2f MB)",
		filepath.Base(filePath), m.RowCount(), m.ColumnCount(), sizeMB))

	return nil
}

// loadJSONFile loads a JSON file using the slice adapter
func (t *MainWindow) loadJSONFile(filePath string) error {
	t.SetStatus("Loading JSON file: " + filepath.Base(filePath))

	m, err := jsonModelFromFile(filePath)
	if err != nil {
		return err
	}

	t.displayModel(m, filepath.Base(filePath), nil)
	t.SetStatus(fmt.Sprintf("Loaded JSON file: %s (%d rows, %d columns)",
		filepath.Base(filePath), m.RowCount(), m.ColumnCount()))

	return nil
}

// columnNames resolves every column name of a table model up front.
func columnNames(m tableModel) []string {
	names := make([]string, m.ColumnCount())
	for i := range names {
		names[i], _ = m.ColumnName(i)
	}
	return names
}

// displayModel shows a loaded table model in a document tab. The model
// is read row by row as the list scrolls; nothing is copied up front.
// cleanup, when non-nil, runs as the tab closes or its content is
// replaced by a reload of the same file.
func (t *MainWindow) displayModel(m tableModel, tabName string, cleanup func()) {
	names := columnNames(m)

	list := widget.NewList(
		func() int {
			return m.RowCount()
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, co fyne.CanvasObject) {
			cells, err := m.Row(id)
			if err != nil {
				co.(*widget.Label).SetText("")
				return
			}
			parts := make([]string, len(cells))
			for i, cell := range cells {
				parts[i] = names[i] + "=" + cell.Formatted
			}
			co.(*widget.Label).SetText(strings.Join(parts, "  "))
		},
	)

	card := widget.NewCard("", tabName, list)

	if t.docTabs == nil {
		if cleanup != nil {
			cleanup()
		}
		return
	}

	// Reloading a file replaces its existing tab
	for _, tab := range t.docTabs.Items {
		if tab.Text == tabName {
			t.runTabCleanup(tab)
			tab.Content = card
			if cleanup != nil {
				t.tabCleanup[tab] = cleanup
			}
			t.docTabs.Select(tab)
			t.docTabs.Refresh()
			return
		}
	}

	tabItem := container.NewTabItem(tabName, card)
	if cleanup != nil {
		t.tabCleanup[tabItem] = cleanup
	}
	t.docTabs.Append(tabItem)
	t.docTabs.Select(tabItem)
}

// runTabCleanup releases any resources registered for a tab.
func (t *MainWindow) runTabCleanup(tab *container.TabItem) {
	if cleanup, ok := t.tabCleanup[tab]; ok {
		cleanup()
		delete(t.tabCleanup, tab)
	}
}

// ImportContacts replaces the contact book with the rows of a data
// file. The file must carry a "name" column; "phone" and "email"
// columns fill the matching fields when present.
func (t *MainWindow) ImportContacts(filePath string) error {
	m, cleanup, err := modelFromFile(filePath)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	recs, err := contactRecords(m)
	if err != nil {
		return err
	}

	t.contacts.Reset(recs)
	t.SetStatus(fmt.Sprintf("Imported %d contacts from %s", len(recs), filepath.Base(filePath)))

	return nil
}

// contactRecords maps table rows to contact records by column name.
func contactRecords(m tableModel) ([]models.Contact, error) {
	rt := m.RoleNames()

	nameRole, ok := rt.Lookup("name")
	if !ok {
		return nil, fmt.Errorf("file has no name column")
	}
	phoneRole, hasPhone := rt.Lookup("phone")
	emailRole, hasEmail := rt.Lookup("email")

	recs := make([]models.Contact, 0, m.RowCount())
	for row := 0; row < m.RowCount(); row++ {
		v, err := m.Value(row, nameRole)
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", row, err)
		}

		c := models.Contact{Name: v.Formatted}
		if hasPhone {
			if v, err := m.Value(row, phoneRole); err == nil {
				c.Phone = v.Formatted
			}
		}
		if hasEmail {
			if v, err := m.Value(row, emailRole); err == nil {
				c.Email = v.Formatted
			}
		}
		recs = append(recs, c)
	}

	return recs, nil
}

// handleDataFileLoad loads a file in the background behind a progress
// dialog, reporting failures through a notification and the status bar.
func (t *MainWindow) handleDataFileLoad(filePath string) {
	done := make(chan bool)
	go func(done chan bool) {
		pbi := widget.NewProgressBarInfinite()
		di := dialog.NewCustomWithoutButtons("Please wait", pbi, t.w)
		di.Resize(fyne.NewSize(200, 100))
		di.Show()
		pbi.Start()
		for {
			select {
			case <-done:
				di.Hide()
				pbi.Stop()
				return
			default:
				time.Sleep(500 * time.Millisecond)
			}
		}
	}(done)

	go func() {
		defer func() { done <- true }()
		if err := t.LoadDataFile(filePath); err != nil {
			errMsg := err.Error()
			t.a.SendNotification(&fyne.Notification{
				Title:   "Error Loading File",
				Content: errMsg,
			})
			log.Printf("Error loading file %s: %v", filePath, err)
			t.SetStatus("Error loading file: " + errMsg)
		}
	}()
}
