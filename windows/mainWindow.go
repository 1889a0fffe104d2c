package windows

import (
	"fmt"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"rolo/fynebind"
	"rolo/listmodel"
	"rolo/models"
)

// contactsTabTitle names the permanent details tab; CloseIntercept
// refuses to close it.
const contactsTabTitle = "Contact"

// dataFileExtensions lists the file types the loaders understand.
var dataFileExtensions = []string{".csv", ".parquet", ".json"}

// TappableListItem is a label that supports both regular click and right-click
type TappableListItem struct {
	widget.Label
	onRightClick func(widget.ListItemID, *fyne.PointEvent)
	onTap        func(widget.ListItemID)
	itemID       widget.ListItemID
}

func newTappableListItem(onRightClick func(widget.ListItemID, *fyne.PointEvent)) *TappableListItem {
	item := &TappableListItem{
		onRightClick: onRightClick,
		itemID:       -1,
	}
	item.ExtendBaseWidget(item)
	return item
}

func (t *TappableListItem) SetItemID(id widget.ListItemID) {
	t.itemID = id
}

func (t *TappableListItem) SetOnTap(callback func(widget.ListItemID)) {
	t.onTap = callback
}

// Tapped handles regular left-click
func (t *TappableListItem) Tapped(e *fyne.PointEvent) {
	if t.onTap != nil && t.itemID >= 0 {
		t.onTap(t.itemID)
	}
}

// TappedSecondary handles right-click
func (t *TappableListItem) TappedSecondary(e *fyne.PointEvent) {
	if t.onRightClick != nil && t.itemID >= 0 {
		t.onRightClick(t.itemID, e)
	}
}

type MainWindow struct {
	a                 fyne.App
	w                 fyne.Window
	top, left, bottom fyne.CanvasObject
	contacts          *models.ContactModel
	nameList          *fynebind.RoleList
	contactsWidget    *widget.List
	selectedRow       int
	detailName        *widget.Label
	detailPhone       *widget.Label
	detailEmail       *widget.Label
	docTabs           *container.DocTabs
	tabCleanup        map[*container.TabItem]func()
	statusBar         *widget.Label
	countLabel        *widget.Label
}

func CreateMainWindow() *MainWindow {
	var v MainWindow
	v.NewMainWindow()
	return &v
}

// SetStatus updates the status bar message
func (t *MainWindow) SetStatus(message string) {
	if t.statusBar != nil {
		t.statusBar.SetText(message)
	}
}

func (t *MainWindow) NewMainWindow() {
	t.selectedRow = -1
	t.tabCleanup = make(map[*container.TabItem]func())
	t.a = app.NewWithID("rolo")
	t.a.Settings().SetTheme(&AppTheme{})
	t.top = widget.NewToolbar()

	// Create status bar
	t.statusBar = widget.NewLabel("Ready")
	t.statusBar.TextStyle = fyne.TextStyle{Italic: true}
	t.countLabel = widget.NewLabel("Contacts: 0")
	t.bottom = container.NewHBox(t.statusBar, layout.NewSpacer(), t.countLabel)

	t.contacts = models.NewContactModel()

	nameList, err := fynebind.NewRoleList(t.contacts, "name")
	if err != nil {
		log.Fatalf("contact model missing name role: %v", err)
	}
	t.nameList = nameList

	t.w = t.a.NewWindow("Rolo Contact Book")
	t.w.Resize(fyne.NewSize(900, 600))

	// Store reference to the context menu callback
	var showContactContextMenu func(widget.ListItemID, *fyne.PointEvent)

	t.contactsWidget = widget.NewListWithData(t.nameList, func() fyne.CanvasObject {
		return newTappableListItem(showContactContextMenu)
	}, func(di binding.DataItem, co fyne.CanvasObject) {
		item := co.(*TappableListItem)
		item.Bind(di.(binding.String))
	})

	// Set item IDs and tap handler when updating
	originalUpdateItem := t.contactsWidget.UpdateItem
	t.contactsWidget.UpdateItem = func(id widget.ListItemID, item fyne.CanvasObject) {
		if tappableItem, ok := item.(*TappableListItem); ok {
			tappableItem.SetItemID(id)
			// Connect regular tap to the list's OnSelected handler
			tappableItem.SetOnTap(func(itemID widget.ListItemID) {
				if t.contactsWidget.OnSelected != nil {
					t.contactsWidget.OnSelected(itemID)
				}
			})
		}
		originalUpdateItem(id, item)
	}

	t.contactsWidget.OnSelected = func(id widget.ListItemID) {
		t.selectedRow = int(id)
		t.updateDetail(t.selectedRow)
		t.SetStatus("Selected contact: " + t.roleText(t.selectedRow, models.NameRole))
	}

	// Define the context menu callback function
	showContactContextMenu = func(itemID widget.ListItemID, e *fyne.PointEvent) {
		contactMenu := fyne.NewMenu("",
			fyne.NewMenuItem("Remove Contact", func() {
				t.removeContact(int(itemID))
			}),
			fyne.NewMenuItem("Copy Phone", func() {
				phone := t.roleText(int(itemID), models.PhoneRole)
				if phone != "" {
					t.w.Clipboard().SetContent(phone)
					t.SetStatus("Copied phone number to clipboard")
				}
			}),
		)

		// Show the context menu at the click position
		widget.ShowPopUpMenuAtPosition(contactMenu, t.w.Canvas(), e.AbsolutePosition)
	}

	t.left = container.NewGridWrap(fyne.NewSize(220, 768),
		widget.NewCard("", "Contacts", t.contactsWidget))

	t.detailName = widget.NewLabel("")
	t.detailPhone = widget.NewLabel("")
	t.detailEmail = widget.NewLabel("")
	detail := widget.NewForm(
		widget.NewFormItem("Name", t.detailName),
		widget.NewFormItem("Phone", t.detailPhone),
		widget.NewFormItem("Email", t.detailEmail),
	)

	// Keep the selection and details valid across removals and resets
	t.contacts.AddListener(&listmodel.ListenerFuncs{
		OnRemoveEnd: t.clampSelection,
		OnResetEnd:  t.clampSelection,
	})
	t.contacts.AddCountListener(listmodel.NewCountListener(func(count int) {
		t.countLabel.SetText(fmt.Sprintf("Contacts: %d", count))
	}))

	tabs := container.NewDocTabs(container.NewTabItem(contactsTabTitle,
		widget.NewCard("", "Contact Details", detail)))
	tabs.CloseIntercept = func(ti *container.TabItem) {
		if ti.Text == contactsTabTitle {
			return
		}
		t.runTabCleanup(ti)
		tabs.Remove(ti)
	}
	t.docTabs = tabs

	t.top.(*widget.Toolbar).Append(widget.NewToolbarAction(theme.MenuIcon(), func() {
		if !t.left.Visible() {
			t.left.Show()
		} else {
			t.left.Hide()
		}
	}))
	t.top.(*widget.Toolbar).Append(widget.NewToolbarSeparator())
	t.top.(*widget.Toolbar).Append(widget.NewToolbarAction(theme.ContentAddIcon(), func() {
		ShowAddContactDialog(t.w, func(name, phone, email string) {
			t.contacts.AddContact(name, phone, email)
			t.contactsWidget.Select(t.contacts.RowCount() - 1)
			t.SetStatus("Added contact: " + name)
		})
	}))
	t.top.(*widget.Toolbar).Append(widget.NewToolbarAction(theme.DeleteIcon(), func() {
		if t.selectedRow < 0 {
			dialog.ShowInformation("Select a Contact", "Please select a contact first", t.w)
			return
		}
		t.removeContact(t.selectedRow)
	}))
	t.top.(*widget.Toolbar).Append(widget.NewToolbarAction(theme.ContentClearIcon(), func() {
		if t.contacts.RowCount() == 0 {
			return
		}
		dialog.ShowConfirm("Clear Contacts", "Remove all contacts from the book?", func(ok bool) {
			if !ok {
				return
			}
			t.contacts.Clear()
			t.SetStatus("Contact book cleared")
		}, t.w)
	}))
	t.top.(*widget.Toolbar).Append(widget.NewToolbarSeparator())
	t.top.(*widget.Toolbar).Append(widget.NewToolbarAction(theme.FolderOpenIcon(), func() {
		t.openDataFile()
	}))
	t.top.(*widget.Toolbar).Append(widget.NewToolbarAction(theme.AccountIcon(), func() {
		t.importContactsFromFile()
	}))
	t.top.(*widget.Toolbar).Append(widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
		t.exportContacts()
	}))
	t.top.(*widget.Toolbar).Append(widget.NewToolbarSpacer())

	c := container.NewBorder(t.top, t.bottom, t.left, nil, widget.NewCard("", "", tabs))
	t.w.SetContent(c)
	t.w.ShowAndRun()
}

// roleText reads one field of the contact at row, or "" when the row or
// role is gone.
func (t *MainWindow) roleText(row int, role listmodel.Role) string {
	v, err := t.contacts.Value(row, role)
	if err != nil {
		return ""
	}
	return v.Formatted
}

// updateDetail fills the details form from the contact at row.
func (t *MainWindow) updateDetail(row int) {
	t.detailName.SetText(t.roleText(row, models.NameRole))
	t.detailPhone.SetText(t.roleText(row, models.PhoneRole))
	t.detailEmail.SetText(t.roleText(row, models.EmailRole))
}

// clampSelection moves the selection back in range after rows vanish.
func (t *MainWindow) clampSelection() {
	count := t.contacts.RowCount()
	if count == 0 {
		t.selectedRow = -1
		t.contactsWidget.UnselectAll()
		t.updateDetail(-1)
		return
	}
	if t.selectedRow >= count {
		t.selectedRow = count - 1
		t.contactsWidget.Select(t.selectedRow)
		return
	}
	t.updateDetail(t.selectedRow)
}

func (t *MainWindow) removeContact(row int) {
	name := t.roleText(row, models.NameRole)
	if name == "" {
		return
	}
	t.contacts.RemoveContact(row)
	t.SetStatus("Removed contact: " + name)
}

// openDataFile picks a data file and shows it in a new document tab.
func (t *MainWindow) openDataFile() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.w)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		t.handleDataFileLoad(path)
	}, t.w)
	fileDialog.SetFilter(storage.NewExtensionFileFilter(dataFileExtensions))
	fileDialog.Resize(fyne.NewSize(700, 500))
	fileDialog.Show()
}

// importContactsFromFile picks a data file and replaces the contact
// book with its rows, confirming first when contacts would be lost.
func (t *MainWindow) importContactsFromFile() {
	choose := func() {
		fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil {
				dialog.ShowError(err, t.w)
				return
			}
			if reader == nil {
				return
			}
			path := reader.URI().Path()
			reader.Close()
			if err := t.ImportContacts(path); err != nil {
				dialog.ShowError(err, t.w)
				t.SetStatus("Import failed: " + err.Error())
			}
		}, t.w)
		fileDialog.SetFilter(storage.NewExtensionFileFilter(dataFileExtensions))
		fileDialog.Resize(fyne.NewSize(700, 500))
		fileDialog.Show()
	}

	if t.contacts.RowCount() == 0 {
		choose()
		return
	}
	dialog.ShowConfirm("Replace Contacts",
		"Importing replaces the current contact book. Continue?", func(ok bool) {
			if ok {
				choose()
			}
		}, t.w)
}

// exportContacts writes the contact book to a file picked by the user;
// the extension selects the format.
func (t *MainWindow) exportContacts() {
	if t.contacts.RowCount() == 0 {
		dialog.ShowInformation("Nothing to Export", "The contact book is empty", t.w)
		return
	}

	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.w)
			return
		}
		if writer == nil {
			return
		}

		path := writer.URI().Path()
		writer.Close()

		if err := ExportModel(t.contacts, formatForPath(path), path); err != nil {
			dialog.ShowError(err, t.w)
			t.SetStatus("Export failed: " + err.Error())
			return
		}

		dialog.ShowInformation("Export Successful", "Contacts exported to "+path, t.w)
		t.SetStatus(fmt.Sprintf("Exported %d contacts to %s",
			t.contacts.RowCount(), filepath.Base(path)))
	}, t.w)
	saveDialog.SetFileName("contacts.csv")
	saveDialog.SetFilter(storage.NewExtensionFileFilter(dataFileExtensions))
	saveDialog.Show()
}
