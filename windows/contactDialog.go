package windows

import (
	"errors"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// ShowAddContactDialog collects the fields of a new contact and hands
// them to onAdd once confirmed. The name is required; confirming with an
// empty name shows an error and leaves the model untouched.
func ShowAddContactDialog(w fyne.Window, onAdd func(name, phone, email string)) {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Jane Doe")

	phoneEntry := widget.NewEntry()
	phoneEntry.SetPlaceHolder("555-0100")

	emailEntry := widget.NewEntry()
	emailEntry.SetPlaceHolder("jane@example.com")

	form := widget.NewForm(
		widget.NewFormItem("Name", nameEntry),
		widget.NewFormItem("Phone", phoneEntry),
		widget.NewFormItem("Email", emailEntry),
	)

	d := dialog.NewCustomConfirm(
		"Add Contact",
		"Add",
		"Cancel",
		form,
		func(confirmed bool) {
			if !confirmed {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			if name == "" {
				dialog.ShowError(errors.New("contact name must not be empty"), w)
				return
			}
			onAdd(name, strings.TrimSpace(phoneEntry.Text), strings.TrimSpace(emailEntry.Text))
		},
		w,
	)
	d.Resize(fyne.NewSize(420, 260))
	d.Show()
}
