package models

import "rolo/listmodel"

// ChecklistItem is one row of a to-do checklist.
type ChecklistItem struct {
	Done        bool
	Description string
}

// Checklist roles, as published through RoleNames.
const (
	DoneRole listmodel.Role = iota
	DescriptionRole
)

// ChecklistModel is a read-only checklist. It satisfies the full model
// read contract but deliberately exposes no mutators, so it stays empty
// until one of them is surfaced.
//
// TODO: expose Append/Toggle once the checklist tab lands in the main
// window.
type ChecklistModel struct {
	list *listmodel.List[ChecklistItem]
}

var _ listmodel.Model = (*ChecklistModel)(nil)

// NewChecklistModel returns an empty checklist.
func NewChecklistModel() *ChecklistModel {
	return &ChecklistModel{
		list: listmodel.NewList(listmodel.RoleTable{
			DoneRole:        "done",
			DescriptionRole: "description",
		}, checklistValue),
	}
}

func checklistValue(item ChecklistItem, role listmodel.Role) listmodel.Value {
	switch role {
	case DoneRole:
		return listmodel.NewValue(item.Done, listmodel.TypeBool)
	default:
		return listmodel.NewValue(item.Description, listmodel.TypeString)
	}
}

func (m *ChecklistModel) RowCount() int {
	return m.list.RowCount()
}

func (m *ChecklistModel) Value(row int, role listmodel.Role) (listmodel.Value, error) {
	return m.list.Value(row, role)
}

func (m *ChecklistModel) RoleNames() listmodel.RoleTable {
	return m.list.RoleNames()
}

func (m *ChecklistModel) AddListener(l listmodel.Listener) {
	m.list.AddListener(l)
}

func (m *ChecklistModel) RemoveListener(l listmodel.Listener) {
	m.list.RemoveListener(l)
}

func (m *ChecklistModel) AddCountListener(c listmodel.CountListener) {
	m.list.AddCountListener(c)
}

func (m *ChecklistModel) RemoveCountListener(c listmodel.CountListener) {
	m.list.RemoveCountListener(c)
}
