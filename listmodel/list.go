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

package listmodel

import "slices"

// List is a mutable, observable record list. It owns an ordered slice of
// records of type T and projects each record into role-addressed values
// through the projection function supplied at construction.
//
// All structural changes go through Insert, Append, Remove, Clear and
// Reset, which publish the bracketed notifications described on Listener
// before touching attached views' row expectations. A List is not safe for
// concurrent use; confine each instance to one goroutine, conventionally
// the one driving the UI.
type List[T any] struct {
	roles   RoleTable
	project func(rec T, role Role) Value
	records []T

	notifier Notifier
	mutating bool
}

// NewList builds an empty list over the given role table. project maps a
// record and one of the table's roles to the value a view should display;
// it is consulted on every Value call and must not be nil.
func NewList[T any](roles RoleTable, project func(rec T, role Role) Value) *List[T] {
	return &List[T]{
		roles:   roles.Clone(),
		project: project,
	}
}

// RowCount returns the number of records currently in the list.
func (m *List[T]) RowCount() int {
	return len(m.records)
}

// Value projects the record at row through the given role. It returns
// ErrInvalidRow when row is out of range and ErrInvalidRole when the role
// is not part of the list's role table.
func (m *List[T]) Value(row int, role Role) (Value, error) {
	if row < 0 || row >= len(m.records) {
		return Value{}, ErrInvalidRow
	}
	if _, ok := m.roles[role]; !ok {
		return Value{}, ErrInvalidRole
	}
	return m.project(m.records[row], role), nil
}

// RoleNames returns a copy of the list's role table.
func (m *List[T]) RoleNames() RoleTable {
	return m.roles.Clone()
}

// Record returns the record stored at row.
func (m *List[T]) Record(row int) (T, error) {
	var zero T
	if row < 0 || row >= len(m.records) {
		return zero, ErrInvalidRow
	}
	return m.records[row], nil
}

// AddListener subscribes l to structural-change notifications. Adding the
// same listener twice is a no-op.
func (m *List[T]) AddListener(l Listener) {
	m.notifier.AddListener(l)
}

// RemoveListener unsubscribes l. Unknown listeners are ignored.
func (m *List[T]) RemoveListener(l Listener) {
	m.notifier.RemoveListener(l)
}

// AddCountListener subscribes c to the row-count signal.
func (m *List[T]) AddCountListener(c CountListener) {
	m.notifier.AddCountListener(c)
}

// RemoveCountListener unsubscribes c. Unknown listeners are ignored.
func (m *List[T]) RemoveCountListener(c CountListener) {
	m.notifier.RemoveCountListener(c)
}

// Insert places rec at position pos, shifting later records down. Valid
// positions run from 0 through RowCount inclusive; any other position
// returns ErrInvalidPosition without notifying anyone.
func (m *List[T]) Insert(pos int, rec T) error {
	m.beginMutation()
	defer m.endMutation()

	if pos < 0 || pos > len(m.records) {
		return ErrInvalidPosition
	}
	m.notifier.insertBegin(Range{First: pos, Last: pos})
	m.records = slices.Insert(m.records, pos, rec)
	m.notifier.insertEnd()
	m.notifier.countChanged(len(m.records))
	return nil
}

// Append adds rec after the last record.
func (m *List[T]) Append(rec T) {
	// The position is always valid here.
	_ = m.Insert(len(m.records), rec)
}

// Remove deletes the record at row. An out-of-range row leaves the list
// untouched and emits nothing.
func (m *List[T]) Remove(row int) {
	m.beginMutation()
	defer m.endMutation()

	if row < 0 || row >= len(m.records) {
		return
	}
	m.notifier.removeBegin(Range{First: row, Last: row})
	m.records = slices.Delete(m.records, row, row+1)
	m.notifier.removeEnd()
	m.notifier.countChanged(len(m.records))
}

// Clear removes every record, announced as a reset rather than row-level
// removals. Clearing an empty list emits nothing.
func (m *List[T]) Clear() {
	m.Reset(nil)
}

// Reset replaces the entire contents with recs, announced as a single
// reset rather than row-level changes. The input slice is copied, so the
// caller may keep using it. Resetting an empty list to empty contents
// emits nothing; the count signal fires only when the row count actually
// changed.
func (m *List[T]) Reset(recs []T) {
	m.beginMutation()
	defer m.endMutation()

	if len(m.records) == 0 && len(recs) == 0 {
		return
	}
	before := len(m.records)
	m.notifier.resetBegin()
	m.records = slices.Clone(recs)
	m.notifier.resetEnd()
	if len(m.records) != before {
		m.notifier.countChanged(len(m.records))
	}
}

func (m *List[T]) beginMutation() {
	if m.mutating {
		panic("listmodel: mutation during change notification")
	}
	m.mutating = true
}

func (m *List[T]) endMutation() {
	m.mutating = false
}
