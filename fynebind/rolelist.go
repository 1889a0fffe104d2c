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

// Package fynebind exposes list models to Fyne's data-binding layer.
// A RoleList projects one role of a model as a binding.DataList of
// strings, so widget.NewListWithData can drive a list view straight off
// the model's structural notifications.
package fynebind

import (
	"errors"
	"fmt"
	"slices"

	"fyne.io/fyne/v2/data/binding"

	"rolo/listmodel"
)

// ErrReadOnly is returned by Set on bound items; models are mutated
// through their own mutators, never through the binding.
var ErrReadOnly = errors.New("binding is read-only")

// RoleList is a read-only binding.DataList over one role of a model.
// Row i of the binding is the formatted value of role at row i. The
// binding listens to the model's end notifications, so consumers always
// observe post-change state. All callbacks run synchronously.
type RoleList struct {
	model listmodel.Model
	role  listmodel.Role

	modelListener *listmodel.ListenerFuncs
	listeners     []binding.DataListener
	items         []*roleItem
}

var _ binding.DataList = (*RoleList)(nil)

// NewRoleList binds roleName on m. The role table is consulted once
// here; the resolved role id is used for every later read.
func NewRoleList(m listmodel.Model, roleName string) (*RoleList, error) {
	role, ok := m.RoleNames().Lookup(roleName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", listmodel.ErrRoleNotFound, roleName)
	}

	l := &RoleList{model: m, role: role}
	l.modelListener = &listmodel.ListenerFuncs{
		OnInsertEnd: l.changed,
		OnRemoveEnd: l.changed,
		OnResetEnd:  l.changed,
	}
	m.AddListener(l.modelListener)
	l.sync()
	return l, nil
}

// Close detaches the binding from its model. The binding must not be
// used afterwards.
func (l *RoleList) Close() {
	l.model.RemoveListener(l.modelListener)
}

// Length returns the model's current row count.
func (l *RoleList) Length() int {
	return l.model.RowCount()
}

// GetItem returns the item bound to row index. The item implements
// binding.String.
func (l *RoleList) GetItem(index int) (binding.DataItem, error) {
	if index < 0 || index >= len(l.items) {
		return nil, listmodel.ErrInvalidRow
	}
	return l.items[index], nil
}

// AddListener subscribes dl to length and content changes. The listener
// fires once immediately so it starts from the current state.
func (l *RoleList) AddListener(dl binding.DataListener) {
	l.listeners = append(slices.Clone(l.listeners), dl)
	dl.DataChanged()
}

// RemoveListener unsubscribes dl.
func (l *RoleList) RemoveListener(dl binding.DataListener) {
	i := slices.IndexFunc(l.listeners, func(x binding.DataListener) bool { return x == dl })
	if i < 0 {
		return
	}
	l.listeners = slices.Delete(slices.Clone(l.listeners), i, i+1)
}

// sync grows or shrinks the item cache to the model's row count. Items
// are keyed by position, so surviving positions keep their identity and
// any widget bindings attached to them.
func (l *RoleList) sync() {
	n := l.model.RowCount()
	for len(l.items) < n {
		l.items = append(l.items, &roleItem{list: l, row: len(l.items)})
	}
	if len(l.items) > n {
		l.items = l.items[:n]
	}
}

func (l *RoleList) changed() {
	l.sync()
	for _, dl := range l.listeners {
		dl.DataChanged()
	}
	// a structural change can shift the value at every position
	for _, it := range l.items {
		it.changed()
	}
}

// roleItem binds a single (row, role) cell as a read-only string.
type roleItem struct {
	list      *RoleList
	row       int
	listeners []binding.DataListener
}

var _ binding.String = (*roleItem)(nil)

func (i *roleItem) Get() (string, error) {
	v, err := i.list.model.Value(i.row, i.list.role)
	if err != nil {
		return "", err
	}
	return v.Formatted, nil
}

func (i *roleItem) Set(string) error {
	return ErrReadOnly
}

func (i *roleItem) AddListener(dl binding.DataListener) {
	i.listeners = append(slices.Clone(i.listeners), dl)
	dl.DataChanged()
}

func (i *roleItem) RemoveListener(dl binding.DataListener) {
	idx := slices.IndexFunc(i.listeners, func(x binding.DataListener) bool { return x == dl })
	if idx < 0 {
		return
	}
	i.listeners = slices.Delete(slices.Clone(i.listeners), idx, idx+1)
}

func (i *roleItem) changed() {
	for _, dl := range i.listeners {
		dl.DataChanged()
	}
}
