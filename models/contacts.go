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

// Package models holds the application's concrete record-list models.
// Each model fixes a record shape, a role table and the mutators it is
// willing to expose on top of the generic listmodel machinery.
package models

import "rolo/listmodel"

// Contact is one row of the contact book.
type Contact struct {
	Name  string
	Phone string
	Email string
}

// Contact roles, as published through RoleNames.
const (
	NameRole listmodel.Role = iota
	PhoneRole
	EmailRole
)

// ContactModel is the observable contact book. It exposes the full
// mutator surface of the underlying list plus contact-shaped helpers
// for the UI layer.
type ContactModel struct {
	*listmodel.List[Contact]
}

var _ listmodel.Model = (*ContactModel)(nil)

// NewContactModel returns an empty contact book.
func NewContactModel() *ContactModel {
	return &ContactModel{
		List: listmodel.NewList(listmodel.RoleTable{
			NameRole:  "name",
			PhoneRole: "phone",
			EmailRole: "email",
		}, contactValue),
	}
}

func contactValue(c Contact, role listmodel.Role) listmodel.Value {
	switch role {
	case PhoneRole:
		return listmodel.NewValue(c.Phone, listmodel.TypeString)
	case EmailRole:
		return listmodel.NewValue(c.Email, listmodel.TypeString)
	default:
		return listmodel.NewValue(c.Name, listmodel.TypeString)
	}
}

// AddContact appends a contact built from the three field values.
func (m *ContactModel) AddContact(name, phone, email string) {
	m.Append(Contact{Name: name, Phone: phone, Email: email})
}

// RemoveContact deletes the contact at row, ignoring out-of-range rows.
func (m *ContactModel) RemoveContact(row int) {
	m.Remove(row)
}
