package listmodel

import "errors"

// Common errors returned by the listmodel package.
var (
	// ErrInvalidRow is returned when a row index is out of range.
	ErrInvalidRow = errors.New("invalid row index")

	// ErrInvalidRole is returned when a role is not part of a model's
	// role table.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidPosition is returned when an insert position is outside
	// [0, RowCount()].
	ErrInvalidPosition = errors.New("invalid insert position")

	// ErrRoleNotFound is returned when a role name is not found in a
	// model's role table.
	ErrRoleNotFound = errors.New("role name not found")
)
