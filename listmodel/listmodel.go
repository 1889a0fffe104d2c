package listmodel

// Model provides role-addressed access to an ordered list of records,
// plus the notification surface a view layer subscribes to.
// All read methods must return errors rather than panic.
//
// A model is owned by a single goroutine; views and mutators share that
// goroutine (for Fyne, the event loop). See List for the reentrancy rules
// during a structural change.
type Model interface {
	// RowCount returns the number of records currently held.
	// It never fails and is valid at any time: 0 immediately after
	// construction, the pre-change count inside a listener's begin
	// callback, and the post-change count inside its end callback.
	RowCount() int

	// Value returns the field of the record at row identified by role.
	// Returns ErrInvalidRow if row is out of range.
	// Returns ErrInvalidRole if the model does not recognize role.
	// Lookup cost must not grow with the list length beyond O(log n);
	// views call this once per visible field per visible row.
	Value(row int, role Role) (Value, error)

	// RoleNames returns the complete role -> field-name table for this
	// model's record shape. The table is a pure function of the model
	// type, stable for the model's lifetime, and queried once by the
	// view layer at attachment.
	RoleNames() RoleTable

	// AddListener subscribes l to structural-change notifications.
	AddListener(l Listener)

	// RemoveListener unsubscribes a previously added listener.
	// Listeners are identified by interface equality.
	RemoveListener(l Listener)

	// AddCountListener subscribes c to the derived count-changed signal.
	// Count consumers need not subscribe to structural events.
	AddCountListener(c CountListener)

	// RemoveCountListener unsubscribes a previously added count listener.
	RemoveCountListener(c CountListener)
}
