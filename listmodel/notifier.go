package listmodel

import "slices"

// Listener receives structural-change notifications from a model.
//
// Every mutation is bracketed: the begin callback runs while the list still
// has its pre-change contents and count, the end callback runs once the
// change is complete and the model is consistent again. Insert and remove
// name the affected rows; a reset carries no range and means "discard any
// cached row correspondence and re-query from scratch".
type Listener interface {
	// InsertBegin announces rows about to be inserted at rng.
	InsertBegin(rng Range)
	// InsertEnd announces that the insert completed.
	InsertEnd()
	// RemoveBegin announces rows about to be removed at rng.
	RemoveBegin(rng Range)
	// RemoveEnd announces that the removal completed.
	RemoveEnd()
	// ResetBegin announces that the entire model is about to change.
	ResetBegin()
	// ResetEnd announces that the reset completed.
	ResetEnd()
}

// CountListener receives the derived count signal, emitted after the end
// notification of any mutation that changed the number of rows.
type CountListener interface {
	CountChanged(count int)
}

// ListenerFuncs adapts plain callbacks to the Listener interface.
// Nil callbacks are skipped. Register the same *ListenerFuncs pointer you
// intend to remove later; listeners are matched by interface equality.
type ListenerFuncs struct {
	OnInsertBegin func(rng Range)
	OnInsertEnd   func()
	OnRemoveBegin func(rng Range)
	OnRemoveEnd   func()
	OnResetBegin  func()
	OnResetEnd    func()
}

func (f *ListenerFuncs) InsertBegin(rng Range) {
	if f.OnInsertBegin != nil {
		f.OnInsertBegin(rng)
	}
}

func (f *ListenerFuncs) InsertEnd() {
	if f.OnInsertEnd != nil {
		f.OnInsertEnd()
	}
}

func (f *ListenerFuncs) RemoveBegin(rng Range) {
	if f.OnRemoveBegin != nil {
		f.OnRemoveBegin(rng)
	}
}

func (f *ListenerFuncs) RemoveEnd() {
	if f.OnRemoveEnd != nil {
		f.OnRemoveEnd()
	}
}

func (f *ListenerFuncs) ResetBegin() {
	if f.OnResetBegin != nil {
		f.OnResetBegin()
	}
}

func (f *ListenerFuncs) ResetEnd() {
	if f.OnResetEnd != nil {
		f.OnResetEnd()
	}
}

type countListener struct {
	fn func(count int)
}

// NewCountListener wraps fn in a removable CountListener.
func NewCountListener(fn func(count int)) CountListener {
	return &countListener{fn: fn}
}

func (c *countListener) CountChanged(count int) {
	c.fn(count)
}

// Notifier holds a model's subscribers and publishes to them in
// registration order. The slices are copied on add/remove so a listener
// may unsubscribe itself (or others) from inside a callback without
// disturbing the emission in flight.
//
// Embedding a Notifier gives a model the listener-registration half of
// the Model interface. Only this package can publish through it, so a
// model that never mutates never notifies.
type Notifier struct {
	listeners      []Listener
	countListeners []CountListener
}

// AddListener subscribes l to structural-change notifications. Nil or
// already-subscribed listeners are ignored.
func (n *Notifier) AddListener(l Listener) {
	if l == nil || slices.ContainsFunc(n.listeners, func(x Listener) bool { return x == l }) {
		return
	}
	next := slices.Clone(n.listeners)
	n.listeners = append(next, l)
}

// RemoveListener unsubscribes l. Unknown listeners are ignored.
func (n *Notifier) RemoveListener(l Listener) {
	i := slices.IndexFunc(n.listeners, func(x Listener) bool { return x == l })
	if i < 0 {
		return
	}
	next := slices.Clone(n.listeners)
	n.listeners = slices.Delete(next, i, i+1)
}

// AddCountListener subscribes c to the row-count signal. Nil or
// already-subscribed listeners are ignored.
func (n *Notifier) AddCountListener(c CountListener) {
	if c == nil || slices.ContainsFunc(n.countListeners, func(x CountListener) bool { return x == c }) {
		return
	}
	next := slices.Clone(n.countListeners)
	n.countListeners = append(next, c)
}

// RemoveCountListener unsubscribes c. Unknown listeners are ignored.
func (n *Notifier) RemoveCountListener(c CountListener) {
	i := slices.IndexFunc(n.countListeners, func(x CountListener) bool { return x == c })
	if i < 0 {
		return
	}
	next := slices.Clone(n.countListeners)
	n.countListeners = slices.Delete(next, i, i+1)
}

func (n *Notifier) insertBegin(rng Range) {
	for _, l := range n.listeners {
		l.InsertBegin(rng)
	}
}

func (n *Notifier) insertEnd() {
	for _, l := range n.listeners {
		l.InsertEnd()
	}
}

func (n *Notifier) removeBegin(rng Range) {
	for _, l := range n.listeners {
		l.RemoveBegin(rng)
	}
}

func (n *Notifier) removeEnd() {
	for _, l := range n.listeners {
		l.RemoveEnd()
	}
}

func (n *Notifier) resetBegin() {
	for _, l := range n.listeners {
		l.ResetBegin()
	}
}

func (n *Notifier) resetEnd() {
	for _, l := range n.listeners {
		l.ResetEnd()
	}
}

func (n *Notifier) countChanged(count int) {
	for _, c := range n.countListeners {
		c.CountChanged(count)
	}
}
