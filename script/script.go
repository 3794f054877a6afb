// Package script defines the boundary between canopy and an embedded
// scripting VM.
//
// Widgets never hold VM-specific values. They store a [Callback] (an opaque
// function handle) and an [Object] (the script-side wrapper bound as the
// single callback argument). A [Host] resolves both when the event router
// fires an event, and frees the wrapper when the widget is destroyed.
//
// [Table] is a Host backed by plain Go functions. It is what tests and
// pure-Go games use; a VM binding implements Host on top of its own handle
// side-tables.
package script

import "sync"

// Callback is an opaque handle to a script function. Zero means "no callback".
type Callback uint32

// Object is an opaque handle to the script-side object bound to a widget.
// Zero means "no object".
type Object uint32

// Host resolves handles into VM calls.
type Host interface {
	// Invoke runs cb to completion with obj as its only argument.
	Invoke(cb Callback, obj Object)
	// Release frees the script-side object. Called once, when the widget
	// owning obj is destroyed.
	Release(obj Object)
}

// Func is a Go function registered as a script callback.
type Func func(obj Object)

// Table is a Host whose callbacks are Go functions and whose objects are
// arbitrary Go values. Registration is safe for concurrent use; invocation
// happens on the UI goroutine.
type Table struct {
	mu      sync.RWMutex
	funcs   []Func
	objects map[Object]any
	nextObj Object
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{
		funcs:   []Func{nil}, // handle 0 is reserved
		objects: make(map[Object]any),
	}
}

// Register stores fn and returns its handle.
func (t *Table) Register(fn Func) Callback {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.funcs = append(t.funcs, fn)
	return Callback(len(t.funcs) - 1)
}

// Bind stores v as a script object and returns its handle.
func (t *Table) Bind(v any) Object {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextObj++
	t.objects[t.nextObj] = v
	return t.nextObj
}

// Value returns the Go value bound to obj.
func (t *Table) Value(obj Object) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.objects[obj]
	return v, ok
}

// Len returns the number of live objects.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.objects)
}

// Invoke implements Host. Unknown handles are ignored.
func (t *Table) Invoke(cb Callback, obj Object) {
	t.mu.RLock()
	var fn Func
	if int(cb) < len(t.funcs) {
		fn = t.funcs[cb]
	}
	t.mu.RUnlock()
	if fn != nil {
		fn(obj)
	}
}

// Release implements Host.
func (t *Table) Release(obj Object) {
	t.mu.Lock()
	delete(t.objects, obj)
	t.mu.Unlock()
}

// Nop is a Host that ignores every call.
type Nop struct{}

func (Nop) Invoke(Callback, Object) {}
func (Nop) Release(Object)          {}
