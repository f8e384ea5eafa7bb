// Package tags implements the editing state behind a skills or interests
// field: an ordered, duplicate-free list of short text tags plus the
// in-progress input buffer.
package tags

import "strings"

// Key identifies the discrete editing actions the editor reacts to.
type Key int

const (
	KeyOther Key = iota
	KeyEnter
	KeyComma
	KeyBackspace
)

// Editor holds an ordered set of tags. Tags are trimmed and compared with
// exact, case-sensitive equality. The zero value is ready to use.
type Editor struct {
	values []string
	buffer string
}

// New returns an Editor pre-populated with initial, applying the same
// trimming and de-duplication rules as Add.
func New(initial ...string) *Editor {
	e := &Editor{}
	for _, v := range initial {
		e.Add(v)
	}
	return e
}

// Add trims raw and appends it unless it is empty or already present.
// It reports whether the tag was added.
func (e *Editor) Add(raw string) bool {
	v := strings.TrimSpace(raw)
	if v == "" || e.Contains(v) {
		return false
	}
	e.values = append(e.values, v)
	return true
}

// Contains reports whether tag is present (exact match).
func (e *Editor) Contains(tag string) bool {
	for _, v := range e.values {
		if v == tag {
			return true
		}
	}
	return false
}

// SetBuffer replaces the in-progress input text.
func (e *Editor) SetBuffer(s string) { e.buffer = s }

// Buffer returns the in-progress input text.
func (e *Editor) Buffer() string { return e.buffer }

// CommitFromInput adds the buffer as a tag and clears the buffer.
func (e *Editor) CommitFromInput() bool {
	added := e.Add(e.buffer)
	e.buffer = ""
	return added
}

// RemoveLast drops the final tag. No-op on an empty list.
func (e *Editor) RemoveLast() {
	if len(e.values) == 0 {
		return
	}
	e.values = e.values[:len(e.values)-1]
}

// RemoveAt drops the tag at index i. Out-of-range indexes are ignored.
func (e *Editor) RemoveAt(i int) {
	if i < 0 || i >= len(e.values) {
		return
	}
	e.values = append(e.values[:i:i], e.values[i+1:]...)
}

// HandleKey applies a key press. Enter and comma commit the buffer;
// Backspace removes the last tag only while the buffer is empty.
// It reports whether the key was consumed; unconsumed keys belong to
// whatever is editing the buffer text.
func (e *Editor) HandleKey(k Key) bool {
	switch k {
	case KeyEnter, KeyComma:
		e.CommitFromInput()
		return true
	case KeyBackspace:
		if e.buffer != "" {
			return false
		}
		e.RemoveLast()
		return true
	}
	return false
}

// Values returns a snapshot of the tags in insertion order. The returned
// slice is never nil and does not alias the editor's state.
func (e *Editor) Values() []string {
	out := make([]string, len(e.values))
	copy(out, e.values)
	return out
}

// Len returns the number of tags.
func (e *Editor) Len() int { return len(e.values) }

// Reset clears tags and buffer.
func (e *Editor) Reset() {
	e.values = nil
	e.buffer = ""
}
