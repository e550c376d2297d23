// Package viewport tracks the host width and reports whether it is narrow.
//
// Widths are logical pixels. Terminal hosts convert columns with a fixed
// cell width (DefaultCellWidth unless configured otherwise).
package viewport

import (
	"fmt"

	"golang.org/x/term"
)

const (
	// NarrowMaxWidth is the widest viewport still considered narrow.
	NarrowMaxWidth = 700
	// DefaultCellWidth is the logical pixel width of one terminal column.
	DefaultCellWidth = 8
)

// Signal is a live "is narrow viewport" flag.
type Signal interface {
	Narrow() bool
	// Subscribe registers fn to run every time the flag flips. The returned
	// func removes the subscription.
	Subscribe(fn func(narrow bool)) (cancel func())
}

// IsNarrow reports whether width is at or below the threshold. A zero or
// negative width means the size is unknown and counts as wide.
func IsNarrow(width int) bool {
	return width > 0 && width <= NarrowMaxWidth
}

// Watcher is a Signal driven by explicit resize calls.
type Watcher struct {
	cellWidth int
	width     int
	narrow    bool

	subs   map[int]func(bool)
	order  []int
	nextID int
}

// Option customises a Watcher.
type Option func(*Watcher)

// WithCellWidth sets the pixels-per-column used by ResizeColumns.
func WithCellWidth(px int) Option {
	return func(w *Watcher) {
		if px > 0 {
			w.cellWidth = px
		}
	}
}

// NewWatcher starts a watcher at the given width in logical pixels.
func NewWatcher(width int, opts ...Option) *Watcher {
	w := &Watcher{
		cellWidth: DefaultCellWidth,
		width:     width,
		narrow:    IsNarrow(width),
		subs:      map[int]func(bool){},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewColumnWatcher starts a watcher from a terminal column count.
func NewColumnWatcher(columns int, opts ...Option) *Watcher {
	w := NewWatcher(0, opts...)
	w.width = columns * w.cellWidth
	w.narrow = IsNarrow(w.width)
	return w
}

// Width returns the last known width in logical pixels.
func (w *Watcher) Width() int {
	return w.width
}

// Narrow implements Signal.
func (w *Watcher) Narrow() bool {
	return w.narrow
}

// Subscribe implements Signal.
func (w *Watcher) Subscribe(fn func(narrow bool)) func() {
	if fn == nil {
		return func() {}
	}
	id := w.nextID
	w.nextID++
	w.subs[id] = fn
	w.order = append(w.order, id)
	return func() {
		if _, ok := w.subs[id]; !ok {
			return
		}
		delete(w.subs, id)
		for i, v := range w.order {
			if v == id {
				w.order = append(w.order[:i], w.order[i+1:]...)
				break
			}
		}
	}
}

// Resize records a new width and notifies subscribers when the narrow flag
// flips. It reports whether a flip happened.
func (w *Watcher) Resize(width int) bool {
	w.width = width
	narrow := IsNarrow(width)
	if narrow == w.narrow {
		return false
	}
	w.narrow = narrow
	ids := make([]int, len(w.order))
	copy(ids, w.order)
	for _, id := range ids {
		if fn, ok := w.subs[id]; ok {
			fn(narrow)
		}
	}
	return true
}

// ResizeColumns is Resize for a terminal column count.
func (w *Watcher) ResizeColumns(columns int) bool {
	return w.Resize(columns * w.cellWidth)
}

// TerminalColumns returns the column count of the terminal behind fd.
func TerminalColumns(fd int) (int, error) {
	if !term.IsTerminal(fd) {
		return 0, fmt.Errorf("fd %d is not a terminal", fd)
	}
	cols, _, err := term.GetSize(fd)
	if err != nil {
		return 0, fmt.Errorf("get terminal size: %w", err)
	}
	return cols, nil
}
