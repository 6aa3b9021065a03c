// Package viewer holds the navigation state for the full-screen gallery and
// attachment viewer: one item shown at a time, cyclic next/previous, direct
// jumps, and key/swipe input translation. It is read-only with respect to the
// collections it displays.
package viewer

import "errors"

var (
	ErrNoItems         = errors.New("no_items")
	ErrIndexOutOfRange = errors.New("index_out_of_range")
	ErrClosed          = errors.New("viewer_closed")
)

// SwipeThreshold is the minimum horizontal drag, in pixels, that counts as a
// swipe; smaller drags are ignored.
const SwipeThreshold = 50

// ScrollLock suspends page-level scrolling while the viewer is open.
// Release is guaranteed on every exit path.
type ScrollLock interface {
	Suspend()
	Restore()
}

type nopScrollLock struct{}

func (nopScrollLock) Suspend() {}
func (nopScrollLock) Restore() {}

type Item struct {
	ID      string
	URL     string
	AltText string
}

type Viewer struct {
	items  []Item
	index  int
	open   bool
	scroll ScrollLock
}

// Open creates a viewer over items starting at startIndex and suspends
// page scroll. A nil scroll lock is allowed.
func Open(items []Item, startIndex int, scroll ScrollLock) (*Viewer, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if startIndex < 0 || startIndex >= len(items) {
		return nil, ErrIndexOutOfRange
	}
	if scroll == nil {
		scroll = nopScrollLock{}
	}
	v := &Viewer{items: items, index: startIndex, open: true, scroll: scroll}
	v.scroll.Suspend()
	return v, nil
}

// Close restores page scroll. Closing an already-closed viewer is a no-op,
// so scroll is restored exactly once no matter how the viewer exits.
func (v *Viewer) Close() {
	if !v.open {
		return
	}
	v.open = false
	v.scroll.Restore()
}

func (v *Viewer) IsOpen() bool { return v.open }

func (v *Viewer) Index() int { return v.index }

func (v *Viewer) Current() Item { return v.items[v.index] }

func (v *Viewer) Len() int { return len(v.items) }

// Next advances with wraparound: the last item leads back to the first.
func (v *Viewer) Next() error {
	if !v.open {
		return ErrClosed
	}
	v.index = (v.index + 1) % len(v.items)
	return nil
}

// Previous steps back with wraparound: the first item leads to the last.
func (v *Viewer) Previous() error {
	if !v.open {
		return ErrClosed
	}
	v.index = (v.index - 1 + len(v.items)) % len(v.items)
	return nil
}

// JumpTo moves directly to index i. Out-of-range jumps are rejected and the
// current position is unchanged.
func (v *Viewer) JumpTo(i int) error {
	if !v.open {
		return ErrClosed
	}
	if i < 0 || i >= len(v.items) {
		return ErrIndexOutOfRange
	}
	v.index = i
	return nil
}

// HandleKey translates a keyboard event. Bindings are active only while the
// viewer is open: Escape closes, ArrowLeft/ArrowRight navigate. Other keys
// are ignored.
func (v *Viewer) HandleKey(key string) {
	if !v.open {
		return
	}
	switch key {
	case "Escape":
		v.Close()
	case "ArrowLeft":
		_ = v.Previous()
	case "ArrowRight":
		_ = v.Next()
	}
}

// HandleSwipe translates a horizontal drag from startX to endX. A drag to the
// left past the threshold advances, to the right goes back; shorter drags do
// nothing.
func (v *Viewer) HandleSwipe(startX, endX float64) {
	if !v.open {
		return
	}
	distance := startX - endX
	switch {
	case distance > SwipeThreshold:
		_ = v.Next()
	case distance < -SwipeThreshold:
		_ = v.Previous()
	}
}
