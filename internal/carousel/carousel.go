// Package carousel does the index arithmetic of the rotating shelves on the home page.
package carousel

import (
	"context"
	"sync/atomic"
	"time"
)

// Window is a view of Show consecutive items out of Len, starting at Index.
type Window struct {
	Len   int `json:"len"`
	Show  int `json:"show"`
	Index int `json:"index"`
}

func New(length, show int) Window {
	if show < 1 {
		show = 1
	}

	return Window{Len: length, Show: show}
}

func (w Window) MaxIndex() int {
	return max(0, w.Len-w.Show)
}

// At moves the window to ix, clamped to the valid range
func (w Window) At(ix int) Window {
	w.Index = min(max(0, ix), w.MaxIndex())
	return w
}

func (w Window) Prev() Window {
	return w.At(w.Index - 1)
}

func (w Window) Next() Window {
	return w.At(w.Index + 1)
}

// Advance is one auto-scroll step: like Next, but wraps to the start after the last position
func (w Window) Advance() Window {
	if w.Index >= w.MaxIndex() {
		w.Index = 0
		return w
	}

	return w.Next()
}

// Bounds returns the half-open range of visible items
func (w Window) Bounds() (from, to int) {
	from = min(w.Index, w.Len)
	return from, min(from+w.Show, w.Len)
}

// ItemsToShow is the number of cards that fit a viewport of the given width in pixels
func ItemsToShow(width int) int {
	switch {
	case width < 640:
		return 1
	case width < 768:
		return 2
	case width < 1024:
		return 3
	default:
		return 4
	}
}

// Ticker auto-advances a shared position on a fixed interval.
type Ticker struct {
	Interval time.Duration

	pos atomic.Int64
}

// Run advances the position of a window of the given size until ctx is done
func (t *Ticker) Run(ctx context.Context, length, show int) {
	tick := time.NewTicker(t.Interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			w := New(length, show).At(int(t.pos.Load())).Advance()
			t.pos.Store(int64(w.Index))
		}
	}
}

func (t *Ticker) Position() int {
	return int(t.pos.Load())
}
