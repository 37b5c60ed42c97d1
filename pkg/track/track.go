// Package track holds the ordered dialogue events of a subtitle file.
//
// An event's identity is its position in the track. Events are referenced
// by pointer from render records; Index maps such a pointer back to its
// current position, or -1 once the event has been removed.
package track

import (
	"time"
)

// Event is one dialogue line. Text is the raw markup, override blocks and
// \N escapes included.
type Event struct {
	Start time.Duration
	End   time.Duration
	Style string
	Name  string
	Text  string
}

// Visible reports whether the event is on screen at t.
func (e *Event) Visible(t time.Duration) bool {
	return e.Start <= t && t < e.End
}

type Track struct {
	events   []*Event
	revision uint64
}

// New builds a track from events in display order. The events are copied.
func New(events ...Event) *Track {
	t := &Track{events: make([]*Event, 0, len(events))}
	for i := range events {
		e := events[i]
		t.events = append(t.events, &e)
	}
	return t
}

func (t *Track) Len() int {
	if t == nil {
		return 0
	}
	return len(t.events)
}

// Event returns the event at position i.
func (t *Track) Event(i int) (*Event, bool) {
	if t == nil || i < 0 || i >= len(t.events) {
		return nil, false
	}
	return t.events[i], true
}

// Index returns the position of e in the track, or -1.
func (t *Track) Index(e *Event) int {
	if t == nil || e == nil {
		return -1
	}
	for i, ev := range t.events {
		if ev == e {
			return i
		}
	}
	return -1
}

// Positions maps every event of the track to its position.
func (t *Track) Positions() map[*Event]int {
	m := make(map[*Event]int, t.Len())
	if t == nil {
		return m
	}
	for i, ev := range t.events {
		m[ev] = i
	}
	return m
}

// Active returns the positions of the events visible at ts, in track order.
func (t *Track) Active(ts time.Duration) []int {
	if t == nil {
		return nil
	}
	var out []int
	for i, ev := range t.events {
		if ev.Visible(ts) {
			out = append(out, i)
		}
	}
	return out
}

// Revision changes every time the event sequence is modified.
func (t *Track) Revision() uint64 {
	if t == nil {
		return 0
	}
	return t.revision
}

// Append adds an event at the end and returns its position.
func (t *Track) Append(e Event) int {
	t.events = append(t.events, &e)
	t.revision++
	return len(t.events) - 1
}

// Remove deletes the event at position i. Later events shift down by one and
// pointers to the removed event no longer resolve.
func (t *Track) Remove(i int) bool {
	if i < 0 || i >= len(t.events) {
		return false
	}
	t.events = append(t.events[:i:i], t.events[i+1:]...)
	t.revision++
	return true
}
