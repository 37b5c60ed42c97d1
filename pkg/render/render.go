// Package render owns the per-frame table of fragment records.
//
// A Renderer is single-writer: RenderFrame is the only method that replaces
// the table, and a table returned by Fragments is valid until the next
// RenderFrame. A Renderer must not be used from several goroutines at once.
package render

import (
	"time"

	"subhit/pkg/logger"
	"subhit/pkg/plaintext"
	"subhit/pkg/track"
)

// Change tells how a render pass changed the frame.
type Change int

const (
	Unchanged Change = iota
	Moved            // same content, different geometry
	Replaced
)

func (c Change) String() string {
	switch c {
	case Unchanged:
		return "unchanged"
	case Moved:
		return "moved"
	default:
		return "replaced"
	}
}

// Layouter positions the visible events of a frame. active lists the
// positions of the events to lay out, in track order. TextStart/TextEnd of
// the returned fragments index plaintext.StripTags(event.Text).
type Layouter interface {
	Layout(t *track.Track, active []int, timeMs int64) []Fragment
}

type LayouterFunc func(t *track.Track, active []int, timeMs int64) []Fragment

func (f LayouterFunc) Layout(t *track.Track, active []int, timeMs int64) []Fragment {
	return f(t, active, timeMs)
}

type Renderer struct {
	layouter   Layouter
	cacheText  bool
	track      *track.Track
	table      []Fragment
	tableTrack *track.Track
	tableRev   uint64
}

type Option func(*Renderer)

// WithPlainTextCache controls whether records carry their line's stripped
// text. It is on by default.
func WithPlainTextCache(on bool) Option {
	return func(r *Renderer) { r.cacheText = on }
}

func New(l Layouter, opts ...Option) *Renderer {
	r := &Renderer{layouter: l, cacheText: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetTrack attaches t. The record table is kept until the next render.
func (r *Renderer) SetTrack(t *track.Track) {
	r.track = t
}

func (r *Renderer) Track() *track.Track {
	if r == nil {
		return nil
	}
	return r.track
}

// RenderFrame lays out t at timeMs and replaces the record table.
func (r *Renderer) RenderFrame(t *track.Track, timeMs int64) Change {
	if r == nil {
		return Unchanged
	}
	active := t.Active(time.Duration(timeMs) * time.Millisecond)
	var table []Fragment
	if len(active) > 0 && r.layouter != nil {
		table = r.layouter.Layout(t, active, timeMs)
	}
	if r.cacheText {
		fillPlainText(table)
	} else {
		for i := range table {
			table[i].PlainText, table[i].SourceText, table[i].HasPlainText = "", "", false
		}
	}

	change := Replaced
	if sameContent(r.table, table) && r.tableTrack == t {
		change = Moved
		if sameGeometry(r.table, table) {
			change = Unchanged
		}
	}
	r.table = table
	r.tableTrack = t
	r.tableRev = t.Revision()

	logger.L().Debug("render: frame",
		"time_ms", timeMs, "active", len(active), "records", len(table), "change", change)
	return change
}

func fillPlainText(table []Fragment) {
	stripped := make(map[*track.Event]string)
	for i := range table {
		ev := table[i].Event
		if ev == nil {
			continue
		}
		text, ok := stripped[ev]
		if !ok {
			text = plaintext.StripTags(ev.Text)
			stripped[ev] = text
		}
		table[i].PlainText, table[i].SourceText, table[i].HasPlainText = text, ev.Text, true
	}
}

// Fragments returns the current record table. The slice belongs to the
// renderer and is replaced by the next RenderFrame.
func (r *Renderer) Fragments() []Fragment {
	if r == nil {
		return nil
	}
	return r.table
}

// Fresh reports whether the record table was rendered from the attached
// track in its current revision.
func (r *Renderer) Fresh() bool {
	if r == nil || r.track == nil {
		return false
	}
	return r.tableTrack == r.track && r.tableRev == r.track.Revision()
}
