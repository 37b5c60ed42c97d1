// Package hittest exposes what is on screen at a given time: one Box per
// rendered glyph cluster, with its geometry and the dialogue line and
// character range it came from, plus the plain text of any line.
//
// Geometry is in 26.6 fixed point (1/64 px). Containment tests are left to
// the caller.
package hittest

import (
	"golang.org/x/image/math/fixed"

	"subhit/pkg/plaintext"
	"subhit/pkg/render"
	"subhit/pkg/track"
)

// Unresolved is the LineID of a box whose dialogue line is no longer part of
// the track.
const Unresolved = -1

// Box is a self-contained copy of one fragment record. The field order is
// part of the public layout and must not change.
type Box struct {
	X fixed.Int26_6 `json:"x"`
	Y fixed.Int26_6 `json:"y"`
	W fixed.Int26_6 `json:"w"`
	H fixed.Int26_6 `json:"h"`

	TopLeft     fixed.Point26_6 `json:"top_left"`
	TopRight    fixed.Point26_6 `json:"top_right"`
	BottomLeft  fixed.Point26_6 `json:"bottom_left"`
	BottomRight fixed.Point26_6 `json:"bottom_right"`

	// LineID is the position of the owning line in the track, or Unresolved.
	LineID int `json:"line_id"`

	// CharStart and CharEnd delimit the characters [CharStart, CharEnd) of
	// the line's plain text covered by this box.
	CharStart int `json:"char_start_index"`
	CharEnd   int `json:"char_end_index"`
}

// Corners returns the quad in top-left, top-right, bottom-right,
// bottom-left order.
func (b Box) Corners() [4]fixed.Point26_6 {
	return [4]fixed.Point26_6{b.TopLeft, b.TopRight, b.BottomRight, b.BottomLeft}
}

// Renderer is the part of a renderer the overlay needs. *render.Renderer
// implements it.
type Renderer interface {
	Track() *track.Track
	RenderFrame(t *track.Track, timeMs int64) render.Change
	Fragments() []render.Fragment
	Fresh() bool
}

// ExportFragmentBoxes renders the attached track at timeMs and returns a
// copy of the resulting record table, in table order. It returns nil when r
// is nil, has no track, or nothing is visible.
//
// The render pass replaces r's record table, so r must not be used
// concurrently.
func ExportFragmentBoxes(r Renderer, timeMs int64) []Box {
	if r == nil {
		return nil
	}
	t := r.Track()
	if t == nil {
		return nil
	}
	r.RenderFrame(t, timeMs)

	table := r.Fragments()
	if len(table) == 0 {
		return nil
	}
	positions := t.Positions()
	boxes := make([]Box, len(table))
	for i := range table {
		boxes[i] = newBox(&table[i], positions)
	}
	return boxes
}

func newBox(f *render.Fragment, positions map[*track.Event]int) Box {
	b := Box{
		X:           f.BBox.Min.X,
		Y:           f.BBox.Min.Y,
		W:           f.BBox.Max.X - f.BBox.Min.X,
		H:           f.BBox.Max.Y - f.BBox.Min.Y,
		TopLeft:     f.Corners[render.TopLeft],
		TopRight:    f.Corners[render.TopRight],
		BottomRight: f.Corners[render.BottomRight],
		BottomLeft:  f.Corners[render.BottomLeft],
		LineID:      Unresolved,
		CharStart:   f.TextStart,
		CharEnd:     f.TextEnd,
	}
	if pos, ok := positions[f.Event]; ok && f.Event != nil {
		b.LineID = pos
	}
	return b
}

// ResolvePlaintext returns the text of line lineID with override blocks
// removed. It reports false when r has no track, lineID is out of range or
// the line has no text.
//
// The text is stripped from the track on demand, so lines that were not in
// the last rendered frame resolve too. A cached copy from the record table
// is used only while the table is fresh and the line's raw text is still the
// one the copy was stripped from.
func ResolvePlaintext(r Renderer, lineID int) (string, bool) {
	if r == nil {
		return "", false
	}
	ev, ok := r.Track().Event(lineID)
	if !ok {
		return "", false
	}
	if ev.Text == "" {
		return "", false
	}
	if r.Fresh() {
		if s, ok := cachedText(r.Fragments(), ev); ok {
			return s, true
		}
	}
	return plaintext.StripTags(ev.Text), true
}

// ResolveCachedPlaintext returns the plain text cached in the current record
// table for line lineID. Unlike ResolvePlaintext it reports false for lines
// that were not part of the last rendered frame, and for lines edited in
// place since then.
func ResolveCachedPlaintext(r Renderer, lineID int) (string, bool) {
	if r == nil {
		return "", false
	}
	ev, ok := r.Track().Event(lineID)
	if !ok {
		return "", false
	}
	return cachedText(r.Fragments(), ev)
}

func cachedText(table []render.Fragment, ev *track.Event) (string, bool) {
	for i := range table {
		if table[i].Event == ev && table[i].HasPlainText && table[i].SourceText == ev.Text {
			return table[i].PlainText, true
		}
	}
	return "", false
}

// FragmentText returns the characters of its line covered by b.
func FragmentText(r Renderer, b Box) (string, bool) {
	if b.LineID == Unresolved {
		return "", false
	}
	s, ok := ResolvePlaintext(r, b.LineID)
	if !ok {
		return "", false
	}
	return plaintext.Slice(s, b.CharStart, b.CharEnd), true
}
