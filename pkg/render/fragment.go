package render

import (
	"golang.org/x/image/math/fixed"

	"subhit/pkg/track"
)

// Corner indexes Fragment.Corners.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomRight
	BottomLeft
)

// Fragment is one rendered glyph cluster of the current frame. Geometry is
// in 26.6 fixed point screen coordinates.
type Fragment struct {
	BBox    fixed.Rectangle26_6
	Corners [4]fixed.Point26_6

	// Event is the owning dialogue line.
	Event *track.Event

	// TextStart and TextEnd are the character range [TextStart, TextEnd) of
	// the fragment in the stripped text of Event.
	TextStart int
	TextEnd   int

	// PlainText is the stripped text of Event, when HasPlainText is set.
	// SourceText is the raw Event.Text it was stripped from.
	PlainText    string
	SourceText   string
	HasPlainText bool
}

// Bounds recomputes BBox from the corners.
func (f *Fragment) Bounds() fixed.Rectangle26_6 {
	r := fixed.Rectangle26_6{Min: f.Corners[0], Max: f.Corners[0]}
	for _, p := range f.Corners[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	return r
}

// sameContent reports whether a and b show the same characters of the same
// lines in the same order.
func sameContent(a, b []Fragment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Event != b[i].Event || a[i].TextStart != b[i].TextStart || a[i].TextEnd != b[i].TextEnd {
			return false
		}
	}
	return true
}

func sameGeometry(a, b []Fragment) bool {
	for i := range a {
		if a[i].BBox != b[i].BBox || a[i].Corners != b[i].Corners {
			return false
		}
	}
	return true
}
