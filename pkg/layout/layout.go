// Package layout is a small subtitle layout engine. It places the stripped
// text of every visible event with a single OpenType face and emits one
// fragment record per grapheme cluster.
//
// Supported override tags: \pos(x,y), \an1 to \an9, \frz and \fr. Everything
// else is ignored.
package layout

import (
	"fmt"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"subhit/pkg/config"
	"subhit/pkg/logger"
	"subhit/pkg/plaintext"
	"subhit/pkg/render"
	"subhit/pkg/track"
)

type Engine struct {
	cfg     config.Config
	face    font.Face
	metrics font.Metrics
}

// New loads the configured face, or Go Regular when cfg.FontPath is empty.
func New(cfg config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	data := goregular.TTF
	if cfg.FontPath != "" {
		b, err := os.ReadFile(cfg.FontPath)
		if err != nil {
			return nil, fmt.Errorf("layout: read font: %w", err)
		}
		data = b
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("layout: parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    cfg.FontSize,
		DPI:     72, // one point per pixel
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("layout: face: %w", err)
	}
	return &Engine{cfg: cfg, face: face, metrics: face.Metrics()}, nil
}

func (e *Engine) Close() error {
	return e.face.Close()
}

// Face exposes the face used for measuring, for callers that draw the text.
func (e *Engine) Face() font.Face {
	return e.face
}

func (e *Engine) Config() config.Config {
	return e.cfg
}

func (e *Engine) lineHeight() fixed.Int26_6 {
	h := max(e.metrics.Height, e.metrics.Ascent+e.metrics.Descent)
	return scale(h, e.cfg.LineSpacing)
}

// Layout implements render.Layouter.
func (e *Engine) Layout(t *track.Track, active []int, timeMs int64) []render.Fragment {
	var out []render.Fragment
	stacked := map[int]fixed.Int26_6{}
	for _, p := range active {
		ev, ok := t.Event(p)
		if !ok {
			continue
		}
		n := len(out)
		out = e.layoutEvent(out, ev, stacked)
		logger.L().Debug("layout: event", "line", p, "fragments", len(out)-n)
	}
	return out
}

type line struct {
	clusters []cluster
	advances []fixed.Int26_6
	width    fixed.Int26_6
}

func (e *Engine) measure(cs []cluster) line {
	l := line{clusters: cs, advances: make([]fixed.Int26_6, len(cs))}
	prev := rune(-1)
	for i, c := range cs {
		var adv fixed.Int26_6
		for _, r := range c.text {
			if prev >= 0 {
				adv += e.face.Kern(prev, r)
			}
			a, _ := e.face.GlyphAdvance(r)
			adv += a
			prev = r
		}
		l.advances[i] = adv
		l.width += adv
	}
	return l
}

func (e *Engine) layoutEvent(out []render.Fragment, ev *track.Event, stacked map[int]fixed.Int26_6) []render.Fragment {
	pl := parsePlacement(ev.Text)
	rows := splitLines(plaintext.StripTags(ev.Text))

	lines := make([]line, len(rows))
	for i, cs := range rows {
		lines[i] = e.measure(cs)
	}
	lh := e.lineHeight()
	blockH := lh * fixed.Int26_6(len(lines))

	col, row := (pl.align-1)%3, (pl.align-1)/3
	anchor := e.defaultAnchor(col, row)
	if pl.pos != nil {
		anchor = *pl.pos
	} else {
		switch row {
		case 0:
			anchor.Y -= stacked[pl.align]
		default:
			anchor.Y += stacked[pl.align]
		}
		stacked[pl.align] += blockH
	}

	var top fixed.Int26_6
	switch row {
	case 0:
		top = anchor.Y - blockH
	case 1:
		top = anchor.Y - blockH/2
	default:
		top = anchor.Y
	}

	rot := newRotation(pl.angle, anchor)
	for i, l := range lines {
		lineTop := top + lh*fixed.Int26_6(i)
		bottom := lineTop + e.metrics.Ascent + e.metrics.Descent
		var pen fixed.Int26_6
		switch col {
		case 0:
			pen = anchor.X
		case 1:
			pen = anchor.X - l.width/2
		default:
			pen = anchor.X - l.width
		}
		for j, c := range l.clusters {
			x0, x1 := pen, pen+l.advances[j]
			pen = x1
			if c.blank {
				continue
			}
			f := render.Fragment{
				Corners: [4]fixed.Point26_6{
					rot.apply(fixed.Point26_6{X: x0, Y: lineTop}),
					rot.apply(fixed.Point26_6{X: x1, Y: lineTop}),
					rot.apply(fixed.Point26_6{X: x1, Y: bottom}),
					rot.apply(fixed.Point26_6{X: x0, Y: bottom}),
				},
				Event:     ev,
				TextStart: c.start,
				TextEnd:   c.end,
			}
			f.BBox = f.Bounds()
			out = append(out, f)
		}
	}
	return out
}

// defaultAnchor is the alignment point of the frame inside the margins.
func (e *Engine) defaultAnchor(col, row int) fixed.Point26_6 {
	var p fixed.Point26_6
	switch col {
	case 0:
		p.X = fixed.I(e.cfg.MarginL)
	case 1:
		p.X = fixed.I(e.cfg.Width) / 2
	default:
		p.X = fixed.I(e.cfg.Width - e.cfg.MarginR)
	}
	switch row {
	case 0:
		p.Y = fixed.I(e.cfg.Height - e.cfg.MarginV)
	case 1:
		p.Y = fixed.I(e.cfg.Height) / 2
	default:
		p.Y = fixed.I(e.cfg.MarginV)
	}
	return p
}

type rotation struct {
	sin, cos float64
	origin   fixed.Point26_6
	identity bool
}

// newRotation rotates counter-clockwise on screen by deg degrees about origin.
func newRotation(deg float64, origin fixed.Point26_6) rotation {
	if math.Mod(deg, 360) == 0 {
		return rotation{identity: true}
	}
	s, c := math.Sincos(deg * math.Pi / 180)
	return rotation{sin: s, cos: c, origin: origin}
}

func (r rotation) apply(p fixed.Point26_6) fixed.Point26_6 {
	if r.identity {
		return p
	}
	dx := float64(p.X - r.origin.X)
	dy := float64(p.Y - r.origin.Y)
	return fixed.Point26_6{
		X: r.origin.X + fixed.Int26_6(math.Round(dx*r.cos+dy*r.sin)),
		Y: r.origin.Y + fixed.Int26_6(math.Round(-dx*r.sin+dy*r.cos)),
	}
}

func scale(v fixed.Int26_6, k float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(float64(v) * k))
}

func toFixed(px float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(px * 64))
}
