package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/image/math/fixed"

	"subhit/pkg/logger"
	"subhit/pkg/override"
	"subhit/pkg/plaintext"
)

// cluster is one grapheme cluster of stripped text. start and end are
// character indices in the stripped text.
type cluster struct {
	text       string
	start, end int
	blank      bool
}

// splitLines cuts stripped text into visual lines at \N and \n, and turns
// \h into a hard space. Ranges are taken from byte offsets in plain through
// the same character walk plaintext uses, so escapes keep their two
// characters and malformed sequences never push a range past the end.
func splitLines(plain string) [][]cluster {
	starts := charStarts(plain)
	index := func(off int) int { return sort.SearchInts(starts, off) }

	lines := [][]cluster{nil}
	add := func(c cluster) {
		cur := len(lines) - 1
		if c.start == c.end {
			// A byte swallowed by the previous character's sequence.
			if n := len(lines[cur]); n > 0 {
				lines[cur][n-1].text += c.text
				lines[cur][n-1].blank = lines[cur][n-1].blank && c.blank
			}
			return
		}
		lines[cur] = append(lines[cur], c)
	}
	seg := 0
	flush := func(end int) {
		off := seg
		g := uniseg.NewGraphemes(plain[seg:end])
		for g.Next() {
			s := g.Str()
			add(cluster{
				text:  s,
				start: index(off),
				end:   index(off + len(s)),
				blank: strings.TrimSpace(s) == "",
			})
			off += len(s)
		}
	}
	for i := 0; i < len(plain); {
		if plain[i] == '\\' && i+1 < len(plain) {
			switch plain[i+1] {
			case 'N', 'n':
				flush(i)
				lines = append(lines, nil)
				i += 2
				seg = i
				continue
			case 'h':
				flush(i)
				add(cluster{text: " ", start: index(i), end: index(i + 2), blank: true})
				i += 2
				seg = i
				continue
			}
		}
		i++
	}
	flush(len(plain))
	return lines
}

// charStarts lists the byte offset of every character of s.
func charStarts(s string) []int {
	var starts []int
	for off := 0; off < len(s); off += plaintext.CharLength(s[off]) {
		starts = append(starts, off)
	}
	return starts
}

type placement struct {
	pos   *fixed.Point26_6
	align int
	angle float64
}

// parsePlacement collects positioning tags from the override blocks of raw.
// The first \pos and \an win, the last rotation wins.
func parsePlacement(raw string) placement {
	pl := placement{align: 2}
	alignSet := false
	for _, content := range plaintext.Blocks(raw) {
		b, err := override.Parse(content)
		if err != nil {
			logger.L().Debug("layout: ignoring override block", "block", content, "err", err)
			continue
		}
		for _, tag := range b.Tags {
			v, ok := tag.Floats()
			if !ok {
				continue
			}
			switch tag.Name {
			case "pos":
				if pl.pos == nil && len(v) == 2 {
					pl.pos = &fixed.Point26_6{X: toFixed(v[0]), Y: toFixed(v[1])}
				}
			case "an":
				if !alignSet && len(v) == 1 && v[0] >= 1 && v[0] <= 9 && v[0] == math.Trunc(v[0]) {
					pl.align = int(v[0])
					alignSet = true
				}
			case "frz", "fr":
				if len(v) == 1 {
					pl.angle = v[0]
				}
			}
		}
	}
	return pl
}
