// Package subtitle summarises the spoken content of a track.
package subtitle

import (
	"strings"

	"github.com/abadojack/whatlanggo"

	"subhit/pkg/plaintext"
	"subhit/pkg/track"
)

type Summary struct {
	Lines     int            // events with visible text
	Languages map[string]int // events per language of their first visual line
	Dominant  string         // most frequent language
	Bilingual bool           // most events carry two lines in different languages
}

// VisualLines returns the non-empty lines of an event's stripped text.
func VisualLines(raw string) []string {
	l := plaintext.StripTags(raw)
	l = strings.ReplaceAll(l, `\n`, `\N`)
	var lines []string
	for _, line := range strings.Split(l, `\N`) {
		line = strings.TrimSpace(strings.ReplaceAll(line, `\h`, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Language names the language of text, or "" when it cannot be told.
func Language(text string) string {
	info := whatlanggo.Detect(text)
	if info.Lang == -1 {
		return ""
	}
	return info.Lang.String()
}

// Analyze detects the languages used by the events of t. Styles holding
// less than two thirds of the events of the busiest style are ignored when
// deciding whether the track is bilingual, as they are usually signs or
// karaoke.
func Analyze(t *track.Track) Summary {
	perStyle := make(map[string]*struct {
		countItems    int // events with text
		countAllLines int // visual lines of those events
		countMixed    int // events whose first two lines differ in language
	})
	sum := Summary{Languages: map[string]int{}}
	for i := 0; i < t.Len(); i++ {
		ev, _ := t.Event(i)
		lines := VisualLines(ev.Text)
		if len(lines) == 0 {
			continue
		}
		sum.Lines++

		style := ev.Style
		if perStyle[style] == nil {
			perStyle[style] = &struct {
				countItems    int
				countAllLines int
				countMixed    int
			}{}
		}
		p := perStyle[style]
		p.countItems++
		p.countAllLines += len(lines)

		first := whatlanggo.Detect(lines[0]).Lang
		if first != -1 {
			sum.Languages[first.String()]++
		}
		if len(lines) > 1 {
			second := whatlanggo.Detect(lines[1]).Lang
			if first != second && first != -1 && second != -1 {
				p.countMixed++
			}
		}
	}

	mostItems := 0
	for _, p := range perStyle {
		mostItems = max(mostItems, p.countItems)
	}
	for _, p := range perStyle {
		if p.countItems*3 < mostItems*2 {
			continue
		}
		if p.countItems*3 < p.countAllLines*2 && p.countItems/2 < p.countMixed {
			sum.Bilingual = true
		}
	}

	best := 0
	for lang, n := range sum.Languages {
		if n > best || n == best && lang < sum.Dominant {
			best, sum.Dominant = n, lang
		}
	}
	return sum
}
