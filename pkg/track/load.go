package track

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/asticode/go-astisub"

	"subhit/pkg/charset"
	"subhit/pkg/logger"
	"subhit/pkg/subtype"
	"subhit/pkg/unpack"
)

var (
	ErrUnknownFormat = errors.New("track: unknown subtitle format")
	ErrNoSubtitle    = errors.New("track: no subtitle found")

	errFound = errors.New("found")
)

// Parse decodes a subtitle file. The format comes from the extension of name
// and falls back to sniffing the content.
func Parse(data []byte, name string) (*Track, error) {
	data, err := charset.ToUTF8(data)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrNoSubtitle, name)
	}

	format := subtype.FromName(name)
	s, err := read(data, format)
	if err != nil || s == nil || len(s.Items) == 0 {
		if guessed := subtype.Guess(string(data)); guessed != subtype.Unknown && guessed != format {
			s, err = read(data, guessed)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("track: parse %s: %w", name, err)
	}
	if s == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
	return FromSubtitles(s), nil
}

func read(data []byte, format subtype.Format) (*astisub.Subtitles, error) {
	switch format {
	case subtype.ASS, subtype.SSA:
		// a common typo in colour fields
		data = bytes.Replace(data, []byte(",&H00H202020,"), []byte(",&H00202020,"), 1)
		return astisub.ReadFromSSA(bytes.NewReader(data))
	case subtype.SRT:
		return astisub.ReadFromSRT(bytes.NewReader(data))
	case subtype.VTT:
		return astisub.ReadFromWebVTT(bytes.NewReader(data))
	}
	return nil, nil
}

// FromSubtitles converts parsed subtitles into a track, rebuilding the raw
// markup of every item.
func FromSubtitles(s *astisub.Subtitles) *Track {
	t := &Track{events: make([]*Event, 0, len(s.Items))}
	for _, item := range s.Items {
		e := &Event{
			Start: item.StartAt,
			End:   item.EndAt,
			Text:  rawText(item),
		}
		if item.Style != nil {
			e.Style = item.Style.ID
		}
		if len(item.Lines) > 0 {
			e.Name = item.Lines[0].VoiceName
		}
		t.events = append(t.events, e)
	}
	return t
}

func rawText(item *astisub.Item) string {
	lines := make([]string, 0, len(item.Lines))
	for _, line := range item.Lines {
		var b strings.Builder
		for _, li := range line.Items {
			if li.InlineStyle != nil && li.InlineStyle.SSAEffect != "" {
				effect := li.InlineStyle.SSAEffect
				if !strings.HasPrefix(effect, "{") {
					effect = "{" + effect + "}"
				}
				b.WriteString(effect)
			}
			b.WriteString(li.Text)
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, `\N`)
}

// Load reads the subtitle at path. Archives are searched and the first
// member that parses as a subtitle is used.
func Load(ctx context.Context, path string) (*Track, error) {
	var found *Track
	err := unpack.Walk(ctx, path, func(r io.Reader, info fs.FileInfo) error {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		t, err := Parse(data, info.Name())
		if err != nil {
			logger.L().Warn("track: skipping file", "name", info.Name(), "err", err)
			return nil
		}
		if t.Len() == 0 {
			logger.L().Warn("track: skipping empty subtitle", "name", info.Name())
			return nil
		}
		found = t
		return errFound
	})
	if found != nil {
		return found, nil
	}
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w in %s", ErrNoSubtitle, path)
}
