package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"subhit/pkg/config"
	"subhit/pkg/hittest"
	"subhit/pkg/layout"
	"subhit/pkg/logger"
	"subhit/pkg/preview"
	"subhit/pkg/render"
	"subhit/pkg/subtitle"
	"subhit/pkg/track"
)

var errNoText = errors.New("line has no text")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errNoText) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		log.Fatalf("subhit: %v", err)
	}
}

type options struct {
	in       string
	config   string
	at       time.Duration
	ms       int64
	line     int
	lines    bool
	png      string
	width    int
	height   int
	fontSize float64
	verbose  bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("subhit", flag.ContinueOnError)
	fs.StringVar(&o.in, "in", "", "subtitle file or archive")
	fs.StringVar(&o.config, "config", "", "render config JSON")
	fs.DurationVar(&o.at, "t", 0, "playback time, e.g. 1m2.5s")
	fs.Int64Var(&o.ms, "ms", -1, "playback time in milliseconds, overrides -t")
	fs.IntVar(&o.line, "line", -1, "print the plain text of this line")
	fs.BoolVar(&o.lines, "lines", false, "print every line with its language")
	fs.StringVar(&o.png, "png", "", "write a preview of the frame to this PNG")
	fs.IntVar(&o.width, "w", 0, "frame width")
	fs.IntVar(&o.height, "h", 0, "frame height")
	fs.Float64Var(&o.fontSize, "size", 0, "font size in pixels")
	fs.BoolVar(&o.verbose, "v", false, "debug logging to stderr")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.in == "" {
		return o, errors.New("-in is required")
	}
	return o, nil
}

func (o options) timeMs() int64 {
	if o.ms >= 0 {
		return o.ms
	}
	return o.at.Milliseconds()
}

func loadConfig(o options) (config.Config, error) {
	cfg := config.Defaults()
	if o.config != "" {
		file, err := config.LoadJSON(o.config, nil)
		if err != nil {
			return cfg, err
		}
		cfg = config.Merge(cfg, file)
	}
	cfg = config.Merge(cfg, config.Config{Width: o.width, Height: o.height, FontSize: o.fontSize})
	return cfg, cfg.Validate()
}

// run loads the track and prints what was asked for.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}
	if o.verbose {
		logger.Set(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	tr, err := track.Load(ctx, o.in)
	if err != nil {
		return err
	}
	engine, err := layout.New(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()
	r := render.New(engine, render.WithPlainTextCache(cfg.PlainTextCache()))
	r.SetTrack(tr)

	switch {
	case o.line >= 0:
		s, ok := hittest.ResolvePlaintext(r, o.line)
		if !ok {
			return fmt.Errorf("%w: %d", errNoText, o.line)
		}
		_, err = fmt.Fprintln(stdout, s)
		return err
	case o.lines:
		return printLines(stdout, r)
	}
	return printBoxes(stdout, r, o, cfg)
}

type lineOut struct {
	ID       int    `json:"line_id"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

func printLines(w io.Writer, r *render.Renderer) error {
	tr := r.Track()
	out := struct {
		Summary subtitle.Summary `json:"summary"`
		Lines   []lineOut        `json:"lines"`
	}{Summary: subtitle.Analyze(tr)}
	for i := 0; i < tr.Len(); i++ {
		ev, _ := tr.Event(i)
		l := lineOut{ID: i, Start: ev.Start.String(), End: ev.End.String()}
		if s, ok := hittest.ResolvePlaintext(r, i); ok {
			l.Text = s
			l.Language = subtitle.Language(s)
		}
		out.Lines = append(out.Lines, l)
	}
	return writeJSON(w, out)
}

type boxOut struct {
	hittest.Box
	Text string `json:"text"`
}

func printBoxes(w io.Writer, r *render.Renderer, o options, cfg config.Config) error {
	boxes := hittest.ExportFragmentBoxes(r, o.timeMs())
	out := make([]boxOut, 0, len(boxes))
	for _, b := range boxes {
		text, _ := hittest.FragmentText(r, b)
		out = append(out, boxOut{Box: b, Text: text})
	}
	if o.png != "" {
		f, err := os.Create(o.png)
		if err != nil {
			return err
		}
		if err := preview.WritePNG(f, boxes, cfg.Width, cfg.Height); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
