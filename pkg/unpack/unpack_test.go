package unpack

import (
	"archive/tar"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeTar(t *testing.T, files map[string]string, order []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "subs.tar")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	tw := tar.NewWriter(f)
	for _, name := range order {
		body := files[name]
		hdr := &tar.Header{Name: name, Mode: 0o644, Size: int64(len(body)), Typeflag: tar.TypeReg}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWalkTar(t *testing.T) {
	files := map[string]string{"a.srt": "1\n00:00:01,000 --> 00:00:02,000\nhi\n", "b.ass": "[Events]\n"}
	path := writeTar(t, files, []string{"a.srt", "b.ass"})

	got := map[string]string{}
	err := Walk(context.Background(), path, func(r io.Reader, info fs.FileInfo) error {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		got[info.Name()] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	for name, body := range files {
		if got[name] != body {
			t.Errorf("%s = %q, want %q", name, got[name], body)
		}
	}
}

func TestWalkPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movie.srt")
	body := "1\n00:00:01,000 --> 00:00:02,000\nplain\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	calls := 0
	err := Walk(context.Background(), path, func(r io.Reader, info fs.FileInfo) error {
		calls++
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		if string(data) != body || info.Name() != "movie.srt" {
			t.Errorf("got %q from %s", data, info.Name())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if calls != 1 {
		t.Fatalf("hook called %d times", calls)
	}
}

func TestWalkStops(t *testing.T) {
	stop := errors.New("stop")
	path := writeTar(t, map[string]string{"a.srt": "x", "b.srt": "y"}, []string{"a.srt", "b.srt"})
	calls := 0
	err := Walk(context.Background(), path, func(io.Reader, fs.FileInfo) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("err = %v, want stop", err)
	}
	if calls != 1 {
		t.Fatalf("hook called %d times after stop", calls)
	}
}

func TestWalkMissing(t *testing.T) {
	if err := Walk(context.Background(), filepath.Join(t.TempDir(), "nope"), nil); err == nil {
		t.Fatal("expected error")
	}
}
