package charset

import (
	"bytes"
	"testing"
)

func TestToUTF8PassThrough(t *testing.T) {
	in := []byte("Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,Hello 世界, it is a fine day for subtitles\n")
	out, err := ToUTF8(in)
	if err != nil {
		t.Fatalf("ToUTF8: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("utf-8 input changed: %q", out)
	}
}

func TestToUTF8StripsBOM(t *testing.T) {
	out, err := ToUTF8(append([]byte{0xef, 0xbb, 0xbf}, "[Script Info]"...))
	if err != nil {
		t.Fatalf("ToUTF8: %v", err)
	}
	if string(out) != "[Script Info]" {
		t.Fatalf("got %q", out)
	}
}

func TestToUTF8Empty(t *testing.T) {
	out, err := ToUTF8(nil)
	if err != nil || len(out) != 0 {
		t.Fatalf("got %q, %v", out, err)
	}
}
