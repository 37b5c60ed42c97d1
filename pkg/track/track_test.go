package track

import (
	"testing"
	"time"
)

func sampleTrack() *Track {
	return New(
		Event{Start: time.Second, End: 4 * time.Second, Text: `{\b1}Hello{\b0} World`},
		Event{Start: 2 * time.Second, End: 5 * time.Second, Text: "Plain"},
		Event{Start: 6 * time.Second, End: 7 * time.Second, Text: "Later"},
	)
}

func TestEventAndIndex(t *testing.T) {
	tr := sampleTrack()
	if tr.Len() != 3 {
		t.Fatalf("Len = %d", tr.Len())
	}
	for i := 0; i < tr.Len(); i++ {
		ev, ok := tr.Event(i)
		if !ok {
			t.Fatalf("Event(%d) missing", i)
		}
		if got := tr.Index(ev); got != i {
			t.Errorf("Index(Event(%d)) = %d", i, got)
		}
	}
	for _, i := range []int{-1, 3, 100} {
		if _, ok := tr.Event(i); ok {
			t.Errorf("Event(%d) should be absent", i)
		}
	}
	if got := tr.Index(&Event{Text: "Plain"}); got != -1 {
		t.Errorf("foreign event resolved to %d", got)
	}
	if got := tr.Index(nil); got != -1 {
		t.Errorf("nil event resolved to %d", got)
	}
}

func TestNewCopiesEvents(t *testing.T) {
	events := []Event{{Text: "a"}}
	tr := New(events...)
	events[0].Text = "changed"
	ev, _ := tr.Event(0)
	if ev.Text != "a" {
		t.Fatalf("track shares caller storage: %q", ev.Text)
	}
}

func TestActive(t *testing.T) {
	tr := sampleTrack()
	tests := []struct {
		at   time.Duration
		want []int
	}{
		{0, nil},
		{time.Second, []int{0}},
		{3 * time.Second, []int{0, 1}},
		{4 * time.Second, []int{1}},
		{5 * time.Second, nil},
		{6500 * time.Millisecond, []int{2}},
	}
	for _, tt := range tests {
		got := tr.Active(tt.at)
		if len(got) != len(tt.want) {
			t.Errorf("Active(%v) = %v, want %v", tt.at, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Active(%v) = %v, want %v", tt.at, got, tt.want)
			}
		}
	}
}

func TestRemoveInvalidatesIdentity(t *testing.T) {
	tr := sampleTrack()
	first, _ := tr.Event(0)
	second, _ := tr.Event(1)
	rev := tr.Revision()

	if !tr.Remove(0) {
		t.Fatal("Remove(0) failed")
	}
	if tr.Revision() == rev {
		t.Fatal("revision not bumped")
	}
	if got := tr.Index(first); got != -1 {
		t.Errorf("removed event still at %d", got)
	}
	if got := tr.Index(second); got != 0 {
		t.Errorf("shifted event at %d, want 0", got)
	}
	if tr.Remove(5) {
		t.Error("Remove out of range succeeded")
	}
}

func TestAppendAndPositions(t *testing.T) {
	tr := New()
	i := tr.Append(Event{Text: "x"})
	j := tr.Append(Event{Text: "y"})
	if i != 0 || j != 1 || tr.Revision() != 2 {
		t.Fatalf("Append = %d, %d rev %d", i, j, tr.Revision())
	}
	pos := tr.Positions()
	for k := 0; k < tr.Len(); k++ {
		ev, _ := tr.Event(k)
		if pos[ev] != k {
			t.Errorf("Positions[%d] = %d", k, pos[ev])
		}
	}
}

func TestNilTrack(t *testing.T) {
	var tr *Track
	if tr.Len() != 0 || tr.Active(0) != nil || tr.Index(&Event{}) != -1 || tr.Revision() != 0 {
		t.Fatal("nil track should behave as empty")
	}
	if _, ok := tr.Event(0); ok {
		t.Fatal("nil track returned an event")
	}
	if len(tr.Positions()) != 0 {
		t.Fatal("nil track has positions")
	}
}
