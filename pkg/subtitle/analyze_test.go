package subtitle

import (
	"reflect"
	"testing"

	"github.com/abadojack/whatlanggo"

	"subhit/pkg/track"
)

func TestVisualLines(t *testing.T) {
	got := VisualLines(`{\an8}First line\N{\i1}second\hline{\i0}\n\N`)
	want := []string{"First line", "second line"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("VisualLines = %q, want %q", got, want)
	}
	if VisualLines(`{\p1}`) != nil {
		t.Fatal("tag-only event has lines")
	}
}

func TestAnalyzeMonolingual(t *testing.T) {
	tr := track.New(
		track.Event{Style: "Default", Text: "I told you we should have taken the other road through the mountains."},
		track.Event{Style: "Default", Text: "{\\i1}Nobody listens to me when it really matters, do they?{\\i0}"},
		track.Event{Style: "Default", Text: "We will be there before the sun goes down, I promise you that."},
		track.Event{Style: "Sign", Text: "{\\p1}m 0 0 l 10 0 10 10{\\p0}"},
	)
	sum := Analyze(tr)
	if sum.Lines != 4 {
		t.Errorf("Lines = %d", sum.Lines)
	}
	if sum.Dominant != whatlanggo.Eng.String() {
		t.Errorf("Dominant = %q, languages %v", sum.Dominant, sum.Languages)
	}
	if sum.Bilingual {
		t.Error("single language track reported bilingual")
	}
}

func TestAnalyzeBilingual(t *testing.T) {
	tr := track.New(
		track.Event{Style: "Default", Text: `我早就告诉过你我们应该走山里的另一条路\NI told you we should have taken the other road through the mountains`},
		track.Event{Style: "Default", Text: `在真正重要的时候没有人听我的话\NNobody listens to me when it really matters, do they`},
		track.Event{Style: "Default", Text: `我保证我们会在太阳下山之前到达那里\NWe will be there before the sun goes down, I promise you that`},
	)
	sum := Analyze(tr)
	if !sum.Bilingual {
		t.Errorf("bilingual track not detected: %+v", sum)
	}
	if sum.Dominant != whatlanggo.Cmn.String() {
		t.Errorf("Dominant = %q", sum.Dominant)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	sum := Analyze(track.New())
	if sum.Lines != 0 || sum.Bilingual || sum.Dominant != "" {
		t.Fatalf("unexpected summary %+v", sum)
	}
}
