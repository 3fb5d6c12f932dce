package formpdf

import (
	"reflect"
	"strings"
	"testing"
)

// runeWidth measures one unit per rune, which keeps the wrap assertions
// independent of real font metrics.
func runeWidth(s string) float64 {
	return float64(len([]rune(s)))
}

func TestWrapEmptyInput(t *testing.T) {
	got := wrapText("", 10, runeWidth)
	if !reflect.DeepEqual(got, []string{""}) {
		t.Fatalf("wrapText(%q) = %q, want one empty line", "", got)
	}
}

func TestWrapKeepsExplicitBreaks(t *testing.T) {
	got := wrapText("alpha\r\nbeta\rgamma\n\ndelta", 20, runeWidth)
	want := []string{"alpha", "beta", "gamma", "", "delta"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("wrapText = %q, want %q", got, want)
	}
}

func TestWrapGreedyPacking(t *testing.T) {
	got := wrapText("aa bb cc dd", 5, runeWidth)
	want := []string{"aa bb", "cc dd"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("wrapText = %q, want %q", got, want)
	}
}

func TestWrapLinesFitWidth(t *testing.T) {
	const maxWidth = 12.0
	text := "the quick brown fox jumps over the lazy dog near the riverbank"
	for _, ln := range wrapText(text, maxWidth, runeWidth) {
		if runeWidth(ln) > maxWidth {
			t.Errorf("line %q measures %.0f, over width %.0f", ln, runeWidth(ln), maxWidth)
		}
	}
}

func TestWrapHardSplitsOversizedToken(t *testing.T) {
	got := wrapText(strings.Repeat("x", 23), 10, runeWidth)
	want := []string{strings.Repeat("x", 10), strings.Repeat("x", 10), "xxx"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("wrapText = %q, want %q", got, want)
	}
}

func TestWrapSingleRuneWiderThanWidth(t *testing.T) {
	// Even when one rune alone exceeds the width, each rune still lands on
	// its own line, so wrapping always terminates.
	got := wrapText("ab", 0.5, runeWidth)
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("wrapText = %q, want %q", got, want)
	}
}

func TestWrapIdempotentOnOwnOutput(t *testing.T) {
	const maxWidth = 14.0
	text := "some reasonably long sentence that needs several lines to fit"
	for _, ln := range wrapText(text, maxWidth, runeWidth) {
		if ln == "" {
			continue
		}
		again := wrapText(ln, maxWidth, runeWidth)
		if !reflect.DeepEqual(again, []string{ln}) {
			t.Errorf("re-wrapping %q changed it to %q", ln, again)
		}
	}
}

func TestWrapDeterministic(t *testing.T) {
	text := "one two three " + strings.Repeat("y", 40) + " four"
	a := wrapText(text, 9, runeWidth)
	b := wrapText(text, 9, runeWidth)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same input wrapped differently: %q vs %q", a, b)
	}
}
