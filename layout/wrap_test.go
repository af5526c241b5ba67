package layout

import (
	"strings"
	"testing"

	"github.com/wudi/pdfreport/fonts"
)

func testWrapper() (*Wrapper, *fonts.Estimator, fonts.Font, fonts.Font) {
	est := fonts.NewEstimator(fonts.DefaultWidthTable())
	set := fonts.Standard()
	regular, _ := set.Lookup(fonts.Regular)
	mono, _ := set.Lookup(fonts.Mono)
	return NewWrapper(est), est, regular, mono
}

func TestWrap_EmptyYieldsOneLine(t *testing.T) {
	w, _, regular, _ := testWrapper()
	for _, in := range []string{"", "   ", "\n\t "} {
		lines := w.Wrap(in, 100, 10, regular)
		if len(lines) != 1 || lines[0] != "" {
			t.Fatalf("Wrap(%q) = %q, want one empty line", in, lines)
		}
	}
}

func TestWrap_CompletenessAndFit(t *testing.T) {
	w, est, regular, mono := testWrapper()
	inputs := []string{
		"The quick brown fox jumps over the lazy dog",
		"  Workflow   grouping is more important\tthan raw API breadth.\n Blind and VI users need stable spoken categories before they need more data.  ",
		"a b c d e f g h i j k l m n o p",
		"MMMM WWWW @@@@ #### mmmm",
	}
	widths := []float64{40, 80, 120, 300, 528}
	for _, font := range []fonts.Font{regular, mono} {
		for _, in := range inputs {
			normalized := strings.Join(strings.Fields(in), " ")
			for _, width := range widths {
				lines := w.Wrap(in, width, 10, font)
				if got := strings.Join(lines, " "); got != normalized {
					// Forced splits change spacing; compare without spaces.
					if strings.ReplaceAll(got, " ", "") != strings.ReplaceAll(normalized, " ", "") {
						t.Fatalf("content lost at width %v:\n got %q\nwant %q", width, got, normalized)
					}
				}
				for _, line := range lines {
					if est.Measure(line, 10, font) > width && len(strings.Fields(line)) > 1 {
						t.Fatalf("line %q exceeds width %v", line, width)
					}
				}
			}
		}
	}
}

func TestWrap_WordsNeverLostWhenTheyFit(t *testing.T) {
	w, est, regular, _ := testWrapper()
	in := "alpha beta gamma delta epsilon zeta eta theta iota kappa lambda"
	lines := w.Wrap(in, 90, 10, regular)
	if got := strings.Join(lines, " "); got != in {
		t.Fatalf("rejoined = %q, want %q", got, in)
	}
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %q", lines)
	}
	for _, line := range lines {
		if est.Measure(line, 10, regular) > 90 {
			t.Fatalf("line %q wider than 90", line)
		}
	}
}

func TestWrap_SplitsLongToken(t *testing.T) {
	w, est, _, mono := testWrapper()
	// Mono at size 10 advances 6 per character: 30 fits five characters.
	lines := w.Wrap("ab https://docs.example.com/apiref next", 30, 10, mono)
	want := []string{"ab", "https", "://do", "cs.ex", "ample", ".com/", "apire", "f", "next"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("Wrap = %q, want %q", lines, want)
	}
	for _, line := range lines {
		if est.Measure(line, 10, mono) > 30 {
			t.Fatalf("piece %q wider than 30", line)
		}
	}
}

func TestWrap_LastPieceJoinsNextWord(t *testing.T) {
	w, _, _, mono := testWrapper()
	// "abcdefg" -> "abcde", "fg"; "fg x" is 4 characters and fits in 5.
	lines := w.Wrap("abcdefg x", 30, 10, mono)
	want := []string{"abcde", "fg x"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("Wrap = %q, want %q", lines, want)
	}
}

func TestWrap_FirstWordTooLong(t *testing.T) {
	w, _, _, mono := testWrapper()
	lines := w.Wrap("abcdefghijk", 30, 10, mono)
	want := []string{"abcde", "fghij", "k"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("Wrap = %q, want %q", lines, want)
	}
}

func TestWrap_CharacterWiderThanWidthIsKept(t *testing.T) {
	w, _, regular, _ := testWrapper()
	lines := w.Wrap("WW", 1, 10, regular)
	if strings.Join(lines, "|") != "W|W" {
		t.Fatalf("Wrap = %q, want each character on its own line", lines)
	}
}
