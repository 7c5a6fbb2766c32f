package utils

import "testing"

func TestParseAdviceMove(t *testing.T) {
	cases := []struct {
		text string
		kind AdviceMoveKind
		from string
		to   string
	}{
		{"e2e4", ExactCoordinate, "e2", "e4"},
		{"e7e8q", ExactCoordinate, "e7", "e8"},
		{"e2->e4", ArrowNotation, "e2", "e4"},
		{"e2 -> e4", ArrowNotation, "e2", "e4"},
		{"e2-e4", ArrowNotation, "e2", "e4"},
		{"Nf3", AlgebraicSAN, "", "f3"},
		{"Qh7+", AlgebraicSAN, "", "h7"},
		{"Rxd8#", AlgebraicSAN, "", "d8"},
		{"exd5", AlgebraicSAN, "", "d5"},
		{"O-O", AlgebraicSAN, "", ""},
		{"e4", SingleSquare, "", "e4"},
		{"push the kingside pawns", Unparseable, "", ""},
		{"", Unparseable, "", ""},
	}

	for _, tc := range cases {
		got := ParseAdviceMove(tc.text)
		if got.Kind != tc.kind {
			t.Errorf("%q: kind = %s, want %s", tc.text, got.Kind, tc.kind)
		}
		if got.From != tc.from {
			t.Errorf("%q: from = %q, want %q", tc.text, got.From, tc.from)
		}
		if got.To != tc.to {
			t.Errorf("%q: to = %q, want %q", tc.text, got.To, tc.to)
		}
	}
}

func TestParseAdviceMove_TrimsWhitespace(t *testing.T) {
	got := ParseAdviceMove("  e2e4  ")
	if got.Kind != ExactCoordinate || got.Raw != "e2e4" {
		t.Fatalf("got kind %s raw %q", got.Kind, got.Raw)
	}
}
