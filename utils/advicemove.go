package utils

import (
	"regexp"
	"strings"
)

// AdviceMoveKind classifies the notation found in a piece of advice text.
type AdviceMoveKind string

const (
	ExactCoordinate AdviceMoveKind = "coordinate" // e2e4
	AlgebraicSAN    AdviceMoveKind = "san"        // Nf3, Qh7+, exd5, O-O
	ArrowNotation   AdviceMoveKind = "arrow"      // e2->e4, e2-e4
	SingleSquare    AdviceMoveKind = "square"     // e4
	Unparseable     AdviceMoveKind = "unparseable"
)

// AdviceMove is the parsed form of advice text, used to highlight board
// squares. From is empty when only the destination can be derived.
type AdviceMove struct {
	Kind AdviceMoveKind `json:"kind"`
	From string         `json:"from,omitempty"`
	To   string         `json:"to,omitempty"`
	Raw  string         `json:"raw"`
}

var (
	coordinateRe = regexp.MustCompile(`^([a-h][1-8])([a-h][1-8])[qrbn]?$`)
	arrowRe      = regexp.MustCompile(`^([a-h][1-8])\s*(?:->|→|-)\s*([a-h][1-8])$`)
	sanRe        = regexp.MustCompile(`^(?:[KQRBN][a-h]?[1-8]?x?([a-h][1-8])|([a-h])x?([a-h][1-8])(?:=[QRBN])?|([a-h][1-8]))[+#]?$`)
	castleRe     = regexp.MustCompile(`^[Oo0]-[Oo0](-[Oo0])?[+#]?$`)
)

// ParseAdviceMove extracts the move a piece of advice text refers to.
// Advice authored by experimenters mixes coordinate pairs, algebraic
// notation and arrow shorthand; anything else is reported as unparseable
// rather than guessed at.
func ParseAdviceMove(text string) AdviceMove {
	trimmed := strings.TrimSpace(text)

	if m := coordinateRe.FindStringSubmatch(trimmed); m != nil {
		return AdviceMove{Kind: ExactCoordinate, From: m[1], To: m[2], Raw: trimmed}
	}

	if m := arrowRe.FindStringSubmatch(trimmed); m != nil {
		return AdviceMove{Kind: ArrowNotation, From: m[1], To: m[2], Raw: trimmed}
	}

	if castleRe.MatchString(trimmed) {
		// Castling has no single destination square to highlight
		return AdviceMove{Kind: AlgebraicSAN, Raw: trimmed}
	}

	if m := sanRe.FindStringSubmatch(trimmed); m != nil {
		if m[4] != "" {
			return AdviceMove{Kind: SingleSquare, To: m[4], Raw: trimmed}
		}
		to := m[1]
		if to == "" {
			to = m[3]
		}
		return AdviceMove{Kind: AlgebraicSAN, To: to, Raw: trimmed}
	}

	return AdviceMove{Kind: Unparseable, Raw: trimmed}
}
