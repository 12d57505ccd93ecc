package session

import (
	"math"
	"strconv"
)

// Kind classifies one position of the diff display.
type Kind int

const (
	// KindCorrect is a position typed exactly as the reference.
	KindCorrect Kind = iota
	// KindPending is a position the user has not reached yet.
	KindPending
	// KindWrong is a position typed with a different character.
	KindWrong
)

// Class is the style class pushed to the display surface.
type Class string

const (
	ClassNormal Class = "normal"
	ClassError  Class = "error"
)

// Cell is a single rendered character of the diff display.
type Cell struct {
	Char rune
	Kind Kind
}

// Class maps the cell kind to its style class. Pending positions share the
// error class with mistyped ones.
func (c Cell) Class() Class {
	if c.Kind == KindCorrect {
		return ClassNormal
	}
	return ClassError
}

// Diff classifies every reference position against the typed text. Typed
// characters beyond the reference length are not rendered.
func Diff(reference, typed []rune) []Cell {
	cells := make([]Cell, len(reference))
	for i, want := range reference {
		switch {
		case i >= len(typed):
			cells[i] = Cell{Char: want, Kind: KindPending}
		case typed[i] == want:
			cells[i] = Cell{Char: want, Kind: KindCorrect}
		default:
			cells[i] = Cell{Char: typed[i], Kind: KindWrong}
		}
	}
	return cells
}

// Accuracy returns the percentage of typed characters that match the
// reference at the same position. The denominator is the typed length, so
// overtyped characters count as mismatches. Empty input is 100.
func Accuracy(reference, typed []rune) float64 {
	if len(typed) == 0 {
		return 100
	}
	correct := 0
	for i, r := range typed {
		if i < len(reference) && reference[i] == r {
			correct++
		}
	}
	return 100 * float64(correct) / float64(len(typed))
}

// FormatPercent renders a percentage with at most two decimals.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
