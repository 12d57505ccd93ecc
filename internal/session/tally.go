package session

import (
	"sort"

	"github.com/verte-zerg/lingotype/internal/model"
)

type charStat struct {
	correct   int
	incorrect int
}

// tally counts newly entered characters against the reference character at
// the same position.
type tally struct {
	keystrokes int
	correct    int
	incorrect  int
	chars      map[rune]*charStat
}

func newTally() tally {
	return tally{chars: map[rune]*charStat{}}
}

// record compares the previous and the next typed text. Positions after
// their common prefix are treated as freshly entered.
func (t *tally) record(reference, prev, next []rune) {
	t.keystrokes++
	start := commonPrefix(prev, next)
	for i := start; i < len(next); i++ {
		if i >= len(reference) {
			t.incorrect++
			continue
		}
		entry := t.entry(reference[i])
		if next[i] == reference[i] {
			t.correct++
			entry.correct++
			continue
		}
		t.incorrect++
		entry.incorrect++
	}
}

func (t *tally) entry(r rune) *charStat {
	if t.chars == nil {
		t.chars = map[rune]*charStat{}
	}
	e, ok := t.chars[r]
	if !ok {
		e = &charStat{}
		t.chars[r] = e
	}
	return e
}

func (t *tally) charStats() []model.CharStats {
	out := make([]model.CharStats, 0, len(t.chars))
	for ch, e := range t.chars {
		out = append(out, model.CharStats{
			Char:      string(ch),
			Correct:   e.correct,
			Incorrect: e.incorrect,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Char < out[j].Char
	})
	return out
}

func commonPrefix(a, b []rune) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
