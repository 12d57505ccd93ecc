// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/lingotype/internal/model"
)

const sparkChars = " .:-=+*#%@"

// SessionMetrics computes WPM, CPM, and accuracy for a session.
func SessionMetrics(correct, incorrect int, durationMs int64) (wpm, cpm, accuracy float64) {
	if durationMs <= 0 {
		return 0, 0, 0
	}
	minutes := float64(durationMs) / 60000.0
	if minutes <= 0 {
		return 0, 0, 0
	}
	wpm = (float64(correct) / 5.0) / minutes
	cpm = float64(correct) / minutes
	den := float64(correct + incorrect)
	if den > 0 {
		accuracy = float64(correct) / den
	}
	return wpm, cpm, accuracy
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints a summary block for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalCPM, totalAcc float64
	var totalChars int
	var totalDuration int64
	bestCPM := 0.0
	langs := map[string]int{}
	for _, s := range sessions {
		_, cpm, acc := SessionMetrics(s.Correct, s.Incorrect, s.DurationMs)
		totalCPM += cpm
		totalAcc += acc
		totalChars += s.Chars
		totalDuration += s.DurationMs
		if cpm > bestCPM {
			bestCPM = cpm
		}
		langs[s.Lang]++
	}
	count := float64(len(sessions))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d (%s)", len(sessions), formatLangCounts(langs)),
		fmt.Sprintf("Characters: %d", totalChars),
		fmt.Sprintf("Practice time: %s", (time.Duration(totalDuration) * time.Millisecond).Round(time.Second)),
		fmt.Sprintf("Avg CPM: %.2f", totalCPM/count),
		fmt.Sprintf("Best CPM: %.2f", bestCPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", (totalAcc/count)*100),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderTrend prints moving-average sparklines for CPM and accuracy.
func RenderTrend(w io.Writer, sessions []model.SessionAggregate, window int) error {
	if len(sessions) < 2 {
		return nil
	}
	cpms := make([]float64, len(sessions))
	accs := make([]float64, len(sessions))
	for i, s := range sessions {
		_, cpm, acc := SessionMetrics(s.Correct, s.Incorrect, s.DurationMs)
		cpms[i] = cpm
		accs[i] = acc * 100
	}
	cpms = MovingAverage(cpms, window)
	accs = MovingAverage(accs, window)
	lines := []string{
		fmt.Sprintf("Trend (window %d)", window),
		fmt.Sprintf("CPM      [%s] %.1f", Sparkline(cpms), cpms[len(cpms)-1]),
		fmt.Sprintf("Accuracy [%s] %.1f%%", Sparkline(accs), accs[len(accs)-1]),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderWeakChars prints the lowest-accuracy characters, weakest first.
func RenderWeakChars(w io.Writer, aggs []model.CharAggregate, top int) error {
	line := WeakLine(WeakestChars(aggs, top))
	if line == "" {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Weakest: %s\n\n", line); err != nil {
		return err
	}
	return nil
}

// WeakLine formats characters as "b 60%, c 75%".
func WeakLine(aggs []model.CharAggregate) string {
	labels := make([]string, 0, len(aggs))
	for _, agg := range aggs {
		labels = append(labels, fmt.Sprintf("%s %.0f%%", charLabel(agg.Char), Accuracy(agg)*100))
	}
	return strings.Join(labels, ", ")
}

// RenderCharTable prints per-character aggregates.
func RenderCharTable(w io.Writer, aggs []model.CharAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No character stats found.")
		return err
	}
	rows := make([]model.CharAggregate, len(aggs))
	copy(rows, aggs)
	sortByAccuracy(rows)

	if _, err := fmt.Fprintln(w, "Per-Character (Windowed)"); err != nil {
		return err
	}

	headers := []string{"Char", "Accuracy", "Correct", "Incorrect"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			charLabel(r.Char),
			fmt.Sprintf("%.2f%%", Accuracy(r)*100),
			fmt.Sprintf("%d", r.Correct),
			fmt.Sprintf("%d", r.Incorrect),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	lines := formatTable(headers, tableRows, rightAlign)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

func sortByAccuracy(aggs []model.CharAggregate) {
	sort.Slice(aggs, func(i, j int) bool {
		ai := Accuracy(aggs[i])
		aj := Accuracy(aggs[j])
		if ai == aj {
			return aggs[i].Char < aggs[j].Char
		}
		return ai < aj
	})
}

func charLabel(ch string) string {
	switch ch {
	case " ":
		return "<space>"
	case "\n":
		return "<enter>"
	case "\t":
		return "<tab>"
	}
	return ch
}

func formatLangCounts(langs map[string]int) string {
	keys := make([]string, 0, len(langs))
	for k := range langs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %d", k, langs[k]))
	}
	return strings.Join(parts, ", ")
}
