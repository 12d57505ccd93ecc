// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Lang     string
	File     string
	LogLevel string
	LogFile  string
	DBPath   string
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Lang        string
	Since       *time.Time
	Last        int
	TrendWindow int
	Top         int
	WeakTop     int
}

// TextSource records where a reference text came from.
type TextSource string

const (
	// SourceDefault marks a text from the built-in catalog.
	SourceDefault TextSource = "default"
	// SourceCustom marks a text loaded from a file or the clipboard.
	SourceCustom TextSource = "custom"
)

// SessionStats captures a completed typing session.
type SessionStats struct {
	AttemptID      string
	StartedAt      time.Time
	EndedAt        time.Time
	Lang           string
	Source         TextSource
	Chars          int
	Keystrokes     int
	Correct        int
	Incorrect      int
	ElapsedSeconds int
	DurationMs     int64
}

// CharStats stores per-character stats for a session.
type CharStats struct {
	Char      string
	Correct   int
	Incorrect int
}

// CharAggregate aggregates character stats across sessions.
type CharAggregate struct {
	Char      string
	Correct   int
	Incorrect int
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID  int64
	EndedAt    time.Time
	Lang       string
	Chars      int
	Correct    int
	Incorrect  int
	DurationMs int64
}
