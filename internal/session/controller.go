// Package session implements the typing session state machine.
//
// A Controller owns one practice attempt: the reference text, the typed
// text, the pausable timer and the running accuracy. It reacts to four
// events (LoadText, Keystroke, TogglePause, ToggleLanguage) plus the timer
// Tick, and pushes a complete Frame to its Renderer after each of them.
// Controllers are not safe for concurrent use; the host must deliver one
// event at a time.
package session

import (
	"errors"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/lingotype/internal/locale"
	"github.com/verte-zerg/lingotype/internal/logger"
	"github.com/verte-zerg/lingotype/internal/model"
)

// ErrEmptyText is returned by LoadText when the content is blank after
// trimming.
var ErrEmptyText = errors.New("practice text is empty")

// Renderer is the display surface. Render receives the full display state
// after every event. Notify is called once per completed attempt, before
// the session is reset.
type Renderer interface {
	Render(Frame)
	Notify(Completion)
}

// Completion describes a finished attempt.
type Completion struct {
	Message string
	Stats   model.SessionStats
	Chars   []model.CharStats
}

// Frame is a snapshot of everything the display surface shows.
type Frame struct {
	Language      locale.Code
	Title         string
	PauseLabel    string
	LanguageLabel string
	Placeholder   string

	Reference string
	Typed     string
	Diff      []Cell
	Source    model.TextSource

	Timer       string
	Accuracy    string
	Elapsed     int
	AccuracyPct float64

	InputLocked bool
	Paused      bool
	Running     bool
}

// Options configures a Controller. Nil collaborators are replaced with
// no-op implementations.
type Options struct {
	Language  locale.Code
	Renderer  Renderer
	Scheduler Scheduler
	Clock     Clock
	Logger    *logger.Logger
	NewID     func() string
}

// Controller owns a single typing session.
type Controller struct {
	renderer  Renderer
	scheduler Scheduler
	clock     Clock
	log       *logger.Logger
	newID     func() string

	lang      locale.Code
	reference []rune
	source    model.TextSource
	typed     []rune
	diff      []Cell
	accuracy  float64
	paused    bool
	locked    bool
	timer     timer

	attemptID string
	startedAt time.Time
	tally     tally

	tickID     uint64
	lastTickID uint64
}

// New builds a controller showing the first default text of the configured
// language and renders the initial frame.
func New(opts Options) *Controller {
	c := &Controller{
		renderer:  opts.Renderer,
		scheduler: opts.Scheduler,
		clock:     opts.Clock,
		log:       opts.Logger,
		newID:     opts.NewID,
		lang:      opts.Language,
	}
	if c.renderer == nil {
		c.renderer = nopRenderer{}
	}
	if c.scheduler == nil {
		c.scheduler = nopScheduler{}
	}
	if c.clock == nil {
		c.clock = SystemClock{}
	}
	if c.log == nil {
		c.log = logger.Nop()
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	if _, err := locale.Parse(string(c.lang)); err != nil {
		c.lang = locale.Default
	}
	c.reference = []rune(locale.DefaultText(c.lang))
	c.source = model.SourceDefault
	c.reset()
	c.render()
	return c
}

// LoadText replaces the reference text with trimmed content and resets the
// session. Blank content is rejected and leaves the session untouched.
func (c *Controller) LoadText(content string) error {
	text := strings.TrimSpace(content)
	if text == "" {
		return ErrEmptyText
	}
	c.reference = []rune(text)
	c.source = model.SourceCustom
	c.reset()
	c.log.Debug().Int("chars", len(c.reference)).Msg("practice text loaded")
	c.render()
	return nil
}

// Keystroke replaces the typed text. It is ignored while paused. The first
// keystroke of a session starts the timer; typing the reference exactly
// completes the attempt.
func (c *Controller) Keystroke(typed string) {
	if c.paused {
		return
	}
	now := c.clock.Now()
	if !c.timer.started {
		c.timer.start(now)
		c.startedAt = now
		c.attemptID = c.newID()
		c.scheduleTick()
		c.log.Debug().Str("attempt", c.attemptID).Msg("timer started")
	}

	next := []rune(typed)
	c.tally.record(c.reference, c.typed, next)
	c.typed = next
	c.diff = Diff(c.reference, c.typed)
	c.accuracy = Accuracy(c.reference, c.typed)

	if len(c.reference) > 0 && slices.Equal(c.typed, c.reference) {
		c.complete(now)
		return
	}
	c.render()
}

// TogglePause suspends or resumes a started session. Before the first
// keystroke it does nothing.
func (c *Controller) TogglePause() {
	if !c.timer.started {
		return
	}
	if c.paused {
		c.timer.resume(c.clock.Now())
		c.scheduleTick()
		c.locked = false
		c.log.Debug().Int("elapsed", c.timer.elapsed).Msg("session resumed")
	} else {
		c.cancelTick()
		c.timer.stop()
		c.locked = true
		c.log.Debug().Int("elapsed", c.timer.elapsed).Msg("session paused")
	}
	c.paused = !c.paused
	c.render()
}

// ToggleLanguage switches to the other language, loads its first default
// text and resets the session, including a pending pause.
func (c *Controller) ToggleLanguage() {
	c.lang = c.lang.Next()
	c.reference = []rune(locale.DefaultText(c.lang))
	c.source = model.SourceDefault
	c.reset()
	c.log.Debug().Str("lang", string(c.lang)).Msg("language switched")
	c.render()
}

// Tick refreshes the timer display. Ticks for a cancelled or superseded id
// are dropped.
func (c *Controller) Tick(id uint64) {
	if id == 0 || id != c.tickID || !c.timer.running {
		return
	}
	c.timer.update(c.clock.Now())
	c.render()
	c.scheduler.Schedule(id, TickPeriod)
}

// Frame returns the current display state.
func (c *Controller) Frame() Frame {
	tbl := locale.Table(c.lang)
	pauseLabel := tbl.Pause
	if c.paused {
		pauseLabel = tbl.Resume
	}
	return Frame{
		Language:      c.lang,
		Title:         tbl.Title,
		PauseLabel:    pauseLabel,
		LanguageLabel: tbl.SwitchLanguage,
		Placeholder:   tbl.Placeholder,
		Reference:     string(c.reference),
		Typed:         string(c.typed),
		Diff:          c.diff,
		Source:        c.source,
		Timer:         tbl.TimerPrefix + strconv.Itoa(c.timer.elapsed) + tbl.SecondsSuffix,
		Accuracy:      tbl.AccuracyPrefix + FormatPercent(c.accuracy) + "%",
		Elapsed:       c.timer.elapsed,
		AccuracyPct:   c.accuracy,
		InputLocked:   c.locked,
		Paused:        c.paused,
		Running:       c.timer.running,
	}
}

// Language returns the active language.
func (c *Controller) Language() locale.Code {
	return c.lang
}

func (c *Controller) complete(now time.Time) {
	c.timer.update(now)
	duration := c.timer.active(now)
	c.cancelTick()
	c.timer.stop()
	c.locked = true
	c.render()

	stats := model.SessionStats{
		AttemptID:      c.attemptID,
		StartedAt:      c.startedAt,
		EndedAt:        now,
		Lang:           string(c.lang),
		Source:         c.source,
		Chars:          len(c.reference),
		Keystrokes:     c.tally.keystrokes,
		Correct:        c.tally.correct,
		Incorrect:      c.tally.incorrect,
		ElapsedSeconds: c.timer.elapsed,
		DurationMs:     duration.Milliseconds(),
	}
	c.log.Info().
		Str("attempt", stats.AttemptID).
		Str("lang", stats.Lang).
		Int("elapsed", stats.ElapsedSeconds).
		Int("incorrect", stats.Incorrect).
		Msg("session completed")
	c.renderer.Notify(Completion{
		Message: locale.Table(c.lang).Complete,
		Stats:   stats,
		Chars:   c.tally.charStats(),
	})

	c.reset()
	c.render()
}

// reset returns the session to its not-yet-started state, keeping the
// reference text and language.
func (c *Controller) reset() {
	c.cancelTick()
	c.timer = timer{}
	c.typed = nil
	c.diff = nil
	c.paused = false
	c.locked = false
	c.accuracy = Accuracy(c.reference, c.typed)
	c.attemptID = ""
	c.startedAt = time.Time{}
	c.tally = newTally()
}

// scheduleTick cancels any active tick before arming a new one.
func (c *Controller) scheduleTick() {
	c.cancelTick()
	c.lastTickID++
	c.tickID = c.lastTickID
	c.scheduler.Schedule(c.tickID, TickPeriod)
}

func (c *Controller) cancelTick() {
	if c.tickID == 0 {
		return
	}
	c.scheduler.Cancel(c.tickID)
	c.tickID = 0
}

func (c *Controller) render() {
	c.renderer.Render(c.Frame())
}

type nopRenderer struct{}

func (nopRenderer) Render(Frame)      {}
func (nopRenderer) Notify(Completion) {}

type nopScheduler struct{}

func (nopScheduler) Schedule(uint64, time.Duration) {}
func (nopScheduler) Cancel(uint64)                  {}
