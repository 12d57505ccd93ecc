// Package main provides the CLI entrypoint for lingotype.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/lingotype/internal/config"
	"github.com/verte-zerg/lingotype/internal/locale"
	"github.com/verte-zerg/lingotype/internal/logger"
	"github.com/verte-zerg/lingotype/internal/model"
	"github.com/verte-zerg/lingotype/internal/stats"
	"github.com/verte-zerg/lingotype/internal/statsui"
	"github.com/verte-zerg/lingotype/internal/store"
	"github.com/verte-zerg/lingotype/internal/textfile"
	"github.com/verte-zerg/lingotype/internal/tui"
)

const (
	defaultTrendWindow = 20
	defaultWeakTop     = 8
	defaultLogLevel    = "info"
)

var (
	practiceLang string
	practiceFile string

	statsLang    string
	statsSince   string
	statsLast    int
	statsWindow  int
	statsTop     int
	statsWeakTop int
	statsTUI     bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lingotype",
		Short:         "Bilingual typing practice in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceLang, "lang", string(locale.Default), "starting language (zh or en)")
	rootCmd.Flags().StringVar(&practiceFile, "file", "", "practice text file to load on start")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newTextsCmd())

	return rootCmd
}

func loadSettings() (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	envCfg, err := config.LoadEnv()
	if err != nil {
		return model.Config{}, err
	}
	cfg := config.Resolve(model.Config{
		Lang:     string(locale.Default),
		LogLevel: defaultLogLevel,
		LogFile:  config.DefaultLogPath(),
		DBPath:   config.DefaultDBPath(),
	}, fileCfg, envCfg)
	return cfg, nil
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("lang") {
		cfg.Lang = practiceLang
	}
	if cmd.Flags().Changed("file") {
		cfg.File = practiceFile
	}
	lang, err := locale.Parse(cfg.Lang)
	if err != nil {
		return fmt.Errorf("invalid --lang value: %w", err)
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("lingotype needs an interactive terminal")
	}

	var text string
	if cfg.File != "" {
		text, err = textfile.Load(cfg.File)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", cfg.File, err)
		}
	}

	log, closeLog, err := logger.NewFileLogger(cfg.LogFile, "practice", cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeLog(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	log.Info().Str("lang", string(lang)).Str("file", cfg.File).Msg("starting practice")
	m := tui.NewModel(tui.Options{
		Language: lang,
		Text:     text,
		Recorder: st,
		Weak:     st,
		Logger:   log,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Error().Err(err).Msg("tui exited with error")
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newTextsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "texts",
		Short: "List built-in practice texts",
		Args:  cobra.NoArgs,
		RunE:  runTextsCmd,
	}
}

func runTextsCmd(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	for _, code := range locale.Supported() {
		if _, err := fmt.Fprintf(out, "[%s] %s\n", code, locale.Table(code).Title); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		for i, text := range locale.Texts(code) {
			if _, err := fmt.Fprintf(out, "  %d. %s\n", i+1, text); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show session history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsLang, "lang", "", "language filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsWindow, "window", defaultTrendWindow, "moving average window")
	cmd.Flags().IntVar(&statsTop, "top", 0, "limit the character table to the N most frequent characters")
	cmd.Flags().IntVar(&statsWeakTop, "weak-top", defaultWeakTop, "number of weakest characters to list")
	cmd.Flags().BoolVar(&statsTUI, "tui", false, "browse the history interactively")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if statsLang != "" {
		if _, err := locale.Parse(statsLang); err != nil {
			return fmt.Errorf("invalid --lang value: %w", err)
		}
	}
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 || statsWindow < 0 || statsTop < 0 || statsWeakTop < 0 {
		return fmt.Errorf("--last, --window, --top and --weak-top must be >= 0")
	}

	cfg := model.StatsConfig{
		Lang:        statsLang,
		Since:       sinceTime,
		Last:        statsLast,
		TrendWindow: statsWindow,
		Top:         statsTop,
		WeakTop:     statsWeakTop,
	}

	st, err := store.Open(settings.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsTUI {
		load := func(ctx context.Context, cfg model.StatsConfig) (stats.Report, error) {
			return stats.BuildReport(ctx, st, cfg)
		}
		program := tea.NewProgram(statsui.NewModel(load, cfg), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats TUI: %w", err)
		}
		return nil
	}

	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	return report.Render(cmd.OutOrStdout(), cfg)
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# lingotype configuration
# Uncomment a value to enable it.
# Precedence: CLI flags > LINGOTYPE_* environment > this file.

[practice]
# lang = %q               # Starting language: zh or en
# file = ""               # Practice text file loaded on start

[log]
# level = %q              # debug, info, warn, error
# file = %q

[store]
# path = %q
`,
		locale.Default,
		defaultLogLevel,
		config.DefaultLogPath(),
		config.DefaultDBPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
