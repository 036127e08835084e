package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// setupLogging installs the default slog logger. Text output goes through a
// charmbracelet handler, json through slog's own.
func setupLogging(w io.Writer, format, level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid --log-level %q", level)
	}

	switch strings.ToLower(format) {
	case "json":
		slog.SetDefault(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})))
	case "text":
		logger := log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.000",
			Prefix:          "terrarium",
			Level:           log.Level(lvl),
		})
		logger.SetStyles(logStyles())
		slog.SetDefault(slog.New(logger))
	default:
		return fmt.Errorf("invalid --log-format %q", format)
	}
	return nil
}

func logStyles() *log.Styles {
	styles := log.DefaultStyles()
	styles.Prefix = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	styles.Key = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styles.Levels[log.WarnLevel] = styles.Levels[log.WarnLevel].Foreground(lipgloss.Color("3"))
	styles.Levels[log.ErrorLevel] = styles.Levels[log.ErrorLevel].Foreground(lipgloss.Color("1"))
	return styles
}
