package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/banksystem/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	infoTxtColor  = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warnTxtColor  = lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	errorTxtColor = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}
	debugTxtColor = lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#7E57C2"}
)

// SetupLogger builds the process logger on stderr and installs it as the slog
// default. Stdout stays free for command output.
func SetupLogger(cfg *config.Log) *slog.Logger {
	logger := NewLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

// NewLogger returns a slog.Logger backed by charmbracelet/log writing to w.
func NewLogger(w io.Writer, cfg *config.Log) *slog.Logger {
	formatter := log.TextFormatter
	if f, ok := formatters[cfg.Format]; ok {
		formatter = f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Level <= int(log.DebugLevel),
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(levelStyles())

	return slog.New(logger)
}

var formatters = map[string]log.Formatter{
	"json": log.JSONFormatter,
	"text": log.TextFormatter,
}

func levelStyles() *log.Styles {
	styles := log.DefaultStyles()

	styles.Levels[log.ErrorLevel] = levelBadge("❌", errorTxtColor)
	styles.Levels[log.InfoLevel] = levelBadge("ℹ️", infoTxtColor)
	styles.Levels[log.WarnLevel] = levelBadge("⚠️", warnTxtColor)
	styles.Levels[log.DebugLevel] = levelBadge("🐛", debugTxtColor)

	keyColors := map[string]lipgloss.AdaptiveColor{
		"error":   errorTxtColor,
		"reason":  warnTxtColor,
		"balance": infoTxtColor,
		"run_id":  debugTxtColor,
		"prefix":  debugTxtColor,
		"caller":  debugTxtColor,
		"time":    debugTxtColor,
		"db_path": debugTxtColor,
	}
	for key, c := range keyColors {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(c)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}
	return styles
}

func levelBadge(symbol string, c lipgloss.AdaptiveColor) lipgloss.Style {
	return lipgloss.NewStyle().
		SetString(symbol).
		Bold(true).
		Padding(0, 1).
		Foreground(c)
}
