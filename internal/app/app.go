// Package app is the composition root: it wires the form catalog, the
// answer loader, the engine, and the PDF field mapper into one filing
// computation.
package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/panzer/habutax/internal/forms"
	"github.com/panzer/habutax/internal/forms/ty2023"
)

// Config holds everything an App needs to run one filing computation.
type Config struct {
	// AnswersPath is an .hcl answer file or a directory of them.
	AnswersPath string
	// Year selects the form catalog.
	Year int
	// Form is the name of the form being filed (e.g. "1040").
	Form string
	// LogFormat is "text" or "json"; LogLevel is a slog level name.
	LogFormat string
	LogLevel  string
	// Dump prints the full resolved value set after a complete run.
	Dump bool
}

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	catalog *forms.Catalog
	config  *Config
}

// NewApp constructs an App with its own logger and the catalog for the
// configured tax year.
func NewApp(outW io.Writer, config *Config) (*App, error) {
	logger := newLogger(config.LogLevel, config.LogFormat, outW)

	catalog, err := catalogForYear(config.Year)
	if err != nil {
		return nil, err
	}
	logger.Debug("Form catalog loaded.", "year", config.Year, "forms", len(catalog.Definitions()))

	return &App{
		outW:    outW,
		logger:  logger,
		catalog: catalog,
		config:  config,
	}, nil
}

// Catalog returns the app's form catalog. This is primarily for testing.
func (a *App) Catalog() *forms.Catalog {
	return a.catalog
}

// catalogForYear returns the static form catalog for a tax year.
func catalogForYear(year int) (*forms.Catalog, error) {
	switch year {
	case 2023:
		return ty2023.NewCatalog()
	default:
		return nil, fmt.Errorf("no form catalog for tax year %d", year)
	}
}

// newLogger builds the application logger from the configured level and
// format.
func newLogger(level, format string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
