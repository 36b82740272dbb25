package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/panzer/habutax/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an
// ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("habutax", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
HabuTax - compute US tax forms from your answers.

Usage:
  habutax [options] [ANSWERS_PATH]

Arguments:
  ANSWERS_PATH
    Path to a single .hcl answer file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	answersFlag := flagSet.String("answers", "", "Path to the answer file or directory.")
	yearFlag := flagSet.Int("year", 2023, "Tax year to compute forms for.")
	formFlag := flagSet.String("form", "1040", "Name of the form to file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	dumpFlag := flagSet.Bool("dump", false, "Dump the full resolved value set after a complete run.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := *answersFlag
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if path == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	return &app.Config{
		AnswersPath: path,
		Year:        *yearFlag,
		Form:        *formFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		Dump:        *dumpFlag,
	}, false, nil
}
