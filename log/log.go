package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
)

// Verbose controls whether debug messages are being printed.
var Verbose bool

// IndentationLevel controls the amount of indentation of log messages.
var IndentationLevel = 0

// Spinner indicates progress of long running operations.
var Spinner = spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))

const kindField = "kind"
const kindSuccess = "success"

var errorOccured = false

var logger = &logrus.Logger{
	Out:       os.Stderr,
	Formatter: &formatter{},
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.DebugLevel,
}

// formatter renders entries the way the console output has always looked:
// indented, with a colored prefix for everything but plain messages.
type formatter struct{}

func (f *formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	indent := 0
	if v, ok := entry.Data["indent"].(int); ok {
		indent = v
	}
	b.WriteString(strings.Repeat("  ", indent))

	switch {
	case entry.Data[kindField] == kindSuccess:
		b.WriteString("\033[32mSuccess: \033[0m")
	case entry.Level == logrus.DebugLevel:
		b.WriteString("\033[36mDebug: \033[0m")
	case entry.Level == logrus.WarnLevel:
		b.WriteString("\033[33mWarning: \033[0m")
	case entry.Level <= logrus.ErrorLevel:
		b.WriteString("\033[31mError: \033[0m")
	}

	b.WriteString(entry.Message)
	if !strings.HasSuffix(entry.Message, "\n") {
		b.WriteByte('\n')
	}
	return b.Bytes(), nil
}

func entry() *logrus.Entry {
	return logger.WithField("indent", IndentationLevel)
}

// SetOutput redirects all log messages to `w`.
func SetOutput(w io.Writer) {
	logger.Out = w
}

// ErrorOccured reports whether any errors have occured.
func ErrorOccured() bool {
	return errorOccured
}

// Log prints an indented and formatted message to os.Stderr.
func Log(format string, a ...interface{}) {
	entry().Infof(format, a...)
}

// Debug prints an indented and formatted debug message to os.Stderr if verbose output is selected.
func Debug(format string, a ...interface{}) {
	if Verbose {
		entry().Debugf(format, a...)
	}
}

// Success prints an indented and formatted success message to os.Stderr.
func Success(format string, a ...interface{}) {
	entry().WithField(kindField, kindSuccess).Infof(format, a...)
}

// Warning prints an indented and formatted warning to os.Stderr.
func Warning(format string, a ...interface{}) {
	entry().Warnf(format, a...)
}

// Error prints an indented and formatted error message to os.Stderr.
func Error(format string, a ...interface{}) {
	errorOccured = true
	entry().Errorf(format, a...)
}

// Fatal prints an indented and formatted error message to os.Stderr and terminates the program.
func Fatal(format string, a ...interface{}) {
	Error(format, a...)
	fmt.Fprintf(logger.Out, "\033[31mA fatal error occured. Exiting...\033[0m\n")
	os.Exit(1)
}
