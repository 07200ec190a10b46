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

// Spinner is displayed while an external tool is running.
var Spinner = newSpinner()

const kindField = "kind"

const (
	kindPlain   = "plain"
	kindSuccess = "success"
)

var logger = &logrus.Logger{
	Out:       os.Stdout,
	Formatter: &consoleFormatter{},
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.DebugLevel,
	ExitFunc:  os.Exit,
}

// consoleFormatter prints messages the way an operator reads them: no timestamps, an
// indentation prefix and a colored label for anything that is not a plain message.
type consoleFormatter struct{}

func (f *consoleFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(strings.Repeat("  ", IndentationLevel))

	kind, _ := entry.Data[kindField].(string)
	switch {
	case kind == kindPlain:
	case kind == kindSuccess:
		b.WriteString("\033[32mSuccess: \033[0m")
	case entry.Level == logrus.DebugLevel:
		b.WriteString("\033[36mDebug: \033[0m")
	case entry.Level == logrus.WarnLevel:
		b.WriteString("\033[33mWarning: \033[0m")
	case entry.Level <= logrus.ErrorLevel:
		b.WriteString("\033[31mError: \033[0m")
	}
	b.WriteString(entry.Message)
	return b.Bytes(), nil
}

func newSpinner() *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Writer = os.Stderr
	return s
}

// SetOutput redirects all log messages to `w`.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetExitFunc replaces the function called by Fatal to terminate the process.
func SetExitFunc(exit func(int)) {
	logger.ExitFunc = exit
}

// Log prints an indented and formatted message to os.Stdout.
func Log(format string, a ...interface{}) {
	logger.WithField(kindField, kindPlain).Infof(format, a...)
}

// Debug prints an indented and formatted debug message to os.Stdout if verbose output is selected.
func Debug(format string, a ...interface{}) {
	if Verbose {
		logger.Debugf(format, a...)
	}
}

// Success prints an indented and formatted success message to os.Stdout.
func Success(format string, a ...interface{}) {
	logger.WithField(kindField, kindSuccess).Infof(format, a...)
}

// Warning prints an indented and formatted warning to os.Stdout.
func Warning(format string, a ...interface{}) {
	logger.Warnf(format, a...)
}

// Error prints an indented and formatted error message to os.Stdout.
func Error(format string, a ...interface{}) {
	logger.Errorf(format, a...)
}

// Fatal prints an indented and formatted error message to os.Stdout and terminates the program.
func Fatal(format string, a ...interface{}) {
	Error(format, a...)
	fmt.Fprintf(logger.Out, "\033[31mA fatal error occured. Exiting...\033[0m\n")
	logger.Exit(1)
}
