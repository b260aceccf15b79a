package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/nvmd/nvmd/src/internal/constants"
)

var verboseMode bool

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "nvmd",
	Level:  log.InfoLevel,
})

// SetVerbose toggles debug logging
func SetVerbose(verbose bool) {
	logger.SetOutput(out)
	verboseMode = verbose
	if verbose {
		logger.SetLevel(log.DebugLevel)
		return
	}
	logger.SetLevel(log.InfoLevel)
}

// IsVerbose reports whether debug logging is enabled
func IsVerbose() bool {
	return verboseMode
}

// CheckVerboseEnv enables debug logging when NVMD_DEBUG is set to a truthy value.
// Shim mode has no flags of its own, so this is its only switch.
func CheckVerboseEnv() {
	switch strings.ToLower(os.Getenv(constants.EnvDebug)) {
	case "1", "true", "yes", "on":
		SetVerbose(true)
	}
}

// Debug logs a message only when verbose output is enabled
func Debug(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// IsTerminal reports whether ui output is attached to a terminal
func IsTerminal() bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Confirm asks a yes/no question on stderr and reads the answer from stdin.
// An empty answer selects defaultYes.
func Confirm(question string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	_, _ = fmt.Fprintf(out, "%s %s: ", question, hint)

	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))

	if response == "" {
		return defaultYes
	}
	return response == constants.ResponseY || response == constants.ResponseYes
}
