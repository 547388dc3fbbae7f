// Package errors renders errors for the command entry point: a consistent
// user-facing prefix on stderr, with the underlying error also logged.
package errors

import (
	"fmt"
	"os"

	"github.com/dcoutinho/tempora/internal/logger"
)

// Format renders err with the "Error: " prefix shown to the user. A nil err
// renders as the empty string.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs err, prints it to stderr, and exits with status 1. A nil err is
// a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}
