package main

import "fmt"

// Exit codes for the merchgroup CLI.
const (
	ExitOK          = 0 // Run completed and output was written.
	ExitInvalidArgs = 1 // Bad flags, config or input paths.
	ExitRunFailure  = 2 // Ingest, clustering or output failed.
	ExitCanceled    = 3 // Interrupted before output was written.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitRunFailure:
			msg = "merchgroup: run failed"
		case ExitCanceled:
			msg = "merchgroup: canceled"
		default:
			msg = "merchgroup: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}
