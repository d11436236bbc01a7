package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(reportError(os.Stderr, err))
	}
}

// reportError prints err to w and returns the process exit code for it.
func reportError(w io.Writer, err error) int {
	var ece *exitCodeError
	if errors.As(err, &ece) {
		if ece.msg != "" {
			_, _ = fmt.Fprintln(w, ece.msg)
		}
		return ece.code
	}
	if errors.Is(err, context.Canceled) {
		_, _ = fmt.Fprintln(w, "merchgroup: canceled")
		return ExitCanceled
	}
	_, _ = fmt.Fprintln(w, err.Error())
	return ExitInvalidArgs
}
