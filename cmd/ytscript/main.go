package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"ytscript/internal/services"
)

func main() {
	cmd := newRootCommand()
	err := cmd.Execute()
	reportError(os.Stderr, err)
	os.Exit(services.ExitCode(err))
}

func reportError(w io.Writer, err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	if services.ExitCode(err) != services.ExitFailure || errors.Is(err, services.ErrConfiguration) {
		fmt.Fprintf(w, "Hint: %s\n", services.Hint(err))
	}
}
