package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"ytscript/internal/extractor"
	"ytscript/internal/language"
)

const (
	ansiReset = "\x1b[0m"
	ansiGreen = "\x1b[32m"
	ansiDim   = "\x1b[2m"
)

func printResult(w io.Writer, result extractor.Result, colorize bool) {
	line := "Transcript saved to " + result.Path
	if colorize {
		line = ansiGreen + line + ansiReset
	}
	fmt.Fprintln(w, line)

	detail := fmt.Sprintf("%s (%s)", result.Title, result.URL)
	if result.Language != "" {
		kind := "manual"
		if result.Generated {
			kind = "auto-generated"
		}
		detail = fmt.Sprintf("%s, %s %s transcript, %d segments",
			detail, language.DisplayName(result.Language), kind, result.Segments)
	}
	if colorize {
		detail = ansiDim + detail + ansiReset
	}
	fmt.Fprintln(w, detail)
}

func shouldColorize(writer io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
