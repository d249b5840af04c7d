package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidReference      = errors.New("invalid video reference")
	ErrMetadataUnavailable   = errors.New("video metadata unavailable")
	ErrTranscriptUnavailable = errors.New("transcript unavailable")
	ErrFilesystem            = errors.New("filesystem error")
	ErrConfiguration         = errors.New("configuration error")
)

// Process exit codes reported by the CLI for each failure class.
const (
	ExitOK                    = 0
	ExitFailure               = 1
	ExitInvalidReference      = 2
	ExitMetadataUnavailable   = 3
	ExitTranscriptUnavailable = 4
	ExitFilesystem            = 5
)

// Wrap builds an error message that includes operation context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrConfiguration
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps an error returned by the extraction workflow to the process
// exit status. A nil error maps to ExitOK.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInvalidReference):
		return ExitInvalidReference
	case errors.Is(err, ErrMetadataUnavailable):
		return ExitMetadataUnavailable
	case errors.Is(err, ErrTranscriptUnavailable):
		return ExitTranscriptUnavailable
	case errors.Is(err, ErrFilesystem):
		return ExitFilesystem
	default:
		return ExitFailure
	}
}

// Hint returns a short remediation hint for the failure class of err.
func Hint(err error) string {
	switch {
	case errors.Is(err, ErrInvalidReference):
		return "pass a watch URL, a youtu.be share link, or an 11-character video ID"
	case errors.Is(err, ErrMetadataUnavailable):
		return "check network access and that the video is public"
	case errors.Is(err, ErrTranscriptUnavailable):
		return "run `ytscript tracks <video>` to list available languages"
	case errors.Is(err, ErrFilesystem):
		return "check permissions and free space for the output directory"
	case errors.Is(err, ErrConfiguration):
		return "run `ytscript config validate`"
	default:
		return "check logs for details"
	}
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "operation failed"
	}
	return strings.Join(parts, ": ")
}
