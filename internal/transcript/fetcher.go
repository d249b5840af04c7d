package transcript

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"ytscript/internal/config"
	"ytscript/internal/youtube"
)

// Fetcher retrieves a transcript in the first available preferred language.
type Fetcher interface {
	Fetch(ctx context.Context, video youtube.Video, languages []string) (Transcript, error)
}

// Options configures backend selection.
type Options struct {
	Backend string
	// Timestamps asks backends that format text themselves to include
	// timestamps. Timed backends ignore it; rendering handles them.
	Timestamps bool
}

// New returns the Fetcher for opts.Backend. The innertube backend reuses
// client for transcript requests.
func New(opts Options, client *youtube.Client, logger *slog.Logger) (Fetcher, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", config.BackendInnertube:
		if client == nil {
			return nil, errors.New("innertube backend requires a youtube client")
		}
		return newInnertube(client, logger), nil
	case config.BackendTimedText:
		return newTimedText(opts.Timestamps, logger), nil
	default:
		return nil, fmt.Errorf("unsupported transcript backend %q", opts.Backend)
	}
}
