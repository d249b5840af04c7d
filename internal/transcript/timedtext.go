package transcript

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript"
	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript_formatters"

	"ytscript/internal/language"
	"ytscript/internal/logging"
	"ytscript/internal/youtube"
)

type formattedClient interface {
	GetFormattedTranscripts(videoID string, languages []string, preserveFormatting bool) (string, error)
}

// timedTextFetcher delegates to github.com/horiagug/youtube-transcript-api-go,
// which reads the timedtext endpoint and formats the result itself.
type timedTextFetcher struct {
	client formattedClient
	logger *slog.Logger
}

func newTimedText(timestamps bool, logger *slog.Logger) *timedTextFetcher {
	var formatter yt_transcript_formatters.Formatter = yt_transcript_formatters.NewTextFormatter(
		yt_transcript_formatters.WithTimestamps(timestamps),
		yt_transcript_formatters.WithLanguageCode(false),
	)
	return newTimedTextWithClient(yt_transcript.NewClient(yt_transcript.WithFormatter(formatter)), logger)
}

func newTimedTextWithClient(client formattedClient, logger *slog.Logger) *timedTextFetcher {
	return &timedTextFetcher{
		client: client,
		logger: logging.NewComponentLogger(logger, "transcript"),
	}
}

func (f *timedTextFetcher) Fetch(ctx context.Context, video youtube.Video, languages []string) (Transcript, error) {
	if err := ctx.Err(); err != nil {
		return Transcript{}, err
	}
	logger := logging.WithContext(ctx, f.logger)

	wanted := languages
	chosen := ""
	generated := false
	if video.CaptionsKnown {
		offered, gen := rankTracks(video.Captions)
		code, ok := language.Match(languages, offered)
		if !ok {
			return Transcript{}, fmt.Errorf("%w: wanted %s, video offers %s",
				ErrNoMatch, strings.Join(languages, ","), strings.Join(offered, ","))
		}
		wanted = []string{code}
		chosen = code
		generated = gen[code]
	}

	logger.Debug("requesting timedtext transcript", logging.Any("languages", wanted))
	text, err := f.client.GetFormattedTranscripts(video.ID, wanted, false)
	if err != nil {
		return Transcript{}, fmt.Errorf("%w: %w", ErrNoMatch, err)
	}

	var segments []Segment
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		segments = append(segments, Segment{Text: line})
	}
	t := Transcript{
		VideoID:   video.ID,
		Language:  chosen,
		Generated: generated,
		Segments:  segments,
	}
	if t.Empty() {
		return Transcript{}, fmt.Errorf("%w: transcript is empty", ErrNoMatch)
	}
	return t, nil
}
