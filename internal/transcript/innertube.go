package transcript

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"ytscript/internal/language"
	"ytscript/internal/logging"
	"ytscript/internal/youtube"
)

type captionSource interface {
	Captions(ctx context.Context, video youtube.Video, lang string) ([]youtube.Caption, error)
}

type innertubeFetcher struct {
	source captionSource
	logger *slog.Logger
}

func newInnertube(source captionSource, logger *slog.Logger) *innertubeFetcher {
	return &innertubeFetcher{
		source: source,
		logger: logging.NewComponentLogger(logger, "transcript"),
	}
}

// Fetch picks a language from the video's caption tracks when they are known
// and otherwise asks for each preference in turn.
func (f *innertubeFetcher) Fetch(ctx context.Context, video youtube.Video, languages []string) (Transcript, error) {
	logger := logging.WithContext(ctx, f.logger)
	if !video.CaptionsKnown {
		return f.tryEach(ctx, logger, video, languages)
	}

	if len(video.Captions) == 0 {
		return Transcript{}, fmt.Errorf("%w: video offers no caption tracks", ErrNoMatch)
	}
	offered, generated := rankTracks(video.Captions)
	code, ok := language.Match(languages, offered)
	if !ok {
		return Transcript{}, fmt.Errorf("%w: wanted %s, video offers %s",
			ErrNoMatch, strings.Join(languages, ","), strings.Join(offered, ","))
	}

	logger.Debug("caption track selected",
		logging.String("language", code),
		logging.Bool("generated", generated[code]),
	)
	captions, err := f.source.Captions(ctx, video, code)
	if err != nil {
		return Transcript{}, err
	}
	t := build(video.ID, code, generated[code], captions)
	if t.Empty() {
		return Transcript{}, fmt.Errorf("%w: %s transcript is empty", ErrNoMatch, code)
	}
	return t, nil
}

func (f *innertubeFetcher) tryEach(ctx context.Context, logger *slog.Logger, video youtube.Video, languages []string) (Transcript, error) {
	var errs []error
	for _, code := range languages {
		if err := ctx.Err(); err != nil {
			return Transcript{}, err
		}
		captions, err := f.source.Captions(ctx, video, code)
		if err != nil {
			if errors.Is(err, youtube.ErrTranscriptDisabled) {
				return Transcript{}, err
			}
			logger.Debug("transcript language unavailable", logging.String("language", code), logging.Error(err))
			errs = append(errs, err)
			continue
		}
		t := build(video.ID, code, false, captions)
		if t.Empty() {
			continue
		}
		return t, nil
	}
	if len(errs) > 0 {
		return Transcript{}, fmt.Errorf("%w: %w", ErrNoMatch, errors.Join(errs...))
	}
	return Transcript{}, ErrNoMatch
}

// rankTracks lists offered language codes with manually created tracks ahead
// of auto-generated ones. generated marks codes that only have an
// auto-generated track.
func rankTracks(tracks []youtube.CaptionTrack) ([]string, map[string]bool) {
	manual := make(map[string]bool, len(tracks))
	for _, track := range tracks {
		if !track.Generated {
			manual[track.LanguageCode] = true
		}
	}

	offered := make([]string, 0, len(tracks))
	generated := make(map[string]bool, len(tracks))
	seen := make(map[string]bool, len(tracks))
	for _, pass := range []bool{false, true} {
		for _, track := range tracks {
			if track.Generated != pass || seen[track.LanguageCode] {
				continue
			}
			if pass && manual[track.LanguageCode] {
				continue
			}
			seen[track.LanguageCode] = true
			offered = append(offered, track.LanguageCode)
			generated[track.LanguageCode] = pass
		}
	}
	return offered, generated
}

func build(videoID, code string, generated bool, captions []youtube.Caption) Transcript {
	segments := make([]Segment, 0, len(captions))
	for _, c := range captions {
		segments = append(segments, Segment{Start: c.Start, Duration: c.Duration, Text: c.Text})
	}
	return Transcript{
		VideoID:   videoID,
		Language:  code,
		Generated: generated,
		Timed:     true,
		Segments:  segments,
	}
}
