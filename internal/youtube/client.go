package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	yt "github.com/kkdai/youtube/v2"

	"ytscript/internal/logging"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultUserAgent   = "ytscript/dev"
)

// ErrTranscriptDisabled is returned when the uploader disabled transcripts.
var ErrTranscriptDisabled = yt.ErrTranscriptDisabled

// videoAPI is the subset of the kkdai/youtube client used here.
type videoAPI interface {
	GetVideoContext(ctx context.Context, id string) (*yt.Video, error)
	GetTranscriptCtx(ctx context.Context, video *yt.Video, lang string) (yt.VideoTranscript, error)
}

// Config describes the YouTube client configuration.
type Config struct {
	HTTPClient *http.Client
	UserAgent  string
	// WatchURLPrefix overrides the page fetched by the HTML title fallback.
	WatchURLPrefix string
	Logger         *slog.Logger
}

// Client resolves video metadata and caption text.
type Client struct {
	api         videoAPI
	http        *http.Client
	userAgent   string
	watchPrefix string
	logger      *slog.Logger
}

// New creates a Client backed by github.com/kkdai/youtube/v2.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
		cfg.HTTPClient = httpClient
	}
	return newWithAPI(&yt.Client{HTTPClient: httpClient}, cfg)
}

func newWithAPI(api videoAPI, cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	prefix := strings.TrimSpace(cfg.WatchURLPrefix)
	if prefix == "" {
		prefix = WatchURLPrefix
	}
	return &Client{
		api:         api,
		http:        httpClient,
		userAgent:   userAgent,
		watchPrefix: prefix,
		logger:      logging.NewComponentLogger(cfg.Logger, "youtube"),
	}
}

// Lookup resolves the title and caption tracks for videoID. When the player
// API fails, the watch page is scraped for the title; the returned Video then
// has CaptionsKnown set to false.
func (c *Client) Lookup(ctx context.Context, videoID string) (Video, error) {
	logger := logging.WithContext(ctx, c.logger)

	raw, apiErr := c.api.GetVideoContext(ctx, videoID)
	if apiErr == nil && raw != nil && strings.TrimSpace(raw.Title) != "" {
		video := videoFromAPI(raw)
		if video.ID == "" {
			video.ID = videoID
		}
		logger.Debug("video metadata resolved",
			logging.String("title", video.Title),
			logging.Int("caption_tracks", len(video.Captions)),
		)
		return video, nil
	}
	if apiErr == nil {
		apiErr = errors.New("player response carried no title")
	}
	if ctx.Err() != nil {
		return Video{}, fmt.Errorf("lookup %s: %w", videoID, ctx.Err())
	}

	logger.Debug("player API lookup failed; trying watch page", logging.Error(apiErr))
	title, scrapeErr := c.scrapeTitle(ctx, videoID)
	if scrapeErr != nil {
		return Video{}, fmt.Errorf("lookup %s: %w", videoID, errors.Join(apiErr, scrapeErr))
	}

	logging.WarnWithContext(logger, "video metadata resolved from watch page", "metadata_fallback",
		logging.Error(apiErr),
		logging.String(logging.FieldImpact, "caption track list unavailable; languages are tried one by one"),
		logging.String(logging.FieldErrorHint, "video may be age-restricted or the player API changed"),
	)
	return Video{ID: videoID, Title: title}, nil
}

// Captions fetches the transcript of video in lang through the innertube
// transcript endpoint.
func (c *Client) Captions(ctx context.Context, video Video, lang string) ([]Caption, error) {
	raw := video.raw
	if raw == nil {
		fetched, err := c.api.GetVideoContext(ctx, video.ID)
		if err != nil {
			return nil, fmt.Errorf("load video %s: %w", video.ID, err)
		}
		raw = fetched
	}

	segments, err := c.api.GetTranscriptCtx(ctx, raw, lang)
	if err != nil {
		return nil, fmt.Errorf("fetch %s transcript: %w", lang, err)
	}

	captions := make([]Caption, 0, len(segments))
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		captions = append(captions, Caption{
			Start:    time.Duration(seg.StartMs) * time.Millisecond,
			Duration: time.Duration(seg.Duration) * time.Millisecond,
			Text:     text,
		})
	}
	return captions, nil
}
