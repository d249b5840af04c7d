package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"ytscript/internal/config"
	"ytscript/internal/fileutil"
	"ytscript/internal/language"
	"ytscript/internal/logging"
	"ytscript/internal/services"
	"ytscript/internal/textutil"
	"ytscript/internal/transcript"
	"ytscript/internal/youtube"
)

const outputFileMode = 0o644

// MetadataSource resolves the title and caption tracks of a video.
type MetadataSource interface {
	Lookup(ctx context.Context, videoID string) (youtube.Video, error)
}

// Request describes a single extraction.
type Request struct {
	Reference string
	// Languages overrides the configured preference order when non-empty.
	Languages []string
	// Output is used verbatim as the destination path when set.
	Output string
}

// Result describes the file written by Run.
type Result struct {
	Path      string
	VideoID   string
	Title     string
	URL       string
	Language  string
	Generated bool
	Segments  int
}

// Service downloads a transcript and writes it to disk.
type Service struct {
	cfg      *config.Config
	metadata MetadataSource
	fetcher  transcript.Fetcher
	logger   *slog.Logger
}

// NewMetadataSource builds the YouTube client described by cfg.
func NewMetadataSource(cfg *config.Config, logger *slog.Logger) *youtube.Client {
	return youtube.New(youtube.Config{
		HTTPClient: &http.Client{Timeout: cfg.Timeout()},
		UserAgent:  cfg.Transcript.UserAgent,
		Logger:     logger,
	})
}

// NewService wires the configured YouTube client and transcript backend.
func NewService(cfg *config.Config, logger *slog.Logger) (*Service, error) {
	client := NewMetadataSource(cfg, logger)
	fetcher, err := transcript.New(transcript.Options{
		Backend:    cfg.Transcript.Backend,
		Timestamps: cfg.Output.Timestamps,
	}, client, logger)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "select backend", "", err)
	}
	return NewServiceWithDependencies(cfg, client, fetcher, logger), nil
}

// NewServiceWithDependencies allows injecting collaborators (used in tests).
func NewServiceWithDependencies(cfg *config.Config, metadata MetadataSource, fetcher transcript.Fetcher, logger *slog.Logger) *Service {
	return &Service{
		cfg:      cfg,
		metadata: metadata,
		fetcher:  fetcher,
		logger:   logging.NewComponentLogger(logger, "extractor"),
	}
}

// Run resolves req.Reference, fetches its transcript and writes the output
// file. Nothing is written unless every earlier step succeeded.
func (s *Service) Run(ctx context.Context, req Request) (Result, error) {
	started := time.Now()

	videoID, err := youtube.ParseReference(req.Reference)
	if err != nil {
		return Result{}, services.Wrap(services.ErrInvalidReference, "parse reference", fmt.Sprintf("%q", strings.TrimSpace(req.Reference)), err)
	}
	ctx = services.WithVideoID(ctx, videoID)
	logger := logging.WithContext(ctx, s.logger)

	video, err := s.lookup(ctx, logger, videoID)
	if err != nil {
		return Result{}, err
	}

	languages := language.NormalizeList(req.Languages)
	if len(languages) == 0 {
		languages = s.cfg.Transcript.Languages
	}
	logger.Info("fetching transcript",
		logging.String("title", video.Title),
		logging.String("author", video.Author),
		logging.Duration("duration", video.Duration),
		logging.String("languages", strings.Join(languages, ",")),
		logging.String("backend", s.cfg.Transcript.Backend),
	)
	tr, err := s.fetcher.Fetch(ctx, video, languages)
	if err != nil {
		return Result{}, services.Wrap(services.ErrTranscriptUnavailable, "fetch transcript",
			"languages "+strings.Join(languages, ","), err)
	}

	// The output directory is ensured even when an explicit path bypasses it.
	path := s.outputPath(req.Output, video)
	for _, dir := range []string{s.cfg.Output.Dir, filepath.Dir(path)} {
		if err := fileutil.EnsureDir(dir); err != nil {
			return Result{}, services.Wrap(services.ErrFilesystem, "create output directory", dir, err)
		}
	}
	body := Render(video, tr, s.cfg.Output.Timestamps)
	if err := fileutil.WriteFileAtomic(path, []byte(body), outputFileMode); err != nil {
		return Result{}, services.Wrap(services.ErrFilesystem, "write transcript", path, err)
	}

	logger.Info("transcript saved",
		logging.String(logging.FieldEventType, "transcript_saved"),
		logging.String("path", path),
		logging.String("language", tr.Language),
		logging.Bool("generated", tr.Generated),
		logging.Int("segments", len(tr.Segments)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return Result{
		Path:      path,
		VideoID:   video.ID,
		Title:     video.Title,
		URL:       video.URL(),
		Language:  tr.Language,
		Generated: tr.Generated,
		Segments:  len(tr.Segments),
	}, nil
}

func (s *Service) lookup(ctx context.Context, logger *slog.Logger, videoID string) (youtube.Video, error) {
	video, err := s.metadata.Lookup(ctx, videoID)
	if err == nil {
		if video.ID == "" {
			video.ID = videoID
		}
		return video, nil
	}
	if !s.cfg.Output.TitleFallback || ctx.Err() != nil {
		return youtube.Video{}, services.Wrap(services.ErrMetadataUnavailable, "lookup metadata", videoID, err)
	}
	logging.WarnWithContext(logger, "video title unavailable; using video id", "title_fallback",
		logging.Error(err),
		logging.String(logging.FieldImpact, "output file is named after the video id"),
		logging.String(logging.FieldErrorHint, "disable output.title_fallback to fail instead"),
	)
	return youtube.Video{ID: videoID, Title: videoID}, nil
}

// outputPath returns explicit unchanged, or {sanitized title}_{id}.txt inside
// the configured output directory.
func (s *Service) outputPath(explicit string, video youtube.Video) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(s.cfg.Output.Dir, FileName(video.Title, video.ID))
}

// FileName derives the output file name for a video.
func FileName(title, videoID string) string {
	stem := textutil.SanitizeTitle(title)
	if stem == "" {
		stem = videoID
	}
	return stem + "_" + videoID + ".txt"
}
