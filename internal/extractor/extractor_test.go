package extractor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ytscript/internal/config"
	"ytscript/internal/services"
	"ytscript/internal/transcript"
	"ytscript/internal/youtube"
)

const rickrollID = "dQw4w9WgXcQ"

type fakeMetadata struct {
	video youtube.Video
	err   error
	calls int
}

func (f *fakeMetadata) Lookup(_ context.Context, videoID string) (youtube.Video, error) {
	f.calls++
	if f.err != nil {
		return youtube.Video{}, f.err
	}
	video := f.video
	video.ID = videoID
	return video, nil
}

type fakeFetcher struct {
	transcript transcript.Transcript
	err        error
	languages  []string
}

func (f *fakeFetcher) Fetch(_ context.Context, video youtube.Video, languages []string) (transcript.Transcript, error) {
	f.languages = languages
	if f.err != nil {
		return transcript.Transcript{}, f.err
	}
	tr := f.transcript
	tr.VideoID = video.ID
	return tr, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Output.Dir = filepath.Join(t.TempDir(), "transcripts")
	return &cfg
}

func sampleTranscript() transcript.Transcript {
	return transcript.Transcript{
		Language: "en",
		Timed:    true,
		Segments: []transcript.Segment{
			{Start: 18 * time.Second, Text: "We're no strangers to love"},
			{Start: 22 * time.Second, Text: "You know the rules and so do I"},
		},
	}
}

func newTestService(cfg *config.Config, meta *fakeMetadata, fetcher *fakeFetcher) *Service {
	return NewServiceWithDependencies(cfg, meta, fetcher, nil)
}

func TestRunWritesTranscriptFile(t *testing.T) {
	cfg := testConfig(t)
	meta := &fakeMetadata{video: youtube.Video{Title: "Rick Astley - Never Gonna Give You Up (Official Video)"}}
	fetcher := &fakeFetcher{transcript: sampleTranscript()}

	result, err := newTestService(cfg, meta, fetcher).Run(context.Background(), Request{Reference: rickrollID})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	wantPath := filepath.Join(cfg.Output.Dir, "Rick Astley - Never Gonna Give You Up (Official Video)_dQw4w9WgXcQ.txt")
	if result.Path != wantPath {
		t.Fatalf("path = %q, want %q", result.Path, wantPath)
	}
	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "Rick Astley - Never Gonna Give You Up (Official Video)\n" +
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ\n" +
		"\n" +
		"We're no strangers to love\nYou know the rules and so do I\n"
	if string(data) != want {
		t.Fatalf("unexpected contents:\n%s", data)
	}
	if strings.Join(fetcher.languages, ",") != "en" {
		t.Fatalf("expected default languages, got %v", fetcher.languages)
	}
}

func TestRunURLRoundTripsToFileName(t *testing.T) {
	cfg := testConfig(t)
	meta := &fakeMetadata{video: youtube.Video{Title: "Title"}}
	fetcher := &fakeFetcher{transcript: sampleTranscript()}

	result, err := newTestService(cfg, meta, fetcher).Run(context.Background(),
		Request{Reference: "https://youtu.be/" + rickrollID + "?t=42"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(string(data), "\n")
	id, err := youtube.ParseReference(lines[1])
	if err != nil {
		t.Fatalf("parse url line: %v", err)
	}
	if !strings.HasSuffix(result.Path, "_"+id+".txt") {
		t.Fatalf("file name %q does not end with id %q", result.Path, id)
	}
}

func TestRunExplicitOutputUsedVerbatim(t *testing.T) {
	cfg := testConfig(t)
	t.Chdir(t.TempDir())
	meta := &fakeMetadata{video: youtube.Video{Title: "Title"}}
	fetcher := &fakeFetcher{transcript: sampleTranscript()}

	result, err := newTestService(cfg, meta, fetcher).Run(context.Background(),
		Request{Reference: rickrollID, Output: "name.txt"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Path != "name.txt" {
		t.Fatalf("path = %q, want name.txt", result.Path)
	}
	if _, err := os.Stat("name.txt"); err != nil {
		t.Fatalf("expected name.txt in working directory: %v", err)
	}
	info, err := os.Stat(cfg.Output.Dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("output directory should be ensured alongside an explicit path, stat err=%v", err)
	}
	if entries, _ := os.ReadDir(cfg.Output.Dir); len(entries) != 0 {
		t.Fatalf("output directory should stay empty, found %d entries", len(entries))
	}
}

func TestRunLanguageOverride(t *testing.T) {
	cfg := testConfig(t)
	fetcher := &fakeFetcher{transcript: sampleTranscript()}
	_, err := newTestService(cfg, &fakeMetadata{video: youtube.Video{Title: "T"}}, fetcher).Run(context.Background(),
		Request{Reference: rickrollID, Languages: []string{"ES", "en_us", "es"}})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got := strings.Join(fetcher.languages, ","); got != "es,en-US" {
		t.Fatalf("languages = %q", got)
	}
}

func TestRunTimestamps(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Timestamps = true
	result, err := newTestService(cfg, &fakeMetadata{video: youtube.Video{Title: "T"}},
		&fakeFetcher{transcript: sampleTranscript()}).Run(context.Background(), Request{Reference: rickrollID})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "\n[18.00] We're no strangers to love\n[22.00] You know") {
		t.Fatalf("expected timestamped lines, got:\n%s", data)
	}
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		meta      *fakeMetadata
		fetcher   *fakeFetcher
		marker    error
		exit      int
	}{
		{
			name:      "invalid reference",
			reference: "https://example.com/watch?v=dQw4w9WgXcQ",
			meta:      &fakeMetadata{},
			fetcher:   &fakeFetcher{},
			marker:    services.ErrInvalidReference,
			exit:      services.ExitInvalidReference,
		},
		{
			name:      "overlong video id",
			reference: "https://youtu.be/dQw4w9WgXcQXYZ",
			meta:      &fakeMetadata{video: youtube.Video{Title: "T"}},
			fetcher:   &fakeFetcher{transcript: sampleTranscript()},
			marker:    services.ErrInvalidReference,
			exit:      services.ExitInvalidReference,
		},
		{
			name:      "metadata unavailable",
			reference: rickrollID,
			meta:      &fakeMetadata{err: errors.New("video unavailable")},
			fetcher:   &fakeFetcher{transcript: sampleTranscript()},
			marker:    services.ErrMetadataUnavailable,
			exit:      services.ExitMetadataUnavailable,
		},
		{
			name:      "transcript unavailable",
			reference: rickrollID,
			meta:      &fakeMetadata{video: youtube.Video{Title: "T"}},
			fetcher:   &fakeFetcher{err: transcript.ErrNoMatch},
			marker:    services.ErrTranscriptUnavailable,
			exit:      services.ExitTranscriptUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			_, err := newTestService(cfg, tt.meta, tt.fetcher).Run(context.Background(), Request{Reference: tt.reference})
			if !errors.Is(err, tt.marker) {
				t.Fatalf("expected %v, got %v", tt.marker, err)
			}
			if code := services.ExitCode(err); code != tt.exit {
				t.Fatalf("exit code = %d, want %d", code, tt.exit)
			}
			if _, statErr := os.Stat(cfg.Output.Dir); !os.IsNotExist(statErr) {
				t.Fatalf("no output should be created on failure, stat err=%v", statErr)
			}
		})
	}
}

func TestRunInvalidReferenceSkipsLookup(t *testing.T) {
	meta := &fakeMetadata{}
	_, err := newTestService(testConfig(t), meta, &fakeFetcher{}).Run(context.Background(), Request{Reference: "not a video"})
	if err == nil {
		t.Fatal("expected error")
	}
	if meta.calls != 0 {
		t.Fatalf("metadata should not be consulted, got %d calls", meta.calls)
	}
}

func TestRunTitleFallback(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.TitleFallback = true
	meta := &fakeMetadata{err: errors.New("video unavailable")}

	result, err := newTestService(cfg, meta, &fakeFetcher{transcript: sampleTranscript()}).Run(context.Background(),
		Request{Reference: rickrollID})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if filepath.Base(result.Path) != rickrollID+"_"+rickrollID+".txt" {
		t.Fatalf("unexpected fallback path %q", result.Path)
	}
}

func TestRunFilesystemError(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	cfg.Output.Dir = filepath.Join(blocker, "transcripts")

	_, err := newTestService(cfg, &fakeMetadata{video: youtube.Video{Title: "T"}},
		&fakeFetcher{transcript: sampleTranscript()}).Run(context.Background(), Request{Reference: rickrollID})
	if !errors.Is(err, services.ErrFilesystem) {
		t.Fatalf("expected ErrFilesystem, got %v", err)
	}
	if services.ExitCode(err) != services.ExitFilesystem {
		t.Fatalf("unexpected exit code %d", services.ExitCode(err))
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Plain", "Plain_" + rickrollID + ".txt"},
		{"AC/DC: Live?", "AC_DC_ Live__" + rickrollID + ".txt"},
		{"  ...  ", rickrollID + "_" + rickrollID + ".txt"},
	}
	for _, tt := range tests {
		if got := FileName(tt.title, rickrollID); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestRenderCollapsesTitleWhitespace(t *testing.T) {
	video := youtube.Video{ID: rickrollID, Title: "Line one\nline  two"}
	got := Render(video, transcript.Transcript{Segments: []transcript.Segment{{Text: "hi"}}}, false)
	want := "Line one line two\nhttps://www.youtube.com/watch?v=dQw4w9WgXcQ\n\nhi\n"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestNewServiceRejectsUnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Transcript.Backend = "whisper"
	if _, err := NewService(cfg, nil); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	cfg.Transcript.Backend = config.BackendTimedText
	if _, err := NewService(cfg, nil); err != nil {
		t.Fatalf("NewService timedtext: %v", err)
	}
}
