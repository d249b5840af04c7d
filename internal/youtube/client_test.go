package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	yt "github.com/kkdai/youtube/v2"
)

type fakeAPI struct {
	video         *yt.Video
	videoErr      error
	transcript    yt.VideoTranscript
	transcriptErr error
	videoCalls    int
	langs         []string
}

func (f *fakeAPI) GetVideoContext(_ context.Context, id string) (*yt.Video, error) {
	f.videoCalls++
	if f.videoErr != nil {
		return nil, f.videoErr
	}
	return f.video, nil
}

func (f *fakeAPI) GetTranscriptCtx(_ context.Context, _ *yt.Video, lang string) (yt.VideoTranscript, error) {
	f.langs = append(f.langs, lang)
	if f.transcriptErr != nil {
		return nil, f.transcriptErr
	}
	return f.transcript, nil
}

func TestLookupUsesPlayerAPI(t *testing.T) {
	api := &fakeAPI{video: &yt.Video{
		ID:       "dQw4w9WgXcQ",
		Title:    "Never Gonna Give You Up",
		Author:   "Rick Astley",
		Duration: 213 * time.Second,
		CaptionTracks: []yt.CaptionTrack{
			{LanguageCode: "en", Kind: ""},
			{LanguageCode: "en", Kind: "asr"},
			{LanguageCode: "de"},
		},
	}}
	client := newWithAPI(api, Config{})

	video, err := client.Lookup(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if video.Title != "Never Gonna Give You Up" || video.Author != "Rick Astley" {
		t.Fatalf("unexpected video: %+v", video)
	}
	if !video.CaptionsKnown || len(video.Captions) != 3 {
		t.Fatalf("unexpected captions: %+v", video.Captions)
	}
	if video.Captions[0].Generated || !video.Captions[1].Generated {
		t.Fatalf("expected asr track flagged as generated: %+v", video.Captions)
	}
	if video.URL() != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Fatalf("unexpected url: %s", video.URL())
	}
}

func TestLookupFallsBackToWatchPage(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Query().Get("v") != "dQw4w9WgXcQ" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`<html><head>
			<meta property="og:title" content="Rick &amp; Roll: The Video">
			<title>Ignored - YouTube</title>
		</head><body></body></html>`))
	}))
	defer server.Close()

	api := &fakeAPI{videoErr: errors.New("player response unavailable")}
	client := newWithAPI(api, Config{
		HTTPClient:     server.Client(),
		UserAgent:      "ytscript/test",
		WatchURLPrefix: server.URL + "/watch?v=",
	})

	video, err := client.Lookup(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if video.Title != "Rick & Roll: The Video" {
		t.Fatalf("unexpected title: %q", video.Title)
	}
	if video.ID != "dQw4w9WgXcQ" || video.CaptionsKnown {
		t.Fatalf("unexpected fallback video: %+v", video)
	}
	if gotUA != "ytscript/test" {
		t.Fatalf("expected configured user agent, got %q", gotUA)
	}
}

func TestLookupFailsWhenBothSourcesFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	apiErr := errors.New("video unavailable")
	client := newWithAPI(&fakeAPI{videoErr: apiErr}, Config{
		HTTPClient:     server.Client(),
		WatchURLPrefix: server.URL + "/watch?v=",
	})

	_, err := client.Lookup(context.Background(), "dQw4w9WgXcQ")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, apiErr) {
		t.Fatalf("expected API error to be retained, got %v", err)
	}
	if !strings.Contains(err.Error(), "500") {
		t.Fatalf("expected watch page status in error, got %v", err)
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name    string
		page    string
		want    string
		wantErr bool
	}{
		{"og title", `<meta property="og:title" content="  Spaced Title ">`, "Spaced Title", false},
		{"name attribute", `<meta name="og:title" content="Named">`, "Named", false},
		{"title tag", `<html><head><title>Some Video - YouTube</title></head></html>`, "Some Video", false},
		{"bare site title", `<title>YouTube</title>`, "", true},
		{"nothing", `<html><body><p>hi</p></body></html>`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractTitle(strings.NewReader(tt.page))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("extractTitle returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("extractTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCaptionsConvertsSegments(t *testing.T) {
	api := &fakeAPI{
		video: &yt.Video{ID: "dQw4w9WgXcQ", Title: "T"},
		transcript: yt.VideoTranscript{
			{Text: "Never gonna give you up", StartMs: 18000, Duration: 3500},
			{Text: "   ", StartMs: 21500, Duration: 100},
			{Text: " Never gonna let you down ", StartMs: 21600, Duration: 2400},
		},
	}
	client := newWithAPI(api, Config{})

	video, err := client.Lookup(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	captions, err := client.Captions(context.Background(), video, "en")
	if err != nil {
		t.Fatalf("Captions returned error: %v", err)
	}
	if len(captions) != 2 {
		t.Fatalf("expected blank segments dropped, got %d captions", len(captions))
	}
	if captions[0].Start != 18*time.Second || captions[0].Duration != 3500*time.Millisecond {
		t.Fatalf("unexpected timing: %+v", captions[0])
	}
	if captions[1].Text != "Never gonna let you down" {
		t.Fatalf("expected trimmed text, got %q", captions[1].Text)
	}
	if api.videoCalls != 1 {
		t.Fatalf("expected cached player response to be reused, got %d lookups", api.videoCalls)
	}
	if len(api.langs) != 1 || api.langs[0] != "en" {
		t.Fatalf("unexpected transcript requests: %v", api.langs)
	}
}

func TestCaptionsReloadsVideoWithoutPlayerResponse(t *testing.T) {
	api := &fakeAPI{
		video:      &yt.Video{ID: "dQw4w9WgXcQ", Title: "T"},
		transcript: yt.VideoTranscript{{Text: "hello", StartMs: 0, Duration: 1000}},
	}
	client := newWithAPI(api, Config{})

	if _, err := client.Captions(context.Background(), Video{ID: "dQw4w9WgXcQ"}, "en"); err != nil {
		t.Fatalf("Captions returned error: %v", err)
	}
	if api.videoCalls != 1 {
		t.Fatalf("expected player response to be loaded once, got %d", api.videoCalls)
	}
}

func TestCaptionsPropagatesDisabled(t *testing.T) {
	api := &fakeAPI{
		video:         &yt.Video{ID: "dQw4w9WgXcQ", Title: "T"},
		transcriptErr: yt.ErrTranscriptDisabled,
	}
	client := newWithAPI(api, Config{})

	_, err := client.Captions(context.Background(), Video{ID: "dQw4w9WgXcQ"}, "en")
	if !errors.Is(err, ErrTranscriptDisabled) {
		t.Fatalf("expected ErrTranscriptDisabled, got %v", err)
	}
}
