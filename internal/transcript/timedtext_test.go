package transcript

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"ytscript/internal/youtube"
)

type fakeFormatted struct {
	text      string
	err       error
	videoID   string
	languages []string
}

func (f *fakeFormatted) GetFormattedTranscripts(videoID string, languages []string, _ bool) (string, error) {
	f.videoID = videoID
	f.languages = languages
	return f.text, f.err
}

func TestTimedTextSplitsLines(t *testing.T) {
	client := &fakeFormatted{text: "Never gonna give you up\n\n  Never gonna let you down \n"}
	fetcher := newTimedTextWithClient(client, nil)

	tr, err := fetcher.Fetch(context.Background(), youtube.Video{ID: "dQw4w9WgXcQ"}, []string{"en", "es"})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if tr.Timed || tr.Language != "" {
		t.Fatalf("unexpected transcript metadata %+v", tr)
	}
	if got := tr.Text(true); got != "Never gonna give you up\nNever gonna let you down" {
		t.Fatalf("unexpected text %q", got)
	}
	if client.videoID != "dQw4w9WgXcQ" || !reflect.DeepEqual(client.languages, []string{"en", "es"}) {
		t.Fatalf("unexpected request %s %v", client.videoID, client.languages)
	}
}

func TestTimedTextNarrowsToKnownTrack(t *testing.T) {
	client := &fakeFormatted{text: "hola"}
	video := youtube.Video{
		ID:            "dQw4w9WgXcQ",
		CaptionsKnown: true,
		Captions:      []youtube.CaptionTrack{{LanguageCode: "es", Generated: true}},
	}

	tr, err := newTimedTextWithClient(client, nil).Fetch(context.Background(), video, []string{"en", "es"})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if tr.Language != "es" || !tr.Generated {
		t.Fatalf("unexpected transcript %+v", tr)
	}
	if !reflect.DeepEqual(client.languages, []string{"es"}) {
		t.Fatalf("expected request narrowed to es, got %v", client.languages)
	}
}

func TestTimedTextErrors(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeFormatted
		video  youtube.Video
	}{
		{"library error", &fakeFormatted{err: errors.New("no transcripts found")}, youtube.Video{ID: "dQw4w9WgXcQ"}},
		{"empty text", &fakeFormatted{text: "\n \n"}, youtube.Video{ID: "dQw4w9WgXcQ"}},
		{"no known match", &fakeFormatted{text: "x"}, youtube.Video{
			ID: "dQw4w9WgXcQ", CaptionsKnown: true,
			Captions: []youtube.CaptionTrack{{LanguageCode: "de"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTimedTextWithClient(tt.client, nil).Fetch(context.Background(), tt.video, []string{"en"})
			if !errors.Is(err, ErrNoMatch) {
				t.Fatalf("expected ErrNoMatch, got %v", err)
			}
		})
	}
}

func TestNewSelectsBackend(t *testing.T) {
	client := youtube.New(youtube.Config{})

	f, err := New(Options{}, client, nil)
	if err != nil {
		t.Fatalf("New default: %v", err)
	}
	if _, ok := f.(*innertubeFetcher); !ok {
		t.Fatalf("expected innertube fetcher, got %T", f)
	}

	f, err = New(Options{Backend: "TimedText"}, client, nil)
	if err != nil {
		t.Fatalf("New timedtext: %v", err)
	}
	if _, ok := f.(*timedTextFetcher); !ok {
		t.Fatalf("expected timedtext fetcher, got %T", f)
	}

	if _, err := New(Options{Backend: "whisper"}, client, nil); err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if _, err := New(Options{}, nil, nil); err == nil {
		t.Fatal("expected error without youtube client")
	}
}
