package youtube

import (
	"time"

	yt "github.com/kkdai/youtube/v2"
)

// Video is the metadata ytscript needs about a single video.
type Video struct {
	ID       string
	Title    string
	Author   string
	Duration time.Duration
	Captions []CaptionTrack
	// CaptionsKnown is false when metadata came from the HTML fallback and the
	// caption track list could not be read.
	CaptionsKnown bool

	raw *yt.Video
}

// URL returns the canonical watch URL.
func (v Video) URL() string {
	return CanonicalURL(v.ID)
}

// CaptionTrack describes one caption track a video offers.
type CaptionTrack struct {
	LanguageCode string
	Generated    bool
}

// Caption is a single timed line of a fetched transcript.
type Caption struct {
	Start    time.Duration
	Duration time.Duration
	Text     string
}

func videoFromAPI(v *yt.Video) Video {
	tracks := make([]CaptionTrack, 0, len(v.CaptionTracks))
	for _, track := range v.CaptionTracks {
		if track.LanguageCode == "" {
			continue
		}
		tracks = append(tracks, CaptionTrack{
			LanguageCode: track.LanguageCode,
			Generated:    track.Kind == "asr",
		})
	}
	return Video{
		ID:            v.ID,
		Title:         v.Title,
		Author:        v.Author,
		Duration:      v.Duration,
		Captions:      tracks,
		CaptionsKnown: true,
		raw:           v,
	}
}
