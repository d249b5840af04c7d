package youtube

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// WatchURLPrefix is the canonical watch URL every video ID is rendered into.
const WatchURLPrefix = "https://www.youtube.com/watch?v="

// ErrInvalidReference is returned when a reference does not contain a video ID.
var ErrInvalidReference = errors.New("not a YouTube video URL or ID")

var (
	videoIDPattern = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)
	// shareLinkPattern covers v= query parameters and path-style links
	// (youtu.be/, /embed/, /shorts/, /live/). The ID must end at a separator
	// or the end of the reference, so longer tokens are rejected.
	shareLinkPattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})(?:[?&#/]|$)`)
)

// ParseReference extracts the 11-character video ID from a watch URL, a share
// link, an embed/shorts/live URL, or a bare ID.
func ParseReference(raw string) (string, error) {
	ref := strings.TrimSpace(raw)
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrInvalidReference)
	}
	if videoIDPattern.MatchString(ref) {
		return ref, nil
	}
	if !looksLikeURL(ref) {
		return "", fmt.Errorf("%w: %q", ErrInvalidReference, raw)
	}
	if m := shareLinkPattern.FindStringSubmatch(ref); m != nil {
		return m[1], nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidReference, raw)
}

// CanonicalURL returns the watch URL for a video ID.
func CanonicalURL(videoID string) string {
	return WatchURLPrefix + videoID
}

func looksLikeURL(ref string) bool {
	if strings.ContainsAny(ref, " \t\n") {
		return false
	}
	candidate := ref
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	switch host {
	case "youtube.com", "m.youtube.com", "music.youtube.com", "youtu.be", "youtube-nocookie.com":
		return true
	default:
		return false
	}
}
