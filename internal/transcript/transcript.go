package transcript

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoMatch reports that none of the preferred languages has a transcript.
var ErrNoMatch = errors.New("no transcript in the preferred languages")

// Segment is one line of a transcript.
type Segment struct {
	Start    time.Duration
	Duration time.Duration
	Text     string
}

// Transcript is the caption text fetched for a single video.
type Transcript struct {
	VideoID string
	// Language is the language code that was fetched. It is empty when the
	// backend does not report which preference it satisfied.
	Language  string
	Generated bool
	// Timed is false when segment timings are unknown and any timestamps are
	// already part of the segment text.
	Timed    bool
	Segments []Segment
}

// Text renders the transcript as plain text, one segment per line. When
// timestamps is set and timings are known, each line is prefixed with the
// start offset in seconds.
func (t Transcript) Text(timestamps bool) string {
	var b strings.Builder
	for i, seg := range t.Segments {
		if i > 0 {
			b.WriteByte('\n')
		}
		if timestamps && t.Timed {
			fmt.Fprintf(&b, "[%0.2f] ", seg.Start.Seconds())
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

// Empty reports whether the transcript carries no text.
func (t Transcript) Empty() bool {
	for _, seg := range t.Segments {
		if strings.TrimSpace(seg.Text) != "" {
			return false
		}
	}
	return true
}
