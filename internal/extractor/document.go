package extractor

import (
	"strings"

	"ytscript/internal/transcript"
	"ytscript/internal/youtube"
)

// Render builds the output file contents: the title, the canonical URL, a
// blank line and the transcript text.
func Render(video youtube.Video, tr transcript.Transcript, timestamps bool) string {
	title := strings.Join(strings.Fields(video.Title), " ")
	if title == "" {
		title = video.ID
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteByte('\n')
	b.WriteString(video.URL())
	b.WriteString("\n\n")
	b.WriteString(tr.Text(timestamps))
	b.WriteByte('\n')
	return b.String()
}
