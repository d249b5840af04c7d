// Package transcript fetches caption text for a resolved video and renders it
// as plain text.
//
// Two backends implement Fetcher. The innertube backend (default) selects a
// caption track from the video metadata, preferring manually created tracks,
// and downloads it through the youtube client. The timedtext backend hands the
// request to github.com/horiagug/youtube-transcript-api-go. Both return
// ErrNoMatch when none of the preferred languages can be served.
package transcript
