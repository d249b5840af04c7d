// Package youtube resolves video references and talks to YouTube on behalf of
// the extractor.
//
// ParseReference accepts watch URLs, youtu.be share links, embed, shorts and
// live paths, or a bare 11-character ID, and CanonicalURL turns an ID back into
// a watch URL. Client wraps github.com/kkdai/youtube/v2 for video metadata,
// caption track discovery and innertube transcripts. When the player API
// cannot produce a title, Lookup scrapes the watch page instead.
package youtube
