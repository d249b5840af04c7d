// Package extractor implements the transcript extraction workflow behind the
// ytscript command.
//
// Service.Run parses the video reference, resolves the title, fetches the
// transcript in the first available preferred language, and writes
// "{sanitized title}_{video id}.txt" into the output directory (or the
// explicit path the caller supplied). Failures carry the services error
// markers so the CLI can map them to exit codes.
package extractor
