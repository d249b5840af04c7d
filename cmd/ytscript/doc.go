// Package main hosts the ytscript CLI entrypoint and command graph.
//
// The root command downloads a video's transcript into a text file; tracks
// lists the caption tracks a video offers, and config scaffolds or validates
// the TOML configuration. Commands resolve configuration and logging through
// a shared commandContext and delegate the actual work to internal/extractor,
// then map failures to process exit codes in main.
package main
