// Package services defines shared utilities consumed by the extraction
// workflow and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp correlation identifiers and the video being
//     processed for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     (invalid reference, metadata, transcript, filesystem) and map them to
//     process exit codes.
//
// Use these helpers when wiring new integrations so error classification and
// observability stay uniform across the CLI.
package services
