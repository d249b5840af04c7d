// Package textutil provides filename sanitization for transcript output.
//
// SanitizeTitle turns arbitrary video titles into filename stems that are
// safe on Linux, macOS, and Windows filesystems. It is idempotent, so callers
// may sanitize values that were already sanitized without changing them.
package textutil
