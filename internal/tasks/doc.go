// Package tasks orchestrates long-running library operations with real-time progress reporting.
//
// # Core Operations
//
// [LibraryEngine] provides three operations:
//
//  1. [LibraryEngine.Dump] : Fetch the whole library from the catalog
//     - Retrieves songs, playlists, and optionally a user's liked songs
//     - Collects endpoint failures instead of aborting
//     - Returns structured data for backup or analysis
//
//  2. [LibraryEngine.BulkExport] : Export playlists to files
//     - Worker pool with a configurable rate limit against the catalog API
//     - Writes JSON, CSV, Markdown, or plain text via the formatter package
//     - Generates an export_manifest.json summarizing the run
//
//  3. [LibraryEngine.Seed] : Bulk import songs into the catalog
//     - Posts each song in turn, recording rejections
//     - Continues past failures so one bad row never aborts an import
//
// # Progress Reporting
//
// # All operations use non-blocking channels for progress updates
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
