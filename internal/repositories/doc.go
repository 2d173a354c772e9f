// Package repositories implements SQLite persistence for all domain entities.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [SongRepository] : Catalog song persistence with genre lookups
//   - [UserRepository] : User accounts with email-based lookups for the auth routes
//   - [LikedSongRepository] : Per-user liked entries with duplicate-like detection
//   - [PlaylistRepository] : Playlists with ordered, duplicate-permitting embedded song copies
//
// Sequence numbers provide stable, human-readable ordering (e.g., user #42, playlist #15) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
