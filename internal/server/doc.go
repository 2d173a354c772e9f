// Package server provides the catalog REST API that the client packages talk to.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with Go 1.22 method-qualified patterns.
//
// # Handlers
//
// Each resource gets a [Handler] implementation registering its own routes:
//
//   - [SongHandler]: song CRUD, genre filtering, and free-text search
//   - [UserHandler]: accounts plus the credential login route
//   - [LikedHandler]: per-user liked songs with duplicate rejection
//   - [PlaylistHandler]: playlists holding full song copies, duplicates allowed
//
// Handlers answer JSON throughout; errors take the form {"error": message}.
//
// # Wiring
//
// [App] assembles the router over a migrated SQLite database, applies the
// request logging and rate limiting middleware, and serves until its context
// is cancelled.
package server
