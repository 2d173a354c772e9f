// Package models defines domain entities and persistence interfaces for the soundhive catalog client.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs matching the catalog API's JSON shapes
//   - [Song] : Catalog song metadata including its audio and artwork URLs
//   - [Playlist] : Named collection of embedded song copies
//   - [LikedSong] : Song copy owned by a user, keyed by email
//   - [User] : Account metadata returned by the users and auth routes
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [PersistedSong] : Songs served by the local catalog server
//   - [PersistedUser] : Accounts with credentials for the auth routes
//   - [PersistedLikedSong] : Liked entries with per-user uniqueness
//   - [PersistedPlaylist] : Playlists with ordered embedded song copies
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
