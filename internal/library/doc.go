// Package library holds the client-side view state kept in sync with the
// remote catalog.
//
//   - [CatalogView] : the fetched song list plus a live search filter
//   - [Playlists] : playlist list and membership, reconciled to server copies after writes
//   - [Liked] : the signed-in user's liked set, patched locally on success
//
// Writes follow one rule: on success, local state is replaced with the
// server's returned copy, never with a locally computed merge; on failure,
// prior local state is left untouched and the error is returned to the
// caller.
package library
