// Package store provides file-based persistence for Parley's local state.
//
// It contains concrete implementations of the domain storage interfaces,
// serialising data as JSON on disk under the user's home directory. Writes
// go through a temp file and rename, so a crash mid-write never leaves a
// half-written file behind. All methods are concurrency-safe via internal
// locking.
//
// The package includes stores for:
//   - The encrypted identity vault (VaultFileStore)
//   - Cached peer public keys (ContactFileStore)
//   - The sent-message archive (OutboxFileStore)
package store
