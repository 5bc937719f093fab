// Package kv implements the key-value store that backs gift-card
// persistence. Values are opaque byte slices addressed by string keys.
//
// Backends: SQLite (default), PostgreSQL, Redis and an in-memory map for
// tests and throwaway sessions. All of them follow the same contract: Get on
// an absent key returns (nil, nil), Set upserts, Delete is idempotent.
package kv
