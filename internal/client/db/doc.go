// Package db opens the configured key-value backend for the client.
//
// SQL backends (SQLite, PostgreSQL) get their schema from the embedded goose
// migrations before the repository is handed out; Redis is pinged; the
// memory backend needs nothing.
//
// See Also
//
//   - Open, RunMigrations
//   - kv.Repository
package db
