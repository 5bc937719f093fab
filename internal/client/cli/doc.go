// Package cli provides the interactive GiftKeeper terminal client.
//
// It wires configuration, the key-value storage backend, the persistence
// services and the state container behind a small REPL. Typical flow: load
// or ask for the display name, load the wallet, start a background
// expiration refresher, then execute user commands.
//
// Key features:
//   - Sign in with a display name
//   - Add / Edit / Delete / Show gift cards
//   - List, Search, Filter by status, Sort
//   - Wallet statistics and storage info
//   - Brand catalog lookup
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, runREPL and the command methods for details.
package cli
