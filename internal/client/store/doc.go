// Package store is the in-memory source of truth of the giftkeeper client.
//
// # Overview
//
// State holds the cached card collection, a loading flag, the last failure and
// the selected card. Every change is expressed as an Action and applied by the
// pure Reduce function; Store serializes dispatches behind a lock and
// notifies subscribers with a snapshot after each one.
//
// Asynchronous operations (Load, AddCard, UpdateCard, DeleteCard,
// ClearAllCards) go through three phases: pending sets Loading and clears the
// previous failure, fulfilled applies the result, rejected records a Failure
// and leaves the cache as it was. The cache only changes after the
// persistence call succeeds.
//
// Read-only views over a State (totals, expired/active/expiring subsets,
// search and status filters) live in selectors.go.
package store
