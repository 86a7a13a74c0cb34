// Package models defines the core domain models for QuickSplit.
//
// # Models
//
//   - Item: a named, priced line item on the bill
//   - Tile: the amount one person pays
//
// Items are owned by exactly one ledger and are never shared between
// sessions. Prices are decimals so that totals and splits do not drift.
//
// # Lifecycle
//
// A ledger lives for one operator session. Nothing here is persisted:
// when the session ends or expires, its items are discarded.
package models
