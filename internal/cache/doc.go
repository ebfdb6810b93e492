// Package cache mirrors the synced deck collection. The in-memory copy is
// authoritative for the current process; a SQLite file under the config
// directory carries it across runs when enabled. Mutations land only after
// the remote confirms them, so a failed call never leaves a partial state.
package cache
