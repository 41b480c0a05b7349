// Package store provides abstractions for data persistence. It defines
// per-entity store interfaces, the shared sentinel errors implementations
// must return, and the transaction helper used by the service layer. The
// concrete SQLite implementation lives in internal/platform/sqlite.
package store
