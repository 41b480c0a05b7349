// Package sqlite implements the store interfaces on an embedded SQLite
// database (modernc.org/sqlite, no cgo). SQLite is the on-device storage
// backend of the mentormatch service: a single database file holds users,
// mentorship requests, meetings, and their scheduled reminders. Schema
// migrations are applied with goose from embedded SQL files.
package sqlite
