// Package sqlite provides the SQLite-backed record store: the system of
// record that crawl passes dedup against and rebuild state from. The
// schema is managed through embedded migrations applied at open time.
package sqlite
