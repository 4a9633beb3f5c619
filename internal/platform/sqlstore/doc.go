// Package sqlstore implements store.CardStore on database/sql. The same
// queries run on PostgreSQL (pgx) and SQLite (modernc.org/sqlite); each
// dialect has its own goose migrations embedded in the binary.
package sqlstore
