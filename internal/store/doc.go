// Package store defines the persistence contracts for flashcards and the
// errors every implementation maps its driver failures to. SQL
// implementations live in internal/platform/sqlstore.
package store
