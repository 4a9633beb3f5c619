// Package domain contains the core entities of the flashcard backend:
// cards, their scheduling state, translation records and per-user
// statistics. It has no knowledge of storage or transport.
package domain
