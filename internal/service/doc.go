// Package service contains the application use cases for managing a user's
// flashcard collection. It coordinates domain objects and the card store
// (defined in internal/store) and never depends on a concrete database.
//
// Scheduling reviews live in the card_review subpackage; identity
// verification lives in auth.
//
// Error handling:
//   - Expected conditions are sentinel errors checked with errors.Is.
//   - Store and validation errors pass through wrapped so the API layer can
//     map them to status codes.
//   - Unexpected failures are wrapped in *CardServiceError.
package service
