// Package api provides the HTTP handlers of the vocabulary service.
//
// Handlers decode and validate requests, read the caller identity placed in
// the context by middleware.AuthMiddleware, delegate to the service layer,
// and map errors to status codes in one place (MapErrorToStatusCode).
package api
