// Package services defines shared utilities consumed by the backend API
// clients.
//
// Key responsibilities:
//   - Context helpers that stamp correlation identifiers and operation names
//     for logging.
//   - Structured error markers plus the Wrap helper so callers can tell a
//     transport failure from a non-2xx response or a rejected form with
//     errors.Is.
//
// Use these helpers when adding new endpoint wrappers so error handling and
// observability stay uniform across clients.
package services
