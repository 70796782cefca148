// Package backend is the HTTP transport shared by the generation, project,
// preset, and auth clients.
//
// Each call performs exactly one request: JSON in, JSON out, an optional
// bearer token taken from an explicit Credentials value, and an X-Request-ID
// for log correlation. Non-2xx responses surface as *StatusError wrapped in a
// services marker (unauthorized, not found, validation, api); network failures
// are tagged as transport errors. There are no retries.
package backend
