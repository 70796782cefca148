// Package auth calls the backend's login, register and recover endpoints and
// persists the resulting access token.
//
// Tokens live in a Store: a JSON file guarded by an advisory lock, or a
// SQLite table, selected by auth.store. A Session turns the stored token into
// backend.Credentials, which every API wrapper takes explicitly.
package auth
