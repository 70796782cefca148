// Package projects wraps the backend's /projects endpoints.
//
// Listing is paginated with page and per_page query parameters. Updates are
// partial: only fields set on a Patch are sent. Scene state has no endpoint
// of its own and is saved through the same PUT as other project updates.
package projects
