// Package generation wraps the backend's /generation endpoints: submitting a
// frame, listing and fetching generation records, and the health probe.
package generation
