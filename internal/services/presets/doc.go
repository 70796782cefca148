// Package presets fetches lighting, camera, and director presets and folds the
// backend's varying response shapes into one Collection.
//
// Backends answer GET /presets/list with a tagged array, a pre-grouped object,
// or a map of director presets keyed by id. Normalize is total: anything it
// does not recognise becomes an empty collection rather than an error.
package presets
