// Package state owns the currently published configuration snapshot.
//
// A single background loop rebuilds the snapshot from the container source
// whenever a lifecycle notification arrives, and publishes the result with an
// atomic pointer swap. Readers always observe one complete, immutable
// snapshot and never block on a rebuild; a failed rebuild leaves the prior
// snapshot in place.
package state
