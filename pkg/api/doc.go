// Package api assembles the provider server: the Docker state source, the
// configuration merger, the snapshot manager, and the HTTP exposer, run
// together under one lifecycle.
package api
