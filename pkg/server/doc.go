// Package server implements the HTTP exposer: a small instrumented server
// hosting the dynamic configuration endpoint alongside health, readiness,
// and Prometheus metrics routes.
package server
