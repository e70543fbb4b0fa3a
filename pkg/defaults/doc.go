// Package defaults centralizes timeout and backoff constants shared across
// the provider server so components stay consistent and easy to tune.
package defaults
