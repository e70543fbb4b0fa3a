// Package docker abstracts the container runtime behind the Source contract:
// a snapshot of running containers plus change notifications. Any
// implementation satisfying Source is interchangeable, which keeps the build
// pipeline testable without a live daemon.
package docker
