// Package provider merges per-container label trees into one Traefik dynamic
// configuration document. The merge is a pure function of the container set:
// containers are folded in ascending id order, so the result is independent
// of observation order, and the first (lowest id) definition of a name wins.
package provider
