// Package cli defines the providerd command line interface.
package cli
