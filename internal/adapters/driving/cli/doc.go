// Package cli implements the sercha-topics command line.
// Commands resolve their collaborators through a Builder supplied by main,
// so every command can be exercised with in-memory fakes.
package cli
