// Package cli implements the command-line interface for curling-standings.
//
// The cli package provides the Cobra-based CLI: the serve command runs the HTTP API
// (standings cache, smack talk board, static frontend), and the standings command
// performs a single scrape and prints the standings and upcoming games as text or
// JSON, optionally filtered by team and sorted.
package cli
