// Package app contains the core application logic. It defines the App
// struct, its configuration, and the coasting lifecycle of one input file
// (read, back up, coast, write, export metrics), decoupled from any specific
// entrypoint like a CLI.
package app
