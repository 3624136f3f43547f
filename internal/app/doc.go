// Package app contains the launcher application logic. It resolves profiles
// from built-ins, profile files and flags, and runs the batch launcher for each
// selected profile, decoupled from the CLI entrypoint.
package app
