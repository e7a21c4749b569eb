// Package app contains the core application logic. It owns the logger, loads
// the release config and wires the submitter, builder, uploader and status
// reporter together for each command, decoupled from the CLI that drives it.
package app
