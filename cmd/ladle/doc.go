// Package main hosts the ladle CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the extraction pipeline (extract),
// browsing and exporting stored recipes, followed-channel management,
// snapshot backups, log viewing, configuration scaffolding, and the serve
// command that runs the HTTP backend with its background pollers in the
// foreground. It
// centralizes configuration resolution and logger setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
