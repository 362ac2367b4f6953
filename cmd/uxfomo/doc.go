// Package main hosts the uxfomo CLI entrypoint and command graph.
//
// The Cobra command tree edits the locally stored profile and exports it as a
// JSON document or a zip archive. It centralizes configuration resolution,
// store opening, and logging setup so subcommands only describe the edit or
// export they perform.
//
// Keep this package lean: profile rules live in internal/profile, storage in
// internal/store and internal/persistence, and export assembly in
// internal/export, internal/archive, and internal/exporter.
package main
