// Package archive bundles an exported profile into a zip archive.
//
// Inline media (the avatar and featured images stored as data URLs) is
// decoded into real files: avatar.<ext> at the root and featured/<n>.<ext>
// for featured items. The profile copy written to data.json references those
// files by relative path. An asset that fails to decode is left embedded and
// reported in Bundle.Skipped; only a failure to write the zip itself aborts
// the export.
//
// Start runs an assembly in the background. A Job cannot be cancelled:
// abandoning Wait leaves the build to finish and its result is dropped.
package archive
