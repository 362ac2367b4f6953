// Package export builds the versioned envelope that wraps a profile for
// download and serializes it as a JSON document.
//
// A payload carries meta (export date and version), the profile, a reserved
// "gdpr" section that is null by default, and any extra sections supplied by
// the caller. Options mirrors the export dialog: it picks a format, forces the
// media flags off for documents, and refuses requests that would produce an
// empty artifact. Archive assembly lives in package archive.
package export
