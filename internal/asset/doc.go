// Package asset recognizes and decodes inline media values.
//
// Profile fields that hold media (the avatar and featured item URLs) carry
// either an external URL or a self-describing data URL of the form
// "data:<media type>;base64,<payload>". Parse turns such a string into a
// Source, a tagged value that is either External or Inline, so callers decode
// once at the boundary instead of re-sniffing the string.
//
// FromFile and FromBytes go the other way and build an inline value from local
// media, sniffing the media type from content.
package asset
