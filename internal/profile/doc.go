// Package profile defines the profile record, its canonical defaults, and the
// reconciler that shapes stored bytes into a complete record.
//
// Reconcile is total: malformed input degrades field by field to the
// defaults and is reported through Issues rather than an error. Group maps
// (stats, links, linkNames) merge key by key with stored values winning;
// linksOrder and featuredContent are replaced wholesale when the stored value
// is an array.
//
// Edits go through Mutation values (SetField, SetLink, AddFeatured, ...), which
// enforce the bounds the reconciler tolerates: at most MaxFeaturedItems
// featured items and a bio of at most MaxBioLength characters.
package profile
