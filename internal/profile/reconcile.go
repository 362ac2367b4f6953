package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrMalformedRecord is wrapped by every Issue.
var ErrMalformedRecord = errors.New("malformed stored record")

// Issue describes one part of a stored record that could not be used. Field is
// a dotted path such as "links.github" or "featuredContent[2]"; it is empty
// when the whole document was rejected.
type Issue struct {
	Field  string
	Reason string
}

func (i Issue) Error() string {
	if i.Field == "" {
		return fmt.Sprintf("%s: %s", ErrMalformedRecord, i.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrMalformedRecord, i.Field, i.Reason)
}

func (i Issue) Unwrap() error {
	return ErrMalformedRecord
}

// Issues collects reconciler findings.
type Issues []Issue

// Err joins the issues into one error, or returns nil when there are none.
func (is Issues) Err() error {
	if len(is) == 0 {
		return nil
	}
	errs := make([]error, len(is))
	for i, issue := range is {
		errs[i] = issue
	}
	return errors.Join(errs...)
}

// Fields lists the affected field paths.
func (is Issues) Fields() []string {
	out := make([]string, 0, len(is))
	for _, issue := range is {
		out = append(out, issue.Field)
	}
	return out
}

// Reconcile shapes stored bytes into a complete record.
//
// Empty input yields a copy of defaults with no issues. Input that is not a
// JSON object yields a copy of defaults and a single record-level issue.
// Otherwise every field is taken from stored when present and well-typed,
// and from defaults otherwise; each rejected field is reported. Group maps
// merge per key with stored values winning. linksOrder and featuredContent
// replace the default wholesale when stored as arrays. Top-level keys unknown
// to Record are kept in Extensions.
func Reconcile(stored []byte, defaults Record) (Record, Issues) {
	base := defaults.Clone()
	trimmed := bytes.TrimSpace(stored)
	if len(trimmed) == 0 {
		return base, nil
	}
	if trimmed[0] != '{' {
		return base, Issues{{Reason: "stored value is not a json object"}}
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return base, Issues{{Reason: err.Error()}}
	}

	r := &reconciler{fields: fields}
	out := Record{
		Name:            r.scalar(keyName, base.Name),
		Nick:            r.scalar(keyNick, base.Nick),
		Bio:             r.scalar(keyBio, base.Bio),
		Presentation:    r.scalar(keyPresentation, base.Presentation),
		Avatar:          r.scalar(keyAvatar, base.Avatar),
		Stats:           r.group(keyStats, base.Stats, true),
		Links:           r.group(keyLinks, base.Links, false),
		LinkNames:       r.group(keyLinkNames, base.LinkNames, false),
		LinksOrder:      r.order(keyLinksOrder, base.LinksOrder),
		FeaturedContent: r.featured(keyFeaturedContent, base.FeaturedContent),
		Extensions:      base.Extensions,
	}
	for k, v := range fields {
		if _, known := knownKeys[k]; known {
			continue
		}
		if out.Extensions == nil {
			out.Extensions = make(map[string]json.RawMessage)
		}
		out.Extensions[k] = slices.Clone(v)
	}
	return out, r.issues
}

type reconciler struct {
	fields map[string]json.RawMessage
	issues Issues
}

func (r *reconciler) report(field, reason string) {
	r.issues = append(r.issues, Issue{Field: field, Reason: reason})
}

func (r *reconciler) scalar(key, fallback string) string {
	raw, ok := r.fields[key]
	if !ok {
		return fallback
	}
	value, ok := stringValue(raw)
	if !ok {
		r.report(key, "expected string, got "+kindOf(raw))
		return fallback
	}
	return value
}

// group merges a stored object over defaults key by key. When numbers is set,
// numeric members are kept as their literal text.
func (r *reconciler) group(key string, defaults map[string]string, numbers bool) map[string]string {
	out := maps.Clone(defaults)
	if out == nil {
		out = make(map[string]string)
	}
	raw, ok := r.fields[key]
	if !ok {
		return out
	}
	if kindOf(raw) != "object" {
		r.report(key, "expected object, got "+kindOf(raw))
		return out
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		r.report(key, err.Error())
		return out
	}
	for member, value := range members {
		if s, ok := stringValue(value); ok {
			out[member] = s
			continue
		}
		if numbers && kindOf(value) == "number" {
			out[member] = string(bytes.TrimSpace(value))
			continue
		}
		r.report(key+"."+member, "expected string, got "+kindOf(value))
	}
	return out
}

func (r *reconciler) order(key string, fallback []string) []string {
	raw, ok := r.fields[key]
	if !ok {
		return fallback
	}
	if kindOf(raw) != "array" {
		r.report(key, "expected array, got "+kindOf(raw))
		return fallback
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		r.report(key, err.Error())
		return fallback
	}
	out := make([]string, 0, len(elems))
	for i, elem := range elems {
		s, ok := stringValue(elem)
		if !ok {
			r.report(fmt.Sprintf("%s[%d]", key, i), "expected string, got "+kindOf(elem))
			continue
		}
		out = append(out, s)
	}
	return out
}

// featured replaces the default list wholesale. Elements that are not objects
// are dropped; mistyped item fields fall back to zero values. More than
// MaxFeaturedItems entries are kept as stored.
func (r *reconciler) featured(key string, fallback []FeaturedItem) []FeaturedItem {
	raw, ok := r.fields[key]
	if !ok {
		return fallback
	}
	if kindOf(raw) != "array" {
		r.report(key, "expected array, got "+kindOf(raw))
		return fallback
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		r.report(key, err.Error())
		return fallback
	}
	out := make([]FeaturedItem, 0, len(elems))
	for i, elem := range elems {
		path := fmt.Sprintf("%s[%d]", key, i)
		if kindOf(elem) != "object" {
			r.report(path, "expected object, got "+kindOf(elem))
			continue
		}
		var members map[string]json.RawMessage
		if err := json.Unmarshal(elem, &members); err != nil {
			r.report(path, err.Error())
			continue
		}
		var item FeaturedItem
		if idRaw, ok := members["id"]; ok {
			if err := item.ID.UnmarshalJSON(idRaw); err != nil {
				r.report(path+".id", "expected number or string, got "+kindOf(idRaw))
			}
		}
		item.URL = r.member(members, path, "url")
		item.Caption = r.member(members, path, "caption")
		for name, value := range members {
			if _, known := knownItemKeys[name]; known {
				continue
			}
			if item.Extensions == nil {
				item.Extensions = make(map[string]json.RawMessage)
			}
			item.Extensions[name] = slices.Clone(value)
		}
		out = append(out, item)
	}
	return out
}

func (r *reconciler) member(members map[string]json.RawMessage, path, name string) string {
	raw, ok := members[name]
	if !ok {
		return ""
	}
	s, ok := stringValue(raw)
	if !ok {
		r.report(path+"."+name, "expected string, got "+kindOf(raw))
		return ""
	}
	return s
}

func stringValue(raw json.RawMessage) (string, bool) {
	if kindOf(raw) != "string" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func kindOf(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "empty"
	}
	switch raw[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
