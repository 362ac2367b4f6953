package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sort"
)

const (
	// MaxFeaturedItems bounds featured content added through the editor.
	MaxFeaturedItems = 4
	// MaxBioLength bounds the short bio, counted in characters.
	MaxBioLength = 100
)

// FeaturedItem is one entry in the featured media grid. URL holds an external
// URL or an inline asset. Extensions keeps item keys other than id, url, and
// caption so they survive a save.
type FeaturedItem struct {
	ID         ItemID
	URL        string
	Caption    string
	Extensions map[string]json.RawMessage
}

type featuredItemJSON struct {
	ID      ItemID `json:"id"`
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

var knownItemKeys = map[string]struct{}{"id": {}, "url": {}, "caption": {}}

// Clone returns a deep copy of item.
func (item FeaturedItem) Clone() FeaturedItem {
	item.Extensions = cloneRaw(item.Extensions)
	return item
}

// MarshalJSON writes id, url, and caption followed by extension keys sorted
// by name.
func (item FeaturedItem) MarshalJSON() ([]byte, error) {
	data, err := marshalRaw(featuredItemJSON{ID: item.ID, URL: item.URL, Caption: item.Caption})
	if err != nil {
		return nil, err
	}
	return appendExtensions(data, item.Extensions, knownItemKeys, "featured item")
}

func (item *FeaturedItem) UnmarshalJSON(data []byte) error {
	var body featuredItemJSON
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	extensions, err := unknownMembers(data, knownItemKeys)
	if err != nil {
		return err
	}
	*item = FeaturedItem{ID: body.ID, URL: body.URL, Caption: body.Caption, Extensions: extensions}
	return nil
}

// Record is the persisted profile.
//
// Extensions carries top-level keys this version does not know about; they
// are written back untouched so newer data survives an older binary.
type Record struct {
	Name            string
	Nick            string
	Bio             string
	Presentation    string
	Avatar          string
	Stats           map[string]string
	Links           map[string]string
	LinkNames       map[string]string
	LinksOrder      []string
	FeaturedContent []FeaturedItem
	Extensions      map[string]json.RawMessage
}

// recordJSON fixes the serialized key order.
type recordJSON struct {
	Name            string            `json:"name"`
	Nick            string            `json:"nick"`
	Bio             string            `json:"bio"`
	Presentation    string            `json:"presentation"`
	Avatar          string            `json:"avatar"`
	Stats           map[string]string `json:"stats"`
	Links           map[string]string `json:"links"`
	LinkNames       map[string]string `json:"linkNames"`
	LinksOrder      []string          `json:"linksOrder"`
	FeaturedContent []FeaturedItem    `json:"featuredContent"`
}

const (
	keyName            = "name"
	keyNick            = "nick"
	keyBio             = "bio"
	keyPresentation    = "presentation"
	keyAvatar          = "avatar"
	keyStats           = "stats"
	keyLinks           = "links"
	keyLinkNames       = "linkNames"
	keyLinksOrder      = "linksOrder"
	keyFeaturedContent = "featuredContent"
)

var knownKeys = map[string]struct{}{
	keyName: {}, keyNick: {}, keyBio: {}, keyPresentation: {}, keyAvatar: {},
	keyStats: {}, keyLinks: {}, keyLinkNames: {}, keyLinksOrder: {}, keyFeaturedContent: {},
}

// Defaults returns a fresh copy of the canonical record.
func Defaults() Record {
	return Record{
		Name:         "Juan Pérez",
		Nick:         "juanuxdesign",
		Bio:          "Explorando la intersección entre el diseño visual y la psicología del comportamiento. Amante del café y las interfaces limpias.",
		Presentation: "Actualmente diseñando el futuro de las comunidades digitales en UX fomo. Especializado en sistemas de diseño y tipografía aplicada.",
		Avatar:       "https://api.dicebear.com/7.x/avataaars/svg?seed=Felix",
		Stats: map[string]string{
			"followers": "1.2k",
			"following": "450",
			"likes":     "8.4k",
		},
		Links: map[string]string{
			"website":   "https://juanperez.design",
			"linkedin":  "https://linkedin.com/in/juanperez",
			"github":    "",
			"behance":   "",
			"instagram": "https://instagram.com/juanperez",
		},
		LinkNames: map[string]string{
			"website":   "Website",
			"linkedin":  "LinkedIn",
			"github":    "GitHub",
			"behance":   "Behance",
			"instagram": "Instagram",
		},
		LinksOrder: []string{"website", "linkedin", "github", "behance", "instagram"},
		FeaturedContent: []FeaturedItem{
			{ID: NumericID(1), URL: "https://images.unsplash.com/photo-1558655146-d09347e92766?auto=format&fit=crop&q=80&w=400", Caption: "Rediseño Mobile App"},
			{ID: NumericID(2), URL: "https://images.unsplash.com/photo-1561070791-26c145824a4d?auto=format&fit=crop&q=80&w=400", Caption: "Sistema de Diseño"},
		},
	}
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := r
	out.Stats = maps.Clone(r.Stats)
	out.Links = maps.Clone(r.Links)
	out.LinkNames = maps.Clone(r.LinkNames)
	out.LinksOrder = slices.Clone(r.LinksOrder)
	if r.FeaturedContent != nil {
		out.FeaturedContent = make([]FeaturedItem, len(r.FeaturedContent))
		for i, item := range r.FeaturedContent {
			out.FeaturedContent[i] = item.Clone()
		}
	}
	out.Extensions = cloneRaw(r.Extensions)
	return out
}

func cloneRaw(m map[string]json.RawMessage) map[string]json.RawMessage {
	if m == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		out[k] = slices.Clone(v)
	}
	return out
}

// MarshalJSON writes the known keys in a fixed order followed by extension
// keys sorted by name. Nil groups serialize as empty objects and arrays.
func (r Record) MarshalJSON() ([]byte, error) {
	body := recordJSON{
		Name:            r.Name,
		Nick:            r.Nick,
		Bio:             r.Bio,
		Presentation:    r.Presentation,
		Avatar:          r.Avatar,
		Stats:           nonNilMap(r.Stats),
		Links:           nonNilMap(r.Links),
		LinkNames:       nonNilMap(r.LinkNames),
		LinksOrder:      r.LinksOrder,
		FeaturedContent: r.FeaturedContent,
	}
	if body.LinksOrder == nil {
		body.LinksOrder = []string{}
	}
	if body.FeaturedContent == nil {
		body.FeaturedContent = []FeaturedItem{}
	}
	data, err := marshalRaw(body)
	if err != nil {
		return nil, err
	}
	return appendExtensions(data, r.Extensions, knownKeys, "profile extension")
}

// appendExtensions adds the members of ext missing from known to the encoded
// object data, sorted by name.
func appendExtensions(data []byte, ext map[string]json.RawMessage, known map[string]struct{}, label string) ([]byte, error) {
	keys := make([]string, 0, len(ext))
	for k := range ext {
		if _, ok := known[k]; !ok {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return data, nil
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(data[:len(data)-1])
	for _, k := range keys {
		raw := bytes.TrimSpace(ext[k])
		if len(raw) == 0 || !json.Valid(raw) {
			return nil, fmt.Errorf("%s %q: invalid json", label, k)
		}
		name, err := marshalRaw(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// unknownMembers returns the object members of data whose keys are not in
// known, or nil when there are none.
func unknownMembers(data []byte, known map[string]struct{}) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	var out map[string]json.RawMessage
	for k, v := range fields {
		if _, ok := known[k]; ok {
			continue
		}
		if out == nil {
			out = make(map[string]json.RawMessage)
		}
		out[k] = v
	}
	return out, nil
}

// UnmarshalJSON decodes a record strictly: a known key with the wrong type is
// an error. Use Reconcile for stored data that may be partial or damaged.
func (r *Record) UnmarshalJSON(data []byte) error {
	var body recordJSON
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	extensions, err := unknownMembers(data, knownKeys)
	if err != nil {
		return err
	}
	*r = Record{
		Name:            body.Name,
		Nick:            body.Nick,
		Bio:             body.Bio,
		Presentation:    body.Presentation,
		Avatar:          body.Avatar,
		Stats:           body.Stats,
		Links:           body.Links,
		LinkNames:       body.LinkNames,
		LinksOrder:      body.LinksOrder,
		FeaturedContent: body.FeaturedContent,
		Extensions:      extensions,
	}
	return nil
}

func nonNilMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

// marshalRaw encodes v without escaping HTML characters, so URLs keep their
// literal '&'.
func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
