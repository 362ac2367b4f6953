package profile

import (
	"sort"

	"uxfomo/internal/asset"
	"uxfomo/internal/textutil"
)

// Link is a resolved link ready for display.
type Link struct {
	Key   string
	Label string
	URL   string
}

// OrderedLinks lists links in linksOrder order, followed by any keys missing
// from linksOrder sorted by name. Empty URLs are skipped unless includeEmpty
// is set.
func (r Record) OrderedLinks(includeEmpty bool) []Link {
	seen := make(map[string]struct{}, len(r.Links)+len(r.LinkNames))
	out := make([]Link, 0, len(r.Links))
	add := func(key string) {
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		url := r.Links[key]
		if url == "" && !includeEmpty {
			return
		}
		out = append(out, Link{Key: key, Label: r.LinkLabel(key), URL: url})
	}

	for _, key := range r.LinksOrder {
		_, inLinks := r.Links[key]
		_, inNames := r.LinkNames[key]
		if inLinks || inNames {
			add(key)
		}
	}

	var rest []string
	for key := range r.Links {
		rest = append(rest, key)
	}
	for key := range r.LinkNames {
		if _, ok := r.Links[key]; !ok {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		add(key)
	}
	return out
}

// LinkLabel returns the display name for key.
func (r Record) LinkLabel(key string) string {
	if label := r.LinkNames[key]; label != "" {
		return label
	}
	return textutil.TitleLabel(key)
}

// HasLocalMedia reports whether the avatar or any featured item is inline.
func (r Record) HasLocalMedia() bool {
	if asset.IsInline(r.Avatar) {
		return true
	}
	for _, item := range r.FeaturedContent {
		if asset.IsInline(item.URL) {
			return true
		}
	}
	return false
}

// StatKeys returns the stat keys with the default counters first, in their
// canonical order, then the rest sorted.
func (r Record) StatKeys() []string {
	canonical := []string{"followers", "following", "likes"}
	out := make([]string, 0, len(r.Stats))
	for _, key := range canonical {
		if _, ok := r.Stats[key]; ok {
			out = append(out, key)
		}
	}
	var rest []string
	for key := range r.Stats {
		switch key {
		case "followers", "following", "likes":
			continue
		}
		rest = append(rest, key)
	}
	sort.Strings(rest)
	return append(out, rest...)
}
