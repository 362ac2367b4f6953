package profile_test

import (
	"slices"
	"testing"

	"uxfomo/internal/profile"
)

func TestOrderedLinks(t *testing.T) {
	rec := profile.Record{
		Links:      map[string]string{"github": "https://g", "website": "", "zeta": "https://z", "alpha": "https://a"},
		LinkNames:  map[string]string{"github": "GitHub", "orphan": "Orphan"},
		LinksOrder: []string{"github", "missing", "website", "github"},
	}

	visible := rec.OrderedLinks(false)
	var keys []string
	for _, l := range visible {
		keys = append(keys, l.Key)
	}
	if !slices.Equal(keys, []string{"github", "alpha", "zeta"}) {
		t.Fatalf("unexpected visible links %v", keys)
	}
	if visible[0].Label != "GitHub" || visible[1].Label != "Alpha" {
		t.Fatalf("unexpected labels %+v", visible)
	}

	all := rec.OrderedLinks(true)
	keys = keys[:0]
	for _, l := range all {
		keys = append(keys, l.Key)
	}
	if !slices.Equal(keys, []string{"github", "website", "alpha", "orphan", "zeta"}) {
		t.Fatalf("unexpected full links %v", keys)
	}
}

func TestHasLocalMedia(t *testing.T) {
	rec := profile.Defaults()
	if rec.HasLocalMedia() {
		t.Fatal("defaults carry only external media")
	}
	rec.FeaturedContent[1].URL = "data:image/png;base64,AAAA"
	if !rec.HasLocalMedia() {
		t.Fatal("expected inline featured item to count as local media")
	}
	rec = profile.Defaults()
	rec.Avatar = "data:image/gif;base64,R0lGODlh"
	if !rec.HasLocalMedia() {
		t.Fatal("expected inline avatar to count as local media")
	}
}

func TestStatKeys(t *testing.T) {
	rec := profile.Record{Stats: map[string]string{"views": "1", "likes": "2", "followers": "3", "badges": "4"}}
	if got := rec.StatKeys(); !slices.Equal(got, []string{"followers", "likes", "badges", "views"}) {
		t.Fatalf("unexpected stat keys %v", got)
	}
}
