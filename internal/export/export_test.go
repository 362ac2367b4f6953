package export_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"uxfomo/internal/config"
	"uxfomo/internal/export"
	"uxfomo/internal/profile"
)

var fixedTime = time.Date(2024, 3, 9, 14, 5, 7, 123_000_000, time.UTC)

func fixedBuilder() *export.Builder {
	return export.NewBuilder(export.WithClock(func() time.Time { return fixedTime }))
}

func TestBuildEnvelope(t *testing.T) {
	rec := profile.Defaults()
	p := fixedBuilder().Build(rec, nil)

	require.Equal(t, "2024-03-09T14:05:07.123Z", p.Meta.ExportDate)
	require.Equal(t, "1", p.Meta.ExportVersion)
	require.Equal(t, rec, p.Profile)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 3)
	require.Equal(t, "null", string(decoded["gdpr"]))
}

func TestBuildDoesNotAliasRecord(t *testing.T) {
	rec := profile.Defaults()
	p := fixedBuilder().Build(rec, nil)
	p.Profile.Links["github"] = "changed"
	p.Profile.FeaturedContent[0].Caption = "changed"
	require.Equal(t, profile.Defaults(), rec)
}

func TestDocumentKeyOrderAndIndent(t *testing.T) {
	data, err := fixedBuilder().Document(profile.Defaults(), map[string]any{
		"zeta":    1,
		"alpha":   map[string]string{"a": "b"},
		"meta":    "ignored",
		"profile": "ignored",
	})
	require.NoError(t, err)
	doc := string(data)

	require.True(t, strings.HasPrefix(doc, "{\n  \"meta\": {\n    \"exportDate\""), doc)
	order := []string{`"meta":`, `"profile":`, `"gdpr": null`, `"alpha":`, `"zeta": 1`}
	last := -1
	for _, key := range order {
		idx := strings.Index(doc, key)
		require.Greater(t, idx, last, "key %s out of order", key)
		last = idx
	}
	require.NotContains(t, doc, "ignored")
	require.Contains(t, doc, "auto=format&fit=crop")
	require.NotContains(t, doc, `\u0026`)
	require.False(t, strings.HasSuffix(doc, "\n"))
}

func TestDocumentGDPRSectionOverride(t *testing.T) {
	data, err := fixedBuilder().Document(profile.Defaults(), map[string]any{
		"gdpr": map[string]bool{"consent": true},
	})
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.JSONEq(t, `{"consent":true}`, string(decoded["gdpr"]))
}

func TestDocumentRoundTripsThroughReconcile(t *testing.T) {
	rec, err := profile.Apply(profile.Defaults(), profile.SetField("name", "Ana"))
	require.NoError(t, err)
	data, err := fixedBuilder().Document(rec, nil)
	require.NoError(t, err)

	var envelope struct {
		Profile json.RawMessage `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(data, &envelope))
	got, issues := profile.Reconcile(envelope.Profile, profile.Defaults())
	require.Empty(t, issues)
	require.Equal(t, rec, got)
}

func TestDocumentKeepsInlineMedia(t *testing.T) {
	rec := profile.Defaults()
	rec.Avatar = "data:image/png;base64,AAAA"
	data, err := fixedBuilder().Document(rec, nil)
	require.NoError(t, err)
	require.Contains(t, string(data), `"avatar": "data:image/png;base64,AAAA"`)
}

func TestFilename(t *testing.T) {
	require.Equal(t, "perfil-uxfomo-2024-03-09.json", export.Filename("perfil-uxfomo", export.FormatDocument, fixedTime))
	require.Equal(t, "perfil-uxfomo-2024-03-09.zip", export.Filename("perfil-uxfomo", export.FormatArchive, fixedTime))

	late := time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("UTC-3", -3*3600))
	require.Equal(t, "p-2024-03-10.json", export.Filename("p", export.FormatDocument, late))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]export.Format{
		"document": export.FormatDocument,
		"JSON":     export.FormatDocument,
		"archive":  export.FormatArchive,
		" zip ":    export.FormatArchive,
	} {
		got, err := export.ParseFormat(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := export.ParseFormat("tar")
	require.ErrorIs(t, err, export.ErrUnknownFormat)
}

func TestDefaultOptionsAutoFormat(t *testing.T) {
	cfg := config.Default().Export
	cfg.DefaultFormat = config.FormatAuto
	cfg.IncludeAvatarFile = true
	cfg.IncludeFeaturedImages = true

	remote := export.DefaultOptions(profile.Defaults(), cfg)
	require.Equal(t, export.FormatDocument, remote.Format)
	require.True(t, remote.IncludeProfileData)
	require.False(t, remote.IncludeAvatarFile)
	require.False(t, remote.IncludeFeaturedImages)

	rec := profile.Defaults()
	rec.FeaturedContent[1].URL = "data:image/jpeg;base64,AAAA"
	local := export.DefaultOptions(rec, cfg)
	require.Equal(t, export.FormatArchive, local.Format)
	require.True(t, local.IncludeAvatarFile)
	require.True(t, local.IncludeFeaturedImages)

	cfg.DefaultFormat = config.FormatDocument
	require.Equal(t, export.FormatDocument, export.DefaultOptions(rec, cfg).Format)
}

func TestCanDownload(t *testing.T) {
	cases := []struct {
		name string
		opts export.Options
		want bool
	}{
		{"document with data", export.Options{Format: export.FormatDocument, IncludeProfileData: true}, true},
		{"document without data", export.Options{Format: export.FormatDocument, IncludeAvatarFile: true}, false},
		{"archive media only", export.Options{Format: export.FormatArchive, IncludeFeaturedImages: true}, true},
		{"archive nothing", export.Options{Format: export.FormatArchive}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.opts.CanDownload())
			if tc.want {
				require.NoError(t, tc.opts.Validate())
			} else {
				require.ErrorIs(t, tc.opts.Validate(), export.ErrNothingToExport)
			}
		})
	}
	require.ErrorIs(t, export.Options{Format: "tar", IncludeProfileData: true}.Validate(), export.ErrUnknownFormat)
}

func TestNormalizeClearsMediaForDocuments(t *testing.T) {
	opts := export.Options{Format: export.FormatDocument, IncludeProfileData: true, IncludeAvatarFile: true, IncludeFeaturedImages: true}.Normalize()
	require.False(t, opts.IncludeAvatarFile)
	require.False(t, opts.IncludeFeaturedImages)
}
