package asset_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"uxfomo/internal/asset"
)

const pixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func TestIsInline(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"data:image/png;base64," + pixelPNG, true},
		{"data:", true},
		{"https://example.com/a.png", false},
		{"", false},
		{" data:image/png;base64,AAAA", false},
		{"DATA:image/png;base64,AAAA", false},
	}
	for _, tc := range tests {
		if got := asset.IsInline(tc.value); got != tc.want {
			t.Errorf("IsInline(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestDecodeSplitsHeaderAtFirstComma(t *testing.T) {
	in := asset.Decode("data:image/svg+xml;base64,PHN2Zz4=,trailing")
	if in.MediaType != "image/svg+xml" {
		t.Fatalf("unexpected media type %q", in.MediaType)
	}
	if in.Payload != "PHN2Zz4=,trailing" {
		t.Fatalf("unexpected payload %q", in.Payload)
	}
	if !in.Base64 {
		t.Fatal("expected base64 flag")
	}

	plain := asset.Decode("data:text/plain,hello%20world")
	if plain.Base64 || plain.MediaType != "text/plain" {
		t.Fatalf("unexpected decode result %+v", plain)
	}
	data, err := plain.Bytes()
	if err != nil || string(data) != "hello world" {
		t.Fatalf("percent-decoding failed: %q %v", data, err)
	}
}

func TestExtensionFor(t *testing.T) {
	tests := map[string]string{
		"image/jpeg":                "jpg",
		"image/jpg":                 "jpg",
		"image/png":                 "png",
		"image/webp":                "webp",
		"image/gif":                 "gif",
		"image/svg+xml":             "svg",
		"image/bmp":                 "bmp",
		"IMAGE/JPEG":                "jpg",
		"image/png; charset=binary": "png",
		"image/tiff":                "png",
		"":                          "png",
	}
	for mediaType, want := range tests {
		if got := asset.ExtensionFor(mediaType); got != want {
			t.Errorf("ExtensionFor(%q) = %q, want %q", mediaType, got, want)
		}
	}
}

func TestParseProducesTaggedSource(t *testing.T) {
	external := asset.Parse("https://example.com/cover.jpg")
	if external.IsInline() || external.URL != "https://example.com/cover.jpg" {
		t.Fatalf("unexpected external source %+v", external)
	}
	if _, err := external.Bytes(); !errors.Is(err, asset.ErrNotInline) {
		t.Fatalf("expected ErrNotInline, got %v", err)
	}

	inline := asset.Parse("data:image/jpeg;base64," + pixelPNG)
	if !inline.IsInline() || inline.Kind.String() != "inline" {
		t.Fatalf("expected inline source, got %+v", inline)
	}
	if inline.Extension() != "jpg" {
		t.Fatalf("unexpected extension %q", inline.Extension())
	}
	data, err := inline.Bytes()
	if err != nil {
		t.Fatalf("Bytes returned error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Fatalf("unexpected decoded bytes %x", data[:4])
	}
}

func TestBytesRejectsCorruptPayload(t *testing.T) {
	for _, value := range []string{
		"data:image/png;base64,",
		"data:image/png;base64,@@@not-base64@@@",
		"data:image/png;base64",
	} {
		if _, err := asset.Parse(value).Bytes(); !errors.Is(err, asset.ErrMalformed) {
			t.Errorf("Bytes(%q) error = %v, want ErrMalformed", value, err)
		}
	}
}

func TestBytesToleratesMissingPadding(t *testing.T) {
	data, err := asset.Parse("data:image/gif;base64,R0lGODlh").Bytes()
	if err != nil {
		t.Fatalf("Bytes returned error: %v", err)
	}
	if string(data) != "GIF89a" {
		t.Fatalf("unexpected bytes %q", data)
	}
	data, err = asset.Parse("data:image/gif;base64,R0lGODk").Bytes()
	if err != nil || string(data) != "GIF89" {
		t.Fatalf("unpadded decode failed: %q %v", data, err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	value := asset.Encode("image/webp", []byte{1, 2, 3})
	if !asset.IsInline(value) {
		t.Fatalf("encoded value not inline: %q", value)
	}
	src := asset.Parse(value)
	if src.Inline.MediaType != "image/webp" {
		t.Fatalf("unexpected media type %q", src.Inline.MediaType)
	}
	data, err := src.Bytes()
	if err != nil || !bytes.Equal(data, []byte{1, 2, 3}) {
		t.Fatalf("round trip failed: %v %v", data, err)
	}
}

func TestFromFileSniffsMediaType(t *testing.T) {
	raw, err := asset.Parse("data:image/png;base64," + pixelPNG).Bytes()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "avatar.bin")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	value, err := asset.FromFile(path)
	if err != nil {
		t.Fatalf("FromFile returned error: %v", err)
	}
	if value != "data:image/png;base64,"+pixelPNG {
		t.Fatalf("unexpected inline value %q", value)
	}

	textPath := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(textPath, []byte("just some notes"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := asset.FromFile(textPath); !errors.Is(err, asset.ErrUnsupportedMedia) {
		t.Fatalf("expected ErrUnsupportedMedia, got %v", err)
	}
	if _, err := asset.FromBytes(nil); !errors.Is(err, asset.ErrUnsupportedMedia) {
		t.Fatalf("expected ErrUnsupportedMedia for empty input, got %v", err)
	}
}
