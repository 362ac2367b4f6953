package testsupport

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
)

// PixelPNG is a base64-encoded 1x1 PNG.
const PixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

// InlinePNG returns PixelPNG as an inline asset string.
func InlinePNG() string {
	return "data:image/png;base64," + PixelPNG
}

// InlineAs returns PixelPNG labelled with another media type.
func InlineAs(mediaType string) string {
	return "data:" + mediaType + ";base64," + PixelPNG
}

// CorruptInline is an inline asset whose payload is not valid base64.
const CorruptInline = "data:image/png;base64,@@not-base64@@"

// PixelPNGBytes returns the decoded PixelPNG.
func PixelPNGBytes(t testing.TB) []byte {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(PixelPNG)
	if err != nil {
		t.Fatalf("decode pixel png: %v", err)
	}
	return data
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WritePNG writes the 1x1 PNG to path and returns path.
func WritePNG(t testing.TB, path string) string {
	t.Helper()
	WriteFile(t, path, PixelPNGBytes(t))
	return path
}
