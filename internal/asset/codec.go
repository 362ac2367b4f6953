package asset

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	// Scheme prefixes every inline value.
	Scheme = "data:"
	// Base64Marker separates the media type from the base64 flag in the header.
	Base64Marker = ";base64"

	defaultExtension = "png"
)

var (
	// ErrNotInline is returned when a value is an external reference.
	ErrNotInline = errors.New("value is not an inline asset")
	// ErrMalformed is returned when an inline value cannot be decoded.
	ErrMalformed = errors.New("malformed inline asset")
)

var extensions = map[string]string{
	"image/jpeg":    "jpg",
	"image/jpg":     "jpg",
	"image/png":     "png",
	"image/webp":    "webp",
	"image/gif":     "gif",
	"image/svg+xml": "svg",
	"image/bmp":     "bmp",
}

// Kind distinguishes external references from inline media.
type Kind int

const (
	KindExternal Kind = iota
	KindInline
)

func (k Kind) String() string {
	if k == KindInline {
		return "inline"
	}
	return "external"
}

// Inline is the decoded header and the still-encoded payload of an inline value.
type Inline struct {
	MediaType string
	Payload   string
	Base64    bool
}

// Source is a media field value after classification.
type Source struct {
	Kind   Kind
	URL    string
	Inline Inline
}

// IsInline reports whether value uses the inline scheme.
func IsInline(value string) bool {
	return strings.HasPrefix(value, Scheme)
}

// Decode splits an inline value at the first comma. The media type is the
// header text between the scheme and the encoding marker. Callers check
// IsInline first; Decode does not validate.
func Decode(value string) Inline {
	header, payload, _ := strings.Cut(value, ",")
	header = strings.TrimPrefix(header, Scheme)
	isBase64 := false
	if idx := strings.Index(header, Base64Marker); idx >= 0 {
		isBase64 = true
		header = header[:idx]
	}
	return Inline{MediaType: header, Payload: payload, Base64: isBase64}
}

// Parse classifies value as an external URL or an inline asset.
func Parse(value string) Source {
	if !IsInline(value) {
		return Source{Kind: KindExternal, URL: value}
	}
	return Source{Kind: KindInline, Inline: Decode(value)}
}

// IsInline reports whether the source carries embedded media.
func (s Source) IsInline() bool {
	return s.Kind == KindInline
}

// Extension returns the archive file extension for an inline source.
func (s Source) Extension() string {
	return ExtensionFor(s.Inline.MediaType)
}

// Bytes decodes the payload of an inline source.
func (s Source) Bytes() ([]byte, error) {
	if s.Kind != KindInline {
		return nil, ErrNotInline
	}
	return s.Inline.Bytes()
}

// Bytes decodes the payload. Base64 payloads accept missing padding; other
// payloads are percent-decoded.
func (in Inline) Bytes() ([]byte, error) {
	payload := strings.TrimSpace(in.Payload)
	if payload == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformed)
	}
	if !in.Base64 {
		decoded, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return []byte(decoded), nil
	}
	payload = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t', ' ':
			return -1
		}
		return r
	}, payload)
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformed)
	}
	return data, nil
}

// ExtensionFor maps an image media type to a file extension. Unknown types
// map to "png" so an archive entry always gets a usable name.
func ExtensionFor(mediaType string) string {
	mediaType, _, _ = strings.Cut(mediaType, ";")
	if ext, ok := extensions[strings.ToLower(strings.TrimSpace(mediaType))]; ok {
		return ext
	}
	return defaultExtension
}

// Encode builds a base64 inline value.
func Encode(mediaType string, data []byte) string {
	return Scheme + mediaType + Base64Marker + "," + base64.StdEncoding.EncodeToString(data)
}
