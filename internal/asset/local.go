package asset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"uxfomo/internal/fileutil"
)

// MaxLocalBytes bounds local media imported as inline values.
const MaxLocalBytes = 4 << 20

// ErrUnsupportedMedia is returned when local content is not an image.
var ErrUnsupportedMedia = errors.New("unsupported media type")

// FromBytes sniffs the media type of data and returns an inline value.
// Only images are accepted.
func FromBytes(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty content", ErrUnsupportedMedia)
	}
	mediaType, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	mediaType = strings.TrimSpace(mediaType)
	if !strings.HasPrefix(mediaType, "image/") {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMedia, mediaType)
	}
	return Encode(mediaType, data), nil
}

// FromFile reads a local image and returns it as an inline value.
func FromFile(path string) (string, error) {
	data, err := fileutil.ReadFileLimit(path, MaxLocalBytes)
	if err != nil {
		return "", fmt.Errorf("read media file: %w", err)
	}
	value, err := FromBytes(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return value, nil
}
