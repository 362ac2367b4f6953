package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"uxfomo/internal/asset"
	"uxfomo/internal/config"
	"uxfomo/internal/textutil"
)

const displayWidth = 60

// describeMedia summarizes an avatar or featured URL for terminal output.
// Inline assets are shown by type and size instead of their payload.
func describeMedia(value string) string {
	src := asset.Parse(value)
	if !src.IsInline() {
		if strings.TrimSpace(value) == "" {
			return "-"
		}
		return textutil.Truncate(value, displayWidth)
	}
	mediaType := src.Inline.MediaType
	if mediaType == "" {
		mediaType = "image"
	}
	data, err := src.Bytes()
	if err != nil {
		return fmt.Sprintf("inline %s (unreadable)", mediaType)
	}
	return fmt.Sprintf("inline %s, %s", mediaType, humanize.Bytes(uint64(len(data))))
}

// resolveMedia returns the value to store for a media field: the URL as given,
// or the file at path encoded as an inline asset. Exactly one must be set.
func resolveMedia(url, path string) (string, error) {
	url = strings.TrimSpace(url)
	path = strings.TrimSpace(path)
	switch {
	case url != "" && path != "":
		return "", errors.New("pass either a URL or --file, not both")
	case path != "":
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return "", err
		}
		return asset.FromFile(expanded)
	case url != "":
		return url, nil
	default:
		return "", errors.New("a URL or --file is required")
	}
}

// parsePosition turns a 1-based position into an index below count.
func parsePosition(arg string, count int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("invalid position %q: expected a number", arg)
	}
	if n < 1 || n > count {
		if count == 0 {
			return 0, fmt.Errorf("position %d out of range (no featured items)", n)
		}
		return 0, fmt.Errorf("position %d out of range (1-%d)", n, count)
	}
	return n - 1, nil
}
