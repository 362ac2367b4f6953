package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"uxfomo/internal/config"
	"uxfomo/internal/profile"
)

// Format selects the artifact type.
type Format string

const (
	FormatDocument Format = "document"
	FormatArchive  Format = "archive"
)

var (
	// ErrNothingToExport is returned when the options select no content.
	ErrNothingToExport = errors.New("nothing selected to export")
	// ErrUnknownFormat is returned for formats other than document and archive.
	ErrUnknownFormat = errors.New("unknown export format")
)

// Extension returns the artifact file extension without the dot.
func (f Format) Extension() string {
	if f == FormatArchive {
		return "zip"
	}
	return "json"
}

// ParseFormat accepts document/json and archive/zip, case-insensitively.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "document", "json":
		return FormatDocument, nil
	case "archive", "zip":
		return FormatArchive, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, value)
	}
}

// Options selects what an export contains.
type Options struct {
	Format                Format
	IncludeProfileData    bool
	IncludeAvatarFile     bool
	IncludeFeaturedImages bool
}

// DefaultOptions returns the initial export selection for rec. With the
// "auto" format an archive is chosen only when the record holds local media.
func DefaultOptions(rec profile.Record, cfg config.Export) Options {
	format := FormatDocument
	switch cfg.DefaultFormat {
	case config.FormatArchive:
		format = FormatArchive
	case config.FormatAuto:
		if rec.HasLocalMedia() {
			format = FormatArchive
		}
	}
	return Options{
		Format:                format,
		IncludeProfileData:    true,
		IncludeAvatarFile:     cfg.IncludeAvatarFile,
		IncludeFeaturedImages: cfg.IncludeFeaturedImages,
	}.Normalize()
}

// Normalize forces the media flags off for documents.
func (o Options) Normalize() Options {
	if o.Format != FormatArchive {
		o.IncludeAvatarFile = false
		o.IncludeFeaturedImages = false
	}
	return o
}

// CanDownload reports whether the options select any content.
func (o Options) CanDownload() bool {
	o = o.Normalize()
	return o.IncludeProfileData || (o.Format == FormatArchive && (o.IncludeAvatarFile || o.IncludeFeaturedImages))
}

// Validate checks the format and that some content is selected.
func (o Options) Validate() error {
	switch o.Format {
	case FormatDocument, FormatArchive:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, o.Format)
	}
	if !o.CanDownload() {
		return ErrNothingToExport
	}
	return nil
}

// Filename returns "<product>-<YYYY-MM-DD>.<ext>" using the UTC date of at.
func Filename(product string, format Format, at time.Time) string {
	return fmt.Sprintf("%s-%s.%s", product, at.UTC().Format(time.DateOnly), format.Extension())
}
