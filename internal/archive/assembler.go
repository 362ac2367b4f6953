package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strconv"
	"time"

	"uxfomo/internal/asset"
	"uxfomo/internal/config"
	"uxfomo/internal/export"
	"uxfomo/internal/logging"
	"uxfomo/internal/profile"
	"uxfomo/internal/textutil"
)

const (
	// DataFile holds the export payload inside the archive.
	DataFile = "data.json"
	// AvatarBase is the avatar file name without extension.
	AvatarBase = "avatar"
	// FeaturedDir holds extracted featured images.
	FeaturedDir = "featured"
)

// ErrArchiveGeneration wraps failures to produce the zip itself.
var ErrArchiveGeneration = errors.New("archive generation failed")

// SkippedAsset records an inline asset that stayed embedded because it could
// not be decoded. Field is "avatar" or "featuredContent[<index>].url".
type SkippedAsset struct {
	Field string
	Err   error
}

func (s SkippedAsset) Error() string {
	return fmt.Sprintf("%s: %v", s.Field, s.Err)
}

func (s SkippedAsset) Unwrap() error {
	return s.Err
}

// Bundle is an assembled archive.
type Bundle struct {
	// Data is the zip file content.
	Data []byte
	// Files lists entry names in the order they were written.
	Files []string
	// Skipped lists assets left embedded.
	Skipped []SkippedAsset
	// Profile is the rewritten record written to data.json.
	Profile profile.Record
}

// Assembler builds archives.
type Assembler struct {
	builder *export.Builder
	naming  string
	logger  *slog.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithBuilder sets the payload builder, mainly to pin the clock in tests.
func WithBuilder(b *export.Builder) Option {
	return func(a *Assembler) {
		if b != nil {
			a.builder = b
		}
	}
}

// WithNaming selects featured file naming: config.NamingIndex (default) uses
// the item position, config.NamingID uses the item identifier.
func WithNaming(naming string) Option {
	return func(a *Assembler) {
		a.naming = naming
	}
}

// WithLogger sets the assembler logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		a.logger = logger
	}
}

// NewAssembler returns an assembler with index naming and the system clock.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{naming: config.NamingIndex}
	for _, opt := range opts {
		opt(a)
	}
	if a.builder == nil {
		a.builder = export.NewBuilder()
	}
	a.logger = logging.NewComponentLogger(a.logger, "archive")
	return a
}

type entry struct {
	name string
	data []byte
}

// Assemble builds the archive for rec. The caller's record is never modified.
// opts is treated as an archive request; it fails with
// export.ErrNothingToExport when nothing is selected.
func (a *Assembler) Assemble(rec profile.Record, opts export.Options, sections map[string]any) (Bundle, error) {
	opts.Format = export.FormatArchive
	if err := opts.Validate(); err != nil {
		return Bundle{}, err
	}
	start := time.Now()

	out := rec.Clone()
	var (
		entries []entry
		skipped []SkippedAsset
	)
	skip := func(field string, err error) {
		skipped = append(skipped, SkippedAsset{Field: field, Err: err})
		logging.WarnWithContext(a.logger, "inline asset left embedded", "archive_asset_skipped",
			logging.String("field", field),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "re-upload the image to replace the corrupt data"),
			logging.String(logging.FieldImpact, "no file is written for the asset"),
		)
	}

	if opts.IncludeAvatarFile {
		if src := asset.Parse(out.Avatar); src.IsInline() {
			data, err := src.Bytes()
			if err != nil {
				skip("avatar", err)
			} else {
				name := AvatarBase + "." + src.Extension()
				entries = append(entries, entry{name: name, data: data})
				out.Avatar = name
			}
		}
	}

	if opts.IncludeFeaturedImages {
		used := make(map[string]struct{}, len(out.FeaturedContent))
		for i := range out.FeaturedContent {
			item := &out.FeaturedContent[i]
			src := asset.Parse(item.URL)
			if !src.IsInline() {
				continue
			}
			data, err := src.Bytes()
			if err != nil {
				skip(fmt.Sprintf("featuredContent[%d].url", i), err)
				continue
			}
			name := path.Join(FeaturedDir, a.featuredBase(*item, i, used)+"."+src.Extension())
			entries = append(entries, entry{name: name, data: data})
			item.URL = name
		}
	}

	if opts.IncludeProfileData {
		doc, err := export.Serialize(a.builder.Build(out, sections))
		if err != nil {
			return Bundle{}, fmt.Errorf("%w: %v", ErrArchiveGeneration, err)
		}
		entries = append(entries, entry{name: DataFile, data: doc})
	}

	data, err := a.write(entries)
	if err != nil {
		return Bundle{}, err
	}
	files := make([]string, len(entries))
	for i, e := range entries {
		files[i] = e.name
	}
	a.logger.Debug("archive assembled",
		logging.Int("files", len(files)),
		logging.Int("skipped", len(skipped)),
		logging.Int("bytes", len(data)),
		logging.Duration("duration", time.Since(start)),
	)
	return Bundle{Data: data, Files: files, Skipped: skipped, Profile: out}, nil
}

// featuredBase names a featured file. ID naming falls back to the position
// when the identifier cannot serve as a unique file name.
func (a *Assembler) featuredBase(item profile.FeaturedItem, index int, used map[string]struct{}) string {
	base := strconv.Itoa(index)
	if a.naming == config.NamingID && !item.ID.IsZero() {
		if name := textutil.SanitizeFileName(item.ID.String()); name != "" {
			if _, taken := used[name]; !taken {
				base = name
			}
		}
	}
	for n := 2; ; n++ {
		if _, taken := used[base]; !taken {
			break
		}
		base = fmt.Sprintf("%d-%d", index, n)
	}
	used[base] = struct{}{}
	return base
}

func (a *Assembler) write(entries []entry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	modified := a.builder.Now()
	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: create %s: %v", ErrArchiveGeneration, e.name, err)
		}
		if _, err := w.Write(e.data); err != nil {
			return nil, fmt.Errorf("%w: write %s: %v", ErrArchiveGeneration, e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: close: %v", ErrArchiveGeneration, err)
	}
	return buf.Bytes(), nil
}
