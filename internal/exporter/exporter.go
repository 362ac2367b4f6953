// Package exporter runs one export request end to end: it picks the format,
// builds the document or archive, and writes the artifact to disk.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"uxfomo/internal/archive"
	"uxfomo/internal/config"
	"uxfomo/internal/export"
	"uxfomo/internal/fileutil"
	"uxfomo/internal/logging"
	"uxfomo/internal/profile"
)

// Request describes one export.
type Request struct {
	Options export.Options
	// Output is a directory or file path. Empty means the configured export
	// directory with the standard file name.
	Output   string
	Sections map[string]any
}

// Artifact describes a written export.
type Artifact struct {
	Path    string
	Format  export.Format
	Size    int64
	Files   []string
	Skipped []archive.SkippedAsset
}

// Service writes exports for one configuration.
type Service struct {
	cfg       *config.Config
	now       func() time.Time
	logger    *slog.Logger
	builder   *export.Builder
	assembler *archive.Assembler
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock sets the time source used for export dates and file names.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service.
func New(cfg *config.Config, opts ...Option) *Service {
	s := &Service{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.builder = export.NewBuilder(export.WithClock(s.now))
	s.assembler = archive.NewAssembler(
		archive.WithBuilder(s.builder),
		archive.WithNaming(cfg.Export.FeaturedNaming),
		archive.WithLogger(s.logger),
	)
	s.logger = logging.NewComponentLogger(s.logger, "exporter")
	return s
}

// DefaultOptions returns the configured export selection for rec.
func (s *Service) DefaultOptions(rec profile.Record) export.Options {
	return export.DefaultOptions(rec, s.cfg.Export)
}

// Export builds and writes one artifact. Nothing is written when the build
// fails. When ctx ends during an archive build the build is abandoned and
// ctx.Err is returned.
func (s *Service) Export(ctx context.Context, rec profile.Record, req Request) (Artifact, error) {
	opts := req.Options.Normalize()
	if err := opts.Validate(); err != nil {
		return Artifact{}, err
	}

	at := s.now()
	target, err := s.resolveTarget(req.Output, export.Filename(s.cfg.Export.Product, opts.Format, at))
	if err != nil {
		return Artifact{}, err
	}

	artifact := Artifact{Path: target, Format: opts.Format}
	var data []byte
	switch opts.Format {
	case export.FormatArchive:
		bundle, err := s.assembler.Start(rec, opts, req.Sections).Wait(ctx)
		if err != nil {
			return Artifact{}, err
		}
		data = bundle.Data
		artifact.Files = bundle.Files
		artifact.Skipped = bundle.Skipped
	default:
		data, err = s.builder.Document(rec, req.Sections)
		if err != nil {
			return Artifact{}, err
		}
		artifact.Files = []string{filepath.Base(target)}
	}

	if err := fileutil.WriteFileAtomic(target, data, 0o644); err != nil {
		logging.ErrorWithContext(s.logger, "export write failed", "export_write_failed",
			logging.String(logging.FieldPath, target),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that the export directory is writable"),
			logging.String(logging.FieldImpact, "no artifact was written"),
		)
		return Artifact{}, fmt.Errorf("write export: %w", err)
	}
	artifact.Size = int64(len(data))

	s.logger.Info("export written",
		logging.String(logging.FieldEventType, "export_written"),
		logging.String(logging.FieldPath, target),
		logging.String("format", string(opts.Format)),
		logging.Int64("bytes", artifact.Size),
		logging.Int("files", len(artifact.Files)),
		logging.Int("skipped_assets", len(artifact.Skipped)),
	)
	return artifact, nil
}

// resolveTarget maps the requested output onto a file path. Existing
// directories and paths ending in a separator receive the standard name.
func (s *Service) resolveTarget(output, name string) (string, error) {
	if strings.TrimSpace(output) == "" {
		return filepath.Join(s.cfg.Paths.ExportDir, name), nil
	}
	expanded, err := config.ExpandPath(output)
	if err != nil {
		return "", fmt.Errorf("resolve export output: %w", err)
	}
	if strings.HasSuffix(output, "/") || strings.HasSuffix(output, string(filepath.Separator)) {
		return filepath.Join(expanded, name), nil
	}
	info, err := os.Stat(expanded)
	switch {
	case err == nil && info.IsDir():
		return filepath.Join(expanded, name), nil
	case err == nil, errors.Is(err, os.ErrNotExist):
		return expanded, nil
	default:
		return "", fmt.Errorf("inspect export output: %w", err)
	}
}
