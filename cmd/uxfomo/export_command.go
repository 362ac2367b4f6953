package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"uxfomo/internal/export"
	"uxfomo/internal/exporter"
	"uxfomo/internal/logging"
	"uxfomo/internal/persistence"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var (
		formatFlag string
		output     string
		noProfile  bool
		noAvatar   bool
		noFeatured bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the profile as a JSON document or a zip archive",
		Long: "Export the profile. Without --format the configured default is used; with\n" +
			"the \"auto\" default an archive is produced only when the profile holds\n" +
			"uploaded images. Archives store uploaded images as separate files.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.loggerFor(cmd)
			svc := exporter.New(cfg, exporter.WithLogger(logger))

			return ctx.withSession(cmd, func(session *persistence.Session, _ persistence.LoadResult) error {
				rec := session.Record()
				opts := svc.DefaultOptions(rec)
				if strings.TrimSpace(formatFlag) != "" {
					format, err := export.ParseFormat(formatFlag)
					if err != nil {
						return err
					}
					opts.Format = format
					opts.IncludeAvatarFile = cfg.Export.IncludeAvatarFile
					opts.IncludeFeaturedImages = cfg.Export.IncludeFeaturedImages
				}
				if noProfile {
					opts.IncludeProfileData = false
				}
				if noAvatar {
					opts.IncludeAvatarFile = false
				}
				if noFeatured {
					opts.IncludeFeaturedImages = false
				}
				opts = opts.Normalize()
				if !opts.CanDownload() {
					return fmt.Errorf("%w: enable profile data or, for archives, avatar or featured images", export.ErrNothingToExport)
				}

				logger.Debug("export requested",
					logging.String("format", string(opts.Format)),
					logging.Bool("profile_data", opts.IncludeProfileData),
					logging.Bool("avatar_file", opts.IncludeAvatarFile),
					logging.Bool("featured_images", opts.IncludeFeaturedImages),
				)

				var artifact exporter.Artifact
				err := runWithSpinner(cmd, "Building "+string(opts.Format), func() error {
					var exportErr error
					artifact, exportErr = svc.Export(cmd.Context(), rec, exporter.Request{Options: opts, Output: output})
					return exportErr
				})
				if err != nil {
					return fmt.Errorf("export failed: %w", err)
				}
				if jsonOutput {
					return writeJSON(cmd, artifactJSON(artifact))
				}
				printArtifact(cmd, artifact, opts)
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&formatFlag, "format", "", "Artifact format: document (json) or archive (zip)")
	flags.StringVarP(&output, "output", "o", "", "Output file or directory (defaults to the export directory)")
	flags.BoolVar(&noProfile, "no-profile", false, "Leave out the profile data (archives only hold media then)")
	flags.BoolVar(&noAvatar, "no-avatar", false, "Keep the avatar embedded instead of writing avatar.<ext>")
	flags.BoolVar(&noFeatured, "no-featured", false, "Keep featured images embedded instead of writing featured/<n>.<ext>")
	flags.BoolVar(&jsonOutput, "json", false, "Print the export summary as JSON")
	return cmd
}

// runWithSpinner runs fn and shows a spinner on stderr while it works, but only
// when stderr is a terminal.
func runWithSpinner(cmd *cobra.Command, description string, fn func() error) error {
	errOut := cmd.ErrOrStderr()
	if !isTerminal(errOut) {
		return fn()
	}
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(errOut),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case err := <-done:
			_ = bar.Finish()
			return err
		case <-ticker.C:
			_ = bar.Add(1)
		}
	}
}

type artifactSummary struct {
	Path    string   `json:"path"`
	Format  string   `json:"format"`
	Size    int64    `json:"size"`
	Files   []string `json:"files"`
	Skipped []string `json:"skipped"`
}

func artifactJSON(a exporter.Artifact) artifactSummary {
	skipped := make([]string, 0, len(a.Skipped))
	for _, s := range a.Skipped {
		skipped = append(skipped, s.Error())
	}
	files := a.Files
	if files == nil {
		files = []string{}
	}
	return artifactSummary{
		Path:    a.Path,
		Format:  string(a.Format),
		Size:    a.Size,
		Files:   files,
		Skipped: skipped,
	}
}

func printArtifact(cmd *cobra.Command, a exporter.Artifact, opts export.Options) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	fmt.Fprintln(out, renderStatusLine("Export", statusOK,
		fmt.Sprintf("%s (%s)", a.Path, humanize.Bytes(uint64(a.Size))), colorize))
	fmt.Fprintln(out, renderField("Format", string(a.Format)))
	fmt.Fprintln(out, renderField("Profile data", yesNo(opts.IncludeProfileData)))
	if a.Format == export.FormatArchive {
		fmt.Fprintln(out, renderField("Files", strings.Join(a.Files, ", ")))
	}
	for _, s := range a.Skipped {
		fmt.Fprintln(out, renderStatusLine("Skipped", statusWarn, s.Error(), colorize))
	}
	switch {
	case len(a.Skipped) == 0:
	case opts.IncludeProfileData:
		fmt.Fprintln(out, renderStatusLine("Note", statusInfo, "skipped images stay embedded in data.json", colorize))
	default:
		fmt.Fprintln(out, renderStatusLine("Note", statusInfo, "skipped images are not in the archive", colorize))
	}
}
