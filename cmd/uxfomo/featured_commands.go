package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"uxfomo/internal/persistence"
	"uxfomo/internal/profile"
)

func newFeaturedCommand(ctx *commandContext) *cobra.Command {
	featuredCmd := &cobra.Command{
		Use:   "featured",
		Short: "Edit featured content",
		Long:  fmt.Sprintf("Featured content holds up to %d items. Positions start at 1.", profile.MaxFeaturedItems),
	}

	featuredCmd.AddCommand(newFeaturedListCommand(ctx))
	featuredCmd.AddCommand(newFeaturedAddCommand(ctx))
	featuredCmd.AddCommand(newFeaturedUpdateCommand(ctx))
	featuredCmd.AddCommand(newFeaturedRemoveCommand(ctx))
	featuredCmd.AddCommand(newFeaturedMoveCommand(ctx))

	return featuredCmd
}

func newFeaturedListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List featured items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(session *persistence.Session, _ persistence.LoadResult) error {
				rec := session.Record()
				if jsonOutput {
					items := rec.FeaturedContent
					if items == nil {
						items = []profile.FeaturedItem{}
					}
					return writeJSON(cmd, items)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderFeatured(rec))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print featured items as JSON")
	return cmd
}

func newFeaturedAddCommand(ctx *commandContext) *cobra.Command {
	var filePath, caption string

	cmd := &cobra.Command{
		Use:   "add [url]",
		Short: "Add a featured item from a URL or a local image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var url string
			if len(args) == 1 {
				url = args[0]
			}
			value, err := resolveMedia(url, filePath)
			if err != nil {
				return err
			}
			return ctx.applyEdits(cmd, "Featured item added", profile.AddFeatured(value, caption))
		},
	}
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Local image to embed in the profile")
	cmd.Flags().StringVar(&caption, "caption", "", "Caption shown under the item")
	return cmd
}

func newFeaturedUpdateCommand(ctx *commandContext) *cobra.Command {
	var url, filePath, caption string

	cmd := &cobra.Command{
		Use:   "update <position>",
		Short: "Replace the media or caption of a featured item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			mediaChanged := flags.Changed("url") || flags.Changed("file")
			if !mediaChanged && !flags.Changed("caption") {
				return errors.New("nothing to update: pass --url, --file, or --caption")
			}
			var media string
			if mediaChanged {
				var err error
				if media, err = resolveMedia(url, filePath); err != nil {
					return err
				}
			}
			return ctx.withSession(cmd, func(session *persistence.Session, _ persistence.LoadResult) error {
				index, err := parsePosition(args[0], len(session.Record().FeaturedContent))
				if err != nil {
					return err
				}
				var mutations []profile.Mutation
				if mediaChanged {
					mutations = append(mutations, profile.UpdateFeaturedURL(index, media))
				}
				if flags.Changed("caption") {
					mutations = append(mutations, profile.UpdateFeaturedCaption(index, caption))
				}
				return applySession(cmd, session, fmt.Sprintf("Featured item %d updated", index+1), mutations...)
			})
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "New media URL")
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Local image to embed in the profile")
	cmd.Flags().StringVar(&caption, "caption", "", "New caption")
	return cmd
}

func newFeaturedRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <position>",
		Short: "Remove a featured item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(session *persistence.Session, _ persistence.LoadResult) error {
				index, err := parsePosition(args[0], len(session.Record().FeaturedContent))
				if err != nil {
					return err
				}
				return applySession(cmd, session, fmt.Sprintf("Featured item %d removed", index+1), profile.RemoveFeatured(index))
			})
		},
	}
}

func newFeaturedMoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a featured item to another position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(session *persistence.Session, _ persistence.LoadResult) error {
				count := len(session.Record().FeaturedContent)
				from, err := parsePosition(args[0], count)
				if err != nil {
					return err
				}
				to, err := parsePosition(args[1], count)
				if err != nil {
					return err
				}
				return applySession(cmd, session, fmt.Sprintf("Featured item moved to position %d", to+1), profile.MoveFeatured(from, to))
			})
		},
	}
}
