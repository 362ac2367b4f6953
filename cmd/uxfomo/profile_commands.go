package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"uxfomo/internal/persistence"
	"uxfomo/internal/profile"
)

func newSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <name|nick|bio|presentation> <value>",
		Short: "Set a profile field",
		Long: fmt.Sprintf("Set one of the identity fields. The bio is limited to %d characters.\n"+
			"Use the avatar command to change the avatar.", profile.MaxBioLength),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			field := strings.ToLower(strings.TrimSpace(args[0]))
			if field == profile.FieldAvatar {
				return errors.New("use `uxfomo avatar` to change the avatar")
			}
			return ctx.applyEdits(cmd, fmt.Sprintf("Updated %s", field), profile.SetField(field, args[1]))
		},
	}
}

func newAvatarCommand(ctx *commandContext) *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "avatar [url]",
		Short: "Set the avatar from a URL or a local image",
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
			return ctx.applyEdits(cmd, "Updated avatar: "+describeMedia(value), profile.SetField(profile.FieldAvatar, value))
		},
	}
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Local image to embed in the profile")
	return cmd
}

func newResetCommand(ctx *commandContext) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the stored profile and restore the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return errors.New("reset discards every edit; re-run with --yes to confirm")
			}
			return ctx.withSession(cmd, func(session *persistence.Session, _ persistence.LoadResult) error {
				if _, err := session.Reset(cmd.Context()); err != nil {
					return fmt.Errorf("reset profile: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Profile reset to defaults")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&confirmed, "yes", "y", false, "Confirm the reset")
	return cmd
}
