package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"uxfomo/internal/profile"
)

func newLinkCommand(ctx *commandContext) *cobra.Command {
	linkCmd := &cobra.Command{
		Use:   "link",
		Short: "Edit profile links",
	}

	linkCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <url>",
		Short: "Set a link URL, adding the link when it is new",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.applyEdits(cmd, fmt.Sprintf("Link %s set", args[0]), profile.SetLink(args[0], args[1]))
		},
	})
	linkCmd.AddCommand(&cobra.Command{
		Use:   "name <key> [label]",
		Short: "Set the display name of a link; omit the label to reset it",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := ""
			if len(args) == 2 {
				label = args[1]
			}
			return ctx.applyEdits(cmd, fmt.Sprintf("Link %s renamed", args[0]), profile.RenameLink(args[0], label))
		},
	})
	linkCmd.AddCommand(&cobra.Command{
		Use:   "clear <key>",
		Short: "Empty a link URL and keep the link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.applyEdits(cmd, fmt.Sprintf("Link %s cleared", args[0]), profile.ClearLink(args[0]))
		},
	})
	linkCmd.AddCommand(&cobra.Command{
		Use:   "remove <key>",
		Short: "Remove a link",
		Long: "Remove a link and its display name. Links that are part of the default\n" +
			"profile reappear empty on the next load; use clear to hide them instead.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.applyEdits(cmd, fmt.Sprintf("Link %s removed", args[0]), profile.RemoveLink(args[0]))
		},
	})
	linkCmd.AddCommand(&cobra.Command{
		Use:   "order <key>...",
		Short: "Move links to the front in the given order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.applyEdits(cmd, "Links reordered", profile.ReorderLinks(args...))
		},
	})

	return linkCmd
}

func newStatCommand(ctx *commandContext) *cobra.Command {
	statCmd := &cobra.Command{
		Use:   "stat",
		Short: "Edit profile counters",
	}
	statCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a counter such as followers to a display value like 1.2k",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.applyEdits(cmd, fmt.Sprintf("Stat %s set", args[0]), profile.SetStat(args[0], args[1]))
		},
	})
	return statCmd
}
