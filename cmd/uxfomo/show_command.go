package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"uxfomo/internal/persistence"
	"uxfomo/internal/profile"
	"uxfomo/internal/textutil"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(session *persistence.Session, result persistence.LoadResult) error {
				rec := session.Record()
				if jsonOutput {
					return writeJSON(cmd, rec)
				}
				colorize := shouldColorize(cmd.OutOrStdout())
				fmt.Fprint(cmd.OutOrStdout(), renderProfile(rec, result, colorize))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the profile record as JSON")
	return cmd
}

func renderProfile(rec profile.Record, result persistence.LoadResult, colorize bool) string {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	for _, l := range renderSectionHeader("Profile", colorize) {
		line(l)
	}
	line(renderField("Name", rec.Name))
	line(renderField("Nick", "@"+rec.Nick))
	line(renderField("Bio", rec.Bio))
	line(renderField("Presentation", rec.Presentation))
	line(renderField("Avatar", describeMedia(rec.Avatar)))
	switch {
	case result.Err != nil:
		line(renderStatusLine("Source", statusWarn, "store unreadable, showing defaults", colorize))
	case len(result.Issues) > 0:
		line(renderStatusLine("Source", statusWarn, fmt.Sprintf("%d field(s) replaced by defaults: %s",
			len(result.Issues), strings.Join(result.Issues.Fields(), ", ")), colorize))
	default:
		line(renderStatusLine("Source", statusInfo, string(result.Source), colorize))
	}
	line("")

	statRows := make([][]string, 0, len(rec.Stats))
	for _, key := range rec.StatKeys() {
		statRows = append(statRows, []string{textutil.TitleLabel(key), rec.Stats[key]})
	}
	line(renderTable([]string{"Stat", "Value"}, statRows, []columnAlignment{alignLeft, alignRight}, 0))
	line("")

	links := rec.OrderedLinks(false)
	if len(links) == 0 {
		line(renderField("Links", "none"))
	} else {
		linkRows := make([][]string, 0, len(links))
		for _, link := range links {
			linkRows = append(linkRows, []string{link.Label, link.URL})
		}
		line(renderTable([]string{"Link", "URL"}, linkRows, nil, displayWidth))
	}
	line("")

	line(renderFeatured(rec))
	return b.String()
}

// renderFeatured lists featured items padded to the fixed number of slots.
func renderFeatured(rec profile.Record) string {
	slots := max(profile.MaxFeaturedItems, len(rec.FeaturedContent))
	rows := make([][]string, 0, slots)
	for i := range slots {
		pos := strconv.Itoa(i + 1)
		if i >= len(rec.FeaturedContent) {
			rows = append(rows, []string{pos, "(empty)", "", ""})
			continue
		}
		item := rec.FeaturedContent[i]
		rows = append(rows, []string{pos, item.Caption, describeMedia(item.URL), item.ID.String()})
	}
	return renderTable([]string{"#", "Caption", "Media", "ID"}, rows, []columnAlignment{alignRight}, displayWidth)
}
