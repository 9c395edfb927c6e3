package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/secondbrain/brain-client/internal/dashboard"
	"github.com/secondbrain/brain-client/internal/domain"
	"github.com/secondbrain/brain-client/internal/form"
)

func (a *app) newListCmd() *cobra.Command {
	var tag string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved content",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			board := do.MustInvoke[*dashboard.Dashboard](a.injector)
			if err := board.Load(cmd.Context()); err != nil {
				return err
			}
			printCards(cmd.OutOrStdout(), board.Snapshot().Cards, tag)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Only show items carrying this tag")
	return cmd
}

func printCards(w io.Writer, cards []domain.Card, tag string) {
	shown := 0
	for _, c := range cards {
		if tag != "" && !hasTagFold(c.Tags, tag) {
			continue
		}
		shown++
		fmt.Fprintf(w, "[%s] %s  (added %s)\n", c.TypeLabel, c.Title, c.AddedOn)
		if c.Link != "" {
			fmt.Fprintf(w, "    %s\n", c.Link)
		}
		for _, line := range strings.Split(c.Description, "\n") {
			if line != "" {
				fmt.Fprintf(w, "    %s\n", line)
			}
		}
		if len(c.Tags) > 0 {
			fmt.Fprintf(w, "    #%s\n", strings.Join(c.Tags, " #"))
		}
	}
	if shown == 0 {
		fmt.Fprintln(w, "Nothing saved yet.")
	}
}

func hasTagFold(tags []string, tag string) bool {
	return slices.ContainsFunc(tags, func(t string) bool { return strings.EqualFold(t, tag) })
}

type addFlags struct {
	title       string
	kind        string
	link        string
	description string
	tags        []string
	items       []string
}

func (a *app) newAddCmd() *cobra.Command {
	var f addFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a link or note",
		Long: `Save a link or note.

Repeating --item switches the description to list entry: every non-blank
item becomes a bullet line appended below the description.`,
		Args: cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			draft, err := a.submitDraft(cmd, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q\n", draft.Title)
			return nil
		}),
	}
	cmd.Flags().StringVar(&f.title, "title", "", "Title (required)")
	cmd.Flags().StringVar(&f.kind, "type", string(domain.TypeOther), "Content type: youtube, x or other")
	cmd.Flags().StringVar(&f.link, "link", "", "Link to the content")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Free-text description")
	cmd.Flags().StringSliceVarP(&f.tags, "tag", "t", nil, "Tag; repeat or separate with commas")
	cmd.Flags().StringArrayVar(&f.items, "item", nil, "Description list item; repeatable")
	return cmd
}

// submitDraft drives the entry form the way the web UI does.
func (a *app) submitDraft(cmd *cobra.Command, f addFlags) (domain.Draft, error) {
	kind, ok := domain.ParseContentType(f.kind)
	if !ok {
		return domain.Draft{}, fmt.Errorf("unknown content type %q (use youtube, x or other)", f.kind)
	}

	entry := do.MustInvoke[*form.Form](a.injector)
	entry.Open(&domain.Draft{
		Title:       f.title,
		Type:        kind,
		Link:        strings.TrimSpace(f.link),
		Description: f.description,
	})
	defer entry.Dismiss()

	for _, tag := range f.tags {
		if err := entry.AddTag(tag); err != nil {
			return domain.Draft{}, err
		}
	}
	if len(f.items) > 0 {
		if err := entry.SetListMode(true); err != nil {
			return domain.Draft{}, err
		}
		for i, item := range f.items {
			if err := entry.AddListItem(); err != nil {
				return domain.Draft{}, err
			}
			if err := entry.SetListItem(i, item); err != nil {
				return domain.Draft{}, err
			}
		}
	}

	return entry.Submit(cmd.Context())
}
