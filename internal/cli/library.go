package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/mediavault/internal/common"
	"github.com/dmitrijs2005/mediavault/internal/models"
)

func (a *App) List(_ context.Context, _ []string) error {
	items := a.svc.View()
	if len(items) == 0 {
		a.printf("No media found.\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tTITLE\tCOLLECTION\tTAGS\tSIZE\tUPLOADED")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			it.ID, it.Type, it.Title, it.Collection, strings.Join(it.Tags, ", "),
			humanize.Bytes(uint64(it.Size)), humanize.Time(it.UploadDate))
	}
	return tw.Flush()
}

func (a *App) Collections(_ context.Context, _ []string) error {
	current := a.svc.Query().Collection
	for _, c := range a.svc.Collections() {
		marker := " "
		if c == current {
			marker = "*"
		}
		a.printf("%s %s\n", marker, c)
	}
	return nil
}

func (a *App) Collection(_ context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: collection <name>")
	}
	a.svc.SetCollection(args[0])
	a.printf("Collection: %s (%d items)\n", args[0], len(a.svc.View()))
	return nil
}

func (a *App) Search(_ context.Context, args []string) error {
	text := strings.Join(args, " ")
	a.svc.SetSearch(text)
	if text == "" {
		a.printf("Search cleared (%d items)\n", len(a.svc.View()))
		return nil
	}
	a.printf("Search %q: %d items\n", text, len(a.svc.View()))
	return nil
}

func (a *App) Show(_ context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: show <id>")
	}
	item, err := a.svc.Open(args[0])
	if err != nil {
		return err
	}
	a.printItem(item)
	return nil
}

func (a *App) Next(_ context.Context, _ []string) error {
	return a.step(a.svc.Next)
}

func (a *App) Prev(_ context.Context, _ []string) error {
	return a.step(a.svc.Previous)
}

func (a *App) step(move func() (models.MediaItem, error)) error {
	item, err := move()
	if errors.Is(err, common.ErrViewerClosed) {
		a.printf("Viewer closed: the item is no longer in the current view.\n")
		return nil
	}
	if err != nil {
		return err
	}
	a.printItem(item)
	return nil
}

func (a *App) CloseViewer(_ context.Context, _ []string) error {
	a.svc.Close()
	return nil
}

func (a *App) printItem(it models.MediaItem) {
	a.printf("%s  %s\n", it.ID, it.Title)
	a.printf("  type:       %s\n", it.Type)
	a.printf("  collection: %s\n", it.Collection)
	a.printf("  tags:       %s\n", strings.Join(it.Tags, ", "))
	a.printf("  size:       %s\n", humanize.Bytes(uint64(it.Size)))
	a.printf("  uploaded:   %s (%s)\n", it.UploadDate.Format("2006-01-02 15:04"), humanize.Time(it.UploadDate))
	if it.Width > 0 && it.Height > 0 {
		a.printf("  dimensions: %dx%d\n", it.Width, it.Height)
	}
	if it.TakenAt != nil {
		a.printf("  taken:      %s\n", it.TakenAt.Format("2006-01-02 15:04"))
	}
	a.printf("  url:        %s\n", it.URL)
}

// Edit prompts for title, collection and tags, prefilled with the current
// values.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: edit <id>")
	}
	item, err := a.svc.Get(args[0])
	if err != nil {
		return err
	}

	title, err := GetWithDefault(a.reader, "Title", item.Title, a.out)
	if err != nil {
		return err
	}
	collection, err := GetWithDefault(a.reader, "Collection", item.Collection, a.out)
	if err != nil {
		return err
	}
	tags, err := GetWithDefault(a.reader, "Tags, comma separated", strings.Join(item.Tags, ", "), a.out)
	if err != nil {
		return err
	}

	updated, err := a.svc.UpdateMetadata(ctx, item.ID, models.MetadataPatch{
		Title:      &title,
		Collection: &collection,
		Tags:       &tags,
	})
	if err != nil && updated.ID == "" {
		return err
	}
	if err != nil {
		a.log.Warn(ctx, "metadata not persisted", "id", item.ID, "error", err)
		a.printf("Saved in this session only: %v\n", err)
	}
	a.printf("Updated %s: %q in %s [%s]\n", updated.ID, updated.Title, updated.Collection, strings.Join(updated.Tags, ", "))
	return nil
}
