package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/osmansemir/mindvale-cli/internal/articles"
	"github.com/osmansemir/mindvale-cli/internal/models"
)

// List re-runs the current query and renders the page.
func (a *App) List(ctx context.Context) error {
	if err := a.store.Refresh(ctx); err != nil {
		return err
	}
	a.renderPage()
	return nil
}

func (a *App) renderPage() {
	renderArticleTable(a.out, a.store.Articles())
	renderPageFooter(a.out, a.store.Pagination())
}

// Search sets the free-text filter. With no arguments the filter is cleared.
// The store debounces keystroke-level input; a typed command is already a
// settled query, so it is flushed immediately.
func (a *App) Search(ctx context.Context, args []string) error {
	a.store.SetSearch(ctx, strings.Join(args, " "))
	if err := a.store.FlushSearch(ctx); err != nil {
		return err
	}
	a.renderPage()
	return nil
}

// Tag toggles one tag in the multi-select filter; "tag clear" empties the
// selection, which means no tag filter at all.
func (a *App) Tag(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: tag <tag> | tag clear")
		return nil
	}
	var err error
	if args[0] == "clear" {
		err = a.store.ClearTags(ctx)
	} else {
		err = a.store.ToggleTag(ctx, args[0])
	}
	if err != nil {
		return err
	}
	a.renderPage()
	return nil
}

func (a *App) Sort(ctx context.Context, args []string) error {
	if len(args) == 0 || !articles.SortKey(args[0]).Valid() {
		fmt.Fprintln(a.out, "Usage: sort <newest|oldest|title-az|title-za>")
		return nil
	}
	if err := a.store.SetSort(ctx, articles.SortKey(args[0])); err != nil {
		return err
	}
	a.renderPage()
	return nil
}

func (a *App) Page(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: page <number>")
		return nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		fmt.Fprintln(a.out, "Usage: page <number>")
		return nil
	}
	if err := a.store.SetPage(ctx, n); err != nil {
		return err
	}
	a.renderPage()
	return nil
}

func (a *App) NextPage(ctx context.Context) error {
	if err := a.store.NextPage(ctx); err != nil {
		return err
	}
	a.renderPage()
	return nil
}

func (a *App) PrevPage(ctx context.Context) error {
	if err := a.store.PrevPage(ctx); err != nil {
		return err
	}
	a.renderPage()
	return nil
}

func (a *App) Featured(ctx context.Context, args []string) error {
	if len(args) == 0 || (args[0] != "on" && args[0] != "off") {
		fmt.Fprintln(a.out, "Usage: featured <on|off>")
		return nil
	}
	if err := a.store.SetFeaturedOnly(ctx, args[0] == "on"); err != nil {
		return err
	}
	a.renderPage()
	return nil
}

func (a *App) AuthorFilter(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: author <name> | author clear")
		return nil
	}
	name := strings.Join(args, " ")
	if name == "clear" {
		name = ""
	}
	if err := a.store.SetAuthor(ctx, name); err != nil {
		return err
	}
	a.renderPage()
	return nil
}

// Dates sets the creation date range filter, "dates clear" removes it.
// Dates are entered as YYYY-MM-DD; the end date is optional.
func (a *App) Dates(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: dates <start> [end] | dates clear")
		return nil
	}
	if args[0] == "clear" {
		if err := a.store.SetDateRange(ctx, time.Time{}, time.Time{}); err != nil {
			return err
		}
		a.renderPage()
		return nil
	}

	start, err := time.Parse("2006-01-02", args[0])
	if err != nil {
		fmt.Fprintln(a.out, "Dates must look like 2026-08-28.")
		return nil
	}
	var end time.Time
	if len(args) > 1 {
		if end, err = time.Parse("2006-01-02", args[1]); err != nil {
			fmt.Fprintln(a.out, "Dates must look like 2026-08-28.")
			return nil
		}
	}
	if err := a.store.SetDateRange(ctx, start, end); err != nil {
		return err
	}
	a.renderPage()
	return nil
}

func (a *App) StatusFilter(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: status <draft|pending|approved|rejected> | status clear")
		return nil
	}
	status := models.Status(args[0])
	if args[0] == "clear" {
		status = ""
	} else if !status.Valid() {
		fmt.Fprintln(a.out, "Usage: status <draft|pending|approved|rejected> | status clear")
		return nil
	}
	if err := a.store.SetStatus(ctx, status); err != nil {
		return err
	}
	a.renderPage()
	return nil
}

// ResetFilters clears every filter at once.
func (a *App) ResetFilters(ctx context.Context) error {
	if err := a.store.ClearFilters(ctx); err != nil {
		return err
	}
	a.renderPage()
	return nil
}

func (a *App) Read(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: read <slug>")
		return nil
	}
	article, err := a.store.Get(ctx, args[0])
	if err != nil {
		return err
	}
	renderArticle(a.out, article)
	return nil
}

// Related shows articles sharing tags with the given one, ranked by overlap.
func (a *App) Related(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: related <slug>")
		return nil
	}
	article, err := a.store.Get(ctx, args[0])
	if err != nil {
		return err
	}
	related := a.store.RelatedTo(article, 4)
	if len(related) == 0 {
		fmt.Fprintln(a.out, "No related articles on this page.")
		return nil
	}
	renderArticleTable(a.out, related)
	return nil
}

// TagCatalog prints every tag in use on the platform.
func (a *App) TagCatalog(ctx context.Context) error {
	if err := a.store.RefreshTags(ctx); err != nil {
		return err
	}
	tags := a.store.TagCatalog()
	if len(tags) == 0 {
		fmt.Fprintln(a.out, "No tags yet.")
		return nil
	}
	fmt.Fprintln(a.out, strings.Join(tags, ", "))
	return nil
}
