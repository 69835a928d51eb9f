package cli

import (
	"context"
	"fmt"

	"github.com/osmansemir/mindvale-cli/internal/editor"
	"github.com/osmansemir/mindvale-cli/internal/models"
)

// New drives the editor for a fresh article. The slug cache is refreshed
// first so the collision check runs against current data.
func (a *App) New(ctx context.Context) error {
	if err := a.store.RefreshSlugs(ctx); err != nil {
		a.log.Warn(ctx, "slug cache refresh failed, collision check may be stale", "error", err)
	}
	return a.runEditor(ctx, editor.New())
}

// Edit loads an existing article into the editor. Only drafts and rejected
// articles are editable; this is a UI convenience, the server decides.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: edit <id>")
		return nil
	}
	article, err := a.store.GetByID(ctx, args[0])
	if err != nil {
		return err
	}
	if !article.Status.CanEdit() {
		fmt.Fprintf(a.out, "Articles in %s status cannot be edited.\n", article.Status)
		return nil
	}
	if err := a.store.RefreshSlugs(ctx); err != nil {
		a.log.Warn(ctx, "slug cache refresh failed, collision check may be stale", "error", err)
	}
	return a.runEditor(ctx, editor.Load(article))
}

// runEditor prompts for each field (keeping current values on empty input
// when editing) and saves. Validation failures and slug collisions come back
// as errors the REPL renders.
func (a *App) runEditor(ctx context.Context, form *editor.Form) error {
	var err error
	if form.Title, err = GetDefaultedText(a.reader, "Title", form.Title, a.out); err != nil {
		return err
	}
	if form.Description, err = GetDefaultedText(a.reader, "Description", form.Description, a.out); err != nil {
		return err
	}
	tagLine, err := GetDefaultedText(a.reader, "Tags (comma-separated)", joinTags(form.Tags), a.out)
	if err != nil {
		return err
	}
	form.Tags = ParseTags(tagLine)

	if form.Editing() {
		keep, err := Confirm(a.reader, "Keep current markdown body?", a.out)
		if err != nil {
			return err
		}
		if !keep {
			if form.Markdown, err = GetMultiline(a.reader, "Markdown body", a.out); err != nil {
				return err
			}
		}
	} else {
		if form.Markdown, err = GetMultiline(a.reader, "Markdown body", a.out); err != nil {
			return err
		}
	}

	article, err := form.Save(ctx, a.store)
	if err != nil {
		return err
	}
	if form.Editing() {
		fmt.Fprintf(a.out, "Updated %q (%s)\n", article.Title, article.Slug)
	} else {
		fmt.Fprintf(a.out, "Created %q as a draft (%s). Use 'submit %s' to send it for review.\n",
			article.Title, article.Slug, article.ID)
	}
	return nil
}

func joinTags(tags []string) string {
	out := ""
	for i, t := range tags {
		if i > 0 {
			out += ", "
		}
		out += t
	}
	return out
}

// Delete removes one of the caller's articles after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: delete <id>")
		return nil
	}
	article, err := a.store.GetByID(ctx, args[0])
	if err != nil {
		return err
	}
	if !article.Status.CanEdit() {
		fmt.Fprintf(a.out, "Articles in %s status cannot be deleted.\n", article.Status)
		return nil
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %q? This cannot be undone.", article.Title), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	if err := a.store.Delete(ctx, article.ID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

// Mine lists the caller's own articles across all workflow states, with the
// reviewer's feedback shown for rejected ones.
func (a *App) Mine(ctx context.Context, args []string) error {
	var status models.Status
	if len(args) > 0 {
		status = models.Status(args[0])
		if !status.Valid() {
			fmt.Fprintln(a.out, "Usage: mine [draft|pending|approved|rejected]")
			return nil
		}
	}

	list, err := a.store.Mine(ctx, status)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		if status == "" {
			fmt.Fprintln(a.out, "You haven't created any articles yet.")
		} else {
			fmt.Fprintf(a.out, "You don't have any %s articles.\n", status)
		}
		return nil
	}

	renderArticleTable(a.out, list)
	for _, article := range list {
		if article.Status == models.StatusRejected && article.RejectionReason != "" {
			reviewer := ""
			if article.ReviewedBy != nil {
				reviewer = " (" + article.ReviewedBy.Name + ")"
			}
			fmt.Fprintf(a.out, "Feedback on %q%s: %s\n", article.Title, reviewer, article.RejectionReason)
		}
	}
	return nil
}

// Submit sends a draft or rejected article for review. The control is
// refused locally outside those two states; the server checks again.
func (a *App) Submit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: submit <id>")
		return nil
	}
	article, err := a.store.GetByID(ctx, args[0])
	if err != nil {
		return err
	}
	if !article.Status.CanSubmit() {
		fmt.Fprintf(a.out, "Only draft or rejected articles can be submitted (this one is %s).\n", article.Status)
		return nil
	}

	updated, err := a.store.Submit(ctx, article.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%q submitted for review (%s).\n", updated.Title, updated.Status)
	return nil
}
