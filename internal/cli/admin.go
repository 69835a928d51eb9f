package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/osmansemir/mindvale-cli/internal/articles"
	"github.com/osmansemir/mindvale-cli/internal/models"
)

// Pending shows the review queue, oldest submission first.
func (a *App) Pending(ctx context.Context) error {
	list, err := a.store.Pending(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "The review queue is empty.")
		return nil
	}
	renderArticleTable(a.out, list)
	return nil
}

func (a *App) Approve(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: approve <id>")
		return nil
	}
	article, err := a.store.Approve(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%q approved and published.\n", article.Title)
	return nil
}

// Reject asks for feedback, validates it locally (10–500 characters, not
// blank), and sends the article back to its author. No local state changes
// until the server confirms.
func (a *App) Reject(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: reject <id>")
		return nil
	}

	reason, err := GetMultiline(a.reader, "Explain what needs to be fixed or improved", a.out)
	if err != nil {
		return err
	}

	article, err := a.store.Reject(ctx, args[0], reason)
	if err != nil {
		if errors.Is(err, articles.ErrReasonRequired) ||
			errors.Is(err, articles.ErrReasonTooShort) ||
			errors.Is(err, articles.ErrReasonTooLong) {
			fmt.Fprintln(a.out, err.Error())
			return nil
		}
		return err
	}
	fmt.Fprintf(a.out, "%q rejected. Feedback sent to the author.\n", article.Title)
	return nil
}

func (a *App) Users(ctx context.Context) error {
	users, err := a.session.AllUsers(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
	}
	tw.Flush()
	return nil
}

func (a *App) User(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: user <id>")
		return nil
	}
	u, err := a.session.UserByID(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s> — %s, joined %s\n", u.Name, u.Email, u.Role, shortDate(u.CreatedAt))
	return nil
}

func (a *App) Promote(ctx context.Context, args []string) error {
	if len(args) < 2 || !models.Role(args[1]).Valid() {
		fmt.Fprintln(a.out, "Usage: promote <id> <user|author|admin>")
		return nil
	}
	u, err := a.session.UpdateUserRole(ctx, args[0], models.Role(args[1]))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s is now a(n) %s.\n", u.Name, u.Role)
	return nil
}

func (a *App) RemoveUser(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: rmuser <id>")
		return nil
	}
	u, err := a.session.UserByID(ctx, args[0])
	if err != nil {
		return err
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete account %s <%s>?", u.Name, u.Email), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	if err := a.session.DeleteUser(ctx, u.ID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account deleted.")
	return nil
}
