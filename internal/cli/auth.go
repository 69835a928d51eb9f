package cli

import (
	"context"
	"fmt"

	"github.com/osmansemir/mindvale-cli/internal/models"
)

func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	role, err := GetDefaultedText(a.reader, "Role (user or author)", string(models.RoleUser), a.out)
	if err != nil {
		return err
	}

	if err := a.session.Register(ctx, name, email, password, models.Role(role)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account created. Sign in with 'login'.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	user, err := a.session.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", user.Name, user.Role)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *App) Whoami(_ context.Context) error {
	user := a.session.User()
	if user == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> — %s\n", user.Name, user.Email, user.Role)
	return nil
}

// Upgrade promotes the current reader account to author via self-service.
func (a *App) Upgrade(ctx context.Context) error {
	user, err := a.session.UpgradeToAuthor(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "You are now an %s. New commands are available, see 'help'.\n", user.Role)
	return nil
}
