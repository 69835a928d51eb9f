// Package cli is the interactive surface of the Mindvale client: a REPL
// whose commands call into the session and article stores. Rendering and
// prompting live here; every decision that matters is delegated to the
// stores or to the server.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/osmansemir/mindvale-cli/internal/api"
	"github.com/osmansemir/mindvale-cli/internal/articles"
	"github.com/osmansemir/mindvale-cli/internal/config"
	"github.com/osmansemir/mindvale-cli/internal/logging"
	"github.com/osmansemir/mindvale-cli/internal/models"
	"github.com/osmansemir/mindvale-cli/internal/session"
)

type App struct {
	config  *config.Config
	session *session.Store
	store   *articles.Store
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(cfg *config.Config, log logging.Logger) *App {
	sess := session.NewStore(cfg.TokenFile, log)
	client := api.New(cfg.APIBaseURL,
		api.WithTokenSource(sess),
		api.WithUnauthorizedHook(sess.HandleUnauthorized),
	)
	sess.AttachClient(client)

	app := &App{
		config:  cfg,
		session: sess,
		store:   articles.NewStore(client, cfg.PageSize, cfg.SearchDebounce, log),
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
	sess.OnSessionExpired(func() {
		fmt.Fprintln(app.out, "Session expired. Please sign in again.")
	})
	return app
}

func (a *App) IsAuthenticated() bool { return a.session.IsAuthenticated() }

func (a *App) Role() models.Role { return a.session.Role() }

// Run restores any persisted session, then hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	if ok, err := a.session.CheckAuth(ctx); err != nil {
		a.log.Warn(ctx, "session check failed", "error", err)
	} else if ok {
		user := a.session.User()
		fmt.Fprintf(a.out, "Signed in as %s (%s)\n", user.Name, user.Role)
	}

	fmt.Fprintln(a.out, "Welcome to Mindvale (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

// status renders the prompt annotation: the signed-in identity and role, or
// nothing when signed out.
func (a *App) status() string {
	user := a.session.User()
	if user == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s) ", user.Name, user.Role)
}
