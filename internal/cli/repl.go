package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/osmansemir/mindvale-cli/internal/api"
	"github.com/osmansemir/mindvale-cli/internal/models"
	"github.com/osmansemir/mindvale-cli/internal/validator"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate. The real
// App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	IsAuthenticated() bool
	Role() models.Role

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Upgrade(ctx context.Context) error

	List(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Tag(ctx context.Context, args []string) error
	Sort(ctx context.Context, args []string) error
	Page(ctx context.Context, args []string) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	Featured(ctx context.Context, args []string) error
	AuthorFilter(ctx context.Context, args []string) error
	Dates(ctx context.Context, args []string) error
	StatusFilter(ctx context.Context, args []string) error
	ResetFilters(ctx context.Context) error
	Read(ctx context.Context, args []string) error
	Related(ctx context.Context, args []string) error
	TagCatalog(ctx context.Context) error

	New(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Mine(ctx context.Context, args []string) error
	Submit(ctx context.Context, args []string) error

	Pending(ctx context.Context) error
	Approve(ctx context.Context, args []string) error
	Reject(ctx context.Context, args []string) error
	Users(ctx context.Context) error
	User(ctx context.Context, args []string) error
	Promote(ctx context.Context, args []string) error
	RemoveUser(ctx context.Context, args []string) error
}

// runREPL is the read–eval–print loop of the Mindvale CLI.
//
// It reads a line from the scanner, parses the first token as the command,
// gates it through canRun (the dispatch-level role guard), and dispatches to
// methods on 'a'. Unknown commands are reported back to the user. The loop
// exits on scanner EOF or when the user types "exit" or "quit".
//
// Handler errors are rendered here in one place so every command surfaces
// failures the same way; handler state is left to the stores.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("mindvale %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if cmd == "help" {
			printHelp(a.IsAuthenticated(), a.Role())
			continue
		}

		if ok, notice := canRun(cmd, a.IsAuthenticated(), a.Role()); !ok {
			printlnFn(notice)
			continue
		}

		var err error
		switch cmd {
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.Whoami(ctx)
		case "upgrade":
			err = a.Upgrade(ctx)

		case "l", "list":
			err = a.List(ctx)
		case "search":
			err = a.Search(ctx, args)
		case "tag":
			err = a.Tag(ctx, args)
		case "sort":
			err = a.Sort(ctx, args)
		case "page":
			err = a.Page(ctx, args)
		case "next":
			err = a.NextPage(ctx)
		case "prev":
			err = a.PrevPage(ctx)
		case "featured":
			err = a.Featured(ctx, args)
		case "author":
			err = a.AuthorFilter(ctx, args)
		case "dates":
			err = a.Dates(ctx, args)
		case "status":
			err = a.StatusFilter(ctx, args)
		case "reset":
			err = a.ResetFilters(ctx)
		case "read":
			err = a.Read(ctx, args)
		case "related":
			err = a.Related(ctx, args)
		case "tags":
			err = a.TagCatalog(ctx)

		case "new":
			err = a.New(ctx)
		case "edit":
			err = a.Edit(ctx, args)
		case "delete":
			err = a.Delete(ctx, args)
		case "mine":
			err = a.Mine(ctx, args)
		case "submit":
			err = a.Submit(ctx, args)

		case "pending":
			err = a.Pending(ctx)
		case "approve":
			err = a.Approve(ctx, args)
		case "reject":
			err = a.Reject(ctx, args)
		case "users":
			err = a.Users(ctx)
		case "user":
			err = a.User(ctx, args)
		case "promote":
			err = a.Promote(ctx, args)
		case "rmuser":
			err = a.RemoveUser(ctx, args)

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn(renderError(err))
		}
	}
}

// printHelp renders the menu with only the sections the current identity may
// use: the inline counterpart of the dispatch guard.
func printHelp(authed bool, role models.Role) {
	printlnFn("Browse: (l)ist, search <text>, tag <tag|clear>, sort <newest|oldest|title-az|title-za>,")
	printlnFn("        page <n>, next, prev, featured <on|off>, author <name|clear>,")
	printlnFn("        dates <start> [end]|clear, status <status|clear>, reset, read <slug>,")
	printlnFn("        related <slug>, tags")
	if !authed {
		printlnFn("Account: register, login")
	} else {
		printlnFn("Account: whoami, logout, upgrade")
	}
	if authed && role.CanWrite() {
		printlnFn("Author: new, edit <id>, delete <id>, mine [status], submit <id>")
	}
	if authed && role.CanReview() {
		printlnFn("Admin: pending, approve <id>, reject <id>, users, user <id>, promote <id> <role>, rmuser <id>")
	}
	printlnFn("Other: help, exit")
}

// renderError converts any failure into the single line shown to the user.
// API errors already carry user-facing text; validation errors name the
// field; anything else gets a generic notice.
func renderError(err error) string {
	var fieldErr *validator.FieldError
	if errors.As(err, &fieldErr) {
		return "Invalid " + fieldErr.Field + ": " + fieldErr.Message
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
