package cli

import "github.com/osmansemir/mindvale-cli/internal/models"

// access is the rendering gate for a command: who gets to see and run it.
// This mirrors the two mechanisms a web client would use, route guards
// (checked at dispatch, before a handler runs) and role-conditional menus
// (the help text renders only the sections the role may use). Neither is a
// security boundary; the server re-checks everything.
type access int

const (
	// accessPublic commands run for everyone, signed in or not.
	accessPublic access = iota
	// accessSignedOut commands only make sense before signing in.
	accessSignedOut
	// accessAuthed commands need any signed-in identity.
	accessAuthed
	// accessWriter commands need the author or admin role.
	accessWriter
	// accessAdmin commands need the admin role.
	accessAdmin
)

// commandAccess is the gate for every REPL command. Commands absent from
// the map are public.
var commandAccess = map[string]access{
	"register": accessSignedOut,
	"login":    accessSignedOut,

	"logout":  accessAuthed,
	"whoami":  accessAuthed,
	"upgrade": accessAuthed,

	"new":    accessWriter,
	"edit":   accessWriter,
	"delete": accessWriter,
	"mine":   accessWriter,
	"submit": accessWriter,

	"pending": accessAdmin,
	"approve": accessAdmin,
	"reject":  accessAdmin,
	"users":   accessAdmin,
	"user":    accessAdmin,
	"promote": accessAdmin,
	"rmuser":  accessAdmin,
}

const (
	noticeSignIn       = "Please sign in first."
	noticeSignedIn     = "You are already signed in."
	noticeAccessDenied = "Access denied. You don't have permission to use this command."
)

// canRun decides whether a command may run for the given session state and
// returns the notice to show when it may not. It runs before any command
// logic, like a route guard running before a page mounts.
func canRun(cmd string, authed bool, role models.Role) (bool, string) {
	switch commandAccess[cmd] {
	case accessSignedOut:
		if authed {
			return false, noticeSignedIn
		}
	case accessAuthed:
		if !authed {
			return false, noticeSignIn
		}
	case accessWriter:
		if !authed {
			return false, noticeSignIn
		}
		if !role.CanWrite() {
			return false, noticeAccessDenied
		}
	case accessAdmin:
		if !authed {
			return false, noticeSignIn
		}
		if !role.CanReview() {
			return false, noticeAccessDenied
		}
	}
	return true, ""
}
