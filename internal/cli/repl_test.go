package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmansemir/mindvale-cli/internal/api"
	"github.com/osmansemir/mindvale-cli/internal/models"
	"github.com/osmansemir/mindvale-cli/internal/validator"
)

// fakeExec records which command methods the REPL dispatched to.
type fakeExec struct {
	authed bool
	role   models.Role
	calls  []string
	err    error
}

func (f *fakeExec) called(name string) error {
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeExec) IsAuthenticated() bool { return f.authed }
func (f *fakeExec) Role() models.Role     { return f.role }

func (f *fakeExec) Register(context.Context) error { return f.called("register") }
func (f *fakeExec) Login(context.Context) error    { return f.called("login") }
func (f *fakeExec) Logout(context.Context) error   { return f.called("logout") }
func (f *fakeExec) Whoami(context.Context) error   { return f.called("whoami") }
func (f *fakeExec) Upgrade(context.Context) error  { return f.called("upgrade") }

func (f *fakeExec) List(context.Context) error                   { return f.called("list") }
func (f *fakeExec) Search(_ context.Context, a []string) error   { return f.called("search " + strings.Join(a, " ")) }
func (f *fakeExec) Tag(_ context.Context, a []string) error      { return f.called("tag " + strings.Join(a, " ")) }
func (f *fakeExec) Sort(_ context.Context, a []string) error     { return f.called("sort " + strings.Join(a, " ")) }
func (f *fakeExec) Page(_ context.Context, a []string) error     { return f.called("page " + strings.Join(a, " ")) }
func (f *fakeExec) NextPage(context.Context) error               { return f.called("next") }
func (f *fakeExec) PrevPage(context.Context) error               { return f.called("prev") }
func (f *fakeExec) Featured(_ context.Context, a []string) error { return f.called("featured") }
func (f *fakeExec) AuthorFilter(_ context.Context, a []string) error {
	return f.called("author")
}
func (f *fakeExec) Dates(_ context.Context, a []string) error        { return f.called("dates") }
func (f *fakeExec) StatusFilter(_ context.Context, a []string) error { return f.called("status") }
func (f *fakeExec) ResetFilters(context.Context) error               { return f.called("reset") }
func (f *fakeExec) Read(_ context.Context, a []string) error         { return f.called("read " + strings.Join(a, " ")) }
func (f *fakeExec) Related(_ context.Context, a []string) error      { return f.called("related") }
func (f *fakeExec) TagCatalog(context.Context) error                 { return f.called("tags") }

func (f *fakeExec) New(context.Context) error                  { return f.called("new") }
func (f *fakeExec) Edit(_ context.Context, a []string) error   { return f.called("edit") }
func (f *fakeExec) Delete(_ context.Context, a []string) error { return f.called("delete") }
func (f *fakeExec) Mine(_ context.Context, a []string) error   { return f.called("mine") }
func (f *fakeExec) Submit(_ context.Context, a []string) error { return f.called("submit") }

func (f *fakeExec) Pending(context.Context) error                  { return f.called("pending") }
func (f *fakeExec) Approve(_ context.Context, a []string) error    { return f.called("approve") }
func (f *fakeExec) Reject(_ context.Context, a []string) error     { return f.called("reject") }
func (f *fakeExec) Users(context.Context) error                    { return f.called("users") }
func (f *fakeExec) User(_ context.Context, a []string) error       { return f.called("user") }
func (f *fakeExec) Promote(_ context.Context, a []string) error    { return f.called("promote") }
func (f *fakeExec) RemoveUser(_ context.Context, a []string) error { return f.called("rmuser") }

// runScript feeds the given lines to the REPL and captures its output.
func runScript(t *testing.T, exec *fakeExec, lines ...string) []string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out = append(out, strings.TrimRight(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	defer func() { printlnFn = orig }()

	input := strings.Join(lines, "\n") + "\n"
	scanner := bufio.NewScanner(strings.NewReader(input))
	runREPL(context.Background(), exec, func() string { return "guest" }, scanner)
	return out
}

func TestREPLDispatch(t *testing.T) {
	exec := &fakeExec{authed: true, role: models.RoleAdmin}
	runScript(t, exec,
		"list",
		"l",
		"search go concurrency",
		"read my-slug",
		"next",
		"pending",
		"exit",
	)

	assert.Equal(t, []string{
		"list",
		"list",
		"search go concurrency",
		"read my-slug",
		"next",
		"pending",
	}, exec.calls)
}

func TestREPLGuardBlocksAdminCommandForReader(t *testing.T) {
	exec := &fakeExec{authed: true, role: models.RoleUser}
	out := runScript(t, exec, "pending", "new", "exit")

	assert.Empty(t, exec.calls, "guarded commands must not reach their handlers")
	assert.Contains(t, out, noticeAccessDenied)
}

func TestREPLGuardRequiresSignIn(t *testing.T) {
	exec := &fakeExec{authed: false}
	out := runScript(t, exec, "whoami", "exit")

	assert.Empty(t, exec.calls)
	assert.Contains(t, out, noticeSignIn)
}

func TestREPLUnknownCommand(t *testing.T) {
	exec := &fakeExec{authed: false}
	out := runScript(t, exec, "frobnicate", "exit")

	assert.Empty(t, exec.calls)
	require.NotEmpty(t, out)
	assert.Contains(t, strings.Join(out, "\n"), "Unknown command: frobnicate")
}

func TestREPLBlankLinesIgnored(t *testing.T) {
	exec := &fakeExec{authed: false}
	runScript(t, exec, "", "   ", "list", "quit")
	assert.Equal(t, []string{"list"}, exec.calls)
}

func TestREPLRendersHandlerErrors(t *testing.T) {
	exec := &fakeExec{authed: true, role: models.RoleUser, err: &api.Error{Status: 404, Message: "Article not found"}}
	out := runScript(t, exec, "read nope", "exit")

	assert.Contains(t, out, "Article not found")
}

func TestHelpIsRoleConditional(t *testing.T) {
	cases := []struct {
		name       string
		authed     bool
		role       models.Role
		wantAuthor bool
		wantAdmin  bool
	}{
		{"guest", false, "", false, false},
		{"reader", true, models.RoleUser, false, false},
		{"author", true, models.RoleAuthor, true, false},
		{"admin", true, models.RoleAdmin, true, true},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExec{authed: tt.authed, role: tt.role}
			out := strings.Join(runScript(t, exec, "help", "exit"), "\n")

			assert.Contains(t, out, "Browse:")
			assert.Equal(t, tt.wantAuthor, strings.Contains(out, "Author:"))
			assert.Equal(t, tt.wantAdmin, strings.Contains(out, "Admin:"))
			if tt.authed {
				assert.Contains(t, out, "logout")
			} else {
				assert.Contains(t, out, "register")
			}
		})
	}
}

func TestRenderError(t *testing.T) {
	fieldErr := &validator.FieldError{Field: "title", Message: "must be at least 3 characters"}
	assert.Equal(t, "Invalid title: must be at least 3 characters", renderError(fieldErr))

	apiErr := &api.Error{Status: 403, Message: "Access denied. You don't have permission to perform this action."}
	assert.Equal(t, apiErr.Message, renderError(apiErr))

	plain := errors.New("something odd")
	assert.Equal(t, "something odd", renderError(plain))
}
