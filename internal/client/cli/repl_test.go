package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/stretchr/testify/require"
)

// capturePrintln replaces printlnFn and returns everything printed.
func capturePrintln(t *testing.T) *strings.Builder {
	t.Helper()
	var sb strings.Builder
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(&sb, a...) }
	t.Cleanup(func() { printlnFn = orig })
	return &sb
}

type fakeExec struct {
	logged bool
	calls  []string
	err    error
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool                { return f.logged }
func (f *fakeExec) Register(context.Context) error  { return f.record("register") }
func (f *fakeExec) Login(context.Context) error     { f.logged = true; return f.record("login") }
func (f *fakeExec) Logout(context.Context) error    { f.logged = false; return f.record("logout") }
func (f *fakeExec) Status(context.Context) error    { return f.record("status") }
func (f *fakeExec) Submit(context.Context) error    { return f.record("submit") }
func (f *fakeExec) Bookmarks(context.Context) error { return f.record("bookmarks") }
func (f *fakeExec) Drafts(context.Context) error    { return f.record("drafts") }
func (f *fakeExec) Sync(context.Context) error      { return f.record("sync") }
func (f *fakeExec) Show(_ context.Context, id string) error {
	return f.record("show " + id)
}
func (f *fakeExec) Save(_ context.Context, id string) error {
	return f.record("save " + id)
}
func (f *fakeExec) Unsave(_ context.Context, id string) error {
	return f.record("unsave " + id)
}
func (f *fakeExec) Drop(_ context.Context, id string) error {
	return f.record("drop " + id)
}
func (f *fakeExec) Stories(_ context.Context, args []string) error {
	return f.record(strings.TrimSpace("stories " + strings.Join(args, " ")))
}

func TestRunREPL_HelpThenQuit(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, rdr("help\nquit\nlogin\n"))

	require.Empty(t, exec.calls)
	require.Contains(t, out.String(), "stories status> ")
	require.Contains(t, out.String(), helpGuest)
	require.Contains(t, out.String(), "Bye!")
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{logged: true}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("help\n"))

	require.Contains(t, out.String(), helpMember)
	require.NotContains(t, out.String(), helpGuest)
}

func TestRunREPL_Dispatch(t *testing.T) {
	capturePrintln(t)

	input := strings.Join([]string{
		"register", "login", "status", "stories", "list 2 5", "show abc", "submit",
		"save abc", "unsave abc", "bookmarks", "drafts", "drop d1", "sync", "logout", "",
	}, "\n")
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr(input))

	require.Equal(t, []string{
		"register", "login", "status", "stories", "stories 2 5", "show abc", "submit",
		"save abc", "unsave abc", "bookmarks", "drafts", "drop d1", "sync", "logout",
	}, exec.calls)
}

func TestRunREPL_MissingIDPrintsUsage(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("show\nsave\nunsave\ndrop\n"))

	require.Empty(t, exec.calls)
	for _, usage := range []string{"show <id>", "save <id>", "unsave <id>", "drop <draft id>"} {
		require.Contains(t, out.String(), "Usage: "+usage)
	}
}

func TestRunREPL_ErrorsArePrintedAndLoopContinues(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{err: common.NewError(common.KindNetworkUnavailable, "you are offline", errors.New("dial"))}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("sync\nbookmarks\n"))

	require.Equal(t, []string{"sync", "bookmarks"}, exec.calls)
	require.Equal(t, 2, strings.Count(out.String(), "Error: you are offline"))
}

func TestRunREPL_UnknownCommand(t *testing.T) {
	out := capturePrintln(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, rdr("frobnicate\n"))
	require.Contains(t, out.String(), "Unknown command: frobnicate")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("drafts"))
	require.Equal(t, []string{"drafts"}, exec.calls)
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	capturePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, rdr("sync\n"))
	require.Empty(t, exec.calls)
}
