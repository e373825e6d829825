package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/storykeeper/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Stories(ctx context.Context, args []string) error
	Show(ctx context.Context, id string) error
	Submit(ctx context.Context) error
	Save(ctx context.Context, id string) error
	Unsave(ctx context.Context, id string) error
	Bookmarks(ctx context.Context) error
	Drafts(ctx context.Context) error
	Drop(ctx context.Context, id string) error
	Sync(ctx context.Context) error
}

const (
	helpGuest  = "Available commands: register, login, status, stories, show <id>, submit, save <id>, unsave <id>, bookmarks, drafts, drop <id>, sync, exit"
	helpMember = "Available commands: logout, status, stories, show <id>, submit, save <id>, unsave <id>, bookmarks, drafts, drop <id>, sync, exit"
)

// runREPL starts a simple read-eval-print loop for the story CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. The loop exits on EOF, when ctx is done or
// when the user types "exit" or "quit".
//
// Commands that need an id print their usage instead of running when the id
// is missing. Errors returned by handlers are printed with their user-facing
// message and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("stories %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("Error:", common.MessageOf(err))
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	withID := func(usage string, fn func(context.Context, string) error) error {
		if len(args) == 0 {
			printlnFn("Usage:", usage)
			return nil
		}
		return fn(ctx, args[0])
	}

	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpMember)
		} else {
			printlnFn(helpGuest)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "status":
		return a.Status(ctx)
	case "l", "list", "stories":
		return a.Stories(ctx, args)
	case "show":
		return withID("show <id>", a.Show)
	case "submit":
		return a.Submit(ctx)
	case "save":
		return withID("save <id>", a.Save)
	case "unsave":
		return withID("unsave <id>", a.Unsave)
	case "bookmarks":
		return a.Bookmarks(ctx)
	case "drafts":
		return a.Drafts(ctx)
	case "drop":
		return withID("drop <draft id>", a.Drop)
	case "sync":
		return a.Sync(ctx)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}
