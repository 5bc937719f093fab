package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isSignedIn() bool
	SignIn(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error
	Sort(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Clear(ctx context.Context, args []string) error
	Stats(ctx context.Context) error
	Info(ctx context.Context) error
	Refresh(ctx context.Context) error
	Brands(ctx context.Context, args []string) error
}

const (
	helpSignedOut = "Available commands: signin, brands, help, exit"
	helpSignedIn  = "Available commands: (l)ist, search, filter, sort, show, add, edit, delete, clear, stats, info, refresh, brands, whoami, signin, exit"
)

// runREPL starts a simple read–eval–print loop for the GiftKeeper client.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a' with the remaining tokens as arguments.
// Unknown commands are reported back to the user. The loop exits on EOF or
// when the user types "exit" or "quit".
//
// Prompt & Commands
//
// All output goes through printLine, which the App routes to its writer under
// the same lock as command output. promptFn returns the prompt to print
// before every line; an empty prompt is not printed (non-interactive input). Until a display name is set only
// help, signin, brands and exit are accepted:
//
//	  - help                    show available commands
//	  - signin                  set the display name
//	  - whoami                  print the display name
//	  - list | l                list gift cards
//	  - search <text>           cards whose brand contains text
//	  - filter <status>         all | active | expired | expiring
//	  - sort <key>              brand | amount | expirationDate | createdAt
//	  - show <id>               card details (id prefix accepted)
//	  - add                     add a card (interactive)
//	  - edit <id>               edit a card (interactive)
//	  - delete <id>             delete a card
//	  - clear [all]             delete every card; "all" wipes all data
//	  - stats                   wallet totals
//	  - info                    storage usage
//	  - refresh                 reload cards from storage
//	  - brands [text]           popular brands or catalog search
//	  - exit | quit             leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log and report their own errors. This keeps the REPL loop resilient.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader, printLine func(args ...any)) {
	for {
		if p := promptFn(); p != "" {
			printLine(p)
		}
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isSignedIn() {
				printLine(helpSignedIn)
			} else {
				printLine(helpSignedOut)
			}
			continue

		case "signin":
			_ = a.SignIn(ctx)
			continue

		case "brands":
			_ = a.Brands(ctx, args)
			continue

		case "exit", "quit":
			printLine("Bye!")
			return
		}

		if !a.isSignedIn() {
			printLine("Please sign in first (type 'signin')")
			continue
		}

		switch cmd {
		case "whoami":
			_ = a.WhoAmI(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "search":
			_ = a.Search(ctx, args)

		case "filter":
			_ = a.Filter(ctx, args)

		case "sort":
			_ = a.Sort(ctx, args)

		case "show":
			_ = a.Show(ctx, args)

		case "add":
			_ = a.Add(ctx)

		case "edit":
			_ = a.Edit(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "clear":
			_ = a.Clear(ctx, args)

		case "stats":
			_ = a.Stats(ctx)

		case "info":
			_ = a.Info(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		default:
			printLine("Unknown command:", cmd)
		}
	}
}
