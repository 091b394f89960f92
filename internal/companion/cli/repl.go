package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
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
	Recover(ctx context.Context) error
	Whoami(ctx context.Context) error
	LogSession(ctx context.Context) error
	ListSessions(ctx context.Context) error
	Stats(ctx context.Context) error
	ShowPrimer(ctx context.Context) error
	EditPrimer(ctx context.Context) error
	EditSettings(ctx context.Context) error
	ExportData(ctx context.Context, path string) error
	ImportData(ctx context.Context, path string) error
}

// runREPL starts a simple read-eval-print loop for the companion CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help           — show available commands
//	  - log            — log a practice session
//	  - sessions       — list logged sessions
//	  - stats          — show session count and days practicing
//	  - primer         — show the primer as text
//	  - edit           — edit the primer
//	  - settings       — edit display settings
//	  - export <file>  — write all local data to a JSON file
//	  - import <file>  — restore local data from a JSON file
//	  - exit | quit    — leave the program
//
//	Not logged in:
//	  - register       — create an account
//	  - login          — authenticate
//	  - recover        — request a password reset email
//
//	Logged in:
//	  - whoami         — show the signed-in account
//	  - logout         — sign out and clear local data
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("companion> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: log, (s)essions, stats, primer, edit, settings, export, import, whoami, logout, exit")
			} else {
				printlnFn("Available commands: log, (s)essions, stats, primer, edit, settings, export, import, register, login, recover, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "recover":
			_ = a.Recover(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "log":
			_ = a.LogSession(ctx)

		case "s", "sessions":
			_ = a.ListSessions(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "primer":
			_ = a.ShowPrimer(ctx)

		case "edit":
			_ = a.EditPrimer(ctx)

		case "settings":
			_ = a.EditSettings(ctx)

		case "export":
			if len(args) == 0 {
				printlnFn("Usage: export <file>")
				continue
			}
			_ = a.ExportData(ctx, args[0])

		case "import":
			if len(args) == 0 {
				printlnFn("Usage: import <file>")
				continue
			}
			_ = a.ImportData(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
