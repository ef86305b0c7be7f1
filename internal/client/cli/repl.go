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
	List(ctx context.Context) error
	Create(ctx context.Context) error
	Toggle(ctx context.Context) error
	Delete(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the task CLI.
//
// It reads a line from the scanner, parses the first token as the command,
// and dispatches to methods on 'a'. Commands are gated by the login state:
// while anonymous only register/login are reachable, and once logged in the
// auth commands are gone (there is no logout). Unknown commands are reported
// back to the user. The loop exits on scanner EOF or on "exit"/"quit".
//
// Any errors returned by command handlers are ignored here; handlers surface
// their own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("task %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, create, toggle, delete, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			if a.isLoggedIn() {
				printlnFn("Already logged in")
				continue
			}
			_ = a.Register(ctx)

		case "login":
			if a.isLoggedIn() {
				printlnFn("Already logged in")
				continue
			}
			_ = a.Login(ctx)

		case "l", "list":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			_ = a.List(ctx)

		case "create":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			_ = a.Create(ctx)

		case "toggle":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			_ = a.Toggle(ctx)

		case "delete":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			_ = a.Delete(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
