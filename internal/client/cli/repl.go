package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// printFn writes the prompt without a trailing newline.
var printFn = fmt.Print

// execIface is the command surface the REPL drives. *App implements it; tests
// use a recording stub.
type execIface interface {
	Help(ctx context.Context) error
	Navigate(ctx context.Context, path string) error
	Back(ctx context.Context) error
	Reload(ctx context.Context) error
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Filter(ctx context.Context, args []string) error
	Search(ctx context.Context, query string) error
	Edit(ctx context.Context) error
	Delete(ctx context.Context) error
	PDF(ctx context.Context) error
	// refresh renders whatever the command navigated to.
	refresh(ctx context.Context)
}

// shortcuts map single-word commands onto paths.
var shortcuts = map[string]string{
	"home":         "/",
	"cookbooks":    "/cookbooks",
	"profile":      "/profile",
	"new-recipe":   "/create-recipe",
	"new-cookbook": "/create-cookbook",
}

// runREPL reads one command per line from reader and dispatches it to a.
// Command errors are printed and the loop goes on. It returns on "exit" or
// "quit", at end of input, or when ctx is cancelled.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printFn(promptFn())
		line, err := readLine(reader)
		if err != nil {
			printlnFn()
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help", "?":
			cmdErr = a.Help(ctx)

		case "go", "open":
			if len(args) == 0 {
				printlnFn("Usage: go <path>")
				continue
			}
			cmdErr = a.Navigate(ctx, args[0])

		case "home", "cookbooks", "profile", "new-recipe", "new-cookbook":
			cmdErr = a.Navigate(ctx, shortcuts[cmd])

		case "back":
			cmdErr = a.Back(ctx)

		case "reload", "r":
			cmdErr = a.Reload(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "register":
			cmdErr = a.Register(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "filter":
			cmdErr = a.Filter(ctx, args)

		case "search":
			cmdErr = a.Search(ctx, strings.Join(args, " "))

		case "edit":
			cmdErr = a.Edit(ctx)

		case "delete":
			cmdErr = a.Delete(ctx)

		case "pdf":
			cmdErr = a.PDF(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
			continue
		}

		if cmdErr != nil {
			printlnFn(errorStyle.Render("Error: " + describeError(cmdErr)))
		}
		a.refresh(ctx)
	}
}
