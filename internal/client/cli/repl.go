package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to. The real App
// type satisfies it; tests provide a lightweight stub. args holds whatever
// followed the command word on the input line.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	List(ctx context.Context) error
	Filter(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Update(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Stats(ctx context.Context) error
	Export(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: (l)ist, filter, search <text>, show <id>, add, update <id>, delete <id>, stats, export [file], whoami, logout, exit"
)

// runREPL reads commands line by line and dispatches them to a. The first
// word is the command; the rest is passed to commands that take an argument.
// Task commands require a session. Command errors are printed and the loop
// carries on. It returns on EOF or "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("tt %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout", "whoami", "l", "list", "filter", "search", "show", "add", "update", "delete", "stats", "export":
			if !a.isLoggedIn() {
				printlnFn("Please log in first")
				continue
			}
			err = dispatchTaskCommand(ctx, a, cmd, args)

		default:
			printlnFn("Unknown command:", cmd)
			continue
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

func dispatchTaskCommand(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.Whoami(ctx)
	case "l", "list":
		return a.List(ctx)
	case "filter":
		return a.Filter(ctx)
	case "search":
		return a.Search(ctx, args)
	case "show":
		return a.Show(ctx, args)
	case "add":
		return a.Add(ctx)
	case "update":
		return a.Update(ctx, args)
	case "delete":
		return a.Delete(ctx, args)
	case "stats":
		return a.Stats(ctx)
	default:
		return a.Export(ctx, args)
	}
}
