package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	CreateUser(ctx context.Context) error
	ListUsers(ctx context.Context) error
	Use(ctx context.Context, id string) error
	AddExercise(ctx context.Context) error
	ShowLog(ctx context.Context) error
	Health(ctx context.Context) error
}

const helpText = "Available commands: adduser, (l)ist, use <id>, add, log, health, exit"

// runREPL reads one command per line and dispatches it to a. Commands that
// prompt for more input read from the same reader, so it must not be wrapped
// in a separate buffer. Errors returned
// by commands are ignored here; commands print their own messages. The loop
// exits on EOF or when the user types "exit" or "quit".
//
//	help          show available commands
//	adduser       create a user
//	l | list      list users
//	use <id>      set the default user id
//	add           add an exercise
//	log           show a user's log with optional from/to/limit
//	health        check the server
//	exit | quit   leave the program
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("et %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "adduser":
			_ = a.CreateUser(ctx)

		case "l", "list", "users":
			_ = a.ListUsers(ctx)

		case "use":
			if len(args) == 0 {
				printlnFn("Usage: use <id>")
				continue
			}
			_ = a.Use(ctx, args[0])

		case "add":
			_ = a.AddExercise(ctx)

		case "log":
			_ = a.ShowLog(ctx)

		case "health":
			_ = a.Health(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
