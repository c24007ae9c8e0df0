package cli

import (
	"context"
	"fmt"
	"log"
)

func (a *App) getStatus() string {
	s := ""
	if a.currentUser != "" {
		s = a.currentUser + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root runs the REPL over the App's input reader.
func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to the exercise tracker CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}
