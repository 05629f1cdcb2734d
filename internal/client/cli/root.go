package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
)

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root runs the REPL on stdin until the user exits or ctx is done.
func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to tasktracker CLI (type 'help' for commands)")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}
