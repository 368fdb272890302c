package cli

import (
	"bufio"
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.mode != "" {
		s = s + string(a.mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// restoreSession picks up a session stored by a previous run.
func (a *App) restoreSession(ctx context.Context) {
	if !a.isLoggedIn(ctx) {
		return
	}
	user, err := a.authService.CurrentUser(ctx)
	if err != nil {
		a.log.Warn(ctx, "reading cached user failed", "error", err)
		return
	}
	if label := userLabel(user); label != "" {
		a.setUserName(label)
		fmt.Fprintf(a.out, "Welcome back, %s\n", label)
	}
}

// Root prints the banner, restores any stored session, starts the online
// status watcher and runs the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to EduCloud CLI (type 'help' for commands)")

	a.restoreSession(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}
