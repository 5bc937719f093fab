package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s) ", a.userName)
}

func (a *App) prompt() string {
	if !a.interactive {
		return ""
	}
	return fmt.Sprintf("gk %s> ", a.getStatus())
}

// Root greets the user, restores or asks for the display name, loads the
// wallet and runs the REPL until the user exits. The expiration refresher
// runs for as long as Root does.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to GiftKeeper (type 'help' for commands)")

	if name, ok := a.services.Users.LoadDisplayName(ctx); ok && name != "" {
		a.userName = name
		a.printf("Welcome back, %s!\n", name)
	} else {
		_ = a.SignIn(ctx)
	}

	if err := a.store.Load(ctx); err != nil {
		a.reportFailure(ctx, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := a.StartExpirationWatcher()
	defer stop()

	go a.store.RunExpirationRefresher(ctx, a.config.ExpirationCheckInterval)

	runREPL(ctx, a, a.prompt, a.reader, a.println)
}
