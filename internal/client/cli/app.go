package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/giftkeeper/internal/client/config"
	"github.com/dmitrijs2005/giftkeeper/internal/client/db"
	"github.com/dmitrijs2005/giftkeeper/internal/client/services"
	"github.com/dmitrijs2005/giftkeeper/internal/client/store"
	"github.com/dmitrijs2005/giftkeeper/internal/logging"
	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

type App struct {
	config   *config.Config
	log      logging.Logger
	storage  *db.Storage
	services *services.Services
	store    *store.Store
	userName string

	reader      *bufio.Reader
	out         io.Writer
	interactive bool

	// ids of cards already reported as expired
	expiredMu   sync.Mutex
	seenExpired map[string]bool
}

// NewApp opens the configured storage backend and builds the services and
// the state container on top of it.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	st, err := db.Open(ctx, c.StorageDriver, c.StorageDSN, log)
	if err != nil {
		log.Error(ctx, "error opening storage", "driver", c.StorageDriver, "error", err)
		return nil, err
	}

	a := newApp(c, log, st, os.Stdin, os.Stdout, time.Now)
	a.interactive = isTerminal(int(os.Stdin.Fd()))
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, st *db.Storage, in io.Reader, out io.Writer, now services.Clock) *App {
	svc := services.New(st.Repo, log, now)
	return &App{
		config:      c,
		log:         log,
		storage:     st,
		services:    svc,
		store:       store.New(svc.GiftCards, log, store.WithClock(now)),
		reader:      bufio.NewReader(in),
		out:         out,
		seenExpired: make(map[string]bool),
	}
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.storage.Close(); err != nil {
			a.log.Error(ctx, "error closing storage", "error", err)
		}
	}()
	a.Root(ctx)
}

func (a *App) isSignedIn() bool {
	return a.userName != ""
}

// StartExpirationWatcher subscribes to the store and reports every card
// that turns expired after the call. Cards already expired are not reported.
// The returned function stops the watcher.
func (a *App) StartExpirationWatcher() func() {
	a.expiredMu.Lock()
	for _, c := range store.ExpiredCards(a.store.State()) {
		a.seenExpired[c.ID] = true
	}
	a.expiredMu.Unlock()

	return a.store.Subscribe(func(s store.State) {
		a.expiredMu.Lock()
		defer a.expiredMu.Unlock()

		for _, c := range store.ExpiredCards(s) {
			if a.seenExpired[c.ID] {
				continue
			}
			a.seenExpired[c.ID] = true
			a.printf("\nNotice: your %s gift card (%s) has expired\n", c.Brand, shortID(c.ID))
		}
	})
}
