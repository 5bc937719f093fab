package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/giftkeeper/internal/client/display"
	"github.com/dmitrijs2005/giftkeeper/internal/client/models"
	"github.com/dmitrijs2005/giftkeeper/internal/client/store"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// outMu serializes writes from the REPL and the expiration watcher.
var outMu sync.Mutex

const shortIDLen = 8

var (
	errorText   = color.New(color.FgRed).SprintFunc()
	expiredText = color.New(color.FgRed, color.Bold).SprintFunc()
	urgentText  = color.New(color.FgRed).SprintFunc()
	soonText    = color.New(color.FgYellow).SprintFunc()
	okText      = color.New(color.FgGreen).SprintFunc()
)

func (a *App) printf(format string, args ...any) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintln(a.out, args...)
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// colorize paints text by urgency. fatih/color disables itself when stdout
// is not a terminal.
func colorize(s display.Status) string {
	switch s.Level {
	case display.LevelExpired:
		return expiredText(s.Text)
	case display.LevelUrgent:
		return urgentText(s.Text)
	case display.LevelSoon:
		return soonText(s.Text)
	}
	return okText(s.Text)
}

// renderCards writes cards as a table: short id, brand, balance, status.
func renderCards(w io.Writer, cards []models.GiftCard, now time.Time) error {
	table := tablewriter.NewTable(w)
	table.Header("ID", "Brand", "Balance", "Status")
	for _, c := range cards {
		row := []string{
			shortID(c.ID),
			c.Brand,
			display.Currency(c.Amount),
			colorize(display.ExpirationStatus(c, now)),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func (a *App) printCards(ctx context.Context, cards []models.GiftCard, empty string) error {
	if len(cards) == 0 {
		a.println(empty)
		return nil
	}

	outMu.Lock()
	err := renderCards(a.out, cards, a.store.Now())
	outMu.Unlock()
	if err != nil {
		a.log.Error(ctx, "error rendering cards", "error", err)
		return err
	}
	return nil
}

func (a *App) printValidation(errs []models.ValidationError) {
	for _, e := range errs {
		a.printf("  %s: %s\n", e.Field, e.Message)
	}
}

// reportFailure prints the message of a rejected store action and dismisses
// it so the next command starts from a clean state.
func (a *App) reportFailure(ctx context.Context, err error) {
	var f *store.Failure
	if errors.As(err, &f) {
		a.println(errorText(f.Message))
		a.store.ClearError()
		return
	}
	a.log.Error(ctx, "command failed", "error", err)
	a.println(errorText("Error: ", err))
}
