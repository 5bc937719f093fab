package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/giftkeeper/internal/client/brands"
	"github.com/dmitrijs2005/giftkeeper/internal/client/display"
	"github.com/dmitrijs2005/giftkeeper/internal/client/store"
	"github.com/olekukonko/tablewriter"
)

func (a *App) Stats(ctx context.Context) error {
	s := a.store.State()
	now := a.store.Now()

	a.printf("Cards:       %d (%d active, %d expired)\n", store.CardCount(s), store.ActiveCount(s), store.ExpiredCount(s))
	a.printf("Total value: %s\n", display.CurrencyDecimal(store.TotalValue(s)))

	expiring := store.ExpiringCards(s, now)
	if len(expiring) == 0 {
		return nil
	}
	a.printf("Expiring within %d days:\n", store.ExpiringWithinDays)
	return a.printCards(ctx, expiring, "")
}

func (a *App) Info(ctx context.Context) error {
	info := a.services.Storage.StorageInfo(ctx)

	keys := "(none)"
	if len(info.Keys) > 0 {
		keys = strings.Join(info.Keys, ", ")
	}
	a.printf("Backend: %s\n", a.storage.Driver)
	a.printf("Keys:    %s\n", keys)
	a.printf("Size:    %s\n", display.Bytes(info.Size))
	return nil
}

// Brands lists the catalog: popular brands first, or the brands whose name
// contains the query.
func (a *App) Brands(ctx context.Context, args []string) error {
	var list []brands.Brand
	if query := strings.Join(args, " "); query != "" {
		list = brands.Search(query)
	} else {
		for _, name := range brands.Popular(0) {
			if b, ok := brands.Lookup(name); ok {
				list = append(list, b)
			}
		}
	}

	if len(list) == 0 {
		a.println("No matching brands")
		return nil
	}

	outMu.Lock()
	defer outMu.Unlock()

	table := tablewriter.NewTable(a.out)
	table.Header("Brand", "Category", "Colors")
	for _, b := range list {
		row := []string{b.Name, string(b.Category), fmt.Sprintf("%s / %s", b.Gradient[0], b.Gradient[1])}
		if err := table.Append(row); err != nil {
			a.log.Error(ctx, "error rendering brands", "error", err)
			return err
		}
	}
	if err := table.Render(); err != nil {
		a.log.Error(ctx, "error rendering brands", "error", err)
		return err
	}
	return nil
}
