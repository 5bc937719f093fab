package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/giftkeeper/internal/client/brands"
	"github.com/dmitrijs2005/giftkeeper/internal/client/display"
	"github.com/dmitrijs2005/giftkeeper/internal/client/models"
	"github.com/dmitrijs2005/giftkeeper/internal/client/store"
	"github.com/dmitrijs2005/giftkeeper/internal/client/validation"
	"github.com/dmitrijs2005/giftkeeper/internal/common"
)

var errAmbiguousID = errors.New("ambiguous card id")

// number of brands suggested by the add form
const brandHint = 8

func (a *App) List(ctx context.Context) error {
	s := a.store.State()
	if err := a.printCards(ctx, s.Cards, "No gift cards yet. Type 'add' to create one."); err != nil {
		return err
	}
	if len(s.Cards) > 0 {
		a.printf("%d cards, %s total\n", store.CardCount(s), display.CurrencyDecimal(store.TotalValue(s)))
	}
	return nil
}

func (a *App) Search(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")
	if query == "" {
		var err error
		if query, err = GetSimpleText(a.reader, "Search brand:", a.out); err != nil {
			return err
		}
	}
	found := store.SearchCards(a.store.State(), query)
	return a.printCards(ctx, found, fmt.Sprintf("No gift cards match %q", query))
}

func (a *App) Filter(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: filter all|active|expired|expiring")
		return fmt.Errorf("filter: %w", common.ErrorValidation)
	}
	status, ok := models.ParseStatusFilter(args[0])
	if !ok {
		a.printf("Unknown status %q, expected all, active, expired or expiring\n", args[0])
		return fmt.Errorf("filter %q: %w", args[0], common.ErrorValidation)
	}
	cards := store.FilterCardsByStatus(a.store.State(), status, a.store.Now())
	return a.printCards(ctx, cards, fmt.Sprintf("No %s gift cards", status))
}

func (a *App) Sort(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: sort brand|amount|expirationDate|createdAt")
		return fmt.Errorf("sort: %w", common.ErrorValidation)
	}
	key, ok := models.ParseSortKey(args[0])
	if !ok {
		a.printf("Unknown sort key %q, expected brand, amount, expirationDate or createdAt\n", args[0])
		return fmt.Errorf("sort %q: %w", args[0], common.ErrorValidation)
	}
	a.store.SortCards(key)
	return a.List(ctx)
}

func (a *App) Show(ctx context.Context, args []string) error {
	card, err := a.resolveCard(args)
	if err != nil {
		return err
	}
	a.store.SetSelectedCard(&card)

	now := a.store.Now()
	loc := now.Location()
	g := brands.GradientFor(card.Brand)

	a.printf("%s  %s\n", card.Brand, display.Currency(card.Amount))
	a.printf("  ID:          %s\n", card.ID)
	a.printf("  Expires:     %s (%s)\n", display.LongDate(card.ExpirationDate, loc), colorize(display.ExpirationInfo(card, now)))
	a.printf("  Card expiry: %s\n", display.CardExpiry(card.ExpirationDate, loc))
	a.printf("  Colors:      %s / %s\n", g[0], g[1])
	a.printf("  Added:       %s\n", card.CreatedAt.In(loc).Format(display.ShortDateLayout))
	if !card.UpdatedAt.Equal(card.CreatedAt) {
		a.printf("  Updated:     %s\n", card.UpdatedAt.In(loc).Format(display.ShortDateLayout))
	}
	return nil
}

func (a *App) Add(ctx context.Context) error {
	a.printf("Popular brands: %s\n", strings.Join(brands.Popular(brandHint), ", "))

	form, err := a.readForm(nil)
	if err != nil {
		a.log.Error(ctx, "error reading gift card form", "error", err)
		return err
	}
	if !a.checkForm(form) {
		return fmt.Errorf("gift card form: %w", common.ErrorValidation)
	}

	card, err := a.store.AddCard(ctx, form)
	if err != nil {
		a.reportFailure(ctx, err)
		return err
	}
	a.printf("Added %s gift card %s (%s)\n", card.Brand, shortID(card.ID), display.Currency(card.Amount))
	return nil
}

// Edit prompts for every field; an empty answer keeps the current value.
func (a *App) Edit(ctx context.Context, args []string) error {
	card, err := a.resolveCard(args)
	if err != nil {
		return err
	}

	form, err := a.readForm(&card)
	if err != nil {
		a.log.Error(ctx, "error reading gift card form", "error", err)
		return err
	}
	if !a.checkForm(form) {
		return fmt.Errorf("gift card form: %w", common.ErrorValidation)
	}

	updated, err := a.store.UpdateCard(ctx, card.ID, form)
	if err != nil {
		a.reportFailure(ctx, err)
		return err
	}
	a.printf("Updated %s gift card %s\n", updated.Brand, shortID(updated.ID))
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	card, err := a.resolveCard(args)
	if err != nil {
		return err
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %s gift card %s?", card.Brand, shortID(card.ID)), a.out)
	if err != nil || !ok {
		a.println("Cancelled")
		return err
	}

	if err := a.store.DeleteCard(ctx, card.ID); err != nil {
		a.reportFailure(ctx, err)
		return err
	}
	a.println("Deleted")
	return nil
}

// Clear removes every gift card. With "all" it also wipes the rest of the
// stored data, including the display name.
func (a *App) Clear(ctx context.Context, args []string) error {
	all := len(args) > 0 && args[0] == "all"

	prompt := "Delete all gift cards?"
	if all {
		prompt = "Delete all gift cards and your profile?"
	}
	ok, err := Confirm(a.reader, prompt, a.out)
	if err != nil || !ok {
		a.println("Cancelled")
		return err
	}

	if err := a.store.ClearAllCards(ctx); err != nil {
		a.reportFailure(ctx, err)
		return err
	}
	if !all {
		a.println("All gift cards deleted")
		return nil
	}

	if err := a.services.Storage.ClearAllData(ctx); err != nil {
		a.reportFailure(ctx, err)
		return err
	}
	a.userName = ""
	a.println("All data deleted. Type 'signin' to start again.")
	return nil
}

// Refresh reloads the wallet from storage.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.store.Load(ctx); err != nil {
		a.reportFailure(ctx, err)
		return err
	}
	a.printf("Loaded %d gift cards\n", store.CardCount(a.store.State()))
	return nil
}

// resolveCard finds a cached card by exact id or unique id prefix, asking
// for the id when args is empty.
func (a *App) resolveCard(args []string) (models.GiftCard, error) {
	var ref string
	if len(args) > 0 {
		ref = args[0]
	} else {
		var err error
		if ref, err = GetSimpleText(a.reader, "Card ID:", a.out); err != nil {
			return models.GiftCard{}, err
		}
	}

	s := a.store.State()
	if c, ok := store.CardByID(s, ref); ok {
		return c, nil
	}

	var matches []models.GiftCard
	if ref != "" {
		for _, c := range s.Cards {
			if strings.HasPrefix(c.ID, ref) {
				matches = append(matches, c)
			}
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		a.println(store.MsgNotFound)
		return models.GiftCard{}, fmt.Errorf("gift card %q: %w", ref, common.ErrorNotFound)
	}
	a.printf("%q matches %d gift cards, use a longer id\n", ref, len(matches))
	return models.GiftCard{}, errAmbiguousID
}

// readForm asks for brand, amount and expiration date. With a current card
// its values are offered as defaults.
func (a *App) readForm(current *models.GiftCard) (models.GiftCardFormData, error) {
	ask := func(prompt, def string) (string, error) {
		if current == nil {
			return GetSimpleText(a.reader, prompt, a.out)
		}
		return GetTextWithDefault(a.reader, prompt, def, a.out)
	}

	var cur models.GiftCard
	if current != nil {
		cur = *current
	}

	brand, err := ask("Brand:", cur.Brand)
	if err != nil {
		return models.GiftCardFormData{}, err
	}
	amount, err := ask("Balance:", strconv.FormatFloat(cur.Amount, 'f', -1, 64))
	if err != nil {
		return models.GiftCardFormData{}, err
	}
	date, err := ask("Expiration date (YYYY-MM-DD):", cur.ExpirationDate)
	if err != nil {
		return models.GiftCardFormData{}, err
	}

	return models.GiftCardFormData{
		Brand:          normalizeBrand(brand),
		Amount:         validation.FormatCurrencyInput(amount),
		ExpirationDate: strings.TrimSpace(date),
	}, nil
}

// normalizeBrand prefers the catalog spelling of a known brand.
func normalizeBrand(s string) string {
	s = validation.SanitizeInput(s)
	if b, ok := brands.Lookup(s); ok {
		return b.Name
	}
	return validation.FormatBrandName(s)
}

func (a *App) checkForm(form models.GiftCardFormData) bool {
	res := validation.ValidateGiftCardForm(form, a.store.Now())
	if !res.IsValid {
		a.println("Please fix the following:")
		a.printValidation(res.Errors)
	}
	return res.IsValid
}
