package store

import (
	"cmp"
	"slices"
	"time"

	"github.com/dmitrijs2005/giftkeeper/internal/client/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Reduce returns the state that results from applying a to s. It never
// modifies s.
func Reduce(s State, a Action) State {
	next := s.clone()

	switch a.Phase {
	case PhasePending:
		next.Loading = true
		next.Error = nil
		return next
	case PhaseRejected:
		next.Loading = false
		if a.Failure != nil {
			f := *a.Failure
			next.Error = &f
		}
		return next
	case PhaseFulfilled:
		next.Loading = false
		next.Error = nil
		return fulfill(next, a)
	}

	switch a.Type {
	case ActionSetSelectedCard:
		next.SelectedCard = nil
		if a.Card != nil {
			c := *a.Card
			next.SelectedCard = &c
		}
	case ActionClearError:
		next.Error = nil
	case ActionRefreshExpiration:
		for i := range next.Cards {
			next.Cards[i] = next.Cards[i].WithExpiration(a.Now)
		}
		if next.SelectedCard != nil {
			c := next.SelectedCard.WithExpiration(a.Now)
			next.SelectedCard = &c
		}
	case ActionSortCards:
		sortCards(next.Cards, a.SortKey, a.Now.Location())
	}
	return next
}

func fulfill(next State, a Action) State {
	switch a.Type {
	case ActionLoad:
		next.Cards = slices.Clone(a.Cards)
		if next.Cards == nil {
			next.Cards = []models.GiftCard{}
		}
	case ActionAdd:
		if a.Card != nil {
			next.Cards = append(next.Cards, *a.Card)
		}
	case ActionUpdate:
		if a.Card == nil {
			break
		}
		if i := indexOf(next.Cards, a.Card.ID); i >= 0 {
			next.Cards[i] = *a.Card
		}
		if next.SelectedCard != nil && next.SelectedCard.ID == a.Card.ID {
			c := *a.Card
			next.SelectedCard = &c
		}
	case ActionDelete:
		next.Cards = slices.DeleteFunc(next.Cards, func(c models.GiftCard) bool { return c.ID == a.ID })
		if next.SelectedCard != nil && next.SelectedCard.ID == a.ID {
			next.SelectedCard = nil
		}
	case ActionClearAll:
		next.Cards = []models.GiftCard{}
		next.SelectedCard = nil
	}
	return next
}

// sortCards orders cards in place: brand ascending by collation, amount
// descending, expiration date ascending, creation time newest first. The
// sort is stable; unknown keys leave the order unchanged.
func sortCards(cards []models.GiftCard, key models.SortKey, loc *time.Location) {
	switch key {
	case models.SortByBrand:
		// Collator keeps internal buffers, so one per call.
		col := collate.New(language.Und)
		slices.SortStableFunc(cards, func(a, b models.GiftCard) int {
			return col.CompareString(a.Brand, b.Brand)
		})
	case models.SortByAmount:
		slices.SortStableFunc(cards, func(a, b models.GiftCard) int {
			return cmp.Compare(b.Amount, a.Amount)
		})
	case models.SortByExpirationDate:
		slices.SortStableFunc(cards, func(a, b models.GiftCard) int {
			return compareDates(a.ExpirationDate, b.ExpirationDate, loc)
		})
	case models.SortByCreatedAt:
		slices.SortStableFunc(cards, func(a, b models.GiftCard) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
}

// compareDates orders parseable dates chronologically and puts unparseable
// ones last.
func compareDates(a, b string, loc *time.Location) int {
	ta, errA := models.ParseDate(a, loc)
	tb, errB := models.ParseDate(b, loc)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	}
	return ta.Compare(tb)
}

func indexOf(cards []models.GiftCard, id string) int {
	return slices.IndexFunc(cards, func(c models.GiftCard) bool { return c.ID == id })
}
