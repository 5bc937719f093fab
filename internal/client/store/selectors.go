package store

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/giftkeeper/internal/client/models"
	"github.com/shopspring/decimal"
)

// ExpiringWithinDays bounds the "expiring soon" view.
const ExpiringWithinDays = 30

func CardCount(s State) int { return len(s.Cards) }

// TotalValue sums card amounts without float drift.
func TotalValue(s State) decimal.Decimal {
	total := decimal.Zero
	for _, c := range s.Cards {
		total = total.Add(decimal.NewFromFloat(c.Amount))
	}
	return total
}

func ExpiredCards(s State) []models.GiftCard {
	return filter(s.Cards, func(c models.GiftCard) bool { return c.IsExpired })
}

func ActiveCards(s State) []models.GiftCard {
	return filter(s.Cards, func(c models.GiftCard) bool { return !c.IsExpired })
}

func ExpiredCount(s State) int { return len(ExpiredCards(s)) }

func ActiveCount(s State) int { return len(ActiveCards(s)) }

// ExpiringCards returns cards that are not expired and expire within
// ExpiringWithinDays of now, counting partial days as whole ones.
func ExpiringCards(s State, now time.Time) []models.GiftCard {
	return filter(s.Cards, func(c models.GiftCard) bool {
		if c.IsExpired {
			return false
		}
		exp, err := c.ExpiresAt(now.Location())
		if err != nil {
			return false
		}
		return models.DaysUntil(exp, now) <= ExpiringWithinDays
	})
}

func CardByID(s State, id string) (models.GiftCard, bool) {
	for _, c := range s.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return models.GiftCard{}, false
}

// SearchCards matches the trimmed query against brands, ignoring case. A
// blank query returns every card.
func SearchCards(s State, query string) []models.GiftCard {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return filter(s.Cards, func(models.GiftCard) bool { return true })
	}
	return filter(s.Cards, func(c models.GiftCard) bool {
		return strings.Contains(strings.ToLower(c.Brand), q)
	})
}

func FilterCardsByStatus(s State, status models.StatusFilter, now time.Time) []models.GiftCard {
	switch status {
	case models.StatusActive:
		return ActiveCards(s)
	case models.StatusExpired:
		return ExpiredCards(s)
	case models.StatusExpiring:
		return ExpiringCards(s, now)
	}
	return filter(s.Cards, func(models.GiftCard) bool { return true })
}

func filter(cards []models.GiftCard, keep func(models.GiftCard) bool) []models.GiftCard {
	out := make([]models.GiftCard, 0, len(cards))
	for _, c := range cards {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
