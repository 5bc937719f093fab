// Package display turns gift-card values into the strings shown by the
// terminal client: money, dates and expiration status.
package display

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/giftkeeper/internal/client/models"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	ShortDateLayout  = "Jan 02, 2006"
	LongDateLayout   = "Monday, January 02, 2006"
	CardExpiryLayout = "01/06"

	UrgentWithinDays = 7
	SoonWithinDays   = 30
)

// Currency renders a dollar amount with thousands separators and cents,
// e.g. "$1,234.50".
func Currency(amount float64) string {
	if amount < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -amount)
	}
	return "$" + humanize.FormatFloat("#,###.##", amount)
}

// CurrencyDecimal renders an exact sum the same way as Currency.
func CurrencyDecimal(d decimal.Decimal) string {
	return Currency(d.Round(2).InexactFloat64())
}

func ShortDate(date string, loc *time.Location) string {
	return formatDate(date, loc, ShortDateLayout)
}

func LongDate(date string, loc *time.Location) string {
	return formatDate(date, loc, LongDateLayout)
}

// CardExpiry renders the month/year shown on the face of a card.
func CardExpiry(date string, loc *time.Location) string {
	return formatDate(date, loc, CardExpiryLayout)
}

// formatDate falls back to the raw input when it cannot be parsed.
func formatDate(date string, loc *time.Location, layout string) string {
	t, err := models.ParseDate(date, loc)
	if err != nil {
		return date
	}
	return t.Format(layout)
}

// Level grades how close a card is to expiring.
type Level int

const (
	LevelOK Level = iota
	LevelSoon
	LevelUrgent
	LevelExpired
)

func (l Level) String() string {
	switch l {
	case LevelSoon:
		return "soon"
	case LevelUrgent:
		return "urgent"
	case LevelExpired:
		return "expired"
	}
	return "ok"
}

type Status struct {
	Text  string
	Level Level
}

func levelFor(days int) Level {
	switch {
	case days <= UrgentWithinDays:
		return LevelUrgent
	case days <= SoonWithinDays:
		return LevelSoon
	}
	return LevelOK
}

// ExpirationStatus is the short label of a list row: "Expired",
// "N days left" within 30 days, otherwise the expiration date.
func ExpirationStatus(card models.GiftCard, now time.Time) Status {
	if card.IsExpired {
		return Status{Text: "Expired", Level: LevelExpired}
	}
	exp, err := card.ExpiresAt(now.Location())
	if err != nil {
		return Status{Text: card.ExpirationDate, Level: LevelOK}
	}
	days := models.DaysUntil(exp, now)
	if days <= SoonWithinDays {
		return Status{Text: fmt.Sprintf("%d days left", days), Level: levelFor(days)}
	}
	return Status{Text: exp.Format(ShortDateLayout), Level: LevelOK}
}

// ExpirationInfo is the detailed label, relative to now: "Expired 3 days
// ago" or "Expires 2 weeks from now".
func ExpirationInfo(card models.GiftCard, now time.Time) Status {
	exp, err := card.ExpiresAt(now.Location())
	if err != nil {
		return Status{Text: "Unknown expiration", Level: LevelOK}
	}
	rel := humanize.RelTime(exp, now, "ago", "from now")
	if exp.Before(now) {
		return Status{Text: "Expired " + rel, Level: LevelExpired}
	}
	return Status{Text: "Expires " + rel, Level: levelFor(models.DaysUntil(exp, now))}
}

// Bytes renders a storage size, e.g. "1.2 kB".
func Bytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
