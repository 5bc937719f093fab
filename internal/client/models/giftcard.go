// Package models defines the gift-card wallet data types: the persisted
// GiftCard record, raw form input, validation results and the enums used by
// sorting and filtering.
package models

import (
	"errors"
	"math"
	"strings"
	"time"
)

// DateLayout is the ISO calendar-date layout used for expiration dates.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// GiftCard is a stored gift card.
//
// IsExpired is derived from ExpirationDate and the current instant; it is
// never written to storage and is recomputed on every load.
type GiftCard struct {
	ID             string    `json:"id"`
	Brand          string    `json:"brand"`
	Amount         float64   `json:"amount"`
	ExpirationDate string    `json:"expirationDate"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	IsExpired      bool      `json:"-"`
}

// ExpiresAt parses ExpirationDate in loc.
func (c GiftCard) ExpiresAt(loc *time.Location) (time.Time, error) {
	return ParseDate(c.ExpirationDate, loc)
}

// WithExpiration returns a copy of c with IsExpired computed against now.
// An unparseable expiration date is never considered expired.
func (c GiftCard) WithExpiration(now time.Time) GiftCard {
	c.IsExpired = IsExpired(c.ExpirationDate, now)
	return c
}

// IsExpired reports whether the expiration date lies strictly before now.
func IsExpired(expirationDate string, now time.Time) bool {
	exp, err := ParseDate(expirationDate, now.Location())
	if err != nil {
		return false
	}
	return exp.Before(now)
}

// DaysUntil returns the number of days from now to t, rounded up. A moment
// later today yields 1; a moment earlier yields 0 or less.
func DaysUntil(t, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}

// ParseDate accepts a calendar date (2006-01-02, midnight in loc) or an
// RFC 3339 timestamp.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}

// GiftCardFormData is raw, unvalidated form input.
type GiftCardFormData struct {
	Brand          string `json:"brand"`
	Amount         string `json:"amount"`
	ExpirationDate string `json:"expirationDate"`
}

// ValidationError is a field-scoped, user-correctable problem.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

type FormValidationResult struct {
	IsValid bool              `json:"isValid"`
	Errors  []ValidationError `json:"errors"`
}

// Form field names as reported in ValidationError.Field.
const (
	FieldBrand          = "brand"
	FieldAmount         = "amount"
	FieldExpirationDate = "expirationDate"
	FieldName           = "name"
)

// SortKey selects the ordering applied by the state container.
type SortKey string

const (
	SortByBrand          SortKey = "brand"
	SortByAmount         SortKey = "amount"
	SortByExpirationDate SortKey = "expirationDate"
	SortByCreatedAt      SortKey = "createdAt"
)

func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(strings.TrimSpace(s)); k {
	case SortByBrand, SortByAmount, SortByExpirationDate, SortByCreatedAt:
		return k, true
	}
	return "", false
}

// StatusFilter selects a subset of cards by expiration status.
type StatusFilter string

const (
	StatusAll      StatusFilter = "all"
	StatusActive   StatusFilter = "active"
	StatusExpired  StatusFilter = "expired"
	StatusExpiring StatusFilter = "expiring"
)

func ParseStatusFilter(s string) (StatusFilter, bool) {
	switch f := StatusFilter(strings.TrimSpace(s)); f {
	case StatusAll, StatusActive, StatusExpired, StatusExpiring:
		return f, true
	}
	return "", false
}
