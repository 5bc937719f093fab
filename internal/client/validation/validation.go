// Package validation checks raw gift-card form input and shapes user input.
//
// Every function here is pure and synchronous. Validation never fails with an
// error value: problems are reported as field-scoped models.ValidationError
// entries inside a models.FormValidationResult.
package validation

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/giftkeeper/internal/client/models"
)

const (
	MinBrandLength = 2
	MaxBrandLength = 50
	MaxAmount      = 10000
	MaxYearsAhead  = 10
	MinNameLength  = 2
)

var (
	amountPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	// Leading numeric prefix, the way a lenient float parser reads "12abc".
	leadingNumber = regexp.MustCompile(`^[+-]?(Infinity|\d+\.?\d*(?:[eE][+-]?\d+)?|\.\d+(?:[eE][+-]?\d+)?)`)
)

// ValidateGiftCardForm checks every field of form against now and collects
// all problems. Date comparisons happen in now's location.
func ValidateGiftCardForm(form models.GiftCardFormData, now time.Time) models.FormValidationResult {
	errs := make([]models.ValidationError, 0, 3)

	if msg := brandError(form.Brand); msg != "" {
		errs = append(errs, models.ValidationError{Field: models.FieldBrand, Message: msg})
	}
	if msg := amountError(form.Amount); msg != "" {
		errs = append(errs, models.ValidationError{Field: models.FieldAmount, Message: msg})
	}
	if msg := expirationError(form.ExpirationDate, now); msg != "" {
		errs = append(errs, models.ValidationError{Field: models.FieldExpirationDate, Message: msg})
	}

	return models.FormValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

func brandError(brand string) string {
	n := utf8.RuneCountInString(strings.TrimSpace(brand))
	switch {
	case n == 0:
		return "Brand name is required"
	case n < MinBrandLength:
		return "Brand name must be at least 2 characters"
	case n > MaxBrandLength:
		return "Brand name must be less than 50 characters"
	}
	return ""
}

func amountError(amount string) string {
	s := strings.TrimSpace(amount)
	if s == "" {
		return "Amount is required"
	}
	v, ok := ParseAmount(s)
	switch {
	case !ok:
		return "Amount must be a valid number"
	case v <= 0:
		return "Amount must be greater than $0"
	case v > MaxAmount:
		return "Amount must be less than $10,000"
	case !amountPattern.MatchString(s):
		return "Amount can have maximum 2 decimal places"
	}
	return ""
}

func expirationError(date string, now time.Time) string {
	if strings.TrimSpace(date) == "" {
		return "Expiration date is required"
	}
	exp, err := models.ParseDate(date, now.Location())
	if err != nil {
		return "Invalid expiration date"
	}
	if exp.Before(StartOfDay(now)) {
		return "Expiration date cannot be in the past"
	}
	if exp.After(now.AddDate(MaxYearsAhead, 0, 0)) {
		return "Expiration date cannot be more than 10 years in the future"
	}
	return ""
}

// StartOfDay zeroes the time of day of t in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseAmount reads the leading numeric prefix of s after trimming, so
// "12abc" yields 12 and "5." yields 5. It reports false when no number can
// be read at all.
func ParseAmount(s string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	switch strings.TrimLeft(m, "+-") {
	case "Infinity":
		if strings.HasPrefix(m, "-") {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

// IsValidAmount reports whether s is numeric, positive and within the limit.
// It ignores decimal-place formatting.
func IsValidAmount(s string) bool {
	v, ok := ParseAmount(s)
	return ok && v > 0 && v <= MaxAmount
}

// ErrorForField returns the first message reported for field, or "".
func ErrorForField(errs []models.ValidationError, field string) string {
	for _, e := range errs {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// FormatCurrencyInput shapes live amount input: it drops everything but
// digits and dots, keeps the first dot only and cuts the fraction to two
// digits.
func FormatCurrencyInput(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '.' || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, s)

	whole, frac, hasDot := strings.Cut(cleaned, ".")
	if !hasDot {
		return whole
	}
	frac = strings.ReplaceAll(frac, ".", "")
	if len(frac) > 2 {
		frac = frac[:2]
	}
	return whole + "." + frac
}

// FormatBrandName capitalizes the first letter of every space-separated word
// and lower-cases the rest.
func FormatBrandName(brand string) string {
	words := strings.Split(strings.TrimSpace(brand), " ")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

// SanitizeInput trims s and collapses internal whitespace runs to one space.
func SanitizeInput(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ValidateDisplayName checks the sign-in name.
func ValidateDisplayName(name string) models.FormValidationResult {
	var errs []models.ValidationError
	switch n := utf8.RuneCountInString(strings.TrimSpace(name)); {
	case n == 0:
		errs = append(errs, models.ValidationError{Field: models.FieldName, Message: "Name is required"})
	case n < MinNameLength:
		errs = append(errs, models.ValidationError{Field: models.FieldName, Message: "Name must be at least 2 characters"})
	}
	return models.FormValidationResult{IsValid: len(errs) == 0, Errors: errs}
}
