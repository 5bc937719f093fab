// Package common contains shared constants and sentinel errors used across
// giftkeeper components.
package common

// Storage keys. The whole gift-card collection lives under GiftCardsKey as a
// single JSON document; UserNameKey holds the raw display name.
const (
	GiftCardsKey = "@gift_cards"
	UserNameKey  = "@user_name"
)
