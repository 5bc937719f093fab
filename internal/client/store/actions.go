package store

import (
	"time"

	"github.com/dmitrijs2005/giftkeeper/internal/client/models"
)

type ActionType string

const (
	ActionLoad     ActionType = "giftCards/load"
	ActionAdd      ActionType = "giftCards/add"
	ActionUpdate   ActionType = "giftCards/update"
	ActionDelete   ActionType = "giftCards/delete"
	ActionClearAll ActionType = "giftCards/clearAll"

	ActionSetSelectedCard   ActionType = "giftCards/setSelectedCard"
	ActionClearError        ActionType = "giftCards/clearError"
	ActionRefreshExpiration ActionType = "giftCards/updateCardExpiration"
	ActionSortCards         ActionType = "giftCards/sortCards"
)

// Phase of an asynchronous action. Synchronous actions use PhaseNone.
type Phase int

const (
	PhaseNone Phase = iota
	PhasePending
	PhaseFulfilled
	PhaseRejected
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseFulfilled:
		return "fulfilled"
	case PhaseRejected:
		return "rejected"
	}
	return "none"
}

// Action is a tagged state transition. Only the payload fields relevant to
// Type and Phase are read by Reduce.
type Action struct {
	Type  ActionType
	Phase Phase

	Cards   []models.GiftCard // load fulfilled
	Card    *models.GiftCard  // add/update fulfilled, setSelectedCard (nil clears)
	ID      string            // delete fulfilled
	SortKey models.SortKey    // sortCards
	Now     time.Time         // updateCardExpiration, sortCards (location)
	Failure *Failure          // rejected
}

func pending(t ActionType) Action {
	return Action{Type: t, Phase: PhasePending}
}

func rejected(t ActionType, msg string, err error) Action {
	return Action{Type: t, Phase: PhaseRejected, Failure: &Failure{Action: t, Message: msg, Err: err}}
}

func LoadFulfilled(cards []models.GiftCard) Action {
	return Action{Type: ActionLoad, Phase: PhaseFulfilled, Cards: cards}
}

func AddFulfilled(card models.GiftCard) Action {
	return Action{Type: ActionAdd, Phase: PhaseFulfilled, Card: &card}
}

func UpdateFulfilled(card models.GiftCard) Action {
	return Action{Type: ActionUpdate, Phase: PhaseFulfilled, Card: &card}
}

func DeleteFulfilled(id string) Action {
	return Action{Type: ActionDelete, Phase: PhaseFulfilled, ID: id}
}

func ClearAllFulfilled() Action {
	return Action{Type: ActionClearAll, Phase: PhaseFulfilled}
}

func SetSelectedCard(card *models.GiftCard) Action {
	if card != nil {
		c := *card
		card = &c
	}
	return Action{Type: ActionSetSelectedCard, Card: card}
}

func ClearError() Action {
	return Action{Type: ActionClearError}
}

func RefreshExpiration(now time.Time) Action {
	return Action{Type: ActionRefreshExpiration, Now: now}
}

// SortCards reorders by key. Date-only expirations are read in now's
// location, the same way expiration status is computed.
func SortCards(key models.SortKey, now time.Time) Action {
	return Action{Type: ActionSortCards, SortKey: key, Now: now}
}
