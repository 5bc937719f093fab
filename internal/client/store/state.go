package store

import (
	"slices"

	"github.com/dmitrijs2005/giftkeeper/internal/client/models"
)

// Failure is the error recorded by a rejected action.
type Failure struct {
	Action  ActionType
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return string(f.Action) + ": " + f.Message
}

func (f *Failure) Unwrap() error { return f.Err }

type State struct {
	Cards        []models.GiftCard
	Loading      bool
	Error        *Failure
	SelectedCard *models.GiftCard
}

// InitialState is the state a fresh Store starts from.
func InitialState() State {
	return State{Cards: []models.GiftCard{}}
}

// clone returns a copy that shares no mutable memory with s.
func (s State) clone() State {
	out := s
	out.Cards = slices.Clone(s.Cards)
	if out.Cards == nil {
		out.Cards = []models.GiftCard{}
	}
	if s.Error != nil {
		f := *s.Error
		out.Error = &f
	}
	if s.SelectedCard != nil {
		c := *s.SelectedCard
		out.SelectedCard = &c
	}
	return out
}
