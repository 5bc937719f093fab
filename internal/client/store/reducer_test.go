package store

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/giftkeeper/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func brands(cards []models.GiftCard) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Brand
	}
	return out
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	a := gc("1", "Amazon", 50, "2030-01-01", testNow)
	b := gc("2", "Target", 25, "2020-01-01", testNow)
	in := State{Cards: []models.GiftCard{a, b}, SelectedCard: &a}
	snapshot := in.clone()

	_ = Reduce(in, SortCards(models.SortByAmount, testNow))
	_ = Reduce(in, SortCards(models.SortByBrand, testNow))
	_ = Reduce(in, DeleteFulfilled("1"))
	_ = Reduce(in, RefreshExpiration(testNow.AddDate(10, 0, 0)))
	upd := a
	upd.Amount = 1
	_ = Reduce(in, UpdateFulfilled(upd))

	if diff := cmp.Diff(snapshot, in); diff != "" {
		t.Fatalf("input state mutated (-before +after):\n%s", diff)
	}
}

func TestReduce_AsyncPhases(t *testing.T) {
	s := InitialState()
	s.Error = &Failure{Action: ActionLoad, Message: "old"}

	s = Reduce(s, pending(ActionAdd))
	assert.True(t, s.Loading)
	assert.Nil(t, s.Error)

	card := gc("1", "Amazon", 50, "2030-01-01", testNow)
	s = Reduce(s, AddFulfilled(card))
	assert.False(t, s.Loading)
	require.Len(t, s.Cards, 1)

	s = Reduce(s, pending(ActionDelete))
	s = Reduce(s, rejected(ActionDelete, MsgDeleteFailed, errors.New("x")))
	assert.False(t, s.Loading)
	require.NotNil(t, s.Error)
	assert.Equal(t, ActionDelete, s.Error.Action)
	assert.Equal(t, MsgDeleteFailed, s.Error.Message)
	assert.Len(t, s.Cards, 1, "rejected leaves the cache intact")

	s = Reduce(s, ClearError())
	assert.Nil(t, s.Error)
}

func TestReduce_UpdateReplacesSelected(t *testing.T) {
	card := gc("1", "Amazon", 50, "2030-01-01", testNow)
	s := Reduce(InitialState(), LoadFulfilled([]models.GiftCard{card}))
	s = Reduce(s, SetSelectedCard(&card))

	upd := card
	upd.Amount = 10
	s = Reduce(s, UpdateFulfilled(upd))

	assert.Equal(t, 10.0, s.Cards[0].Amount)
	require.NotNil(t, s.SelectedCard)
	assert.Equal(t, 10.0, s.SelectedCard.Amount)
}

func TestReduce_DeleteAndClearDropSelection(t *testing.T) {
	a := gc("1", "Amazon", 50, "2030-01-01", testNow)
	b := gc("2", "Apple", 20, "2030-01-01", testNow)
	s := Reduce(InitialState(), LoadFulfilled([]models.GiftCard{a, b}))

	s = Reduce(s, SetSelectedCard(&b))
	s = Reduce(s, DeleteFulfilled("1"))
	require.NotNil(t, s.SelectedCard, "other selection kept")

	s = Reduce(s, DeleteFulfilled("2"))
	assert.Nil(t, s.SelectedCard)
	assert.Empty(t, s.Cards)

	s = Reduce(s, LoadFulfilled([]models.GiftCard{a}))
	s = Reduce(s, SetSelectedCard(&a))
	s = Reduce(s, ClearAllFulfilled())
	assert.Nil(t, s.SelectedCard)
	assert.NotNil(t, s.Cards)
	assert.Empty(t, s.Cards)
}

func TestReduce_RefreshExpiration(t *testing.T) {
	card := gc("1", "Amazon", 50, "2025-06-20", testNow)
	require.False(t, card.IsExpired)

	s := Reduce(InitialState(), LoadFulfilled([]models.GiftCard{card}))
	s = Reduce(s, SetSelectedCard(&card))
	s = Reduce(s, RefreshExpiration(testNow.AddDate(0, 0, 10)))

	assert.True(t, s.Cards[0].IsExpired)
	assert.True(t, s.SelectedCard.IsExpired)
}

func TestSortCards(t *testing.T) {
	day := 24 * time.Hour
	cards := []models.GiftCard{
		gc("1", "target", 25, "2026-03-01", testNow.Add(-3*day)),
		gc("2", "Amazon", 100, "2025-12-01", testNow.Add(-1*day)),
		gc("3", "apple", 10, "not a date", testNow.Add(-2*day)),
		gc("4", "Best Buy", 100, "2025-07-01", testNow),
	}
	s := Reduce(InitialState(), LoadFulfilled(cards))

	byBrand := Reduce(s, SortCards(models.SortByBrand, testNow))
	assert.Equal(t, []string{"Amazon", "apple", "Best Buy", "target"}, brands(byBrand.Cards))

	byAmount := Reduce(s, SortCards(models.SortByAmount, testNow))
	assert.Equal(t, []string{"Amazon", "Best Buy", "target", "apple"}, brands(byAmount.Cards), "ties keep prior order")
	for i := 1; i < len(byAmount.Cards); i++ {
		assert.GreaterOrEqual(t, byAmount.Cards[i-1].Amount, byAmount.Cards[i].Amount)
	}

	byExp := Reduce(s, SortCards(models.SortByExpirationDate, testNow))
	assert.Equal(t, []string{"Best Buy", "Amazon", "target", "apple"}, brands(byExp.Cards))

	byCreated := Reduce(s, SortCards(models.SortByCreatedAt, testNow))
	assert.Equal(t, []string{"Best Buy", "Amazon", "apple", "target"}, brands(byCreated.Cards))
	for i := 1; i < len(byCreated.Cards); i++ {
		assert.False(t, byCreated.Cards[i].CreatedAt.After(byCreated.Cards[i-1].CreatedAt))
	}

	unknown := Reduce(s, SortCards("color", testNow))
	assert.Equal(t, brands(cards), brands(unknown.Cards))
}

func TestSortCards_ExpirationUsesClockLocation(t *testing.T) {
	pst := time.FixedZone("UTC-8", -8*60*60)
	cards := []models.GiftCard{
		gc("1", "Amazon", 10, "2025-07-01", testNow),           // 08:00Z in UTC-8
		gc("2", "Target", 10, "2025-07-01T04:00:00Z", testNow), // 04:00Z
	}
	s := Reduce(InitialState(), LoadFulfilled(cards))

	local := Reduce(s, SortCards(models.SortByExpirationDate, testNow.In(pst)))
	assert.Equal(t, []string{"Target", "Amazon"}, brands(local.Cards))

	utc := Reduce(s, SortCards(models.SortByExpirationDate, testNow))
	assert.Equal(t, []string{"Amazon", "Target"}, brands(utc.Cards))
}
