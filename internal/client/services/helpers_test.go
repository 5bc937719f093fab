package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/giftkeeper/internal/client/models"
	"github.com/dmitrijs2005/giftkeeper/internal/client/repositories/kv"
)

var (
	fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	errStore = errors.New("disk full")
)

func fixedClock() time.Time { return fixedNow }

// failingRepo wraps a real repository and fails selected operations.
type failingRepo struct {
	kv.Repository
	getErr, setErr, deleteErr, listErr, clearErr error
	sets                                         int
}

func (f *failingRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.Repository.Get(ctx, key)
}

func (f *failingRepo) Set(ctx context.Context, key string, value []byte) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	return f.Repository.Set(ctx, key, value)
}

func (f *failingRepo) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.Repository.Delete(ctx, key)
}

func (f *failingRepo) List(ctx context.Context) (map[string][]byte, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.Repository.List(ctx)
}

func (f *failingRepo) Clear(ctx context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	return f.Repository.Clear(ctx)
}

func card(id, brand string, amount float64, exp string) models.GiftCard {
	created := fixedNow.Add(-time.Hour)
	return models.GiftCard{
		ID:             id,
		Brand:          brand,
		Amount:         amount,
		ExpirationDate: exp,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
}
