package store

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/giftkeeper/internal/client/models"
	"github.com/dmitrijs2005/giftkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/giftkeeper/internal/client/services"
	"github.com/dmitrijs2005/giftkeeper/internal/logging"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return testNow }

func seqIDs() func() string {
	var n atomic.Int64
	return func() string { return fmt.Sprintf("card-%d", n.Add(1)) }
}

func newTestStore(t *testing.T) (*Store, services.GiftCardService) {
	t.Helper()
	svc := services.NewGiftCardService(kv.NewMemoryRepository(), logging.Nop(), clock)
	return New(svc, logging.Nop(), WithClock(clock), WithIDGenerator(seqIDs())), svc
}

// flakyService fails the operations that have an error set.
type flakyService struct {
	services.GiftCardService
	loadErr, addErr, updateErr, deleteErr, clearErr error
	calls                                           int
}

func (f *flakyService) Load(ctx context.Context) ([]models.GiftCard, error) {
	f.calls++
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.GiftCardService.Load(ctx)
}

func (f *flakyService) Add(ctx context.Context, c models.GiftCard) error {
	f.calls++
	if f.addErr != nil {
		return f.addErr
	}
	return f.GiftCardService.Add(ctx, c)
}

func (f *flakyService) Update(ctx context.Context, c models.GiftCard) error {
	f.calls++
	if f.updateErr != nil {
		return f.updateErr
	}
	return f.GiftCardService.Update(ctx, c)
}

func (f *flakyService) Delete(ctx context.Context, id string) error {
	f.calls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.GiftCardService.Delete(ctx, id)
}

func (f *flakyService) ClearAll(ctx context.Context) error {
	f.calls++
	if f.clearErr != nil {
		return f.clearErr
	}
	return f.GiftCardService.ClearAll(ctx)
}

func gc(id, brand string, amount float64, exp string, created time.Time) models.GiftCard {
	return models.GiftCard{
		ID:             id,
		Brand:          brand,
		Amount:         amount,
		ExpirationDate: exp,
		CreatedAt:      created,
		UpdatedAt:      created,
	}.WithExpiration(testNow)
}
