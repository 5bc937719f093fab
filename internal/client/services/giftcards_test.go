package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/giftkeeper/internal/client/models"
	"github.com/dmitrijs2005/giftkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/giftkeeper/internal/common"
	"github.com/dmitrijs2005/giftkeeper/internal/logging"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSvc(repo kv.Repository) GiftCardService {
	return NewGiftCardService(repo, logging.Nop(), fixedClock)
}

func TestLoad_Empty(t *testing.T) {
	cards, err := newSvc(kv.NewMemoryRepository()).Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, cards)
	assert.Empty(t, cards)
}

func TestLoad_StoredNull(t *testing.T) {
	repo := kv.NewMemoryRepository()
	require.NoError(t, repo.Set(context.Background(), common.GiftCardsKey, []byte("null")))

	cards, err := newSvc(repo).Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, cards)
	assert.Empty(t, cards)
}

func TestSaveLoad_RoundTripRecomputesExpiration(t *testing.T) {
	ctx := context.Background()
	svc := newSvc(kv.NewMemoryRepository())

	in := []models.GiftCard{
		card("1", "Amazon", 50, "2025-12-31"),
		card("2", "Target", 25, "2024-01-01"),
	}
	in[0].IsExpired = true // stale, must not survive

	require.NoError(t, svc.Save(ctx, in))

	got, err := svc.Load(ctx)
	require.NoError(t, err)

	want := []models.GiftCard{in[0], in[1]}
	want[0].IsExpired = false
	want[1].IsExpired = true
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_WireFormat(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewMemoryRepository()
	svc := newSvc(repo)

	require.NoError(t, svc.Save(ctx, []models.GiftCard{card("1", "be st buy", 12.5, "2025-06-15")}))

	raw, err := repo.Get(ctx, common.GiftCardsKey)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "be st buy", decoded[0]["brand"])
	assert.Equal(t, 12.5, decoded[0]["amount"])
	assert.Equal(t, "2025-06-15", decoded[0]["expirationDate"])
	assert.NotContains(t, decoded[0], "isExpired")
	assert.Contains(t, decoded[0], "createdAt")
	assert.Contains(t, decoded[0], "updatedAt")
}

func TestSave_NilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewMemoryRepository()
	require.NoError(t, newSvc(repo).Save(ctx, nil))

	raw, _ := repo.Get(ctx, common.GiftCardsKey)
	assert.Equal(t, "[]", string(raw))
}

func TestLoad_IgnoresLegacyIsExpiredField(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewMemoryRepository()
	blob := `[{"id":"x","brand":"Old","amount":10,"expirationDate":"2030-01-01","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z","isExpired":true}]`
	require.NoError(t, repo.Set(ctx, common.GiftCardsKey, []byte(blob)))

	cards, err := newSvc(repo).Load(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.False(t, cards[0].IsExpired)
}

func TestLoad_CorruptBlob(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewMemoryRepository()
	require.NoError(t, repo.Set(ctx, common.GiftCardsKey, []byte("{not json")))

	_, err := newSvc(repo).Load(ctx)
	require.ErrorIs(t, err, common.ErrPersistence)
	assert.ErrorContains(t, err, "failed to load gift cards")
}

func TestAdd_AppendsAndRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := newSvc(kv.NewMemoryRepository())

	require.NoError(t, svc.Add(ctx, card("1", "Amazon", 50, "2026-01-01")))
	require.NoError(t, svc.Add(ctx, card("2", "Apple", 20, "2026-01-01")))

	err := svc.Add(ctx, card("1", "Other", 5, "2026-01-01"))
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	cards, err := svc.Load(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "Amazon", cards[0].Brand)
	assert.Equal(t, "Apple", cards[1].Brand)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc := newSvc(kv.NewMemoryRepository())
	require.NoError(t, svc.Save(ctx, []models.GiftCard{card("1", "Amazon", 50, "2026-01-01"), card("2", "Apple", 20, "2026-01-01")}))

	upd := card("2", "Apple", 35, "2027-01-01")
	upd.UpdatedAt = fixedNow
	require.NoError(t, svc.Update(ctx, upd))

	cards, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 35.0, cards[1].Amount)
	assert.Equal(t, "2027-01-01", cards[1].ExpirationDate)
	assert.Equal(t, 50.0, cards[0].Amount)
}

func TestUpdate_UnknownID_StorageUntouched(t *testing.T) {
	ctx := context.Background()
	repo := &failingRepo{Repository: kv.NewMemoryRepository()}
	svc := newSvc(repo)
	require.NoError(t, svc.Save(ctx, []models.GiftCard{card("1", "Amazon", 50, "2026-01-01")}))
	before, _ := repo.Get(ctx, common.GiftCardsKey)
	setsBefore := repo.sets

	err := svc.Update(ctx, card("nope", "X", 1, "2026-01-01"))
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.NotErrorIs(t, err, common.ErrPersistence)

	after, _ := repo.Get(ctx, common.GiftCardsKey)
	assert.True(t, bytes.Equal(before, after))
	assert.Equal(t, setsBefore, repo.sets)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := newSvc(kv.NewMemoryRepository())
	require.NoError(t, svc.Save(ctx, []models.GiftCard{
		card("1", "Amazon", 50, "2026-01-01"),
		card("2", "Apple", 20, "2026-01-01"),
		card("3", "Xbox", 10, "2026-01-01"),
	}))

	require.NoError(t, svc.Delete(ctx, "2"))
	require.ErrorIs(t, svc.Delete(ctx, "2"), common.ErrorNotFound)

	cards, err := svc.Load(ctx)
	require.NoError(t, err)
	ids := []string{cards[0].ID, cards[1].ID}
	assert.Equal(t, []string{"1", "3"}, ids)
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewMemoryRepository()
	svc := newSvc(repo)
	require.NoError(t, repo.Set(ctx, common.UserNameKey, []byte("Alex")))
	require.NoError(t, svc.Add(ctx, card("1", "Amazon", 50, "2026-01-01")))

	require.NoError(t, svc.ClearAll(ctx))

	cards, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, cards)

	name, _ := repo.Get(ctx, common.UserNameKey)
	assert.Equal(t, []byte("Alex"), name, "only the collection key is removed")
}

func TestPersistenceFailures(t *testing.T) {
	ctx := context.Background()
	c := card("1", "Amazon", 50, "2026-01-01")

	tests := []struct {
		name string
		repo *failingRepo
		call func(GiftCardService) error
		msg  string
	}{
		{"save", &failingRepo{setErr: errStore}, func(s GiftCardService) error { return s.Save(ctx, nil) }, "failed to save gift cards"},
		{"load", &failingRepo{getErr: errStore}, func(s GiftCardService) error { _, err := s.Load(ctx); return err }, "failed to load gift cards"},
		{"add on load", &failingRepo{getErr: errStore}, func(s GiftCardService) error { return s.Add(ctx, c) }, "failed to add gift card"},
		{"add on save", &failingRepo{setErr: errStore}, func(s GiftCardService) error { return s.Add(ctx, c) }, "failed to add gift card"},
		{"update", &failingRepo{getErr: errStore}, func(s GiftCardService) error { return s.Update(ctx, c) }, "failed to update gift card"},
		{"delete", &failingRepo{getErr: errStore}, func(s GiftCardService) error { return s.Delete(ctx, "1") }, "failed to delete gift card"},
		{"clear", &failingRepo{deleteErr: errStore}, func(s GiftCardService) error { return s.ClearAll(ctx) }, "failed to clear gift cards"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.repo.Repository = kv.NewMemoryRepository()
			var buf bytes.Buffer
			svc := NewGiftCardService(tt.repo, logging.New(&buf, "debug"), fixedClock)

			err := tt.call(svc)
			require.ErrorIs(t, err, common.ErrPersistence)
			require.ErrorIs(t, err, errStore)
			assert.ErrorContains(t, err, tt.msg)
			assert.Contains(t, buf.String(), tt.msg)
		})
	}
}

func TestAdd_ConcurrentCallsAllSurvive(t *testing.T) {
	ctx := context.Background()
	svc := newSvc(kv.NewMemoryRepository())

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, svc.Add(ctx, card(fmt.Sprintf("id-%d", i), "Brand", float64(i+1), "2026-01-01")))
		}(i)
	}
	wg.Wait()

	cards, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, cards, n)
}
