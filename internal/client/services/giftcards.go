// Package services contains the persistence services of the giftkeeper
// client. This file defines the gift-card storage service: the whole
// collection is kept as one JSON document under common.GiftCardsKey and
// every mutation is a load-modify-save cycle.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/giftkeeper/internal/client/models"
	"github.com/dmitrijs2005/giftkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/giftkeeper/internal/common"
	"github.com/dmitrijs2005/giftkeeper/internal/logging"
)

// GiftCardService persists the gift-card collection.
//
// Contract:
//   - Load returns an empty slice when nothing was saved yet and recomputes
//     IsExpired for every card.
//   - Add rejects a duplicate id with common.ErrorAlreadyExists.
//   - Update and Delete report common.ErrorNotFound for an unknown id.
//   - Storage failures wrap common.ErrPersistence.
//
// Mutations are serialized, so concurrent read-modify-write cycles in one
// process never lose each other's changes.
type GiftCardService interface {
	Save(ctx context.Context, cards []models.GiftCard) error
	Load(ctx context.Context) ([]models.GiftCard, error)
	Add(ctx context.Context, card models.GiftCard) error
	Update(ctx context.Context, card models.GiftCard) error
	Delete(ctx context.Context, id string) error
	ClearAll(ctx context.Context) error
}

// Clock returns the current instant.
type Clock func() time.Time

type giftCardService struct {
	repo kv.Repository
	log  logging.Logger
	now  Clock
	mu   *sync.Mutex
}

// NewGiftCardService constructs a GiftCardService over repo. A nil clock
// means time.Now.
func NewGiftCardService(repo kv.Repository, log logging.Logger, now Clock) GiftCardService {
	return newGiftCardService(repo, log, now, &sync.Mutex{})
}

func newGiftCardService(repo kv.Repository, log logging.Logger, now Clock, mu *sync.Mutex) *giftCardService {
	if now == nil {
		now = time.Now
	}
	return &giftCardService{repo: repo, log: log, now: now, mu: mu}
}

func (s *giftCardService) Save(ctx context.Context, cards []models.GiftCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(ctx, cards); err != nil {
		return s.fail(ctx, "failed to save gift cards", err)
	}
	return nil
}

func (s *giftCardService) Load(ctx context.Context) ([]models.GiftCard, error) {
	cards, err := s.load(ctx)
	if err != nil {
		return nil, s.fail(ctx, "failed to load gift cards", err)
	}
	return cards, nil
}

func (s *giftCardService) Add(ctx context.Context, card models.GiftCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.load(ctx)
	if err != nil {
		return s.fail(ctx, "failed to add gift card", err)
	}
	if indexOf(cards, card.ID) >= 0 {
		return fmt.Errorf("gift card %s: %w", card.ID, common.ErrorAlreadyExists)
	}

	if err := s.save(ctx, append(cards, card)); err != nil {
		return s.fail(ctx, "failed to add gift card", err)
	}
	return nil
}

func (s *giftCardService) Update(ctx context.Context, card models.GiftCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.load(ctx)
	if err != nil {
		return s.fail(ctx, "failed to update gift card", err)
	}
	i := indexOf(cards, card.ID)
	if i < 0 {
		return fmt.Errorf("gift card %s: %w", card.ID, common.ErrorNotFound)
	}
	cards[i] = card

	if err := s.save(ctx, cards); err != nil {
		return s.fail(ctx, "failed to update gift card", err)
	}
	return nil
}

func (s *giftCardService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.load(ctx)
	if err != nil {
		return s.fail(ctx, "failed to delete gift card", err)
	}
	i := indexOf(cards, id)
	if i < 0 {
		return fmt.Errorf("gift card %s: %w", id, common.ErrorNotFound)
	}

	if err := s.save(ctx, slices.Delete(cards, i, i+1)); err != nil {
		return s.fail(ctx, "failed to delete gift card", err)
	}
	return nil
}

func (s *giftCardService) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, common.GiftCardsKey); err != nil {
		return s.fail(ctx, "failed to clear gift cards", err)
	}
	return nil
}

func (s *giftCardService) save(ctx context.Context, cards []models.GiftCard) error {
	if cards == nil {
		cards = []models.GiftCard{}
	}
	data, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return s.repo.Set(ctx, common.GiftCardsKey, data)
}

func (s *giftCardService) load(ctx context.Context) ([]models.GiftCard, error) {
	data, err := s.repo.Get(ctx, common.GiftCardsKey)
	if err != nil {
		return nil, err
	}
	cards := []models.GiftCard{}
	if data == nil {
		return cards, nil
	}
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if cards == nil {
		// stored literal null
		cards = []models.GiftCard{}
	}

	now := s.now()
	for i := range cards {
		cards[i] = cards[i].WithExpiration(now)
	}
	return cards, nil
}

func (s *giftCardService) fail(ctx context.Context, msg string, err error) error {
	s.log.Error(ctx, msg, "error", err)
	return fmt.Errorf("%w: %s: %w", common.ErrPersistence, msg, err)
}

func indexOf(cards []models.GiftCard, id string) int {
	return slices.IndexFunc(cards, func(c models.GiftCard) bool { return c.ID == id })
}
