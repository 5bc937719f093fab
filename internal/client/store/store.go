package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/giftkeeper/internal/client/models"
	"github.com/dmitrijs2005/giftkeeper/internal/client/services"
	"github.com/dmitrijs2005/giftkeeper/internal/client/validation"
	"github.com/dmitrijs2005/giftkeeper/internal/common"
	"github.com/dmitrijs2005/giftkeeper/internal/logging"
	"github.com/google/uuid"
)

// Rejection messages recorded in State.Error.
const (
	MsgNotFound       = "Gift card not found"
	MsgLoadFailed     = "Failed to load gift cards"
	MsgAddFailed      = "Failed to add gift card"
	MsgUpdateFailed   = "Failed to update gift card"
	MsgDeleteFailed   = "Failed to delete gift card"
	MsgClearAllFailed = "Failed to clear gift cards"
)

const defaultRefreshTick = time.Minute

// Store owns the client State. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	state State

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int

	cards services.GiftCardService
	log   logging.Logger
	now   func() time.Time
	newID func() string
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func New(cards services.GiftCardService, log logging.Logger, opts ...Option) *Store {
	s := &Store{
		state: InitialState(),
		subs:  make(map[int]func(State)),
		cards: cards,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State returns a snapshot; callers may keep and modify it freely.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Dispatch applies a and notifies subscribers with the resulting snapshot.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	snap := s.state.clone()
	s.mu.Unlock()

	s.log.Debug(context.Background(), "dispatch", "type", string(a.Type), "phase", a.Phase.String())

	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// Subscribe registers fn to run after every dispatch. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// Load replaces the cache with the persisted collection.
func (s *Store) Load(ctx context.Context) error {
	s.Dispatch(pending(ActionLoad))

	cards, err := s.cards.Load(ctx)
	if err != nil {
		return s.reject(ctx, ActionLoad, MsgLoadFailed, err)
	}
	s.Dispatch(LoadFulfilled(cards))
	return nil
}

// AddCard builds a new card from already validated form input, persists it
// and appends it to the cache.
func (s *Store) AddCard(ctx context.Context, form models.GiftCardFormData) (models.GiftCard, error) {
	s.Dispatch(pending(ActionAdd))

	now := s.now().Round(0)
	amount, _ := validation.ParseAmount(form.Amount)
	card := models.GiftCard{
		ID:             s.newID(),
		Brand:          strings.TrimSpace(form.Brand),
		Amount:         amount,
		ExpirationDate: strings.TrimSpace(form.ExpirationDate),
		CreatedAt:      now,
		UpdatedAt:      now,
	}.WithExpiration(now)

	if err := s.cards.Add(ctx, card); err != nil {
		return models.GiftCard{}, s.reject(ctx, ActionAdd, MsgAddFailed, err)
	}
	s.Dispatch(AddFulfilled(card))
	return card, nil
}

// UpdateCard merges form over the cached card with id. An id missing from
// the cache is rejected before storage is touched.
func (s *Store) UpdateCard(ctx context.Context, id string, form models.GiftCardFormData) (models.GiftCard, error) {
	s.Dispatch(pending(ActionUpdate))

	existing, ok := CardByID(s.State(), id)
	if !ok {
		return models.GiftCard{}, s.reject(ctx, ActionUpdate, MsgNotFound,
			fmt.Errorf("gift card %s: %w", id, common.ErrorNotFound))
	}

	now := s.now().Round(0)
	amount, _ := validation.ParseAmount(form.Amount)
	card := existing
	card.Brand = strings.TrimSpace(form.Brand)
	card.Amount = amount
	card.ExpirationDate = strings.TrimSpace(form.ExpirationDate)
	card.UpdatedAt = now
	card = card.WithExpiration(now)

	if err := s.cards.Update(ctx, card); err != nil {
		return models.GiftCard{}, s.reject(ctx, ActionUpdate, failureMessage(err, MsgUpdateFailed), err)
	}
	s.Dispatch(UpdateFulfilled(card))
	return card, nil
}

// DeleteCard removes the card with id from storage and then from the cache.
func (s *Store) DeleteCard(ctx context.Context, id string) error {
	s.Dispatch(pending(ActionDelete))

	if _, ok := CardByID(s.State(), id); !ok {
		return s.reject(ctx, ActionDelete, MsgNotFound,
			fmt.Errorf("gift card %s: %w", id, common.ErrorNotFound))
	}

	if err := s.cards.Delete(ctx, id); err != nil {
		return s.reject(ctx, ActionDelete, failureMessage(err, MsgDeleteFailed), err)
	}
	s.Dispatch(DeleteFulfilled(id))
	return nil
}

func (s *Store) ClearAllCards(ctx context.Context) error {
	s.Dispatch(pending(ActionClearAll))

	if err := s.cards.ClearAll(ctx); err != nil {
		return s.reject(ctx, ActionClearAll, MsgClearAllFailed, err)
	}
	s.Dispatch(ClearAllFulfilled())
	return nil
}

func (s *Store) SetSelectedCard(card *models.GiftCard) { s.Dispatch(SetSelectedCard(card)) }

func (s *Store) ClearError() { s.Dispatch(ClearError()) }

// RefreshExpiration recomputes IsExpired for every cached card. Storage is
// not touched.
func (s *Store) RefreshExpiration() { s.Dispatch(RefreshExpiration(s.now())) }

func (s *Store) SortCards(key models.SortKey) { s.Dispatch(SortCards(key, s.now())) }

// Now is the store's clock, shared with time-dependent selectors.
func (s *Store) Now() time.Time { return s.now() }

// RunExpirationRefresher calls RefreshExpiration every interval until ctx is
// done. A non-positive interval means one minute.
func (s *Store) RunExpirationRefresher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultRefreshTick
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RefreshExpiration()
		}
	}
}

func (s *Store) reject(ctx context.Context, t ActionType, msg string, err error) error {
	s.log.Warn(ctx, "action rejected", "type", string(t), "error", err)
	a := rejected(t, msg, err)
	s.Dispatch(a)
	return a.Failure
}

func failureMessage(err error, fallback string) string {
	if errors.Is(err, common.ErrorNotFound) {
		return MsgNotFound
	}
	return fallback
}
