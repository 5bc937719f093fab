package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/giftkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/giftkeeper/internal/common"
	"github.com/dmitrijs2005/giftkeeper/internal/logging"
)

// StorageInfo summarizes what the key-value store currently holds.
// Size is the sum of value lengths in bytes.
type StorageInfo struct {
	Keys []string
	Size int64
}

// StorageService offers housekeeping over the whole store.
type StorageService interface {
	ClearAllData(ctx context.Context) error
	// StorageInfo degrades to an empty result when the store cannot be read.
	StorageInfo(ctx context.Context) StorageInfo
}

type storageService struct {
	repo kv.Repository
	log  logging.Logger
	mu   *sync.Mutex
}

func NewStorageService(repo kv.Repository, log logging.Logger) StorageService {
	return &storageService{repo: repo, log: log, mu: &sync.Mutex{}}
}

func (s *storageService) ClearAllData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to clear all data", "error", err)
		return fmt.Errorf("%w: failed to clear all data: %w", common.ErrPersistence, err)
	}
	return nil
}

func (s *storageService) StorageInfo(ctx context.Context) StorageInfo {
	all, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to get storage info", "error", err)
		return StorageInfo{Keys: []string{}}
	}

	info := StorageInfo{Keys: make([]string, 0, len(all))}
	for k, v := range all {
		info.Keys = append(info.Keys, k)
		info.Size += int64(len(v))
	}
	slices.Sort(info.Keys)
	return info
}

// Services bundles the client services over one repository. The gift-card
// and storage services share a lock, so wiping the store never interleaves
// with a card mutation.
type Services struct {
	GiftCards GiftCardService
	Users     UserService
	Storage   StorageService
}

func New(repo kv.Repository, log logging.Logger, now Clock) *Services {
	mu := &sync.Mutex{}
	return &Services{
		GiftCards: newGiftCardService(repo, log, now, mu),
		Users:     NewUserService(repo, log),
		Storage:   &storageService{repo: repo, log: log, mu: mu},
	}
}
