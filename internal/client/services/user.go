package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/giftkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/giftkeeper/internal/common"
	"github.com/dmitrijs2005/giftkeeper/internal/logging"
)

// UserService stores the display name entered at sign-in.
type UserService interface {
	SaveDisplayName(ctx context.Context, name string) error
	// LoadDisplayName reports false when no name is stored or the store
	// cannot be read; read failures are logged, not returned.
	LoadDisplayName(ctx context.Context) (string, bool)
}

type userService struct {
	repo kv.Repository
	log  logging.Logger
}

func NewUserService(repo kv.Repository, log logging.Logger) UserService {
	return &userService{repo: repo, log: log}
}

func (s *userService) SaveDisplayName(ctx context.Context, name string) error {
	if err := s.repo.Set(ctx, common.UserNameKey, []byte(name)); err != nil {
		s.log.Error(ctx, "failed to save user name", "error", err)
		return fmt.Errorf("%w: failed to save user name: %w", common.ErrPersistence, err)
	}
	return nil
}

func (s *userService) LoadDisplayName(ctx context.Context) (string, bool) {
	v, err := s.repo.Get(ctx, common.UserNameKey)
	if err != nil {
		s.log.Error(ctx, "failed to load user name", "error", err)
		return "", false
	}
	if v == nil {
		return "", false
	}
	return string(v), true
}
