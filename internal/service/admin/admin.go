package admin

import (
	"context"
	"fmt"

	"dorm-delivery/internal/entities"
)

type Service struct {
	repository StatsRepository
	txManager  TxManager
}

func New(repository StatsRepository, txManager TxManager) *Service {
	return &Service{
		repository: repository,
		txManager:  txManager,
	}
}

// GetStats считает агрегаты в одном снимке, чтобы счетчики не расходились между собой.
func (s *Service) GetStats(ctx context.Context, actor *entities.User) (*entities.Stats, error) {
	if actor.Role != entities.RoleAdmin {
		return nil, ErrForbidden
	}

	var stats *entities.Stats
	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		stats, err = s.repository.Stats(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("collect stats: %w", err)
	}

	return stats, nil
}
