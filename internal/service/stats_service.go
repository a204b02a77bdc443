package service

import "github.com/fairyhunter13/loyalty-cart-system/internal/model"

// StatsService exposes read-only aggregates over the order and coupon
// history. It has no side effects and cannot fail.
type StatsService struct {
	orderRepo OrderRepositoryInterface
}

// NewStatsService creates a new StatsService.
func NewStatsService(orderRepo OrderRepositoryInterface) *StatsService {
	return &StatsService{orderRepo: orderRepo}
}

// Stats folds the full history into one consistent snapshot.
func (s *StatsService) Stats() *model.Stats {
	return s.orderRepo.Aggregate()
}
