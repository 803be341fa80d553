package availability

import (
	"context"

	"radagast/internal/domain"
)

type availabilityService struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &availabilityService{repo: repo}
}

func (s *availabilityService) CountByStatus(ctx context.Context, productID, logoType string, orderID *string) (StatusCounts, error) {
	counts, err := s.repo.CountByStatus(ctx, productID, logoType, orderID)
	if err != nil {
		return StatusCounts{}, err
	}

	return StatusCounts{
		InStock:            counts[domain.StatusInStock],
		AwaitingProduction: counts[domain.StatusAwaitingProduction],
	}, nil
}
