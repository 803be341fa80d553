package availability

import (
	"context"
)

type queryUseCase struct {
	service Service
}

func NewQueryUseCase(service Service) QueryUseCase {
	return &queryUseCase{service: service}
}

func (uc *queryUseCase) GetAvailability(ctx context.Context, req AvailabilityRequest) (*AvailabilityResponse, error) {
	counts, err := uc.service.CountByStatus(ctx, req.ProductID, req.LogoType, req.OrderID)
	if err != nil {
		return nil, err
	}

	return &AvailabilityResponse{
		ProductID:          req.ProductID,
		LogoType:           req.LogoType,
		OrderID:            req.OrderID,
		InStock:            counts.InStock,
		AwaitingProduction: counts.AwaitingProduction,
	}, nil
}
