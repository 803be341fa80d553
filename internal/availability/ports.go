package availability

import "context"

type QueryUseCase interface {
	GetAvailability(ctx context.Context, req AvailabilityRequest) (*AvailabilityResponse, error)
}

type Service interface {
	CountByStatus(ctx context.Context, productID, logoType string, orderID *string) (StatusCounts, error)
}

type Repository interface {
	CountByStatus(ctx context.Context, productID, logoType string, orderID *string) (map[string]int, error)
}
