package usecase

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"radagast/internal/dto"
	apperrors "radagast/internal/errors"
)

type ReallocationService interface {
	Reallocate(ctx context.Context, cmd dto.ReallocationCommand) (*dto.ReallocationResult, error)
}

type ReallocateUseCase struct {
	reallocationSvc  ReallocationService
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewReallocateUseCase(
	reallocationSvc ReallocationService,
	logger *zap.Logger,
	maxRetryAttempts int,
) *ReallocateUseCase {
	return &ReallocateUseCase{
		reallocationSvc:  reallocationSvc,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (uc *ReallocateUseCase) Reallocate(ctx context.Context, cmd dto.ReallocationCommand) (*dto.ReallocationResult, error) {
	uc.logger.Info("reallocation started",
		zap.String("productId", cmd.ProductID),
		zap.String("logoType", cmd.LogoType),
		zap.Stringp("sourceOrderId", cmd.SourceOrderID),
		zap.String("targetOrderId", cmd.TargetOrderID),
		zap.Int("quantity", cmd.Quantity),
	)

	return uc.reallocateWithRetry(ctx, cmd)
}

func (uc *ReallocateUseCase) reallocateWithRetry(ctx context.Context, cmd dto.ReallocationCommand) (*dto.ReallocationResult, error) {
	maxAttempts := uc.maxRetryAttempts
	// Backoff intervals: attempt 1 (0ms), attempt 2 (100ms), attempt 3 (200ms)
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := uc.reallocationSvc.Reallocate(ctx, cmd)
		if err == nil {
			return result, nil
		}

		if isDeadlockError(err) {
			if attempt < maxAttempts {
				idx := attempt - 1
				if idx >= len(backoffs) {
					idx = len(backoffs) - 1
				}
				// Jitter: ±20% of the backoff base
				sleep := time.Duration(float64(backoffs[idx]) * (0.8 + rand.Float64()*0.4))
				time.Sleep(sleep)
				uc.logger.Warn("deadlock detected, retrying",
					zap.Int("attempt", attempt),
					zap.Int("maxAttempts", maxAttempts),
					zap.String("targetOrderId", cmd.TargetOrderID),
				)
				continue
			}
			// Last attempt also deadlocked, classify as retry exhaustion
			break
		}

		// Non-deadlock error, return immediately
		return nil, err
	}

	return nil, apperrors.NewDeadlockError("max retries exceeded")
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
