package stock

import (
	"database/sql"

	"go.uber.org/zap"

	"radagast/internal/config"
	"radagast/internal/stock/controller"
	"radagast/internal/stock/repository"
	"radagast/internal/stock/service"
	"radagast/internal/stock/usecase"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.ReallocateController {
	stockRepo := repository.NewMySQLStockItemRepository(db)

	reallocationSvc := service.NewReallocationService(
		db,
		stockRepo,
		logger,
		cfg.Stock.ReallocationTxTimeout,
	)

	uc := usecase.NewReallocateUseCase(
		reallocationSvc,
		logger,
		cfg.Stock.MaxRetryAttempts,
	)

	return controller.NewReallocateController(uc, logger)
}
