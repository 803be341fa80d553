package availability

import (
	"database/sql"

	"go.uber.org/zap"

	"radagast/internal/availability/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLAvailabilityRepository(db)
	svc := NewService(repo)
	uc := NewQueryUseCase(svc)
	return NewController(uc, logger)
}
