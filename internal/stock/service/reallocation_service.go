package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"radagast/internal/domain"
	"radagast/internal/dto"
	apperrors "radagast/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type StockItemRepository interface {
	FindForUpdate(ctx context.Context, tx *sql.Tx, productID, logoType, status string, orderID *string, limit int) ([]domain.StockItem, error)
	Insert(ctx context.Context, tx *sql.Tx, item domain.StockItem) (uint, error)
	Delete(ctx context.Context, tx *sql.Tx, id uint) error
}

type ReallocationService struct {
	db        TransactionManager
	stockRepo StockItemRepository
	logger    *zap.Logger
	txTimeout time.Duration
}

func NewReallocationService(
	db TransactionManager,
	stockRepo StockItemRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
) *ReallocationService {
	return &ReallocationService{
		db:        db,
		stockRepo: stockRepo,
		logger:    logger,
		txTimeout: txTimeout,
	}
}

// Reallocate moves up to cmd.Quantity in-stock units from the source order
// (or general stock) to the target order inside a single transaction. Moved
// units clear matching awaitingProduction placeholders at the target; a real
// source order is backfilled with one replacement placeholder per moved unit
// so its fulfillment count is never silently reduced.
func (s *ReallocationService) Reallocate(ctx context.Context, cmd dto.ReallocationCommand) (*dto.ReallocationResult, error) {
	// Bloque 1: Iniciar transacción con timeout
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	// Ensure rollback on any exit path. MySQL ignores rollback if already committed.
	defer tx.Rollback()

	// Bloque 2: Localizar unidades en el origen (con lock de filas)
	source, err := s.stockRepo.FindForUpdate(txCtx, tx, cmd.ProductID, cmd.LogoType, domain.StatusInStock, cmd.SourceOrderID, cmd.Quantity)
	if err != nil {
		s.logger.Error("failed to locate source units", zap.String("productId", cmd.ProductID), zap.Error(err))
		return nil, err
	}

	if len(source) < cmd.Quantity {
		s.logger.Warn("insufficient stock, transaction rolled back",
			zap.String("productId", cmd.ProductID),
			zap.String("logoType", cmd.LogoType),
			zap.Int("requested", cmd.Quantity),
			zap.Int("found", len(source)),
		)
		return nil, apperrors.NewInsufficientStockError(cmd.Quantity, len(source))
	}

	// Bloque 3: Localizar backorders en el destino. Only as many placeholders
	// as units actually moving in are redundant; fewer existing is fine.
	targetOrderID := cmd.TargetOrderID
	pending, err := s.stockRepo.FindForUpdate(txCtx, tx, cmd.ProductID, cmd.LogoType, domain.StatusAwaitingProduction, &targetOrderID, len(source))
	if err != nil {
		s.logger.Error("failed to locate pending placeholders", zap.String("targetOrderId", cmd.TargetOrderID), zap.Error(err))
		return nil, err
	}

	// Bloque 4: Mover cada unidad (delete + insert, nunca mutación in-place)
	reallocatedFromLabel := domain.ReallocationLabel(cmd.SourceOrderID)
	borrowedLabel := domain.BorrowedLabel(cmd.TargetOrderID)
	now := time.Now().UTC()
	deliveryDeadline := now
	if cmd.TargetDeliveryDate != nil {
		deliveryDeadline = *cmd.TargetDeliveryDate
	}

	replacements := 0
	for _, item := range source {
		if err := s.stockRepo.Delete(txCtx, tx, item.ID); err != nil {
			return nil, err
		}

		moved := item
		moved.ID = 0
		moved.PublicID = ""
		moved.OrderID = &targetOrderID
		moved.ClientName = cmd.TargetClientName
		moved.DeliveryDeadline = deliveryDeadline
		moved.ReallocatedFrom = reallocatedFromLabel
		moved.CreationDate = now
		if _, err := s.stockRepo.Insert(txCtx, tx, moved); err != nil {
			return nil, err
		}

		if cmd.SourceOrderID != nil {
			replacement := item
			replacement.ID = 0
			replacement.PublicID = ""
			replacement.OrderID = cmd.SourceOrderID
			replacement.Status = domain.StatusAwaitingProduction
			replacement.ReallocatedFrom = borrowedLabel
			replacement.CreationDate = now
			if _, err := s.stockRepo.Insert(txCtx, tx, replacement); err != nil {
				return nil, err
			}
			replacements++
		}
	}

	// Bloque 5: Limpiar los backorders satisfechos
	for _, placeholder := range pending {
		if err := s.stockRepo.Delete(txCtx, tx, placeholder.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit reallocation", zap.String("targetOrderId", cmd.TargetOrderID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("reallocation committed",
		zap.String("productId", cmd.ProductID),
		zap.String("logoType", cmd.LogoType),
		zap.Stringp("sourceOrderId", cmd.SourceOrderID),
		zap.String("targetOrderId", cmd.TargetOrderID),
		zap.Int("moved", len(source)),
		zap.Int("backordersCleared", len(pending)),
		zap.Int("replacementsCreated", replacements),
	)

	return &dto.ReallocationResult{
		TargetOrderID:       cmd.TargetOrderID,
		SourceOrderID:       cmd.SourceOrderID,
		Moved:               len(source),
		BackordersCleared:   len(pending),
		ReplacementsCreated: replacements,
	}, nil
}
