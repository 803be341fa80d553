package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"radagast/internal/domain"
	"radagast/internal/dto"
	apperrors "radagast/internal/errors"
	"radagast/internal/stock/repository"
	"radagast/internal/testutil"
)

// Helper to create ReallocationService with test defaults
func newTestReallocationService(db TransactionManager, stockRepo StockItemRepository) *ReallocationService {
	return NewReallocationService(
		db,
		stockRepo,
		zap.NewNop(),
		5*time.Second, // Default test timeout
	)
}

// Mock implementations
type mockTransactionManager struct {
	BeginTxFunc func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

func (m *mockTransactionManager) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return m.BeginTxFunc(ctx, opts)
}

type mockStockItemRepository struct {
	FindForUpdateFunc func(ctx context.Context, tx *sql.Tx, productID, logoType, status string, orderID *string, limit int) ([]domain.StockItem, error)
	InsertFunc        func(ctx context.Context, tx *sql.Tx, item domain.StockItem) (uint, error)
	DeleteFunc        func(ctx context.Context, tx *sql.Tx, id uint) error
}

func (m *mockStockItemRepository) FindForUpdate(ctx context.Context, tx *sql.Tx, productID, logoType, status string, orderID *string, limit int) ([]domain.StockItem, error) {
	return m.FindForUpdateFunc(ctx, tx, productID, logoType, status, orderID, limit)
}

func (m *mockStockItemRepository) Insert(ctx context.Context, tx *sql.Tx, item domain.StockItem) (uint, error) {
	return m.InsertFunc(ctx, tx, item)
}

func (m *mockStockItemRepository) Delete(ctx context.Context, tx *sql.Tx, id uint) error {
	return m.DeleteFunc(ctx, tx, id)
}

// Unit Tests

func TestReallocate_BeginTxFails(t *testing.T) {
	cause := errors.New("connection refused")
	txMgr := &mockTransactionManager{
		BeginTxFunc: func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
			return nil, cause
		},
	}

	svc := newTestReallocationService(txMgr, &mockStockItemRepository{})

	_, err := svc.Reallocate(context.Background(), dto.ReallocationCommand{
		ProductID:     "prod-1",
		LogoType:      "embroidered",
		TargetOrderID: "xyz999aaa",
		Quantity:      1,
	})

	assert.ErrorIs(t, err, cause)
}

// Integration Tests

func insertStockItem(t *testing.T, db *sql.DB, productID, logoType, status string, orderID *string, attributes string) uint {
	t.Helper()

	result, err := db.Exec(`
		INSERT INTO StockItems
			(publicId, productId, logoType, status, orderId, clientName,
			 deliveryDeadline, reallocatedFrom, creationDate, attributes)
		VALUES (UUID(), ?, ?, ?, ?, 'Original Client', NOW(), '', NOW(), ?)
	`, productID, logoType, status, orderID, attributes)
	require.NoError(t, err)

	id, err := result.LastInsertId()
	require.NoError(t, err)

	return uint(id)
}

func countItems(t *testing.T, db *sql.DB, status string, orderID *string) int {
	t.Helper()

	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM StockItems WHERE status = ? AND orderId <=> ?
	`, status, orderID).Scan(&count)
	require.NoError(t, err)

	return count
}

func newIntegrationService(db *sql.DB) *ReallocationService {
	return newTestReallocationService(db, repository.NewMySQLStockItemRepository(db))
}

func TestReallocate_Integration_Conservation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	sourceOrderID := "abc123def"
	targetOrderID := "xyz999aaa"
	for i := 0; i < 3; i++ {
		insertStockItem(t, db, "prod-1", "embroidered", domain.StatusInStock, &sourceOrderID, `{"size":"M"}`)
	}

	svc := newIntegrationService(db)

	result, err := svc.Reallocate(context.Background(), dto.ReallocationCommand{
		ProductID:        "prod-1",
		LogoType:         "embroidered",
		SourceOrderID:    &sourceOrderID,
		TargetOrderID:    targetOrderID,
		TargetClientName: "New Client",
		Quantity:         2,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Moved)
	assert.Equal(t, 2, result.ReplacementsCreated)
	assert.Equal(t, 0, result.BackordersCleared)

	// Units removed from source == units added to target == replacements at source
	assert.Equal(t, 1, countItems(t, db, domain.StatusInStock, &sourceOrderID))
	assert.Equal(t, 2, countItems(t, db, domain.StatusInStock, &targetOrderID))
	assert.Equal(t, 2, countItems(t, db, domain.StatusAwaitingProduction, &sourceOrderID))
}

func TestReallocate_Integration_MovedItemFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	sourceOrderID := "abc123def"
	targetOrderID := "xyz999aaa"
	insertStockItem(t, db, "prod-1", "embroidered", domain.StatusInStock, &sourceOrderID, `{"size":"M","color":"blue"}`)

	svc := newIntegrationService(db)

	_, err := svc.Reallocate(context.Background(), dto.ReallocationCommand{
		ProductID:        "prod-1",
		LogoType:         "embroidered",
		SourceOrderID:    &sourceOrderID,
		TargetOrderID:    targetOrderID,
		TargetClientName: "New Client",
		Quantity:         1,
	})
	require.NoError(t, err)

	var clientName, reallocatedFrom string
	var attributes []byte
	err = db.QueryRow(`
		SELECT clientName, reallocatedFrom, attributes
		FROM StockItems WHERE orderId = ? AND status = ?
	`, targetOrderID, domain.StatusInStock).Scan(&clientName, &reallocatedFrom, &attributes)
	require.NoError(t, err)

	assert.Equal(t, "New Client", clientName)
	assert.Contains(t, reallocatedFrom, "ABC123")
	assert.JSONEq(t, `{"size":"M","color":"blue"}`, string(attributes))

	var replacementLabel string
	err = db.QueryRow(`
		SELECT reallocatedFrom
		FROM StockItems WHERE orderId = ? AND status = ?
	`, sourceOrderID, domain.StatusAwaitingProduction).Scan(&replacementLabel)
	require.NoError(t, err)

	assert.Contains(t, replacementLabel, "XYZ999")
}

func TestReallocate_Integration_GeneralStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	targetOrderID := "xyz999aaa"
	for i := 0; i < 3; i++ {
		insertStockItem(t, db, "prod-1", "embroidered", domain.StatusInStock, nil, `{}`)
	}

	svc := newIntegrationService(db)

	result, err := svc.Reallocate(context.Background(), dto.ReallocationCommand{
		ProductID:     "prod-1",
		LogoType:      "embroidered",
		SourceOrderID: nil,
		TargetOrderID: targetOrderID,
		Quantity:      3,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Moved)
	// General stock lends nothing back
	assert.Equal(t, 0, result.ReplacementsCreated)
	assert.Equal(t, 0, countItems(t, db, domain.StatusInStock, nil))
	assert.Equal(t, 3, countItems(t, db, domain.StatusInStock, &targetOrderID))
	assert.Equal(t, 0, countItems(t, db, domain.StatusAwaitingProduction, nil))

	var label string
	err = db.QueryRow(`
		SELECT reallocatedFrom FROM StockItems WHERE orderId = ? LIMIT 1
	`, targetOrderID).Scan(&label)
	require.NoError(t, err)
	assert.Equal(t, domain.GeneralStockLabel, label)
}

func TestReallocate_Integration_InsufficientStockAborts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	sourceOrderID := "abc123def"
	targetOrderID := "xyz999aaa"
	insertStockItem(t, db, "prod-1", "embroidered", domain.StatusInStock, &sourceOrderID, `{}`)
	insertStockItem(t, db, "prod-1", "embroidered", domain.StatusAwaitingProduction, &targetOrderID, `{}`)

	svc := newIntegrationService(db)

	_, err := svc.Reallocate(context.Background(), dto.ReallocationCommand{
		ProductID:     "prod-1",
		LogoType:      "embroidered",
		SourceOrderID: &sourceOrderID,
		TargetOrderID: targetOrderID,
		Quantity:      5,
	})

	require.Error(t, err)
	ise, ok := apperrors.IsInsufficientStockError(err)
	require.True(t, ok, "expected InsufficientStockError, got %T", err)
	assert.Equal(t, 5, ise.Requested)
	assert.Equal(t, 1, ise.Found)

	// No partial move is ever visible
	assert.Equal(t, 1, countItems(t, db, domain.StatusInStock, &sourceOrderID))
	assert.Equal(t, 0, countItems(t, db, domain.StatusInStock, &targetOrderID))
	assert.Equal(t, 1, countItems(t, db, domain.StatusAwaitingProduction, &targetOrderID))
}

func TestReallocate_Integration_BackorderClearingIsBounded(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	sourceOrderID := "abc123def"
	targetOrderID := "xyz999aaa"
	for i := 0; i < 2; i++ {
		insertStockItem(t, db, "prod-1", "embroidered", domain.StatusInStock, &sourceOrderID, `{}`)
	}
	for i := 0; i < 5; i++ {
		insertStockItem(t, db, "prod-1", "embroidered", domain.StatusAwaitingProduction, &targetOrderID, `{}`)
	}

	svc := newIntegrationService(db)

	result, err := svc.Reallocate(context.Background(), dto.ReallocationCommand{
		ProductID:     "prod-1",
		LogoType:      "embroidered",
		SourceOrderID: &sourceOrderID,
		TargetOrderID: targetOrderID,
		Quantity:      2,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Moved)
	assert.Equal(t, 2, result.BackordersCleared)
	// 3 placeholders remain, 2 real units arrived
	assert.Equal(t, 3, countItems(t, db, domain.StatusAwaitingProduction, &targetOrderID))
	assert.Equal(t, 2, countItems(t, db, domain.StatusInStock, &targetOrderID))
}

func TestReallocate_Integration_VariantMismatchNotTouched(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	sourceOrderID := "abc123def"
	targetOrderID := "xyz999aaa"
	insertStockItem(t, db, "prod-1", "embroidered", domain.StatusInStock, &sourceOrderID, `{}`)
	insertStockItem(t, db, "prod-1", "printed", domain.StatusInStock, &sourceOrderID, `{}`)

	svc := newIntegrationService(db)

	_, err := svc.Reallocate(context.Background(), dto.ReallocationCommand{
		ProductID:     "prod-1",
		LogoType:      "embroidered",
		SourceOrderID: &sourceOrderID,
		TargetOrderID: targetOrderID,
		Quantity:      2,
	})

	require.Error(t, err)
	_, ok := apperrors.IsInsufficientStockError(err)
	assert.True(t, ok, "expected InsufficientStockError, got %T", err)

	// The other variant stays put
	assert.Equal(t, 2, countItems(t, db, domain.StatusInStock, &sourceOrderID))
}
