package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"radagast/internal/domain"
	"radagast/internal/errors"
)

type MySQLStockItemRepository struct {
	db *sql.DB
}

func NewMySQLStockItemRepository(db *sql.DB) *MySQLStockItemRepository {
	return &MySQLStockItemRepository{db: db}
}

// FindForUpdate selects up to limit stock items matching the product,
// variant, status and owning order, locking the rows for the duration of
// the transaction. orderID nil matches general stock (NULL orderId).
func (r *MySQLStockItemRepository) FindForUpdate(
	ctx context.Context,
	tx *sql.Tx,
	productID string,
	logoType string,
	status string,
	orderID *string,
	limit int,
) ([]domain.StockItem, error) {
	query := `
		SELECT id, publicId, productId, logoType, status, orderId, clientName,
		       deliveryDeadline, reallocatedFrom, creationDate, attributes
		FROM StockItems
		WHERE productId = ?
		  AND logoType = ?
		  AND status = ?
		  AND orderId <=> ?
		ORDER BY id
		LIMIT ?
		FOR UPDATE
	`

	rows, err := tx.QueryContext(ctx, query, productID, logoType, status, orderID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying stock items for update: %w", err)
	}
	defer rows.Close()

	var items []domain.StockItem
	for rows.Next() {
		var item domain.StockItem
		var rowOrderID sql.NullString
		err := rows.Scan(
			&item.ID, &item.PublicID, &item.ProductID, &item.LogoType, &item.Status,
			&rowOrderID, &item.ClientName, &item.DeliveryDeadline,
			&item.ReallocatedFrom, &item.CreationDate, &item.Attributes,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning stock item row: %w", err)
		}
		if rowOrderID.Valid {
			item.OrderID = &rowOrderID.String
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stock item rows: %w", err)
	}

	return items, nil
}

// Insert creates a new stock item and returns the store-assigned id. The
// publicId is generated here when the caller leaves it empty.
func (r *MySQLStockItemRepository) Insert(ctx context.Context, tx *sql.Tx, item domain.StockItem) (uint, error) {
	if item.PublicID == "" {
		item.PublicID = uuid.New().String()
	}

	attributes := item.Attributes
	if len(attributes) == 0 {
		attributes = []byte("{}")
	}

	query := `
		INSERT INTO StockItems
			(publicId, productId, logoType, status, orderId, clientName,
			 deliveryDeadline, reallocatedFrom, creationDate, attributes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		item.PublicID, item.ProductID, item.LogoType, item.Status, item.OrderID,
		item.ClientName, item.DeliveryDeadline, item.ReallocatedFrom,
		item.CreationDate, []byte(attributes),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting stock item: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLStockItemRepository) Delete(ctx context.Context, tx *sql.Tx, id uint) error {
	query := `DELETE FROM StockItems WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting stock item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("stock item with id %d not found", id))
	}

	return nil
}
