package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type MySQLAvailabilityRepository struct {
	db *sql.DB
}

func NewMySQLAvailabilityRepository(db *sql.DB) *MySQLAvailabilityRepository {
	return &MySQLAvailabilityRepository{db: db}
}

// CountByStatus returns the number of stock items per status for one
// product/variant and owning order. orderID nil counts general stock.
func (r *MySQLAvailabilityRepository) CountByStatus(ctx context.Context, productID, logoType string, orderID *string) (map[string]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM StockItems
		WHERE productId = ?
		  AND logoType = ?
		  AND orderId <=> ?
		GROUP BY status
	`

	rows, err := r.db.QueryContext(ctx, query, productID, logoType, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying stock counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scanning stock count row: %w", err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stock count rows: %w", err)
	}

	return counts, nil
}
