package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB configura una base de datos de prueba
// Espera que exista una BD MySQL en localhost:3306 llamada 'radagast_test'
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/radagast_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Verify connection
	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB limpia la BD de prueba
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	_, err := db.Exec("DELETE FROM StockItems")
	if err != nil {
		t.Logf("failed to clean table StockItems: %v", err)
	}

	db.Close()
}

// SetupTestTables crea las tablas necesarias para los tests
func SetupTestTables(t *testing.T, db *sql.DB) {
	createStockItemsTable := `
	CREATE TABLE IF NOT EXISTS StockItems (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		publicId CHAR(36) NOT NULL,
		productId VARCHAR(64) NOT NULL,
		logoType VARCHAR(64) NOT NULL,
		status VARCHAR(32) NOT NULL,
		orderId VARCHAR(64),
		clientName VARCHAR(255) NOT NULL DEFAULT '',
		deliveryDeadline DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		reallocatedFrom VARCHAR(255) NOT NULL DEFAULT '',
		creationDate DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		attributes JSON NOT NULL,
		INDEX idx_lookup (productId, logoType, status, orderId),
		INDEX idx_order (orderId)
	)`

	_, err := db.Exec(createStockItemsTable)
	if err != nil {
		t.Logf("failed to create table StockItems: %v", err)
	}
}
