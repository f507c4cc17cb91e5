package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"terreins-inventory-api/internal/model"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLPartRepository implements PartRepository using MySQL.
type MySQLPartRepository struct {
	db *sql.DB
}

// NewMySQLPartRepository opens a MySQL connection and prepares the schema.
// The DSN must include parseTime=true so DATETIME columns scan into time.Time.
func NewMySQLPartRepository(dsn string) (*MySQLPartRepository, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS parts (
		seq BIGINT AUTO_INCREMENT PRIMARY KEY,
		id VARCHAR(64) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		sku VARCHAR(64) NOT NULL,
		category VARCHAR(32) NOT NULL,
		stock INT NOT NULL,
		price DOUBLE NOT NULL,
		description TEXT NOT NULL,
		image_url TEXT NOT NULL,
		date_added DATETIME(3) NOT NULL,
		sales_log JSON NOT NULL,
		stock_history JSON NOT NULL,
		INDEX idx_parts_date_added (date_added),
		INDEX idx_parts_category (category)
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[MySQLPartRepository] Initialized")
	return &MySQLPartRepository{db: db}, nil
}

// List returns all parts ordered by date added descending, newest insertion first on ties.
func (r *MySQLPartRepository) List(ctx context.Context) ([]model.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts ORDER BY date_added DESC, seq DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}
	defer rows.Close()

	return scanPartRows(rows)
}

// Get retrieves a part by id, or nil if absent.
func (r *MySQLPartRepository) Get(ctx context.Context, id string) (*model.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE id = ?`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get part: %w", err)
	}
	defer rows.Close()

	parts, err := scanPartRows(rows)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, nil
	}
	return &parts[0], nil
}

// Upsert inserts or replaces a part by id. ON DUPLICATE KEY keeps the
// original seq, preserving insertion order for the ordering tie break.
func (r *MySQLPartRepository) Upsert(ctx context.Context, part model.Part) error {
	salesJSON, err := encodeLog(part.SalesLog)
	if err != nil {
		return err
	}
	historyJSON, err := encodeLog(part.StockHistory)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO parts (id, name, sku, category, stock, price, description, image_url, date_added, sales_log, stock_history)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			name = VALUES(name),
			sku = VALUES(sku),
			category = VALUES(category),
			stock = VALUES(stock),
			price = VALUES(price),
			description = VALUES(description),
			image_url = VALUES(image_url),
			date_added = VALUES(date_added),
			sales_log = VALUES(sales_log),
			stock_history = VALUES(stock_history)`

	_, err = r.db.ExecContext(ctx, query, part.ID, part.Name, part.SKU, string(part.Category),
		part.Stock, part.Price, part.Description, part.ImageURL, part.DateAdded, salesJSON, historyJSON)
	if err != nil {
		return fmt.Errorf("failed to upsert part: %w", err)
	}
	return nil
}

// Delete removes a part by id. Absence is not an error.
func (r *MySQLPartRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM parts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete part: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Stats returns statistics about the parts database.
func (r *MySQLPartRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM parts").Scan(&count); err != nil {
		return nil, err
	}
	stats["total_parts"] = count

	var outOfStock int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM parts WHERE stock = 0").Scan(&outOfStock); err == nil {
		stats["out_of_stock"] = outOfStock
	}

	var lastAdded sql.NullTime
	if err := r.db.QueryRowContext(ctx, "SELECT MAX(date_added) FROM parts").Scan(&lastAdded); err == nil && lastAdded.Valid {
		stats["last_part_added"] = lastAdded.Time
	}

	return stats, nil
}

// Close closes the database connection.
func (r *MySQLPartRepository) Close() error {
	return r.db.Close()
}

// Ensure MySQLPartRepository implements PartRepository
var _ PartRepository = (*MySQLPartRepository)(nil)
