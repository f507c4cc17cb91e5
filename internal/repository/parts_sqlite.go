package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"terreins-inventory-api/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLitePartRepository implements PartRepository using SQLite.
// The sales log and stock history are stored as JSON columns; the seq
// column preserves insertion order for the date-added tie break.
type SQLitePartRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLitePartRepository creates a new SQLite part repository.
// dbPath is the path to the SQLite database file (e.g., "./data/parts.db")
func NewSQLitePartRepository(dbPath string) (*SQLitePartRepository, error) {
	// Open with WAL mode and other optimizations
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite connection pool settings
	db.SetMaxOpenConns(1) // SQLite only supports 1 writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createPartsTable(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLitePartRepository] Initialized with database: %s", dbPath)
	return &SQLitePartRepository{db: db}, nil
}

// createPartsTable creates the parts table.
func createPartsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS parts (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		sku TEXT NOT NULL,
		category TEXT NOT NULL,
		stock INTEGER NOT NULL,
		price REAL NOT NULL,
		description TEXT NOT NULL,
		image_url TEXT NOT NULL,
		date_added DATETIME NOT NULL,
		sales_log TEXT NOT NULL,
		stock_history TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_parts_date_added ON parts(date_added);
	CREATE INDEX IF NOT EXISTS idx_parts_category ON parts(category);
	`
	_, err := db.Exec(query)
	return err
}

// encodeLog marshals a sales log or stock history slice for storage.
func encodeLog(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode log column: %w", err)
	}
	return string(data), nil
}

func decodeSalesLog(s string) ([]model.SaleEntry, error) {
	var out []model.SaleEntry
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("failed to decode sales log: %w", err)
	}
	return out, nil
}

func decodeStockHistory(s string) ([]model.StockEntry, error) {
	var out []model.StockEntry
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("failed to decode stock history: %w", err)
	}
	return out, nil
}

func scanPartRows(rows *sql.Rows) ([]model.Part, error) {
	var parts []model.Part
	for rows.Next() {
		var p model.Part
		var salesJSON, historyJSON string
		err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.Stock, &p.Price,
			&p.Description, &p.ImageURL, &p.DateAdded, &salesJSON, &historyJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to scan part row: %w", err)
		}
		if p.SalesLog, err = decodeSalesLog(salesJSON); err != nil {
			return nil, err
		}
		if p.StockHistory, err = decodeStockHistory(historyJSON); err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}

const partColumns = `id, name, sku, category, stock, price, description, image_url, date_added, sales_log, stock_history`

// List returns all parts ordered by date added descending, newest insertion first on ties.
func (r *SQLitePartRepository) List(ctx context.Context) ([]model.Part, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT ` + partColumns + ` FROM parts ORDER BY date_added DESC, seq DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}
	defer rows.Close()

	return scanPartRows(rows)
}

// Get retrieves a part by id, or nil if absent.
func (r *SQLitePartRepository) Get(ctx context.Context, id string) (*model.Part, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

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

// Upsert inserts or replaces a part by id. Updates keep the original seq
// so insertion order survives for the ordering tie break.
func (r *SQLitePartRepository) Upsert(ctx context.Context, part model.Part) error {
	r.mu.Lock()
	defer r.mu.Unlock()

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
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			sku = excluded.sku,
			category = excluded.category,
			stock = excluded.stock,
			price = excluded.price,
			description = excluded.description,
			image_url = excluded.image_url,
			date_added = excluded.date_added,
			sales_log = excluded.sales_log,
			stock_history = excluded.stock_history`

	_, err = r.db.ExecContext(ctx, query, part.ID, part.Name, part.SKU, string(part.Category),
		part.Stock, part.Price, part.Description, part.ImageURL, part.DateAdded, salesJSON, historyJSON)
	if err != nil {
		return fmt.Errorf("failed to upsert part: %w", err)
	}
	return nil
}

// Delete removes a part by id. Absence is not an error.
func (r *SQLitePartRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

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
func (r *SQLitePartRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

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

	// Database file size (approximate from page count)
	var pageCount, pageSize int64
	r.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount)
	r.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize)
	stats["db_size_bytes"] = pageCount * pageSize

	return stats, nil
}

// Close closes the database connection.
func (r *SQLitePartRepository) Close() error {
	return r.db.Close()
}

// Ensure SQLitePartRepository implements PartRepository
var _ PartRepository = (*SQLitePartRepository)(nil)
