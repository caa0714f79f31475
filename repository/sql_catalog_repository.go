package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopsmart/models"
)

// ProductsSchema creates the products table. It is valid for both
// PostgreSQL and SQLite.
const ProductsSchema = `
	CREATE TABLE IF NOT EXISTS products (
		position    INTEGER NOT NULL,
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		category    TEXT NOT NULL,
		tags        TEXT NOT NULL DEFAULT '[]',
		price       NUMERIC(12, 2) NOT NULL,
		rating      REAL NOT NULL DEFAULT 0,
		stock       INTEGER NOT NULL DEFAULT 0,
		is_new      BOOLEAN NOT NULL DEFAULT FALSE,
		created_at  TEXT NOT NULL DEFAULT '',
		description TEXT,
		accent      TEXT
	)
`

// legacyTagSeparator joins tags in rows written before the tags column held
// a JSON array.
const legacyTagSeparator = ","

// SQLCatalogRepository handles database operations for the product catalog.
type SQLCatalogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLCatalogRepository creates a new SQLCatalogRepository
func NewSQLCatalogRepository(db *sql.DB, logger *zap.Logger) *SQLCatalogRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLCatalogRepository{db: db, logger: logger}
}

// Ensure SQLCatalogRepository implements the catalog interfaces
var (
	_ CatalogRepositoryInterface = (*SQLCatalogRepository)(nil)
	_ CatalogWriterInterface     = (*SQLCatalogRepository)(nil)
)

// EnsureSchema creates the products table when missing.
func (r *SQLCatalogRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, ProductsSchema); err != nil {
		return fmt.Errorf("failed to create products table: %w", err)
	}
	return nil
}

// LoadProducts retrieves every product ordered by catalog position.
func (r *SQLCatalogRepository) LoadProducts(ctx context.Context) ([]models.Product, error) {
	query := `
		SELECT
			id,
			name,
			category,
			tags,
			price,
			rating,
			stock,
			is_new,
			created_at,
			COALESCE(description, '') AS description,
			COALESCE(accent, '') AS accent
		FROM products
		ORDER BY position ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("❌ Error querying products", zap.Error(err))
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		var tags, createdAt string
		var price decimal.Decimal

		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Category,
			&tags,
			&price,
			&p.Rating,
			&p.Stock,
			&p.IsNew,
			&createdAt,
			&p.Description,
			&p.Accent,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		p.Price = price
		if p.Tags, err = decodeTags(tags); err != nil {
			return nil, fmt.Errorf("product %q: %w", p.ID, err)
		}
		if p.CreatedAt, err = ParseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("product %q: %w", p.ID, err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	r.logger.Info("✓ Products loaded from database", zap.Int("products", len(products)))
	return products, nil
}

// ReplaceProducts swaps the whole table contents for products in one transaction.
func (r *SQLCatalogRepository) ReplaceProducts(ctx context.Context, products []models.Product) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}

	insert := `
		INSERT INTO products
			(position, id, name, category, tags, price, rating, stock, is_new, created_at, description, accent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	for i, p := range products {
		createdAt := ""
		if !p.CreatedAt.IsZero() {
			createdAt = p.CreatedAt.UTC().Format(time.RFC3339Nano)
		}
		var tags string
		if tags, err = encodeTags(p.Tags); err != nil {
			return fmt.Errorf("product %q: %w", p.ID, err)
		}
		if _, err = tx.ExecContext(ctx, insert,
			i,
			p.ID,
			p.Name,
			p.Category,
			tags,
			p.Price.String(),
			p.Rating,
			p.Stock,
			p.IsNew,
			createdAt,
			p.Description,
			p.Accent,
		); err != nil {
			return fmt.Errorf("failed to insert product %q: %w", p.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit products: %w", err)
	}
	r.logger.Info("💾 Products replaced in database", zap.Int("products", len(products)))
	return nil
}

// encodeTags stores tags as a JSON array so any character survives.
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(data), nil
}

// decodeTags reads a JSON array, falling back to comma-separated text for
// rows maintained by hand.
func decodeTags(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	tags := []string{}
	if strings.HasPrefix(s, "[") {
		if err := json.Unmarshal([]byte(s), &tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags: %w", err)
		}
		if tags == nil {
			tags = []string{}
		}
		return tags, nil
	}
	for _, tag := range strings.Split(s, legacyTagSeparator) {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}
