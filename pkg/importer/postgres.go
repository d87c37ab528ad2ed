package importer

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"inventory-dashboard/internal/models"
)

// PostgresSource reads inventory from a table with the columns
// id, sku, product_name, category, stock, price, last_updated.
type PostgresSource struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresSource wraps an existing pool. table may be schema-qualified
// only through search_path; it is quoted as a single identifier.
func NewPostgresSource(pool *pgxpool.Pool, table string) *PostgresSource {
	return &PostgresSource{pool: pool, table: table}
}

// selectQuery builds the one query the source issues.
func selectQuery(table string) string {
	return fmt.Sprintf(`
		SELECT id, COALESCE(sku, ''), COALESCE(product_name, ''), COALESCE(category, ''),
		       stock, price::float8, COALESCE(last_updated::text, '')
		FROM %s
		ORDER BY id`, pq.QuoteIdentifier(table))
}

func (s *PostgresSource) Load(ctx context.Context) ([]models.Item, LoadSummary, error) {
	summary := LoadSummary{Source: "postgres:" + s.table}

	rows, err := s.pool.Query(ctx, selectQuery(s.table))
	if err != nil {
		return nil, summary, fmt.Errorf("query inventory: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(
			&it.ID, &it.SKU, &it.ProductName, &it.Category, &it.Stock, &it.Price, &it.LastUpdated,
		); err != nil {
			return nil, summary, fmt.Errorf("scan inventory row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, summary, fmt.Errorf("read inventory rows: %w", err)
	}

	summary.Loaded = len(items)
	return items, summary, nil
}
