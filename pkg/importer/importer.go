package importer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"inventory-dashboard/internal/models"
)

// maxSamples bounds how many row errors a summary keeps.
const maxSamples = 50

// Source loads the full inventory collection.
type Source interface {
	Load(ctx context.Context) ([]models.Item, LoadSummary, error)
}

// RowError describes a record that was skipped.
type RowError struct {
	Source  string `json:"source"`
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// LoadSummary contains the statistics of one load.
type LoadSummary struct {
	Source  string     `json:"source"`
	Loaded  int        `json:"loaded"`
	Skipped int        `json:"skipped"`
	Samples []RowError `json:"error_samples,omitempty"`
}

func (s *LoadSummary) skip(row int, msg string) {
	s.Skipped++
	if len(s.Samples) < maxSamples {
		s.Samples = append(s.Samples, RowError{Source: s.Source, Row: row, Message: msg})
	}
}

// Source kinds accepted by Open.
const (
	KindCSV      = "csv"
	KindXLSX     = "xlsx"
	KindPostgres = "postgres"
)

// Options configures a source.
type Options struct {
	Kind        string
	Path        string
	MappingPath string // optional YAML header mapping
	Workers     int    // CSV only; default 4
	DatabaseURL string
	Table       string
	Logger      zerolog.Logger
}

// Open builds the source named by opts.Kind. The returned close function
// releases whatever the source holds and is always safe to call.
func Open(ctx context.Context, opts Options) (Source, func(), error) {
	noop := func() {}
	switch opts.Kind {
	case KindCSV, "":
		return NewCSVSource(opts), noop, nil
	case KindXLSX:
		return NewXLSXSource(opts), noop, nil
	case KindPostgres:
		pool, err := pgxpool.New(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create pgxpool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("database ping failed: %w", err)
		}
		table := opts.Table
		if table == "" {
			table = "inventory"
		}
		return NewPostgresSource(pool, table), pool.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown source kind %q", opts.Kind)
	}
}

func (o *Options) setDefaults() {
	if o.Workers < 1 {
		o.Workers = 4
	}
}

// field indexes a record's column positions by item field.
type field int

const (
	fieldID field = iota
	fieldSKU
	fieldProductName
	fieldCategory
	fieldStock
	fieldPrice
	fieldLastUpdated
	numFields
)

var fieldNames = [numFields]string{
	"id", "sku", "product_name", "category", "stock", "price", "last_updated",
}

// columnIndex maps every field to a column position.
type columnIndex [numFields]int

// positional is the column layout of inventory.csv: id, sku, product_name,
// category, stock, price, last_updated.
var positional = columnIndex{0, 1, 2, 3, 4, 5, 6}

func (c columnIndex) width() int {
	w := 0
	for _, i := range c {
		if i+1 > w {
			w = i + 1
		}
	}
	return w
}

// parseRecord converts one record to an item.
func parseRecord(record []string, cols columnIndex) (models.Item, error) {
	if len(record) < cols.width() {
		return models.Item{}, fmt.Errorf("insufficient fields: got %d, want %d", len(record), cols.width())
	}
	get := func(f field) string {
		return strings.TrimSpace(record[cols[f]])
	}

	id, err := strconv.Atoi(get(fieldID))
	if err != nil {
		return models.Item{}, fmt.Errorf("invalid ID: %w", err)
	}

	stock, err := strconv.Atoi(get(fieldStock))
	if err != nil {
		return models.Item{}, fmt.Errorf("invalid stock: %w", err)
	}
	if stock < 0 {
		return models.Item{}, fmt.Errorf("invalid stock: %d is negative", stock)
	}

	price, err := strconv.ParseFloat(get(fieldPrice), 64)
	if err != nil {
		return models.Item{}, fmt.Errorf("invalid price: %w", err)
	}
	if price < 0 {
		return models.Item{}, fmt.Errorf("invalid price: %v is negative", price)
	}

	return models.Item{
		ID:          id,
		SKU:         get(fieldSKU),
		ProductName: get(fieldProductName),
		Category:    get(fieldCategory),
		Stock:       stock,
		Price:       price,
		LastUpdated: get(fieldLastUpdated),
	}, nil
}

// dedupe drops items whose id was already seen, keeping the first.
func dedupe(items []models.Item, rows []int, summary *LoadSummary) []models.Item {
	seen := make(map[int]struct{}, len(items))
	out := items[:0]
	for i, it := range items {
		if _, ok := seen[it.ID]; ok {
			summary.skip(rows[i], fmt.Sprintf("duplicate id %d", it.ID))
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}
