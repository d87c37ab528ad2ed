package dashboard

import (
	"strconv"

	"github.com/shopspring/decimal"

	"inventory-dashboard/internal/models"
)

// Display strings shared by every renderer.
const (
	Title          = "Inventory Dashboard"
	LoadingText    = "Loading inventory..."
	FilterLabel    = "Filter by Category:"
	Placeholder    = "No items found."
	OutOfStockText = "Out of Stock"
	LoadErrorText  = "Could not load inventory"
)

// Columns is the fixed column order of the inventory table.
var Columns = []string{"ID", "SKU", "Product Name", "Category", "Price", "Stock", "Last Updated"}

// Row is one item formatted for display.
type Row struct {
	ID          string
	SKU         string
	ProductName string
	Category    string
	Price       string
	Stock       string
	LastUpdated string
	OutOfStock  bool
}

// Cells returns the row's values in Columns order.
func (r Row) Cells() []string {
	return []string{r.ID, r.SKU, r.ProductName, r.Category, r.Price, r.Stock, r.LastUpdated}
}

// Table is the rendered form of a filtered subset. An empty table is drawn as
// a single placeholder row spanning every column.
type Table struct {
	Rows []Row
}

// Empty reports whether the placeholder row should be drawn instead of data rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// BuildTable formats items in order.
func BuildTable(items []models.Item) Table {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, FormatRow(it))
	}
	return Table{Rows: rows}
}

// FormatRow applies the per-cell display rules to a single item.
func FormatRow(it models.Item) Row {
	return Row{
		ID:          strconv.Itoa(it.ID),
		SKU:         it.SKU,
		ProductName: it.ProductName,
		Category:    it.Category,
		Price:       FormatPrice(it.Price),
		Stock:       StockCell(it.Stock),
		LastUpdated: it.LastUpdated,
		OutOfStock:  it.OutOfStock(),
	}
}

// FormatPrice renders a price as dollars with exactly two decimals.
func FormatPrice(price float64) string {
	return "$" + decimal.NewFromFloat(price).StringFixed(2)
}

// StockCell renders the stock column: the label for zero, the integer otherwise.
func StockCell(stock int) string {
	if stock == 0 {
		return OutOfStockText
	}
	return strconv.Itoa(stock)
}
