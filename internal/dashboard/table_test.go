package dashboard

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"inventory-dashboard/internal/models"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{19.5, "$19.50"},
		{0, "$0.00"},
		{9.99, "$9.99"},
		{3.5, "$3.50"},
		{1.0, "$1.00"},
		{1234.5678, "$1234.57"},
		{0.1 + 0.2, "$0.30"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(tt.price))
		})
	}
}

func TestStockCell(t *testing.T) {
	assert.Equal(t, "Out of Stock", StockCell(0))
	for _, n := range []int{1, 2, 5, 42, 100000} {
		assert.Equal(t, strconv.Itoa(n), StockCell(n))
	}
}

func TestFormatRow(t *testing.T) {
	row := FormatRow(models.Item{
		ID: 12, SKU: "SKU-12", ProductName: "Drill", Category: "Tools",
		Price: 19.5, Stock: 0, LastUpdated: "yesterday",
	})

	assert.Equal(t, []string{"12", "SKU-12", "Drill", "Tools", "$19.50", "Out of Stock", "yesterday"}, row.Cells())
	assert.True(t, row.OutOfStock)
	assert.Len(t, row.Cells(), len(Columns))
}

func TestBuildTable(t *testing.T) {
	table := BuildTable(scenarioItems())

	assert.False(t, table.Empty())
	ids := make([]string, 0, len(table.Rows))
	for _, r := range table.Rows {
		ids = append(ids, r.ID)
		if r.OutOfStock {
			assert.Equal(t, OutOfStockText, r.Stock)
		} else {
			assert.NotEqual(t, "0", r.Stock)
		}
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestBuildTableEmpty(t *testing.T) {
	assert.True(t, BuildTable(nil).Empty())
	assert.True(t, BuildTable([]models.Item{}).Empty())
}

func TestColumnsOrder(t *testing.T) {
	assert.Equal(t, []string{"ID", "SKU", "Product Name", "Category", "Price", "Stock", "Last Updated"}, Columns)
}
