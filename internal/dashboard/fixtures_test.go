package dashboard

import (
	"context"

	"github.com/rs/zerolog"

	"inventory-dashboard/internal/models"
)

// scenarioItems is the three-item collection used across the view tests.
func scenarioItems() []models.Item {
	return []models.Item{
		{ID: 1, SKU: "A1", ProductName: "Hammer", Category: "Tools", Stock: 0, Price: 9.99, LastUpdated: "2024-01-01"},
		{ID: 2, SKU: "B2", ProductName: "Wrench", Category: "Tools", Stock: 5, Price: 3.5, LastUpdated: "2024-01-02"},
		{ID: 3, SKU: "C3", ProductName: "Bolt", Category: "Parts", Stock: 2, Price: 1.0, LastUpdated: "2024-01-03"},
	}
}

func collections() map[string][]models.Item {
	return map[string][]models.Item{
		"nil":      nil,
		"empty":    {},
		"scenario": scenarioItems(),
		"single":   {{ID: 7, SKU: "Z9", Category: "Misc", Stock: 1, Price: 2}},
		"case and blanks": {
			{ID: 1, Category: "tools"},
			{ID: 2, Category: "Tools"},
			{ID: 3, Category: ""},
			{ID: 4, Category: "tools"},
			{ID: 5, Category: "All"},
		},
		"interleaved": {
			{ID: 10, Category: "B"},
			{ID: 11, Category: "A"},
			{ID: 12, Category: "B"},
			{ID: 13, Category: "C"},
			{ID: 14, Category: "A"},
			{ID: 15, Category: "C"},
		},
	}
}

type fakeFetcher struct {
	items []models.Item
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(ctx context.Context) ([]models.Item, error) {
	f.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.items, f.err
}

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}
