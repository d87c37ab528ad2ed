package dashboard

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"inventory-dashboard/internal/models"
)

// All is the category selection that applies no filter.
const All = "All"

// Categories returns All followed by the distinct categories of items in the
// order they first appear. An item whose category is literally "All" does not
// add a second sentinel.
func Categories(items []models.Item) []string {
	out := make([]string, 0, len(items)+1)
	out = append(out, All)
	seen := make(map[string]struct{}, len(items)+1)
	seen[All] = struct{}{}
	for _, it := range items {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	return out
}

// Filter returns the items visible under selection. All returns items
// unchanged; any other value keeps the items whose category is exactly equal,
// in their original order.
func Filter(items []models.Item, selection string) []models.Item {
	if selection == All {
		return items
	}
	out := make([]models.Item, 0, len(items))
	for _, it := range items {
		if it.Category == selection {
			out = append(out, it)
		}
	}
	return out
}

// View holds the state of one inventory screen and the current category selection.
// It is not safe for concurrent use.
type View struct {
	state    State
	selected string
	log      zerolog.Logger
}

// NewView returns a view in the Loading state with All selected.
func NewView(logger zerolog.Logger) *View {
	return &View{
		state:    Loading{},
		selected: All,
		log:      logger,
	}
}

// State returns the current lifecycle state.
func (v *View) State() State {
	return v.state
}

// Load fetches the collection once and resolves the view. A view that is
// already Ready is left untouched and no request is made.
func (v *View) Load(ctx context.Context, src Fetcher) {
	if _, ok := v.state.(Ready); ok {
		return
	}
	items, err := src.Fetch(ctx)
	v.Resolve(items, err)
}

// Resolve moves the view to Ready with the outcome of a fetch. Errors are
// logged and kept on the state, never returned. Only the first call has an effect.
func (v *View) Resolve(items []models.Item, err error) {
	if _, ok := v.state.(Ready); ok {
		return
	}
	if err != nil {
		ev := v.log.Error().Err(err)
		var se *StatusError
		if errors.As(err, &se) {
			ev = ev.Int("status", se.Code)
		}
		ev.Msg("Error fetching inventory")
		v.state = Ready{Items: []models.Item{}, Err: err}
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	v.log.Debug().Int("items", len(items)).Msg("inventory loaded")
	v.state = Ready{Items: items}
}

// Items returns the held collection, empty while loading.
func (v *View) Items() []models.Item {
	if r, ok := v.state.(Ready); ok {
		return r.Items
	}
	return nil
}

// Err returns the load error, if any.
func (v *View) Err() error {
	if r, ok := v.state.(Ready); ok {
		return r.Err
	}
	return nil
}

// Categories derives the selectable categories from the held collection.
func (v *View) Categories() []string {
	return Categories(v.Items())
}

// Selected returns the current category selection.
func (v *View) Selected() string {
	return v.selected
}

// Select changes the category selection.
func (v *View) Select(category string) {
	v.selected = category
}

// Visible returns the filtered subset for the current selection.
func (v *View) Visible() []models.Item {
	return Filter(v.Items(), v.selected)
}

// Table builds the rendered table for the current selection.
func (v *View) Table() Table {
	return BuildTable(v.Visible())
}
