package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"inventory-dashboard/internal/dashboard"
	"inventory-dashboard/internal/models"
)

// loadedMsg carries the outcome of the one inventory fetch.
type loadedMsg struct {
	items []models.Item
	err   error
}

// Model is the bubbletea model of the inventory viewer. It owns a
// dashboard.View and drives its single Loading to Ready transition from
// the fetch command issued by Init.
type Model struct {
	ctx     context.Context
	fetcher dashboard.Fetcher
	view    *dashboard.View
	keys    KeyMap
	theme   Theme

	// Terminal dimensions (set by WindowSizeMsg). Zero height draws every row.
	width  int
	height int

	// offset is the index of the first table row on screen.
	offset int
}

// NewModel creates a viewer that will load from fetcher once started.
func NewModel(ctx context.Context, view *dashboard.View, fetcher dashboard.Fetcher) Model {
	return Model{
		ctx:     ctx,
		fetcher: fetcher,
		view:    view,
		keys:    DefaultKeyMap,
		theme:   DefaultTheme,
	}
}

// Dashboard returns the dashboard state the model renders.
func (model Model) Dashboard() *dashboard.View {
	return model.view
}

// Init implements tea.Model. Issues the inventory fetch.
func (model Model) Init() tea.Cmd {
	if _, ready := model.view.State().(dashboard.Ready); ready {
		return nil
	}
	return fetchInventory(model.ctx, model.fetcher)
}

// fetchInventory returns a tea.Cmd that performs the fetch off the UI loop.
func fetchInventory(ctx context.Context, fetcher dashboard.Fetcher) tea.Cmd {
	return func() tea.Msg {
		items, err := fetcher.Fetch(ctx)
		return loadedMsg{items: items, err: err}
	}
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case loadedMsg:
		model.view.Resolve(message.items, message.err)
		model.offset = 0

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.clampOffset()

	case tea.KeyMsg:
		switch {
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit

		case key.Matches(message, model.keys.NextCategory):
			model.cycleCategory(1)

		case key.Matches(message, model.keys.PreviousCategory):
			model.cycleCategory(-1)

		case key.Matches(message, model.keys.ScrollDown):
			model.offset++
			model.clampOffset()

		case key.Matches(message, model.keys.ScrollUp):
			model.offset--
			model.clampOffset()
		}
	}
	return model, nil
}

// cycleCategory moves the selection through the derived categories,
// wrapping at either end. Does nothing while loading.
func (model *Model) cycleCategory(step int) {
	if _, ready := model.view.State().(dashboard.Ready); !ready {
		return
	}
	categories := model.view.Categories()
	current := 0
	for i, c := range categories {
		if c == model.view.Selected() {
			current = i
			break
		}
	}
	next := (current + step + len(categories)) % len(categories)
	model.view.Select(categories[next])
	model.offset = 0
}

// clampOffset keeps the scroll offset within the visible rows.
func (model *Model) clampOffset() {
	maxOffset := len(model.view.Visible()) - model.bodyRows()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if model.offset > maxOffset {
		model.offset = maxOffset
	}
	if model.offset < 0 {
		model.offset = 0
	}
}

// bodyRows is how many table rows fit on screen, or every row when the
// height is unknown.
func (model Model) bodyRows() int {
	if model.height <= 0 {
		return len(model.view.Visible())
	}
	rows := model.height - chromeLines(model.view)
	if rows < 1 {
		rows = 1
	}
	return rows
}

// View implements tea.Model.
func (model Model) View() string {
	if _, ready := model.view.State().(dashboard.Ready); !ready {
		return dashboard.LoadingText
	}
	return render(model.view, model.theme, renderOptions{
		width:  model.width,
		offset: model.offset,
		rows:   model.bodyRows(),
		help:   model.keys.helpBindings(),
	})
}
