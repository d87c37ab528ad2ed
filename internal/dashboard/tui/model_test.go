package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-dashboard/internal/dashboard"
	"inventory-dashboard/internal/models"
)

type stubFetcher struct {
	items []models.Item
	err   error
	calls int
}

func (f *stubFetcher) Fetch(context.Context) ([]models.Item, error) {
	f.calls++
	return f.items, f.err
}

// testItems has two categories, one out-of-stock item in each.
func testItems() []models.Item {
	return []models.Item{
		{ID: 1, SKU: "HW-001", ProductName: "Hammer", Category: "Tools", Price: 19.5, Stock: 12, LastUpdated: "2024-05-01"},
		{ID: 2, SKU: "HW-002", ProductName: "Wrench", Category: "Tools", Price: 7, Stock: 0, LastUpdated: "2024-05-02"},
		{ID: 3, SKU: "GD-001", ProductName: "Trowel", Category: "Garden", Price: 4.25, Stock: 0, LastUpdated: "2024-05-03"},
		{ID: 4, SKU: "GD-002", ProductName: "Rake", Category: "Garden", Price: 22, Stock: 3, LastUpdated: "2024-05-04"},
	}
}

// loadedModel runs Init's fetch command and feeds its message back.
func loadedModel(t *testing.T, fetcher dashboard.Fetcher) Model {
	t.Helper()
	model := NewModel(context.Background(), dashboard.NewView(zerolog.Nop()), fetcher)
	cmd := model.Init()
	require.NotNil(t, cmd)
	updated, _ := model.Update(cmd())
	return updated.(Model)
}

func sendKey(model Model, runes string) Model {
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(runes)})
	return updated.(Model)
}

func TestModelShowsLoadingBeforeFetch(t *testing.T) {
	model := NewModel(context.Background(), dashboard.NewView(zerolog.Nop()), &stubFetcher{})
	assert.Equal(t, dashboard.LoadingText, model.View())
}

func TestModelRendersTableAfterLoad(t *testing.T) {
	fetcher := &stubFetcher{items: testItems()}
	model := loadedModel(t, fetcher)

	view := ansi.Strip(model.View())
	assert.Equal(t, 1, fetcher.calls)
	assert.Contains(t, view, dashboard.Title)
	assert.Contains(t, view, dashboard.FilterLabel)
	for _, column := range dashboard.Columns {
		assert.Contains(t, view, column)
	}
	assert.Contains(t, view, "Hammer")
	assert.Contains(t, view, "$19.50")
	assert.Contains(t, view, "$4.25")
	assert.Equal(t, 2, strings.Count(view, dashboard.OutOfStockText))
	assert.NotContains(t, view, dashboard.Placeholder)
	assert.Contains(t, view, "4 items")
}

func TestModelInitSkipsFetchWhenReady(t *testing.T) {
	fetcher := &stubFetcher{items: testItems()}
	model := loadedModel(t, fetcher)
	assert.Nil(t, model.Init())
	assert.Equal(t, 1, fetcher.calls)
}

func TestModelCyclesCategories(t *testing.T) {
	model := loadedModel(t, &stubFetcher{items: testItems()})
	assert.Equal(t, dashboard.All, model.Dashboard().Selected())

	model = sendKey(model, "l")
	assert.Equal(t, "Tools", model.Dashboard().Selected())
	view := ansi.Strip(model.View())
	assert.Contains(t, view, "[Tools]")
	assert.Contains(t, view, "Wrench")
	assert.NotContains(t, view, "Trowel")
	assert.Contains(t, view, "2 items")

	model = sendKey(model, "l")
	assert.Equal(t, "Garden", model.Dashboard().Selected())

	// Wraps back to All.
	model = sendKey(model, "l")
	assert.Equal(t, dashboard.All, model.Dashboard().Selected())

	// And backwards from All to the last category.
	model = sendKey(model, "h")
	assert.Equal(t, "Garden", model.Dashboard().Selected())
}

func TestModelArrowKeysCycleCategories(t *testing.T) {
	model := loadedModel(t, &stubFetcher{items: testItems()})
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRight})
	model = updated.(Model)
	assert.Equal(t, "Tools", model.Dashboard().Selected())
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyLeft})
	model = updated.(Model)
	assert.Equal(t, dashboard.All, model.Dashboard().Selected())
}

func TestModelKeysIgnoredWhileLoading(t *testing.T) {
	model := NewModel(context.Background(), dashboard.NewView(zerolog.Nop()), &stubFetcher{})
	model = sendKey(model, "l")
	assert.Equal(t, dashboard.All, model.Dashboard().Selected())
	assert.Equal(t, dashboard.LoadingText, model.View())
}

func TestModelEmptyCollectionShowsPlaceholderOnce(t *testing.T) {
	model := loadedModel(t, &stubFetcher{items: []models.Item{}})
	view := ansi.Strip(model.View())
	assert.Equal(t, 1, strings.Count(view, dashboard.Placeholder))
	assert.Contains(t, view, "[All]")
	assert.NotContains(t, view, dashboard.LoadErrorText)
}

func TestModelLoadFailureShowsNoticeAndPlaceholder(t *testing.T) {
	model := loadedModel(t, &stubFetcher{err: errors.New("connection refused")})

	_, ready := model.Dashboard().State().(dashboard.Ready)
	require.True(t, ready)
	view := ansi.Strip(model.View())
	assert.Contains(t, view, dashboard.LoadErrorText)
	assert.Contains(t, view, "connection refused")
	assert.Equal(t, 1, strings.Count(view, dashboard.Placeholder))
}

func TestModelQuit(t *testing.T) {
	model := loadedModel(t, &stubFetcher{items: testItems()})
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModelScrollsWithinHeight(t *testing.T) {
	items := make([]models.Item, 0, 30)
	for i := 1; i <= 30; i++ {
		items = append(items, models.Item{ID: i, SKU: "SKU-" + string(rune('A'+i%26)), ProductName: "Item", Category: "Bulk", Price: 1, Stock: i})
	}
	model := loadedModel(t, &stubFetcher{items: items})
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 12})
	model = updated.(Model)

	// 12 lines less 7 lines of chrome leaves 5 rows.
	lines := strings.Split(model.View(), "\n")
	assert.Len(t, lines, 12)

	for i := 0; i < 100; i++ {
		model = sendKey(model, "j")
	}
	assert.Equal(t, 25, model.offset)

	for i := 0; i < 100; i++ {
		model = sendKey(model, "k")
	}
	assert.Equal(t, 0, model.offset)
}

func TestModelTruncatesToWidth(t *testing.T) {
	model := loadedModel(t, &stubFetcher{items: testItems()})
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 30, Height: 40})
	model = updated.(Model)
	for _, line := range strings.Split(model.View(), "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 30, "line %q", line)
	}
}

func TestRenderStatic(t *testing.T) {
	view := dashboard.NewView(zerolog.Nop())
	assert.Equal(t, dashboard.LoadingText+"\n", RenderStatic(view, DefaultTheme, 0))

	view.Resolve(testItems(), nil)
	view.Select("Garden")
	out := ansi.Strip(RenderStatic(view, DefaultTheme, 0))
	assert.Contains(t, out, "Trowel")
	assert.Contains(t, out, "Rake")
	assert.NotContains(t, out, "Hammer")
	assert.NotContains(t, out, "quit")
	assert.True(t, strings.HasSuffix(out, "\n"))
}
