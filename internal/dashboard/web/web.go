// Package web serves the inventory view as a server-rendered HTML page.
package web

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"inventory-dashboard/internal"
	"inventory-dashboard/internal/dashboard"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

// Dashboard renders one shared, once-loaded collection. Each request carries
// its own category selection in the query string.
type Dashboard struct {
	Router *chi.Mux

	mu   sync.RWMutex
	view *dashboard.View
	once sync.Once
	log  zerolog.Logger
}

// New returns a dashboard in the Loading state.
func New(logger zerolog.Logger) *Dashboard {
	d := &Dashboard{
		Router: chi.NewRouter(),
		view:   dashboard.NewView(logger),
		log:    logger,
	}
	d.Router.Use(internal.RequestIDMiddleware)
	d.Router.Use(internal.AccessLogMiddleware(logger))
	d.Router.Get("/", d.handlePage)
	return d
}

// Load fetches the collection and resolves the dashboard. Only the first call
// fetches; later calls return immediately. Requests served while the fetch
// is in flight see the loading page.
func (d *Dashboard) Load(ctx context.Context, src dashboard.Fetcher) {
	d.once.Do(func() {
		items, err := src.Fetch(ctx)
		d.mu.Lock()
		defer d.mu.Unlock()
		d.view.Resolve(items, err)
	})
}

// Ready reports whether the load has completed.
func (d *Dashboard) Ready() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.view.State().(dashboard.Ready)
	return ok
}

type categoryOption struct {
	Value    string
	Label    string
	Selected bool
}

type pageData struct {
	Title       string
	LoadingText string
	FilterLabel string
	Placeholder string
	Columns     []string

	Loading    bool
	Categories []categoryOption
	Table      dashboard.Table
	LoadError  string
}

func (d *Dashboard) snapshot(selected string) pageData {
	data := pageData{
		Title:       dashboard.Title,
		LoadingText: dashboard.LoadingText,
		FilterLabel: dashboard.FilterLabel,
		Placeholder: dashboard.Placeholder,
		Columns:     dashboard.Columns,
	}

	d.mu.RLock()
	state := d.view.State()
	d.mu.RUnlock()

	ready, ok := state.(dashboard.Ready)
	if !ok {
		data.Loading = true
		return data
	}
	for _, category := range dashboard.Categories(ready.Items) {
		label := category
		if label == "" {
			label = "(none)"
		}
		data.Categories = append(data.Categories, categoryOption{
			Value:    category,
			Label:    label,
			Selected: category == selected,
		})
	}
	data.Table = dashboard.BuildTable(dashboard.Filter(ready.Items, selected))
	if ready.Err != nil {
		data.LoadError = dashboard.LoadErrorText
	}
	return data
}

func (d *Dashboard) handlePage(w http.ResponseWriter, r *http.Request) {
	selected := dashboard.All
	if values, ok := r.URL.Query()["category"]; ok && len(values) > 0 {
		selected = values[0]
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, d.snapshot(selected)); err != nil {
		d.log.Error().Err(err).Msg("Failed to render dashboard")
		http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		d.log.Debug().Err(err).Msg("Failed to write dashboard")
	}
}
