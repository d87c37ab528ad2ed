package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"inventory-dashboard/internal/dashboard"
)

// columnGap separates table columns.
const columnGap = "  "

type renderOptions struct {
	width  int // 0 leaves lines untruncated
	offset int
	rows   int // table rows to draw starting at offset
	help   []key.Binding
}

// RenderStatic draws the whole view once, every row included, for
// non-interactive output. A Loading view renders as the loading text.
func RenderStatic(view *dashboard.View, theme Theme, width int) string {
	if _, ready := view.State().(dashboard.Ready); !ready {
		return dashboard.LoadingText + "\n"
	}
	return render(view, theme, renderOptions{
		width: width,
		rows:  len(view.Visible()),
	}) + "\n"
}

// chromeLines counts the non-table lines render emits around the body.
// Title, blank, filter, blank, header, separator, and the help line, plus
// one for the load error notice.
func chromeLines(view *dashboard.View) int {
	n := 7
	if view.Err() != nil {
		n++
	}
	return n
}

func render(view *dashboard.View, theme Theme, opts renderOptions) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.TitleForeground)
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
	rowStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	outOfStockStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.OutOfStock)
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	errorStyle := lipgloss.NewStyle().Foreground(theme.ErrorForeground)
	selectedStyle := lipgloss.NewStyle().
		Foreground(theme.CategoryForeground).
		Background(theme.CategoryBackground)

	var lines []string
	lines = append(lines, titleStyle.Render(dashboard.Title), "")

	// Category selector: every option, the selected one highlighted.
	var options []string
	for _, category := range view.Categories() {
		label := category
		if label == "" {
			label = "(none)"
		}
		if category == view.Selected() {
			options = append(options, selectedStyle.Render("["+label+"]"))
		} else {
			options = append(options, faintStyle.Render(" "+label+" "))
		}
	}
	lines = append(lines, dashboard.FilterLabel+" "+strings.Join(options, " "), "")

	if err := view.Err(); err != nil {
		lines = append(lines, errorStyle.Render(dashboard.LoadErrorText+": "+err.Error()))
	}

	table := view.Table()
	widths := columnWidths(table)

	lines = append(lines, headerStyle.Render(joinCells(dashboard.Columns, widths)))
	separatorWidth := 0
	for _, w := range widths {
		separatorWidth += w
	}
	separatorWidth += len(columnGap) * (len(widths) - 1)
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.BorderColor).Render(strings.Repeat("─", separatorWidth)))

	if table.Empty() {
		lines = append(lines, rowStyle.Render(centered(dashboard.Placeholder, separatorWidth)))
	} else {
		end := opts.offset + opts.rows
		if end > len(table.Rows) {
			end = len(table.Rows)
		}
		for _, row := range table.Rows[opts.offset:end] {
			text := joinCells(row.Cells(), widths)
			if row.OutOfStock {
				lines = append(lines, outOfStockStyle.Render(text))
			} else {
				lines = append(lines, rowStyle.Render(text))
			}
		}
	}

	if len(opts.help) > 0 {
		lines = append(lines, faintStyle.Render(helpLine(opts.help, len(table.Rows))))
	}

	if opts.width > 0 {
		for i, line := range lines {
			if ansi.StringWidth(line) > opts.width {
				lines[i] = ansi.Truncate(line, opts.width, "…")
			}
		}
	}
	return strings.Join(lines, "\n")
}

func columnWidths(table dashboard.Table) []int {
	widths := make([]int, len(dashboard.Columns))
	for i, c := range dashboard.Columns {
		widths[i] = ansi.StringWidth(c)
	}
	for _, row := range table.Rows {
		for i, cell := range row.Cells() {
			if w := ansi.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func joinCells(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = cell + strings.Repeat(" ", widths[i]-ansi.StringWidth(cell))
	}
	return strings.TrimRight(strings.Join(padded, columnGap), " ")
}

// centered pads text so it sits in the middle of a line of the given width.
func centered(text string, width int) string {
	pad := (width - ansi.StringWidth(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}

func helpLine(bindings []key.Binding, shown int) string {
	parts := make([]string, 0, len(bindings)+1)
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	parts = append(parts, itemsLabel(shown))
	return strings.Join(parts, "  ")
}

func itemsLabel(n int) string {
	if n == 1 {
		return "1 item"
	}
	return strconv.Itoa(n) + " items"
}
