package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/tealeg/xlsx/v3"

	"inventory-dashboard/internal/models"
)

// XLSXSource reads inventory from a worksheet. The first row is the header;
// the sheet named in the mapping is used, otherwise the first sheet.
type XLSXSource struct {
	opts Options
}

// NewXLSXSource creates a spreadsheet source.
func NewXLSXSource(opts Options) *XLSXSource {
	opts.setDefaults()
	return &XLSXSource{opts: opts}
}

func (s *XLSXSource) Load(ctx context.Context) ([]models.Item, LoadSummary, error) {
	summary := LoadSummary{Source: s.opts.Path}

	mapping := &MappingConfig{Version: 1}
	if s.opts.MappingPath != "" {
		m, err := LoadMapping(s.opts.MappingPath)
		if err != nil {
			return nil, summary, err
		}
		mapping = m
	}

	xlFile, err := xlsx.OpenFile(s.opts.Path)
	if err != nil {
		return nil, summary, fmt.Errorf("failed to open Excel file: %w", err)
	}

	sheet, err := pickSheet(xlFile, mapping.Sheet)
	if err != nil {
		return nil, summary, err
	}

	var (
		items  []models.Item
		rows   []int
		cols   columnIndex
		header = true
		rowNum = 0
	)
	err = sheet.ForEachRow(func(r *xlsx.Row) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rowNum++
		record := rowValues(r)
		if blank(record) {
			return nil
		}

		if header {
			header = false
			// Positional layout when the header carries none of the field names.
			c, err := mapping.resolve(record)
			if err != nil {
				if s.opts.MappingPath != "" {
					return err
				}
				c = positional
			}
			cols = c
			return nil
		}

		item, err := parseRecord(record, cols)
		if err != nil {
			s.opts.Logger.Warn().Err(err).Int("row", rowNum).Str("file", s.opts.Path).Msg("Error parsing row")
			summary.skip(rowNum, err.Error())
			return nil
		}
		items = append(items, item)
		rows = append(rows, rowNum)
		return nil
	})
	if err != nil {
		return nil, summary, err
	}

	if items == nil {
		items = []models.Item{}
	}
	items = dedupe(items, rows, &summary)
	summary.Loaded = len(items)
	return items, summary, nil
}

func pickSheet(f *xlsx.File, name string) (*xlsx.Sheet, error) {
	if name != "" {
		sheet, ok := f.Sheet[name]
		if !ok {
			return nil, fmt.Errorf("sheet %q not found", name)
		}
		return sheet, nil
	}
	if len(f.Sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.Sheets[0], nil
}

func rowValues(r *xlsx.Row) []string {
	var out []string
	_ = r.ForEachCell(func(c *xlsx.Cell) error {
		if c.Type() == xlsx.CellTypeNumeric {
			out = append(out, strings.TrimSpace(c.Value))
		} else {
			out = append(out, strings.TrimSpace(c.String()))
		}
		return nil
	})
	return out
}

func blank(record []string) bool {
	for _, v := range record {
		if v != "" {
			return false
		}
	}
	return true
}
