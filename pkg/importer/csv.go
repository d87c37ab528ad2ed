package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"inventory-dashboard/internal/models"
)

// CSVSource reads inventory from a CSV file. Records are parsed by a pool of
// workers; the result keeps the order of the file.
type CSVSource struct {
	opts Options
}

// NewCSVSource creates a CSV source.
func NewCSVSource(opts Options) *CSVSource {
	opts.setDefaults()
	return &CSVSource{opts: opts}
}

func (s *CSVSource) Load(ctx context.Context) ([]models.Item, LoadSummary, error) {
	summary := LoadSummary{Source: s.opts.Path}

	file, err := os.Open(s.opts.Path)
	if err != nil {
		return nil, summary, err
	}
	defer file.Close()

	var mapping *MappingConfig
	if s.opts.MappingPath != "" {
		if mapping, err = LoadMapping(s.opts.MappingPath); err != nil {
			return nil, summary, err
		}
	}

	items, err := s.read(ctx, file, mapping, &summary)
	if err != nil {
		return nil, summary, err
	}
	summary.Loaded = len(items)
	return items, summary, nil
}

// line is one record tagged with its 1-based row number in the file.
type line struct {
	row    int
	record []string
}

type parsed struct {
	row  int
	item models.Item
	err  error
}

func (s *CSVSource) read(ctx context.Context, r io.Reader, mapping *MappingConfig, summary *LoadSummary) ([]models.Item, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// Read header
	header, err := reader.Read()
	if err == io.EOF {
		return []models.Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	// Without a mapping file, a header naming every field is honored and
	// anything else falls back to the positional layout.
	cols := positional
	if mapping != nil {
		if cols, err = mapping.resolve(header); err != nil {
			return nil, err
		}
	} else if c, err := (&MappingConfig{Version: 1}).resolve(header); err == nil {
		cols = c
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan line, 100)
	results := make(chan parsed, 100)
	errCh := make(chan error, 1)

	var wg sync.WaitGroup
	for i := 0; i < s.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for l := range lines {
				item, err := parseRecord(l.record, cols)
				select {
				case results <- parsed{row: l.row, item: item, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Feeder
	go func() {
		defer close(lines)
		row := 1
		for {
			record, err := reader.Read()
			row++
			if err == io.EOF {
				return
			}
			if err != nil {
				errCh <- fmt.Errorf("read row %d: %w", row, err)
				cancel()
				return
			}
			select {
			case lines <- line{row: row, record: record}:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Closer
	go func() {
		wg.Wait()
		close(results)
	}()

	var collected []parsed
	for p := range results {
		if p.err != nil {
			s.opts.Logger.Warn().Err(p.err).Int("row", p.row).Str("file", s.opts.Path).Msg("Error parsing record")
			summary.skip(p.row, p.err.Error())
			continue
		}
		collected = append(collected, p)
	}

	select {
	case err := <-errCh:
		return nil, err
	default:
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(collected, func(i, j int) bool { return collected[i].row < collected[j].row })
	items := make([]models.Item, 0, len(collected))
	rows := make([]int, 0, len(collected))
	for _, p := range collected {
		items = append(items, p.item)
		rows = append(rows, p.row)
	}
	return dedupe(items, rows, summary), nil
}
