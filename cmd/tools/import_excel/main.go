// import_excel runs an inventory source once without serving it: it reports
// what the API would load from a spreadsheet, CSV file or table and writes
// the loaded items as the JSON the API would return.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"inventory-dashboard/internal/logging"
	"inventory-dashboard/pkg/importer"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var opts importer.Options
	var summaryOnly bool

	flagSet := pflag.NewFlagSet("import_excel", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.Path, "file", "", "inventory file (.xlsx or .csv)")
	flagSet.StringVar(&opts.Kind, "source", "", "source kind: csv, xlsx or postgres (default: from the file extension)")
	flagSet.StringVar(&opts.MappingPath, "mapping", "", "YAML column mapping, e.g. configs/mapping/inventory.yaml")
	flagSet.IntVar(&opts.Workers, "workers", 4, "CSV parsing workers")
	flagSet.StringVar(&opts.DatabaseURL, "database-url", os.Getenv("DATABASE_URL"), "Postgres connection string for --source postgres")
	flagSet.StringVar(&opts.Table, "table", "inventory", "table for --source postgres")
	flagSet.BoolVar(&summaryOnly, "summary-only", false, "print the summary without the items")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	if opts.Kind == "" {
		opts.Kind = kindFromPath(opts.Path)
	}
	if opts.Kind != importer.KindPostgres && opts.Path == "" {
		return fmt.Errorf("--file is required for source %q", opts.Kind)
	}
	opts.Logger = logging.New(logging.Config{Env: "development", Level: "warn", Output: stderr})

	src, closeSource, err := importer.Open(ctx, opts)
	if err != nil {
		return err
	}
	defer closeSource()

	items, summary, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	printSummary(stderr, opts, summary)

	if summaryOnly {
		return nil
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// kindFromPath picks the source kind from a file extension.
func kindFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return importer.KindXLSX
	default:
		return importer.KindCSV
	}
}

func printSummary(w io.Writer, opts importer.Options, summary importer.LoadSummary) {
	source := opts.Path
	if opts.Kind == importer.KindPostgres {
		source = opts.Table
	}
	fmt.Fprintf(w, "Loaded %s source %s\n", opts.Kind, source)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Total loaded: %d\n", summary.Loaded)
	fmt.Fprintf(w, "Total skipped: %d\n", summary.Skipped)
	if len(summary.Samples) > 0 {
		fmt.Fprintln(w, "\nError samples:")
		for _, sample := range summary.Samples {
			fmt.Fprintf(w, "  Row %d: %s\n", sample.Row, sample.Message)
		}
	}
}
