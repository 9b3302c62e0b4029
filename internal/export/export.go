package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dcarrillo/splitser-export/internal/logger"
	"github.com/dcarrillo/splitser-export/internal/splitser"
)

// Output filenames, written into Options.OutDir.
const (
	HeadersFile      = "headers.json"
	CSVFile          = "transactions.csv"
	TransactionsFile = "transactions.json"
)

// PageFetcher fetches one page of list items. *splitser.Client satisfies it;
// tests substitute a mock.
type PageFetcher interface {
	GetPage(ctx context.Context, req splitser.PageRequest) (*splitser.Page, error)
}

// Options configures one export run.
type Options struct {
	ListID  string
	Page    int
	PerPage int
	OutDir  string
}

// Run executes one export: fetch a page, dump the observed record field names,
// render and write the CSV, and dump the raw data array. Record-level
// anomalies are logged and skipped inside Normalize; anything returned here
// broke a structural assumption and the caller should abort.
func Run(ctx context.Context, fetcher PageFetcher, opts Options) error {
	log := logger.FromContext(ctx)

	// 1. Fetch the page. Settled items are filtered out server-side.
	req := splitser.PageRequest{
		ListID:  opts.ListID,
		Page:    opts.Page,
		PerPage: opts.PerPage,
		Sort:    splitser.DefaultSort(),
		Settled: false,
	}
	page, err := fetcher.GetPage(ctx, req)
	if err != nil {
		return err
	}
	log.Info().
		Int("items", len(page.Data)).
		Int("total_entries", page.Pagination.TotalEntries).
		Int("page", page.Pagination.CurrentPage).
		Msg("Fetched list items page")

	// 2. Dump the distinct field names seen on expense/income records. This
	// is a schema-discovery aid for spotting fields the renderer doesn't
	// cover yet.
	names, err := distinctFieldNames(page.RawData)
	if err != nil {
		return err
	}
	if err := writeJSONFile(filepath.Join(opts.OutDir, HeadersFile), names); err != nil {
		return err
	}

	// 3. Normalize and render the CSV.
	renderer, err := NewRenderer()
	if err != nil {
		return err
	}
	txs := Normalize(ctx, page.Data)
	log.Info().Int("transactions", len(txs)).Msg("Normalized transactions")

	csvPath := filepath.Join(opts.OutDir, CSVFile)
	if err := os.WriteFile(csvPath, []byte(renderer.RenderCSV(txs)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", csvPath, err)
	}

	// 4. Dump the raw, unnormalized data array for manual inspection.
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, page.RawData, "", "  "); err != nil {
		return fmt.Errorf("indent raw data: %w", err)
	}
	jsonPath := filepath.Join(opts.OutDir, TransactionsFile)
	if err := os.WriteFile(jsonPath, pretty.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", jsonPath, err)
	}

	log.Info().
		Str("csv", csvPath).
		Str("json", jsonPath).
		Msg("Export complete")
	return nil
}

// distinctFieldNames collects the sorted distinct top-level field names of
// every expense and income object in the raw data array.
func distinctFieldNames(rawData json.RawMessage) ([]string, error) {
	if len(rawData) == 0 {
		return []string{}, nil
	}

	var items []map[string]json.RawMessage
	if err := json.Unmarshal(rawData, &items); err != nil {
		return nil, fmt.Errorf("distinctFieldNames: %w", err)
	}

	seen := map[string]bool{}
	for _, item := range items {
		for _, kind := range []string{"expense", "income"} {
			raw, ok := item[kind]
			if !ok || string(raw) == "null" {
				continue
			}
			var record map[string]json.RawMessage
			if err := json.Unmarshal(raw, &record); err != nil {
				return nil, fmt.Errorf("distinctFieldNames: %s record: %w", kind, err)
			}
			for name := range record {
				seen[name] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
