package data

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"lbo-model/internal/config"
)

// Deal is one catalog entry: a deal assumptions file discovered on disk.
type Deal struct {
	ID      string // file name without extension
	Company string
	Path    string
	Config  config.DealConfig
}

// ListDeals scans dir for deal YAML files and returns the parseable ones,
// ordered by ID. Files that fail to parse are logged and skipped so one bad
// file does not hide the rest of the catalog.
func ListDeals(dir string) ([]Deal, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read deal dir: %w", err)
	}

	// ReadDir sorts by file name, which keeps the catalog order stable.
	deals := make([]Deal, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		dc, err := config.LoadDealFile(path)
		if err != nil {
			log.Printf("skipping deal file %s: %v", path, err)
			continue
		}

		deals = append(deals, Deal{
			ID:      strings.TrimSuffix(entry.Name(), ext),
			Company: dc.Company,
			Path:    path,
			Config:  dc,
		})
	}

	return deals, nil
}

// FindDeal looks up a catalog entry by ID.
func FindDeal(dir, id string) (Deal, error) {
	deals, err := ListDeals(dir)
	if err != nil {
		return Deal{}, err
	}
	for _, d := range deals {
		if d.ID == id {
			return d, nil
		}
	}
	return Deal{}, fmt.Errorf("deal %q not found in %s", id, dir)
}

// DefaultDealDir returns the deal catalog directory.
func DefaultDealDir() string {
	// Try environment variable first
	if dir := os.Getenv("DEAL_DIR"); dir != "" {
		return dir
	}
	// Default to examples/deals in project root
	return "./examples/deals"
}
