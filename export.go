package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// ExportFormatVersion identifies the export file layout.
const ExportFormatVersion = "1.0"

// NewCatalogExport wraps a collection snapshot in the export envelope.
func NewCatalogExport(videos []Video) *CatalogExport {
	return &CatalogExport{
		ExportedAt: timeNow().UTC(),
		Version:    ExportFormatVersion,
		Videos:     videos,
	}
}

// WriteExportFile writes the collection to a JSON export file.
func WriteExportFile(path string, videos []Video) error {
	export := NewCatalogExport(videos)
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// ReadExportFile reads and validates a JSON export file. Files carrying
// duplicate entry ids are rejected, keeping the store's uniqueness
// invariant intact on import.
func ReadExportFile(path string) (*CatalogExport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export file: %w", err)
	}

	var export CatalogExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("failed to parse export file: %w", err)
	}

	seen := make(map[string]struct{}, len(export.Videos))
	for _, v := range export.Videos {
		if v.ID == "" {
			return nil, fmt.Errorf("export contains an entry without an id")
		}
		if _, dup := seen[v.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, v.ID)
		}
		seen[v.ID] = struct{}{}
	}

	return &export, nil
}
