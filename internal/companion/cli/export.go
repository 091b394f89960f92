package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/magielabs/companion/internal/companion/models"
)

// ExportData writes all local data to the given file as indented JSON.
func (a *App) ExportData(ctx context.Context, path string) error {
	doc, err := a.data.Export(ctx)
	if err != nil {
		printlnFn("Export failed:", err.Error())
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		printlnFn("Export failed:", err.Error())
		return err
	}

	printlnFn("Exported to", path)
	return nil
}

// ImportData restores local data from a previously exported JSON file.
// Records absent from the file are left untouched.
func (a *App) ImportData(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		printlnFn("Import failed:", err.Error())
		return err
	}

	var doc models.Export
	if err := json.Unmarshal(data, &doc); err != nil {
		printlnFn("Import failed:", err.Error())
		return err
	}

	if err := a.data.Import(ctx, doc); err != nil {
		printlnFn("Import failed:", err.Error())
		return err
	}

	printlnFn("Imported from", path)
	return nil
}
