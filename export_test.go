package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	videos := seedCatalog()

	require.NoError(t, WriteExportFile(path, videos))

	export, err := ReadExportFile(path)
	require.NoError(t, err)
	assert.Equal(t, ExportFormatVersion, export.Version)
	assert.False(t, export.ExportedAt.IsZero())
	assert.Equal(t, videos, export.Videos)
}

func TestReadExportFileRejectsDuplicateIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	dup := []Video{{ID: "x", Title: "A"}, {ID: "x", Title: "B"}}
	require.NoError(t, WriteExportFile(path, dup))

	_, err := ReadExportFile(path)
	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestReadExportFileRejectsMissingID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, WriteExportFile(path, []Video{{Title: "No ID"}}))

	_, err := ReadExportFile(path)
	require.Error(t, err)
}

func TestReadExportFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0644))

	_, err := ReadExportFile(path)
	require.Error(t, err)
}

func TestReadExportFileMissing(t *testing.T) {
	_, err := ReadExportFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
