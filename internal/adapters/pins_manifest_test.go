package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triton-install/internal/types"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pins.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestManifestPinStore_Lookup(t *testing.T) {
	path := writeManifest(t, `pins:
  triton: 83111ab5f1ad0b274d4e3d4602e2b8f2c6f54eb7
  triton-cpu: e2f1a5da7de7b7f08b72eb6cbd44ba4c1bcd4a55
`)

	adapter := NewManifestPinStoreAdapter(path)
	commit, err := adapter.Lookup("triton")
	require.NoError(t, err)
	assert.Equal(t, "83111ab5f1ad0b274d4e3d4602e2b8f2c6f54eb7", commit)
}

func TestManifestPinStore_LookupUnknownPinErrors(t *testing.T) {
	path := writeManifest(t, "pins:\n  triton: abc123\n")

	adapter := NewManifestPinStoreAdapter(path)
	_, err := adapter.Lookup("triton-rocm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no pin named triton-rocm")
}

func TestManifestPinStore_LookupEmptyCommitErrors(t *testing.T) {
	path := writeManifest(t, "pins:\n  triton: \"\"\n")

	adapter := NewManifestPinStoreAdapter(path)
	_, err := adapter.Lookup("triton")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is empty")
}

func TestManifestPinStore_MissingFileErrors(t *testing.T) {
	adapter := NewManifestPinStoreAdapter(filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := adapter.Lookup("triton")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pin manifest not found")
}

func TestManifestPinStore_InvalidYamlErrors(t *testing.T) {
	path := writeManifest(t, "pins: [not: a: map\n")

	adapter := NewManifestPinStoreAdapter(path)
	_, err := adapter.Lookup("triton")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse pin manifest yaml")
}

func TestManifestPinStore_EntriesSortedByName(t *testing.T) {
	path := writeManifest(t, `pins:
  triton-rocm: commit-rocm
  triton: commit-cuda
  triton-cpu: commit-cpu
`)

	adapter := NewManifestPinStoreAdapter(path)
	entries, err := adapter.Entries()
	require.NoError(t, err)

	want := []types.PinEntry{
		{Name: "triton", Commit: "commit-cuda"},
		{Name: "triton-cpu", Commit: "commit-cpu"},
		{Name: "triton-rocm", Commit: "commit-rocm"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Fatalf("unexpected entries (-want +got):\n%s", diff)
	}
}
