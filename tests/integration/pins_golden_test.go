package integration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triton-install/internal/adapters"
	"triton-install/internal/app"
	"triton-install/internal/core"
	"triton-install/tests/testutil"
)

// TestGoldenResolve resolves every variant against the committed pin
// fixtures and compares the rendered pip requirements with a golden file.
// If the golden file does not exist yet (first run), it is written so it
// can be committed.
//
// To update the golden file after an intentional pin bump, delete
// testdata/golden/requirements.txt and re-run the test.
func TestGoldenResolve(t *testing.T) {
	root := testutil.RepoRoot(t)
	goldenPath := filepath.Join(root, "tests", "integration", "testdata", "golden", "requirements.txt")
	pins := app.PinSource{Dir: filepath.Join(root, "fixtures", "ci_commit_pins")}

	cases := []struct {
		name string
		req  app.ResolveRequest
	}{
		{name: "rocm", req: app.ResolveRequest{RocmVersion: "6.1"}},
		{name: "cpu", req: app.ResolveRequest{CPU: true}},
		{name: "cuda", req: app.ResolveRequest{}},
	}

	service := app.NewService()
	var lines []string
	for _, tc := range cases {
		tc.req.Pins = pins
		result, err := service.Resolve(t.Context(), tc.req)
		require.NoError(t, err, tc.name)
		require.Equal(t, tc.name, string(result.Variant))
		lines = append(lines, fmt.Sprintf("%s %s", result.Variant, result.Requirement))
	}
	rendered := strings.Join(lines, "\n") + "\n"

	if _, err := os.Stat(goldenPath); os.IsNotExist(err) {
		require.NoError(t, os.MkdirAll(filepath.Dir(goldenPath), 0755))
		require.NoError(t, os.WriteFile(goldenPath, []byte(rendered), 0644))
		t.Logf("golden file written: %s", goldenPath)
		return
	}

	golden, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Equal(t, string(golden), rendered)
}

// TestPinStoresAgree keeps the two committed pin fixtures in sync: the
// per-file directory and the YAML manifest must list identical pins, and
// every variant must find its pin in both.
func TestPinStoresAgree(t *testing.T) {
	root := testutil.RepoRoot(t)
	dirStore := adapters.NewDirPinStoreAdapter(filepath.Join(root, "fixtures", "ci_commit_pins"))
	manifestStore := adapters.NewManifestPinStoreAdapter(filepath.Join(root, "fixtures", "pins.yaml"))

	fromDir, err := dirStore.Entries()
	require.NoError(t, err)
	fromManifest, err := manifestStore.Entries()
	require.NoError(t, err)
	if diff := cmp.Diff(fromDir, fromManifest); diff != "" {
		t.Fatalf("pin fixtures disagree (-dir +manifest):\n%s", diff)
	}

	for _, variant := range core.Variants() {
		source := core.SourceFor(t.Context(), variant)
		fromDirCommit, err := dirStore.Lookup(source.PinName)
		require.NoError(t, err, source.PinName)
		fromManifestCommit, err := manifestStore.Lookup(source.PinName)
		require.NoError(t, err, source.PinName)
		assert.Equal(t, fromDirCommit, fromManifestCommit, source.PinName)
	}
}
