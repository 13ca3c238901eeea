//go:build integration

package integration

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"triton-install/tests/testutil"
)

// TestE2EInstallWithTestcontainers runs the compiled binary inside a stock
// ubuntu container. dpkg-query is the image's real one, so the helper
// package detection runs against a genuine dpkg database; apt-get, conda,
// and python3 are shadowed with logging stubs so the run stays offline.
func TestE2EInstallWithTestcontainers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers e2e in short mode")
	}

	ctx := t.Context()
	root := testutil.RepoRoot(t)

	binPath := filepath.Join(t.TempDir(), "triton-install")
	build := exec.Command("go", "build", "-o", binPath, "./cmd/triton-install")
	build.Dir = root
	build.Env = append(os.Environ(), "CGO_ENABLED=0")
	out, err := build.CombinedOutput()
	require.NoError(t, err, string(out))

	stubDir := t.TempDir()
	testutil.WriteTool(t, stubDir, "python3", containerPythonStub)
	testutil.WriteTool(t, stubDir, "conda", containerCondaStub)
	testutil.WriteTool(t, stubDir, "apt-get", containerAptGetStub)

	container := startUbuntuContainer(ctx, t, root, binPath, stubDir)

	code, _, err := container.Exec(ctx, []string{"sh", "-c",
		"UBUNTU_VERSION=22.04 CONDA_CMAKE=1 MAX_JOBS=2 " +
			"/opt/triton-install install --pins-dir /opt/pins > /tmp/install.out 2>&1"})
	require.NoError(t, err)
	installOut := containerFile(ctx, t, container, "/tmp/install.out")
	require.Equal(t, 0, code, installOut)

	require.Contains(t, installOut, "installed cuda toolchain at cf34004b8a67d290a962da166f5aa2fc66751326 (jobs=2)")
	require.Contains(t, installOut, "helper package installed")
	require.Contains(t, installOut, "environment versions restored")

	aptLog := containerFile(ctx, t, container, "/tmp/tools/apt-get.log")
	require.Equal(t, "update\ninstall -y gpg-agent\n", aptLog)
	pipLog := containerFile(ctx, t, container, "/tmp/tools/python3.log")
	require.Equal(t, "-m pip install --force-reinstall git+https://github.com/triton-lang/triton@cf34004b8a67d290a962da166f5aa2fc66751326#subdirectory=python\n", pipLog)
	condaLog := containerFile(ctx, t, container, "/tmp/tools/conda.log")
	require.Equal(t, "install -q -y cmake=3.26.4\ninstall -q -y --force-reinstall numpy=1.26.0\n", condaLog)

	code, _, err = container.Exec(ctx, []string{"sh", "-c",
		"/opt/triton-install validate --pins-dir /opt/pins > /tmp/validate.out 2>&1"})
	require.NoError(t, err)
	require.Equal(t, 0, code, containerFile(ctx, t, container, "/tmp/validate.out"))

	// Missing pins exit with the lookup code.
	code, _, err = container.Exec(ctx, []string{"sh", "-c",
		"/opt/triton-install resolve --pins-dir /nonexistent > /tmp/resolve.out 2>&1"})
	require.NoError(t, err)
	require.Equal(t, 3, code, containerFile(ctx, t, container, "/tmp/resolve.out"))

	// An empty pin source exits with the invalid-argument code.
	code, _, err = container.Exec(ctx, []string{"sh", "-c",
		"/opt/triton-install resolve --pins-dir '' > /tmp/empty.out 2>&1"})
	require.NoError(t, err)
	require.Equal(t, 2, code, containerFile(ctx, t, container, "/tmp/empty.out"))

	// A failing build exits with the build code.
	code, _, err = container.Exec(ctx, []string{"sh", "-c",
		"printf '#!/bin/sh\\nexit 1\\n' > /usr/local/bin/python3 && chmod 755 /usr/local/bin/python3 && " +
			"/opt/triton-install install --pins-dir /opt/pins > /tmp/failed.out 2>&1"})
	require.NoError(t, err)
	require.Equal(t, 6, code, containerFile(ctx, t, container, "/tmp/failed.out"))
}

func startUbuntuContainer(ctx context.Context, t *testing.T, root string, binPath string, stubDir string) testcontainers.Container {
	t.Helper()
	files := []testcontainers.ContainerFile{
		{HostFilePath: binPath, ContainerFilePath: "/opt/triton-install", FileMode: 0755},
		{HostFilePath: filepath.Join(stubDir, "python3"), ContainerFilePath: "/usr/local/bin/python3", FileMode: 0755},
		{HostFilePath: filepath.Join(stubDir, "conda"), ContainerFilePath: "/usr/local/bin/conda", FileMode: 0755},
		{HostFilePath: filepath.Join(stubDir, "apt-get"), ContainerFilePath: "/usr/local/bin/apt-get", FileMode: 0755},
	}
	for _, name := range []string{"triton.txt", "triton-cpu.txt", "triton-rocm.txt"} {
		files = append(files, testcontainers.ContainerFile{
			HostFilePath:      filepath.Join(root, "fixtures", "ci_commit_pins", name),
			ContainerFilePath: "/opt/pins/" + name,
			FileMode:          0644,
		})
	}

	req := testcontainers.ContainerRequest{
		Image:      "ubuntu:22.04",
		Cmd:        []string{"sh", "-c", "echo ready && sleep infinity"},
		Files:      files,
		WaitingFor: wait.ForLog("ready").WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})
	return container
}

func containerFile(ctx context.Context, t *testing.T, container testcontainers.Container, path string) string {
	t.Helper()
	reader, err := container.CopyFileFromContainer(ctx, path)
	require.NoError(t, err)
	defer reader.Close()
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	return string(data)
}

const containerPythonStub = `#!/bin/sh
mkdir -p /tmp/tools
printf '%s\n' "$*" >> /tmp/tools/python3.log
exit 0
`

const containerCondaStub = `#!/bin/sh
mkdir -p /tmp/tools
case "$*" in
*"list --json"*cmake*)
	printf '[{"name":"cmake","version":"3.26.4"}]\n'
	;;
*"list --json"*numpy*)
	printf '[{"name":"numpy","version":"1.26.0"}]\n'
	;;
*)
	printf '%s\n' "$*" >> /tmp/tools/conda.log
	;;
esac
exit 0
`

const containerAptGetStub = `#!/bin/sh
mkdir -p /tmp/tools
printf '%s\n' "$*" >> /tmp/tools/apt-get.log
exit 0
`
