package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"triton-install/internal/ports"
	"triton-install/internal/shared"
)

// CondaAdapter queries and pins packages inside a conda-managed Python
// environment.
type CondaAdapter struct {
	CondaBin string
}

func NewCondaAdapter(condaBin string) CondaAdapter {
	if strings.TrimSpace(condaBin) == "" {
		condaBin = "conda"
	}
	return CondaAdapter{CondaBin: condaBin}
}

type condaListEntry struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (a CondaAdapter) InstalledVersion(ctx context.Context, env string, name string) (string, error) {
	cmd := exec.CommandContext(ctx, a.CondaBin, condaListArgs(env, name)...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("conda list failed for %s", name)).
			WithCause(fmt.Errorf("%s: %w", strings.TrimSpace(stderr.String()), err))
	}
	return parseCondaList(output, name)
}

func (a CondaAdapter) InstallPinned(ctx context.Context, env string, name string, version string) error {
	return a.install(ctx, env, name, version, false)
}

func (a CondaAdapter) ForceReinstall(ctx context.Context, env string, name string, version string) error {
	return a.install(ctx, env, name, version, true)
}

func (a CondaAdapter) install(ctx context.Context, env string, name string, version string, force bool) error {
	cmd := exec.CommandContext(ctx, a.CondaBin, condaInstallArgs(env, name, version, force)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("conda install failed for %s", name)).
			WithCause(shared.CommandError(output, err))
	}
	return nil
}

// condaListArgs builds `conda list --json [-n env] ^name$`. The anchored
// pattern keeps conda from matching on substrings.
func condaListArgs(env string, name string) []string {
	args := []string{"list", "--json"}
	if strings.TrimSpace(env) != "" {
		args = append(args, "-n", env)
	}
	args = append(args, "^"+regexp.QuoteMeta(name)+"$")
	return args
}

// condaInstallArgs builds `conda install -q -y [-n env] [--force-reinstall]
// name=version`.
func condaInstallArgs(env string, name string, version string, force bool) []string {
	args := []string{"install", "-q", "-y"}
	if strings.TrimSpace(env) != "" {
		args = append(args, "-n", env)
	}
	if force {
		args = append(args, "--force-reinstall")
	}
	args = append(args, fmt.Sprintf("%s=%s", name, version))
	return args
}

// parseCondaList picks the named package out of conda's JSON listing.
func parseCondaList(output []byte, name string) (string, error) {
	var entries []condaListEntry
	if err := json.Unmarshal(output, &entries); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("conda list output is invalid").
			WithCause(err)
	}
	normalized := shared.NormalizePipName(name)
	for _, entry := range entries {
		if shared.NormalizePipName(entry.Name) != normalized {
			continue
		}
		version := strings.TrimSpace(entry.Version)
		if version == "" {
			break
		}
		return version, nil
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("package %s is not installed", name))
}

var _ ports.PythonEnvPort = CondaAdapter{}
