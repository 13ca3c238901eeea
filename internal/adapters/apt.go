package adapters

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	debversion "github.com/knqyf263/go-deb-version"

	"triton-install/internal/ports"
	"triton-install/internal/shared"
)

// AptAdapter drives the image's Debian package tooling. Queries go through
// dpkg-query so they reflect exactly what is unpacked on disk, installs
// through apt-get.
type AptAdapter struct {
	AptGetBin string
	DpkgBin   string
}

func NewAptAdapter() AptAdapter {
	return AptAdapter{AptGetBin: "apt-get", DpkgBin: "dpkg-query"}
}

func (a AptAdapter) InstalledVersion(ctx context.Context, name string) (string, error) {
	cmd := exec.CommandContext(ctx, a.DpkgBin, "-W", "-f=${Version}", name)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		// dpkg-query exits non-zero for packages it has no record of.
		if _, ok := err.(*exec.ExitError); ok {
			return "", nil
		}
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("dpkg query failed for %s", name)).
			WithCause(fmt.Errorf("%s: %w", strings.TrimSpace(stderr.String()), err))
	}
	version := strings.TrimSpace(string(output))
	if version == "" {
		// Known to dpkg but removed; treat like never installed.
		return "", nil
	}
	if _, err := debversion.NewVersion(version); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid debian version %q for %s", version, name)).
			WithCause(err)
	}
	return version, nil
}

func (a AptAdapter) Install(ctx context.Context, name string) error {
	if output, err := a.aptGet(ctx, "update"); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("apt-get update failed").
			WithCause(shared.CommandError(output, err))
	}
	if output, err := a.aptGet(ctx, "install", "-y", name); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("apt-get install failed for %s", name)).
			WithCause(shared.CommandError(output, err))
	}
	return nil
}

func (a AptAdapter) aptGet(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, a.AptGetBin, args...)
	cmd.Env = append(os.Environ(), "DEBIAN_FRONTEND=noninteractive")
	return cmd.CombinedOutput()
}

var _ ports.SystemPackagePort = AptAdapter{}
