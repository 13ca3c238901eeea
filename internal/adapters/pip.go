package adapters

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"triton-install/internal/ports"
	"triton-install/internal/shared"
	"triton-install/internal/types"
)

// PipAdapter builds and installs the toolchain with pip, straight from a
// git repository at a pinned commit. Clone, build, and install happen in a
// single pip invocation.
type PipAdapter struct {
	PythonBin string
}

func NewPipAdapter(pythonBin string) PipAdapter {
	if strings.TrimSpace(pythonBin) == "" {
		pythonBin = "python3"
	}
	return PipAdapter{PythonBin: pythonBin}
}

func (a PipAdapter) Install(ctx context.Context, build types.SourceBuild) error {
	if strings.TrimSpace(build.RepoURL) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source build repository URL is empty")
	}
	if strings.TrimSpace(build.Commit) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source build commit is empty")
	}
	cmd := exec.CommandContext(ctx, a.PythonBin, pipInstallArgs(build)...)
	cmd.Env = buildEnv(os.Environ(), build)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("pip install failed for %s", build.RepoURL)).
			WithCause(shared.CommandError(output, err))
	}
	return nil
}

// pipInstallArgs builds the single force-reinstall invocation against the
// pinned git source.
func pipInstallArgs(build types.SourceBuild) []string {
	return []string{"-m", "pip", "install", "--force-reinstall", GitRequirement(build)}
}

// GitRequirement renders a pip VCS requirement such as
// git+https://github.com/triton-lang/triton@<commit>#subdirectory=python.
func GitRequirement(build types.SourceBuild) string {
	repo := strings.TrimSuffix(strings.TrimSpace(build.RepoURL), "/")
	requirement := fmt.Sprintf("git+%s@%s", repo, strings.TrimSpace(build.Commit))
	if subdir := strings.TrimSpace(build.Subdir); subdir != "" {
		requirement += "#subdirectory=" + subdir
	}
	return requirement
}

// buildEnv extends the parent environment with the job count and the
// architecture lists the upstream build scripts read. Both architecture
// values are always exported so the build sees the same surface on every
// variant.
func buildEnv(base []string, build types.SourceBuild) []string {
	env := append([]string(nil), base...)
	env = append(env,
		fmt.Sprintf("MAX_JOBS=%d", build.Jobs),
		"CUDA_ARCH_LIST="+build.CUDAArchList,
		"ROCM_ARCH_LIST="+build.RocmArchList,
	)
	return env
}

var _ ports.SourceBuildPort = PipAdapter{}
