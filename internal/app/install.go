package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"triton-install/internal/core"
	"triton-install/internal/policies"
	"triton-install/internal/types"
)

// helperPackage unlocks signed-repository handling on Ubuntu CI images;
// the stock containers ship without it.
const helperPackage = "gpg-agent"

// Install provisions the pinned toolchain build. Steps run strictly in
// order and the first failure aborts the run. The snapshot taken before
// the build is only reinstated after a successful build, never after a
// failed one.
func (s Service) Install(ctx context.Context, req InstallRequest) (InstallResult, error) {
	resolved, err := s.Resolve(ctx, ResolveRequest{
		Pins:        req.Pins,
		RocmVersion: req.RocmVersion,
		CPU:         req.CPU,
		RepoURL:     req.RepoURL,
	})
	if err != nil {
		return InstallResult{}, err
	}

	helperInstalled := false
	if strings.TrimSpace(req.UbuntuVersion) != "" {
		helperInstalled, err = s.ensureHelperPackage(ctx)
		if err != nil {
			return InstallResult{}, err
		}
	}

	var snapshot *types.EnvSnapshot
	if req.PrebuiltEnv {
		captured, err := s.snapshotEnv(ctx, req.CondaEnv)
		if err != nil {
			return InstallResult{}, err
		}
		snapshot = &captured
	}

	jobs := core.Jobs(req.MaxJobs, s.NumCPU)

	build := types.SourceBuild{
		RepoURL:      resolved.RepoURL,
		Commit:       resolved.Commit,
		Subdir:       resolved.Subdir,
		Jobs:         jobs,
		CUDAArchList: req.CUDAArchList,
		RocmArchList: req.RocmArchList,
	}
	if err := s.Source.Install(ctx, build); err != nil {
		return InstallResult{}, buildInstallError(resolved.RepoURL, err)
	}
	log.Ctx(ctx).Info().
		Str("variant", string(resolved.Variant)).
		Str("repo", resolved.RepoURL).
		Str("commit", resolved.Commit).
		Int("jobs", jobs).
		Msg("toolchain built and installed")

	if snapshot != nil {
		if err := s.restoreEnv(ctx, *snapshot); err != nil {
			return InstallResult{}, err
		}
	}

	return InstallResult{
		Variant:         resolved.Variant,
		RepoURL:         resolved.RepoURL,
		Commit:          resolved.Commit,
		Jobs:            jobs,
		HelperInstalled: helperInstalled,
		Restored:        snapshot != nil,
	}, nil
}

// ensureHelperPackage installs the helper unless the image already carries
// it. Returns whether an install actually ran.
func (s Service) ensureHelperPackage(ctx context.Context) (bool, error) {
	version, err := s.System.InstalledVersion(ctx, helperPackage)
	if err != nil {
		return false, systemPackageError(helperPackage, err)
	}
	if version != "" {
		log.Ctx(ctx).Debug().
			Str("package", helperPackage).
			Str("version", version).
			Msg("helper package already present")
		return false, nil
	}
	if err := s.System.Install(ctx, helperPackage); err != nil {
		return false, systemPackageError(helperPackage, err)
	}
	log.Ctx(ctx).Info().Str("package", helperPackage).Msg("helper package installed")
	return true, nil
}

// snapshotEnv captures the preserved packages' versions before the build.
// Every captured version must parse as PEP 440 so the later equality check
// is meaningful.
func (s Service) snapshotEnv(ctx context.Context, env string) (types.EnvSnapshot, error) {
	snapshot := types.EnvSnapshot{Env: env}
	for _, preserved := range s.Preserve.Packages() {
		version, err := s.PythonEnv.InstalledVersion(ctx, env, preserved.Name)
		if err != nil {
			return types.EnvSnapshot{}, versionQueryError(preserved.Name, err)
		}
		if _, err := core.ParsePythonVersion(version); err != nil {
			return types.EnvSnapshot{}, versionQueryError(preserved.Name, err)
		}
		snapshot.Packages = append(snapshot.Packages, types.PackagePin{
			Name:    preserved.Name,
			Version: version,
		})
	}
	log.Ctx(ctx).Debug().
		Strs("packages", s.Preserve.Names()).
		Msg("environment versions captured")
	return snapshot, nil
}

// restoreEnv reinstates the captured versions. Restore order and modes
// come from the preserve policy, so the same package names are used on
// both sides of the build.
func (s Service) restoreEnv(ctx context.Context, snapshot types.EnvSnapshot) error {
	versions := map[string]string{}
	for _, pin := range snapshot.Packages {
		versions[pin.Name] = pin.Version
	}
	for _, preserved := range s.Preserve.Packages() {
		version, ok := versions[preserved.Name]
		if !ok {
			continue
		}
		var err error
		switch preserved.Mode {
		case policies.RestoreModeForce:
			err = s.PythonEnv.ForceReinstall(ctx, snapshot.Env, preserved.Name, version)
		default:
			err = s.PythonEnv.InstallPinned(ctx, snapshot.Env, preserved.Name, version)
		}
		if err != nil {
			return restoreError(preserved.Name, err)
		}
	}
	return s.verifyRestore(ctx, snapshot)
}

// verifyRestore re-queries the preserved packages and compares versions
// under PEP 440 equality, catching drift the reinstall did not undo.
func (s Service) verifyRestore(ctx context.Context, snapshot types.EnvSnapshot) error {
	for _, pin := range snapshot.Packages {
		version, err := s.PythonEnv.InstalledVersion(ctx, snapshot.Env, pin.Name)
		if err != nil {
			return restoreError(pin.Name, err)
		}
		same, err := core.SamePythonVersion(version, pin.Version)
		if err != nil {
			return restoreError(pin.Name, err)
		}
		if !same {
			return restoreError(pin.Name, fmt.Errorf("version %s does not match captured %s", version, pin.Version))
		}
	}
	log.Ctx(ctx).Info().Str("env", snapshot.Env).Msg("environment versions restored")
	return nil
}
