package policies

import "strings"

// RestoreMode selects how a preserved package is put back after the
// toolchain build.
type RestoreMode string

const (
	// RestoreModePinned reinstalls the package at the captured version.
	RestoreModePinned RestoreMode = "pinned"
	// RestoreModeForce reinstalls even when the environment still reports
	// the captured version, so files clobbered by the build are rebuilt.
	RestoreModeForce RestoreMode = "force-reinstall"
)

// PreservedPackage names an environment package whose version must survive
// the toolchain build.
type PreservedPackage struct {
	Name string
	Mode RestoreMode
}

// PreservePolicy lists the environment packages the installer snapshots
// before the build and reinstates afterwards. The same policy drives both
// sides, so capture and restore always cover the same package names.
type PreservePolicy struct {
	packages []PreservedPackage
}

// NewPreservePolicy returns the default policy. The toolchain build drags
// in its own cmake and relinks numpy against it: cmake goes back to its
// pinned version, numpy gets force-reinstalled to undo the relink.
func NewPreservePolicy() PreservePolicy {
	return PreservePolicy{
		packages: []PreservedPackage{
			{Name: "cmake", Mode: RestoreModePinned},
			{Name: "numpy", Mode: RestoreModeForce},
		},
	}
}

// Packages returns the preserved packages in restore order.
func (p PreservePolicy) Packages() []PreservedPackage {
	return append([]PreservedPackage(nil), p.packages...)
}

// Names returns the preserved package names in restore order.
func (p PreservePolicy) Names() []string {
	names := make([]string, 0, len(p.packages))
	for _, pkg := range p.packages {
		names = append(names, pkg.Name)
	}
	return names
}

// ModeFor returns the restore mode for a package name, defaulting to the
// pinned mode for names outside the policy.
func (p PreservePolicy) ModeFor(name string) RestoreMode {
	for _, pkg := range p.packages {
		if strings.EqualFold(pkg.Name, name) {
			return pkg.Mode
		}
	}
	return RestoreModePinned
}
