package ports

import "context"

// SystemPackagePort manages packages through the image's OS package
// manager. InstalledVersion returns the empty string for packages the
// manager has no installed record of.
type SystemPackagePort interface {
	InstalledVersion(ctx context.Context, name string) (string, error)
	Install(ctx context.Context, name string) error
}
