package ports

import "context"

// PythonEnvPort queries and pins packages inside the prebuilt Python
// environment. An empty env name targets the manager's default environment.
type PythonEnvPort interface {
	InstalledVersion(ctx context.Context, env string, name string) (string, error)
	InstallPinned(ctx context.Context, env string, name string, version string) error
	ForceReinstall(ctx context.Context, env string, name string, version string) error
}
