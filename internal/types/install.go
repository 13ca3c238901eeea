package types

// SourceBuild is one pip build-and-install of the toolchain from a git
// repository at a fixed commit.
type SourceBuild struct {
	RepoURL      string
	Commit       string
	Subdir       string
	Jobs         int
	CUDAArchList string
	RocmArchList string
}

// PackagePin is an installed package at an exact version.
type PackagePin struct {
	Name    string
	Version string
}

// EnvSnapshot captures package versions from the prebuilt Python
// environment before the toolchain build so they can be reinstated
// afterwards. An empty Env targets the environment manager's default.
type EnvSnapshot struct {
	Env      string
	Packages []PackagePin
}
