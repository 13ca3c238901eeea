package app

import "triton-install/internal/types"

// PinSource names where pinned commits come from. Manifest takes
// precedence over Dir when both are set.
type PinSource struct {
	Dir      string
	Manifest string
}

type InstallRequest struct {
	Pins          PinSource
	RocmVersion   string
	CPU           bool
	UbuntuVersion string
	MaxJobs       int
	PrebuiltEnv   bool
	CondaEnv      string
	CUDAArchList  string
	RocmArchList  string
	RepoURL       string
}

type InstallResult struct {
	Variant         types.Variant
	RepoURL         string
	Commit          string
	Jobs            int
	HelperInstalled bool
	Restored        bool
}

type ResolveRequest struct {
	Pins        PinSource
	RocmVersion string
	CPU         bool
	RepoURL     string
}

type ResolveResult struct {
	Variant     types.Variant
	RepoURL     string
	PinName     string
	Commit      string
	Subdir      string
	Requirement string
}

type PinsRequest struct {
	Pins PinSource
}

type PinsResult struct {
	Entries []types.PinEntry
}

type ValidateRequest struct {
	Pins PinSource
}

type CheckedPin struct {
	Variant types.Variant
	PinName string
	Commit  string
}

type ValidateResult struct {
	Checked []CheckedPin
}
