package types

// Variant identifies which upstream fork of the toolchain gets installed.
type Variant string

const (
	VariantROCm Variant = "rocm"
	VariantCPU  Variant = "cpu"
	VariantCUDA Variant = "cuda"
)

// VariantSource fixes where a variant is built from: the upstream
// repository, the pin name whose entry freezes the commit, and the
// subdirectory holding the Python package.
type VariantSource struct {
	Variant Variant
	RepoURL string
	PinName string
	Subdir  string
}
