package core

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"triton-install/internal/types"
)

// variantSources fixes the upstream repository and pin name per variant.
// Every upstream keeps its Python package under python/.
var variantSources = map[types.Variant]types.VariantSource{
	types.VariantROCm: {
		Variant: types.VariantROCm,
		RepoURL: "https://github.com/ROCm/triton",
		PinName: "triton-rocm",
		Subdir:  "python",
	},
	types.VariantCPU: {
		Variant: types.VariantCPU,
		RepoURL: "https://github.com/triton-lang/triton-cpu",
		PinName: "triton-cpu",
		Subdir:  "python",
	},
	types.VariantCUDA: {
		Variant: types.VariantCUDA,
		RepoURL: "https://github.com/triton-lang/triton",
		PinName: "triton",
		Subdir:  "python",
	},
}

// VariantFlags are the environment toggles that pick the toolchain source.
type VariantFlags struct {
	ROCm bool
	CPU  bool
}

// ResolveVariant picks the active variant. The ROCm toggle wins over the
// CPU toggle; with neither set the CUDA build is installed. Resolution
// cannot fail: exactly one variant is always active.
func ResolveVariant(flags VariantFlags) types.Variant {
	switch {
	case flags.ROCm:
		return types.VariantROCm
	case flags.CPU:
		return types.VariantCPU
	default:
		return types.VariantCUDA
	}
}

// Variants lists every variant in resolution priority order.
func Variants() []types.Variant {
	return []types.Variant{types.VariantROCm, types.VariantCPU, types.VariantCUDA}
}

// SourceFor returns the fixed source coordinates of a variant. Unknown
// variants fall back to the CUDA source, matching ResolveVariant's default.
func SourceFor(ctx context.Context, variant types.Variant) types.VariantSource {
	source, ok := variantSources[variant]
	if !ok {
		source = variantSources[types.VariantCUDA]
	}
	assert.NotEmpty(ctx, source.RepoURL, "variant source must carry a repository URL")
	assert.NotEmpty(ctx, source.PinName, "variant source must carry a pin name")
	log.Ctx(ctx).Debug().
		Str("variant", string(source.Variant)).
		Str("repo", source.RepoURL).
		Str("pin", source.PinName).
		Msg("variant source selected")
	return source
}
