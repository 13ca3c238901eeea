package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"triton-install/internal/adapters"
	"triton-install/internal/core"
	"triton-install/internal/types"
)

// Resolve works out which variant is active and which commit its pin
// freezes, without touching the target environment.
func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	variant := core.ResolveVariant(core.VariantFlags{
		ROCm: strings.TrimSpace(req.RocmVersion) != "",
		CPU:  req.CPU,
	})
	source := core.SourceFor(ctx, variant)

	repoURL := strings.TrimSpace(req.RepoURL)
	if repoURL == "" {
		repoURL = source.RepoURL
	}

	store, err := s.pinStore(req.Pins)
	if err != nil {
		return ResolveResult{}, err
	}
	commit, err := store.Lookup(source.PinName)
	if err != nil {
		return ResolveResult{}, pinLookupError(source.PinName, err)
	}
	log.Ctx(ctx).Debug().
		Str("pin", source.PinName).
		Str("commit", commit).
		Msg("pinned commit resolved")

	requirement := adapters.GitRequirement(types.SourceBuild{
		RepoURL: repoURL,
		Commit:  commit,
		Subdir:  source.Subdir,
	})
	return ResolveResult{
		Variant:     variant,
		RepoURL:     repoURL,
		PinName:     source.PinName,
		Commit:      commit,
		Subdir:      source.Subdir,
		Requirement: requirement,
	}, nil
}
