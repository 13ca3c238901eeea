package ports

import (
	"context"

	"triton-install/internal/types"
)

type SourceBuildPort interface {
	Install(ctx context.Context, build types.SourceBuild) error
}
