package app

import (
	"context"

	"triton-install/internal/core"
)

// Validate checks that every variant's pin resolves to a well-formed
// single-token commit. Commit contents stay opaque beyond that.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	store, err := s.pinStore(req.Pins)
	if err != nil {
		return ValidateResult{}, err
	}
	var checked []CheckedPin
	for _, variant := range core.Variants() {
		source := core.SourceFor(ctx, variant)
		commit, err := store.Lookup(source.PinName)
		if err != nil {
			return ValidateResult{}, pinLookupError(source.PinName, err)
		}
		checked = append(checked, CheckedPin{
			Variant: variant,
			PinName: source.PinName,
			Commit:  commit,
		})
	}
	return ValidateResult{Checked: checked}, nil
}
