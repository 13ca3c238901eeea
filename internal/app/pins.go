package app

// ListPins returns every pin the configured store knows about, sorted by
// name.
func (s Service) ListPins(req PinsRequest) (PinsResult, error) {
	store, err := s.pinStore(req.Pins)
	if err != nil {
		return PinsResult{}, err
	}
	entries, err := store.Entries()
	if err != nil {
		return PinsResult{}, err
	}
	return PinsResult{Entries: entries}, nil
}
