package types

// PinEntry is one named pin from a pin store.
type PinEntry struct {
	Name   string
	Commit string
}
