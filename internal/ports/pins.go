package ports

import "triton-install/internal/types"

type PinStorePort interface {
	Lookup(name string) (string, error)
	Entries() ([]types.PinEntry, error)
}
