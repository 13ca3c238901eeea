package adapters

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"triton-install/internal/ports"
	"triton-install/internal/types"
)

// ManifestPinStoreAdapter reads pins from a single YAML manifest:
//
//	pins:
//	  triton: 83111ab5f1ad0b274d4e3d4602e2b8f2c6f54eb7
//	  triton-cpu: e2f1a5da7de7b7f08b72eb6cbd44ba4c1bcd4a55
type ManifestPinStoreAdapter struct {
	Path string
}

func NewManifestPinStoreAdapter(path string) ManifestPinStoreAdapter {
	return ManifestPinStoreAdapter{Path: path}
}

type pinManifest struct {
	Pins map[string]string `yaml:"pins"`
}

func (a ManifestPinStoreAdapter) Lookup(name string) (string, error) {
	manifest, err := a.load()
	if err != nil {
		return "", err
	}
	trimmed := strings.TrimSpace(name)
	commit, ok := manifest.Pins[trimmed]
	if !ok {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no pin named %s in manifest", trimmed))
	}
	return parsePinCommit(trimmed, commit)
}

func (a ManifestPinStoreAdapter) Entries() ([]types.PinEntry, error) {
	manifest, err := a.load()
	if err != nil {
		return nil, err
	}
	pins := make([]types.PinEntry, 0, len(manifest.Pins))
	for name, commit := range manifest.Pins {
		validated, err := parsePinCommit(name, commit)
		if err != nil {
			return nil, err
		}
		pins = append(pins, types.PinEntry{Name: name, Commit: validated})
	}
	sort.Slice(pins, func(i, j int) bool {
		return pins[i].Name < pins[j].Name
	})
	return pins, nil
}

func (a ManifestPinStoreAdapter) load() (pinManifest, error) {
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return pinManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("pin manifest not found").
			WithCause(err)
	}
	var manifest pinManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return pinManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse pin manifest yaml").
			WithCause(err)
	}
	return manifest, nil
}

var _ ports.PinStorePort = ManifestPinStoreAdapter{}
