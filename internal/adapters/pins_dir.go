package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"triton-install/internal/ports"
	"triton-install/internal/types"
)

// pinFileSuffix is the extension pin files carry inside a pin directory.
const pinFileSuffix = ".txt"

// DirPinStoreAdapter reads pins from a directory of <name>.txt files, each
// holding a single commit identifier.
type DirPinStoreAdapter struct {
	Dir string
}

func NewDirPinStoreAdapter(dir string) DirPinStoreAdapter {
	return DirPinStoreAdapter{Dir: dir}
}

func (a DirPinStoreAdapter) Lookup(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("pin name is empty")
	}
	path := filepath.Join(a.Dir, trimmed+pinFileSuffix)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("pin file not found for %s", trimmed)).
			WithCause(err)
	}
	return parsePinCommit(trimmed, string(data))
}

func (a DirPinStoreAdapter) Entries() ([]types.PinEntry, error) {
	dirEntries, err := os.ReadDir(a.Dir)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("pin directory not found").
			WithCause(err)
	}
	var pins []types.PinEntry
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), pinFileSuffix) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), pinFileSuffix)
		commit, err := a.Lookup(name)
		if err != nil {
			return nil, err
		}
		pins = append(pins, types.PinEntry{Name: name, Commit: commit})
	}
	sort.Slice(pins, func(i, j int) bool {
		return pins[i].Name < pins[j].Name
	})
	return pins, nil
}

// parsePinCommit validates pin content: exactly one non-empty token.
// The token itself stays opaque; commits are never format-checked.
func parsePinCommit(name string, content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("pin for %s is empty", name))
	}
	if strings.ContainsAny(trimmed, " \t\n\r") {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("pin for %s must hold a single commit", name))
	}
	return trimmed, nil
}

var _ ports.PinStorePort = DirPinStoreAdapter{}
