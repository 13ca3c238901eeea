package app

import (
	"runtime"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"triton-install/internal/adapters"
	"triton-install/internal/policies"
	"triton-install/internal/ports"
)

type Service struct {
	System    ports.SystemPackagePort
	PythonEnv ports.PythonEnvPort
	Source    ports.SourceBuildPort
	Preserve  policies.PreservePolicy
	NumCPU    func() int
}

func NewService() Service {
	return Service{
		System:    adapters.NewAptAdapter(),
		PythonEnv: adapters.NewCondaAdapter(""),
		Source:    adapters.NewPipAdapter(""),
		Preserve:  policies.NewPreservePolicy(),
		NumCPU:    runtime.NumCPU,
	}
}

// pinStore selects the pin backend for a request: the YAML manifest when
// one is named, otherwise the directory of pin files.
func (s Service) pinStore(source PinSource) (ports.PinStorePort, error) {
	if manifest := strings.TrimSpace(source.Manifest); manifest != "" {
		return adapters.NewManifestPinStoreAdapter(manifest), nil
	}
	dir := strings.TrimSpace(source.Dir)
	if dir == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("pin directory is required")
	}
	return adapters.NewDirPinStoreAdapter(dir), nil
}
