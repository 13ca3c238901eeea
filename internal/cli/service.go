package cli

import (
	"github.com/spf13/viper"

	"triton-install/internal/adapters"
	"triton-install/internal/app"
)

// newAppService wires the default adapters, honoring interpreter overrides
// from config. Air-gapped CI images relocate python and conda, so both
// binaries are addressable.
func newAppService() app.Service {
	service := app.NewService()
	if bin := viper.GetString("python_bin"); bin != "" {
		service.Source = adapters.NewPipAdapter(bin)
	}
	if bin := viper.GetString("conda_bin"); bin != "" {
		service.PythonEnv = adapters.NewCondaAdapter(bin)
	}
	return service
}
