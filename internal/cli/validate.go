package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"triton-install/internal/app"
)

type validateOptions struct {
	PinsDir  string
	PinsFile string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that every variant has a well-formed pin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.PinsDir, "pins-dir", "ci_commit_pins", "Directory of <name>.txt pin files")
	cmd.Flags().StringVar(&opts.PinsFile, "pins-file", "", "YAML pin manifest (overrides --pins-dir)")
	_ = viper.BindPFlag("pins_dir", cmd.Flags().Lookup("pins-dir"))
	_ = viper.BindPFlag("pins_file", cmd.Flags().Lookup("pins-file"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		Pins: app.PinSource{
			Dir:      resolveString(cmd, opts.PinsDir, "pins_dir", "pins-dir"),
			Manifest: resolveString(cmd, opts.PinsFile, "pins_file", "pins-file"),
		},
	})
	if err != nil {
		return err
	}
	for _, pin := range result.Checked {
		fmt.Printf("%s: %s (%s)\n", pin.Variant, pin.Commit, pin.PinName)
	}
	fmt.Println("pins validated")
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

// resolvePresence treats any non-empty environment or config value as the
// toggle being on, matching how the CI pipelines export these variables.
func resolvePresence(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return strings.TrimSpace(viper.GetString(key)) != ""
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
