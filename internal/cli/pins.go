package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"triton-install/internal/app"
)

type pinsOptions struct {
	PinsDir  string
	PinsFile string
}

func newPinsCommand() *cobra.Command {
	opts := pinsOptions{}
	cmd := &cobra.Command{
		Use:   "pins",
		Short: "List every pin the configured store knows about",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPins(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.PinsDir, "pins-dir", "ci_commit_pins", "Directory of <name>.txt pin files")
	cmd.Flags().StringVar(&opts.PinsFile, "pins-file", "", "YAML pin manifest (overrides --pins-dir)")
	_ = viper.BindPFlag("pins_dir", cmd.Flags().Lookup("pins-dir"))
	_ = viper.BindPFlag("pins_file", cmd.Flags().Lookup("pins-file"))
	return cmd
}

func runPins(cmd *cobra.Command, opts pinsOptions) error {
	service := newAppService()
	result, err := service.ListPins(app.PinsRequest{
		Pins: app.PinSource{
			Dir:      resolveString(cmd, opts.PinsDir, "pins_dir", "pins-dir"),
			Manifest: resolveString(cmd, opts.PinsFile, "pins_file", "pins-file"),
		},
	})
	if err != nil {
		return err
	}

	fmt.Printf("pins: %d\n", len(result.Entries))
	for _, entry := range result.Entries {
		fmt.Printf("- %s: %s\n", entry.Name, entry.Commit)
	}
	return nil
}
