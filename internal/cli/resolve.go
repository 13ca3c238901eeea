package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"triton-install/internal/app"
)

type resolveOptions struct {
	PinsDir     string
	PinsFile    string
	RocmVersion string
	CPU         bool
	RepoURL     string
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show which variant and commit would be installed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.PinsDir, "pins-dir", "ci_commit_pins", "Directory of <name>.txt pin files")
	cmd.Flags().StringVar(&opts.PinsFile, "pins-file", "", "YAML pin manifest (overrides --pins-dir)")
	cmd.Flags().StringVar(&opts.RocmVersion, "rocm-version", "", "ROCm release on the image; selects the ROCm fork")
	cmd.Flags().BoolVar(&opts.CPU, "cpu", false, "Resolve the CPU-only fork")
	cmd.Flags().StringVar(&opts.RepoURL, "repo-url", "", "Repository override for mirrors; the variant pin still applies")

	_ = viper.BindPFlag("pins_dir", cmd.Flags().Lookup("pins-dir"))
	_ = viper.BindPFlag("pins_file", cmd.Flags().Lookup("pins-file"))
	_ = viper.BindPFlag("rocm_version", cmd.Flags().Lookup("rocm-version"))
	_ = viper.BindPFlag("repo_url", cmd.Flags().Lookup("repo-url"))

	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions) error {
	service := newAppService()
	result, err := service.Resolve(ctx, app.ResolveRequest{
		Pins: app.PinSource{
			Dir:      resolveString(cmd, opts.PinsDir, "pins_dir", "pins-dir"),
			Manifest: resolveString(cmd, opts.PinsFile, "pins_file", "pins-file"),
		},
		RocmVersion: resolveString(cmd, opts.RocmVersion, "rocm_version", "rocm-version"),
		CPU:         resolvePresence(cmd, opts.CPU, "triton_cpu", "cpu"),
		RepoURL:     resolveString(cmd, opts.RepoURL, "repo_url", "repo-url"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("variant: %s\n", result.Variant)
	fmt.Printf("repository: %s\n", result.RepoURL)
	fmt.Printf("pin: %s\n", result.PinName)
	fmt.Printf("commit: %s\n", result.Commit)
	fmt.Printf("requirement: %s\n", result.Requirement)
	return nil
}
