package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"triton-install/internal/app"
)

type installOptions struct {
	PinsDir       string
	PinsFile      string
	RocmVersion   string
	CPU           bool
	UbuntuVersion string
	MaxJobs       int
	CondaCmake    bool
	CondaEnv      string
	CUDAArchList  string
	RocmArchList  string
	RepoURL       string
}

func newInstallCommand() *cobra.Command {
	opts := installOptions{}
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Build and install the pinned toolchain commit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInstall(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.PinsDir, "pins-dir", "ci_commit_pins", "Directory of <name>.txt pin files")
	cmd.Flags().StringVar(&opts.PinsFile, "pins-file", "", "YAML pin manifest (overrides --pins-dir)")
	cmd.Flags().StringVar(&opts.RocmVersion, "rocm-version", "", "ROCm release on the image; selects the ROCm fork")
	cmd.Flags().BoolVar(&opts.CPU, "cpu", false, "Install the CPU-only fork")
	cmd.Flags().StringVar(&opts.UbuntuVersion, "ubuntu-version", "", "Ubuntu release on the image; enables the apt helper install")
	cmd.Flags().IntVar(&opts.MaxJobs, "max-jobs", 0, "Build parallelism (0 = detected processor count)")
	cmd.Flags().BoolVar(&opts.CondaCmake, "conda-cmake", false, "Preserve the conda cmake and numpy versions across the build")
	cmd.Flags().StringVar(&opts.CondaEnv, "conda-env", "", "Conda environment name (default environment when empty)")
	cmd.Flags().StringVar(&opts.CUDAArchList, "cuda-arch-list", "", "CUDA architectures exported to the build")
	cmd.Flags().StringVar(&opts.RocmArchList, "rocm-arch-list", "", "ROCm architectures exported to the build")
	cmd.Flags().StringVar(&opts.RepoURL, "repo-url", "", "Repository override for mirrors; the variant pin still applies")

	_ = viper.BindPFlag("pins_dir", cmd.Flags().Lookup("pins-dir"))
	_ = viper.BindPFlag("pins_file", cmd.Flags().Lookup("pins-file"))
	_ = viper.BindPFlag("rocm_version", cmd.Flags().Lookup("rocm-version"))
	_ = viper.BindPFlag("ubuntu_version", cmd.Flags().Lookup("ubuntu-version"))
	_ = viper.BindPFlag("max_jobs", cmd.Flags().Lookup("max-jobs"))
	_ = viper.BindPFlag("conda_env", cmd.Flags().Lookup("conda-env"))
	_ = viper.BindPFlag("cuda_arch_list", cmd.Flags().Lookup("cuda-arch-list"))
	_ = viper.BindPFlag("rocm_arch_list", cmd.Flags().Lookup("rocm-arch-list"))
	_ = viper.BindPFlag("repo_url", cmd.Flags().Lookup("repo-url"))

	return cmd
}

func runInstall(ctx context.Context, cmd *cobra.Command, opts installOptions) error {
	service := newAppService()
	result, err := service.Install(ctx, app.InstallRequest{
		Pins: app.PinSource{
			Dir:      resolveString(cmd, opts.PinsDir, "pins_dir", "pins-dir"),
			Manifest: resolveString(cmd, opts.PinsFile, "pins_file", "pins-file"),
		},
		RocmVersion:   resolveString(cmd, opts.RocmVersion, "rocm_version", "rocm-version"),
		CPU:           resolvePresence(cmd, opts.CPU, "triton_cpu", "cpu"),
		UbuntuVersion: resolveString(cmd, opts.UbuntuVersion, "ubuntu_version", "ubuntu-version"),
		MaxJobs:       resolveInt(cmd, opts.MaxJobs, "max_jobs", "max-jobs"),
		PrebuiltEnv:   resolvePresence(cmd, opts.CondaCmake, "conda_cmake", "conda-cmake"),
		CondaEnv:      resolveString(cmd, opts.CondaEnv, "conda_env", "conda-env"),
		CUDAArchList:  resolveString(cmd, opts.CUDAArchList, "cuda_arch_list", "cuda-arch-list"),
		RocmArchList:  resolveString(cmd, opts.RocmArchList, "rocm_arch_list", "rocm-arch-list"),
		RepoURL:       resolveString(cmd, opts.RepoURL, "repo_url", "repo-url"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("installed %s toolchain at %s (jobs=%d)\n", result.Variant, result.Commit, result.Jobs)
	if result.HelperInstalled {
		fmt.Println("helper package installed")
	}
	if result.Restored {
		fmt.Println("environment versions restored")
	}
	return nil
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}
