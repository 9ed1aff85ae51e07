package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/assetpipe/internal/app"
	"go.trai.ch/assetpipe/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <development|production>",
		Short: "Compile the application into the build directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := domain.ParseBuildMode(args[0])
			if err != nil {
				return err
			}
			watch, _ := cmd.Flags().GetBool("watch")
			stats, _ := cmd.Flags().GetBool("stats")

			return c.app.Build(cmd.Context(), app.BuildOptions{
				Mode:       mode,
				Variant:    app.VariantBuild,
				Watch:      watch,
				WriteStats: stats,
			})
		},
	}
	addBuildFlags(cmd)
	return cmd
}

func (c *CLI) newDevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Compile a development build into build/dev",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			watch, _ := cmd.Flags().GetBool("watch")
			stats, _ := cmd.Flags().GetBool("stats")

			return c.app.Build(cmd.Context(), app.BuildOptions{
				Mode:       domain.ModeDevelopment,
				Variant:    app.VariantDev,
				Watch:      watch,
				WriteStats: stats,
			})
		},
	}
	addBuildFlags(cmd)
	return cmd
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("watch", "w", false, "Rebuild whenever a source file changes")
	cmd.Flags().Bool("stats", false, "Write "+domain.StatsFileName+" to the output directory")
}
