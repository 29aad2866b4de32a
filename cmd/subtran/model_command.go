package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"subtran/internal/model"
)

func newModelCommand(ctx *commandContext) *cobra.Command {
	modelCmd := &cobra.Command{
		Use:   "model",
		Short: "Offline model utilities",
	}

	modelCmd.AddCommand(newModelStatusCommand(ctx))
	modelCmd.AddCommand(newModelInstallCommand(ctx))

	return modelCmd
}

func (c *commandContext) modelManager() (*model.Manager, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return model.NewManager(
		cfg.Paths.ModelDir,
		cfg.Model.DownloadURL,
		cfg.Model.MinFreeGiB,
		time.Duration(cfg.Model.TimeoutSeconds)*time.Second,
		model.WithLogger(c.logger()),
	), nil
}

func newModelStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the model package is installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			mgr, err := ctx.modelManager()
			if err != nil {
				return err
			}
			installed, err := mgr.Installed()
			if err != nil {
				return err
			}
			path, err := mgr.Path()
			if err != nil {
				return err
			}

			rows := [][]string{
				{"Installed", yesNo(installed)},
				{"Path", path},
				{"Download URL", cfg.Model.DownloadURL},
				{"Auto install", yesNo(cfg.Model.AutoInstall)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}
}

func newModelInstallCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Download and install the model package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.modelManager()
			if err != nil {
				return err
			}
			if installed, err := mgr.Installed(); err != nil {
				return err
			} else if installed {
				path, _ := mgr.Path()
				fmt.Fprintf(cmd.OutOrStdout(), "Model already installed at %s\n", path)
				return nil
			}
			if err := mgr.Ensure(cmd.Context()); err != nil {
				return err
			}
			path, err := mgr.Path()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Model installed at %s\n", path)
			return nil
		},
	}
}
