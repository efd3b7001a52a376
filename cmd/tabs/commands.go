package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/tabs/internal/config"
	"github.com/nikbrunner/tabs/internal/snapshot"
)

func newListCmd(app *App) *cobra.Command {
	var query string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the browser's tabs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tabs, err := visibleTabs(app, query)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return snapshot.WriteJSON(out, tabs)
			}
			for _, t := range tabs {
				fmt.Fprintf(out, "%d\t%s\t%s\n", t.ID, t.DisplayTitle(), t.URL)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only tabs whose title or URL contains this text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Export tabs as a bookmark HTML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var outputPath string
			if len(args) == 1 {
				outputPath = args[0]
			} else {
				var err error
				outputPath, err = snapshot.DefaultExportPath()
				if err != nil {
					return fmt.Errorf("default export path: %w", err)
				}
			}

			tabs, err := visibleTabs(app, query)
			if err != nil {
				return err
			}

			if err := os.WriteFile(outputPath, []byte(snapshot.ExportHTML(tabs)), 0644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tabs to %s\n", len(tabs), outputPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only tabs whose title or URL contains this text")
	return cmd
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
		// The file may not exist yet, so skip loading it.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.ConfigPath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				var err error
				path, err = config.DefaultConfigFilePath()
				if err != nil {
					return fmt.Errorf("default config path: %w", err)
				}
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}
