package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/campus/internal/config"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	project bool
	force   bool
	store   string
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create campus configuration file",
	Long: `Create a campus configuration file with sensible defaults.

By default, creates a global config at ~/.config/campus/campus.yml.
Use --project to create a project-local config in the current directory.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
	setupCmd.Flags().StringVarP(&setupFlags.store, "store", "s", config.StoreNATS, "Store backend: nats, sqlite or memory")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	cfg := defaultConfig(setupFlags.store)
	if err := cfg.Validate(); err != nil {
		return err
	}

	var err error
	if setupFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config written to: %s\n\n", targetPath)
	fmt.Fprintln(cmd.OutOrStdout(), "Run 'campus create' to get started.")
	return nil
}

// defaultConfig returns the configuration written by setup.
func defaultConfig(store string) *config.Config {
	return &config.Config{
		DataDir:           ".campus",
		Store:             store,
		UploadConcurrency: 4,
		LogLevel:          "info",
		AssistantAddr:     "127.0.0.1:7331",
	}
}

// fileExists checks if a file exists (helper for setup command).
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
