package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/campus/internal/logger"
	"github.com/mark3labs/campus/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "█▀▀ ▄▀█ █▀▄▀█ █▀█ █ █ █▀"
	logoText2 = "█▄▄ █▀█ █ ▀ █ █▀▀ █▄█ ▄█"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "campus",
	Short: "Register and browse schools from the terminal",
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

campus registers schools through a six step creation wizard: information,
locations, programs, galleries, scholarships and a final confirmation.
Schools are stored in an embedded NATS JetStream event log (default) or a
SQLite database, and the catalog can be exposed to chat assistants as MCP tools.`

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(assistantCmd)
	rootCmd.AddCommand(setupCmd)
}
