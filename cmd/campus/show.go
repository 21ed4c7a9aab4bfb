package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mark3labs/campus/internal/school"
	"github.com/mark3labs/campus/internal/tui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var showFlags struct {
	yaml bool
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a school",
	Long: `Open the detail view of a school.

Use --yaml to print the stored school as YAML instead, for example to reuse it
with 'campus create --from'.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showFlags.yaml, "yaml", false, "Print the school as YAML")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	if showFlags.yaml {
		return printSchool(ctx, b.service, args[0], cmd.OutOrStdout())
	}
	return runTUI(ctx, tui.Deps{
		Schools:           b.service,
		Bucket:            b.bucket,
		UploadConcurrency: cfg.UploadConcurrency,
	}, tui.PathSchools+"/"+args[0])
}

type schoolGetter interface {
	Get(ctx context.Context, id string) (school.School, error)
}

// printSchool writes the school with the given id as YAML.
func printSchool(ctx context.Context, schools schoolGetter, id string, out io.Writer) error {
	s, err := schools.Get(ctx, id)
	if errors.Is(err, school.ErrNotFound) {
		return fmt.Errorf("school %s not found", id)
	}
	if err != nil {
		return fmt.Errorf("failed to load school: %w", err)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode school: %w", err)
	}
	return enc.Close()
}
