package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mark3labs/campus/internal/school"
	"github.com/mark3labs/campus/internal/tui"
	"github.com/spf13/cobra"
)

var listFlags struct {
	interactive bool
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List created schools",
	Long: `List created schools as a table.

Use --interactive to browse the schools in the TUI instead.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listFlags.interactive, "interactive", "i", false, "Browse schools in the TUI")
}

func runList(cmd *cobra.Command, args []string) error {
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

	if listFlags.interactive {
		return runTUI(ctx, tui.Deps{
			Schools:           b.service,
			Bucket:            b.bucket,
			UploadConcurrency: cfg.UploadConcurrency,
		}, tui.PathSchools)
	}
	return printSchools(ctx, b.service, cmd.OutOrStdout())
}

type schoolLister interface {
	List(ctx context.Context) ([]school.School, error)
}

// printSchools writes one row per school.
func printSchools(ctx context.Context, schools schoolLister, out io.Writer) error {
	list, err := schools.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list schools: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "No schools yet. Run 'campus create' to add one.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSHORT\tNAME\tCOUNTRY\tCREATED")
	for _, s := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Short, s.Name, s.Country, s.CreatedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}
