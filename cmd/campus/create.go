package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/campus/internal/logger"
	"github.com/mark3labs/campus/internal/school"
	"github.com/mark3labs/campus/internal/tui"
	"github.com/mark3labs/campus/internal/wizard"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var createFlags struct {
	from string
	edit bool
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a school with the step wizard",
	Long: `Create a school with the six step creation wizard.

By default the wizard runs as a full-screen TUI. With --from the wizard runs
headless: the YAML file is loaded as the form, every step is validated in
order and the school is submitted. Combine --from with --edit to open the TUI
prefilled with the file contents instead.`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createFlags.from, "from", "f", "", "YAML file with the school form")
	createCmd.Flags().BoolVarP(&createFlags.edit, "edit", "e", false, "Open the TUI prefilled with --from instead of submitting")
}

func runCreate(cmd *cobra.Command, args []string) error {
	if createFlags.edit && createFlags.from == "" {
		return fmt.Errorf("--edit requires --from")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
		}
	}()

	var initial *school.FormData
	if createFlags.from != "" {
		form, err := readForm(createFlags.from)
		if err != nil {
			return err
		}
		if !createFlags.edit {
			_, err := createHeadless(ctx, b.service, form, cmd.OutOrStdout())
			return err
		}
		initial = &form
	}

	return runTUI(ctx, tui.Deps{
		Schools:           b.service,
		Bucket:            b.bucket,
		UploadConcurrency: cfg.UploadConcurrency,
		Initial:           initial,
	}, tui.PathNewSchool)
}

// runTUI runs the full-screen app starting at path.
func runTUI(ctx context.Context, deps tui.Deps, path string) error {
	p := tea.NewProgram(tui.NewApp(ctx, deps, path), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}

// readForm loads a school form from a YAML file. Missing keys keep the
// defaults of a new form.
func readForm(path string) (school.FormData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return school.FormData{}, fmt.Errorf("failed to read form: %w", err)
	}
	form := school.NewFormData()
	if err := yaml.Unmarshal(data, &form); err != nil {
		return school.FormData{}, fmt.Errorf("failed to parse form %s: %w", path, err)
	}
	return form, nil
}

// printer reports wizard notifications on a writer.
type printer struct {
	w    io.Writer
	path string
}

func (p *printer) Success(msg string) { fmt.Fprintf(p.w, "✓ %s\n", msg) }
func (p *printer) Error(msg string)   { fmt.Fprintf(p.w, "✗ %s\n", msg) }
func (p *printer) GoTo(path string)   { p.path = path }

// createHeadless drives the wizard through every step with form and submits
// it. It returns the path of the created school.
func createHeadless(ctx context.Context, creator wizard.Creator[school.FormData], form school.FormData, out io.Writer) (string, error) {
	p := &printer{w: out}
	ctrl, err := wizard.New(wizard.Config[school.FormData]{
		Steps:     school.Steps(),
		Values:    form.Clone,
		Validator: school.Validator{},
		Creator:   creator,
		Notifier:  p,
		Navigator: p,
	})
	if err != nil {
		return "", err
	}

	for !ctrl.IsTerminal() {
		step := ctrl.ActiveStep()
		if err := ctrl.GoNext(ctx); err != nil {
			var verr *wizard.ValidationError
			if errors.As(err, &verr) {
				fmt.Fprintf(out, "✗ %s is invalid\n", step.Label)
				for _, field := range step.Fields {
					if msg, ok := verr.Fields[field]; ok {
						fmt.Fprintf(out, "  %s: %s\n", field, msg)
					}
				}
				return "", fmt.Errorf("%s: %w", step.Label, err)
			}
			return "", err
		}
		logger.Debug("Headless wizard completed %s", step.Label)
		fmt.Fprintf(out, "✓ %s\n", step.Label)
	}

	if err := ctrl.Submit(ctx); err != nil {
		return "", err
	}
	fmt.Fprintf(out, "→ %s\n", p.path)
	return p.path, nil
}
