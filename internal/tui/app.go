// Package tui implements the campus terminal interface: the school creation
// wizard, the school list and the school detail view.
package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/campus/internal/logger"
	"github.com/mark3labs/campus/internal/school"
	"github.com/mark3labs/campus/internal/tui/theme"
	"github.com/mark3labs/campus/internal/upload"
	"github.com/mark3labs/campus/internal/wizard"
)

// Schools is the school endpoint used by the pages.
type Schools interface {
	Create(ctx context.Context, f school.FormData) (wizard.Result, error)
	Get(ctx context.Context, id string) (school.School, error)
	List(ctx context.Context) ([]school.School, error)
}

// Deps holds the collaborators of the app.
type Deps struct {
	Schools           Schools
	Bucket            upload.Bucket // Optional, disables uploads when nil
	UploadConcurrency int
	Initial           *school.FormData // Optional prefill of the create wizard
}

// page is a routed view.
type page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	Title() string
	Hints() string
}

// App is the root model. It routes paths to pages and draws the heading,
// hint bar and toasts around the active page.
type App struct {
	ctx      context.Context
	deps     Deps
	path     string
	page     page
	toast    *Toast
	width    int
	height   int
	quitting bool
}

// NewApp creates the app showing path on start.
func NewApp(ctx context.Context, deps Deps, path string) *App {
	return &App{
		ctx:   ctx,
		deps:  deps,
		path:  path,
		toast: NewToast(),
	}
}

func (a *App) Init() tea.Cmd {
	return a.navigate(a.path)
}

// Path returns the current route path.
func (a *App) Path() string {
	return a.path
}

// navigate resolves path and mounts its page. Unknown paths redirect to
// the school list.
func (a *App) navigate(path string) tea.Cmd {
	route := ParseRoute(path)
	var p page

	switch route.Kind {
	case RouteSchools:
		p = NewSchoolList(a.ctx, a.deps.Schools)
	case RouteSchool:
		p = NewSchoolDetail(a.ctx, a.deps.Schools, route.ID)
	case RouteNewSchool:
		initial := school.NewFormData()
		if a.deps.Initial != nil {
			initial = a.deps.Initial.Clone()
		}
		w, err := NewCreateWizard(a.ctx, a.deps, initial)
		if err != nil {
			logger.Error("Failed to open create wizard: %v", err)
			return tea.Batch(a.navigate(PathSchools), ShowToast(ToastError, "Cannot create schools right now"))
		}
		p = w
	default:
		logger.Debug("Unknown path %q, redirecting", path)
		return a.navigate(PathSchools)
	}

	logger.Debug("Navigating to %s", path)
	a.path = path
	a.page = p
	if a.width > 0 {
		a.page.SetSize(a.width, a.pageHeight())
	}
	return a.page.Init()
}

func (a *App) pageHeight() int {
	// Heading and blank line on top, hint bar at the bottom.
	h := a.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.page != nil {
			a.page.SetSize(a.width, a.pageHeight())
		}
		return a, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			a.quitting = true
			return a, tea.Quit
		}

	case NavigateMsg:
		return a, a.navigate(msg.Path)

	case ShowToastMsg:
		return a, a.toast.Show(msg.Kind, msg.Text)

	case ToastDismissMsg:
		return a, a.toast.Update(msg)
	}

	if a.page == nil {
		return a, nil
	}
	return a, a.page.Update(msg)
}

// Toast returns the toast component.
func (a *App) Toast() *Toast {
	return a.toast
}

// View renders the current view. In Bubbletea v2, this returns tea.View
// with display options like AltScreen and MouseMode.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion

	if a.quitting || a.width == 0 || a.height == 0 {
		view.AltScreen = !a.quitting
		view.MouseMode = 0
		view.Content = lipgloss.NewLayer("")
		return view
	}

	view.Content = lipgloss.NewLayer(a.Render())
	view.BackgroundColor = theme.HexToColor(theme.Current().BgBase)
	return view
}

// Render draws the app into a screen buffer and returns its content.
func (a *App) Render() string {
	canvas := uv.NewScreenBuffer(a.width, a.height)
	a.Draw(canvas, canvas.Bounds())
	return canvas.Render()
}

// Draw renders all components to the screen buffer.
func (a *App) Draw(scr uv.Screen, area uv.Rectangle) {
	s := theme.Current().S()

	title := ""
	hints := ""
	body := ""
	if a.page != nil {
		title = a.page.Title()
		hints = a.page.Hints()
		body = a.page.View()
	}

	heading := s.HeaderTitle.Render(Heading(a.path, title)) + "  " + s.Breadcrumb.Render(a.path)
	DrawLine(scr, area, area.Min.Y, heading)

	DrawText(scr, uv.Rect(area.Min.X+1, area.Min.Y+2, area.Dx()-1, a.pageHeight()), body)

	DrawLine(scr, area, area.Max.Y-1, hints)

	// Draw toast last so it appears on top of everything
	if a.toast.IsVisible() {
		DrawBottomRight(scr, area, a.toast.View(area.Dx()), 1)
	}
}
