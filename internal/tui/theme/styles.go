package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	HeaderTitle lipgloss.Style
	Breadcrumb  lipgloss.Style

	// Stepper
	StepCompletedID    lipgloss.Style
	StepCompletedLabel lipgloss.Style
	StepActiveID       lipgloss.Style
	StepActiveLabel    lipgloss.Style
	StepUpcomingID     lipgloss.Style
	StepUpcomingLabel  lipgloss.Style
	StepBarDone        lipgloss.Style
	StepBarActive      lipgloss.Style
	StepBarTodo        lipgloss.Style

	// Form fields
	FieldLabel        lipgloss.Style
	FieldLabelFocused lipgloss.Style
	FieldError        lipgloss.Style
	InputBox          lipgloss.Style
	InputBoxFocused   lipgloss.Style
	InputBoxError     lipgloss.Style

	// Buttons
	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style

	// Hints
	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	// Toasts
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style

	// Detail views
	Card         lipgloss.Style
	CardActive   lipgloss.Style
	SectionTitle lipgloss.Style
	Muted        lipgloss.Style
	Text         lipgloss.Style
	Selected     lipgloss.Style
	Spinner      lipgloss.Style
}
