package tui

import (
	"testing"

	"github.com/mark3labs/campus/internal/school"
	"github.com/mark3labs/campus/internal/tui/testfixtures"
	"github.com/mark3labs/campus/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepViews_MatchSteps(t *testing.T) {
	views := newStepViews()
	require.Len(t, views, len(school.Steps()))

	for i, step := range school.Steps() {
		if lv, ok := views[i].(*listStep); ok {
			require.Len(t, step.Fields, 1)
			assert.Equal(t, step.Fields[0], lv.field, "step %d", i)
		}
	}
}

func TestInfoStep_LoadApply(t *testing.T) {
	s := newInfoStep()
	s.Load(testfixtures.ValidForm())

	var f school.FormData
	s.Apply(&f)
	want := testfixtures.ValidForm()
	assert.Equal(t, want.Name, f.Name)
	assert.Equal(t, want.Short, f.Short)
	assert.Equal(t, want.Logo, f.Logo)
	assert.Equal(t, want.Color, f.Color)
	assert.Equal(t, "Vietnam", f.Country)
}

func TestInfoStep_CountrySelector(t *testing.T) {
	s := newInfoStep()
	s.SetErrors(wizard.FieldErrors{school.FieldCountry: "Choose a country from the list"})
	s.Focus(school.FieldCountry)
	require.True(t, s.countryFocused())

	s.Update(key("right"))
	var f school.FormData
	s.Apply(&f)
	assert.Equal(t, school.Countries()[0].Name, f.Country)
	assert.Empty(t, s.errs, "choosing a country clears its error")

	s.Update(key("left"))
	s.Apply(&f)
	countries := school.Countries()
	assert.Equal(t, countries[len(countries)-1].Name, f.Country)
}

func TestInfoStep_TabCycles(t *testing.T) {
	s := newInfoStep()
	s.Focus("")
	for i := 0; i < len(infoFields); i++ {
		s.Update(key("tab"))
	}
	assert.True(t, s.countryFocused())
	s.Update(key("tab"))
	assert.Equal(t, 0, s.focus)
	s.Update(key("shift+tab"))
	assert.True(t, s.countryFocused())
}

func TestInfoStep_View(t *testing.T) {
	s := newInfoStep()
	s.SetSize(100, 20)
	s.SetErrors(wizard.FieldErrors{school.FieldName: "Name must be between 2 and 120 characters"})
	view := plain(s.View())
	assert.Contains(t, view, "Brand color")
	assert.Contains(t, view, "#7D1F1F")
	assert.Contains(t, view, "Name must be between 2 and 120 characters")
	assert.Contains(t, view, "choose a country")
}

func TestListStep_AddDeleteSkipsBlankRows(t *testing.T) {
	s := newGalleriesStep()
	s.Focus("")
	var f school.FormData
	s.Apply(&f)
	assert.Nil(t, f.Galleries)

	s.Update(key("ctrl+a"))
	s.Update(key("ctrl+a"))
	require.Len(t, s.rows, 2)
	s.rows[0].inputs[0].SetValue("Campus life")
	s.rows[0].inputs[2].SetValue("a.png, https://cdn/b.png")

	s.Apply(&f)
	require.Len(t, f.Galleries, 1, "blank rows are ignored")
	assert.Equal(t, []string{"a.png", "https://cdn/b.png"}, f.Galleries[0].Images)

	s.row = 0
	s.Update(key("ctrl+d"))
	require.Len(t, s.rows, 1)
	s.Apply(&f)
	assert.Nil(t, f.Galleries)
}

func TestListStep_RequiredStepKeepsOneRow(t *testing.T) {
	s := newLocationsStep()
	require.Len(t, s.rows, 1)
	s.Focus("")
	s.Update(key("ctrl+d"))
	assert.Len(t, s.rows, 1)
}

func TestListStep_LoadApply(t *testing.T) {
	form := testfixtures.FullForm()
	for _, s := range []*listStep{newLocationsStep(), newProgramsStep(), newGalleriesStep(), newScholarshipsStep()} {
		s.Load(form)
		var f school.FormData
		s.Apply(&f)
		switch s.field {
		case school.FieldLocations:
			assert.Equal(t, form.Locations, f.Locations)
		case school.FieldPrograms:
			assert.Equal(t, form.Programs, f.Programs)
		case school.FieldGalleries:
			assert.Equal(t, form.Galleries, f.Galleries)
		case school.FieldScholarships:
			assert.Equal(t, form.Scholarships, f.Scholarships)
		}
	}
}

func TestListStep_TabWrapsRows(t *testing.T) {
	s := newLocationsStep()
	s.Focus("")
	s.Update(key("ctrl+a"))
	require.Equal(t, 1, s.row)

	for i := 0; i < len(s.columns); i++ {
		s.Update(key("tab"))
	}
	assert.Equal(t, 0, s.row, "tab past the last cell wraps to the first row")
	assert.Equal(t, 0, s.col)
}

func TestListStep_EditorKeepsMultilineMarkdown(t *testing.T) {
	s := newScholarshipsStep()
	s.Focus("")
	s.Update(key("ctrl+a"))
	s.rows[0].inputs[0].SetValue("Excellence Award")

	content := "Covers **full tuition**.\n\n- GPA above 3.6\n- Interview"
	s.Update(editorDoneMsg{target: s.target(0, 1), content: content})

	assert.Equal(t, "Covers **full tuition**. - GPA above 3.6 - Interview", s.rows[0].inputs[1].Value())
	var f school.FormData
	s.Apply(&f)
	require.Len(t, f.Scholarships, 1)
	assert.Equal(t, content, f.Scholarships[0].Description)

	// Retyping inline replaces the multi-line text.
	s.rows[0].inputs[1].SetValue("Short text")
	s.Apply(&f)
	assert.Equal(t, "Short text", f.Scholarships[0].Description)
}

func TestListStep_UploadRequest(t *testing.T) {
	s := newLocationsStep()
	s.Focus("")
	s.rows[0].inputs[2].SetValue("hall.png, https://cdn/x.png, yard.jpg")
	s.col = 2

	msgs := collect(s.Update(key("ctrl+u")))
	req, ok := findMsg[uploadRequestMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, []string{"hall.png", "yard.jpg"}, req.paths)

	s.ApplyUpload(req.target, req.paths, []string{"https://cdn/hall.png", "https://cdn/yard.jpg"})
	assert.Equal(t, "https://cdn/hall.png, https://cdn/x.png, https://cdn/yard.jpg", s.rows[0].inputs[2].Value())
}

func TestListStep_ShowsError(t *testing.T) {
	s := newLocationsStep()
	s.SetErrors(wizard.FieldErrors{school.FieldLocations: "Location 1: address is required"})
	assert.Contains(t, plain(s.View()), "Location 1: address is required")
}

func TestPreviewStep_ToggleRaw(t *testing.T) {
	p := newPreviewStep()
	p.SetSize(100, 20)
	assert.Contains(t, plain(p.View()), "Nothing to preview yet.")

	p.SetDraft(testfixtures.FullForm())
	assert.Contains(t, plain(p.View()), "View: Formatted")
	p.Update(key("ctrl+y"))
	assert.True(t, p.raw)
	assert.Contains(t, plain(p.View()), "View: YAML")
}

func TestSchoolMarkdown(t *testing.T) {
	md := schoolMarkdown(testfixtures.FullForm())
	assert.Contains(t, md, "# Hanoi University of Science (HUS)")
	assert.Contains(t, md, "Vietnam (VN)")
	assert.Contains(t, md, "## Locations")
	assert.Contains(t, md, "### Excellence Award")
	assert.Contains(t, md, "[More information](https://hus.example.edu/excellence)")

	y := schoolYAML(testfixtures.ValidForm())
	assert.Contains(t, y, "name: Hanoi University of Science")
	assert.Contains(t, y, "country: Vietnam")
}
