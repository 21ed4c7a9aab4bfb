package school

import "github.com/mark3labs/campus/internal/wizard"

// Form field names. They match the JSON names of FormData.
const (
	FieldLogo         = "logo"
	FieldBackground   = "background"
	FieldName         = "name"
	FieldShort        = "short"
	FieldColor        = "color"
	FieldCountry      = "country"
	FieldLocations    = "locations"
	FieldPrograms     = "programs"
	FieldGalleries    = "galleries"
	FieldScholarships = "scholarships"
)

// Steps returns the six steps of the school creation wizard.
func Steps() []wizard.Step {
	return []wizard.Step{
		{
			ID:     "Step 1",
			Label:  "School information",
			Fields: []string{FieldLogo, FieldBackground, FieldName, FieldShort, FieldColor, FieldCountry},
		},
		{ID: "Step 2", Label: "Add locations", Fields: []string{FieldLocations}},
		{ID: "Step 3", Label: "Add programs", Fields: []string{FieldPrograms}},
		{ID: "Step 4", Label: "Add galleries (optional)", Fields: []string{FieldGalleries}},
		{ID: "Step 5", Label: "Add scholarships (optional)", Fields: []string{FieldScholarships}},
		{ID: "Step 6", Label: "Confirm information"},
	}
}
