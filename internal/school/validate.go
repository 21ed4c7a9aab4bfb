package school

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mark3labs/campus/internal/wizard"
)

// Length limits for text fields.
const (
	MinNameLength  = 2
	MaxNameLength  = 120
	MaxShortLength = 16
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validator checks FormData fields. It implements wizard.Validator[FormData].
type Validator struct{}

// ValidateFields validates only the named fields of f.
func (Validator) ValidateFields(_ context.Context, f FormData, fields []string) wizard.FieldErrors {
	errs := wizard.FieldErrors{}
	for _, field := range fields {
		if msg := validateField(f, field); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}

// Validate validates every field of f.
func (v Validator) Validate(ctx context.Context, f FormData) wizard.FieldErrors {
	return v.ValidateFields(ctx, f, wizard.AllFields(Steps()))
}

func validateField(f FormData, field string) string {
	switch field {
	case FieldLogo:
		return required(f.Logo, "Logo")
	case FieldBackground:
		return required(f.Background, "Background")
	case FieldName:
		n := utf8.RuneCountInString(strings.TrimSpace(f.Name))
		if n < MinNameLength || n > MaxNameLength {
			return fmt.Sprintf("Name must be between %d and %d characters", MinNameLength, MaxNameLength)
		}
	case FieldShort:
		n := utf8.RuneCountInString(strings.TrimSpace(f.Short))
		if n == 0 || n > MaxShortLength {
			return fmt.Sprintf("Short name must be between 1 and %d characters", MaxShortLength)
		}
	case FieldColor:
		if !colorPattern.MatchString(f.Color) {
			return "Color must be a hex value like #7D1F1F"
		}
	case FieldCountry:
		if _, ok := LookupCountry(f.Country); !ok {
			return "Choose a country from the list"
		}
	case FieldLocations:
		return validateLocations(f.Locations)
	case FieldPrograms:
		return validatePrograms(f.Programs)
	case FieldGalleries:
		return validateGalleries(f.Galleries)
	case FieldScholarships:
		return validateScholarships(f.Scholarships)
	}
	return ""
}

func required(value, label string) string {
	if strings.TrimSpace(value) == "" {
		return label + " is required"
	}
	return ""
}

func validateLocations(locations []Location) string {
	if len(locations) == 0 {
		return "Add at least one location"
	}
	for i, l := range locations {
		if strings.TrimSpace(l.Name) == "" {
			return fmt.Sprintf("Location %d: name is required", i+1)
		}
		if strings.TrimSpace(l.Address) == "" {
			return fmt.Sprintf("Location %d: address is required", i+1)
		}
	}
	return ""
}

func validatePrograms(programs []Program) string {
	if len(programs) == 0 {
		return "Add at least one program"
	}
	for i, p := range programs {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Sprintf("Program %d: name is required", i+1)
		}
	}
	return ""
}

func validateGalleries(galleries []Gallery) string {
	for i, g := range galleries {
		if strings.TrimSpace(g.Name) == "" {
			return fmt.Sprintf("Gallery %d: name is required", i+1)
		}
		if len(g.Images) == 0 {
			return fmt.Sprintf("Gallery %d: add at least one image", i+1)
		}
	}
	return ""
}

func validateScholarships(scholarships []Scholarship) string {
	for i, s := range scholarships {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Sprintf("Scholarship %d: name is required", i+1)
		}
		if s.URL != "" && !isHTTPURL(s.URL) {
			return fmt.Sprintf("Scholarship %d: link must be an http(s) URL", i+1)
		}
	}
	return ""
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
