package testfixtures

import (
	"time"

	"github.com/mark3labs/campus/internal/school"
)

// Fixed test values for consistent assertions
const (
	FixedSchoolID   = "abc123"
	FixedSchoolName = "Hanoi University of Science"
)

var (
	FixedTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
)

// EmptyForm returns a new form with defaults applied.
func EmptyForm() school.FormData {
	return school.NewFormData()
}

// ValidForm returns a form that passes validation on every step.
func ValidForm() school.FormData {
	f := school.NewFormData()
	f.Logo = "https://cdn.example.com/logo.png"
	f.Background = "https://cdn.example.com/background.png"
	f.Name = FixedSchoolName
	f.Short = "HUS"
	f.Country = "Vietnam"
	f.Locations = []school.Location{
		{Name: "Main campus", Address: "334 Nguyen Trai, Thanh Xuan"},
	}
	f.Programs = []school.Program{
		{Name: "Computer Science", Description: "Four year bachelor program"},
	}
	return f
}

// FullForm returns a valid form with optional galleries and scholarships.
func FullForm() school.FormData {
	f := ValidForm()
	f.Galleries = []school.Gallery{
		{Name: "Campus life", Images: []string{"https://cdn.example.com/g1.png", "https://cdn.example.com/g2.png"}},
	}
	f.Scholarships = []school.Scholarship{
		{
			Name:        "Excellence Award",
			Description: "Covers **full tuition** for top students.",
			URL:         "https://hus.example.edu/excellence",
		},
		{
			Name:        "Research Grant",
			Description: "Funding for undergraduate research projects.",
			URL:         "https://hus.example.edu/research",
		},
	}
	return f
}

// SchoolWithScholarships returns a persisted school built from FullForm.
func SchoolWithScholarships() school.School {
	return school.School{
		FormData:  FullForm(),
		ID:        FixedSchoolID,
		Slug:      school.Slugify(FixedSchoolName),
		CreatedAt: FixedTime,
	}
}
