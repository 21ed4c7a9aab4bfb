// Package school holds the school domain model, the creation steps and the
// creation endpoint consumed by the wizard.
package school

import (
	"time"

	"github.com/gosimple/slug"
)

// DefaultColor is the brand color preselected in a new form.
const DefaultColor = "#7D1F1F"

// FormData holds every field collected by the creation wizard.
type FormData struct {
	Logo         string        `json:"logo" yaml:"logo"`
	Background   string        `json:"background" yaml:"background"`
	Name         string        `json:"name" yaml:"name"`
	Short        string        `json:"short" yaml:"short"`
	Color        string        `json:"color" yaml:"color"`
	Country      string        `json:"country" yaml:"country"`
	Locations    []Location    `json:"locations" yaml:"locations"`
	Programs     []Program     `json:"programs" yaml:"programs"`
	Galleries    []Gallery     `json:"galleries" yaml:"galleries"`
	Scholarships []Scholarship `json:"scholarships" yaml:"scholarships"`
}

// Location is a campus of the school.
type Location struct {
	Name    string   `json:"name" yaml:"name"`
	Address string   `json:"address" yaml:"address"`
	Images  []string `json:"images,omitempty" yaml:"images,omitempty"`
}

// Program is a study program offered by the school.
type Program struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Cover       string `json:"cover,omitempty" yaml:"cover,omitempty"`
}

// Gallery is a named collection of images.
type Gallery struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Images      []string `json:"images" yaml:"images"`
}

// Scholarship is a scholarship offered by the school.
type Scholarship struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"` // Markdown
	Cover       string `json:"cover,omitempty" yaml:"cover,omitempty"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
}

// School is a persisted school.
type School struct {
	FormData  `yaml:",inline"`
	ID        string    `json:"id" yaml:"id"`
	Slug      string    `json:"slug" yaml:"slug"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewFormData returns an empty form with default values applied.
func NewFormData() FormData {
	return FormData{Color: DefaultColor}
}

// Slugify returns the URL slug for a school name.
func Slugify(name string) string {
	return slug.Make(name)
}

// Clone returns a deep copy of the form so the copy can be held as a draft
// while the original keeps being edited.
func (f FormData) Clone() FormData {
	out := f
	out.Locations = make([]Location, len(f.Locations))
	for i, l := range f.Locations {
		l.Images = cloneStrings(l.Images)
		out.Locations[i] = l
	}
	out.Programs = append([]Program(nil), f.Programs...)
	out.Galleries = make([]Gallery, len(f.Galleries))
	for i, g := range f.Galleries {
		g.Images = cloneStrings(g.Images)
		out.Galleries[i] = g
	}
	out.Scholarships = append([]Scholarship(nil), f.Scholarships...)

	if f.Locations == nil {
		out.Locations = nil
	}
	if f.Galleries == nil {
		out.Galleries = nil
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
