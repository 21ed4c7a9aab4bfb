package tui

import (
	"fmt"
	"strings"

	"github.com/mark3labs/campus/internal/school"
	"gopkg.in/yaml.v3"
)

// schoolMarkdown renders a form as a markdown document.
func schoolMarkdown(f school.FormData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s", f.Name)
	if f.Short != "" {
		fmt.Fprintf(&b, " (%s)", f.Short)
	}
	b.WriteString("\n\n")

	country := f.Country
	if c, ok := school.LookupCountry(f.Country); ok {
		country = fmt.Sprintf("%s (%s)", c.Name, strings.ToUpper(c.Code))
	}
	fmt.Fprintf(&b, "**Country:** %s  \n**Color:** `%s`  \n", country, f.Color)
	fmt.Fprintf(&b, "**Logo:** %s  \n**Background:** %s\n", f.Logo, f.Background)

	if len(f.Locations) > 0 {
		b.WriteString("\n## Locations\n\n")
		for _, l := range f.Locations {
			fmt.Fprintf(&b, "- **%s**: %s", l.Name, l.Address)
			if n := len(l.Images); n > 0 {
				fmt.Fprintf(&b, " (%d images)", n)
			}
			b.WriteString("\n")
		}
	}

	if len(f.Programs) > 0 {
		b.WriteString("\n## Programs\n\n")
		for _, p := range f.Programs {
			fmt.Fprintf(&b, "- **%s**", p.Name)
			if p.Description != "" {
				fmt.Fprintf(&b, ": %s", p.Description)
			}
			b.WriteString("\n")
		}
	}

	if len(f.Galleries) > 0 {
		b.WriteString("\n## Galleries\n\n")
		for _, g := range f.Galleries {
			fmt.Fprintf(&b, "- **%s** (%d images)\n", g.Name, len(g.Images))
		}
	}

	if len(f.Scholarships) > 0 {
		b.WriteString("\n## Scholarships\n")
		for _, s := range f.Scholarships {
			fmt.Fprintf(&b, "\n### %s\n\n", s.Name)
			if s.Description != "" {
				b.WriteString(s.Description + "\n")
			}
			if s.URL != "" {
				fmt.Fprintf(&b, "\n[More information](%s)\n", s.URL)
			}
		}
	}

	return b.String()
}

// schoolYAML renders a form as YAML, the format read by `campus create --from`.
func schoolYAML(f school.FormData) string {
	data, err := yaml.Marshal(f)
	if err != nil {
		return err.Error()
	}
	return string(data)
}
