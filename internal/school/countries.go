package school

import "strings"

// Country is a selectable country with its flag image.
type Country struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Flag string `json:"flag"`
}

var countries = []Country{
	newCountry("Australia", "au"),
	newCountry("Canada", "ca"),
	newCountry("China", "cn"),
	newCountry("France", "fr"),
	newCountry("Germany", "de"),
	newCountry("Japan", "jp"),
	newCountry("Netherlands", "nl"),
	newCountry("New Zealand", "nz"),
	newCountry("Singapore", "sg"),
	newCountry("South Korea", "kr"),
	newCountry("Switzerland", "ch"),
	newCountry("United Kingdom", "gb"),
	newCountry("United States", "us"),
	newCountry("Vietnam", "vn"),
}

func newCountry(name, code string) Country {
	return Country{Name: name, Code: code, Flag: "https://flagcdn.com/w80/" + code + ".png"}
}

// Countries returns the countries a school may be located in.
func Countries() []Country {
	return append([]Country(nil), countries...)
}

// LookupCountry finds a country by name or ISO code, ignoring case.
func LookupCountry(s string) (Country, bool) {
	s = strings.TrimSpace(s)
	for _, c := range countries {
		if strings.EqualFold(c.Name, s) || strings.EqualFold(c.Code, s) {
			return c, true
		}
	}
	return Country{}, false
}
