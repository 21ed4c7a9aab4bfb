package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRoute(t *testing.T) {
	tests := []struct {
		path string
		want Route
	}{
		{"/schools", Route{Kind: RouteSchools}},
		{"/schools/", Route{Kind: RouteSchools}},
		{"", Route{Kind: RouteSchools}},
		{"/schools/new", Route{Kind: RouteNewSchool}},
		{"/schools/abc123", Route{Kind: RouteSchool, ID: "abc123"}},
		{"/schools/abc123/edit", Route{Kind: RouteUnknown}},
		{"/teachers", Route{Kind: RouteUnknown}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRoute(tt.path))
		})
	}
}

func TestHeading(t *testing.T) {
	assert.Equal(t, "Hanoi University", Heading("/schools/abc", "Hanoi University"))
	assert.Equal(t, "Schools", Heading("/schools", ""))
	assert.Equal(t, "New school", Heading("/schools/new", ""))
	assert.Equal(t, "Schools", Heading("/schools/abc123", ""), "detail pages fall back to the closest nav item")
	assert.Equal(t, "", Heading("/elsewhere", ""))
}

func TestNavigate(t *testing.T) {
	msg := Navigate("/schools/abc123")()
	assert.Equal(t, NavigateMsg{Path: "/schools/abc123"}, msg)
}
