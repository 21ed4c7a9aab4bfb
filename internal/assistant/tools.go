package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/campus/internal/logger"
	"github.com/mark3labs/campus/internal/school"
	"github.com/mark3labs/campus/internal/wizard"
	"github.com/mark3labs/mcp-go/mcp"
)

// Summary is the list-schools view of a school.
type Summary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Short   string `json:"short"`
	Country string `json:"country"`
	Path    string `json:"path"`
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("list-countries",
			mcp.WithDescription("List the countries a school can be located in, with flag image URLs"),
		),
		s.handleListCountries,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list-schools",
			mcp.WithDescription("List schools in the catalog, optionally filtered by country"),
			mcp.WithString("country",
				mcp.Description("Only return schools located in this country (name or ISO code)"),
			),
		),
		s.handleListSchools,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get-school",
			mcp.WithDescription("Get every detail of one school"),
			mcp.WithString("id", mcp.Required(),
				mcp.Description("School id as returned by list-schools"),
			),
		),
		s.handleGetSchool,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("create-school",
			mcp.WithDescription("Create a school. Returns {success, id} or {success:false, error} where error is a message or an object of field errors"),
			mcp.WithObject("school", mcp.Required(),
				mcp.Description("School form: logo, background, name, short, color (#RRGGBB), country, "+
					"locations [{name,address,images}], programs [{name,description,cover}], "+
					"galleries [{name,description,images}], scholarships [{name,description,cover,url}]"),
			),
		),
		s.handleCreateSchool,
	)
}

func (s *Server) handleListCountries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(school.Countries())
}

func (s *Server) handleListSchools(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	country := ""
	if args := request.GetArguments(); args != nil {
		if raw, ok := args["country"].(string); ok && strings.TrimSpace(raw) != "" {
			c, found := school.LookupCountry(raw)
			if !found {
				return mcp.NewToolResultError(fmt.Sprintf("unknown country %q, use list-countries", raw)), nil
			}
			country = c.Name
		}
	}

	all, err := s.schools.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list schools: %v", err)), nil
	}

	out := make([]Summary, 0, len(all))
	for _, sc := range all {
		if country != "" && sc.Country != country {
			continue
		}
		out = append(out, Summary{
			ID:      sc.ID,
			Name:    sc.Name,
			Short:   sc.Short,
			Country: sc.Country,
			Path:    wizard.SchoolPath(sc.ID),
		})
	}
	return jsonResult(out)
}

func (s *Server) handleGetSchool(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, _ := request.GetArguments()["id"].(string)
	if strings.TrimSpace(id) == "" {
		return mcp.NewToolResultError("missing 'id' parameter"), nil
	}

	sc, err := s.schools.Get(ctx, id)
	if errors.Is(err, school.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("school %s not found", id)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load school: %v", err)), nil
	}
	return jsonResult(sc)
}

func (s *Server) handleCreateSchool(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	raw, ok := args["school"]
	if !ok || raw == nil {
		return mcp.NewToolResultError("missing 'school' parameter"), nil
	}

	// Round trip through JSON to decode the generic map into the form.
	data, err := json.Marshal(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid 'school' parameter: %v", err)), nil
	}
	form := school.NewFormData()
	if err := json.Unmarshal(data, &form); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid 'school' parameter: %v", err)), nil
	}

	res, err := s.schools.Create(ctx, form)
	if err != nil {
		logger.Error("create-school failed: %v", err)
		return mcp.NewToolResultError(wizard.DefaultFailureMessage), nil
	}
	return jsonResult(res)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
