// Package mcpadapter exposes the recommendation engines as MCP tools so
// assistants can call them over stdio.
package mcpadapter

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kirillkom/scheme-advisor/internal/core/domain"
	"github.com/kirillkom/scheme-advisor/internal/core/ports"
)

const (
	ToolRecommendDistrict = "recommend_district_schemes"
	ToolRecommendProfile  = "recommend_profile_schemes"
)

type Tools struct {
	districts ports.DistrictAdvisor
	profiles  ports.ProfileAdvisor
}

func NewTools(districts ports.DistrictAdvisor, profiles ports.ProfileAdvisor) *Tools {
	return &Tools{
		districts: districts,
		profiles:  profiles,
	}
}

func NewServer(version string, tools *Tools) *server.MCPServer {
	s := server.NewMCPServer("scheme-advisor", version, server.WithToolCapabilities(false))

	s.AddTool(mcp.NewTool(ToolRecommendDistrict,
		mcp.WithDescription("Compute census metrics for an Indian district and list the postal schemes suited to it."),
		mcp.WithString("district", mcp.Required(), mcp.Description("District name as written in the 2011 census, case-insensitive.")),
	), tools.RecommendDistrict)

	s.AddTool(mcp.NewTool(ToolRecommendProfile,
		mcp.WithDescription("Recommend postal schemes for one person and list post offices near their pincode."),
		mcp.WithString("name", mcp.Description("Person's name.")),
		mcp.WithNumber("age", mcp.Description("Age in years.")),
		mcp.WithString("gender", mcp.Description("female, male or other.")),
		mcp.WithString("occupation", mcp.Description("farmer, student, business, retired, government employee, housewife, unemployed or private employee.")),
		mcp.WithString("district", mcp.Description("Home district.")),
		mcp.WithString("pincode", mcp.Description("Six digit postal code.")),
	), tools.RecommendProfile)

	return s
}

func (t *Tools) RecommendDistrict(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	district, err := req.RequireString("district")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := t.districts.Recommend(ctx, district)
	if err != nil {
		if domain.IsKind(err, domain.ErrDistrictNotFound) {
			return mcp.NewToolResultError("District not found"), nil
		}
		return nil, err
	}
	return jsonResult(report)
}

func (t *Tools) RecommendProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := t.profiles.Recommend(ctx, domain.ProfileInput{
		Name:       req.GetString("name", ""),
		Age:        req.GetInt("age", 0),
		Gender:     req.GetString("gender", ""),
		Occupation: req.GetString("occupation", ""),
		District:   req.GetString("district", ""),
		Pincode:    pincodeArgument(req),
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(report)
}

// pincodeArgument tolerates clients that send the pincode as a number.
func pincodeArgument(req mcp.CallToolRequest) string {
	switch v := req.GetArguments()["pincode"].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(raw)), nil
}
