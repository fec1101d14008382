package platform

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// questionInput is the argument shape shared by the question-taking tools.
type questionInput struct {
	Question string `json:"question" jsonschema:"the natural-language question about the sales data"`
}

// emptyInput is used by tools with no parameters.
type emptyInput struct{}

// registerTools registers every generator capability with the MCP server.
func (p *Platform) registerTools() {
	mcp.AddTool(p.mcpServer, &mcp.Tool{
		Name: "generate_query",
		Description: "Translate a natural-language question about the gallery sales " +
			"database into a SQL Server query with an explanation.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in questionInput) (*mcp.CallToolResult, any, error) {
		return p.handleGenerate(ctx, in)
	})

	mcp.AddTool(p.mcpServer, &mcp.Tool{
		Name:        "validate_input",
		Description: "Check a question for problems (length, implausible dates) before generating.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in questionInput) (*mcp.CallToolResult, any, error) {
		return p.handleValidate(ctx, in)
	})

	mcp.AddTool(p.mcpServer, &mcp.Tool{
		Name:        "suggest_queries",
		Description: "Suggest example questions related to the given text.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in questionInput) (*mcp.CallToolResult, any, error) {
		return jsonResult(p.generator.GetSuggestions(in.Question))
	})

	mcp.AddTool(p.mcpServer, &mcp.Tool{
		Name:        "list_templates",
		Description: "List the available query templates with descriptions.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
		return jsonResult(p.generator.GetAvailableTemplates())
	})

	mcp.AddTool(p.mcpServer, &mcp.Tool{
		Name:        "schema_info",
		Description: "Describe the loaded schema: tables, relationships, keyword count.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
		info := p.generator.GetSchemaInfo()
		if info == nil {
			return errorResult("no schema loaded")
		}
		return jsonResult(info)
	})
}

// handleGenerate runs the full pipeline for one question.
func (p *Platform) handleGenerate(_ context.Context, in questionInput) (*mcp.CallToolResult, any, error) {
	if issues := p.generator.ValidateInput(in.Question); len(issues) > 0 {
		p.log.Debug("input validation issues", "issues", issues)
	}

	res := p.generator.GenerateQuery(in.Question)
	out, extra, err := jsonResult(res)
	if err == nil && out != nil && !res.Success {
		out.IsError = true
	}
	return out, extra, err
}

// handleValidate reports validation issues for one question.
func (p *Platform) handleValidate(_ context.Context, in questionInput) (*mcp.CallToolResult, any, error) {
	issues := p.generator.ValidateInput(in.Question)
	if issues == nil {
		issues = []string{}
	}
	return jsonResult(issues)
}

// jsonResult marshals v as an indented text content block.
func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("encoding result: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}

// errorResult wraps a message as a tool error without failing the call.
func errorResult(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + msg}},
		IsError: true,
	}, nil, nil
}
