package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/s0up4200/jenkins-mcp/diagnose"
	"github.com/s0up4200/jenkins-mcp/jenkins"
)

var requestMethods = []string{"GET", "POST", "PUT", "DELETE"}

// registerFetchFromJenkins registers the fetch-from-jenkins tool
func (s *Server) registerFetchFromJenkins() {
	tool := mcp.NewTool(ToolFetchFromJenkins,
		mcp.WithDescription(s.describe(ToolFetchFromJenkins)),
		mcp.WithString("jenkinsUrl",
			mcp.Required(),
			mcp.Description("The Jenkins URL or API path to fetch"),
		),
		mcp.WithBoolean("getJson",
			mcp.Required(),
			mcp.Description("Append /api/json to the URL and parse the response as JSON"),
		),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		target, err := requireNonEmpty(request, "jenkinsUrl")
		if err != nil {
			return s.invalidArgs(ctx, err), nil
		}
		getJSON, err := request.RequireBool("getJson")
		if err != nil {
			return s.invalidArgs(ctx, err), nil
		}

		fetchURL, err := s.client.Resolve(target)
		if err != nil {
			return s.failure(ctx, err, foreignURLHint(s.client.BaseURL())), nil
		}
		if getJSON {
			fetchURL = jenkins.JSONURL(fetchURL)
		}

		resp, err := s.client.Get(ctx, fetchURL, nil)
		if err != nil {
			return s.failure(ctx, err, func(d *diagnose.Diagnosis) {
				d.Prepend(fmt.Sprintf("Verify the URL %s is correct and accessible", fetchURL))
				d.Append("Check if the endpoint requires specific permissions")
			}), nil
		}

		format := "Raw"
		if getJSON {
			format = "JSON"
		}

		var sb strings.Builder
		sb.WriteString("📊 **Data Retrieved Successfully**\n\n")
		fmt.Fprintf(&sb, "🔗 **URL:** %s\n", fetchURL)
		fmt.Fprintf(&sb, "📄 **Format:** %s\n\n", format)
		sb.WriteString("📋 **Response:**\n")
		if getJSON {
			sb.WriteString("```json\n")
			sb.WriteString(indentJSON(resp.Data()))
		} else {
			sb.WriteString("```\n")
			sb.Write(resp.Body)
		}
		sb.WriteString("\n```")

		return mcp.NewToolResultText(sb.String()), nil
	})
}

// registerInvokeRequest registers the invoke-request tool
func (s *Server) registerInvokeRequest() {
	tool := mcp.NewTool(ToolInvokeRequest,
		mcp.WithDescription(s.describe(ToolInvokeRequest)),
		mcp.WithString("jenkinsUrl",
			mcp.Required(),
			mcp.Description("The Jenkins URL or API path to call"),
		),
		mcp.WithString("method",
			mcp.Required(),
			mcp.Description("HTTP method to use"),
			mcp.Enum(requestMethods...),
		),
		mcp.WithObject("params",
			mcp.Description("Query parameters to send with the request (string values)"),
		),
		mcp.WithBoolean("rawJson",
			mcp.Description(rawJSONDescription),
		),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		target, err := requireNonEmpty(request, "jenkinsUrl")
		if err != nil {
			return s.invalidArgs(ctx, err), nil
		}
		method, err := request.RequireString("method")
		if err != nil {
			return s.invalidArgs(ctx, err), nil
		}
		method = strings.ToUpper(strings.TrimSpace(method))
		params, err := stringMap(request, "params")
		if err != nil {
			return s.invalidArgs(ctx, err), nil
		}
		rawJSON := request.GetBool("rawJson", false)

		requestURL, err := s.client.Resolve(target)
		if err != nil {
			return s.failure(ctx, err, foreignURLHint(s.client.BaseURL())), nil
		}

		resp, err := s.client.Do(ctx, method, requestURL, params)
		if err != nil {
			return s.failure(ctx, err, func(d *diagnose.Diagnosis) {
				d.Prepend(fmt.Sprintf("Verify the URL %s supports %s requests", requestURL, method))
				d.Append("Check if you have permission to perform this operation")
				if method == "POST" || method == "PUT" {
					d.Append(fmt.Sprintf("Ensure required parameters are provided for %s operations", method))
				}
			}), nil
		}

		if rawJSON {
			return jsonResult(resp.Data()), nil
		}

		var sb strings.Builder
		sb.WriteString("🔧 **Request Executed Successfully**\n\n")
		fmt.Fprintf(&sb, "🔗 **URL:** %s\n", requestURL)
		fmt.Fprintf(&sb, "📡 **Method:** %s\n", method)
		fmt.Fprintf(&sb, "📊 **Status:** %d\n", resp.StatusCode)
		writeParams(&sb, params)
		sb.WriteString("\n📋 **Response:**\n```json\n")
		sb.WriteString(indentJSON(resp.Data()))
		sb.WriteString("\n```")

		return mcp.NewToolResultText(sb.String()), nil
	})
}

// foreignURLHint explains which URLs the generic tools accept
func foreignURLHint(baseURL string) func(d *diagnose.Diagnosis) {
	return func(d *diagnose.Diagnosis) {
		d.Prepend(fmt.Sprintf("Use a Jenkins path such as /job/name or a URL under %s; other hosts are refused", baseURL))
	}
}
