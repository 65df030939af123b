package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/s0up4200/jenkins-mcp/filter"
	"github.com/s0up4200/jenkins-mcp/jenkins"
)

// registerSearchJobs registers the search-jobs tool
func (s *Server) registerSearchJobs() {
	tool := mcp.NewTool(ToolSearchJobs,
		mcp.WithDescription(s.describe(ToolSearchJobs)),
		mcp.WithString("searchTerm",
			mcp.Required(),
			mcp.Description("Keyword or pattern to search for in job names"),
		),
		mcp.WithBoolean("rawJson",
			mcp.Description(rawJSONDescription),
		),
		mcp.WithString("filter",
			mcp.Description(filterDescription+". Fields: Name, URL, Icon, Type"),
		),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		term, err := request.RequireString("searchTerm")
		if err != nil {
			return s.invalidArgs(ctx, err), nil
		}
		rawJSON := request.GetBool("rawJson", false)

		f, err := s.compileFilter(request)
		if err != nil {
			return s.invalidArgs(ctx, err), nil
		}

		resp, err := s.client.Get(ctx, s.client.BaseURL()+"/search/suggest", map[string]string{"query": term})
		if err != nil {
			return s.failure(ctx, err, nil), nil
		}

		var result jenkins.SearchResult
		if err := resp.Decode(&result); err != nil {
			return s.failure(ctx, err, notJSON), nil
		}

		if f != nil {
			result.Suggestions, err = filter.Apply(f, result.Suggestions, suggestionRecord)
			if err != nil {
				return s.invalidArgs(ctx, err), nil
			}
		}

		if len(result.Suggestions) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf(
				"🔍 **No jobs found matching \"%s\"**\n\n"+
					"💡 **Try:**\n"+
					"• Using partial job names or keywords\n"+
					"• Checking spelling and case sensitivity\n"+
					"• Using broader search terms\n"+
					"• Contact your Jenkins admin to verify job availability",
				term,
			)), nil
		}

		if rawJSON {
			if f != nil {
				return jsonResult(result), nil
			}
			return jsonResult(resp.Data()), nil
		}

		return mcp.NewToolResultText(formatSuggestions(term, result.Suggestions)), nil
	})
}

func suggestionRecord(sg jenkins.Suggestion) filter.Record {
	return filter.Record{
		"Name": sg.Name,
		"URL":  sg.URL,
		"Icon": sg.Icon,
		"Type": sg.Type,
	}
}

func formatSuggestions(term string, suggestions []jenkins.Suggestion) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🔍 **Found %d jobs matching \"%s\":**\n\n", len(suggestions), term)

	for i, job := range suggestions {
		fmt.Fprintf(&sb, "%d. %s **%s**\n", i+1, statusIcon(job.Icon, false, false), job.Name)
		fmt.Fprintf(&sb, "   📍 %s\n", job.URL)
		if job.Type != "" {
			fmt.Fprintf(&sb, "   🏷️  Type: %s\n", job.Type)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
