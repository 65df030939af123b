package tools

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/s0up4200/jenkins-mcp/filter"
)

// filterFunctions are Jenkins specific helpers available to filter
// expressions next to the generic ones
var filterFunctions = map[string]any{
	// Jenkins marks in-progress jobs and builds with an "_anime" color suffix
	"isRunning": func(color string) bool {
		return strings.HasSuffix(color, "_anime")
	},
	"isFailed": func(value string) bool {
		return value == "FAILURE" || strings.HasPrefix(value, "red")
	},
}

// compileFilter compiles the optional "filter" argument. A blank or missing
// argument yields a nil filter.
func (s *Server) compileFilter(request mcp.CallToolRequest) (filter.CompiledFilter, error) {
	expression := strings.TrimSpace(request.GetString("filter", ""))
	if expression == "" {
		return nil, nil
	}
	return s.filters.Compile(expression)
}
