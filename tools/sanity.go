package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// registerSanityCheck registers the sanity-check tool
func (s *Server) registerSanityCheck() {
	tool := mcp.NewTool(ToolSanityCheck,
		mcp.WithDescription(s.describe(ToolSanityCheck)),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resp, err := s.client.Ping(ctx)
		if err != nil {
			return s.failure(ctx, err, nil), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf(
			"✅ **Jenkins Server Status: Healthy**\n\n"+
				"🔗 **Server URL:** %s\n"+
				"📡 **Response Code:** %d\n"+
				"🔑 **Authentication:** Working\n\n"+
				"Your Jenkins server is accessible and ready for use!",
			s.client.BaseURL(), resp.StatusCode,
		)), nil
	})
}
