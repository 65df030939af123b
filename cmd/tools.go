package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"github.com/s0up4200/jenkins-mcp/tools"
)

var callArgs string

// toolsCmd represents the tools command
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the MCP tools this server exposes",
	RunE:  runTools,
}

// callCmd represents the call command
var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Invoke a single tool and print its output",
	Long: `Invoke a tool in-process without an MCP client, which is handy for
checking configuration and output formatting.

Example:
  jenkins-mcp call search-jobs --args '{"searchTerm":"deploy"}'`,
	Args: cobra.ExactArgs(1),
	RunE: runCall,
}

func init() {
	callCmd.Flags().StringVar(&callArgs, "args", "{}", "tool arguments as a JSON object")
}

func runTools(cmd *cobra.Command, args []string) error {
	catalog := tools.Catalog(tools.Options{Descriptions: cfg.Tools.Descriptions})
	out := cmd.OutOrStdout()
	for _, tool := range catalog {
		fmt.Fprintf(out, "• %s\n", tool.Name)
		description := tool.Description
		if i := strings.Index(description, ". "); i > 0 {
			description = description[:i+1]
		}
		fmt.Fprintf(out, "  %s\n", description)
	}
	return nil
}

func runCall(cmd *cobra.Command, args []string) error {
	var arguments map[string]any
	if err := json.Unmarshal([]byte(callArgs), &arguments); err != nil {
		return fmt.Errorf("invalid --args: %w", err)
	}

	result, err := toolServer.Call(cmd.Context(), args[0], arguments)
	if err != nil {
		return err
	}

	for _, content := range result.Content {
		if text, ok := mcp.AsTextContent(content); ok {
			fmt.Println(text.Text)
		}
	}

	if result.IsError {
		return fmt.Errorf("tool %s reported an error", args[0])
	}
	return nil
}
