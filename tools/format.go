package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// jsonResult renders v as two-space indented JSON
func jsonResult(v any) *mcp.CallToolResult {
	return mcp.NewToolResultText(indentJSON(v))
}

// indentJSON encodes v without HTML escaping so URLs and log text survive
// unchanged.
func indentJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimRight(buf.String(), "\n")
}

// statusIcon maps a Jenkins ball color or icon name to an emoji
func statusIcon(color string, withYellow, withGrey bool) string {
	switch {
	case color == "":
		return "📋"
	case strings.Contains(color, "blue"):
		return "✅"
	case strings.Contains(color, "red"):
		return "❌"
	case withYellow && strings.Contains(color, "yellow"):
		return "⚠️"
	case withGrey && strings.Contains(color, "grey"):
		return "⚫"
	default:
		return "⚪"
	}
}

// healthIcon maps a health score to a heart
func healthIcon(score int) string {
	switch {
	case score >= 80:
		return "💚"
	case score >= 60:
		return "💛"
	case score >= 40:
		return "🧡"
	default:
		return "❤️"
	}
}

// writeParams renders parameters in sorted key order
func writeParams(sb *strings.Builder, params map[string]string) {
	if len(params) == 0 {
		return
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sb.WriteString("⚙️  **Parameters:**\n")
	for _, k := range keys {
		fmt.Fprintf(sb, "   • %s: %s\n", k, params[k])
	}
}

// jobLocation joins the non-empty parts of a job path for display
func jobLocation(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "/")
}
