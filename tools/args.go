package tools

import (
	"fmt"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// stringMap reads an object argument whose values are rendered as strings.
// A missing or null argument yields nil.
func stringMap(request mcp.CallToolRequest, key string) (map[string]string, error) {
	raw, ok := request.GetArguments()[key]
	if !ok || raw == nil {
		return nil, nil
	}

	switch m := raw.(type) {
	case map[string]string:
		return m, nil
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, v := range m {
			switch val := v.(type) {
			case string:
				out[k] = val
			case nil:
				out[k] = ""
			default:
				out[k] = fmt.Sprint(val)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("argument %q must be an object of string values", key)
	}
}

// requireStringMap is stringMap for arguments that must be present.
// An empty object is accepted.
func requireStringMap(request mcp.CallToolRequest, key string) (map[string]string, error) {
	if raw, ok := request.GetArguments()[key]; !ok || raw == nil {
		return nil, fmt.Errorf("required argument %q not found", key)
	}
	m, err := stringMap(request, key)
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]string{}
	}
	return m, nil
}

// requireNonEmpty returns the trimmed string argument or an error
func requireNonEmpty(request mcp.CallToolRequest, key string) (string, error) {
	v, err := request.RequireString(key)
	if err != nil {
		return "", err
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fmt.Errorf("argument %q must not be empty", key)
	}
	return v, nil
}

// optionalInt reads a non-negative integer argument. JSON numbers arrive as
// float64; numeric strings are accepted as well.
func optionalInt(request mcp.CallToolRequest, key string) (int, error) {
	raw, ok := request.GetArguments()[key]
	if !ok || raw == nil {
		return 0, nil
	}

	var n float64
	switch v := raw.(type) {
	case float64:
		n = v
	case int:
		n = float64(v)
	case string:
		if _, err := fmt.Sscan(v, &n); err != nil {
			return 0, fmt.Errorf("argument %q must be a number", key)
		}
	default:
		return 0, fmt.Errorf("argument %q must be a number", key)
	}

	if n < 0 || n != math.Trunc(n) {
		return 0, fmt.Errorf("argument %q must be a non-negative integer", key)
	}
	return int(n), nil
}
