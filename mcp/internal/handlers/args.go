package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
)

// argString reads an optional argument as form text. Numbers arrive as
// float64 once JSON-decoded and are formatted without a fraction when whole.
func argString(req mcp.CallToolRequest, key string) string {
	switch v := req.GetArguments()[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// argID reads a required positive record id.
func argID(req mcp.CallToolRequest) (int64, error) {
	switch v := req.GetArguments()["id"].(type) {
	case float64:
		if v <= 0 || v != float64(int64(v)) {
			return 0, fmt.Errorf("id must be a positive whole number")
		}
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("id must be a positive whole number")
		}
		return n, nil
	default:
		return 0, fmt.Errorf("id is required")
	}
}

// argInt reads an optional whole number, returning def when absent.
func argInt(req mcp.CallToolRequest, key string, def int) (int, error) {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return def, nil
	}
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%s must be a whole number", key)
		}
		return int(v), nil
	case string:
		if v == "" {
			return def, nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%s must be a whole number", key)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s must be a whole number", key)
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
