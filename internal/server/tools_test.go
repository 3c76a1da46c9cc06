package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"canvas_info",
		"canvas_stroke",
		"canvas_hand_event",
		"canvas_undo",
		"canvas_redo",
		"canvas_clear",
		"canvas_set_tool",
		"canvas_set_style",
		"canvas_set_recognition",
		"canvas_set_grid",
		"canvas_export",
		"canvas_load",
		"canvas_sample_color",
		"canvas_ocr",
		"shape_simplify",
		"shape_classify",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("Tool count: got %d, want %d", len(tools), len(expectedTools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	// Check all expected tools exist
	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			// Name should not be empty
			if tool.Name == "" {
				t.Error("Tool name is empty")
			}

			// Description should not be empty
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}

			// InputSchema should exist
			if tool.InputSchema == nil {
				t.Error("Tool InputSchema is nil")
			}

			// InputSchema should be an object type
			schemaType, ok := tool.InputSchema["type"]
			if !ok {
				t.Error("InputSchema missing 'type' field")
			}
			if schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}

			// InputSchema should have properties
			props, ok := tool.InputSchema["properties"]
			if !ok {
				t.Error("InputSchema missing 'properties' field")
			}
			if props == nil {
				t.Error("InputSchema properties is nil")
			}
		})
	}
}

func toolByName(t *testing.T, name string) Tool {
	t.Helper()
	for _, tool := range GetToolDefinitions() {
		if tool.Name == name {
			return tool
		}
	}
	t.Fatalf("%s tool not found", name)
	return Tool{}
}

func TestToolDefinitions_Required(t *testing.T) {
	toolRequired := map[string][]string{
		"canvas_stroke":          {"points"},
		"canvas_hand_event":      {"gesture"},
		"canvas_set_tool":        {"tool"},
		"canvas_set_recognition": {"enabled"},
		"canvas_set_grid":        {"enabled"},
		"canvas_load":            {"path"},
		"canvas_sample_color":    {"x", "y"},
		"shape_simplify":         {"points"},
		"shape_classify":         {"points"},
	}

	for name, want := range toolRequired {
		t.Run(name, func(t *testing.T) {
			tool := toolByName(t, name)

			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}

			have := make(map[string]bool)
			for _, r := range required {
				have[r] = true
			}
			for _, w := range want {
				if !have[w] {
					t.Errorf("%s should require '%s'", name, w)
				}
			}
		})
	}
}

func TestToolDefinitions_ToolEnum(t *testing.T) {
	for _, name := range []string{"canvas_set_tool", "canvas_stroke"} {
		tool := toolByName(t, name)

		props, ok := tool.InputSchema["properties"].(map[string]interface{})
		if !ok {
			t.Fatal("properties should be a map")
		}
		toolProp, ok := props["tool"].(map[string]interface{})
		if !ok {
			t.Fatalf("%s: tool property should exist and be a map", name)
		}
		enum, ok := toolProp["enum"].([]string)
		if !ok {
			t.Fatalf("%s: tool should have enum", name)
		}

		enumMap := make(map[string]bool)
		for _, e := range enum {
			enumMap[e] = true
		}
		for _, want := range []string{"pencil", "brush", "eraser"} {
			if !enumMap[want] {
				t.Errorf("%s: expected tool '%s' not in enum", name, want)
			}
		}
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	toolDefaults := map[string]map[string]interface{}{
		"canvas_stroke": {"normalized": false},
		"canvas_export": {"include_grid": false},
		"canvas_ocr":    {"language": "eng"},
	}

	for toolName, expectedDefaults := range toolDefaults {
		tool := toolByName(t, toolName)

		props, ok := tool.InputSchema["properties"].(map[string]interface{})
		if !ok {
			t.Errorf("%s: properties should be a map", toolName)
			continue
		}

		for paramName, expectedDefault := range expectedDefaults {
			param, ok := props[paramName].(map[string]interface{})
			if !ok {
				t.Errorf("%s.%s: parameter not found or not a map", toolName, paramName)
				continue
			}

			actualDefault, ok := param["default"]
			if !ok {
				t.Errorf("%s.%s: missing default value", toolName, paramName)
				continue
			}
			if actualDefault != expectedDefault {
				t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, actualDefault, expectedDefault)
			}
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer(t)
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	tools, ok := result["tools"]
	if !ok {
		t.Fatal("Result should contain 'tools' key")
	}

	toolsList, ok := tools.([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}

	// Should match GetToolDefinitions
	expected := GetToolDefinitions()
	if len(toolsList) != len(expected) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(expected))
	}
}
