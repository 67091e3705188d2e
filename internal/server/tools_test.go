package server

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"image_load",
		"image_save",
		"image_info",
		"image_undo",
		"image_preview",
		"image_sample_color",
		"image_run_script",
		"image_blur",
		"image_sharpen",
		"image_greyscale",
		"image_sepia",
		"image_dither",
		"image_mosaic",
		"image_edge_detect",
		"image_equalize",
		"image_crop",
		"image_crop_corners",
		"image_rainbow",
		"image_checkerboard",
		"image_flag",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("tool %s defined twice", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}

			// Every required parameter must be declared
			if required, ok := tool.InputSchema["required"].([]string); ok {
				for _, r := range required {
					if _, ok := props[r]; !ok {
						t.Errorf("required parameter %q has no property", r)
					}
				}
			}

			if _, err := json.Marshal(tool); err != nil {
				t.Errorf("tool does not marshal: %v", err)
			}
		})
	}
}

func TestToolDefinitions_EveryToolDispatches(t *testing.T) {
	s := newTestServer(t)
	for _, tool := range GetToolDefinitions() {
		_, err := s.executeTool(context.Background(), tool.Name, json.RawMessage(`{}`))
		if err != nil && strings.HasPrefix(err.Error(), "unknown tool") {
			t.Errorf("%s is listed but not dispatched", tool.Name)
		}
	}
}

func TestToolDefinitions_FlagWidths(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if tool.Name != "image_flag" {
			continue
		}
		for _, want := range []string{"norway >= 22", "greece >= 27", "switzerland >= 32"} {
			if !strings.Contains(tool.Description, want) {
				t.Errorf("description missing %q: %s", want, tool.Description)
			}
		}
		country := tool.InputSchema["properties"].(map[string]interface{})["country"].(map[string]interface{})
		if enum := country["enum"].([]string); len(enum) != 3 {
			t.Errorf("country enum: got %v", enum)
		}
		return
	}
	t.Fatal("image_flag tool not found")
}
