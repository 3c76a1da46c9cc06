package board

import (
	"fmt"
	"strings"
)

// Tool selects how a stroke marks the surface.
type Tool int

const (
	// ToolPencil draws smoothed ink.
	ToolPencil Tool = iota
	// ToolBrush draws smoothed ink with a translucent smudge trail.
	ToolBrush
	// ToolEraser clears a disc of brush-width diameter along the stroke.
	ToolEraser
)

var toolNames = map[Tool]string{
	ToolPencil: "pencil",
	ToolBrush:  "brush",
	ToolEraser: "eraser",
}

func (t Tool) String() string {
	if name, ok := toolNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// Additive reports whether the tool lays down ink. Only additive strokes are
// considered for shape recognition.
func (t Tool) Additive() bool {
	return t == ToolPencil || t == ToolBrush
}

// ParseTool maps a tool name to a Tool. Matching is case-insensitive.
func ParseTool(name string) (Tool, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for t, s := range toolNames {
		if s == n {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q (valid: pencil, brush, eraser)", name)
}
