// Package viewer holds the presentation state of an OBJ viewer: the active
// render mode, light settings and the model transform. It owns no window
// or GPU resources; a renderer reads the state each frame.
package viewer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRenderMode is returned by ParseRenderMode.
var ErrUnknownRenderMode = errors.New("unknown render mode")

// RenderMode selects how meshes are drawn. Modes are mutually exclusive.
type RenderMode int

const (
	ModeShaded        RenderMode = iota // Lit, material textures
	ModeFaces                           // Flat color per triangle
	ModeLines                           // Wireframe
	ModePoints                          // Vertices only
	ModeColors                          // Per-vertex debug colors
	ModeCustomTexture                   // User texture on synthesized UVs
)

var renderModeNames = [...]string{
	ModeShaded:        "shaded",
	ModeFaces:         "faces",
	ModeLines:         "lines",
	ModePoints:        "points",
	ModeColors:        "colors",
	ModeCustomTexture: "custom_texture",
}

func (m RenderMode) String() string {
	if m >= 0 && int(m) < len(renderModeNames) {
		return renderModeNames[m]
	}
	return fmt.Sprintf("RenderMode(%d)", int(m))
}

// ParseRenderMode accepts the names printed by String, case-insensitively.
func ParseRenderMode(s string) (RenderMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range renderModeNames {
		if name == s {
			return RenderMode(i), nil
		}
	}
	return ModeShaded, fmt.Errorf("%w: %q", ErrUnknownRenderMode, s)
}
