package viewer

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownAction is returned when a binding names no Action.
var ErrUnknownAction = errors.New("unknown action")

var actionNames = map[Action]string{
	ActionToggleFaces:         "toggle_faces",
	ActionToggleLines:         "toggle_lines",
	ActionTogglePoints:        "toggle_points",
	ActionToggleColors:        "toggle_colors",
	ActionToggleCustomTexture: "toggle_custom_texture",
	ActionRotateXPos:          "rotate_x_pos",
	ActionRotateXNeg:          "rotate_x_neg",
	ActionRotateYPos:          "rotate_y_pos",
	ActionRotateYNeg:          "rotate_y_neg",
	ActionRotateZPos:          "rotate_z_pos",
	ActionRotateZNeg:          "rotate_z_neg",
	ActionMoveXPos:            "move_x_pos",
	ActionMoveXNeg:            "move_x_neg",
	ActionMoveYPos:            "move_y_pos",
	ActionMoveYNeg:            "move_y_neg",
	ActionMoveZPos:            "move_z_pos",
	ActionMoveZNeg:            "move_z_neg",
	ActionShrink:              "shrink",
	ActionGrow:                "grow",
	ActionResetTransform:      "reset_transform",
	ActionLightX:              "light_x",
	ActionLightY:              "light_y",
	ActionLightZ:              "light_z",
	ActionLightRed:            "light_red",
	ActionLightGreen:          "light_green",
	ActionLightBlue:           "light_blue",
	ActionViewX:               "view_x",
	ActionViewY:               "view_y",
	ActionViewZ:               "view_z",
	ActionResetLight:          "reset_light",
	ActionReset:               "reset",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction returns the Action with the given name.
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// Toggle reports whether a fires once per key release rather than on
// every frame the key is held.
func (a Action) Toggle() bool {
	_, ok := toggleModes[a]
	return ok
}

// KeyBinding is a key name plus the Ctrl modifier. Names are lowercase,
// such as "f", "1", "left" or "kp_add".
type KeyBinding struct {
	Key  string
	Ctrl bool
}

// ParseKeyBinding reads "key" or "ctrl+key".
func ParseKeyBinding(s string) KeyBinding {
	s = strings.ToLower(strings.TrimSpace(s))
	if rest, ok := strings.CutPrefix(s, "ctrl+"); ok {
		return KeyBinding{Key: rest, Ctrl: true}
	}
	return KeyBinding{Key: s}
}

func (b KeyBinding) String() string {
	if b.Ctrl {
		return "ctrl+" + b.Key
	}
	return b.Key
}

// Keymap maps key bindings to viewer actions.
type Keymap struct {
	bindings map[KeyBinding]Action
}

// DefaultKeymap returns the stock bindings: arrows rotate (Ctrl turns
// left/right into Z rotation), the keypad moves and scales, R resets the
// transform, F L P C T toggle render modes, 1-9 nudge the light and 0
// resets it.
func DefaultKeymap() *Keymap {
	k := &Keymap{bindings: map[KeyBinding]Action{
		{Key: "up"}:                ActionRotateXPos,
		{Key: "down"}:              ActionRotateXNeg,
		{Key: "left"}:              ActionRotateYPos,
		{Key: "right"}:             ActionRotateYNeg,
		{Key: "left", Ctrl: true}:  ActionRotateZPos,
		{Key: "right", Ctrl: true}: ActionRotateZNeg,

		{Key: "kp_6"}: ActionMoveXPos,
		{Key: "kp_4"}: ActionMoveXNeg,
		{Key: "kp_8"}: ActionMoveYPos,
		{Key: "kp_2"}: ActionMoveYNeg,
		{Key: "kp_1"}: ActionMoveZPos,
		{Key: "kp_9"}: ActionMoveZNeg,

		{Key: "kp_subtract"}: ActionShrink,
		{Key: "kp_add"}:      ActionGrow,
		{Key: "r"}:           ActionResetTransform,

		{Key: "f"}: ActionToggleFaces,
		{Key: "l"}: ActionToggleLines,
		{Key: "p"}: ActionTogglePoints,
		{Key: "c"}: ActionToggleColors,
		{Key: "t"}: ActionToggleCustomTexture,

		{Key: "1"}: ActionLightX,
		{Key: "2"}: ActionLightY,
		{Key: "3"}: ActionLightZ,
		{Key: "4"}: ActionLightRed,
		{Key: "5"}: ActionLightGreen,
		{Key: "6"}: ActionLightBlue,
		{Key: "7"}: ActionViewX,
		{Key: "8"}: ActionViewY,
		{Key: "9"}: ActionViewZ,
		{Key: "0"}: ActionResetLight,
	}}
	return k
}

// Bind assigns a to b, replacing any previous binding.
func (k *Keymap) Bind(b KeyBinding, a Action) {
	k.bindings[b] = a
}

// Lookup returns the action for a key. With Ctrl held, a key without a
// Ctrl binding falls back to its plain binding.
func (k *Keymap) Lookup(b KeyBinding) (Action, bool) {
	if a, ok := k.bindings[b]; ok {
		return a, true
	}
	if b.Ctrl {
		a, ok := k.bindings[KeyBinding{Key: b.Key}]
		return a, ok
	}
	return 0, false
}

// Override rebinds keys from a "binding: action" table, as read from the
// config file. Nothing is changed when any entry is invalid.
func (k *Keymap) Override(table map[string]string) error {
	parsed := make(map[KeyBinding]Action, len(table))
	for key, name := range table {
		a, err := ParseAction(name)
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		parsed[ParseKeyBinding(key)] = a
	}
	for b, a := range parsed {
		k.Bind(b, a)
	}
	return nil
}

// Bindings lists the keymap sorted by binding, for help output.
func (k *Keymap) Bindings() []KeyBinding {
	out := make([]KeyBinding, 0, len(k.bindings))
	for b := range k.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// KeyEvent is one key transition or repeat from the windowing layer.
type KeyEvent struct {
	Binding  KeyBinding
	Released bool // false for press and held repeats
}

// HandleKey applies the action bound to ev. Toggles fire on release and
// everything else while the key is down. It reports whether an action ran.
func (s *State) HandleKey(k *Keymap, ev KeyEvent) bool {
	a, ok := k.Lookup(ev.Binding)
	if !ok || a.Toggle() != ev.Released {
		return false
	}
	s.Apply(a)
	return true
}
