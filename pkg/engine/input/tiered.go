package input

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceGamepad
	DeviceTerminal
)

// Action represents a high-level intent in the game.
type Action int

const (
	ActionNone Action = iota

	// Movement, relative to the camera
	ActionMoveForward
	ActionMoveBack
	ActionMoveLeft
	ActionMoveRight

	// Camera
	ActionCameraLeft
	ActionCameraRight

	// Level flow
	ActionResetLevel
	ActionNextLevel
	ActionPrevLevel

	// Editor
	ActionEditPlace
	ActionEditRemove
	ActionEditCycle

	// Meta / UI
	ActionDebugMapDump
	ActionZoomIn
	ActionZoomOut
	ActionQuit
)

// Intent is the 4th-layer, high-level description of what the player wants to do.
// Fast is set when the fast-repeat modifier is held with a movement key.
type Intent struct {
	Action Action
	Fast   bool
}

// RawInput is the 1st-layer event emitted directly from an input device.
// Code is a device-specific identifier (e.g. "w", "arrow_up", "gamepad_dpad_up").
type RawInput struct {
	Device    Device
	Code      string
	Shift     bool
	Timestamp time.Time
}

// DebouncedInput is the 2nd-layer representation after debouncing.
// Key repeat is handled by the device layer, so each raw event passes through.
type DebouncedInput struct {
	Device Device
	Code   string
	Shift  bool
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
		Shift:  raw.Shift,
	}
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	// Movement (arrows, WASD, Vim)
	"arrow_up":    ActionMoveForward,
	"w":           ActionMoveForward,
	"k":           ActionMoveForward,
	"arrow_down":  ActionMoveBack,
	"s":           ActionMoveBack,
	"j":           ActionMoveBack,
	"arrow_left":  ActionMoveLeft,
	"a":           ActionMoveLeft,
	"h":           ActionMoveLeft,
	"arrow_right": ActionMoveRight,
	"d":           ActionMoveRight,
	"l":           ActionMoveRight,

	// Camera
	"q": ActionCameraLeft,
	"[": ActionCameraLeft,
	"e": ActionCameraRight,
	"]": ActionCameraRight,

	// Level flow
	"r":  ActionResetLevel,
	"f5": ActionResetLevel,
	"n":  ActionNextLevel,
	"p":  ActionPrevLevel,

	// Editor
	"b":   ActionEditPlace,
	"x":   ActionEditRemove,
	"tab": ActionEditCycle,

	// Debug
	"m":  ActionDebugMapDump,
	"f9": ActionDebugMapDump,

	// Zoom (fixed bindings, not rebindable)
	"=":               ActionZoomIn,
	"+":               ActionZoomIn,
	"numpad_add":      ActionZoomIn,
	"-":               ActionZoomOut,
	"numpad_subtract": ActionZoomOut,

	// Quit
	"escape": ActionQuit,
	"ctrl_c": ActionQuit,

	// Controller/gamepad specific bindings
	"gamepad_dpad_up":    ActionMoveForward,
	"gamepad_dpad_down":  ActionMoveBack,
	"gamepad_dpad_left":  ActionMoveLeft,
	"gamepad_dpad_right": ActionMoveRight,
	"gamepad_lb":         ActionCameraLeft,
	"gamepad_rb":         ActionCameraRight,
	"gamepad_y":          ActionResetLevel,
	"gamepad_start":      ActionQuit,
}

// reserved codes can never be rebound or unbound
var reserved = map[string]bool{
	"arrow_up":    true,
	"arrow_down":  true,
	"arrow_left":  true,
	"arrow_right": true,
	"escape":      true,
	"ctrl_c":      true,
}

// IsMovement reports whether a is one of the four movement actions
func IsMovement(a Action) bool {
	return a >= ActionMoveForward && a <= ActionMoveRight
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high-level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act, Fast: ev.Shift && IsMovement(act)}
	}
	return Intent{Action: ActionNone}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionMoveForward:
		return "Move Forward"
	case ActionMoveBack:
		return "Move Back"
	case ActionMoveLeft:
		return "Move Left"
	case ActionMoveRight:
		return "Move Right"
	case ActionCameraLeft:
		return "Turn Camera Left"
	case ActionCameraRight:
		return "Turn Camera Right"
	case ActionResetLevel:
		return "Reset Level"
	case ActionNextLevel:
		return "Next Level"
	case ActionPrevLevel:
		return "Previous Level"
	case ActionEditPlace:
		return "Place Box"
	case ActionEditRemove:
		return "Remove Box"
	case ActionEditCycle:
		return "Cycle Box Kind"
	case ActionDebugMapDump:
		return "Dump Map"
	case ActionZoomIn:
		return "Zoom In"
	case ActionZoomOut:
		return "Zoom Out"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering so UI listings don't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// actionIDs are the names actions go by in the config file
var actionIDs = map[string]Action{
	"move_forward": ActionMoveForward,
	"move_back":    ActionMoveBack,
	"move_left":    ActionMoveLeft,
	"move_right":   ActionMoveRight,
	"camera_left":  ActionCameraLeft,
	"camera_right": ActionCameraRight,
	"reset_level":  ActionResetLevel,
	"next_level":   ActionNextLevel,
	"prev_level":   ActionPrevLevel,
	"edit_place":   ActionEditPlace,
	"edit_remove":  ActionEditRemove,
	"edit_cycle":   ActionEditCycle,
	"debug_map":    ActionDebugMapDump,
	"zoom_in":      ActionZoomIn,
	"zoom_out":     ActionZoomOut,
	"quit":         ActionQuit,
}

var (
	// ErrUnknownAction is returned for a binding whose action name is not known
	ErrUnknownAction = errors.New("unknown action")
	// ErrReservedKey is returned when a binding tries to take a reserved key
	ErrReservedKey = errors.New("key is reserved")
)

// ApplyBindings rebinds each named action to a single key code, e.g.
// {"move_forward": "i"}. Reserved keys keep their actions. Nothing is changed
// when any entry is invalid.
func ApplyBindings(overrides map[string]string) error {
	ids := make([]string, 0, len(overrides))
	for id, code := range overrides {
		if _, ok := actionIDs[id]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownAction, id)
		}
		if reserved[code] {
			return fmt.Errorf("%w: %q for %s", ErrReservedKey, code, id)
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		SetSingleBinding(actionIDs[id], overrides[id])
	}
	return nil
}

// SetSingleBinding replaces all non-reserved bindings for the given action with a single code.
func SetSingleBinding(action Action, code string) {
	for c, a := range bindings {
		if reserved[c] {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && !reserved[code] {
		bindings[code] = action
	}
}
