package input

import (
	"errors"
	"testing"
)

func TestMapToIntent_Movement(t *testing.T) {
	tests := []struct {
		code string
		want Action
	}{
		{"arrow_up", ActionMoveForward},
		{"w", ActionMoveForward},
		{"k", ActionMoveForward},
		{"s", ActionMoveBack},
		{"a", ActionMoveLeft},
		{"l", ActionMoveRight},
		{"q", ActionCameraLeft},
		{"escape", ActionQuit},
		{"unbound", ActionNone},
	}
	for _, tt := range tests {
		got := MapToIntent(DebouncedInput{Code: tt.code}).Action
		if got != tt.want {
			t.Errorf("MapToIntent(%q) = %v, want %v", tt.code, ActionName(got), ActionName(tt.want))
		}
	}
}

func TestMapToIntent_FastOnlyForMovement(t *testing.T) {
	if !MapToIntent(DebouncedInput{Code: "w", Shift: true}).Fast {
		t.Error("shift+w Fast = false, want true")
	}
	if MapToIntent(DebouncedInput{Code: "r", Shift: true}).Fast {
		t.Error("shift+r Fast = true, want false")
	}
}

func TestSetSingleBinding_KeepsReservedCodes(t *testing.T) {
	saved := make(map[string]Action, len(bindings))
	for c, a := range bindings {
		saved[c] = a
	}
	t.Cleanup(func() { bindings = saved })

	SetSingleBinding(ActionMoveForward, "i")

	if got := MapToIntent(DebouncedInput{Code: "i"}).Action; got != ActionMoveForward {
		t.Errorf("i = %v, want Move Forward", ActionName(got))
	}
	if got := MapToIntent(DebouncedInput{Code: "w"}).Action; got != ActionNone {
		t.Errorf("w = %v, want None after rebinding", ActionName(got))
	}
	if got := MapToIntent(DebouncedInput{Code: "arrow_up"}).Action; got != ActionMoveForward {
		t.Errorf("arrow_up = %v, want Move Forward (reserved)", ActionName(got))
	}

	SetSingleBinding(ActionQuit, "arrow_up")
	if got := MapToIntent(DebouncedInput{Code: "arrow_up"}).Action; got != ActionMoveForward {
		t.Errorf("arrow_up rebound to %v, want it reserved", ActionName(got))
	}
}

func TestGetBindingsByAction_Sorted(t *testing.T) {
	codes := GetBindingsByAction()[ActionMoveForward]
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
	if len(codes) < 3 {
		t.Errorf("Move Forward has %d codes, want at least 3", len(codes))
	}
}

// saveBindings restores the binding table when the test ends
func saveBindings(t *testing.T) {
	t.Helper()
	saved := make(map[string]Action, len(bindings))
	for c, a := range bindings {
		saved[c] = a
	}
	t.Cleanup(func() { bindings = saved })
}

func TestApplyBindings(t *testing.T) {
	saveBindings(t)

	if err := ApplyBindings(map[string]string{"move_forward": "i", "quit": "f10"}); err != nil {
		t.Fatalf("ApplyBindings() error = %v", err)
	}
	if got := MapToIntent(DebouncedInput{Code: "i"}).Action; got != ActionMoveForward {
		t.Errorf("i = %v, want Move Forward", ActionName(got))
	}
	if got := MapToIntent(DebouncedInput{Code: "f10"}).Action; got != ActionQuit {
		t.Errorf("f10 = %v, want Quit", ActionName(got))
	}
	if got := MapToIntent(DebouncedInput{Code: "escape"}).Action; got != ActionQuit {
		t.Errorf("escape = %v, want Quit (reserved)", ActionName(got))
	}
	if got := GetBindingsByAction()[ActionMoveForward]; len(got) != 2 {
		t.Errorf("Move Forward codes = %v, want arrow_up and i", got)
	}
}

func TestApplyBindings_Invalid(t *testing.T) {
	saveBindings(t)

	tests := []struct {
		name      string
		overrides map[string]string
		wantErr   error
	}{
		{"unknown action", map[string]string{"jump": "space"}, ErrUnknownAction},
		{"reserved key", map[string]string{"reset_level": "arrow_up"}, ErrReservedKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ApplyBindings(tt.overrides); !errors.Is(err, tt.wantErr) {
				t.Errorf("ApplyBindings() error = %v, want %v", err, tt.wantErr)
			}
			if got := MapToIntent(DebouncedInput{Code: "r"}).Action; got != ActionResetLevel {
				t.Errorf("r = %v, want bindings untouched", ActionName(got))
			}
		})
	}
}
