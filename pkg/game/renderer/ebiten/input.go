package ebiten

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	engineinput "rollcube/pkg/engine/input"
	"rollcube/pkg/engine/logger"
	"rollcube/pkg/game/config"
	"rollcube/pkg/game/gameplay"
)

// keyboard lists the keys polled each tick, in priority order. Keys without a
// default action are polled so the config file can bind them.
var keyboard = []struct {
	key  ebiten.Key
	code string
}{
	{ebiten.KeyArrowUp, "arrow_up"},
	{ebiten.KeyArrowDown, "arrow_down"},
	{ebiten.KeyArrowLeft, "arrow_left"},
	{ebiten.KeyArrowRight, "arrow_right"},
	{ebiten.KeyW, "w"},
	{ebiten.KeyS, "s"},
	{ebiten.KeyA, "a"},
	{ebiten.KeyD, "d"},
	{ebiten.KeyK, "k"},
	{ebiten.KeyJ, "j"},
	{ebiten.KeyH, "h"},
	{ebiten.KeyL, "l"},
	{ebiten.KeyQ, "q"},
	{ebiten.KeyBracketLeft, "["},
	{ebiten.KeyE, "e"},
	{ebiten.KeyBracketRight, "]"},
	{ebiten.KeyR, "r"},
	{ebiten.KeyF5, "f5"},
	{ebiten.KeyN, "n"},
	{ebiten.KeyP, "p"},
	{ebiten.KeyB, "b"},
	{ebiten.KeyX, "x"},
	{ebiten.KeyTab, "tab"},
	{ebiten.KeyM, "m"},
	{ebiten.KeyF9, "f9"},
	{ebiten.KeyEqual, "="},
	{ebiten.KeyNumpadAdd, "numpad_add"},
	{ebiten.KeyMinus, "-"},
	{ebiten.KeyNumpadSubtract, "numpad_subtract"},
	{ebiten.KeyEscape, "escape"},
	{ebiten.KeyC, "c"},
	{ebiten.KeyF, "f"},
	{ebiten.KeyG, "g"},
	{ebiten.KeyI, "i"},
	{ebiten.KeyO, "o"},
	{ebiten.KeyT, "t"},
	{ebiten.KeyU, "u"},
	{ebiten.KeyV, "v"},
	{ebiten.KeyY, "y"},
	{ebiten.KeyZ, "z"},
	{ebiten.KeyF1, "f1"},
	{ebiten.KeyF2, "f2"},
	{ebiten.KeyF3, "f3"},
	{ebiten.KeyF4, "f4"},
	{ebiten.KeyF6, "f6"},
	{ebiten.KeyF7, "f7"},
	{ebiten.KeyF8, "f8"},
	{ebiten.KeyF10, "f10"},
	{ebiten.KeyF11, "f11"},
	{ebiten.KeyF12, "f12"},
}

// repeats reports whether code is currently bound to movement, which repeats
// while held
func repeats(code string) bool {
	intent := engineinput.MapToIntent(engineinput.DebouncedInput{Code: code})
	return engineinput.IsMovement(intent.Action)
}

// Update handles input and advances the animation (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	// Log window opening on first update (confirms window is actually running)
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		logger.Log.WithFields(logrus.Fields{"width": w, "height": h}).Info("Main window opened")
	}

	g := e.game
	if g == nil {
		return nil
	}

	e.pending = e.pending[:0]
	e.checkGamepadInput()
	e.checkInput()

	gameplay.SetHeld(g, e.heldMovement())
	for _, intent := range e.pending {
		switch intent.Action {
		case engineinput.ActionZoomIn:
			e.changeTileSize(tileSizeStep)
		case engineinput.ActionZoomOut:
			e.changeTileSize(-tileSizeStep)
		default:
			gameplay.ProcessIntent(g, intent)
		}
	}

	gameplay.Tick(g, 1.0/ticksPerSecond)
	e.RenderFrame(g)

	if g.Quit {
		return ebiten.Termination
	}
	return nil
}

// changeTileSize zooms by delta pixels and saves the result as a preference
func (e *EbitenRenderer) changeTileSize(delta int) {
	size := e.tileSize + delta
	if size < minTileSize || size > maxTileSize {
		return
	}
	e.tileSize = size
	e.invalidateFontCache()

	if err := config.Current().SetTileSize(size); err != nil {
		logger.Log.WithError(err).Warn("Could not save zoom preference")
	}
}

// shiftHeld reports whether either shift key is down
func shiftHeld() bool {
	return ebiten.IsKeyPressed(ebiten.KeyShift)
}

// heldMovement returns the movement intent of the first movement key held down
func (e *EbitenRenderer) heldMovement() engineinput.Intent {
	for _, k := range keyboard {
		if !repeats(k.code) || !ebiten.IsKeyPressed(k.key) {
			continue
		}
		return engineinput.MapToIntent(engineinput.NewDebouncedInput(engineinput.RawInput{
			Device: engineinput.DeviceKeyboard,
			Code:   k.code,
			Shift:  shiftHeld(),
		}))
	}
	return engineinput.Intent{Action: engineinput.ActionNone}
}

// emit maps a raw code to an intent and queues it for this tick
func (e *EbitenRenderer) emit(device engineinput.Device, code string) {
	intent := engineinput.MapToIntent(engineinput.NewDebouncedInput(engineinput.RawInput{
		Device:    device,
		Code:      code,
		Shift:     shiftHeld(),
		Timestamp: time.Now(),
	}))
	if intent.Action != engineinput.ActionNone {
		e.pending = append(e.pending, intent)
	}
}

// checkInput queues intents for keyboard presses and repeats
func (e *EbitenRenderer) checkInput() {
	for _, k := range keyboard {
		if repeats(k.code) {
			key := k.key
			if e.shouldRepeatKey(func() bool { return ebiten.IsKeyPressed(key) }, "key_"+k.code) {
				e.emit(engineinput.DeviceKeyboard, k.code)
			}
			continue
		}
		if inpututil.IsKeyJustPressed(k.key) {
			e.emit(engineinput.DeviceKeyboard, k.code)
		}
	}

	if ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		e.emit(engineinput.DeviceKeyboard, "ctrl_c")
	}
}

// shouldRepeatKey checks if a key/button should trigger (initial press or repeat)
func (e *EbitenRenderer) shouldRepeatKey(isPressed func() bool, code string) bool {
	return e.repeatAt(isPressed(), code, time.Now().UnixMilli())
}

// repeatAt is shouldRepeatKey with the key state and clock supplied
func (e *EbitenRenderer) repeatAt(pressed bool, code string, now int64) bool {
	e.keyRepeatStateMutex.Lock()
	defer e.keyRepeatStateMutex.Unlock()

	state, exists := e.keyRepeatState[code]
	if !pressed {
		if exists {
			delete(e.keyRepeatState, code)
		}
		return false
	}

	if !exists {
		// First press - record it and trigger immediately
		e.keyRepeatState[code] = keyRepeatInfo{firstPressed: now, lastRepeat: now}
		return true
	}

	initialDelay := int64(e.cfg.KeyRepeatInitialMs)
	interval := int64(e.cfg.KeyRepeatIntervalMs)
	if now-state.firstPressed >= initialDelay && now-state.lastRepeat >= interval {
		state.lastRepeat = now
		e.keyRepeatState[code] = state
		return true
	}
	return false
}

// gamepadButtons maps common XInput-style button indices to raw codes.
// Mappings may vary between devices and platforms.
var gamepadButtons = []struct {
	button ebiten.GamepadButton
	code   string
	repeat bool
}{
	{ebiten.GamepadButton11, "gamepad_dpad_up", true},
	{ebiten.GamepadButton13, "gamepad_dpad_down", true},
	{ebiten.GamepadButton14, "gamepad_dpad_left", true},
	{ebiten.GamepadButton12, "gamepad_dpad_right", true},
	{ebiten.GamepadButton4, "gamepad_lb", false},
	{ebiten.GamepadButton5, "gamepad_rb", false},
	{ebiten.GamepadButton3, "gamepad_y", false},
	{ebiten.GamepadButton7, "gamepad_start", false},
}

// checkGamepadInput queues intents for controller buttons and the left stick
func (e *EbitenRenderer) checkGamepadInput() {
	var ids []ebiten.GamepadID
	ids = ebiten.AppendGamepadIDs(ids)

	for _, id := range ids {
		// Axes: 0 = X (left = -1, right = +1), 1 = Y (up = -1, down = +1)
		const deadZone = 0.5
		x := ebiten.GamepadAxisValue(id, 0)
		y := ebiten.GamepadAxisValue(id, 1)

		sticks := []struct {
			active bool
			name   string
			code   string
		}{
			{x < -deadZone, "left", "gamepad_dpad_left"},
			{x > deadZone, "right", "gamepad_dpad_right"},
			{y < -deadZone, "up", "gamepad_dpad_up"},
			{y > deadZone, "down", "gamepad_dpad_down"},
		}
		for _, s := range sticks {
			active := s.active
			if e.shouldRepeatKey(func() bool { return active }, fmt.Sprintf("gamepad_%d_stick_%s", id, s.name)) {
				e.emit(engineinput.DeviceGamepad, s.code)
			}
		}

		for _, b := range gamepadButtons {
			button := b.button
			if b.repeat {
				if e.shouldRepeatKey(func() bool { return ebiten.IsGamepadButtonPressed(id, button) }, fmt.Sprintf("gamepad_%d_%d", id, button)) {
					e.emit(engineinput.DeviceGamepad, b.code)
				}
				continue
			}
			if inpututil.IsGamepadButtonJustPressed(id, button) {
				e.emit(engineinput.DeviceGamepad, b.code)
			}
		}
	}
}
