package ebiten

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "mapgen/pkg/engine/input"
)

type keyRepeatInfo struct {
	firstPressed int64
	lastRepeat   int64
}

// repeatKeys auto-repeat while held (camera movement)
var repeatKeys = []struct {
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
}

// pressKeys trigger once per press
var pressKeys = []struct {
	key  ebiten.Key
	code string
}{
	{ebiten.KeyC, "c"},
	{ebiten.KeyHome, "home"},
	{ebiten.KeyR, "r"},
	{ebiten.KeyEnter, "enter"},
	{ebiten.KeyNumpadEnter, "enter"},
	{ebiten.KeyN, "n"},
	{ebiten.KeyPeriod, "."},
	{ebiten.KeyZ, "z"},
	{ebiten.KeyX, "x"},
	{ebiten.KeyTab, "tab"},
	{ebiten.KeyM, "m"},
	{ebiten.KeyP, "p"},
	{ebiten.KeyF12, "f12"},
	{ebiten.KeyB, "b"},
	{ebiten.KeyQ, "q"},
	{ebiten.KeyEscape, "escape"},
	{ebiten.KeyEqual, "="},
	{ebiten.KeyNumpadAdd, "numpad_add"},
	{ebiten.KeyMinus, "-"},
	{ebiten.KeyNumpadSubtract, "numpad_subtract"},
}

// checkInput returns the intent of the first key that fired this tick
func (e *EbitenRenderer) checkInput() engineinput.Intent {
	// Ctrl combinations belong to handleTileSize
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		return engineinput.Intent{Action: engineinput.ActionNone}
	}

	// ? is Shift+/
	if inpututil.IsKeyJustPressed(ebiten.KeySlash) && ebiten.IsKeyPressed(ebiten.KeyShift) {
		return engineinput.IntentFor(engineinput.DeviceKeyboard, "?")
	}

	for _, k := range repeatKeys {
		key := k.key
		if e.shouldRepeatKey(func() bool { return ebiten.IsKeyPressed(key) }, k.code) {
			return engineinput.IntentFor(engineinput.DeviceKeyboard, k.code)
		}
	}

	for _, k := range pressKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			return engineinput.IntentFor(engineinput.DeviceKeyboard, k.code)
		}
	}

	return engineinput.Intent{Action: engineinput.ActionNone}
}

// handleTileSize handles Ctrl+= / Ctrl+- for pixel tile size, separate from
// the session zoom bound to plain = and -
func (e *EbitenRenderer) handleTileSize() {
	if !ebiten.IsKeyPressed(ebiten.KeyControl) {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) && e.tileSize < maxTileSize {
		e.tileSize += tileSizeStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) && e.tileSize > minTileSize {
		e.tileSize -= tileSizeStep
	}
}

// shouldRepeatKey checks if a key should trigger (initial press or repeat)
func (e *EbitenRenderer) shouldRepeatKey(isPressed func() bool, code string) bool {
	now := time.Now().UnixMilli()

	pressed := isPressed()
	state, exists := e.keyRepeatState[code]

	if !pressed {
		// Key released - clean up state
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

	// Key is held - repeat after the initial delay
	if now-state.firstPressed >= keyRepeatInitialDelay && now-state.lastRepeat >= keyRepeatInterval {
		state.lastRepeat = now
		e.keyRepeatState[code] = state
		return true
	}
	return false
}
