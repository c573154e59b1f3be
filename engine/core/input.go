package core

import (
	"fmt"
	"strings"
)

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

func (b Button) String() string {
	switch b {
	case BUTTON_LEFT:
		return "left"
	case BUTTON_RIGHT:
		return "right"
	case BUTTON_MIDDLE:
		return "middle"
	}
	return fmt.Sprintf("button(%d)", uint16(b))
}

// Key code definitions. Values follow the virtual-key table so they fit in a byte.
type KeyCode uint16

const (
	KEY_UNKNOWN   KeyCode = 0x00
	KEY_BACKSPACE KeyCode = 0x08
	KEY_TAB       KeyCode = 0x09
	KEY_ENTER     KeyCode = 0x0D
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_0         KeyCode = 0x30
	KEY_1         KeyCode = 0x31
	KEY_2         KeyCode = 0x32
	KEY_3         KeyCode = 0x33
	KEY_4         KeyCode = 0x34
	KEY_5         KeyCode = 0x35
	KEY_6         KeyCode = 0x36
	KEY_7         KeyCode = 0x37
	KEY_8         KeyCode = 0x38
	KEY_9         KeyCode = 0x39
	KEY_A         KeyCode = 0x41
	KEY_B         KeyCode = 0x42
	KEY_C         KeyCode = 0x43
	KEY_D         KeyCode = 0x44
	KEY_E         KeyCode = 0x45
	KEY_F         KeyCode = 0x46
	KEY_G         KeyCode = 0x47
	KEY_H         KeyCode = 0x48
	KEY_I         KeyCode = 0x49
	KEY_J         KeyCode = 0x4A
	KEY_K         KeyCode = 0x4B
	KEY_L         KeyCode = 0x4C
	KEY_M         KeyCode = 0x4D
	KEY_N         KeyCode = 0x4E
	KEY_O         KeyCode = 0x4F
	KEY_P         KeyCode = 0x50
	KEY_Q         KeyCode = 0x51
	KEY_R         KeyCode = 0x52
	KEY_S         KeyCode = 0x53
	KEY_T         KeyCode = 0x54
	KEY_U         KeyCode = 0x55
	KEY_V         KeyCode = 0x56
	KEY_W         KeyCode = 0x57
	KEY_X         KeyCode = 0x58
	KEY_Y         KeyCode = 0x59
	KEY_Z         KeyCode = 0x5A
	KEY_F1        KeyCode = 0x70
	KEY_F2        KeyCode = 0x71
	KEY_F3        KeyCode = 0x72
	KEY_F4        KeyCode = 0x73
	KEY_F5        KeyCode = 0x74
	KEY_F6        KeyCode = 0x75
	KEY_F7        KeyCode = 0x76
	KEY_F8        KeyCode = 0x77
	KEY_F9        KeyCode = 0x78
	KEY_F10       KeyCode = 0x79
	KEY_F11       KeyCode = 0x7A
	KEY_F12       KeyCode = 0x7B
	KEY_LSHIFT    KeyCode = 0xA0
	KEY_RSHIFT    KeyCode = 0xA1
	KEY_LCONTROL  KeyCode = 0xA2
	KEY_RCONTROL  KeyCode = 0xA3
	KEYS_MAX_KEYS KeyCode = 0x100
)

var keyNames = map[string]KeyCode{
	"backspace": KEY_BACKSPACE,
	"tab":       KEY_TAB,
	"enter":     KEY_ENTER,
	"escape":    KEY_ESCAPE,
	"space":     KEY_SPACE,
	"left":      KEY_LEFT,
	"up":        KEY_UP,
	"right":     KEY_RIGHT,
	"down":      KEY_DOWN,
	"lshift":    KEY_LSHIFT,
	"rshift":    KEY_RSHIFT,
	"lcontrol":  KEY_LCONTROL,
	"rcontrol":  KEY_RCONTROL,
}

// ParseKeyName maps a binding name ("W", "up", "F3", "space") to its key code.
func ParseKeyName(name string) (KeyCode, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyNames[n]; ok {
		return k, nil
	}
	if len(n) == 1 {
		c := n[0]
		switch {
		case c >= 'a' && c <= 'z':
			return KEY_A + KeyCode(c-'a'), nil
		case c >= '0' && c <= '9':
			return KEY_0 + KeyCode(c-'0'), nil
		}
	}
	var f int
	if _, err := fmt.Sscanf(n, "f%d", &f); err == nil && f >= 1 && f <= 12 && n == fmt.Sprintf("f%d", f) {
		return KEY_F1 + KeyCode(f-1), nil
	}
	return KEY_UNKNOWN, fmt.Errorf("unknown key name %q", name)
}

// Mouse state structure
type MouseState struct {
	X       int32
	Y       int32
	Buttons [BUTTON_MAX_BUTTONS]bool
}

// Keyboard state structure
type KeyboardState struct {
	Keys [KEYS_MAX_KEYS]bool
}

// InputState holds current and previous states for keyboard and mouse.
type InputState struct {
	KeyboardCurrent  KeyboardState
	KeyboardPrevious KeyboardState
	MouseCurrent     MouseState
	MousePrevious    MouseState
}

func NewInputState() *InputState {
	return &InputState{}
}

// Process folds an event into the current state and reports whether it
// should be dispatched. Key repeats, and releases of keys that were never
// seen going down, change nothing and are swallowed, so every dispatched
// release is paired with an earlier dispatched press.
func (in *InputState) Process(e Event) bool {
	switch e.Type {
	case EventKeyPressed, EventKeyReleased:
		if e.Key >= KEYS_MAX_KEYS {
			return false
		}
		pressed := e.Type == EventKeyPressed
		if in.KeyboardCurrent.Keys[e.Key] == pressed {
			return false
		}
		in.KeyboardCurrent.Keys[e.Key] = pressed
		return true
	case EventButtonPressed, EventButtonReleased:
		if e.Button >= BUTTON_MAX_BUTTONS {
			return false
		}
		pressed := e.Type == EventButtonPressed
		if in.MouseCurrent.Buttons[e.Button] == pressed {
			return false
		}
		in.MouseCurrent.Buttons[e.Button] = pressed
		return true
	case EventMouseMoved:
		in.MouseCurrent.X = e.X
		in.MouseCurrent.Y = e.Y
		return true
	}
	return true
}

// Update copies current states to previous states. Call it once per frame,
// after every event of that frame was processed.
func (in *InputState) Update() {
	in.KeyboardPrevious = in.KeyboardCurrent
	in.MousePrevious = in.MouseCurrent
}

func (in *InputState) IsKeyDown(key KeyCode) bool {
	return key < KEYS_MAX_KEYS && in.KeyboardCurrent.Keys[key]
}

func (in *InputState) WasKeyDown(key KeyCode) bool {
	return key < KEYS_MAX_KEYS && in.KeyboardPrevious.Keys[key]
}

func (in *InputState) IsButtonDown(button Button) bool {
	return button < BUTTON_MAX_BUTTONS && in.MouseCurrent.Buttons[button]
}

func (in *InputState) WasButtonDown(button Button) bool {
	return button < BUTTON_MAX_BUTTONS && in.MousePrevious.Buttons[button]
}

func (in *InputState) MousePosition() (int32, int32) {
	return in.MouseCurrent.X, in.MouseCurrent.Y
}

func (in *InputState) PreviousMousePosition() (int32, int32) {
	return in.MousePrevious.X, in.MousePrevious.Y
}
