package keyboard

// Key is a key press as far as the controller cares.
type Key int

const (
	KeyOther Key = iota
	KeyArrowUp
	KeyArrowDown
	KeyEnter
	KeyBackspace
	KeyModifier // a bare Shift/Control/Alt/Meta press
)

func (k Key) String() string {
	switch k {
	case KeyArrowUp:
		return "ArrowUp"
	case KeyArrowDown:
		return "ArrowDown"
	case KeyEnter:
		return "Enter"
	case KeyBackspace:
		return "Backspace"
	case KeyModifier:
		return "Modifier"
	}
	return "Other"
}

// ParseKey maps a KeyboardEvent.code name to a Key.
func ParseKey(code string) Key {
	switch code {
	case "ArrowUp":
		return KeyArrowUp
	case "ArrowDown":
		return KeyArrowDown
	case "Enter", "NumpadEnter":
		return KeyEnter
	case "Backspace":
		return KeyBackspace
	case "ShiftLeft", "ShiftRight",
		"ControlLeft", "ControlRight",
		"AltLeft", "AltRight",
		"MetaLeft", "MetaRight",
		"OSLeft", "OSRight":
		return KeyModifier
	}
	return KeyOther
}
