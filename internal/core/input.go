package core

// Key is one of the fixed set of logical keys the engines poll.
// Hosts translate their physical key events into these.
type Key int

const (
	KeyNone    Key = iota
	KeyLeft        // A, Left arrow
	KeyRight       // D, Right arrow
	KeyUp          // W, Up arrow
	KeyDown        // S, Down arrow
	KeyAbility     // Space, Shift - Maze phase power
	KeyConfirm     // Enter - start / restart a round

	keyCount
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyAbility:
		return "ability"
	case KeyConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// ParseKey maps a key name back to a Key. Unknown names map to KeyNone.
func ParseKey(name string) Key {
	for k := KeyNone; k < keyCount; k++ {
		if k.String() == name {
			return k
		}
	}
	return KeyNone
}

// KeyReader is the read side of the input tracker handed to a tick.
type KeyReader interface {
	IsPressed(k Key) bool
}

// KeyTracker holds the live pressed/released state of every Key.
// Writes are last-writer-wins with no queuing; the tick only reads.
type KeyTracker struct {
	pressed [keyCount]bool
}

// Set overwrites the tracked state for a key.
// Out-of-range keys are ignored.
func (t *KeyTracker) Set(k Key, pressed bool) {
	if k <= KeyNone || k >= keyCount {
		return
	}
	t.pressed[k] = pressed
}

// IsPressed reports whether the key is currently held.
func (t *KeyTracker) IsPressed(k Key) bool {
	if k <= KeyNone || k >= keyCount {
		return false
	}
	return t.pressed[k]
}

// Clear releases every key.
func (t *KeyTracker) Clear() {
	t.pressed = [keyCount]bool{}
}

// Axis returns -1, 0 or 1 for a pair of opposing keys.
func Axis(keys KeyReader, negative, positive Key) float64 {
	var v float64
	if keys.IsPressed(negative) {
		v--
	}
	if keys.IsPressed(positive) {
		v++
	}
	return v
}
