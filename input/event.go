package input

import (
	"fmt"
	"time"
)

// Kind classifies a device or window event
type Kind uint8

const (
	KindNone Kind = iota
	KeyPress
	KeyRelease
	MouseMotion
	MouseScroll
	Resize
	Focus
)

var kindNames = [...]string{
	KindNone:    "none",
	KeyPress:    "key_press",
	KeyRelease:  "key_release",
	MouseMotion: "mouse_motion",
	MouseScroll: "mouse_scroll",
	Resize:      "resize",
	Focus:       "focus",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Key identifies a non-printable key; printable keys use KeyRune with Event.Rune set
type Key uint16

const (
	KeyNone Key = iota
	KeyRune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	// KeyLShift is reported by terminals as Shift+Tab since a bare Shift produces no event
	KeyLShift
	KeyEscape
	KeyEnter
	KeyCtrlC
)

// Event is a timestamped device or window event
// Only the fields relevant to Kind are populated
type Event struct {
	Kind Kind
	When time.Time

	// KeyPress, KeyRelease
	Key  Key
	Rune rune

	// MouseMotion: absolute cell position and delta from the previous motion event
	X, Y   int
	DX, DY float64

	// MouseScroll: positive scrolls up
	Scroll float64

	// Resize
	Width, Height int

	// Focus
	Focused bool
}

// Pressed is a key press of key at when
func Pressed(key Key, when time.Time) Event {
	return Event{Kind: KeyPress, Key: key, When: when}
}

// PressedRune is a key press of a printable rune at when
func PressedRune(r rune, when time.Time) Event {
	return Event{Kind: KeyPress, Key: KeyRune, Rune: r, When: when}
}

// Released is the release counterpart of a key event
func (e Event) Released(when time.Time) Event {
	return Event{Kind: KeyRelease, Key: e.Key, Rune: e.Rune, When: when}
}

// IsKey reports whether e is a press or release
func (e Event) IsKey() bool {
	return e.Kind == KeyPress || e.Kind == KeyRelease
}

// IsRune reports whether e is a key event for r, case-insensitive for ASCII letters
func (e Event) IsRune(r rune) bool {
	if !e.IsKey() || e.Key != KeyRune {
		return false
	}
	return lower(e.Rune) == lower(r)
}

func lower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func (e Event) String() string {
	switch e.Kind {
	case KeyPress, KeyRelease:
		if e.Key == KeyRune {
			return fmt.Sprintf("%s '%c'", e.Kind, e.Rune)
		}
		return fmt.Sprintf("%s key(%d)", e.Kind, e.Key)
	case MouseMotion:
		return fmt.Sprintf("%s (%d,%d) d=(%.0f,%.0f)", e.Kind, e.X, e.Y, e.DX, e.DY)
	case MouseScroll:
		return fmt.Sprintf("%s %.0f", e.Kind, e.Scroll)
	case Resize:
		return fmt.Sprintf("%s %dx%d", e.Kind, e.Width, e.Height)
	case Focus:
		return fmt.Sprintf("%s %t", e.Kind, e.Focused)
	}
	return e.Kind.String()
}
