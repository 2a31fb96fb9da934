package input

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// Translator converts tcell events into Events
// Mouse deltas are relative to the previous motion event seen by the same Translator
type Translator struct {
	lastX, lastY int
	haveMouse    bool
}

// NewTranslator creates a translator with no mouse history
func NewTranslator() *Translator {
	return &Translator{}
}

// FromTcell translates ev, false for events with no engine meaning
func (t *Translator) FromTcell(ev tcell.Event) (Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return translateKey(ev)

	case *tcell.EventMouse:
		x, y := ev.Position()
		buttons := ev.Buttons()
		if buttons&tcell.WheelUp != 0 {
			return Event{Kind: MouseScroll, Scroll: 1, X: x, Y: y, When: ev.When()}, true
		}
		if buttons&tcell.WheelDown != 0 {
			return Event{Kind: MouseScroll, Scroll: -1, X: x, Y: y, When: ev.When()}, true
		}

		out := Event{Kind: MouseMotion, X: x, Y: y, When: ev.When()}
		if t.haveMouse {
			out.DX = float64(x - t.lastX)
			out.DY = float64(y - t.lastY)
		}
		t.lastX, t.lastY, t.haveMouse = x, y, true
		return out, true

	case *tcell.EventResize:
		w, h := ev.Size()
		return Event{Kind: Resize, Width: w, Height: h, When: ev.When()}, true

	case *tcell.EventFocus:
		if !ev.Focused {
			t.haveMouse = false
		}
		// tcell leaves focus events unstamped
		return Event{Kind: Focus, Focused: ev.Focused, When: time.Now()}, true
	}
	return Event{}, false
}

func translateKey(ev *tcell.EventKey) (Event, bool) {
	out := Event{Kind: KeyPress, When: ev.When()}
	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			out.Key = KeySpace
		} else {
			out.Key = KeyRune
			out.Rune = ev.Rune()
		}
	case tcell.KeyUp:
		out.Key = KeyUp
	case tcell.KeyDown:
		out.Key = KeyDown
	case tcell.KeyLeft:
		out.Key = KeyLeft
	case tcell.KeyRight:
		out.Key = KeyRight
	case tcell.KeyBacktab:
		out.Key = KeyLShift
	case tcell.KeyEscape:
		out.Key = KeyEscape
	case tcell.KeyEnter:
		out.Key = KeyEnter
	case tcell.KeyCtrlC:
		out.Key = KeyCtrlC
	default:
		return Event{}, false
	}
	return out, true
}
