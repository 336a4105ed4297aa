package editor

import (
	"os"
	"os/signal"
	"syscall"
	"unicode/utf8"

	"golang.org/x/term"
)

// Terminal manages raw mode, the alternate screen buffer and terminal
// dimensions.
type Terminal struct {
	oldState *term.State
	width    int
	height   int
	sigwinch chan os.Signal
}

func NewTerminal() (*Terminal, error) {
	t := &Terminal{}

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return nil, err
	}
	t.oldState = oldState

	// Alternate screen, cursor hidden until the first frame.
	os.Stdout.WriteString("\x1b[?1049h")
	os.Stdout.WriteString("\x1b[?25l")

	t.width, t.height, err = term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		t.Restore()
		return nil, err
	}

	t.sigwinch = make(chan os.Signal, 1)
	signal.Notify(t.sigwinch, syscall.SIGWINCH)

	return t, nil
}

// Size returns the current terminal dimensions.
func (t *Terminal) Size() (w, h int) { return t.width, t.height }

// Resize re-queries terminal dimensions. Returns true if the size changed.
func (t *Terminal) Resize() bool {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return false
	}
	changed := w != t.width || h != t.height
	t.width = w
	t.height = h
	return changed
}

// SigwinchChan returns the channel that receives SIGWINCH signals.
func (t *Terminal) SigwinchChan() <-chan os.Signal {
	return t.sigwinch
}

// Restore returns the terminal to its original state.
func (t *Terminal) Restore() {
	os.Stdout.WriteString("\x1b[?25h")
	os.Stdout.WriteString("\x1b[?1049l")
	if t.oldState != nil {
		term.Restore(int(os.Stdin.Fd()), t.oldState)
	}
	signal.Stop(t.sigwinch)
}

// ReadKey reads a single keypress from stdin in raw mode.
func (t *Terminal) ReadKey() (Key, error) {
	buf := make([]byte, 6)
	n, err := os.Stdin.Read(buf)
	if err != nil {
		return Key{}, err
	}
	return parseKey(buf[:n]), nil
}

// Key types.
const (
	KeyRune      = iota // Normal printable character
	KeyEscape           // Escape key (standalone)
	KeyEnter            // Enter/Return
	KeyBackspace        // Backspace
	KeyUp               // Arrow up
	KeyDown             // Arrow down
	KeyLeft             // Arrow left
	KeyRight            // Arrow right
	KeyHome             // Home
	KeyEnd              // End
	KeyDelete           // Forward delete
	KeyCtrlS            // Ctrl+S: save
	KeyCtrlQ            // Ctrl+Q: quit
	KeyCtrlR            // Ctrl+R: corrections menu
	KeyCtrlG            // Ctrl+G: toggle grammar rules
	KeyUnknown          // Unrecognised sequence
)

type Key struct {
	Type int
	Rune rune
}

func parseKey(buf []byte) Key {
	if len(buf) == 0 {
		return Key{Type: KeyUnknown}
	}

	if len(buf) == 1 {
		b := buf[0]
		switch {
		case b == 27:
			return Key{Type: KeyEscape}
		case b == 13:
			return Key{Type: KeyEnter}
		case b == 127 || b == 8:
			return Key{Type: KeyBackspace}
		case b == 19: // Ctrl+S
			return Key{Type: KeyCtrlS}
		case b == 17: // Ctrl+Q
			return Key{Type: KeyCtrlQ}
		case b == 18: // Ctrl+R
			return Key{Type: KeyCtrlR}
		case b == 7: // Ctrl+G
			return Key{Type: KeyCtrlG}
		case b >= 32 && b < 127:
			return Key{Type: KeyRune, Rune: rune(b)}
		default:
			return Key{Type: KeyUnknown}
		}
	}

	// CSI sequences.
	if buf[0] == 27 && len(buf) >= 3 && buf[1] == '[' {
		switch buf[2] {
		case 'A':
			return Key{Type: KeyUp}
		case 'B':
			return Key{Type: KeyDown}
		case 'C':
			return Key{Type: KeyRight}
		case 'D':
			return Key{Type: KeyLeft}
		case 'H':
			return Key{Type: KeyHome}
		case 'F':
			return Key{Type: KeyEnd}
		}
		if len(buf) >= 4 && buf[3] == '~' {
			switch buf[2] {
			case '1':
				return Key{Type: KeyHome}
			case '3':
				return Key{Type: KeyDelete}
			case '4':
				return Key{Type: KeyEnd}
			}
		}
		return Key{Type: KeyUnknown}
	}

	// Multi-byte UTF-8 character.
	if r, _ := utf8.DecodeRune(buf); r != utf8.RuneError && r >= 32 {
		return Key{Type: KeyRune, Rune: r}
	}
	return Key{Type: KeyUnknown}
}
