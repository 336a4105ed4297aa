package editor

import (
	"os"
	"strings"
	"unicode/utf8"
)

// Buffer holds the text being edited plus the caret, as a rune offset. The
// engine works in rune offsets, so the buffer does too.
type Buffer struct {
	Text     string
	Caret    int
	Dirty    bool
	Filename string
}

func NewBuffer(filename string) *Buffer {
	return &Buffer{Filename: filename}
}

// Load reads the file into the buffer. A missing file starts empty.
func (b *Buffer) Load() error {
	if b.Filename == "" {
		return nil
	}
	data, err := os.ReadFile(b.Filename)
	if err != nil {
		if os.IsNotExist(err) {
			b.Text = ""
			return nil
		}
		return err
	}
	// Strip the trailing newline to avoid a phantom empty line.
	b.Text = strings.TrimSuffix(string(data), "\n")
	b.Caret = 0
	b.Dirty = false
	return nil
}

// Save writes the buffer back to its file.
func (b *Buffer) Save() error {
	if b.Filename == "" {
		return nil
	}
	if err := os.WriteFile(b.Filename, []byte(b.Text+"\n"), 0644); err != nil {
		return err
	}
	b.Dirty = false
	return nil
}

// Insert places r at the caret and advances it.
func (b *Buffer) Insert(r rune) {
	runes := []rune(b.Text)
	b.clampCaret(len(runes))
	out := make([]rune, 0, len(runes)+1)
	out = append(out, runes[:b.Caret]...)
	out = append(out, r)
	out = append(out, runes[b.Caret:]...)
	b.Text = string(out)
	b.Caret++
	b.Dirty = true
}

// DeleteBack removes the rune before the caret.
func (b *Buffer) DeleteBack() {
	runes := []rune(b.Text)
	b.clampCaret(len(runes))
	if b.Caret == 0 {
		return
	}
	b.Text = string(append(runes[:b.Caret-1:b.Caret-1], runes[b.Caret:]...))
	b.Caret--
	b.Dirty = true
}

// DeleteForward removes the rune at the caret.
func (b *Buffer) DeleteForward() {
	runes := []rune(b.Text)
	b.clampCaret(len(runes))
	if b.Caret >= len(runes) {
		return
	}
	b.Text = string(append(runes[:b.Caret:b.Caret], runes[b.Caret+1:]...))
	b.Dirty = true
}

// Len returns the buffer length in runes.
func (b *Buffer) Len() int {
	return utf8.RuneCountInString(b.Text)
}

// MoveCaret shifts the caret by delta runes, clamped to the text.
func (b *Buffer) MoveCaret(delta int) {
	b.Caret += delta
	b.clampCaret(b.Len())
}

func (b *Buffer) clampCaret(n int) {
	if b.Caret < 0 {
		b.Caret = 0
	}
	if b.Caret > n {
		b.Caret = n
	}
}
