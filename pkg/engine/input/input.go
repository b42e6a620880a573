package input

import (
	"fmt"
	"io"
	"time"
)

// byteReader returns a source of single bytes read from r
func byteReader(r io.Reader) func() (byte, error) {
	buf := make([]byte, 1)
	return func() (byte, error) {
		if _, err := io.ReadFull(r, buf); err != nil {
			return 0, err
		}
		return buf[0], nil
	}
}

// decodeEscape finishes an escape sequence whose ESC byte was already read.
// A lone ESC followed by anything other than a CSI/SS3 introducer is "escape".
func decodeEscape(next func() (byte, error)) string {
	b2, err := next()
	if err != nil {
		return "escape"
	}
	if b2 != '[' && b2 != 'O' {
		return "escape"
	}

	b3, err := next()
	if err != nil {
		return ""
	}
	switch b3 {
	case 'A':
		return "arrow_up"
	case 'B':
		return "arrow_down"
	case 'C':
		return "arrow_right"
	case 'D':
		return "arrow_left"
	}
	return ""
}

// decodeKey turns the first byte of a key press into a binding code,
// reading more bytes through next for escape sequences. Uppercase letters
// come back lowercased with shift set.
func decodeKey(b byte, next func() (byte, error)) (code string, shift bool) {
	switch {
	case b == 0x1b:
		return decodeEscape(next), false
	case b == 3:
		return "ctrl_c", false
	case b == '\t':
		return "tab", false
	case b == '\r' || b == '\n':
		return "enter", false
	case b >= 'A' && b <= 'Z':
		return string(b + ('a' - 'A')), true
	case b >= 32 && b < 127:
		return string(b), false
	}
	return "", false
}

// ReadKey blocks until a key press arrives on r and returns it as a raw input
// event. The caller puts the terminal in raw mode for as long as it reads keys
// (see terminal.MakeRaw).
func ReadKey(r io.Reader) (RawInput, error) {
	next := byteReader(r)
	b, err := next()
	if err != nil {
		return RawInput{}, fmt.Errorf("read key: %w", err)
	}

	code, shift := decodeKey(b, next)
	return RawInput{
		Device:    DeviceTerminal,
		Code:      code,
		Shift:     shift,
		Timestamp: time.Now(),
	}, nil
}
