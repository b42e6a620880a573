package input

import (
	"errors"
	"io"
	"strings"
	"testing"
)

// feed returns a byte source that yields bs, then io errors
func feed(bs ...byte) func() (byte, error) {
	return func() (byte, error) {
		if len(bs) == 0 {
			return 0, errors.New("eof")
		}
		b := bs[0]
		bs = bs[1:]
		return b, nil
	}
}

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		name      string
		first     byte
		rest      []byte
		wantCode  string
		wantShift bool
	}{
		{"letter", 'w', nil, "w", false},
		{"shifted letter", 'W', nil, "w", true},
		{"arrow up CSI", 0x1b, []byte{'[', 'A'}, "arrow_up", false},
		{"arrow left SS3", 0x1b, []byte{'O', 'D'}, "arrow_left", false},
		{"unknown CSI", 0x1b, []byte{'[', 'Z'}, "", false},
		{"lone escape", 0x1b, nil, "escape", false},
		{"ctrl-c", 3, nil, "ctrl_c", false},
		{"tab", '\t', nil, "tab", false},
		{"bracket", '[', nil, "[", false},
		{"control byte", 1, nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, shift := decodeKey(tt.first, feed(tt.rest...))
			if code != tt.wantCode || shift != tt.wantShift {
				t.Errorf("decodeKey = (%q, %v), want (%q, %v)", code, shift, tt.wantCode, tt.wantShift)
			}
		})
	}
}

func TestReadKey(t *testing.T) {
	r := strings.NewReader("\x1b[CW")

	raw, err := ReadKey(r)
	if err != nil {
		t.Fatalf("ReadKey() error = %v", err)
	}
	if raw.Code != "arrow_right" || raw.Device != DeviceTerminal {
		t.Errorf("first key = %+v, want terminal arrow_right", raw)
	}

	raw, err = ReadKey(r)
	if err != nil {
		t.Fatalf("ReadKey() error = %v", err)
	}
	if raw.Code != "w" || !raw.Shift {
		t.Errorf("second key = %+v, want shifted w", raw)
	}

	if _, err := ReadKey(r); !errors.Is(err, io.EOF) {
		t.Errorf("ReadKey() at end = %v, want io.EOF", err)
	}
}
