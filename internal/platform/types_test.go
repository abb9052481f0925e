package platform

import "testing"

func TestParseMouseButton_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  MouseButton
	}{
		{"left", MouseLeft},
		{"Left", MouseLeft},
		{"LEFT", MouseLeft},
		{"right", MouseRight},
		{"Right", MouseRight},
		{"middle", MouseMiddle},
		{"Middle", MouseMiddle},
	}
	for _, tt := range tests {
		got, err := ParseMouseButton(tt.input)
		if err != nil {
			t.Errorf("ParseMouseButton(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseMouseButton(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseMouseButton_Invalid(t *testing.T) {
	_, err := ParseMouseButton("invalid")
	if err == nil {
		t.Error("ParseMouseButton(\"invalid\") should fail")
	}
}

func TestParseScrollDirection(t *testing.T) {
	if d, err := ParseScrollDirection("DOWN"); err != nil || d != ScrollDown {
		t.Errorf("ParseScrollDirection(DOWN) = %s, %v", d, err)
	}
	if d, err := ParseScrollDirection("up"); err != nil || d != ScrollUp {
		t.Errorf("ParseScrollDirection(up) = %s, %v", d, err)
	}
	if _, err := ParseScrollDirection("sideways"); err == nil {
		t.Error("ParseScrollDirection(sideways) should fail")
	}
}

func TestParseFlag(t *testing.T) {
	tests := []struct {
		input string
		want  Flag
	}{
		{"shift", FlagShift},
		{"Ctrl", FlagControl},
		{"control", FlagControl},
		{"option", FlagAlt},
		{"cmd", FlagMeta},
		{" meta ", FlagMeta},
		{"help", FlagHelp},
	}
	for _, tt := range tests {
		got, err := ParseFlag(tt.input)
		if err != nil {
			t.Errorf("ParseFlag(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseFlag(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
	if _, err := ParseFlag("hyper"); err == nil {
		t.Error("ParseFlag(\"hyper\") should fail")
	}
}

func TestKeyCode_String(t *testing.T) {
	tests := []struct {
		code KeyCode
		want string
	}{
		{KeyF1, "f1"},
		{KeyF24, "f24"},
		{KeyLeftArrow, "left"},
		{KeyReturn, "return"},
		{KeySpace, "space"},
		{KeyCode(999), "KeyCode(999)"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.code), got, tt.want)
		}
	}
}

func TestKeyEvent_String(t *testing.T) {
	ev := KeyEvent{Char: 'A', IsChar: true, Down: true, Flags: []Flag{FlagShift}}
	if got, want := ev.String(), `char 'A' down [shift]`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	ev = KeyEvent{Code: KeyTab}
	if got, want := ev.String(), "key tab up []"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
