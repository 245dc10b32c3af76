package pkmn

import (
	"errors"
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

func TestChoiceRoundTrip(t *testing.T) {
	var choices []Choice
	choices = append(choices, Pass())
	for n := uint8(0); n <= 4; n++ {
		choices = append(choices, Move(n))
	}
	for n := uint8(2); n <= 6; n++ {
		choices = append(choices, Switch(n))
	}

	for _, c := range choices {
		got := DecodeChoice(EncodeChoice(&c))
		if diff := pretty.Compare(c, got); diff != "" {
			t.Errorf("TestChoiceRoundTrip(%s): -want/+got:\n%s", c, diff)
		}
	}
}

func TestEncodeChoice(t *testing.T) {
	tests := []struct {
		name   string
		choice *Choice
		want   byte
	}{
		{name: "nil is pass", choice: nil, want: 0},
		{name: "pass", choice: &Choice{}, want: 0},
		{name: "move 4", choice: &Choice{Type: ChoiceMove, Data: 4}, want: 0b0001_0001},
		{name: "switch 5", choice: &Choice{Type: ChoiceSwitch, Data: 5}, want: 0b0001_0110},
		{name: "move 0", choice: &Choice{Type: ChoiceMove}, want: 0b0000_0001},
	}

	for _, test := range tests {
		if got := EncodeChoice(test.choice); got != test.want {
			t.Errorf("TestEncodeChoice(%s): got %08b, want %08b", test.name, got, test.want)
		}
	}

	if EncodeChoice(nil) != Pass().Encode() {
		t.Errorf("TestEncodeChoice: nil and Pass() encode differently")
	}
}

func TestDecodeChoice(t *testing.T) {
	tests := []struct {
		b    byte
		want Choice
	}{
		{0b0001_0001, Move(4)},
		{0b0001_0110, Switch(5)},
		{0b0000_0000, Pass()},
		{0b0000_0011, Choice{Type: ChoiceType(3)}},
	}

	for _, test := range tests {
		got := DecodeChoice(test.b)
		if diff := pretty.Compare(test.want, got); diff != "" {
			t.Errorf("TestDecodeChoice(%08b): -want/+got:\n%s", test.b, diff)
		}
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		desc    string
		text    string
		want    Choice
		wantErr bool
	}{
		{desc: "Success: pass", text: "pass", want: Pass()},
		{desc: "Success: move 0", text: "move 0", want: Move(0)},
		{desc: "Success: move 4", text: "move 4", want: Move(4)},
		{desc: "Success: switch 2", text: "switch 2", want: Switch(2)},
		{desc: "Success: switch 6", text: "switch 6", want: Switch(6)},
		{desc: "Error: pass with data", text: "pass 2", wantErr: true},
		{desc: "Error: move 5", text: "move 5", wantErr: true},
		{desc: "Error: switch 1", text: "switch 1", wantErr: true},
		{desc: "Error: switch 7", text: "switch 7", wantErr: true},
		{desc: "Error: move without slot", text: "move", wantErr: true},
		{desc: "Error: leading space", text: " pass", wantErr: true},
		{desc: "Error: trailing space", text: "move 1 ", wantErr: true},
		{desc: "Error: upper case", text: "Move 1", wantErr: true},
		{desc: "Error: empty", text: "", wantErr: true},
	}

	for _, test := range tests {
		got, err := ParseChoice(test.text)
		switch {
		case err == nil && test.wantErr:
			t.Errorf("TestParseChoice(%s): got err == nil, want err != nil", test.desc)
			continue
		case err != nil && !test.wantErr:
			t.Errorf("TestParseChoice(%s): got err == %s, want err == nil", test.desc, err)
			continue
		case err != nil:
			if !errors.Is(err, ErrInvalidChoice) {
				t.Errorf("TestParseChoice(%s): got err == %s, want ErrInvalidChoice", test.desc, err)
			}
			continue
		}

		if diff := pretty.Compare(test.want, got); diff != "" {
			t.Errorf("TestParseChoice(%s): -want/+got:\n%s", test.desc, diff)
		}
		if got.String() != test.text {
			t.Errorf("TestParseChoice(%s): String() got %q, want %q", test.desc, got.String(), test.text)
		}
	}
}

func TestParseChoiceErrorText(t *testing.T) {
	_, err := ParseChoice("switch 1")
	if err == nil {
		t.Fatalf("TestParseChoiceErrorText: got err == nil, want err != nil")
	}
	if got, want := err.Error(), "'switch 1': invalid choice"; got != want {
		t.Errorf("TestParseChoiceErrorText: got %q, want %q", got, want)
	}
}
