// README: Interrupt handler tests, independent of any step.
package dialog

import "testing"

func TestCheckInterrupt(t *testing.T) {
	cases := []struct {
		in   string
		want Interrupt
	}{
		{"cancel", InterruptCancel},
		{"Cancel", InterruptCancel},
		{"  QUIT  ", InterruptCancel},
		{"stop", InterruptCancel},
		{"help", InterruptHelp},
		{"?", InterruptHelp},
		{"HELP", InterruptHelp},
		{"cancel my subscription somehow", InterruptNone},
		{"paris", InterruptNone},
		{"", InterruptNone},
	}
	for _, c := range cases {
		if got := CheckInterrupt(c.in); got != c.want {
			t.Errorf("CheckInterrupt(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
