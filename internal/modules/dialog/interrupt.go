// README: Cross-cutting cancel/help interception, checked before any step runs.
package dialog

import "strings"

// Interrupt classifies an utterance before step logic sees it.
type Interrupt int

const (
	InterruptNone Interrupt = iota
	InterruptHelp
	InterruptCancel
)

var (
	cancelWords = map[string]bool{"cancel": true, "quit": true, "stop": true}
	helpWords   = map[string]bool{"help": true, "?": true}
)

// CheckInterrupt matches the utterance against the fixed trigger sets. The
// check is identical regardless of which step is active.
func CheckInterrupt(utterance string) Interrupt {
	s := strings.ToLower(strings.TrimSpace(utterance))
	switch {
	case cancelWords[s]:
		return InterruptCancel
	case helpWords[s]:
		return InterruptHelp
	}
	return InterruptNone
}
