// README: Date resolution sub-dialog; drives a date slot to an unambiguous value.
package dialog

import (
	"flybot/internal/modules/booking"
	"flybot/internal/timex"
)

// DateState identifies the sub-dialog's position in its state machine.
type DateState string

const (
	DateStart         DateState = "start"
	DateAwaitingInput DateState = "awaiting_input"
	DateResolved      DateState = "resolved"
	DateAbandoned     DateState = "abandoned"
)

// dateTransitions is the sub-dialog state flow as code. The retry loop on
// AwaitingInput is unbounded; it ends only on a valid date, a cancellation,
// or the host tearing the conversation down.
var dateTransitions = map[DateState][]DateState{
	DateStart:         {DateAwaitingInput, DateAbandoned},
	DateAwaitingInput: {DateAwaitingInput, DateResolved, DateAbandoned},
}

func canTransition(from, to DateState) bool {
	for _, s := range dateTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// DateResolver is the persisted state of one date sub-dialog run.
type DateResolver struct {
	Slot  booking.Slot `json:"slot"`
	State DateState    `json:"state"`
	Seed  string       `json:"seed,omitempty"`
}

// beginDateResolver opens the sub-dialog for a slot. Without a seed it asks
// the slot's date question. With a seed — definite or not — it issues the
// re-prompt: a value supplied up front is informative context that must be
// reconfirmed through the prompt, never silently accepted.
func beginDateResolver(slot booking.Slot, seed string) (*DateResolver, string) {
	d := &DateResolver{Slot: slot, State: DateStart, Seed: seed}
	d.transition(DateAwaitingInput)
	if seed == "" {
		return d, datePrompt(slot)
	}
	return d, promptDateRetry
}

// HandleReply validates one user reply. On acceptance it returns the
// normalized ISO calendar date and moves to Resolved; otherwise it stays in
// AwaitingInput and returns the retry prompt.
func (d *DateResolver) HandleReply(reply string) (date string, retryPrompt string, resolved bool) {
	date, ok := validateDateReply(reply)
	if !ok {
		d.transition(DateAwaitingInput)
		return "", promptDateRetry, false
	}
	d.transition(DateResolved)
	return date, "", true
}

// Abandon discards the sub-dialog's partial state.
func (d *DateResolver) Abandon() {
	d.transition(DateAbandoned)
	d.Seed = ""
}

func (d *DateResolver) transition(to DateState) {
	if canTransition(d.State, to) {
		d.State = to
	}
}

// validateDateReply parses the reply, keeps only the date portion, and
// accepts it iff the classifier marks it definite.
func validateDateReply(reply string) (string, bool) {
	expr, err := timex.Parse(reply)
	if err != nil {
		return "", false
	}
	date := expr.DatePart()
	if !timex.Classify(date).Contains(timex.TypeDefinite) {
		return "", false
	}
	return string(date), true
}
