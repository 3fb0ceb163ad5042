// README: Dialog state, step identifiers and turn outcomes.
package dialog

import "flybot/internal/modules/booking"

// Step identifies where the conversation resumes on the next utterance.
type Step string

const (
	// StepIntro awaits the free-form travel request following the greeting.
	StepIntro Step = "intro"
	// StepSlot awaits a plain text value for State.Slot.
	StepSlot Step = "slot"
	// StepDate awaits input inside the date resolution sub-dialog.
	StepDate Step = "date"
)

// State is the per-conversation record persisted between turns. It is private
// to one conversation; the host guarantees single-threaded handling per
// conversation identifier, so no locking happens here.
type State struct {
	Step    Step           `json:"step"`
	Slot    booking.Slot   `json:"slot,omitempty"`
	Booking booking.Record `json:"booking"`

	// Seeds holds date expressions the reconciler extracted up front. They are
	// informative context for the date sub-dialog, never accepted answers, so
	// they live here rather than in the record.
	Seeds map[booking.Slot]string `json:"seeds,omitempty"`

	// Date is the active date resolution sub-dialog, set while Step == StepDate.
	Date *DateResolver `json:"date,omitempty"`

	// Prompt is the last prompt issued, re-issued unchanged on a help request.
	Prompt string `json:"prompt,omitempty"`
}

// OutcomeKind tags the result of processing one turn.
type OutcomeKind string

const (
	OutcomeAwaitingInput OutcomeKind = "awaiting_input"
	OutcomeCompleted     OutcomeKind = "completed"
	OutcomeCancelled     OutcomeKind = "cancelled"
	OutcomeNotUnderstood OutcomeKind = "not_understood"
)

// Outcome is what the transport collaborator consumes after each turn.
// Rendering the confirmation card for a completed booking is the transport's
// responsibility; the engine only hands over the record.
type Outcome struct {
	Kind    OutcomeKind
	Notices []string        // informational messages preceding the prompt
	Prompt  string          // next thing to ask the user, empty only if nothing follows
	Booking *booking.Record // set when Kind == OutcomeCompleted
}

// User-visible texts. The three failure messages (degraded notice, not
// understood, slot re-prompts) are the only failure surface of the engine.
const (
	promptGreeting = "Hello, I'm here to help you find the best flight for your next vacations!\nWhat kind of flight are you looking for?"
	promptThanks   = "Thanks for using this service.\nWhat else can I do for you?"

	noticeNotConfigured = "NOTE: natural language understanding is not configured. I will ask for each booking detail in turn."
	noticeNotUnderstood = "Sorry, I didn't get your demand. Please try asking in a different way"
	noticeCancelling    = "Cancelling your request."

	helpText = "I can book a flight for you. Tell me where you travel from and to, " +
		"your departure and return dates, and your budget. Say \"cancel\" at any point to abandon the booking."

	promptOrigin      = "From what city will you be travelling?"
	promptDestination = "To what city would you like to travel?"
	promptStartDate   = "On what date would you like to depart?"
	promptEndDate     = "And when would you like to return?"
	promptDateRetry   = "I'm sorry, for best results, please enter your travel date including the day, month and year (for example 2026-09-14)"
	promptBudget      = "What is your budget for this trip?"
	promptBudgetRetry = "Please give me a positive number for your budget."
)

// slotPrompt returns the question asked for a missing plain slot.
func slotPrompt(slot booking.Slot) string {
	switch slot {
	case booking.SlotOrigin:
		return promptOrigin
	case booking.SlotDestination:
		return promptDestination
	case booking.SlotBudget:
		return promptBudget
	}
	return ""
}

// datePrompt returns the opening question of the date sub-dialog.
func datePrompt(slot booking.Slot) string {
	if slot == booking.SlotEndDate {
		return promptEndDate
	}
	return promptStartDate
}
