// README: Slot-filling orchestrator; the turn-by-turn dialog state machine.
package dialog

import (
	"context"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"flybot/internal/modules/booking"
	"flybot/internal/nlu"
)

// Engine processes one utterance at a time per conversation. Waiting for the
// user is modeled as returning an AwaitingInput outcome plus the state to
// persist, never as blocking. The recognizer and logger are explicit
// dependencies; nothing here is process-global.
type Engine struct {
	recognizer nlu.Recognizer
	log        *zap.Logger
}

// NewEngine wires the orchestrator. recognizer may be nil, which puts every
// conversation in degraded mode.
func NewEngine(recognizer nlu.Recognizer, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{recognizer: recognizer, log: log}
}

// Configured reports whether the engine has a usable language recognizer.
func (e *Engine) Configured() bool {
	return e.recognizer != nil && e.recognizer.IsConfigured()
}

// Begin opens a conversation. With a configured recognizer it greets and
// suspends; in degraded mode it skips straight to slot filling over an empty
// record, announcing the degradation once.
func (e *Engine) Begin(ctx context.Context) (Outcome, State) {
	var state State
	if !e.Configured() {
		return e.advance(ctx, &state, noticeNotConfigured), state
	}
	state.Step = StepIntro
	return e.await(&state, promptGreeting), state
}

// Turn resumes the conversation from the persisted state with the next
// utterance and returns the outcome plus the updated state.
func (e *Engine) Turn(ctx context.Context, state State, utterance string) (Outcome, State) {
	switch CheckInterrupt(utterance) {
	case InterruptCancel:
		return e.cancel(&state), state
	case InterruptHelp:
		// guidance, then the current prompt re-issued unchanged
		return Outcome{
			Kind:    OutcomeAwaitingInput,
			Notices: []string{helpText},
			Prompt:  state.Prompt,
		}, state
	}

	switch state.Step {
	case StepSlot:
		return e.handleSlotReply(ctx, &state, utterance), state
	case StepDate:
		return e.handleDateReply(ctx, &state, utterance), state
	default:
		// StepIntro, or a fresh state the host never passed through Begin
		return e.interpret(ctx, &state, utterance), state
	}
}

// interpret queries the recognizer with the travel request and either enters
// slot filling with the reconciled record or restarts at the greeting.
func (e *Engine) interpret(ctx context.Context, state *State, utterance string) Outcome {
	if !e.Configured() {
		return e.advance(ctx, state, noticeNotConfigured)
	}

	result, err := e.recognizer.Recognize(ctx, utterance)
	if err != nil {
		// recognition failure is never surfaced as an error message
		e.log.Warn("nlu query failed, treating as no result", zap.Error(err))
		result = nil
	}

	top := result.TopIntent()
	if top.Name != nlu.IntentBook {
		state.reset()
		out := e.await(state, promptThanks, noticeNotUnderstood)
		out.Kind = OutcomeNotUnderstood
		return out
	}

	rec := Reconcile(result)
	e.merge(state, rec)
	return e.advance(ctx, state)
}

// merge copies reconciled values into the conversation. Plain slots land in
// the record directly; date expressions become sub-dialog seeds because they
// still need explicit reconfirmation before the record accepts them.
func (e *Engine) merge(state *State, rec booking.Record) {
	if state.Booking.InitialPrompt == "" {
		state.Booking.InitialPrompt = rec.InitialPrompt
	}
	if rec.Origin != "" {
		setText(&state.Booking, booking.SlotOrigin, rec.Origin)
	}
	if rec.Destination != "" {
		setText(&state.Booking, booking.SlotDestination, rec.Destination)
	}
	if rec.Budget != nil && state.Booking.Budget == nil {
		state.Booking.Budget = rec.Budget
	}
	for slot, value := range map[booking.Slot]string{
		booking.SlotStartDate: rec.StartDate,
		booking.SlotEndDate:   rec.EndDate,
	} {
		if value == "" {
			continue
		}
		if state.Seeds == nil {
			state.Seeds = map[booking.Slot]string{}
		}
		state.Seeds[slot] = value
	}
}

// advance prompts for the first missing slot, or finalizes when none remain.
// Each missing slot costs one suspend/resume round trip.
func (e *Engine) advance(ctx context.Context, state *State, notices ...string) Outcome {
	slot, missing := state.Booking.FirstMissing()
	if !missing {
		return e.finalize(state, notices)
	}

	switch slot {
	case booking.SlotStartDate, booking.SlotEndDate:
		resolver, prompt := beginDateResolver(slot, state.seed(slot))
		state.Step = StepDate
		state.Slot = slot
		state.Date = resolver
		return e.await(state, prompt, notices...)
	default:
		state.Step = StepSlot
		state.Slot = slot
		return e.await(state, slotPrompt(slot), notices...)
	}
}

// handleSlotReply fills a plain slot from the reply, re-prompting on invalid
// budget values.
func (e *Engine) handleSlotReply(ctx context.Context, state *State, utterance string) Outcome {
	text := strings.TrimSpace(utterance)

	if state.Slot == booking.SlotBudget {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil || v <= 0 || math.IsInf(v, 0) {
			return e.await(state, promptBudgetRetry)
		}
		state.Booking.Budget = &v
		return e.advance(ctx, state)
	}

	if text == "" {
		return e.await(state, slotPrompt(state.Slot))
	}
	setText(&state.Booking, state.Slot, text)
	return e.advance(ctx, state)
}

// handleDateReply forwards the reply to the active date sub-dialog.
func (e *Engine) handleDateReply(ctx context.Context, state *State, utterance string) Outcome {
	if state.Date == nil {
		// state was persisted mid-migration or corrupted; restart the slot
		return e.advance(ctx, state)
	}
	date, retry, resolved := state.Date.HandleReply(utterance)
	if !resolved {
		return e.await(state, retry)
	}
	setText(&state.Booking, state.Date.Slot, date)
	delete(state.Seeds, state.Date.Slot)
	state.Date = nil
	return e.advance(ctx, state)
}

// finalize emits the completed record and resets for the next booking.
func (e *Engine) finalize(state *State, notices []string) Outcome {
	record := state.Booking
	state.reset()
	state.Prompt = promptThanks
	return Outcome{
		Kind:    OutcomeCompleted,
		Notices: notices,
		Prompt:  promptThanks,
		Booking: &record,
	}
}

// cancel unwinds the whole step stack, abandoning any in-progress sub-dialog.
func (e *Engine) cancel(state *State) Outcome {
	if state.Date != nil {
		state.Date.Abandon()
	}
	state.reset()
	state.Prompt = promptThanks
	return Outcome{
		Kind:    OutcomeCancelled,
		Notices: []string{noticeCancelling},
		Prompt:  promptThanks,
	}
}

// await suspends the conversation, remembering the prompt for help re-issue.
func (e *Engine) await(state *State, prompt string, notices ...string) Outcome {
	state.Prompt = prompt
	return Outcome{Kind: OutcomeAwaitingInput, Notices: notices, Prompt: prompt}
}

// seed returns the reconciled date expression for a slot, if any.
func (s *State) seed(slot booking.Slot) string {
	if s.Seeds == nil {
		return ""
	}
	return s.Seeds[slot]
}

// reset returns the conversation to the intro step with a fresh record.
func (s *State) reset() {
	*s = State{Step: StepIntro}
}
