// README: Entity reconciler joining overlapping NLU taxonomies into typed slot values.
package dialog

import (
	"math"
	"strings"
	"unicode"

	"flybot/internal/modules/booking"
	"flybot/internal/nlu"
	"flybot/internal/timex"
)

// SlotSpec declares, for one booking slot, the taxonomy used to locate the
// slot's span and the taxonomy carrying its typed value. This table is static
// configuration and never changes at runtime.
type SlotSpec struct {
	Slot    booking.Slot
	Locator string
	Value   string
}

var slotSpecs = [...]SlotSpec{
	{booking.SlotOrigin, nlu.TaxOriginCity, nlu.TaxGeographyV2},
	{booking.SlotDestination, nlu.TaxDestCity, nlu.TaxGeographyV2},
	{booking.SlotStartDate, nlu.TaxStartDate, nlu.TaxDatetime},
	{booking.SlotEndDate, nlu.TaxEndDate, nlu.TaxDatetime},
	{booking.SlotBudget, nlu.TaxBudget, nlu.TaxNumber},
}

// Reconcile maps a recognition result into at most one typed value per slot.
// Unresolvable slots stay unset; this is a pure transformation with no side
// effects. NLU services emit several overlapping taxonomies for the same span
// (a slot-specific locator and a generic typed entity); joining them by
// nearest span offsets avoids relying on index coincidence.
func Reconcile(result *nlu.Result) booking.Record {
	var rec booking.Record
	if result == nil {
		return rec
	}
	rec.InitialPrompt = result.Text

	for _, spec := range slotSpecs {
		locator, ok := bestScored(result.Spans(spec.Locator))
		if !ok {
			continue
		}
		span, ok := nearestSpan(result.Spans(spec.Value), locator)
		if !ok {
			continue
		}

		switch spec.Value {
		case nlu.TaxGeographyV2:
			if span.Text != "" {
				setText(&rec, spec.Slot, capitalize(span.Text))
			}
		case nlu.TaxDatetime:
			// Only the date portion of the first temporal expression is kept.
			if len(span.Timex) > 0 && span.Timex[0] != "" {
				setText(&rec, spec.Slot, string(timex.Expression(span.Timex[0]).DatePart()))
			}
		case nlu.TaxNumber:
			if rec.Budget == nil {
				v := span.Value
				rec.Budget = &v
			}
		default:
			// unmapped taxonomy: explicit non-match, not an error
		}
	}
	return rec
}

// bestScored runs the selection pass: the span with the strictly highest
// confidence wins, so zero scores never select and equal scores keep the
// earliest candidate in taxonomy order.
func bestScored(spans []nlu.Span) (nlu.Span, bool) {
	best, bestScore := -1, 0.0
	for i, sp := range spans {
		if sp.Score > bestScore {
			best, bestScore = i, sp.Score
		}
	}
	if best < 0 {
		return nlu.Span{}, false
	}
	return spans[best], true
}

// nearestSpan runs the alignment pass: it selects the candidate minimizing
// the sum of absolute start/end offset differences from the locator span.
// Ties keep the earliest candidate.
func nearestSpan(spans []nlu.Span, locator nlu.Span) (nlu.Span, bool) {
	best, bestDist := -1, math.MaxInt
	for i, sp := range spans {
		d := abs(sp.Start-locator.Start) + abs(sp.End-locator.End)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return nlu.Span{}, false
	}
	return spans[best], true
}

// setText writes a resolved value; a field already set is never overwritten.
func setText(rec *booking.Record, slot booking.Slot, v string) {
	if rec.IsSet(slot) {
		return
	}
	switch slot {
	case booking.SlotOrigin:
		rec.Origin = v
	case booking.SlotDestination:
		rec.Destination = v
	case booking.SlotStartDate:
		rec.StartDate = v
	case booking.SlotEndDate:
		rec.EndDate = v
	}
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
