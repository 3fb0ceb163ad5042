// README: Booking record aggregate and slot definitions.
package booking

// Slot names one field of the booking record to be filled.
type Slot string

const (
	SlotOrigin      Slot = "origin"
	SlotDestination Slot = "destination"
	SlotStartDate   Slot = "start_date"
	SlotEndDate     Slot = "end_date"
	SlotBudget      Slot = "budget"
)

// SlotOrder is the fixed order in which missing slots are prompted.
var SlotOrder = [...]Slot{SlotOrigin, SlotDestination, SlotStartDate, SlotEndDate, SlotBudget}

// Record is the booking aggregate filled incrementally across turns. Fields
// stay zero until resolved; dates are ISO-8601 calendar dates (YYYY-MM-DD).
// A field already set is never overwritten by a later reconciliation pass.
type Record struct {
	Origin        string   `json:"origin,omitempty"`
	Destination   string   `json:"destination,omitempty"`
	StartDate     string   `json:"start_date,omitempty"`
	EndDate       string   `json:"end_date,omitempty"`
	Budget        *float64 `json:"budget,omitempty"`
	InitialPrompt string   `json:"initial_prompt,omitempty"`
}

// IsSet reports whether the given slot has a resolved value.
func (r *Record) IsSet(slot Slot) bool {
	switch slot {
	case SlotOrigin:
		return r.Origin != ""
	case SlotDestination:
		return r.Destination != ""
	case SlotStartDate:
		return r.StartDate != ""
	case SlotEndDate:
		return r.EndDate != ""
	case SlotBudget:
		return r.Budget != nil
	}
	return false
}

// Complete reports whether every slot is resolved.
func (r *Record) Complete() bool {
	for _, s := range SlotOrder {
		if !r.IsSet(s) {
			return false
		}
	}
	return true
}

// FirstMissing returns the first unresolved slot in prompt order.
func (r *Record) FirstMissing() (Slot, bool) {
	for _, s := range SlotOrder {
		if !r.IsSet(s) {
			return s, true
		}
	}
	return "", false
}
