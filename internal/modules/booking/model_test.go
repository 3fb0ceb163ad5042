// README: Tests for the booking record aggregate.
package booking

import "testing"

func TestFirstMissingFollowsPromptOrder(t *testing.T) {
	budget := 500.0
	cases := []struct {
		name    string
		rec     Record
		want    Slot
		missing bool
	}{
		{"empty record starts at origin", Record{}, SlotOrigin, true},
		{"origin set", Record{Origin: "Paris"}, SlotDestination, true},
		{"dates skipped until cities set", Record{StartDate: "2026-12-01"}, SlotOrigin, true},
		{
			"only budget left",
			Record{Origin: "Paris", Destination: "Berlin", StartDate: "2026-12-01", EndDate: "2026-12-15"},
			SlotBudget, true,
		},
		{
			"complete",
			Record{Origin: "Paris", Destination: "Berlin", StartDate: "2026-12-01", EndDate: "2026-12-15", Budget: &budget},
			"", false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slot, missing := tc.rec.FirstMissing()
			if slot != tc.want || missing != tc.missing {
				t.Fatalf("FirstMissing() = (%q, %v), want (%q, %v)", slot, missing, tc.want, tc.missing)
			}
		})
	}
}

func TestBudgetZeroCountsAsSet(t *testing.T) {
	zero := 0.0
	rec := Record{Budget: &zero}
	if !rec.IsSet(SlotBudget) {
		t.Fatal("a present budget pointer means the slot is resolved, whatever its value")
	}
}

func TestCompleteRequiresEverySlot(t *testing.T) {
	budget := 350.0
	rec := Record{Origin: "Lyon", Destination: "Rome", StartDate: "2026-10-02", EndDate: "2026-10-09", Budget: &budget}
	if !rec.Complete() {
		t.Fatal("all slots set, expected Complete")
	}
	rec.EndDate = ""
	if rec.Complete() {
		t.Fatal("missing end date, expected not Complete")
	}
}
