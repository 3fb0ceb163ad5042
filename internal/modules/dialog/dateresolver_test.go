// README: Date sub-dialog tests (seed handling, validation loop, transitions).
package dialog

import (
	"testing"

	"flybot/internal/modules/booking"
)

func TestBeginWithoutSeedAsksForDate(t *testing.T) {
	d, prompt := beginDateResolver(booking.SlotStartDate, "")
	if d.State != DateAwaitingInput {
		t.Fatalf("state = %q, want %q", d.State, DateAwaitingInput)
	}
	if prompt != promptStartDate {
		t.Errorf("prompt = %q, want the depart question", prompt)
	}

	_, prompt = beginDateResolver(booking.SlotEndDate, "")
	if prompt != promptEndDate {
		t.Errorf("prompt = %q, want the return question", prompt)
	}
}

// A definite seed is never accepted silently: it still triggers the
// confirmation re-prompt.
func TestBeginWithDefiniteSeedStillReprompts(t *testing.T) {
	d, prompt := beginDateResolver(booking.SlotStartDate, "2022-10-12")
	if prompt != promptDateRetry {
		t.Errorf("prompt = %q, want the re-prompt", prompt)
	}
	if d.State != DateAwaitingInput {
		t.Errorf("state = %q, want %q", d.State, DateAwaitingInput)
	}
}

func TestBeginWithAmbiguousSeedReprompts(t *testing.T) {
	_, prompt := beginDateResolver(booking.SlotEndDate, "XXXX-12-02")
	if prompt != promptDateRetry {
		t.Errorf("prompt = %q, want the re-prompt", prompt)
	}
}

func TestHandleReply(t *testing.T) {
	cases := []struct {
		reply    string
		wantDate string
		resolved bool
	}{
		{"2022-10-12", "2022-10-12", true},
		{"2022-10-12T09:00", "2022-10-12", true},
		{"2 december 2022", "", false},
		{"tomorrow", "", false},
		{"not a date at all", "", false},
	}
	for _, c := range cases {
		d, _ := beginDateResolver(booking.SlotStartDate, "")
		date, retry, resolved := d.HandleReply(c.reply)
		if resolved != c.resolved {
			t.Errorf("HandleReply(%q) resolved = %v, want %v", c.reply, resolved, c.resolved)
			continue
		}
		if resolved {
			if date != c.wantDate {
				t.Errorf("HandleReply(%q) date = %q, want %q", c.reply, date, c.wantDate)
			}
			if d.State != DateResolved {
				t.Errorf("HandleReply(%q) state = %q, want %q", c.reply, d.State, DateResolved)
			}
		} else {
			if retry != promptDateRetry {
				t.Errorf("HandleReply(%q) retry = %q, want the re-prompt", c.reply, retry)
			}
			if d.State != DateAwaitingInput {
				t.Errorf("HandleReply(%q) state = %q, want to stay awaiting", c.reply, d.State)
			}
		}
	}
}

func TestRetryLoopKeepsGoing(t *testing.T) {
	d, _ := beginDateResolver(booking.SlotStartDate, "")
	for i := 0; i < 5; i++ {
		if _, _, resolved := d.HandleReply("nope"); resolved {
			t.Fatal("invalid reply resolved the dialog")
		}
	}
	date, _, resolved := d.HandleReply("2026-01-05")
	if !resolved || date != "2026-01-05" {
		t.Fatalf("valid reply after retries: date=%q resolved=%v", date, resolved)
	}
}

func TestAbandonDiscardsState(t *testing.T) {
	d, _ := beginDateResolver(booking.SlotEndDate, "2022-10-19")
	d.Abandon()
	if d.State != DateAbandoned {
		t.Errorf("state = %q, want %q", d.State, DateAbandoned)
	}
	if d.Seed != "" {
		t.Errorf("seed = %q, want discarded", d.Seed)
	}
}

func TestDateTransitionsTable(t *testing.T) {
	cases := []struct {
		from, to DateState
		want     bool
	}{
		{DateStart, DateAwaitingInput, true},
		{DateAwaitingInput, DateAwaitingInput, true},
		{DateAwaitingInput, DateResolved, true},
		{DateAwaitingInput, DateAbandoned, true},
		{DateResolved, DateAwaitingInput, false},
		{DateAbandoned, DateResolved, false},
		{DateStart, DateResolved, false},
	}
	for _, c := range cases {
		if got := canTransition(c.from, c.to); got != c.want {
			t.Errorf("canTransition(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
