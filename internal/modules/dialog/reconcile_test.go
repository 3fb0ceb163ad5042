// README: Entity reconciler tests (selection, alignment, extraction).
package dialog

import (
	"reflect"
	"testing"

	"flybot/internal/nlu"
)

const bookQuery = "I want to Book a flight from Marseille to Paris starting 12 october 2022 and returning 19 october 2022 with a budget of 500"

// fullRecognition mirrors what the recognizer returns for bookQuery: every
// slot locator plus the overlapping typed taxonomies, with real offsets.
func fullRecognition() *nlu.Result {
	return &nlu.Result{
		Text: bookQuery,
		Intents: []nlu.Intent{
			{Name: nlu.IntentBook, Score: 0.97},
			{Name: nlu.IntentNone, Score: 0.02},
		},
		Entities: map[string][]nlu.Span{
			nlu.TaxOriginCity: {{Score: 0.93, Start: 29, End: 38, Text: "Marseille"}},
			nlu.TaxDestCity:   {{Score: 0.95, Start: 42, End: 47, Text: "Paris"}},
			nlu.TaxStartDate:  {{Score: 0.88, Start: 57, End: 72, Text: "12 october 2022"}},
			nlu.TaxEndDate:    {{Score: 0.86, Start: 87, End: 102, Text: "19 october 2022"}},
			nlu.TaxBudget:     {{Score: 0.91, Start: 120, End: 123, Text: "500"}},
			nlu.TaxGeographyV2: {
				{Score: 0.90, Start: 29, End: 38, Text: "marseille"},
				{Score: 0.92, Start: 42, End: 47, Text: "paris"},
			},
			nlu.TaxDatetime: {
				{Score: 0.89, Start: 57, End: 72, Timex: []string{"2022-10-12"}},
				{Score: 0.87, Start: 87, End: 102, Timex: []string{"2022-10-19"}},
			},
			nlu.TaxNumber: {{Score: 0.94, Start: 120, End: 123, Value: 500}},
		},
	}
}

func TestReconcileFullBookingRequest(t *testing.T) {
	rec := Reconcile(fullRecognition())

	if rec.Origin != "Marseille" {
		t.Errorf("Origin = %q, want Marseille", rec.Origin)
	}
	if rec.Destination != "Paris" {
		t.Errorf("Destination = %q, want Paris", rec.Destination)
	}
	if rec.StartDate != "2022-10-12" {
		t.Errorf("StartDate = %q, want 2022-10-12", rec.StartDate)
	}
	if rec.EndDate != "2022-10-19" {
		t.Errorf("EndDate = %q, want 2022-10-19", rec.EndDate)
	}
	if rec.Budget == nil || *rec.Budget != 500 {
		t.Errorf("Budget = %v, want 500", rec.Budget)
	}
	if rec.InitialPrompt != bookQuery {
		t.Errorf("InitialPrompt = %q, want the verbatim utterance", rec.InitialPrompt)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	result := fullRecognition()
	first := Reconcile(result)
	second := Reconcile(result)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Reconcile is not idempotent: %+v vs %+v", first, second)
	}
}

func TestReconcileMissingLocator(t *testing.T) {
	cases := []struct {
		name     string
		entities map[string][]nlu.Span
	}{
		{"absent taxonomy", map[string][]nlu.Span{
			nlu.TaxGeographyV2: {{Score: 0.9, Start: 0, End: 5, Text: "paris"}},
		}},
		{"empty list", map[string][]nlu.Span{
			nlu.TaxOriginCity:  {},
			nlu.TaxGeographyV2: {{Score: 0.9, Start: 0, End: 5, Text: "paris"}},
		}},
		{"all scores zero", map[string][]nlu.Span{
			nlu.TaxOriginCity:  {{Score: 0, Start: 0, End: 5, Text: "paris"}},
			nlu.TaxGeographyV2: {{Score: 0.9, Start: 0, End: 5, Text: "paris"}},
		}},
	}
	for _, c := range cases {
		rec := Reconcile(&nlu.Result{Text: "to paris", Entities: c.entities})
		if rec.Origin != "" {
			t.Errorf("%s: Origin = %q, want unset", c.name, rec.Origin)
		}
	}
}

func TestReconcileMissingValueTaxonomy(t *testing.T) {
	rec := Reconcile(&nlu.Result{
		Text: "from marseille",
		Entities: map[string][]nlu.Span{
			nlu.TaxOriginCity: {{Score: 0.9, Start: 5, End: 14, Text: "marseille"}},
		},
	})
	if rec.Origin != "" {
		t.Errorf("Origin = %q, want unset when the value taxonomy is absent", rec.Origin)
	}
}

func TestSelectionPrefersStrictlyHigherScore(t *testing.T) {
	// the higher-scored span sits later and further away; score must win
	rec := Reconcile(&nlu.Result{
		Text: "lyon or nice",
		Entities: map[string][]nlu.Span{
			nlu.TaxOriginCity: {
				{Score: 0.40, Start: 0, End: 4, Text: "lyon"},
				{Score: 0.80, Start: 8, End: 12, Text: "nice"},
			},
			nlu.TaxGeographyV2: {
				{Score: 0.50, Start: 0, End: 4, Text: "lyon"},
				{Score: 0.10, Start: 8, End: 12, Text: "nice"},
			},
		},
	})
	if rec.Origin != "Nice" {
		t.Errorf("Origin = %q, want Nice (alignment must follow the selected locator)", rec.Origin)
	}
}

func TestSelectionTieKeepsFirst(t *testing.T) {
	rec := Reconcile(&nlu.Result{
		Text: "lyon or nice",
		Entities: map[string][]nlu.Span{
			nlu.TaxOriginCity: {
				{Score: 0.70, Start: 0, End: 4, Text: "lyon"},
				{Score: 0.70, Start: 8, End: 12, Text: "nice"},
			},
			nlu.TaxGeographyV2: {
				{Score: 0.60, Start: 0, End: 4, Text: "lyon"},
				{Score: 0.60, Start: 8, End: 12, Text: "nice"},
			},
		},
	})
	if rec.Origin != "Lyon" {
		t.Errorf("Origin = %q, want Lyon (first occurrence wins ties)", rec.Origin)
	}
}

func TestAlignmentNearestSpanNotConfidence(t *testing.T) {
	// the nearer geography span has the lower confidence; offsets must win
	rec := Reconcile(&nlu.Result{
		Text: "from marseille to paris",
		Entities: map[string][]nlu.Span{
			nlu.TaxOriginCity: {{Score: 0.9, Start: 5, End: 14, Text: "marseille"}},
			nlu.TaxGeographyV2: {
				{Score: 0.99, Start: 18, End: 23, Text: "paris"},
				{Score: 0.10, Start: 5, End: 14, Text: "marseille"},
			},
		},
	})
	if rec.Origin != "Marseille" {
		t.Errorf("Origin = %q, want Marseille (nearest span by offsets)", rec.Origin)
	}
}

func TestDatetimeValueDropsTimeComponent(t *testing.T) {
	rec := Reconcile(&nlu.Result{
		Text: "leaving 12 october 2022 at 2pm",
		Entities: map[string][]nlu.Span{
			nlu.TaxStartDate: {{Score: 0.9, Start: 8, End: 30, Text: "12 october 2022 at 2pm"}},
			nlu.TaxDatetime:  {{Score: 0.9, Start: 8, End: 30, Timex: []string{"2022-10-12T14:00"}}},
		},
	})
	if rec.StartDate != "2022-10-12" {
		t.Errorf("StartDate = %q, want 2022-10-12 (time portion dropped)", rec.StartDate)
	}
}

func TestReconcileNilResult(t *testing.T) {
	rec := Reconcile(nil)
	if rec.Complete() || rec.InitialPrompt != "" {
		t.Errorf("Reconcile(nil) = %+v, want an empty record", rec)
	}
}

func TestCapitalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"marseille", "Marseille"},
		{"PARIS", "Paris"},
		{"new york", "New york"},
		{"", ""},
	}
	for _, c := range cases {
		if got := capitalize(c.in); got != c.want {
			t.Errorf("capitalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
