// README: Recognition result model tests.
package nlu

import "testing"

func TestTopIntent(t *testing.T) {
	cases := []struct {
		name    string
		intents []Intent
		want    string
	}{
		{"empty list", nil, IntentNone},
		{"single", []Intent{{IntentBook, 0.9}}, IntentBook},
		{"ranked", []Intent{{IntentCancel, 0.2}, {IntentBook, 0.8}}, IntentBook},
		{"all zero scores", []Intent{{IntentBook, 0}, {IntentCancel, 0}}, IntentNone},
	}
	for _, c := range cases {
		r := &Result{Intents: c.intents}
		if got := r.TopIntent().Name; got != c.want {
			t.Errorf("%s: TopIntent = %q, want %q", c.name, got, c.want)
		}
	}

	var nilResult *Result
	if got := nilResult.TopIntent().Name; got != IntentNone {
		t.Errorf("nil result: TopIntent = %q, want %q", got, IntentNone)
	}
}

func TestSpansAbsentTaxonomy(t *testing.T) {
	r := &Result{Entities: map[string][]Span{TaxBudget: {{Score: 1, Value: 500}}}}
	if got := r.Spans("no_such_taxonomy"); got != nil {
		t.Errorf("Spans on absent taxonomy = %v, want nil", got)
	}
	if got := r.Spans(TaxBudget); len(got) != 1 {
		t.Errorf("Spans(budget) len = %d, want 1", len(got))
	}

	var nilResult *Result
	if got := nilResult.Spans(TaxBudget); got != nil {
		t.Errorf("Spans on nil result = %v, want nil", got)
	}
}

func TestCleanJSONString(t *testing.T) {
	in := "```json\n{\"intents\":[]}\n```"
	if got := cleanJSONString(in); got != `{"intents":[]}` {
		t.Errorf("cleanJSONString = %q", got)
	}
}
