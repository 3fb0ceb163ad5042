// README: Card rendering tests.
package cards

import (
	"encoding/json"
	"strings"
	"testing"

	"flybot/internal/modules/booking"
)

func TestRenderSubstitutesAllFields(t *testing.T) {
	budget := 500.0
	rec := &booking.Record{
		Origin:      "Marseille",
		Destination: "Paris",
		StartDate:   "2022-10-12",
		EndDate:     "2022-10-19",
		Budget:      &budget,
	}

	raw, err := Render(rec)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var card map[string]any
	if err := json.Unmarshal(raw, &card); err != nil {
		t.Fatalf("rendered card is not valid JSON: %v", err)
	}
	if card["type"] != "AdaptiveCard" {
		t.Errorf("card type = %v", card["type"])
	}

	s := string(raw)
	for _, want := range []string{"Marseille", "Paris", "2022-10-12", "2022-10-19", "500"} {
		if !strings.Contains(s, want) {
			t.Errorf("rendered card missing %q", want)
		}
	}
	if strings.Contains(s, "${") {
		t.Errorf("rendered card still contains placeholders: %s", s)
	}
}

func TestRenderNeverEvaluatesData(t *testing.T) {
	// hostile values must come through verbatim as data
	rec := &booking.Record{
		Origin:      `"]}{$code`,
		Destination: "${budget}",
	}
	raw, err := Render(rec)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	var card map[string]any
	if err := json.Unmarshal(raw, &card); err != nil {
		t.Fatalf("rendered card is not valid JSON: %v", err)
	}
	if !strings.Contains(string(raw), `\"]}{$code`) {
		t.Errorf("hostile origin not carried as plain data: %s", raw)
	}
}
