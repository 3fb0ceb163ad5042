// README: Recognition result model shared by recognizers and the dialog engine.
package nlu

// Intent names the engine reacts to.
const (
	IntentBook   = "Book"
	IntentCancel = "Cancel"
	IntentNone   = "None"
)

// Entity taxonomy keys. The slot-locator keys identify which span belongs to
// which booking slot; the value keys carry the typed payload for that span.
const (
	TaxOriginCity  = "or_city"
	TaxDestCity    = "dst_city"
	TaxStartDate   = "str_date"
	TaxEndDate     = "end_date"
	TaxBudget      = "budget"
	TaxGeographyV2 = "geographyV2_city"
	TaxDatetime    = "datetime"
	TaxNumber      = "number"
)

// Intent is one (name, confidence) pair in the ranked intent list.
type Intent struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Span is one candidate entity occurrence: a confidence score, the start/end
// character offsets into the utterance, and a taxonomy-specific payload
// (plain text, temporal expression strings, or a numeric value).
type Span struct {
	Score float64  `json:"score"`
	Start int      `json:"start"`
	End   int      `json:"end"`
	Text  string   `json:"text,omitempty"`
	Timex []string `json:"timex,omitempty"`
	Value float64  `json:"value,omitempty"`
}

// Result is the read-only snapshot of one recognition pass over one turn.
type Result struct {
	Text     string            `json:"text"`
	Intents  []Intent          `json:"intents"`
	Entities map[string][]Span `json:"entities"`
}

// TopIntent returns the intent with the highest score, or IntentNone when the
// list is empty or no score beats zero.
func (r *Result) TopIntent() Intent {
	top := Intent{Name: IntentNone}
	if r == nil {
		return top
	}
	for _, in := range r.Intents {
		if in.Score > top.Score {
			top = in
		}
	}
	if top.Name == "" {
		top.Name = IntentNone
	}
	return top
}

// Spans returns the candidate spans under one taxonomy key. An absent key is
// identical to an empty list.
func (r *Result) Spans(taxonomy string) []Span {
	if r == nil || r.Entities == nil {
		return nil
	}
	return r.Entities[taxonomy]
}
