// README: Booked-flight confirmation card rendering.
package cards

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"flybot/internal/modules/booking"
)

//go:embed booked_flight_card.json
var bookedFlightCard []byte

var placeholderRe = regexp.MustCompile(`\$\{([a-z_]+)\}`)

// Render builds the confirmation card for a completed booking by structured
// substitution over the parsed template tree: ${key} placeholders inside
// string values are replaced with record fields. The template is data, never
// evaluated as code; unknown placeholders are left untouched.
func Render(rec *booking.Record) (json.RawMessage, error) {
	var tree any
	if err := json.Unmarshal(bookedFlightCard, &tree); err != nil {
		return nil, fmt.Errorf("decode card template: %w", err)
	}

	budget := ""
	if rec.Budget != nil {
		budget = strconv.FormatFloat(*rec.Budget, 'f', -1, 64)
	}
	data := map[string]string{
		"origin":      rec.Origin,
		"destination": rec.Destination,
		"start_date":  rec.StartDate,
		"end_date":    rec.EndDate,
		"budget":      budget,
	}

	out, err := json.Marshal(substitute(tree, data))
	if err != nil {
		return nil, fmt.Errorf("encode card: %w", err)
	}
	return out, nil
}

func substitute(node any, data map[string]string) any {
	switch v := node.(type) {
	case map[string]any:
		for k, child := range v {
			v[k] = substitute(child, data)
		}
		return v
	case []any:
		for i, child := range v {
			v[i] = substitute(child, data)
		}
		return v
	case string:
		return placeholderRe.ReplaceAllStringFunc(v, func(m string) string {
			key := m[2 : len(m)-1]
			if val, ok := data[key]; ok {
				return val
			}
			return m
		})
	default:
		return v
	}
}
