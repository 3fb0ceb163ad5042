// README: TIMEX-style temporal expression parsing and classification.
package timex

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Expression is a date/time expression in week/date/time interval notation,
// e.g. "2022-10-12", "XXXX-12-02", "2022-10-12T14:00", "P7D", "PRESENT_REF".
// Unknown components are written as "X" placeholders.
type Expression string

// Type is a semantic category tag carried by an expression.
type Type string

const (
	TypePresent   Type = "present"
	TypeDate      Type = "date"
	TypeTime      Type = "time"
	TypeDateTime  Type = "datetime"
	TypeDuration  Type = "duration"
	TypeDateRange Type = "daterange"
	TypeDefinite  Type = "definite"
)

// Types is the set of category tags derived from one expression.
type Types map[Type]bool

func (t Types) Contains(typ Type) bool { return t[typ] }

var ErrUnrecognized = errors.New("unrecognized date expression")

var (
	isoDateRe  = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})((?:[T ].*)?)$`)
	yearRe     = regexp.MustCompile(`^\d{4}$`)
	monthRe    = regexp.MustCompile(`^(\d{2}|XX)$`)
	dayRe      = regexp.MustCompile(`^(\d{2}|XX)$`)
	durationRe = regexp.MustCompile(`^P(T?)\d+[YMWDHS]`)
)

// DatePart strips any time-of-day component, keeping only the date portion.
func (e Expression) DatePart() Expression {
	s := string(e)
	if i := strings.IndexAny(s, "T "); i > 0 {
		return Expression(s[:i])
	}
	return e
}

// Classify derives the category tags of an expression. Deterministic and pure.
// TypeDefinite is present only when the expression denotes a single fully
// specified calendar date: year, month and day all concrete, no relative
// reference, no range.
func Classify(e Expression) Types {
	types := Types{}
	s := strings.TrimSpace(string(e))
	if s == "" {
		return types
	}

	switch s {
	case "PRESENT_REF", "PAST_REF", "FUTURE_REF":
		types[TypePresent] = true
		return types
	}

	if strings.HasPrefix(s, "(") {
		types[TypeDateRange] = true
		return types
	}

	if durationRe.MatchString(s) {
		types[TypeDuration] = true
		return types
	}

	datePart, timePart, hasTime := strings.Cut(s, "T")
	if hasTime && timePart != "" {
		types[TypeTime] = true
	}

	hasYear, hasMonth, hasDay := classifyDatePart(datePart)
	if hasYear || hasMonth || hasDay {
		types[TypeDate] = true
		if types[TypeTime] {
			types[TypeDateTime] = true
		}
	}
	if hasYear && hasMonth && hasDay {
		types[TypeDefinite] = true
	}
	return types
}

// classifyDatePart reports which calendar components of "Y-M-D" (with "X"
// placeholders for unknowns) are concrete.
func classifyDatePart(s string) (hasYear, hasMonth, hasDay bool) {
	if s == "" {
		return false, false, false
	}
	segs := strings.Split(s, "-")
	if len(segs) > 3 {
		return false, false, false
	}
	if yearRe.MatchString(segs[0]) {
		hasYear = true
	} else if segs[0] != "XXXX" {
		return false, false, false
	}
	if len(segs) > 1 {
		// week-based notation ("W41") never pins down a single day
		if strings.HasPrefix(segs[1], "W") {
			return hasYear, false, false
		}
		if monthRe.MatchString(segs[1]) && segs[1] != "XX" {
			hasMonth = true
		}
	}
	if len(segs) > 2 && dayRe.MatchString(segs[2]) && segs[2] != "XX" {
		hasDay = true
	}
	return hasYear, hasMonth, hasDay
}

var monthNames = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "jun": 6, "jul": 7,
	"aug": 8, "sep": 9, "sept": 9, "oct": 10, "nov": 11, "dec": 12,
}

var relativeWords = map[string]Expression{
	"now":       "PRESENT_REF",
	"today":     "PRESENT_REF",
	"tonight":   "PRESENT_REF",
	"tomorrow":  "XXXX-XX-XX",
	"yesterday": "XXXX-XX-XX",
	"next week": "XXXX-WXX",
	"this week": "XXXX-WXX",
}

// Parse turns a raw user reply into an Expression. Only real ISO calendar
// dates ("2022-10-12", a time component is preserved) produce a definite
// expression; month-name forms ("2 december 2022") are kept year-unanchored
// and relative words map to relative references, so both classify as
// not definite and trigger the caller's re-prompt.
func Parse(input string) (Expression, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return "", ErrUnrecognized
	}

	if e, ok := relativeWords[s]; ok {
		return e, nil
	}

	if m := isoDateRe.FindStringSubmatch(strings.ToUpper(s)); m != nil {
		if _, err := time.Parse("2006-01-02", m[1]); err != nil {
			return "", ErrUnrecognized
		}
		return Expression(m[1] + m[2]), nil
	}

	if e, ok := parseMonthNameForm(s); ok {
		return e, nil
	}
	return "", ErrUnrecognized
}

// parseMonthNameForm recognizes "12 october", "october 12" and the same with
// a trailing or leading year. The year is not used to anchor the expression.
func parseMonthNameForm(s string) (Expression, bool) {
	fields := strings.Fields(strings.NewReplacer(",", " ", ".", " ").Replace(s))
	month, day := 0, 0
	for _, f := range fields {
		if m, ok := monthNames[f]; ok {
			month = m
			continue
		}
		for _, ord := range []string{"st", "nd", "rd", "th"} {
			f = strings.TrimSuffix(f, ord)
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return "", false
		}
		if n >= 1 && n <= 31 && day == 0 {
			day = n
		}
	}
	if month == 0 {
		return "", false
	}
	if day == 0 {
		return Expression("XXXX-" + pad2(month)), true
	}
	return Expression("XXXX-" + pad2(month) + "-" + pad2(day)), true
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
