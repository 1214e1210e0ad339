// Package schema validates untyped request input against explicit field tables.
//
// A Schema is an ordered list of fields. Each field names its JSON key, whether
// it may be omitted, its value type, and a list of constraints. Validate runs
// every constraint of every present (or required) field and reports all
// failures in table order, one message per failed constraint, so a single
// missing field may produce several messages. Keys not in the table are
// dropped from the normalized output.
package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tinoosan/moviecatalog/internal/errs"
)

// Type is the expected value type of a field.
type Type int

const (
	String Type = iota
	Int
	StringArray
	Date
)

// Bound is a numeric limit resolved at validation time.
type Bound func(now time.Time) int

// Fixed returns a constant bound.
func Fixed(n int) Bound { return func(time.Time) int { return n } }

// Constraint is a single named rule. Check receives the raw value (nil when
// absent); Message renders the failure text for the field.
type Constraint struct {
	Check   func(v any, now time.Time) bool
	Message func(field string, now time.Time) string
}

// Field is one row of a schema table.
type Field struct {
	Name        string
	Required    bool
	Type        Type
	Constraints []Constraint
	// Trim strips surrounding whitespace from string values before any check.
	Trim bool
	// Lenient drops a value that fails a check instead of reporting it, so
	// the caller's default applies.
	Lenient bool
}

// Schema is an ordered field table.
type Schema struct {
	Name   string
	Fields []Field
}

// Values holds the normalized, recognized fields of a valid input.
// Strings are string, integers int, arrays []string and dates time.Time (UTC).
type Values map[string]any

// Validate checks in against the table at instant now. On success it returns
// the normalized values; otherwise a *errs.ValidationError with every message.
func (s Schema) Validate(in map[string]any, now time.Time) (Values, error) {
	out := make(Values, len(s.Fields))
	var msgs []string
	for _, f := range s.Fields {
		v, present := in[f.Name]
		if v == nil {
			present = false
		}
		if str, ok := v.(string); ok && f.Trim {
			v = strings.TrimSpace(str)
		}
		if !present && !f.Required {
			continue
		}
		var failures []string
		if !typeCheck(f.Type).Check(v, now) {
			failures = append(failures, typeCheck(f.Type).Message(f.Name, now))
		}
		for _, c := range f.Constraints {
			if !c.Check(v, now) {
				failures = append(failures, c.Message(f.Name, now))
			}
		}
		switch {
		case len(failures) == 0:
			out[f.Name] = normalize(f.Type, v)
		case !f.Lenient:
			msgs = append(msgs, failures...)
		}
	}
	if len(msgs) > 0 {
		return nil, errs.Invalid(msgs...)
	}
	return out, nil
}

// FromQuery converts query parameters into raw input for the table. Integer
// fields that parse are converted; anything else stays a string so the type
// check reports it. Empty parameters count as absent.
func (s Schema) FromQuery(q url.Values) map[string]any {
	in := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		raw := strings.TrimSpace(q.Get(f.Name))
		if raw == "" {
			continue
		}
		if f.Type == Int {
			if n, err := strconv.Atoi(raw); err == nil {
				in[f.Name] = n
				continue
			}
		}
		in[f.Name] = raw
	}
	return in
}

// --- typed accessors ---

// String returns the named string value.
func (v Values) String(name string) (string, bool) {
	s, ok := v[name].(string)
	return s, ok
}

// Int returns the named integer value.
func (v Values) Int(name string) (int, bool) {
	n, ok := v[name].(int)
	return n, ok
}

// IntOr returns the named integer or def when absent.
func (v Values) IntOr(name string, def int) int {
	if n, ok := v.Int(name); ok {
		return n
	}
	return def
}

// Strings returns the named string list.
func (v Values) Strings(name string) ([]string, bool) {
	s, ok := v[name].([]string)
	return s, ok
}

// Time returns the named date value.
func (v Values) Time(name string) (time.Time, bool) {
	t, ok := v[name].(time.Time)
	return t, ok
}

// --- constraints ---

func typeCheck(t Type) Constraint {
	switch t {
	case Int:
		return IsInt()
	case StringArray:
		return IsArray()
	case Date:
		return IsDate()
	default:
		return IsString()
	}
}

// IsString requires a string value.
func IsString() Constraint {
	return Constraint{
		Check:   func(v any, _ time.Time) bool { _, ok := v.(string); return ok },
		Message: msg("%s must be a string"),
	}
}

// IsInt requires a whole number.
func IsInt() Constraint {
	return Constraint{
		Check: func(v any, _ time.Time) bool {
			n, ok := number(v)
			return ok && !math.IsInf(n, 0) && n == math.Trunc(n)
		},
		Message: msg("%s must be an integer number"),
	}
}

// IsArray requires a JSON array.
func IsArray() Constraint {
	return Constraint{
		Check:   func(v any, _ time.Time) bool { _, ok := array(v); return ok },
		Message: msg("%s must be an array"),
	}
}

// IsDate requires an RFC 3339 or YYYY-MM-DD string, or epoch milliseconds.
func IsDate() Constraint {
	return Constraint{
		Check:   func(v any, _ time.Time) bool { _, ok := date(v); return ok },
		Message: msg("%s must be a Date instance"),
	}
}

// NotEmpty rejects absent, null and empty-string values.
func NotEmpty() Constraint {
	return Constraint{
		Check:   func(v any, _ time.Time) bool { return v != nil && v != "" },
		Message: msg("%s should not be empty"),
	}
}

// ArrayNotEmpty requires an array with at least one element.
func ArrayNotEmpty() Constraint {
	return Constraint{
		Check:   func(v any, _ time.Time) bool { a, ok := array(v); return ok && len(a) > 0 },
		Message: msg("%s should not be empty"),
	}
}

// EachString requires every element of an array to be a string.
func EachString() Constraint {
	return Constraint{
		Check: func(v any, _ time.Time) bool {
			a, ok := array(v)
			if !ok {
				return false
			}
			for _, e := range a {
				if _, ok := e.(string); !ok {
					return false
				}
			}
			return true
		},
		Message: msg("each value in %s must be a string"),
	}
}

// MinLength requires a string of at least n characters.
func MinLength(n int) Constraint {
	return Constraint{
		Check: func(v any, _ time.Time) bool {
			s, ok := v.(string)
			return ok && utf8.RuneCountInString(s) >= n
		},
		Message: func(f string, _ time.Time) string {
			return fmt.Sprintf("%s must be longer than or equal to %d characters", f, n)
		},
	}
}

// MaxLength requires a string of at most n characters.
func MaxLength(n int) Constraint {
	return Constraint{
		Check: func(v any, _ time.Time) bool {
			s, ok := v.(string)
			return ok && utf8.RuneCountInString(s) <= n
		},
		Message: func(f string, _ time.Time) string {
			return fmt.Sprintf("%s must be shorter than or equal to %d characters", f, n)
		},
	}
}

// Min requires a number no smaller than the bound.
func Min(b Bound) Constraint {
	return Constraint{
		Check: func(v any, now time.Time) bool {
			n, ok := number(v)
			return ok && n >= float64(b(now))
		},
		Message: func(f string, now time.Time) string {
			return fmt.Sprintf("%s must not be less than %d", f, b(now))
		},
	}
}

// Max requires a number no larger than the bound.
func Max(b Bound) Constraint {
	return Constraint{
		Check: func(v any, now time.Time) bool {
			n, ok := number(v)
			return ok && n <= float64(b(now))
		},
		Message: func(f string, now time.Time) string {
			return fmt.Sprintf("%s must not be greater than %d", f, b(now))
		},
	}
}

// Matches requires a string matching re; message is used verbatim.
func Matches(re *regexp.Regexp, message string) Constraint {
	return Constraint{
		Check: func(v any, _ time.Time) bool {
			s, ok := v.(string)
			return ok && re.MatchString(s)
		},
		Message: func(string, time.Time) string { return message },
	}
}

func msg(format string) func(string, time.Time) string {
	return func(f string, _ time.Time) string { return fmt.Sprintf(format, f) }
}

// --- raw value helpers ---

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func array(v any) ([]any, bool) {
	switch a := v.(type) {
	case []any:
		return a, true
	case []string:
		out := make([]any, len(a))
		for i, s := range a {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// maxEpochMillis is the widest instant a JavaScript Date can hold.
const maxEpochMillis = 8.64e15

// date accepts a time, a layout string or a number of milliseconds since the
// Unix epoch.
func date(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		return d.UTC(), true
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, d); err == nil {
				return t.UTC(), true
			}
		}
		return time.Time{}, false
	}
	if ms, ok := number(v); ok && !math.IsNaN(ms) && math.Abs(ms) <= maxEpochMillis {
		return time.UnixMilli(int64(ms)).UTC(), true
	}
	return time.Time{}, false
}

func normalize(t Type, v any) any {
	switch t {
	case Int:
		n, _ := number(v)
		return int(n)
	case StringArray:
		a, _ := array(v)
		out := make([]string, 0, len(a))
		for _, e := range a {
			s, _ := e.(string)
			out = append(out, s)
		}
		return out
	case Date:
		d, _ := date(v)
		return d
	default:
		return v
	}
}
