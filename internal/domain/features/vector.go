// Package features builds the classifier input from request payloads.
package features

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/width"

	"github.com/kailas-cloud/passpredict/internal/domain"
)

// Input field names, in model order.
const (
	HoursStudied  = "hours_studied"
	Attendance    = "attendance"
	PreviousScore = "previous_score"
)

// Len is the number of features the model expects.
const Len = 3

var names = [Len]string{HoursStudied, Attendance, PreviousScore}

// Names returns the feature names in model order.
func Names() []string {
	out := make([]string, Len)
	copy(out, names[:])
	return out
}

// Vector is the validated classifier input. It lives for a single request.
type Vector struct {
	HoursStudied  float64
	Attendance    float64
	PreviousScore float64
}

// Slice returns the features in model order.
func (v Vector) Slice() []float64 {
	return []float64{v.HoursStudied, v.Attendance, v.PreviousScore}
}

// Validate reports domain.ErrInvalidInput when any feature is NaN or infinite.
// FromPayload never yields such a vector; callers building a Vector directly must check.
func (v Vector) Validate() error {
	for i, f := range v.Slice() {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("field %s: %w: value is not finite", names[i], domain.ErrInvalidInput)
		}
	}
	return nil
}

// FromPayload validates a decoded key-value payload and builds a Vector.
// The first absent field yields a *domain.MissingFieldError; any value that
// is not a finite number (or a string holding one) yields domain.ErrInvalidInput.
func FromPayload(payload map[string]any) (Vector, error) {
	for _, name := range names {
		if _, ok := payload[name]; !ok {
			return Vector{}, domain.NewMissingField(name)
		}
	}

	var vals [Len]float64
	for i, name := range names {
		f, err := coerce(payload[name])
		if err != nil {
			return Vector{}, fmt.Errorf("field %s: %w", name, err)
		}
		vals[i] = f
	}

	return Vector{HoursStudied: vals[0], Attendance: vals[1], PreviousScore: vals[2]}, nil
}

// FormPayload converts form values into a payload, keeping the first value of each key.
func FormPayload(form url.Values) map[string]any {
	payload := make(map[string]any, len(form))
	for k, vs := range form {
		if len(vs) > 0 {
			payload[k] = vs[0]
		}
	}
	return payload
}

func coerce(v any) (float64, error) {
	var f float64
	switch x := v.(type) {
	case json.Number:
		n, err := parseNumber(string(x))
		if err != nil {
			return 0, err
		}
		f = n
	case string:
		n, err := parseNumber(x)
		if err != nil {
			return 0, err
		}
		f = n
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case int32:
		f = float64(x)
	default:
		return 0, fmt.Errorf("%w: unsupported value type %T", domain.ErrInvalidInput, v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: value is not finite", domain.ErrInvalidInput)
	}
	return f, nil
}

// parseNumber follows the usual float literal rules with a few relaxations:
// surrounding whitespace, full-width characters, decimal digits of any script
// and single underscores between digits. Hex literals are rejected.
func parseNumber(s string) (float64, error) {
	norm, ok := normalizeNumber(s)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, s)
	}
	f, err := strconv.ParseFloat(norm, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, s)
	}
	return f, nil
}

func normalizeNumber(s string) (string, bool) {
	s = strings.TrimSpace(width.Narrow.String(s))
	if strings.ContainsAny(s, "xX") {
		return "", false
	}

	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range rs {
		switch {
		case r == '_':
			if i == 0 || i == len(rs)-1 || !isASCIIDigit(rs[i-1]) || !isDigit(rs[i+1]) {
				return "", false
			}
		case r > unicode.MaxASCII && unicode.Is(unicode.Nd, r):
			d := '0' + digitValue(r)
			rs[i] = d // later underscore checks look back at ASCII
			b.WriteRune(d)
		default:
			b.WriteRune(r)
		}
	}
	return b.String(), true
}

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

func isDigit(r rune) bool { return isASCIIDigit(r) || unicode.Is(unicode.Nd, r) }

// digitValue maps a decimal digit rune to 0-9. Nd digits come in runs of whole
// blocks of ten starting at zero, so the offset from the start of the run gives the value.
func digitValue(r rune) rune {
	n := rune(0)
	for unicode.Is(unicode.Nd, r-n-1) {
		n++
	}
	return n % 10
}
