// Package coerce converts loosely-typed request fields into validated
// domain values. It is the single place where untrusted input becomes a
// typed value, and it is invoked at every boundary crossing: once when a
// request enters and again inside the repository immediately before a
// write. Anything ambiguous is rejected with a field-attributed error.
package coerce

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"voyago/internal/shared/apperrors"
)

// Seat bounds for a single booking.
const (
	MinSeats = 1
	MaxSeats = 10
)

// Seats accepts an integer, a whole-valued float or a digit-only string
// (surrounding whitespace trimmed) and returns the seat count as an int.
// Decimal strings, spelled-out numbers, fractional floats, nil and every
// other type are rejected. The coerced value must fall in [MinSeats, MaxSeats].
func Seats(v any) (int, error) {
	seats, err := toInt("seats", v)
	if err != nil {
		return 0, err
	}
	if seats < MinSeats || seats > MaxSeats {
		return 0, apperrors.Validation("seats", seats,
			fmt.Sprintf("must be between %d and %d", MinSeats, MaxSeats))
	}
	return seats, nil
}

func toInt(field string, v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, apperrors.Validation(field, nil, "is required")
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float32:
		return wholeFloat(field, float64(n))
	case float64:
		// JSON numbers decode as float64; only whole values qualify.
		return wholeFloat(field, n)
	case json.Number:
		return toInt(field, string(n))
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, apperrors.Validation(field, n, "is required")
		}
		if !digitsOnly(s) {
			return 0, apperrors.Validation(field, n, "must be a whole number")
		}
		parsed, err := strconv.Atoi(s)
		if err != nil {
			return 0, apperrors.Validation(field, n, "must be a whole number")
		}
		return parsed, nil
	default:
		return 0, apperrors.Validation(field, v,
			fmt.Sprintf("unsupported type %T", v))
	}
}

func wholeFloat(field string, f float64) (int, error) {
	if f != math.Trunc(f) {
		return 0, apperrors.Validation(field, f, "must be a whole number")
	}
	return int(f), nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

// Phone normalizes a phone number: whitespace, "+", "-" and parentheses
// are stripped and the remainder must be 10 to 15 digits. When required is
// false an empty or whitespace-only input is normalized to "" without an
// error (used for the optional emergency contact).
func Phone(field string, v any, required bool) (string, error) {
	raw, ok := v.(string)
	if v == nil {
		raw, ok = "", true
	}
	if !ok {
		return "", apperrors.Validation(field, v, fmt.Sprintf("unsupported type %T", v))
	}

	stripped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r), r == '+', r == '-', r == '(', r == ')':
			return -1
		}
		return r
	}, raw)

	if stripped == "" {
		if required {
			return "", apperrors.Validation(field, raw, "is required")
		}
		return "", nil
	}
	if !digitsOnly(stripped) {
		return "", apperrors.Validation(field, raw, "must contain only digits after formatting is removed")
	}
	if len(stripped) < 10 || len(stripped) > 15 {
		return "", apperrors.Validation(field, raw, "must be 10 to 15 digits")
	}
	return stripped, nil
}

// Identifier validates an opaque record identifier: a non-empty string of
// at least 8 characters after trimming. Non-string input is rejected.
func Identifier(field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", apperrors.Validation(field, v, fmt.Sprintf("unsupported type %T", v))
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", apperrors.Validation(field, s, "is required")
	}
	if len(trimmed) < 8 {
		return "", apperrors.Validation(field, s, "must be at least 8 characters")
	}
	return trimmed, nil
}

// Accepted travel date layouts, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// TravelDate normalizes a travel date to a single canonical UTC timestamp.
// It accepts an absolute-timestamp string with or without a zone suffix, a
// date-only string, or a native time.Time. Empty input means "not
// provided" and yields nil without an error.
func TravelDate(field string, v any) (*time.Time, error) {
	switch d := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		if d.IsZero() {
			return nil, nil
		}
		utc := d.UTC()
		return &utc, nil
	case *time.Time:
		if d == nil || d.IsZero() {
			return nil, nil
		}
		utc := d.UTC()
		return &utc, nil
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return nil, nil
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				utc := parsed.UTC()
				return &utc, nil
			}
		}
		return nil, apperrors.Validation(field, d, "is not a recognizable date or timestamp")
	default:
		return nil, apperrors.Validation(field, v, fmt.Sprintf("unsupported type %T", v))
	}
}

// Amount coerces a monetary value to a non-negative float rounded to two
// decimals. Numeric types and decimal strings are accepted.
func Amount(field string, v any) (float64, error) {
	var amount float64
	switch n := v.(type) {
	case nil:
		return 0, apperrors.Validation(field, nil, "is required")
	case int:
		amount = float64(n)
	case int64:
		amount = float64(n)
	case float32:
		amount = float64(n)
	case float64:
		amount = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, apperrors.Validation(field, n, "must be a number")
		}
		amount = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, apperrors.Validation(field, n, "is required")
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, apperrors.Validation(field, n, "must be a number")
		}
		amount = parsed
	default:
		return 0, apperrors.Validation(field, v, fmt.Sprintf("unsupported type %T", v))
	}

	if amount < 0 {
		return 0, apperrors.Validation(field, amount, "must not be negative")
	}
	return RoundMoney(amount), nil
}

// RoundMoney rounds to two-decimal monetary precision.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
