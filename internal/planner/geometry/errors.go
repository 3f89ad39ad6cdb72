package geometry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ============================================================
// Errors
// ============================================================

var (
	// Числовой ввод вне допустимой границы.
	ErrOutOfRange = errors.New("value out of range")
	// Правка нарушила бы согласованность сущностей.
	ErrInconsistent = errors.New("inconsistent design")
)

// RangeError описывает нарушенную границу и разворачивается в ErrOutOfRange.
type RangeError struct {
	Field        string
	Value        float64
	Min          float64
	Max          float64
	MinExclusive bool
	MaxExclusive bool
}

func (e *RangeError) Error() string {
	lo, hi := "[", "]"
	if e.MinExclusive {
		lo = "("
	}
	if e.MaxExclusive {
		hi = ")"
	}
	return fmt.Sprintf("%s %s out of range %s%s, %s%s",
		e.Field, formatFloat(e.Value), lo, formatFloat(e.Min), formatFloat(e.Max), hi)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// ValidateFinite отклоняет NaN и бесконечности.
func ValidateFinite(field string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrOutOfRange, field)
		}
	}
	return nil
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
