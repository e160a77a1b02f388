package wirebind

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
)

// Integer is the set of Go integer types an integer field may bind to.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

var (
	errNotInteger = errors.New("not an integer")
	errFractional = errors.New("fractional number")
	errOverflow   = errors.New("integer out of range")
)

// integer is a sign/magnitude view wide enough for both int64 and uint64.
type integer struct {
	neg bool
	mag uint64
}

func (n integer) int64() int64 {
	if n.neg {
		return -int64(n.mag)
	}
	return int64(n.mag)
}

func fromInt64(i int64) integer {
	if i < 0 {
		return integer{neg: true, mag: uint64(-(i + 1)) + 1}
	}
	return integer{mag: uint64(i)}
}

func parseInteger(v any) (integer, error) {
	switch t := v.(type) {
	case json.Number:
		return parseIntegerText(string(t))
	case float64:
		return integerFromFloat(t)
	case float32:
		return integerFromFloat(float64(t))
	case int:
		return fromInt64(int64(t)), nil
	case int8:
		return fromInt64(int64(t)), nil
	case int16:
		return fromInt64(int64(t)), nil
	case int32:
		return fromInt64(int64(t)), nil
	case int64:
		return fromInt64(t), nil
	case uint:
		return integer{mag: uint64(t)}, nil
	case uint8:
		return integer{mag: uint64(t)}, nil
	case uint16:
		return integer{mag: uint64(t)}, nil
	case uint32:
		return integer{mag: uint64(t)}, nil
	case uint64:
		return integer{mag: t}, nil
	default:
		return integer{}, errNotInteger
	}
}

func parseIntegerText(s string) (integer, error) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return fromInt64(i), nil
	}
	// integer syntax outside int64: only positive values up to uint64 fit
	if errors.Is(err, strconv.ErrRange) {
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return integer{mag: u}, nil
		}
		return integer{}, errOverflow
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return integer{}, errOverflow
		}
		return integer{}, errNotInteger
	}
	return integerFromFloat(f)
}

func integerFromFloat(f float64) (integer, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return integer{}, errNotInteger
	}
	if f != math.Trunc(f) {
		return integer{}, errFractional
	}
	if f >= 0 {
		if f >= math.Exp2(64) {
			return integer{}, errOverflow
		}
		return integer{mag: uint64(f)}, nil
	}
	if f < -math.Exp2(63) {
		return integer{}, errOverflow
	}
	return integer{neg: true, mag: uint64(-f)}, nil
}

// fitInteger narrows n to T, reporting false when it does not fit.
func fitInteger[T Integer](n integer) (T, bool) {
	if n.neg {
		i := n.int64()
		t := T(i)
		if !(t < 0) || int64(t) != i {
			return t, false
		}
		return t, true
	}
	t := T(n.mag)
	if t < 0 || uint64(t) != n.mag {
		return t, false
	}
	return t, true
}

// formatInteger renders any integer type without going through float64.
func formatInteger[T Integer](v T) string {
	if v < 0 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatUint(uint64(v), 10)
}
