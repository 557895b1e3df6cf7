// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file mirrors types and constants from math/big.

package mpfr

import (
	"io"
	"math/big"
	"math/bits"
	"strconv"

	"github.com/pkg/errors"
)

// Word is a single limb of a Float's significand.
type Word = big.Word

const _W = bits.UintSize // word size in bits

// MaxBase is the largest number base accepted for string conversions.
const MaxBase = 10 + ('z' - 'a' + 1) + ('Z' - 'A' + 1)
const maxBaseSmall = 10 + ('z' - 'a' + 1)

// Exponent and precision limits.
const (
	MaxExp      = 1<<61 - 1    // largest supported exponent
	MinExp      = -MaxExp      // smallest supported exponent
	MinPrec     = 1            // smallest supported precision
	MaxPrec     = 1<<31 - 1    // largest supported precision; likely memory-limited
	DefaultEmin = -(1<<30 - 1) // default smallest exponent of a Context
	DefaultEmax = 1<<30 - 1    // default largest exponent of a Context
	DefaultPrec = 53           // default precision of a Context (binary64)
)

// Internal representation: The mantissa bits x.mant of a nonzero finite
// Float x are stored in a nat slice of exactly nwords(x.prec) limbs. The
// msb is shifted all the way "to the left" so that the mantissa is the
// fraction 0.5 <= 0.mant < 1.0, and all bits below x.prec are zero.
//
// A zero, infinite or NaN Float x ignores x.mant and x.exp.
//
// x                 form      neg      mant         exp
// ----------------------------------------------------------
// ±0                zero      sign     -            -
// 0 < |x| < +Inf    finite    sign     mantissa     exponent
// ±Inf              inf       sign     -            -
// NaN               nan       sign     -            -

// A form value describes the internal representation.
type form byte

// The form value order is relevant - do not change!
const (
	zero form = iota
	finite
	inf
	nan
)

// RoundingMode determines how a Float value is rounded to the
// desired precision.
type RoundingMode byte

// These constants define supported rounding modes.
const (
	ToNearestEven RoundingMode = iota // == IEEE 754-2008 roundTiesToEven
	ToZero                            // == IEEE 754-2008 roundTowardZero
	ToPositiveInf                     // == IEEE 754-2008 roundTowardPositive
	ToNegativeInf                     // == IEEE 754-2008 roundTowardNegative
	AwayFromZero                      // no IEEE 754-2008 equivalent
	Faithful                          // either neighbour of the exact value

	// ties away from zero; only used internally for Round
	toNearestAway RoundingMode = 0xff
)

var roundingModeNames = [...]string{
	"ToNearestEven",
	"ToZero",
	"ToPositiveInf",
	"ToNegativeInf",
	"AwayFromZero",
	"Faithful",
}

func (m RoundingMode) String() string {
	if int(m) < len(roundingModeNames) {
		return roundingModeNames[m]
	}
	return "RoundingMode(" + strconv.Itoa(int(m)) + ")"
}

// ParseRoundingMode returns the rounding mode named s. It accepts the
// constant names as well as the short MPFR forms N, Z, U, D, A and F.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch s {
	case "N", "RNDN", "ToNearestEven", "nearest":
		return ToNearestEven, nil
	case "Z", "RNDZ", "ToZero", "zero":
		return ToZero, nil
	case "U", "RNDU", "ToPositiveInf", "up":
		return ToPositiveInf, nil
	case "D", "RNDD", "ToNegativeInf", "down":
		return ToNegativeInf, nil
	case "A", "Y", "RNDA", "AwayFromZero", "away":
		return AwayFromZero, nil
	case "F", "RNDF", "Faithful", "faithful":
		return Faithful, nil
	}
	return 0, errors.Errorf("mpfr: unknown rounding mode %q", s)
}

// Accuracy describes the rounding error produced by an operation that
// generated a Float value, relative to the exact value. It is the ternary
// value of the operation: Below if the result is smaller than the exact
// value, Above if it is larger, Exact otherwise.
type Accuracy int8

// Constants describing the Accuracy of a Float.
const (
	Below Accuracy = -1
	Exact Accuracy = 0
	Above Accuracy = +1
)

func (a Accuracy) String() string {
	switch a {
	case Below:
		return "Below"
	case Exact:
		return "Exact"
	case Above:
		return "Above"
	}
	return "Accuracy(" + strconv.Itoa(int(a)) + ")"
}

func makeAcc(above bool) Accuracy {
	if above {
		return Above
	}
	return Below
}

// countingReader counts the bytes consumed from a ByteScanner.
type countingReader struct {
	r io.ByteScanner
	n int
}

func (r *countingReader) ReadByte() (byte, error) {
	b, err := r.r.ReadByte()
	if err == nil {
		r.n++
	}
	return b, err
}

func (r *countingReader) UnreadByte() error {
	err := r.r.UnreadByte()
	if err == nil {
		r.n--
	}
	return err
}

// scan errors
var (
	errNoDigits = errors.New("number has no digits")
	errInvalSep = errors.New("'_' must separate successive digits")
)

// scanExponent scans an optional exponent. The exponent character selects the
// exponent base: 'e' or 'E' for the mantissa base (only for bases <= 10), 'p'
// or 'P' for base 2 (only if base2ok), '@' for the mantissa base. The returned
// ebase is 0 if the exponent applies to the mantissa base and 2 otherwise.
func scanExponent(r io.ByteScanner, base int, base2ok, sepOk bool) (exp int64, ebase int, err error) {
	// one char look-ahead
	ch, err := r.ReadByte()
	if err != nil {
		if err == io.EOF {
			err = nil
		}
		return 0, 0, err
	}

	// exponent char
	switch {
	case (ch == 'e' || ch == 'E') && base <= 10:
		ebase = 0
	case ch == '@':
		ebase = 0
	case (ch == 'p' || ch == 'P') && base2ok:
		ebase = 2
	default:
		_ = r.UnreadByte() // ch does not belong to exponent anymore
		return 0, 0, nil
	}

	// sign
	var digits []byte
	ch, err = r.ReadByte()
	if err == nil && (ch == '+' || ch == '-') {
		if ch == '-' {
			digits = append(digits, '-')
		}
		ch, err = r.ReadByte()
	}

	// prev encodes the previously seen char: it is one
	// of '_', '0' (a digit), or '.' (anything else). A
	// valid separator '_' may only occur after a digit.
	prev := '.'
	invalSep := false

	// exponent value
	hasDigits := false
	for err == nil {
		if '0' <= ch && ch <= '9' {
			digits = append(digits, ch)
			prev = '0'
			hasDigits = true
		} else if ch == '_' && sepOk {
			if prev != '0' {
				invalSep = true
			}
			prev = '_'
		} else {
			_ = r.UnreadByte() // ch does not belong to number anymore
			break
		}
		ch, err = r.ReadByte()
	}

	if err == io.EOF {
		err = nil
	}
	if err == nil && !hasDigits {
		err = errNoDigits
	}
	if err == nil {
		exp, err = strconv.ParseInt(string(digits), 10, 64)
	}
	// other errors take precedence over invalid separators
	if err == nil && (invalSep || prev == '_') {
		err = errInvalSep
	}

	return
}

func min64(x, y int64) int64 {
	if x < y {
		return x
	}
	return y
}
