// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interop converts Floats to and from the decimal types of
// github.com/shopspring/decimal and github.com/robaho/fixed.
//
// Conversions to a Float are correctly rounded. Every finite Float has a
// finite decimal expansion, so ToDecimal is exact; ToFixed rounds to the 7
// decimal places of a fixed.Fixed.
package interop

import (
	"math/big"
	"strconv"

	"github.com/db47h/mpfr"
	"github.com/db47h/mpfr/internal/checked"
	"github.com/pkg/errors"
	"github.com/robaho/fixed"
	"github.com/shopspring/decimal"
)

// FixedPlaces is the number of decimal places of a fixed.Fixed.
const FixedPlaces = 7

// raw value bounds of a fixed.Fixed: ±99999999999.9999999
const maxFixed = 999999999999999999

var fixedScale = big.NewInt(10_000_000)

// FromDecimal sets z to the value of d, rounded with rnd.
func FromDecimal(c *mpfr.Context, z *mpfr.Float, d decimal.Decimal, rnd mpfr.RoundingMode) mpfr.Accuracy {
	s := d.Coefficient().String() + "e" + strconv.FormatInt(int64(d.Exponent()), 10)
	acc, err := c.SetString(z, s, rnd)
	if err != nil {
		// a coefficient and exponent always parse
		panic(err)
	}
	return acc
}

// ToDecimal returns the exact value of x as a decimal.Decimal. A negative
// zero converts to zero. It returns an error wrapping mpfr.ErrNotFinite for
// NaN and infinities, or mpfr.ErrOverflow if the decimal exponent of x does
// not fit a decimal.Decimal.
func ToDecimal(x *mpfr.Float) (decimal.Decimal, error) {
	switch {
	case x.IsZero():
		return decimal.Zero, nil
	case !x.IsRegular():
		return decimal.Decimal{}, errors.Wrapf(mpfr.ErrNotFinite, "converting %v to decimal", x)
	}
	m, e := x.IntExp(nil)
	tz := m.TrailingZeroBits()
	m.Rsh(m, tz)
	e += int64(tz)
	if e >= 0 {
		return decimal.NewFromBigInt(m.Lsh(m, uint(e)), 0), nil
	}
	// m × 2**e = m × 5**-e × 10**e
	exp, err := checked.Convert[int32](e)
	if err != nil {
		return decimal.Decimal{}, errors.Wrap(err, "converting to decimal")
	}
	p := new(big.Int).Exp(big.NewInt(5), big.NewInt(-e), nil)
	return decimal.NewFromBigInt(m.Mul(m, p), exp), nil
}

// FromFixed sets z to the value of f, rounded with rnd.
func FromFixed(c *mpfr.Context, z *mpfr.Float, f fixed.Fixed, rnd mpfr.RoundingMode) mpfr.Accuracy {
	acc, err := c.SetString(z, f.String(), rnd)
	if err != nil {
		panic(err)
	}
	return acc
}

// ToFixed returns x rounded with rnd to FixedPlaces decimal places. NaN
// converts to fixed.NaN. It returns an error wrapping mpfr.ErrNotFinite for
// infinities or mpfr.ErrOverflow if the rounded value is out of the range of
// fixed.Fixed.
func ToFixed(x *mpfr.Float, rnd mpfr.RoundingMode) (fixed.Fixed, error) {
	switch {
	case x.IsNaN():
		return fixed.NaN, nil
	case x.IsInf():
		return fixed.NaN, errors.Wrapf(mpfr.ErrNotFinite, "converting %v to fixed", x)
	case x.IsZero():
		return fixed.ZERO, nil
	}
	// x × 10**7 is exact with 24 more bits
	c := mpfr.NewContext().Extended()
	t := mpfr.NewFloat(x.Prec() + 24)
	c.MulInt(t, x, fixedScale, mpfr.ToNearestEven)
	if !t.FitsInt64(rnd) {
		return fixed.NaN, errors.Wrapf(mpfr.ErrOverflow, "%v does not fit in fixed", x)
	}
	v, _ := t.Int64(rnd)
	if v > maxFixed || v < -maxFixed {
		return fixed.NaN, errors.Wrapf(mpfr.ErrOverflow, "%v does not fit in fixed", x)
	}
	return fixed.NewI(v, FixedPlaces), nil
}
