// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfr

import (
	"fmt"
	"math/bits"
)

const debugFloat = false // enable for debugging

// A nonzero finite Float represents a multi-precision binary floating point
// number
//
//	sign × 0.mantissa × 2**exponent
//
// with 0.5 <= mantissa < 1.0, and MinExp <= exponent <= MaxExp. A Float may
// also be zero (+0, -0), infinite (+Inf, -Inf) or not-a-number (NaN).
//
// Each Float value has a precision: the maximum number of mantissa bits
// available to represent the value. Unlike math/big, a Float does not carry a
// rounding mode or an accuracy: operations take an explicit RoundingMode and
// return the Accuracy (ternary value) of the result, and they report
// exceptional conditions through the sticky flags of the Context they are
// called on.
//
// The zero (uninitialized) value for a Float is ready to use and represents
// the number +0.0 exactly, with precision 0. A Float with precision 0 used as
// the destination of an operation takes the default precision of the Context.
//
// Floats must not be copied by value: use Copy or a Context Set instead.
type Float struct {
	prec     uint32
	form     form
	neg      bool
	borrowed bool
	mant     nat
	exp      int64
}

// Kind classifies a Float value.
type Kind int8

// Float kinds.
const (
	NaNKind Kind = iota
	InfKind
	ZeroKind
	RegularKind
)

func (k Kind) String() string {
	switch k {
	case NaNKind:
		return "NaN"
	case InfKind:
		return "Inf"
	case ZeroKind:
		return "Zero"
	case RegularKind:
		return "Regular"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// NewFloat allocates and returns a new Float with value +0 and the given
// precision. It panics if prec is outside [MinPrec, MaxPrec].
func NewFloat(prec uint) *Float {
	return &Float{prec: validPrec(prec)}
}

// Prec returns the mantissa precision of x in bits.
func (x *Float) Prec() uint {
	return uint(x.prec)
}

// SetPrec sets z's precision to prec and its value to NaN, reallocating the
// significand. Use Context.PrecRound to change the precision of a value
// while keeping (a rounding of) it. SetPrec panics if prec is outside
// [MinPrec, MaxPrec] or if z is built over borrowed storage.
func (z *Float) SetPrec(prec uint) *Float {
	if z.borrowed {
		panic(ErrBorrowed)
	}
	z.prec = validPrec(prec)
	z.mant = nil
	z.form = nan
	z.neg = false
	return z
}

// Kind returns the kind of x.
func (x *Float) Kind() Kind {
	switch x.form {
	case zero:
		return ZeroKind
	case finite:
		return RegularKind
	case inf:
		return InfKind
	}
	return NaNKind
}

// Sign returns:
//
//	-1 if x <   0
//	 0 if x is ±0 or NaN
//	+1 if x >   0
func (x *Float) Sign() int {
	if x.form == zero || x.form == nan {
		return 0
	}
	if x.neg {
		return -1
	}
	return 1
}

// Signbit reports whether x is negative or negative zero. The sign bit of a
// NaN is meaningless but reported anyway.
func (x *Float) Signbit() bool {
	return x.neg
}

// IsNaN reports whether x is a NaN.
func (x *Float) IsNaN() bool { return x.form == nan }

// IsInf reports whether x is +Inf or -Inf.
func (x *Float) IsInf() bool { return x.form == inf }

// IsZero reports whether x is +0 or -0.
func (x *Float) IsZero() bool { return x.form == zero }

// IsRegular reports whether x is a nonzero finite number.
func (x *Float) IsRegular() bool { return x.form == finite }

// IsNumber reports whether x is neither NaN nor infinite.
func (x *Float) IsNumber() bool { return x.form <= finite }

// IsInt reports whether x is an integer. ±Inf and NaN values are not
// integers.
func (x *Float) IsInt() bool {
	if x.form != finite {
		return x.form == zero
	}
	if x.exp <= 0 {
		return false
	}
	return uint64(x.exp) >= uint64(x.MinPrec())
}

// Exp returns the exponent of x: for a regular x, x = m × 2**exp with
// 0.5 <= |m| < 1.0. The result is 0 for zeros, infinities and NaN.
func (x *Float) Exp() int64 {
	if x.form != finite {
		return 0
	}
	return x.exp
}

// MinPrec returns the minimum precision required to represent x exactly
// (i.e., the smallest prec before x.PrecRound(prec) would start rounding x).
// The result is 0 for |x| == 0 and |x| == Inf.
func (x *Float) MinPrec() uint {
	if x.form != finite {
		return 0
	}
	return uint(len(x.mant))*_W - x.mant.trailingZeroBits()
}

// SetNaN sets z to NaN and returns z.
func (z *Float) SetNaN() *Float {
	z.form = nan
	z.neg = false
	return z
}

// SetInf sets z to the infinite Float -Inf if signbit is set, or +Inf if
// signbit is not set, and returns z.
func (z *Float) SetInf(signbit bool) *Float {
	z.form = inf
	z.neg = signbit
	return z
}

// SetZero sets z to -0 if signbit is set, or +0 otherwise, and returns z.
func (z *Float) SetZero(signbit bool) *Float {
	z.form = zero
	z.neg = signbit
	return z
}

// Swap exchanges the values and precisions of z and x.
func (z *Float) Swap(x *Float) {
	*z, *x = *x, *z
}

// Copy sets z to x, with the same precision as x, and returns z. x is not
// changed even if z and x are the same. Copy panics if z is built over
// borrowed storage and x has a different precision.
func (z *Float) Copy(x *Float) *Float {
	if debugFloat {
		x.validate()
	}
	if z == x {
		return z
	}
	if z.borrowed && z.prec != x.prec {
		panic(ErrBorrowed)
	}
	z.prec = x.prec
	z.form = x.form
	z.neg = x.neg
	if x.form == finite {
		z.mant = z.mant.make(len(x.mant))
		copy(z.mant, x.mant)
		z.exp = x.exp
	}
	return z
}

// MantExp breaks x into its mantissa and exponent components and returns
// the exponent. If a non-nil mant argument is provided, it is set to an
// exact copy of x with its exponent replaced by 0, so that
//
//	x == mant × 2**exp, with 0.5 <= |mant| < 1.0
//
// If x is zero, infinite or NaN, mant is set to x and the result is 0.
func (x *Float) MantExp(mant *Float) (exp int64) {
	if x.form == finite {
		exp = x.exp
	}
	if mant != nil {
		mant.Copy(x)
		if mant.form == finite {
			mant.exp = 0
		}
	}
	return
}

// Significand returns the limbs of the significand of x, least significant
// limb first. The most significant bit of the last limb is set for regular
// values. The result aliases x's storage.
func (x *Float) Significand() []Word {
	if x.form != finite {
		return nil
	}
	return x.mant
}

// ord classifies x and returns:
//
//	-2 if -Inf == x
//	-1 if -Inf < x < 0
//	 0 if x == 0 (signed or unsigned)
//	+1 if 0 < x < +Inf
//	+2 if x == +Inf
//
// x must not be a NaN.
func (x *Float) ord() int {
	var m int
	switch x.form {
	case finite:
		m = 1
	case zero:
		return 0
	case inf:
		m = 2
	}
	if x.neg {
		m = -m
	}
	return m
}

// ucmp returns -1, 0, or +1, depending on whether |x| < |y|, |x| == |y|, or
// |x| > |y|. x and y must be finite and nonzero.
func (x *Float) ucmp(y *Float) int {
	switch {
	case x.exp < y.exp:
		return -1
	case x.exp > y.exp:
		return +1
	}
	// x.exp == y.exp

	// compare mantissas
	i := len(x.mant)
	j := len(y.mant)
	for i > 0 || j > 0 {
		var xm, ym Word
		if i > 0 {
			i--
			xm = x.mant[i]
		}
		if j > 0 {
			j--
			ym = y.mant[j]
		}
		switch {
		case xm < ym:
			return -1
		case xm > ym:
			return +1
		}
	}

	return 0
}

// cmp compares x and y, neither of which may be a NaN.
func (x *Float) cmp(y *Float) int {
	mx := x.ord()
	my := y.ord()
	switch {
	case mx < my:
		return -1
	case mx > my:
		return +1
	}
	// mx == my

	// only if |mx| == 1 we have to compare the mantissae
	switch mx {
	case -1:
		return y.ucmp(x)
	case +1:
		return x.ucmp(y)
	}

	return 0
}

// CmpAbs compares the absolute values of x and y and returns -1, 0 or +1.
// The result is 0 if either value is a NaN; use Context.CmpAbs to have
// this reported.
func (x *Float) CmpAbs(y *Float) int {
	if x.form == nan || y.form == nan {
		return 0
	}
	ax := x.ord()
	ay := y.ord()
	if ax < 0 {
		ax = -ax
	}
	if ay < 0 {
		ay = -ay
	}
	switch {
	case ax < ay:
		return -1
	case ax > ay:
		return +1
	}
	if ax == 1 {
		return x.ucmp(y)
	}
	return 0
}

// Unordered reports whether x or y is a NaN.
func (x *Float) Unordered(y *Float) bool {
	return x.form == nan || y.form == nan
}

// Equal reports whether x == y. Comparisons involving NaN are false and
// -0 == +0.
func (x *Float) Equal(y *Float) bool {
	return !x.Unordered(y) && x.cmp(y) == 0
}

// Less reports whether x < y.
func (x *Float) Less(y *Float) bool {
	return !x.Unordered(y) && x.cmp(y) < 0
}

// LessEqual reports whether x <= y.
func (x *Float) LessEqual(y *Float) bool {
	return !x.Unordered(y) && x.cmp(y) <= 0
}

// Greater reports whether x > y.
func (x *Float) Greater(y *Float) bool {
	return !x.Unordered(y) && x.cmp(y) > 0
}

// GreaterEqual reports whether x >= y.
func (x *Float) GreaterEqual(y *Float) bool {
	return !x.Unordered(y) && x.cmp(y) >= 0
}

// LessGreater reports whether x < y or x > y.
func (x *Float) LessGreater(y *Float) bool {
	return !x.Unordered(y) && x.cmp(y) != 0
}

// exact returns x's finite nonzero value as m × 2**e with m normalized and
// stripped of its low zero limbs. m aliases x.mant and must not be modified.
func (x *Float) exact() (m nat, e int64) {
	m = x.mant
	i := 0
	for i < len(m) && m[i] == 0 {
		i++
	}
	return m[i:], x.exp - int64(len(m)-i)*_W
}

// top64 returns the 64 most significant bits of x's mantissa.
func (x *Float) top64() uint64 {
	return msb64(x.mant)
}

// setFinite sets z to (-1)**neg × q × 2**(E - q.bitLen()), that is, to a
// value with exponent E whose mantissa bits are those of q. q must be
// normalized, nonzero and have at most z.prec bits. z's significand storage
// is reused when possible and never reallocated for borrowed values.
func (z *Float) setFinite(neg bool, q nat, E int64) {
	n := nwords(z.prec)
	s := uint(n)*_W - q.bitLen()
	t := nat(nil).shl(q, s)
	z.mant = z.mant.make(n)
	copy(z.mant, t)
	z.form = finite
	z.neg = neg
	z.exp = E
	if debugFloat {
		z.validate()
	}
}

// setMax sets z to the largest finite value of its precision with exponent
// E.
func (z *Float) setMax(neg bool, E int64) {
	n := nwords(z.prec)
	z.mant = z.mant.make(n)
	for i := range z.mant {
		z.mant[i] = ^Word(0)
	}
	if r := uint(n)*_W - uint(z.prec); r > 0 {
		z.mant[0] &^= 1<<r - 1
	}
	z.form = finite
	z.neg = neg
	z.exp = E
}

// setMin sets z to ±0.1 × 2**E.
func (z *Float) setMin(neg bool, E int64) {
	n := nwords(z.prec)
	z.mant = z.mant.make(n)
	z.mant.clear()
	z.mant[n-1] = 1 << (_W - 1)
	z.form = finite
	z.neg = neg
	z.exp = E
}

func (x *Float) validate() {
	if !debugFloat {
		// avoid performance bugs
		panic("validate called but debugFloat is not set")
	}
	if x.form != finite {
		return
	}
	m := len(x.mant)
	if m == 0 {
		panic("nonzero finite number with empty mantissa")
	}
	const msb = 1 << (_W - 1)
	if x.mant[m-1]&msb == 0 {
		panic(fmt.Sprintf("msb not set in last word %#x of %s", x.mant[m-1], x.Text('p', 0)))
	}
	if x.prec == 0 {
		panic("zero precision finite number")
	}
	if m != nwords(x.prec) {
		panic(fmt.Sprintf("mantissa length %d does not match precision %d", m, x.prec))
	}
	if r := uint(m)*_W - uint(x.prec); r > 0 && x.mant[0]&(1<<r-1) != 0 {
		panic(fmt.Sprintf("bits below precision are set in %s", x.Text('p', 0)))
	}
}

// bitLen64 returns the number of bits needed to represent x.
func bitLen64(x uint64) uint {
	return uint(bits.Len64(x))
}
