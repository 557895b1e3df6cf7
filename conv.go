// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfr

import (
	"math"
	"math/big"

	"github.com/db47h/mpfr/internal/checked"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// SetFloat64 sets z to the (possibly rounded) value of x. If x is a NaN, z
// is set to NaN.
func (c *Context) SetFloat64(z *Float, x float64, rnd RoundingMode) Accuracy {
	c.prepare(z)
	switch {
	case math.IsNaN(x):
		return c.setNaN(z)
	case math.IsInf(x, 0):
		z.SetInf(x < 0)
		return Exact
	case x == 0:
		z.SetZero(math.Signbit(x))
		return Exact
	}
	neg := x < 0
	fmant, exp := math.Frexp(math.Abs(x))
	m := nat(nil).setUint64(uint64(fmant * (1 << 53)))
	return c.round(z, neg, m, int64(exp)-53, false, rnd)
}

// SetFloat32 sets z to the (possibly rounded) value of x.
func (c *Context) SetFloat32(z *Float, x float32, rnd RoundingMode) Accuracy {
	return c.SetFloat64(z, float64(x), rnd)
}

// SetInt64 sets z to the (possibly rounded) value of x.
func (c *Context) SetInt64(z *Float, x int64, rnd RoundingMode) Accuracy {
	u := uint64(x)
	if x < 0 {
		u = -u
	}
	return c.round(z, x < 0, nat(nil).setUint64(u), 0, false, rnd)
}

// SetUint64 sets z to the (possibly rounded) value of x.
func (c *Context) SetUint64(z *Float, x uint64, rnd RoundingMode) Accuracy {
	return c.round(z, false, nat(nil).setUint64(x), 0, false, rnd)
}

// SetInt sets z to the (possibly rounded) value of x.
func (c *Context) SetInt(z *Float, x *big.Int, rnd RoundingMode) Accuracy {
	return c.round(z, x.Sign() < 0, nat(x.Bits()), 0, false, rnd)
}

// SetIntExp sets z to the (possibly rounded) value of x × 2**exp.
func (c *Context) SetIntExp(z *Float, x *big.Int, exp int64, rnd RoundingMode) Accuracy {
	return c.round(z, x.Sign() < 0, nat(x.Bits()), exp, false, rnd)
}

// SetRat sets z to the correctly rounded value of x.
func (c *Context) SetRat(z *Float, x *big.Rat, rnd RoundingMode) Accuracy {
	return c.setRatio(z, x.Sign() < 0, nat(x.Num().Bits()), nat(x.Denom().Bits()), 0, rnd)
}

// SetBigFloat sets z to the (possibly rounded) value of x.
func (c *Context) SetBigFloat(z *Float, x *big.Float, rnd RoundingMode) Accuracy {
	c.prepare(z)
	switch {
	case x.IsInf():
		z.SetInf(x.Signbit())
		return Exact
	case x.Sign() == 0:
		z.SetZero(x.Signbit())
		return Exact
	}
	mant := new(big.Float)
	exp := x.MantExp(mant)
	prec := int(x.MinPrec())
	mi, _ := mant.SetMantExp(mant, prec).Int(nil)
	return c.round(z, mi.Sign() < 0, nat(mi.Bits()), int64(exp)-int64(prec), false, rnd)
}

// setRatio sets z to (-1)**neg × num/den × 2**e correctly rounded.
func (c *Context) setRatio(z *Float, neg bool, num, den nat, e int64, rnd RoundingMode) Accuracy {
	c.prepare(z)
	num = num.norm()
	if len(num) == 0 {
		z.SetZero(neg)
		return Exact
	}
	m, e, sticky := quoExact(num, e, den.norm(), 0, uint(z.prec))
	return c.round(z, neg, m, e, sticky, rnd)
}

// exactInt returns a new Float holding the exact value of x.
func exactInt(x *big.Int) *Float {
	return exactNat(x.Sign() < 0, nat(x.Bits()))
}

func exactInt64(x int64) *Float {
	u := uint64(x)
	if x < 0 {
		u = -u
	}
	return exactNat(x < 0, nat(nil).setUint64(u))
}

func exactNat(neg bool, m nat) *Float {
	m = m.norm()
	n := m.bitLen()
	if n == 0 {
		return &Float{prec: MinPrec, neg: neg}
	}
	z := &Float{prec: uint32(n)}
	z.setFinite(neg, m, int64(n))
	return z
}

func exactFloat64(x float64) *Float {
	z := NewFloat(53)
	var c Context
	c.emin, c.emax = MinExp, MaxExp
	c.SetFloat64(z, x, ToZero)
	return z
}

// Machine float formats. emin is the exponent of the smallest subnormal in
// the 0.1×2**e convention.
const (
	float64Prec = 53
	float64Emin = -1073
	float64Emax = 1024
	float32Prec = 24
	float32Emin = -148
	float32Emax = 128
)

// toMachine rounds x to a machine float format with gradual underflow. It
// returns the rounded value and the flags raised in the process.
func (x *Float) toMachine(rnd RoundingMode, prec uint, emin, emax int64) (*Float, Accuracy, Flags) {
	tmp := Context{emin: emin, emax: emax}
	p := int64(prec)
	if x.form == finite {
		if q := x.exp - emin + 1; q < p {
			p = q
		}
	}
	if p < 1 {
		p = 1
	}
	z := NewFloat(uint(p))
	acc := tmp.Set(z, x, rnd)
	return z, acc, tmp.Flags()
}

// machine returns the float64 of a value produced by toMachine.
func (z *Float) machine() float64 {
	switch z.form {
	case zero:
		if z.neg {
			return math.Copysign(0, -1)
		}
		return 0
	case inf:
		return math.Inf(z.Sign())
	case nan:
		return math.NaN()
	}
	m, e := z.exact()
	f := math.Ldexp(float64(msbValue(m)), int(e))
	if z.neg {
		f = -f
	}
	return f
}

// Float64 returns the float64 value nearest to x with rounding mode rnd,
// following IEEE 754 gradual underflow. If x is too small to be represented
// by a float64 (|x| < math.SmallestNonzeroFloat64), the result is (0, Below)
// or (-0, Above), respectively, depending on the sign of x (for round to
// nearest). If x is too large, the result is (+Inf, Above) or (-Inf, Below),
// depending on the sign of x (for round to nearest).
func (x *Float) Float64(rnd RoundingMode) (float64, Accuracy) {
	z, acc, _ := x.toMachine(rnd, float64Prec, float64Emin, float64Emax)
	return z.machine(), acc
}

// Float32 returns the float32 value nearest to x with rounding mode rnd.
func (x *Float) Float32(rnd RoundingMode) (float32, Accuracy) {
	z, acc, _ := x.toMachine(rnd, float32Prec, float32Emin, float32Emax)
	return float32(z.machine()), acc
}

// Float64 is like x.Float64, but raises the Inexact, Overflow and Underflow
// flags of c.
func (c *Context) Float64(x *Float, rnd RoundingMode) (float64, Accuracy) {
	z, acc, f := x.toMachine(rnd, float64Prec, float64Emin, float64Emax)
	c.raise(f &^ NaNFlag)
	return z.machine(), acc
}

// Float32 is like x.Float32, but raises the Inexact, Overflow and Underflow
// flags of c.
func (c *Context) Float32(x *Float, rnd RoundingMode) (float32, Accuracy) {
	z, acc, f := x.toMachine(rnd, float32Prec, float32Emin, float32Emax)
	c.raise(f &^ NaNFlag)
	return float32(z.machine()), acc
}

// roundInt returns the magnitude of x rounded to an integer with rnd, or
// with ties away from zero if away is set. x must be finite.
func (x *Float) roundInt(rnd RoundingMode, away bool) (i nat, acc Accuracy) {
	if x.form == zero {
		return nil, Exact
	}
	m, e := x.exact()
	if e >= 0 {
		return nat(nil).shl(m, uint(e)), Exact
	}
	s := uint64(-e)
	var (
		q       nat
		r, sbit bool
	)
	n := uint64(m.bitLen())
	switch {
	case s > n:
		sbit = true
	case s == n:
		r = true
		sbit = m.sticky(uint(s-1)) != 0
	default:
		r = m.bit(uint(s-1)) != 0
		sbit = m.sticky(uint(s-1)) != 0
		q = nat(nil).shr(m, uint(s))
	}
	if !r && !sbit {
		return q, Exact
	}
	inc := false
	switch {
	case away:
		inc = r
	case rnd == ToNearestEven || rnd == Faithful:
		inc = r && (sbit || (len(q) > 0 && q[0]&1 != 0))
	case rnd == AwayFromZero:
		inc = true
	case rnd == ToPositiveInf:
		inc = !x.neg
	case rnd == ToNegativeInf:
		inc = x.neg
	}
	if inc {
		q = nat(nil).incr(q)
	}
	return q, makeAcc(inc != x.neg)
}

// Int64 returns the integer resulting from rounding x with rnd. If x cannot
// be represented in an int64, the result is math.MinInt64 or math.MaxInt64
// and the accuracy reflects the saturation. A NaN yields (0, Exact).
func (x *Float) Int64(rnd RoundingMode) (int64, Accuracy) {
	v, acc, _ := x.int64(rnd)
	return v, acc
}

func (x *Float) int64(rnd RoundingMode) (int64, Accuracy, bool) {
	switch x.form {
	case nan:
		return 0, Exact, false
	case inf:
		if x.neg {
			return math.MinInt64, Above, false
		}
		return math.MaxInt64, Below, false
	}
	i, acc := x.roundInt(rnd, false)
	if i.bitLen() <= 64 {
		u := msbValue(i)
		switch {
		case !x.neg && u <= math.MaxInt64:
			return int64(u), acc, true
		case x.neg && u <= 1<<63:
			return int64(-u), acc, true
		}
	}
	if x.neg {
		return math.MinInt64, Above, false
	}
	return math.MaxInt64, Below, false
}

// Uint64 returns the unsigned integer resulting from rounding x with rnd,
// saturating at 0 or math.MaxUint64.
func (x *Float) Uint64(rnd RoundingMode) (uint64, Accuracy) {
	v, acc, _ := x.uint64(rnd)
	return v, acc
}

func (x *Float) uint64(rnd RoundingMode) (uint64, Accuracy, bool) {
	switch x.form {
	case nan:
		return 0, Exact, false
	case inf:
		if x.neg {
			return 0, Above, false
		}
		return math.MaxUint64, Below, false
	}
	i, acc := x.roundInt(rnd, false)
	if len(i) == 0 {
		return 0, acc, true
	}
	if x.neg {
		return 0, Above, false
	}
	if i.bitLen() > 64 {
		return math.MaxUint64, Below, false
	}
	return msbValue(i), acc, true
}

// msbValue returns the value of x, which must fit in 64 bits.
func msbValue(x nat) uint64 {
	var u uint64
	for i := len(x) - 1; i >= 0; i-- {
		u = u<<(_W%64) | uint64(x[i])
	}
	return u
}

// Int64 is like x.Int64 but raises Erange if x is NaN or out of range, or
// Inexact if the result is not exact.
func (c *Context) Int64(x *Float, rnd RoundingMode) int64 {
	v, acc, ok := x.int64(rnd)
	c.convFlags(acc, ok)
	return v
}

// Uint64 is like x.Uint64 but raises Erange if x is NaN or out of range, or
// Inexact if the result is not exact.
func (c *Context) Uint64(x *Float, rnd RoundingMode) uint64 {
	v, acc, ok := x.uint64(rnd)
	c.convFlags(acc, ok)
	return v
}

func (c *Context) convFlags(acc Accuracy, ok bool) {
	switch {
	case !ok:
		c.raise(Erange)
	case acc != Exact:
		c.raise(Inexact)
	}
}

// fits reports whether x rounded to an integer with rnd fits in a signed or
// unsigned integer of width n.
func (x *Float) fits(rnd RoundingMode, n uint, signed bool) bool {
	if x.form == nan || x.form == inf {
		return false
	}
	i, _ := x.roundInt(rnd, false)
	l := i.bitLen()
	switch {
	case len(i) == 0:
		return true
	case !signed:
		return !x.neg && l <= n
	case x.neg:
		// -2**(n-1) fits
		return l < n || l == n && i.isPow2()
	}
	return l < n
}

// FitsInt64 reports whether x rounded with rnd fits in an int64.
func (x *Float) FitsInt64(rnd RoundingMode) bool { return x.fits(rnd, 64, true) }

// FitsUint64 reports whether x rounded with rnd fits in a uint64.
func (x *Float) FitsUint64(rnd RoundingMode) bool { return x.fits(rnd, 64, false) }

// FitsInt32 reports whether x rounded with rnd fits in an int32.
func (x *Float) FitsInt32(rnd RoundingMode) bool { return x.fits(rnd, 32, true) }

// FitsUint32 reports whether x rounded with rnd fits in a uint32.
func (x *Float) FitsUint32(rnd RoundingMode) bool { return x.fits(rnd, 32, false) }

// FitsInt16 reports whether x rounded with rnd fits in an int16.
func (x *Float) FitsInt16(rnd RoundingMode) bool { return x.fits(rnd, 16, true) }

// FitsUint16 reports whether x rounded with rnd fits in a uint16.
func (x *Float) FitsUint16(rnd RoundingMode) bool { return x.fits(rnd, 16, false) }

// FitsInt8 reports whether x rounded with rnd fits in an int8.
func (x *Float) FitsInt8(rnd RoundingMode) bool { return x.fits(rnd, 8, true) }

// FitsUint8 reports whether x rounded with rnd fits in a uint8.
func (x *Float) FitsUint8(rnd RoundingMode) bool { return x.fits(rnd, 8, false) }

// ToInt converts x, rounded to an integer with rnd, to the integer type T.
// It returns an error wrapping ErrNotFinite for NaN and infinities, and one
// wrapping ErrOverflow if the value does not fit in T.
func ToInt[T constraints.Integer](x *Float, rnd RoundingMode) (T, error) {
	if x.form == nan || x.form == inf {
		return 0, errors.Wrapf(ErrNotFinite, "converting %s", x.String())
	}
	if x.neg {
		v, _, ok := x.int64(rnd)
		if !ok {
			return 0, errors.Wrapf(ErrOverflow, "%s does not fit in an int64", x.String())
		}
		return checked.FromInt64[T](v)
	}
	v, _, ok := x.uint64(rnd)
	if !ok {
		return 0, errors.Wrapf(ErrOverflow, "%s does not fit in a uint64", x.String())
	}
	return checked.FromUint64[T](v)
}

// Int returns the result of rounding x to an integer with rnd and the
// ternary value of that rounding. If a non-nil *big.Int argument z is
// provided, Int stores the result in z instead of allocating a new Int. If
// x is an infinity or NaN, the result is nil.
func (x *Float) Int(z *big.Int, rnd RoundingMode) (*big.Int, Accuracy) {
	if x.form == nan || x.form == inf {
		return nil, Exact
	}
	i, acc := x.roundInt(rnd, false)
	if z == nil {
		z = new(big.Int)
	}
	z.SetBits(nat(nil).set(i))
	if x.neg {
		z.Neg(z)
	}
	return z, acc
}

// Int is like x.Int but raises Erange for infinities and NaN, and Inexact
// for an inexact result.
func (c *Context) Int(z *big.Int, x *Float, rnd RoundingMode) (*big.Int, Accuracy) {
	r, acc := x.Int(z, rnd)
	c.convFlags(acc, r != nil)
	return r, acc
}

// IntExp returns an integer m and an exponent e such that x = m × 2**e
// exactly. If a non-nil *big.Int z is provided, it is used to store m. The
// result is nil for infinities and NaN.
func (x *Float) IntExp(z *big.Int) (*big.Int, int64) {
	if x.form == nan || x.form == inf {
		return nil, 0
	}
	if z == nil {
		z = new(big.Int)
	}
	if x.form == zero {
		return z.SetInt64(0), 0
	}
	m, e := x.exact()
	z.SetBits(nat(nil).set(m))
	if x.neg {
		z.Neg(z)
	}
	return z, e
}

// Rat returns the exact rational value of x. If a non-nil *big.Rat z is
// provided, Rat stores the result in z. It returns an error wrapping
// ErrNotFinite for infinities and NaN.
func (x *Float) Rat(z *big.Rat) (*big.Rat, error) {
	m, e := x.IntExp(nil)
	if m == nil {
		return nil, errors.Wrap(ErrNotFinite, "Rat")
	}
	if z == nil {
		z = new(big.Rat)
	}
	switch {
	case e >= 0:
		z.SetInt(m.Lsh(m, uint(e)))
	default:
		d := new(big.Int).Lsh(big.NewInt(1), uint(-e))
		z.SetFrac(m, d)
	}
	return z, nil
}

// BigFloat returns the exact value of x as a *big.Float with x's precision.
// If a non-nil z is provided, it is used to store the result. It returns an
// error wrapping ErrNotFinite for NaN and one wrapping ErrExpRange if x's
// exponent does not fit in a big.Float.
func (x *Float) BigFloat(z *big.Float) (*big.Float, error) {
	if z == nil {
		z = new(big.Float)
	}
	prec := uint(x.prec)
	if prec == 0 {
		prec = DefaultPrec
	}
	z.SetPrec(prec)
	switch x.form {
	case nan:
		return nil, errors.Wrap(ErrNotFinite, "BigFloat")
	case inf:
		return z.SetInf(x.neg), nil
	case zero:
		z.SetInt64(0)
		if x.neg {
			z.Neg(z)
		}
		return z, nil
	}
	if x.exp < big.MinExp || x.exp > big.MaxExp {
		return nil, errors.Wrapf(ErrExpRange, "exponent %d", x.exp)
	}
	m, e := x.IntExp(nil)
	z.SetInt(m)
	return z.SetMantExp(z, int(e)), nil
}
