// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfr

import (
	"math/big"
)

// Rint sets z to x rounded to an integer with rnd: the result is the
// representable integer nearest to x in the direction of rnd. The Inexact
// flag is raised if z differs from x.
func (c *Context) Rint(z, x *Float, rnd RoundingMode) Accuracy {
	return c.rint(z, x, rnd, false)
}

// Ceil sets z to the smallest representable integer not less than x.
func (c *Context) Ceil(z, x *Float) Accuracy {
	return c.rint(z, x, ToPositiveInf, false)
}

// Floor sets z to the largest representable integer not greater than x.
func (c *Context) Floor(z, x *Float) Accuracy {
	return c.rint(z, x, ToNegativeInf, false)
}

// Trunc sets z to the representable integer nearest to x toward zero.
func (c *Context) Trunc(z, x *Float) Accuracy {
	return c.rint(z, x, ToZero, false)
}

// Round sets z to the representable integer nearest to x, rounding halfway
// cases away from zero.
func (c *Context) Round(z, x *Float) Accuracy {
	return c.rint(z, x, toNearestAway, true)
}

// RoundEven sets z to the representable integer nearest to x, rounding
// halfway cases to an even integer.
func (c *Context) RoundEven(z, x *Float) Accuracy {
	return c.rint(z, x, ToNearestEven, false)
}

func (c *Context) rint(z, x *Float, rnd RoundingMode, away bool) Accuracy {
	c.prepare(z)
	switch x.form {
	case nan:
		return c.setNaN(z)
	case inf:
		z.SetInf(x.neg)
		return Exact
	case zero:
		z.SetZero(x.neg)
		return Exact
	}
	i, acc := x.roundInt(rnd, away)
	if len(i) == 0 {
		z.SetZero(x.neg)
		c.raise(Inexact)
		return acc
	}
	if i.bitLen()-i.trailingZeroBits() <= uint(z.prec) {
		// representable: the rounding is exact
		c.round(z, x.neg, i, 0, false, rnd)
	} else {
		// |x| >= 2**prec: all representable values around x are integers
		m, e := x.exact()
		acc = c.round(z, x.neg, m, e, false, rnd)
	}
	if acc != Exact {
		c.raise(Inexact)
	}
	return acc
}

// Frac sets z to the fractional part of x, x - Trunc(x), with the sign of x.
func (c *Context) Frac(z, x *Float, rnd RoundingMode) Accuracy {
	c.prepare(z)
	switch x.form {
	case nan, inf:
		return c.setNaN(z)
	case zero:
		z.SetZero(x.neg)
		return Exact
	}
	m, e := x.exact()
	if e >= 0 {
		z.SetZero(x.neg)
		return Exact
	}
	f := nat(nil).set(m)
	if s := uint64(-e); s < uint64(f.bitLen()) {
		// keep the s low bits
		w := int(s / _W)
		f = f[:w+1]
		f[w] &= 1<<(s%_W) - 1
	}
	return c.round(z, x.neg, f, e, false, rnd)
}

// Modf sets iz to the integral part of x and fz to its fractional part,
// both with the sign of x, and returns the ternary values of both. iz and
// fz must be distinct.
func (c *Context) Modf(iz, fz, x *Float, rnd RoundingMode) (iacc, facc Accuracy) {
	if iz == fz {
		panic("mpfr: Modf with identical destinations")
	}
	if x == iz || x == fz {
		x = new(Float).Copy(x)
	}
	if x.form == inf {
		c.prepare(fz)
		fz.SetZero(x.neg)
		return c.Set(iz, x, rnd), Exact
	}
	facc = c.Frac(fz, x, rnd)
	m, e := x.exact()
	if x.form == finite && e < 0 {
		s := uint(-e)
		if s >= m.bitLen() {
			c.prepare(iz)
			iz.SetZero(x.neg)
			return Exact, facc
		}
		q := nat(nil).shr(m, s)
		return c.round(iz, x.neg, q, 0, false, rnd), facc
	}
	return c.Set(iz, x, rnd), facc
}

// Fmod sets z to x - n×y, where n is x/y truncated toward zero. The result
// has the sign of x.
func (c *Context) Fmod(z, x, y *Float, rnd RoundingMode) Accuracy {
	acc, _ := c.remquo(z, x, y, false, rnd)
	return acc
}

// Remainder sets z to x - n×y, where n is the integer nearest to x/y, with
// ties to even.
func (c *Context) Remainder(z, x, y *Float, rnd RoundingMode) Accuracy {
	acc, _ := c.remquo(z, x, y, true, rnd)
	return acc
}

// Remquo is like Remainder, and also returns the low 63 bits of n, with the
// sign of x/y.
func (c *Context) Remquo(z, x, y *Float, rnd RoundingMode) (Accuracy, int64) {
	return c.remquo(z, x, y, true, rnd)
}

func (c *Context) remquo(z, x, y *Float, nearest bool, rnd RoundingMode) (Accuracy, int64) {
	c.prepare(z)
	switch {
	case x.form == nan || y.form == nan || x.form == inf || y.form == zero:
		return c.setNaN(z), 0
	case y.form == inf || x.form == zero:
		return c.Set(z, x, rnd), 0
	}
	xm, xe := x.exact()
	ym, ye := y.exact()
	e := min64(xe, ye)
	Y := nat(nil).shl(ym, uint(ye-e)).int()

	// X mod (Y×2**64) yields both the remainder and the low bits of the
	// quotient.
	mod := new(big.Int).Lsh(Y, 64)
	X := new(big.Int)
	if k := xe - e; k <= 1<<16 {
		X.Lsh(xm.int(), uint(k))
		X.Mod(X, mod)
	} else {
		X.Exp(big.NewInt(2), big.NewInt(k), mod)
		X.Mul(X, xm.int())
		X.Mod(X, mod)
	}
	q, r := new(big.Int).QuoRem(X, Y, new(big.Int))
	quo := q.Uint64()
	neg := x.neg
	if nearest {
		t := new(big.Int).Lsh(r, 1)
		if d := t.Cmp(Y); d > 0 || d == 0 && quo&1 != 0 {
			r.Sub(Y, r)
			neg = !neg
			quo++
		}
	}
	n := int64(quo &^ (1 << 63))
	if x.neg != y.neg {
		n = -n
	}
	if r.Sign() == 0 {
		z.SetZero(x.neg)
		return Exact, n
	}
	return c.round(z, neg, nat(r.Bits()), e, false, rnd), n
}

// NextAbove replaces x by the next representable value toward +Inf, within
// the exponent range of c.
func (c *Context) NextAbove(x *Float) {
	c.next(x, false)
}

// NextBelow replaces x by the next representable value toward -Inf, within
// the exponent range of c.
func (c *Context) NextBelow(x *Float) {
	c.next(x, true)
}

// NextToward replaces x by the next representable value toward y. x is
// unchanged if x == y. If x or y is NaN, x is set to NaN.
func (c *Context) NextToward(x, y *Float) {
	if x.form == nan || y.form == nan {
		c.setNaN(x)
		return
	}
	switch x.cmp(y) {
	case -1:
		c.next(x, false)
	case 1:
		c.next(x, true)
	}
}

// next moves x by one ulp toward -Inf if down is set, or toward +Inf.
func (c *Context) next(x *Float, down bool) {
	c.prepare(x)
	switch x.form {
	case nan:
		c.setNaN(x)
		return
	case zero:
		x.setMin(down, c.emin)
		return
	case inf:
		if x.neg != down {
			x.setMax(x.neg, c.emax)
		}
		return
	}
	ulp := Word(1) << (uint(len(x.mant))*_W - uint(x.prec))
	if x.neg == down {
		// away from zero
		if addVW(x.mant, x.mant, ulp) != 0 {
			x.mant[len(x.mant)-1] = 1 << (_W - 1)
			if x.exp >= c.emax {
				x.SetInf(x.neg)
				return
			}
			x.exp++
		}
		return
	}
	// toward zero
	subVW(x.mant, x.mant, ulp)
	if x.mant[len(x.mant)-1]&(1<<(_W-1)) == 0 {
		// was a power of two
		if x.exp <= c.emin {
			x.SetZero(x.neg)
			return
		}
		x.exp--
		x.setMax(x.neg, x.exp)
	}
}

// Cmp compares x and y and returns:
//
//	-1 if x <  y
//	 0 if x == y (incl. -0 == 0, -Inf == -Inf, and +Inf == +Inf)
//	+1 if x >  y
//
// If x or y is NaN, the result is 0 and the Erange flag is raised.
func (c *Context) Cmp(x, y *Float) int {
	if x.form == nan || y.form == nan {
		c.raise(Erange)
		return 0
	}
	return x.cmp(y)
}

// CmpAbs compares |x| and |y|. If x or y is NaN, the result is 0 and the
// Erange flag is raised.
func (c *Context) CmpAbs(x, y *Float) int {
	if x.form == nan || y.form == nan {
		c.raise(Erange)
		return 0
	}
	return x.CmpAbs(y)
}

// CmpInt64 compares x and y.
func (c *Context) CmpInt64(x *Float, y int64) int {
	return c.Cmp(x, exactInt64(y))
}

// CmpFloat64 compares x and y. If y is NaN, the Erange flag is raised.
func (c *Context) CmpFloat64(x *Float, y float64) int {
	return c.Cmp(x, exactFloat64(y))
}

// CmpInt compares x and y.
func (c *Context) CmpInt(x *Float, y *big.Int) int {
	return c.Cmp(x, exactInt(y))
}

// CmpRat compares x and y.
func (c *Context) CmpRat(x *Float, y *big.Rat) int {
	if x.form == nan {
		c.raise(Erange)
		return 0
	}
	if x.form != finite || y.Sign() == 0 {
		return x.cmp(ratSign(y))
	}
	if xs, ys := x.Sign(), y.Sign(); xs != ys {
		if xs < ys {
			return -1
		}
		return 1
	}
	r := ucmpRat(x, y)
	if x.neg {
		return -r
	}
	return r
}

// ucmpRat compares |x| and |y|, both nonzero.
func ucmpRat(x *Float, y *big.Rat) int {
	a := new(big.Int).Abs(y.Num())
	b := y.Denom()
	// 2**(la-lb-1) < |y| < 2**(la-lb+1)
	l := int64(a.BitLen()) - int64(b.BitLen())
	switch {
	case x.exp-1 >= l+1:
		return 1
	case x.exp <= l-1:
		return -1
	}
	m, e := x.exact()
	lhs := new(big.Int).Mul(m.int(), b)
	if e >= 0 {
		lhs.Lsh(lhs, uint(e))
	} else {
		a.Lsh(a, uint(-e))
	}
	return lhs.Cmp(a)
}
