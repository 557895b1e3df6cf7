// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"math/big"
	"math/bits"

	"github.com/db47h/mpfr"
	"github.com/db47h/mpfr/internal/checked"
)

// maxExactBits bounds the size of exact intermediate results computed
// before a single rounding to precision p.
func maxExactBits(p uint) int64 {
	return 4*int64(p) + 256
}

// oddInt reports whether x is an odd integer.
func oddInt(x *mpfr.Float) bool {
	if !x.IsInt() || x.IsZero() {
		return false
	}
	// x = m × 2**e with the lowest bit of m at 2**0
	m, e := x.IntExp(nil)
	return int64(m.TrailingZeroBits())+e == 0
}

// oddExp returns m odd and e such that |x| = m × 2**e for a regular x.
func oddExp(x *mpfr.Float) (*big.Int, int64) {
	m, e := x.IntExp(nil)
	m.Abs(m)
	tz := m.TrailingZeroBits()
	m.Rsh(m, tz)
	return m, e + int64(tz)
}

// powSpecial handles x**n for non-regular x, n != 0, and returns true if z
// was set.
func powSpecial(c *mpfr.Context, z, x *mpfr.Float, pos, odd bool) (mpfr.Accuracy, bool) {
	neg := odd && x.Signbit()
	switch {
	case x.IsNaN():
		return setNaN(c, z), true
	case x.IsInf():
		if pos {
			return setInf(c, z, neg), true
		}
		return setZero(c, z, neg), true
	case x.IsZero():
		if pos {
			return setZero(c, z, neg), true
		}
		return pole(c, z, neg), true
	}
	return mpfr.Exact, false
}

// PowInt sets z to x**n rounded with rnd. PowInt(x, 0) is 1 for any x,
// including NaN. Zero raised to a negative power is an infinity and raises
// DivByZero.
func PowInt(c *mpfr.Context, z, x *mpfr.Float, n int64, rnd mpfr.RoundingMode) mpfr.Accuracy {
	if n == 0 {
		return c.Set(z, one, rnd)
	}
	if acc, ok := powSpecial(c, z, x, n > 0, n&1 != 0); ok {
		return acc
	}
	if n == 1 {
		return c.Set(z, x, rnd)
	}
	return powInt(c, z, x, n, rnd)
}

func powInt(c *mpfr.Context, z, x *mpfr.Float, n int64, rnd mpfr.RoundingMode) mpfr.Accuracy {
	neg := n&1 != 0 && x.Signbit()
	m, e := oddExp(x)
	if m.BitLen() == 1 {
		// |x| = 2**e
		e2, err := checked.Mul64(e, n)
		if err != nil {
			if (e > 0) == (n > 0) {
				return overflow(c, z, neg, rnd)
			}
			return underflow(c, z, neg, rnd)
		}
		s := one
		if neg {
			s = minusOne
		}
		return c.Mul2Exp(z, s, e2, rnd)
	}

	// estimate of log2|x**n|
	l := float64(n) * (float64(x.Exp()) - 0.5)
	if l > float64(c.Emax())+float64(abs64(n))+4096 {
		return overflow(c, z, neg, rnd)
	}
	if l < float64(c.Emin())-float64(abs64(n))-4096 {
		return underflow(c, z, neg, rnd)
	}

	p := targetPrec(c, z)
	an := abs64(n)
	if int64(m.BitLen())*an <= maxExactBits(p) {
		// m**|n| × 2**(e n) exactly, then a single rounding
		mn := new(big.Int).Exp(m, big.NewInt(an), nil)
		if neg {
			mn.Neg(mn)
		}
		t := nf(p)
		w := c.Extended()
		var acc mpfr.Accuracy
		if n > 0 {
			acc = w.SetInt(t, mn, rnd)
		} else {
			acc = w.SetRat(t, new(big.Rat).SetFrac(big.NewInt(1), mn), rnd)
		}
		return scale2(c, z, t, acc, e*n, rnd)
	}

	return ziv(c, z, rnd, "PowInt", func(w *mpfr.Context, t *mpfr.Float) int64 {
		return powIntKernel(w, t, x, n)
	})
}

// powIntKernel sets t to x**n for a regular x and n != 0 by repeated
// squaring, and returns its error count.
func powIntKernel(w *mpfr.Context, t, x *mpfr.Float, n int64) int64 {
	an := uint64(abs64(n))
	nb := int64(bits.Len64(an))
	q := t.Prec() + uint(2*nb) + 10
	var (
		y = nf(q)
		u = nf(q)
	)
	w.Set(y, one, rn)
	w.Set(u, x, rn)
	for an > 0 {
		if an&1 != 0 {
			w.Mul(y, y, u, rn)
		}
		an >>= 1
		if an > 0 {
			w.Sqr(u, u, rn)
		}
	}
	if n < 0 {
		w.Quo(y, one, y, rn)
	}
	// relative error below 2**(nb+2-q)
	ae := y.Exp() + nb + 2 - int64(q)
	w.Set(t, y, rn)
	return errFromAbs(t, ae)
}

// Pow sets z to x**y rounded with rnd, with the special cases of the C99
// pow function:
//
//	Pow(x, ±0) = 1 for any x, even NaN
//	Pow(1, y) = 1 for any y, even NaN
//	Pow(x, y) = NaN if x or y is NaN
//	Pow(±0, y) = ±Inf for y an odd integer < 0 (DivByZero)
//	Pow(±0, y) = +Inf for finite y < 0 and not an odd integer (DivByZero)
//	Pow(±0, y) = ±0 for y an odd integer > 0
//	Pow(±0, y) = +0 for finite y > 0 and not an odd integer
//	Pow(-1, ±Inf) = 1
//	Pow(x, +Inf) = +Inf for |x| > 1, +0 for |x| < 1
//	Pow(x, -Inf) = +0 for |x| > 1, +Inf for |x| < 1
//	Pow(-Inf, y) = Pow(-0, -y)
//	Pow(+Inf, y) = +0 for y < 0, +Inf for y > 0
//	Pow(x, y) = NaN for finite x < 0 and finite non-integer y
func Pow(c *mpfr.Context, z, x, y *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case y.IsZero():
		return c.Set(z, one, rnd)
	case x.IsRegular() && c.Cmp(x, one) == 0:
		return c.Set(z, one, rnd)
	case x.IsNaN() || y.IsNaN():
		return setNaN(c, z)
	case y.IsInf():
		if x.IsRegular() && c.Cmp(x, minusOne) == 0 {
			return c.Set(z, one, rnd)
		}
		if x.IsInf() {
			if y.Signbit() {
				return setZero(c, z, false)
			}
			return setInf(c, z, false)
		}
		if (c.CmpAbs(x, one) > 0) != y.Signbit() {
			return setInf(c, z, false)
		}
		return setZero(c, z, false)
	case !x.IsRegular():
		return powSpecialFloat(c, z, x, y)
	}

	if y.IsInt() {
		if n, acc := y.Int64(mpfr.ToZero); acc == mpfr.Exact && y.FitsInt64(mpfr.ToZero) {
			return powInt(c, z, x, n, rnd)
		}
		// huge integer y: |x**y| over- or underflows unless |x| = 1
		neg := x.Signbit() && oddInt(y)
		switch {
		case c.CmpAbs(x, one) == 0:
			if neg {
				return c.Set(z, minusOne, rnd)
			}
			return c.Set(z, one, rnd)
		case (c.CmpAbs(x, one) > 0) != y.Signbit():
			return overflow(c, z, neg, rnd)
		default:
			return underflow(c, z, neg, rnd)
		}
	}
	if x.Signbit() {
		return setNaN(c, z)
	}

	if acc, ok := powExact(c, z, x, y, rnd); ok {
		return acc
	}

	// log2(x**y) estimate
	lx := nf(64)
	logKernel(c.Extended(), lx, x)
	lf, _ := lx.Float64(mpfr.ToZero)
	yf, _ := y.Float64(mpfr.ToZero)
	switch l := yf * lf * log2e; {
	case l > float64(c.Emax())+4096:
		return overflow(c, z, false, rnd)
	case l < float64(c.Emin())-4096:
		return underflow(c, z, false, rnd)
	}
	// |x**y - 1| < 2|y log x| and |log x| < 2**lenInt(|EXP(x)|+1)
	if de := y.Exp() + lenInt(abs64(x.Exp())+1) + 1; tiny(c, z, one, de) {
		return nudge(c, z, one, (c.Cmp(x, one) > 0) != y.Signbit(), rnd)
	}
	return ziv(c, z, rnd, "Pow", func(w *mpfr.Context, t *mpfr.Float) int64 {
		return powKernel(w, t, x, y)
	})
}

// powSpecialFloat handles Pow for x = ±0 or ±Inf and a regular y.
func powSpecialFloat(c *mpfr.Context, z, x, y *mpfr.Float) mpfr.Accuracy {
	odd := oddInt(y)
	pos := y.Sign() > 0
	if x.IsInf() {
		pos = !pos
	}
	neg := odd && x.Signbit()
	if pos {
		return setZero(c, z, neg)
	}
	if x.IsInf() {
		return setInf(c, z, neg)
	}
	return pole(c, z, neg)
}

// powKernel sets t to x**y = e**(y log x) for regular x > 0, x != 1, and
// y, and returns its error count.
func powKernel(w *mpfr.Context, t, x, y *mpfr.Float) int64 {
	wp := t.Prec()
	q := wp + 80
	l := nf(q)
	e1 := logKernel(w, l, x)
	v := nf(q)
	w.Mul(v, y, l, rn)
	// |v - y log x| <= |y| 2**(EXP(l)-e1) + ulp(v)/2
	ae := max64(y.Exp()+l.Exp()-e1, v.Exp()-int64(q)) + 1
	err := expKernel(w, t, v)
	return errAdd(t, err, t.Exp()+ae+2)
}

// powExact handles the cases where x**y is exactly representable for a
// regular x > 0 and a non-integer y = m/2**k: x must then be a 2**k-th
// power.
func powExact(c *mpfr.Context, z, x, y *mpfr.Float, rnd mpfr.RoundingMode) (mpfr.Accuracy, bool) {
	ym, ye := oddExp(y)
	k := -ye // y = ym/2**k, k > 0
	if k > 64 || ym.BitLen() > 63 {
		return mpfr.Exact, false
	}
	w := c.Extended()
	r := nf(x.Prec())
	w.Set(r, x, rn)
	for i := int64(0); i < k; i++ {
		s := nf(r.Prec())
		if w.Sqrt(s, r, rn) != mpfr.Exact {
			return mpfr.Exact, false
		}
		r = s
	}
	n := ym.Int64()
	if y.Signbit() {
		n = -n
	}
	return powInt(c, z, r, n, rnd), true
}

// RecSqrt sets z to 1/√x rounded with rnd.
//
// Special cases are:
//
//	RecSqrt(±0) = +Inf (DivByZero)
//	RecSqrt(+Inf) = +0
//	RecSqrt(x < 0) = NaN
//	RecSqrt(NaN) = NaN
func RecSqrt(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN():
		return setNaN(c, z)
	case x.IsZero():
		return pole(c, z, false)
	case x.Signbit():
		return setNaN(c, z)
	case x.IsInf():
		return setZero(c, z, false)
	}
	if e := x.Exp() - 1; x.MinPrec() == 1 && e&1 == 0 {
		// x = 4**(e/2)
		return c.Mul2Exp(z, one, -e/2, rnd)
	}
	return ziv(c, z, rnd, "RecSqrt", func(w *mpfr.Context, t *mpfr.Float) int64 {
		q := t.Prec() + 10
		s := nf(q)
		w.Sqrt(s, x, rn)
		w.Quo(s, one, s, rn)
		w.Set(t, s, rn)
		// relative error below 2**(2-q)
		return errFromAbs(t, s.Exp()+2-int64(q))
	})
}

// Hypot sets z to √(x²+y²) rounded with rnd, without intermediate overflow
// or underflow. Hypot(±Inf, y) and Hypot(x, ±Inf) are +Inf even if the
// other operand is NaN.
func Hypot(c *mpfr.Context, z, x, y *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsInf() || y.IsInf():
		return setInf(c, z, false)
	case x.IsNaN() || y.IsNaN():
		return setNaN(c, z)
	case x.IsZero():
		return c.Abs(z, y, rnd)
	case y.IsZero():
		return c.Abs(z, x, rnd)
	}
	if c.CmpAbs(x, y) < 0 {
		x, y = y, x
	}
	ax := nf(x.Prec())
	c.Extended().Abs(ax, x, rn)
	// √(x²+y²) - |x| < y²/(2|x|) <= 2**(2 EXP(y) - EXP(x))
	if tiny(c, z, ax, 2*y.Exp()-x.Exp()) {
		return nudge(c, z, ax, true, rnd)
	}

	// scale by 2**-E to avoid intermediate overflow, then sum exactly
	E := x.Exp()
	w := c.Extended()
	var (
		px = 2 * x.Prec()
		py = 2 * y.Prec()
		xs = nf(x.Prec())
		ys = nf(y.Prec())
		x2 = nf(px)
		y2 = nf(py)
	)
	w.Mul2Exp(xs, x, -E, rn)
	w.Mul2Exp(ys, y, -E, rn)
	w.Sqr(x2, xs, rn)
	w.Sqr(y2, ys, rn)
	// x2 in [1/4, 1); y2's lowest bit is at 2**(2 EXP(ys) - py)
	lo := min64(-int64(px), 2*ys.Exp()-int64(py))
	s := nf(uint(1 - lo))
	w.Add(s, x2, y2, rn)

	t := nf(targetPrec(c, z))
	acc := w.Sqrt(t, s, rnd)
	return scale2(c, z, t, acc, E, rnd)
}
