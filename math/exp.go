// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"math/big"
	"math/bits"

	"github.com/db47h/mpfr"
)

const (
	log2e   = 1.4426950408889634 // log2(e)
	log2ten = 3.3219280948873622 // log2(10)
)

// expRange reports whether base**x, for a regular x and log2b = log2(base),
// certainly overflows (+1) or underflows (-1) the exponent range of c.
func expRange(c *mpfr.Context, x *mpfr.Float, log2b float64) int {
	f, _ := x.Float64(mpfr.ToZero)
	e := f * log2b
	// the float64 estimate is off by at most |e|×2**-50 < 4096 in range
	switch {
	case e > float64(c.Emax())+4096:
		return 1
	case e < float64(c.Emin())-4096:
		return -1
	}
	return 0
}

// expSeries sets u to exp(s) for |s| < 1/2 with the Taylor series at u's
// precision and returns the number of terms. The relative error on u is
// below (n+1)×2**(1-prec u).
func expSeries(w *mpfr.Context, u, s *mpfr.Float) int64 {
	p := u.Prec()
	term := nf(p)
	w.Set(term, one, rn)
	w.Set(u, one, rn)
	var i int64
	for i = 1; ; i++ {
		w.Mul(term, term, s, rn)
		w.QuoInt64(term, term, i, rn)
		if term.IsZero() || term.Exp() < -int64(p)-2 {
			break
		}
		w.Add(u, u, term, rn)
	}
	return i
}

// expKernel sets t to exp(y) for an exact, regular y with |y| < 2**61 and
// returns the error count of t.
//
// y is reduced to r = y - n×log(2) with |r| <= log(2)/2, then divided by 2**k
// before the Taylor series and the result squared k times.
func expKernel(w *mpfr.Context, t, y *mpfr.Float) int64 {
	wp := t.Prec()
	q := wp + uint(max64(y.Exp(), 0)) + 10
	r := nf(q)
	var n int64
	if y.Exp() > 0 {
		l2 := log2(w, q)
		w.Quo(r, y, l2, rn)
		n, _ = r.Int64(mpfr.ToNearestEven)
		w.MulInt64(r, l2, n, rn)
		w.Sub(r, y, r, rn)
	} else {
		w.Set(r, y, rn)
	}
	// |r - (y - n log 2)| < 2**(-wp-7)

	k := uint(1)
	for 4*k*k < wp {
		k++
	}
	sp := wp + k + uint(bits.Len(wp)) + 12
	if sp < q {
		sp = q
	}
	u := nf(sp)
	s := nf(sp)
	w.Quo2Exp(s, r, int64(k), rn)
	expSeries(w, u, s)
	for i := uint(0); i < k; i++ {
		w.Sqr(u, u, rn)
	}
	w.Mul2Exp(t, u, n, rn)
	return int64(wp) - 2
}

// Exp sets z to e**x rounded with rnd.
//
// Special cases are:
//
//	Exp(NaN) = NaN
//	Exp(±0) = 1
//	Exp(+Inf) = +Inf
//	Exp(-Inf) = +0
//
// Results outside the exponent range of c overflow or underflow.
func Exp(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN():
		return setNaN(c, z)
	case x.IsInf():
		if x.Signbit() {
			return setZero(c, z, false)
		}
		return setInf(c, z, false)
	case x.IsZero():
		return c.Set(z, one, rnd)
	}
	switch expRange(c, x, log2e) {
	case 1:
		return overflow(c, z, false, rnd)
	case -1:
		return underflow(c, z, false, rnd)
	}
	// |e**x - 1| < 2|x| for |x| < 1
	if tiny(c, z, one, x.Exp()+1) {
		return nudge(c, z, one, x.Sign() > 0, rnd)
	}
	return ziv(c, z, rnd, "Exp", func(w *mpfr.Context, t *mpfr.Float) int64 {
		return expKernel(w, t, x)
	})
}

// Exp2 sets z to 2**x rounded with rnd. The result is exact for integer x
// within the exponent range.
func Exp2(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN():
		return setNaN(c, z)
	case x.IsInf():
		if x.Signbit() {
			return setZero(c, z, false)
		}
		return setInf(c, z, false)
	case x.IsZero():
		return c.Set(z, one, rnd)
	}
	if c.CmpInt64(x, c.Emax()) >= 0 {
		return overflow(c, z, false, rnd)
	}
	if c.CmpInt64(x, c.Emin()-2) < 0 {
		return underflow(c, z, false, rnd)
	}
	if x.IsInt() {
		n, _ := x.Int64(mpfr.ToZero)
		return c.Mul2Exp(z, one, n, rnd)
	}
	// |2**x - 1| < |x| for |x| < 1
	if tiny(c, z, one, x.Exp()) {
		return nudge(c, z, one, x.Sign() > 0, rnd)
	}
	// 2**x = e**(f log 2) × 2**n with n = floor(x)
	w := c.Extended()
	f := nf(x.Prec() + uint(max64(-x.Exp(), 0)) + 2)
	w.Frac(f, x, rn)
	n, _ := x.Int64(mpfr.ToNegativeInf)
	if f.Sign() < 0 {
		w.AddInt64(f, f, 1, rn)
	}
	return ziv(c, z, rnd, "Exp2", func(w *mpfr.Context, t *mpfr.Float) int64 {
		wp := t.Prec()
		y := nf(wp + 10)
		w.Mul(y, f, log2(w, wp+10), rn)
		err := expKernel(w, t, y)
		w.Mul2Exp(t, t, n, rn)
		return err - 1
	})
}

// maxExactPow10 bounds the exponents n for which Exp10 computes 10**n exactly
// before rounding.
func maxExactPow10(p uint) int64 {
	return 4*int64(p) + 256
}

// Exp10 sets z to 10**x rounded with rnd. The result is correctly rounded
// for integer x as well.
func Exp10(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN():
		return setNaN(c, z)
	case x.IsInf():
		if x.Signbit() {
			return setZero(c, z, false)
		}
		return setInf(c, z, false)
	case x.IsZero():
		return c.Set(z, one, rnd)
	}
	switch expRange(c, x, log2ten) {
	case 1:
		return overflow(c, z, false, rnd)
	case -1:
		return underflow(c, z, false, rnd)
	}
	if x.IsInt() {
		if n, _ := x.Int64(mpfr.ToZero); n <= maxExactPow10(targetPrec(c, z)) && -n <= maxExactPow10(targetPrec(c, z)) {
			p := new(big.Int).Exp(big.NewInt(10), big.NewInt(abs64(n)), nil)
			if n > 0 {
				return c.SetInt(z, p, rnd)
			}
			return c.SetRat(z, new(big.Rat).SetFrac(big.NewInt(1), p), rnd)
		}
	}
	// |10**x - 1| < 4|x| for |x| < 1/4
	if tiny(c, z, one, x.Exp()+2) {
		return nudge(c, z, one, x.Sign() > 0, rnd)
	}
	return ziv(c, z, rnd, "Exp10", func(w *mpfr.Context, t *mpfr.Float) int64 {
		q := t.Prec() + uint(max64(x.Exp(), 0)) + 16
		l10 := nf(q)
		e := logKernel(w, l10, ten)
		y := nf(q)
		w.Mul(y, x, l10, rn)
		// |y - x log 10| <= |x| 2**(EXP(l10)-e) + ulp(y)/2
		ae := max64(x.Exp()+l10.Exp()-e, y.Exp()-int64(q)) + 1
		err := expKernel(w, t, y)
		return errAdd(t, err, t.Exp()+ae+2)
	})
}

// Expm1 sets z to e**x - 1 rounded with rnd.
//
// Special cases are:
//
//	Expm1(±0) = ±0
//	Expm1(+Inf) = +Inf
//	Expm1(-Inf) = -1
//	Expm1(NaN) = NaN
func Expm1(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN():
		return setNaN(c, z)
	case x.IsInf():
		if x.Signbit() {
			return c.Set(z, minusOne, rnd)
		}
		return setInf(c, z, false)
	case x.IsZero():
		return c.Set(z, x, rnd)
	}
	if x.Sign() > 0 && expRange(c, x, log2e) > 0 {
		return overflow(c, z, false, rnd)
	}
	// e**x - 1 - x = x²/2 + ... < x² for |x| < 1, with the sign of +0
	if tiny(c, z, x, 2*x.Exp()) {
		return nudge(c, z, x, true, rnd)
	}
	// e**x < 2**-(q+4) for x < -(q+4)
	if q := int64(nudgePrec(c, z, minusOne)); c.CmpInt64(x, -(q+4)) < 0 {
		return nudge(c, z, minusOne, true, rnd)
	}
	return ziv(c, z, rnd, "Expm1", func(w *mpfr.Context, t *mpfr.Float) int64 {
		return expm1Kernel(w, t, x)
	})
}

// expm1Kernel sets t to e**x - 1 for a regular x with |x| < 2**61 and
// returns its error count.
func expm1Kernel(w *mpfr.Context, t, x *mpfr.Float) int64 {
	wp := t.Prec()
	// cancellation in e**x - 1 loses up to -EXP(x) bits
	ep := wp + uint(max64(-x.Exp(), 0)) + 8
	e := nf(ep)
	err := expKernel(w, e, x)
	ae := e.Exp() - err
	w.Sub(t, e, one, rn)
	return errFromAbs(t, ae)
}

func abs64(i int64) int64 {
	if i < 0 {
		return -i
	}
	return i
}
