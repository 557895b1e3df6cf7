// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"math/bits"

	"github.com/db47h/mpfr"
)

// sqrExp returns a lower bound of x² log2(e) for a regular x, saturated
// at 2**62.
func sqrExp(x *mpfr.Float) float64 {
	if x.Exp() > 31 {
		return 1 << 62
	}
	f, _ := x.Float64(mpfr.ToZero)
	return f * f * log2e
}

// erfKernel sets t to erf(x) for a regular x > 0 and returns the exponent of
// its relative error. It uses the series with positive terms
//
//	erf(x) = 2x/√π e**(-x²) Σ (2x²)**k / (1×3×...×(2k+1))
func erfKernel(w *mpfr.Context, t, x *mpfr.Float) int64 {
	q := t.Prec() + 2*uint(bits.Len(t.Prec())) + 8
	x2 := nf(2 * x.Prec())
	w.Sqr(x2, x, rn)
	x2f, _ := x2.Float64(mpfr.ToZero)
	var (
		tx   = nf(q)
		term = nf(q)
		s    = nf(q)
		n    int64
	)
	w.Mul2Exp(tx, x2, 1, rn)
	w.Set(term, one, rn)
	w.Set(s, one, rn)
	for n = 1; ; n++ {
		w.Mul(term, term, tx, rn)
		w.QuoInt64(term, term, 2*n+1, rn)
		// past the largest term the ratio stays below 1/2
		if term.Exp() < s.Exp()-int64(q)-2 && 4*x2f < float64(2*n+1) {
			break
		}
		w.Add(s, s, term, rn)
	}
	e := nf(q)
	w.Neg(x2, x2, rn)
	ee := expKernel(w, e, x2)
	w.Mul(s, s, e, rn)
	w.Mul(s, s, x, rn)
	sp := pi(w, q)
	w.Sqrt(sp, sp, rn)
	w.Quo(s, s, sp, rn)
	w.Mul2Exp(t, s, 1, rn)
	return max64(max64(2*lenInt(n)+1-int64(q), 1-ee), 1-int64(q)) + 3
}

// Erf sets z to the error function of x rounded with rnd. Erf(±0) = ±0,
// Erf(±Inf) = ±1 and Erf(NaN) = NaN.
func Erf(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN():
		return setNaN(c, z)
	case x.IsZero():
		return c.Set(z, x, rnd)
	case x.IsInf():
		return c.SetInt64(z, int64(x.Sign()), rnd)
	}
	s := one
	if x.Signbit() {
		s = minusOne
	}
	// 1 - |erf(x)| = erfc|x| <= e**(-x²)
	if q := nudgePrec(c, z, s); sqrExp(x) > float64(q)+2 {
		return nudge(c, z, s, x.Signbit(), rnd)
	}
	ax := absOf(x)
	return ziv(c, z, rnd, "Erf", func(w *mpfr.Context, t *mpfr.Float) int64 {
		u := nf(t.Prec() + 10)
		re := erfKernel(w, u, ax)
		if x.Signbit() {
			w.Neg(u, u, rn)
		}
		w.Set(t, u, rn)
		return errFromAbs(t, u.Exp()+re)
	})
}

// erfcAsymptotic sets t to erfc(x) for x² log2(e) >= prec t + 16 and returns
// the exponent of its relative error. The series diverges: summation stops
// at the first term that does not decrease, which then bounds the remainder.
//
//	erfc(x) = e**(-x²)/(x√π) Σ (-1)**k (2k-1)!!/(2x²)**k
func erfcAsymptotic(w *mpfr.Context, t, x *mpfr.Float) int64 {
	q := t.Prec() + 10
	x2 := nf(2 * x.Prec())
	w.Sqr(x2, x, rn)
	var (
		itx  = nf(q)
		term = nf(q)
		s    = nf(q)
		n    int64
		te   = -int64(q) - 2
		prev = int64(1)
	)
	w.Mul2Exp(itx, x2, 1, rn)
	w.Quo(itx, one, itx, rn)
	w.Set(term, one, rn)
	w.Set(s, one, rn)
	for n = 1; ; n++ {
		w.Mul(term, term, itx, rn)
		w.MulInt64(term, term, -(2*n - 1), rn)
		// the term is below 2**-(q+2): the remainder is bounded by
		// the first omitted term
		if term.Exp() < -int64(q)-2 {
			break
		}
		if term.Exp() > prev {
			te = term.Exp()
			break
		}
		prev = term.Exp()
		w.Add(s, s, term, rn)
	}
	e := nf(q)
	w.Neg(x2, x2, rn)
	ee := expKernel(w, e, x2)
	w.Mul(s, s, e, rn)
	sp := pi(w, q)
	w.Sqrt(sp, sp, rn)
	w.Mul(sp, sp, x, rn)
	w.Quo(t, s, sp, rn)
	return max64(max64(lenInt(n)+3-int64(q), 1-ee), te+1) + 3
}

// Erfc sets z to the complementary error function 1 - erf(x) rounded with
// rnd. Erfc(±0) = 1, Erfc(+Inf) = +0, Erfc(-Inf) = 2 and Erfc(NaN) = NaN.
func Erfc(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN():
		return setNaN(c, z)
	case x.IsZero():
		return c.Set(z, one, rnd)
	case x.IsInf():
		if x.Signbit() {
			return c.Set(z, two, rnd)
		}
		return setZero(c, z, false)
	}
	if x.Signbit() {
		// erfc(x) = 2 - erfc|x|
		if q := nudgePrec(c, z, two); sqrExp(x) > float64(q)+2 {
			return nudge(c, z, two, false, rnd)
		}
	} else if sqrExp(x) > float64(-c.Emin())+2 {
		// erfc(x) < e**(-x²)
		return underflow(c, z, false, rnd)
	}
	// |erfc(x) - 1| < 2|x|/√π
	if tiny(c, z, one, x.Exp()+1) {
		return nudge(c, z, one, x.Signbit(), rnd)
	}
	ax := absOf(x)
	return ziv(c, z, rnd, "Erfc", func(w *mpfr.Context, t *mpfr.Float) int64 {
		wp := t.Prec()
		if x.Signbit() {
			u := nf(wp + 10)
			re := erfKernel(w, u, ax)
			w.Add(t, u, one, rn)
			return errFromAbs(t, u.Exp()+re+1)
		}
		l := sqrExp(x)
		if l >= float64(wp)+16 {
			re := erfcAsymptotic(w, t, x)
			return errFromAbs(t, t.Exp()+re)
		}
		// 1 - erf(x) loses up to x² log2(e) bits
		u := nf(wp + uint(l) + 10)
		re := erfKernel(w, u, x)
		w.Sub(t, one, u, rn)
		return errFromAbs(t, u.Exp()+re+1)
	})
}
