// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"github.com/db47h/mpfr"
)

// absOf returns |x| sharing nothing with x.
func absOf(x *mpfr.Float) *mpfr.Float {
	a := nf(x.Prec())
	wideCtx.Abs(a, x, rn)
	return a
}

// Sinh sets z to the hyperbolic sine of x rounded with rnd. Sinh(±0) = ±0,
// Sinh(±Inf) = ±Inf and Sinh(NaN) = NaN.
func Sinh(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN():
		return setNaN(c, z)
	case x.IsZero() || x.IsInf():
		return c.Set(z, x, rnd)
	}
	// sinh(x) - x ≈ x³/6, with the sign of x
	if tiny(c, z, x, 3*x.Exp()-2) {
		return nudge(c, z, x, !x.Signbit(), rnd)
	}
	ax := absOf(x)
	if expRange(c, ax, log2e) > 0 {
		return overflow(c, z, x.Signbit(), rnd)
	}
	return ziv(c, z, rnd, "Sinh", func(w *mpfr.Context, t *mpfr.Float) int64 {
		// sinh|x| = (E + E/(E+1))/2 with E = e**|x| - 1 > 0
		q := t.Prec() + 10
		E := nf(q)
		e1 := expm1Kernel(w, E, ax)
		u := nf(q)
		w.AddInt64(u, E, 1, rn)
		w.Quo(u, E, u, rn)
		w.Add(u, u, E, rn)
		w.Quo2Exp(u, u, 1, rn)
		if x.Signbit() {
			w.Neg(u, u, rn)
		}
		// relative error of E below 2**(1-e1): all terms are positive
		ae := u.Exp() + max64(3-e1, 3-int64(q))
		w.Set(t, u, rn)
		return errFromAbs(t, ae)
	})
}

// Cosh sets z to the hyperbolic cosine of x rounded with rnd. Cosh(±0) = 1,
// Cosh(±Inf) = +Inf and Cosh(NaN) = NaN.
func Cosh(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN():
		return setNaN(c, z)
	case x.IsZero():
		return c.Set(z, one, rnd)
	case x.IsInf():
		return setInf(c, z, false)
	}
	// 1 < cosh(x) < 1 + x²
	if tiny(c, z, one, 2*x.Exp()) {
		return nudge(c, z, one, true, rnd)
	}
	ax := absOf(x)
	if expRange(c, ax, log2e) > 0 {
		return overflow(c, z, false, rnd)
	}
	return ziv(c, z, rnd, "Cosh", func(w *mpfr.Context, t *mpfr.Float) int64 {
		// cosh|x| = (e + 1/e)/2
		q := t.Prec() + 10
		e := nf(q)
		e1 := expKernel(w, e, ax)
		u := nf(q)
		w.Quo(u, one, e, rn)
		w.Add(u, u, e, rn)
		w.Quo2Exp(u, u, 1, rn)
		ae := u.Exp() + max64(3-e1, 3-int64(q))
		w.Set(t, u, rn)
		return errFromAbs(t, ae)
	})
}

// Tanh sets z to the hyperbolic tangent of x rounded with rnd. Tanh(±0) =
// ±0, Tanh(±Inf) = ±1 and Tanh(NaN) = NaN.
func Tanh(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN():
		return setNaN(c, z)
	case x.IsZero():
		return c.Set(z, x, rnd)
	case x.IsInf():
		return c.SetInt64(z, int64(x.Sign()), rnd)
	}
	// tanh(x) - x ≈ -x³/3, with the sign of -x
	if tiny(c, z, x, 3*x.Exp()-1) {
		return nudge(c, z, x, x.Signbit(), rnd)
	}
	ax := absOf(x)
	// 1 - tanh|x| < 2 e**(-2|x|) < 2**(1-2|x|)
	s := one
	if x.Signbit() {
		s = minusOne
	}
	if q := int64(nudgePrec(c, z, s)); c.CmpInt64(ax, q/2+4) > 0 {
		return nudge(c, z, s, x.Signbit(), rnd)
	}
	return ziv(c, z, rnd, "Tanh", func(w *mpfr.Context, t *mpfr.Float) int64 {
		// tanh|x| = E/(E+2) with E = e**(2|x|) - 1 > 0
		q := t.Prec() + 10
		a2 := nf(ax.Prec())
		w.Mul2Exp(a2, ax, 1, rn)
		E := nf(q)
		e1 := expm1Kernel(w, E, a2)
		u := nf(q)
		w.AddInt64(u, E, 2, rn)
		w.Quo(u, E, u, rn)
		if x.Signbit() {
			w.Neg(u, u, rn)
		}
		ae := u.Exp() + max64(3-e1, 3-int64(q))
		w.Set(t, u, rn)
		return errFromAbs(t, ae)
	})
}

// log1pPos sets t to log(1+a) for a positive a known with a relative error
// below 2**re and returns the error count of t. The relative error carries
// over to the result since a/(1+a) < log(1+a).
func log1pPos(w *mpfr.Context, t, a *mpfr.Float, re int64) int64 {
	err := log1pKernel(w, t, a)
	return errAdd(t, err, t.Exp()+re+1)
}

// Asinh sets z to the inverse hyperbolic sine of x rounded with rnd.
// Asinh(±0) = ±0, Asinh(±Inf) = ±Inf and Asinh(NaN) = NaN.
func Asinh(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN():
		return setNaN(c, z)
	case x.IsZero() || x.IsInf():
		return c.Set(z, x, rnd)
	}
	// asinh(x) - x ≈ -x³/6, with the sign of -x
	if tiny(c, z, x, 3*x.Exp()-2) {
		return nudge(c, z, x, x.Signbit(), rnd)
	}
	ax := absOf(x)
	return ziv(c, z, rnd, "Asinh", func(w *mpfr.Context, t *mpfr.Float) int64 {
		q := t.Prec() + 10
		var err int64
		if ax.Exp() > int64(q)/2+2 {
			// asinh|x| = log(2|x|) + O(1/x²)
			y := nf(ax.Prec())
			w.Mul2Exp(y, ax, 1, rn)
			err = logKernel(w, t, y)
			err = errAdd(t, err, 2-2*ax.Exp())
		} else {
			// asinh|x| = log1p(|x| + x²/(1+√(1+x²)))
			a := nf(q)
			u := nf(q)
			w.Sqr(a, ax, rn)
			w.AddInt64(u, a, 1, rn)
			w.Sqrt(u, u, rn)
			w.AddInt64(u, u, 1, rn)
			w.Quo(a, a, u, rn)
			w.Add(a, a, ax, rn)
			err = log1pPos(w, t, a, 3-int64(q))
		}
		if x.Signbit() {
			w.Neg(t, t, rn)
		}
		return err
	})
}

// Acosh sets z to the inverse hyperbolic cosine of x rounded with rnd.
// Acosh(1) = +0, Acosh(+Inf) = +Inf, and Acosh(x) = NaN for x < 1.
func Acosh(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN():
		return setNaN(c, z)
	case x.IsInf() && !x.Signbit():
		return setInf(c, z, false)
	}
	switch c.Cmp(x, one) {
	case -1:
		return setNaN(c, z)
	case 0:
		return setZero(c, z, false)
	}
	w := c.Extended()
	d := nf(x.Prec())
	w.Sub(d, x, one, rn)
	// acosh(1+d) = √(2d)(1 - d/12 + ...)
	d2 := nf(d.Prec())
	w.Mul2Exp(d2, d, 1, rn)
	if s := nf(d.Prec()/2 + 2); w.Sqrt(s, d2, rn) == mpfr.Exact && tiny(c, z, s, s.Exp()+d.Exp()-3) {
		return nudge(c, z, s, false, rnd)
	}
	return ziv(c, z, rnd, "Acosh", func(w *mpfr.Context, t *mpfr.Float) int64 {
		q := t.Prec() + 10
		if x.Exp() > int64(q)/2+2 {
			// acosh(x) = log(2x) - O(1/x²)
			y := nf(x.Prec())
			w.Mul2Exp(y, x, 1, rn)
			err := logKernel(w, t, y)
			return errAdd(t, err, 2-2*x.Exp())
		}
		// acosh(x) = log1p(d + √(d(d+2)))
		a := nf(q)
		w.AddInt64(a, d, 2, rn)
		w.Mul(a, a, d, rn)
		w.Sqrt(a, a, rn)
		w.Add(a, a, d, rn)
		return log1pPos(w, t, a, 3-int64(q))
	})
}

// Atanh sets z to the inverse hyperbolic tangent of x rounded with rnd.
//
// Special cases are:
//
//	Atanh(±0) = ±0
//	Atanh(±1) = ±Inf (DivByZero)
//	Atanh(x) = NaN for |x| > 1
//	Atanh(NaN) = NaN
func Atanh(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN() || x.IsInf():
		return setNaN(c, z)
	case x.IsZero():
		return c.Set(z, x, rnd)
	}
	switch c.CmpAbs(x, one) {
	case 1:
		return setNaN(c, z)
	case 0:
		return pole(c, z, x.Signbit())
	}
	// atanh(x) - x ≈ x³/3, with the sign of x
	if tiny(c, z, x, 3*x.Exp()-1) {
		return nudge(c, z, x, !x.Signbit(), rnd)
	}
	ax := absOf(x)
	d := nf(x.Prec() + uint(-x.Exp()) + 1)
	c.Extended().Sub(d, one, ax, rn)
	return ziv(c, z, rnd, "Atanh", func(w *mpfr.Context, t *mpfr.Float) int64 {
		// atanh|x| = log1p(2|x|/(1-|x|))/2
		q := t.Prec() + 10
		a := nf(q)
		w.Quo(a, ax, d, rn)
		w.Mul2Exp(a, a, 1, rn)
		err := log1pPos(w, t, a, 1-int64(q))
		w.Quo2Exp(t, t, 1, rn)
		if x.Signbit() {
			w.Neg(t, t, rn)
		}
		return err
	})
}
