// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"math/bits"

	"github.com/db47h/mpfr"
)

// atanKernel sets t to atan(x) at t's precision for a regular x and returns
// the exponent of its absolute error.
//
// For |x| > 1, atan(x) = ±π/2 - atan(1/x). The argument is then halved with
// atan(u) = 2 atan(u/(1+√(1+u²))) until it is small enough for the Taylor
// series.
func atanKernel(w *mpfr.Context, t, x *mpfr.Float) int64 {
	q := t.Prec()
	var (
		u = nf(q)
		v = nf(q)
	)
	inv := w.CmpAbs(x, one) > 0
	if inv {
		w.Quo(u, one, x, rn)
	} else {
		w.Set(u, x, rn)
	}
	k := int64(1)
	for 4*k*k < int64(q) {
		k++
	}
	var nh int64
	for u.Exp() > -k {
		w.Sqr(v, u, rn)
		w.Add(v, v, one, rn)
		w.Sqrt(v, v, rn)
		w.Add(v, v, one, rn)
		w.Quo(u, u, v, rn)
		nh++
	}

	var (
		u2   = nf(q)
		pw   = nf(q)
		term = nf(q)
		s    = nf(q)
	)
	w.Sqr(u2, u, rn)
	w.Neg(u2, u2, rn)
	w.Set(pw, u, rn)
	w.Set(s, u, rn)
	var n int64
	for n = 1; ; n++ {
		w.Mul(pw, pw, u2, rn)
		w.QuoInt64(term, pw, 2*n+1, rn)
		if term.IsZero() || term.Exp() < s.Exp()-int64(q)-2 {
			break
		}
		w.Add(s, s, term, rn)
	}
	w.Mul2Exp(s, s, nh, rn)
	// relative error below (4 nh + n + 2) × 2**(1-q)
	ae := s.Exp() + int64(bits.Len64(uint64(4*nh+n+2))) + 1 - int64(q)
	if !inv {
		w.Set(t, s, rn)
		return ae
	}
	hp := pi(w, q)
	w.Quo2Exp(hp, hp, 1, rn)
	if x.Signbit() {
		w.Neg(hp, hp, rn)
	}
	w.Sub(t, hp, s, rn)
	// |atan(x)| > π/4: no cancellation
	return max64(ae, 1-int64(q)) + 1
}

// piFrac sets z to n×π/2**k rounded with rnd.
func piFrac(c *mpfr.Context, z *mpfr.Float, n, k int64, rnd mpfr.RoundingMode) mpfr.Accuracy {
	return ziv(c, z, rnd, "Pi", func(w *mpfr.Context, t *mpfr.Float) int64 {
		p := pi(w, t.Prec()+8)
		w.MulInt64(p, p, n, rn)
		w.Mul2Exp(t, p, -k, rn)
		return int64(t.Prec()) - 2
	})
}

// Atan sets z to the arc-tangent of x rounded with rnd.
//
// Special cases are:
//
//	Atan(±0) = ±0
//	Atan(±Inf) = ±π/2
//	Atan(NaN) = NaN
func Atan(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN():
		return setNaN(c, z)
	case x.IsZero():
		return c.Set(z, x, rnd)
	case x.IsInf():
		return piFrac(c, z, int64(x.Sign()), 1, rnd)
	}
	// |atan(x) - x| < |x|³/3, atan(x) is closer to 0 than x
	if tiny(c, z, x, 3*x.Exp()-1) {
		return nudge(c, z, x, x.Signbit(), rnd)
	}
	return ziv(c, z, rnd, "Atan", func(w *mpfr.Context, t *mpfr.Float) int64 {
		u := nf(t.Prec() + 10)
		ae := atanKernel(w, u, x)
		w.Set(t, u, rn)
		return errFromAbs(t, ae)
	})
}

// oneMinusSqr returns 1 - x² computed exactly for a regular |x| < 1.
func oneMinusSqr(w *mpfr.Context, x *mpfr.Float) *mpfr.Float {
	x2 := nf(2 * x.Prec())
	w.Sqr(x2, x, rn)
	d := nf(2*x.Prec() + uint(-2*x.Exp()) + 2)
	w.Sub(d, one, x2, rn)
	return d
}

// Asin sets z to the arc-sine of x rounded with rnd.
//
// Special cases are:
//
//	Asin(±0) = ±0
//	Asin(±1) = ±π/2
//	Asin(x) = NaN for |x| > 1
//	Asin(NaN) = NaN
func Asin(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
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
		return piFrac(c, z, int64(x.Sign()), 1, rnd)
	}
	// asin(x) - x ≈ x³/6, asin(x) is farther from 0 than x
	if tiny(c, z, x, 3*x.Exp()-2) {
		return nudge(c, z, x, !x.Signbit(), rnd)
	}
	d := oneMinusSqr(c.Extended(), x)
	// asin(x) = atan(x/√(1-x²))
	return ziv(c, z, rnd, "Asin", func(w *mpfr.Context, t *mpfr.Float) int64 {
		q := t.Prec() + 10
		u := nf(q)
		w.Sqrt(u, d, rn)
		w.Quo(u, x, u, rn)
		// relative error of u below 2**(1-q): atan(u) is off by 2**-q at most
		r := nf(q)
		ae := max64(atanKernel(w, r, u), -int64(q)) + 1
		w.Set(t, r, rn)
		return errFromAbs(t, ae)
	})
}

// Acos sets z to the arc-cosine of x rounded with rnd.
//
// Special cases are:
//
//	Acos(1) = +0
//	Acos(-1) = π
//	Acos(±0) = π/2
//	Acos(x) = NaN for |x| > 1
//	Acos(NaN) = NaN
func Acos(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN() || x.IsInf():
		return setNaN(c, z)
	case x.IsZero():
		return piFrac(c, z, 1, 1, rnd)
	}
	switch c.CmpAbs(x, one) {
	case 1:
		return setNaN(c, z)
	case 0:
		if x.Signbit() {
			return piFrac(c, z, 1, 0, rnd)
		}
		return setZero(c, z, false)
	}
	d := oneMinusSqr(c.Extended(), x)
	// acos(x) = atan(√(1-x²)/x) for x > 0, π - atan(√(1-x²)/|x|) otherwise
	return ziv(c, z, rnd, "Acos", func(w *mpfr.Context, t *mpfr.Float) int64 {
		q := t.Prec() + 10
		u := nf(q)
		w.Sqrt(u, d, rn)
		w.Quo(u, u, x, rn)
		w.Abs(u, u, rn)
		r := nf(q)
		ae := max64(atanKernel(w, r, u), -int64(q)) + 1
		if x.Signbit() {
			w.Sub(r, pi(w, q), r, rn)
			ae = max64(ae, 2-int64(q)) + 1
		}
		w.Set(t, r, rn)
		return errFromAbs(t, ae)
	})
}

// Atan2 sets z to the arc-tangent of y/x, using the signs of both to
// determine the quadrant of the result, rounded with rnd.
//
// Special cases are (in order):
//
//	Atan2(y, NaN) = NaN
//	Atan2(NaN, x) = NaN
//	Atan2(±0, x>=0) = ±0
//	Atan2(±0, x<=-0) = ±π
//	Atan2(y>0, 0) = +π/2
//	Atan2(y<0, 0) = -π/2
//	Atan2(±Inf, +Inf) = ±π/4
//	Atan2(±Inf, -Inf) = ±3π/4
//	Atan2(y, +Inf) = ±0
//	Atan2(y>0, -Inf) = +π
//	Atan2(y<0, -Inf) = -π
//	Atan2(±Inf, x) = ±π/2
func Atan2(c *mpfr.Context, z, y, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	s := int64(1)
	if y.Signbit() {
		s = -1
	}
	switch {
	case x.IsNaN() || y.IsNaN():
		return setNaN(c, z)
	case y.IsZero():
		if x.Signbit() {
			return piFrac(c, z, s, 0, rnd)
		}
		return c.Set(z, y, rnd)
	case x.IsZero():
		return piFrac(c, z, s, 1, rnd)
	case y.IsInf():
		switch {
		case x.IsInf() && !x.Signbit():
			return piFrac(c, z, s, 2, rnd)
		case x.IsInf():
			return piFrac(c, z, 3*s, 2, rnd)
		}
		return piFrac(c, z, s, 1, rnd)
	case x.IsInf():
		if x.Signbit() {
			return piFrac(c, z, s, 0, rnd)
		}
		return setZero(c, z, y.Signbit())
	}

	w := c.Extended()
	if !x.Signbit() {
		// atan(y/x) - y/x ≈ -(y/x)³/3
		p := nudgePrec(c, z, y) + 2
		u := nf(p)
		if w.Quo(u, y, x, rn) == mpfr.Exact && tiny(c, z, u, 3*u.Exp()-1) {
			return nudge(c, z, u, u.Signbit(), rnd)
		}
	}
	return ziv(c, z, rnd, "Atan2", func(w *mpfr.Context, t *mpfr.Float) int64 {
		q := t.Prec() + 10
		u := nf(q)
		w.Quo(u, y, x, rn)
		r := nf(q)
		if x.Signbit() {
			// ±(π - atan(|y/x|))
			w.Abs(u, u, rn)
			ae := max64(atanKernel(w, r, u), -int64(q)) + 1
			w.Sub(r, pi(w, q), r, rn)
			if s < 0 {
				w.Neg(r, r, rn)
			}
			ae = max64(ae, 2-int64(q)) + 1
			w.Set(t, r, rn)
			return errFromAbs(t, ae)
		}
		// relative error of u is below 2**-q and carries over to atan(u)
		ae := max64(atanKernel(w, r, u), r.Exp()-int64(q)) + 1
		w.Set(t, r, rn)
		return errFromAbs(t, ae)
	})
}
