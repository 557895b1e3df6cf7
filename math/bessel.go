// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"github.com/db47h/mpfr"
)

// maxHankelOrder bounds the orders for which the asymptotic expansion is
// used.
const maxHankelOrder = 1 << 30

// besselSeries sets t to J_n(x) for x > 0 and returns the exponent of its
// absolute error.
//
//	J_n(x) = (x/2)**n/n! Σ (-1)**k (x/2)**2k n!/(k! (k+n)!)
func besselSeries(w *mpfr.Context, t *mpfr.Float, n int64, x *mpfr.Float) int64 {
	xf, _ := x.Float64(mpfr.ToZero)
	// terms grow up to e**x
	q := t.Prec() + uint(xf*log2e) + 12
	h := nf(x.Prec())
	w.Quo2Exp(h, x, 1, rn)
	h2 := nf(q)
	w.Sqr(h2, h, rn)
	hf := xf * xf / 4

	term := nf(q)
	re0 := -int64(q)
	if n == 0 {
		w.Set(term, one, rn)
	} else {
		e := powIntKernel(w, term, h, n)
		f := nf(q)
		nn := nf(64)
		w.SetInt64(nn, n+1, rn)
		re0 = max64(1-e, gammaPos(w, f, nn))
		w.Quo(term, term, f, rn)
	}
	s := nf(q)
	w.Set(s, term, rn)
	maxE := term.Exp()
	var k int64
	for k = 1; ; k++ {
		w.Mul(term, term, h2, rn)
		w.QuoInt64(term, term, -k, rn)
		w.QuoInt64(term, term, k+n, rn)
		if term.IsZero() || term.Exp() < maxE-int64(q)-2 && hf < float64(k)*float64(k+n)/2 {
			break
		}
		w.Add(s, s, term, rn)
		maxE = max64(maxE, term.Exp())
	}
	w.Set(t, s, rn)
	// the error of the first term scales the whole sum
	ae := max64(s.Exp()+re0+2, maxE+2*lenInt(k)+3-int64(q))
	return max64(ae, t.Exp()-int64(t.Prec()))
}

// besselHankel sets t to J_n(x) with Hankel's asymptotic expansion for
// x >= prec t + n² and returns the exponent of its absolute error:
//
//	J_n(x) = √(2/(πx)) (P cos χ - Q sin χ), χ = x - (2n+1)π/4
//	P = Σ (-1)**k a_2k/x**2k, Q = Σ (-1)**k a_(2k+1)/x**(2k+1)
//	a_k = (4n²-1²)(4n²-3²)...(4n²-(2k-1)²)/(k! 8**k)
func besselHankel(w *mpfr.Context, t *mpfr.Float, n int64, x *mpfr.Float) int64 {
	q := t.Prec()
	qq := q + uint(x.Exp()) + uint(lenInt(2*n+1)) + 4
	chi := nf(qq)
	w.Mul2Exp(chi, pi(w, qq), -2, rn)
	w.MulInt64(chi, chi, 2*n+1, rn)
	w.Sub(chi, x, chi, rn)
	s, co := nf(q), nf(q)
	ae := max64(sinCos(w, s, co, chi, q), x.Exp()+2-int64(qq)) + 1

	var (
		mu   = 4 * n * n
		term = nf(q)
		P    = nf(q)
		Q    = nf(q)
		k    int64
	)
	w.Set(term, one, rn)
	w.Set(P, one, rn)
	for k = 1; ; k++ {
		w.MulInt64(term, term, mu-(2*k-1)*(2*k-1), rn)
		w.QuoInt64(term, term, 8*k, rn)
		w.Quo(term, term, x, rn)
		// past 2k > n the remainder is bounded by the first omitted term
		if term.IsZero() || term.Exp() < -int64(q)-2 && 2*k > n {
			break
		}
		switch k & 3 {
		case 0:
			w.Add(P, P, term, rn)
		case 1:
			w.Add(Q, Q, term, rn)
		case 2:
			w.Sub(P, P, term, rn)
		case 3:
			w.Sub(Q, Q, term, rn)
		}
	}
	w.Mul(P, P, co, rn)
	w.Mul(Q, Q, s, rn)
	w.Sub(P, P, Q, rn)
	pre := pi(w, q)
	w.Mul(pre, pre, x, rn)
	w.Quo(pre, two, pre, rn)
	w.Sqrt(pre, pre, rn)
	w.Mul(t, P, pre, rn)
	return pre.Exp() + max64(ae, lenInt(k)+2-int64(q)) + 3
}

// Jn sets z to the Bessel function of the first kind of order n at x,
// rounded with rnd.
//
// Special cases are:
//
//	Jn(n, ±Inf) = +0
//	Jn(0, ±0) = 1
//	Jn(n, ±0) = ±0 for n != 0, with the sign of (±1)**n
//	Jn(n, NaN) = NaN
func Jn(c *mpfr.Context, z *mpfr.Float, n int64, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	// J_-n(x) = J_n(-x) = (-1)**n J_n(x)
	neg := n&1 != 0 && x.Signbit() != (n < 0)
	switch {
	case x.IsNaN():
		return setNaN(c, z)
	case x.IsInf():
		return setZero(c, z, false)
	case x.IsZero():
		if n == 0 {
			return c.Set(z, one, rnd)
		}
		return setZero(c, z, neg)
	}
	if n < 0 {
		if n == -n {
			// |n| = 2**63
			return underflow(c, z, false, rnd)
		}
		n = -n
	}
	ax := absOf(x)
	switch n {
	case 0:
		// J0(x) = 1 - x²/4 + ...
		if tiny(c, z, one, 2*x.Exp()-2) {
			return nudge(c, z, one, false, rnd)
		}
	case 1:
		// J1(x) = x/2 - x³/16 + ...
		v := nf(x.Prec())
		c.Extended().Quo2Exp(v, ax, 1, rn)
		if neg {
			c.Extended().Neg(v, v, rn)
		}
		if tiny(c, z, v, 3*x.Exp()-4) {
			return nudge(c, z, v, neg, rnd)
		}
	}
	// |J_n(x)| <= |x/2|**n/n!
	if x.Exp() <= 1 && float64(n)*float64(x.Exp()-1) < float64(c.Emin()-2) {
		return underflow(c, z, neg, rnd)
	}
	return ziv(c, z, rnd, "Jn", func(w *mpfr.Context, t *mpfr.Float) int64 {
		u := nf(t.Prec() + 10)
		var ae int64
		if n <= maxHankelOrder && w.CmpInt64(ax, int64(u.Prec())+n*n) >= 0 {
			ae = besselHankel(w, u, n, ax)
		} else {
			ae = besselSeries(w, u, n, ax)
		}
		if neg {
			w.Neg(u, u, rn)
		}
		w.Set(t, u, rn)
		return errFromAbs(t, ae)
	})
}

// J0 sets z to the Bessel function of the first kind of order 0 at x,
// rounded with rnd.
func J0(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	return Jn(c, z, 0, x, rnd)
}

// J1 sets z to the Bessel function of the first kind of order 1 at x,
// rounded with rnd.
func J1(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	return Jn(c, z, 1, x, rnd)
}
