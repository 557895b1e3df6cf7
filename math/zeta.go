// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"math/big"

	"github.com/db47h/mpfr"
)

const (
	log2TwoPi = 2.651496129472319 // log2(2π)

	// ζ(-n) is computed from B_(n+1) for odd n up to this bound.
	zetaExactMax = 1024
)

var minusHalf = func() *mpfr.Float {
	z := nf(2)
	wideCtx.SetFloat64(z, -0.5, rn)
	return z
}()

// borwein returns the coefficients d_0, ..., d_n of P. Borwein's algorithm,
// An efficient algorithm for the Riemann zeta function, 1995:
//
//	d_k = n Σ_{i=0}^{k} (n+i-1)! 4**i / ((n-i)! (2i)!)
func borwein(n int64) []*big.Int {
	d := make([]*big.Int, n+1)
	t := big.NewInt(1)
	u := new(big.Int)
	d[0] = big.NewInt(1)
	for i := int64(0); i < n; i++ {
		// t_(i+1) = t_i × 2(n+i)(n-i) / ((2i+1)(i+1))
		t.Mul(t, u.SetInt64(2*(n+i)))
		t.Mul(t, u.SetInt64(n-i))
		t.Quo(t, u.SetInt64((2*i+1)*(i+1)))
		d[i+1] = new(big.Int).Add(d[i], t)
	}
	return d
}

// zetaPos sets t to ζ(s) for an exact s >= 1/2, s != 1, and returns the
// exponent of its relative error.
//
//	ζ(s) = 1/(d_n (1-2**(1-s))) Σ_{k=0}^{n-1} (-1)**k (d_n-d_k) / (k+1)**s
func zetaPos(w *mpfr.Context, t, s *mpfr.Float) int64 {
	wp := t.Prec()
	if w.CmpInt64(s, int64(wp)+4) > 0 {
		// 1 < ζ(s) < 1 + 2**(2-s)
		w.Set(t, one, rn)
		return -int64(wp) - 2
	}
	sm1 := nf(s.Prec() + uint(s.Exp()) + 2)
	w.Sub(sm1, s, one, rn)
	// (3+√8)**-n < 2**(-wp-6)
	n := int64(wp)*2/5 + 4
	q := wp + 10 + uint(lenInt(n)) + uint(max64(-sm1.Exp(), 0)) + uint(max64(s.Exp(), 0))
	d := borwein(n)

	var (
		S    = nf(q)
		pw   = nf(q)
		y    = nf(q)
		lk   = nf(q)
		k1   = nf(64)
		ns   = nf(s.Prec())
		coef = new(big.Int)
		re   = -int64(q)
	)
	w.Neg(ns, s, rn)
	for k := int64(0); k < n; k++ {
		if k == 0 {
			w.Set(pw, one, rn)
		} else {
			// (k+1)**-s = e**(-s log(k+1))
			w.SetInt64(k1, k+1, rn)
			e := logKernel(w, lk, k1)
			w.Mul(y, lk, ns, rn)
			ey := expKernel(w, pw, y)
			re = max64(re, max64(y.Exp()+2-min64(e, int64(q)), 1-ey)+1)
		}
		coef.Sub(d[n], d[k])
		w.MulInt(pw, pw, coef, rn)
		if k&1 == 0 {
			w.Add(S, S, pw, rn)
		} else {
			w.Sub(S, S, pw, rn)
		}
	}
	// S >= 0.6 d_n and Σ |terms| <= n d_n
	re = re + lenInt(n) + 2

	// D = 1 - 2**(1-s)
	E := nf(q)
	yy := nf(q)
	w.Mul(yy, sm1, log2(w, q), rn)
	w.Neg(yy, yy, rn)
	eE := expKernel(w, E, yy)
	reE := max64(1-eE, yy.Exp()+2-int64(q)) + 1
	D := nf(q)
	w.Sub(D, one, E, rn)
	re = max64(re, reE+E.Exp()-D.Exp()+2)

	w.Quo(S, S, D, rn)
	w.QuoInt(S, S, d[n], rn)
	w.Set(t, S, rn)
	return max64(re, 2-int64(q)) + 2
}

// Zeta sets z to the Riemann zeta function of s rounded with rnd.
//
// Special cases are:
//
//	Zeta(±0) = -1/2
//	Zeta(1) = +Inf (DivByZero)
//	Zeta(+Inf) = 1
//	Zeta(-Inf) = NaN
//	Zeta(-2n) = +0 for positive integers n
//	Zeta(NaN) = NaN
//
// Zeta at negative odd integers -n is computed as -B_(n+1)/(n+1) before
// rounding for moderate n.
func Zeta(c *mpfr.Context, z, s *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case s.IsNaN():
		return setNaN(c, z)
	case s.IsInf():
		if s.Signbit() {
			return setNaN(c, z)
		}
		return c.Set(z, one, rnd)
	case s.IsZero():
		return c.Set(z, minusHalf, rnd)
	case c.Cmp(s, one) == 0:
		return pole(c, z, false)
	}
	if s.Signbit() && s.IsInt() {
		if !oddInt(s) {
			return setZero(c, z, false)
		}
		if n, _ := s.Int64(mpfr.ToZero); s.Exp() < 63 && -n <= zetaExactMax {
			// ζ(-n) = -B_2k/(2k) with 2k = n+1
			k := int(1-n) / 2
			r := new(big.Rat).Quo(bernoulliNumbers(c.Logger(), k)[k], big.NewRat(int64(2*k), 1))
			return c.SetRat(z, r.Neg(r), rnd)
		}
	}
	// 1 < ζ(s) < 1 + 2**(2-s) for s >= 2
	if q := int64(nudgePrec(c, z, one)); c.CmpInt64(s, q+2) > 0 {
		return nudge(c, z, one, true, rnd)
	}
	// ζ(s) = -1/2 - s log(2π)/2 + O(s²)
	if tiny(c, z, minusHalf, s.Exp()) {
		return nudge(c, z, minusHalf, s.Signbit(), rnd)
	}
	if s.Signbit() && s.Exp() > 0 {
		// sign(ζ(s)) = sign(sin(πs/2)) and
		// |ζ(s)| >= (2π)**s/π × 2**EXP(f) × Γ(1-s) with f = s/2 - round(s/2)
		h := nf(s.Prec())
		wideCtx.Quo2Exp(h, s, 1, rn)
		sgn := sinPiSign(h)
		if s.Exp() > 58 {
			return overflow(c, z, sgn < 0, rnd)
		}
		f := nf(h.Prec())
		wideCtx.Rint(f, h, mpfr.ToNearestEven)
		wideCtx.Sub(f, h, f, rn)
		sf, _ := s.Float64(mpfr.ToZero)
		if log2GammaLower(oneMinus(wideCtx, s))+sf*log2TwoPi-1.66+float64(f.Exp()) > float64(c.Emax()) {
			return overflow(c, z, sgn < 0, rnd)
		}
	}
	return ziv(c, z, rnd, "Zeta", func(w *mpfr.Context, t *mpfr.Float) int64 {
		if !s.Signbit() && w.CmpFloat64(s, 0.5) >= 0 {
			return errFromAbs(t, t.Exp()+zetaPos(w, t, s))
		}
		// ζ(s) = 2**s π**(s-1) sin(πs/2) Γ(1-s) ζ(1-s)
		q := t.Prec() + 10
		a := oneMinus(w, s)
		g := nf(q)
		re := gammaPos(w, g, a)
		zt := nf(q)
		re = max64(re, zetaPos(w, zt, a))
		h := nf(s.Prec())
		w.Quo2Exp(h, s, 1, rn)
		sn := nf(q)
		re = max64(re, sinPi(w, sn, h))

		// (2π)**s = e**(s log(2π))
		qq := q + uint(max64(s.Exp(), 0))
		tp := pi(w, qq)
		w.Mul2Exp(tp, tp, 1, rn)
		l := nf(qq)
		e := logKernel(w, l, tp)
		y := nf(qq)
		w.Mul(y, l, s, rn)
		aey := max64(s.Exp()+l.Exp()-min64(e, int64(qq))+2, y.Exp()-int64(qq)) + 1
		ex := nf(q)
		ee := expKernel(w, ex, y)
		re = max64(re, max64(aey+1, 1-ee))

		w.Quo(ex, ex, pi(w, q), rn)
		w.Mul(ex, ex, sn, rn)
		w.Mul(ex, ex, g, rn)
		w.Mul(ex, ex, zt, rn)
		w.Set(t, ex, rn)
		return errFromAbs(t, t.Exp()+max64(re, 2-int64(q))+4)
	})
}
