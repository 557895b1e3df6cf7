// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"github.com/db47h/mpfr"
)

// sqrt64 returns √f rounded toward zero.
func sqrt64(f float64) float64 {
	t := nf(53)
	wideCtx.SetFloat64(t, f, rn)
	wideCtx.Sqrt(t, t, mpfr.ToZero)
	r, _ := t.Float64(mpfr.ToZero)
	return r
}

// airyConst sets c1 to Ai(0) = 3**(-2/3)/Γ(2/3) and c2 to -Ai'(0) =
// 3**(-1/3)/Γ(1/3) at their precision q and returns the exponent of their
// relative error. With Γ(1/3) = 3 Γ(4/3) and Γ(1/3) Γ(2/3) = 2π/√3:
//
//	c1 = 3**(-1/6) Γ(1/3)/(2π)
//	c2 = 3**(-1/3)/Γ(1/3)
func airyConst(w *mpfr.Context, c1, c2 *mpfr.Float) int64 {
	q := c1.Prec()
	// |Γ'(4/3)/Γ(4/3)| < 1/4: rounding 4/3 adds below 2**(-q-8)
	x := nf(q + 8)
	w.SetInt64(x, 4, rn)
	w.QuoInt64(x, x, 3, rn)
	g := nf(q)
	re := gammaPos(w, g, x)
	w.MulInt64(g, g, 3, rn)

	l3 := nf(q + 4)
	e := logKernel(w, l3, newInt(3))
	re = max64(re, 2-e)
	y := nf(q + 4)
	r := nf(q)
	// 3**(-1/6)
	w.QuoInt64(y, l3, -6, rn)
	re = max64(re, 1-expKernel(w, r, y))
	w.Mul(c1, r, g, rn)
	tp := pi(w, q)
	w.Mul2Exp(tp, tp, 1, rn)
	w.Quo(c1, c1, tp, rn)
	// 3**(-1/3)
	w.QuoInt64(y, l3, -3, rn)
	re = max64(re, 1-expKernel(w, r, y))
	w.Quo(c2, r, g, rn)
	return max64(re, 1-int64(q)) + 3
}

// aiExtra returns the number of bits lost to cancellation in the power
// series of Ai at x, below (4/3)|x|**(3/2) log2(e).
func aiExtra(x *mpfr.Float) uint {
	if !x.IsRegular() || x.Exp() <= 0 {
		return 4
	}
	f, _ := x.Float64(mpfr.ToZero)
	if f < 0 {
		f = -f
	}
	return uint(2*f*sqrt64(f)) + 4
}

// aiKernel sets t to Ai(x) for a finite x and returns its error count.
//
//	Ai(x) = c1 f(x) - c2 g(x)
//	f(x) = Σ 3**k (1/3)_k x**3k/(3k)!
//	g(x) = Σ 3**k (2/3)_k x**(3k+1)/(3k+1)!
func aiKernel(w *mpfr.Context, t, x *mpfr.Float) int64 {
	q := t.Prec() + aiExtra(x) + 12
	c1, c2 := nf(q), nf(q)
	re := airyConst(w, c1, c2)

	var (
		x3 = nf(q)
		tf = nf(q)
		tg = nf(q)
		F  = nf(q)
		G  = nf(q)
		k  int64
	)
	w.Set(tf, one, rn)
	w.Set(tg, x, rn)
	w.Set(F, tf, rn)
	w.Set(G, tg, rn)
	maxE := F.Exp()
	if !x.IsZero() {
		maxE = max64(maxE, G.Exp())
		w.Sqr(x3, x, rn)
		w.Mul(x3, x3, x, rn)
		xf, _ := x3.Float64(mpfr.ToZero)
		if xf < 0 {
			xf = -xf
		}
		for k = 1; ; k++ {
			w.Mul(tf, tf, x3, rn)
			w.QuoInt64(tf, tf, (3*k-1)*3*k, rn)
			w.Mul(tg, tg, x3, rn)
			w.QuoInt64(tg, tg, 3*k*(3*k+1), rn)
			if max64(tf.Exp(), tg.Exp()) < maxE-int64(q)-2 && xf < float64(9*k*k)/2 {
				break
			}
			w.Add(F, F, tf, rn)
			w.Add(G, G, tg, rn)
			maxE = max64(maxE, max64(tf.Exp(), tg.Exp()))
		}
	}
	w.Mul(F, F, c1, rn)
	w.Mul(G, G, c2, rn)
	w.Sub(t, F, G, rn)
	// c1, c2 < 1/2
	ae := maxE + max64(re, 2*lenInt(k)+2-int64(q)) + 2
	return errFromAbs(t, max64(ae, t.Exp()-int64(t.Prec())))
}

// Ai sets z to the Airy function Ai(x) rounded with rnd. Ai(±Inf) = +0 and
// Ai(NaN) = NaN.
func Ai(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN():
		return setNaN(c, z)
	case x.IsInf():
		return setZero(c, z, false)
	}
	if x.IsRegular() && !x.Signbit() {
		// Ai(x) < e**(-2/3 x**(3/2)) for x > 0
		if x.Exp() > 42 {
			return underflow(c, z, false, rnd)
		}
		f, _ := x.Float64(mpfr.ToZero)
		if 2*f*sqrt64(f)/3*log2e > float64(-c.Emin())+2 {
			return underflow(c, z, false, rnd)
		}
	}
	return ziv(c, z, rnd, "Ai", func(w *mpfr.Context, t *mpfr.Float) int64 {
		return aiKernel(w, t, x)
	})
}
