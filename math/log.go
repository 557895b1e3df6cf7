// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"math/big"
	"math/bits"

	"github.com/db47h/mpfr"
)

// agm sets z to the arithmetic-geometric mean of the positive values a and
// b at z's precision and returns the number of iterations.
func agm(w *mpfr.Context, z, a, b *mpfr.Float) int64 {
	p := z.Prec()
	var (
		u = nf(p)
		v = nf(p)
		t = nf(p)
	)
	w.Set(u, a, rn)
	w.Set(v, b, rn)
	var n int64
	for n = 1; ; n++ {
		w.Mul(t, u, v, rn)
		w.Add(u, u, v, rn)
		w.Quo2Exp(u, u, 1, rn) // u_n+1 = (u_n+v_n)/2
		w.Sqrt(v, t, rn)       // v_n+1 = sqrt(u_n × v_n)
		w.Sub(t, u, v, rn)
		if t.IsZero() || t.Exp() < u.Exp()-int64(p)+2 {
			break
		}
	}
	w.Set(z, u, rn)
	return n
}

// logAGM sets t to log(x) for a regular x > 0 and returns its error count.
// It uses the Salamin algorithm described in Michael Beeler, R. William
// Gosper, Richard Schroeppel, HAKMEM, Artificial Intelligence Memo No. 239,
// Item 143:
//
//	log(s) ≈ π/(2×AGM(1, 4/s)) for s > 2**(p/2)
//
// with s = x×2**m.
func logAGM(w *mpfr.Context, t, x *mpfr.Float) int64 {
	wp := t.Prec()
	q := wp + 10
	m := int64(q)/2 + 3 - x.Exp()
	var (
		s = nf(q)
		u = nf(q)
		v = nf(q)
	)
	w.Mul2Exp(s, x, m, rn)
	w.Quo(s, four, s, rn)
	n := agm(w, u, one, s)
	w.Mul2Exp(u, u, 1, rn)
	w.Quo(u, pi(w, q), u, rn) // log(x) + m log 2
	if m == 0 {
		w.Set(t, u, rn)
		return int64(wp) - int64(bits.Len64(uint64(n))) - 4
	}
	w.MulInt64(v, log2(w, q), m, rn)
	w.Sub(t, u, v, rn)
	if t.IsZero() {
		return 0
	}
	cancel := max64(max64(u.Exp(), v.Exp())-t.Exp(), 0)
	return int64(q) - cancel - int64(bits.Len64(uint64(n))) - 6
}

// log1pSeries sets t to log(1+d) for a regular d with |d| < 1/2 and returns
// its error count, with
//
//	log(1+d) = 2 atanh(u) = 2 Σ u**(2k+1)/(2k+1), u = d/(2+d)
func log1pSeries(w *mpfr.Context, t, d *mpfr.Float) int64 {
	wp := t.Prec()
	q := wp + uint(bits.Len(wp)) + 8
	var (
		u    = nf(q)
		u2   = nf(q)
		pw   = nf(q)
		term = nf(q)
		s    = nf(q)
	)
	w.AddInt64(u, d, 2, rn)
	w.Quo(u, d, u, rn)
	w.Sqr(u2, u, rn)
	w.Set(pw, u, rn)
	w.Set(s, u, rn)
	for k := int64(1); ; k++ {
		w.Mul(pw, pw, u2, rn)
		w.QuoInt64(term, pw, 2*k+1, rn)
		if term.IsZero() || term.Exp() < s.Exp()-int64(q)-2 {
			break
		}
		w.Add(s, s, term, rn)
	}
	w.Mul2Exp(t, s, 1, rn)
	// terms have the sign of u: no cancellation
	return int64(wp) - 2
}

// logKernel sets t to log(x) for a regular x > 0, x != 1, and returns its
// error count.
func logKernel(w *mpfr.Context, t, x *mpfr.Float) int64 {
	if e := x.Exp(); e == 0 || e == 1 {
		// x in [1/2, 2): |x-1| is computed exactly
		d := nf(x.Prec() + 2)
		w.Sub(d, x, one, rn)
		if d.Exp() <= -2 {
			return log1pSeries(w, t, d)
		}
	}
	return logAGM(w, t, x)
}

// Log sets z to the natural logarithm of x rounded with rnd.
//
// Special cases are:
//
//	Log(+Inf) = +Inf
//	Log(±0) = -Inf (DivByZero)
//	Log(1) = +0
//	Log(x < 0) = NaN
//	Log(NaN) = NaN
func Log(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN():
		return setNaN(c, z)
	case x.IsZero():
		return pole(c, z, true)
	case x.Signbit():
		return setNaN(c, z)
	case x.IsInf():
		return setInf(c, z, false)
	case c.Cmp(x, one) == 0:
		return setZero(c, z, false)
	}
	if e := x.Exp(); e == 0 || e == 1 {
		d := nf(x.Prec() + 2)
		c.Extended().Sub(d, x, one, rn)
		// |log(1+d) - d| < d²
		if tiny(c, z, d, 2*d.Exp()) {
			return nudge(c, z, d, false, rnd)
		}
	}
	return ziv(c, z, rnd, "Log", func(w *mpfr.Context, t *mpfr.Float) int64 {
		return logKernel(w, t, x)
	})
}

// Log1p sets z to log(1+x) rounded with rnd.
//
// Special cases are:
//
//	Log1p(±0) = ±0
//	Log1p(-1) = -Inf (DivByZero)
//	Log1p(x < -1) = NaN
//	Log1p(+Inf) = +Inf
//	Log1p(NaN) = NaN
func Log1p(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN():
		return setNaN(c, z)
	case x.IsZero():
		return c.Set(z, x, rnd)
	case x.IsInf():
		if x.Signbit() {
			return setNaN(c, z)
		}
		return setInf(c, z, false)
	}
	switch c.Cmp(x, minusOne) {
	case -1:
		return setNaN(c, z)
	case 0:
		return pole(c, z, true)
	}
	// log(1+x) < x, |log(1+x) - x| < x² for |x| < 1/2
	if tiny(c, z, x, 2*x.Exp()) {
		return nudge(c, z, x, false, rnd)
	}
	return ziv(c, z, rnd, "Log1p", func(w *mpfr.Context, t *mpfr.Float) int64 {
		return log1pKernel(w, t, x)
	})
}

// log1pKernel sets t to log(1+x) for a regular x > -1 and returns its error
// count.
func log1pKernel(w *mpfr.Context, t, x *mpfr.Float) int64 {
	if x.Exp() <= -1 {
		return log1pSeries(w, t, x)
	}
	wp := t.Prec()
	y := nf(wp + 10)
	w.AddInt64(y, x, 1, rn)
	err := logKernel(w, t, y)
	// y = (1+x)(1+ε) with |ε| <= 2**(-wp-10)
	return errAdd(t, err, -int64(wp)-9)
}

// Log2 sets z to the base 2 logarithm of x rounded with rnd. The result is
// exact for powers of two. Special cases are as for Log.
func Log2(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN():
		return setNaN(c, z)
	case x.IsZero():
		return pole(c, z, true)
	case x.Signbit():
		return setNaN(c, z)
	case x.IsInf():
		return setInf(c, z, false)
	}
	if x.MinPrec() == 1 {
		// x = 2**(e-1)
		if x.Exp() == 1 {
			return setZero(c, z, false)
		}
		return c.SetInt64(z, x.Exp()-1, rnd)
	}
	return ziv(c, z, rnd, "Log2", func(w *mpfr.Context, t *mpfr.Float) int64 {
		return logQuo(w, t, x, func(w *mpfr.Context, l *mpfr.Float) int64 {
			w.Set(l, log2(w, l.Prec()), rn)
			return int64(l.Prec()) - 1
		})
	})
}

// Log10 sets z to the base 10 logarithm of x rounded with rnd. The result
// is exact for powers of ten. Special cases are as for Log.
func Log10(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN():
		return setNaN(c, z)
	case x.IsZero():
		return pole(c, z, true)
	case x.Signbit():
		return setNaN(c, z)
	case x.IsInf():
		return setInf(c, z, false)
	}
	if k, ok := log10Exact(x); ok {
		if k == 0 {
			return setZero(c, z, false)
		}
		return c.SetInt64(z, k, rnd)
	}
	return ziv(c, z, rnd, "Log10", func(w *mpfr.Context, t *mpfr.Float) int64 {
		return logQuo(w, t, x, func(w *mpfr.Context, l *mpfr.Float) int64 {
			return logKernel(w, l, ten)
		})
	})
}

// log10Exact returns k if x = 10**k with k >= 0. Negative powers of ten are
// not binary floats.
func log10Exact(x *mpfr.Float) (int64, bool) {
	// EXP(10**k) = floor(k log2(10))+1 < 2 MinPrec(10**k)
	if !x.IsInt() || x.Exp() > 2*int64(x.MinPrec())+4 {
		return 0, false
	}
	n, _ := x.Int(nil, mpfr.ToZero)
	// 10**k = 5**k × 2**k
	k := int64(n.TrailingZeroBits())
	p := new(big.Int).Exp(big.NewInt(5), big.NewInt(k), nil)
	p.Lsh(p, uint(k))
	return k, p.Cmp(n) == 0
}

// logQuo sets t to log(x)/log(b) where base sets l to log(b) and returns
// its error count.
func logQuo(w *mpfr.Context, t, x *mpfr.Float, base approx) int64 {
	wp := t.Prec()
	l := nf(wp + 2)
	lb := nf(wp + 2)
	e1 := logKernel(w, l, x)
	e2 := base(w, lb)
	w.Quo(t, l, lb, rn)
	// relative errors add up: 2**(1-e1) + 2**(1-e2) + 2**-wp
	return min64(min64(e1, e2), int64(wp)) - 3
}

// AGM sets z to the arithmetic-geometric mean of a and b rounded with rnd.
// The result is NaN if a or b is negative or NaN, and +0 if a or b is zero
// (NaN if the other one is +Inf).
func AGM(c *mpfr.Context, z, a, b *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case a.IsNaN() || b.IsNaN():
		return setNaN(c, z)
	case a.Sign() < 0 || b.Sign() < 0:
		return setNaN(c, z)
	case a.IsZero() || b.IsZero():
		if a.IsInf() || b.IsInf() {
			return setNaN(c, z)
		}
		return setZero(c, z, false)
	case a.IsInf() || b.IsInf():
		return setInf(c, z, false)
	case c.Cmp(a, b) == 0:
		return c.Set(z, a, rnd)
	}
	// AGM(a, b) = AGM(a/2**E, b/2**E) × 2**E
	E := max64(a.Exp(), b.Exp())
	w := c.Extended()
	as := nf(a.Prec())
	bs := nf(b.Prec())
	w.Mul2Exp(as, a, -E, rn)
	w.Mul2Exp(bs, b, -E, rn)
	return ziv(c, z, rnd, "AGM", func(w *mpfr.Context, t *mpfr.Float) int64 {
		n := agm(w, t, as, bs)
		w.Mul2Exp(t, t, E, rn)
		// each iteration adds a few ulps of relative error
		return int64(t.Prec()) - 2*int64(bits.Len64(uint64(n))) - 4
	})
}
