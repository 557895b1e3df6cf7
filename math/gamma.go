// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"math/big"
	"sync"

	"github.com/db47h/mpfr"
	"go.uber.org/zap"
)

var bernoulli struct {
	mu sync.Mutex
	b  []*big.Rat // b[k] = B_2k
}

// tangentNumbers returns the tangent numbers T_1 to T_n in t[1:], using the
// algorithm from R. P. Brent and D. Harvey, Fast computation of Bernoulli,
// Tangent and Secant numbers, 2011.
func tangentNumbers(n int) []*big.Int {
	t := make([]*big.Int, n+1)
	t[0] = new(big.Int)
	if n == 0 {
		return t
	}
	t[1] = big.NewInt(1)
	for k := 2; k <= n; k++ {
		t[k] = new(big.Int).Mul(t[k-1], big.NewInt(int64(k-1)))
	}
	u := new(big.Int)
	for k := 2; k <= n; k++ {
		for j := k; j <= n; j++ {
			u.Mul(t[j-1], big.NewInt(int64(j-k)))
			t[j].Mul(t[j], big.NewInt(int64(j-k+2)))
			t[j].Add(t[j], u)
		}
	}
	return t
}

// bernoulliNumbers returns B_0, B_2, ..., B_2n. The returned values must not
// be modified.
func bernoulliNumbers(log *zap.Logger, n int) []*big.Rat {
	bernoulli.mu.Lock()
	defer bernoulli.mu.Unlock()
	if len(bernoulli.b) <= n {
		m := 2 * len(bernoulli.b)
		if m < n+1 {
			m = n + 1
		}
		log.Debug("refilling Bernoulli cache", zap.Int("n", m))
		t := tangentNumbers(m - 1)
		b := make([]*big.Rat, m)
		b[0] = big.NewRat(1, 1)
		for k := 1; k < m; k++ {
			// B_2k = (-1)**(k-1) 2k T_k / (4**k (4**k - 1))
			d := new(big.Int).Lsh(big.NewInt(1), uint(2*k))
			d.Mul(d, new(big.Int).Sub(d, big.NewInt(1)))
			num := new(big.Int).Mul(t[k], big.NewInt(int64(2*k)))
			if k%2 == 0 {
				num.Neg(num)
			}
			b[k] = new(big.Rat).SetFrac(num, d)
		}
		bernoulli.b = b
	}
	return bernoulli.b[:n+1]
}

// stirlingMin returns the smallest argument for which the Stirling series
// reaches an absolute error of 2**-q.
func stirlingMin(q uint) int64 {
	return int64(q)/6 + 2
}

// lngammaPos sets t to log Γ(x) for an exact x >= 1/2 and returns the
// exponent of its absolute error.
//
// x is shifted to y = x+N >= stirlingMin, then
//
//	log Γ(y) = (y-1/2) log y - y + log(2π)/2 + Σ B_2k/(2k(2k-1) y**(2k-1))
//	log Γ(x) = log Γ(y) - log(x(x+1)...(x+N-1))
func lngammaPos(w *mpfr.Context, t, x *mpfr.Float) int64 {
	q := t.Prec()
	var N int64
	if B := stirlingMin(q); x.Exp() < 63 && w.CmpInt64(x, B) < 0 {
		xi, _ := x.Int64(mpfr.ToZero)
		N = B - xi
	}
	y := nf(x.Prec() + 64)
	w.AddInt64(y, x, N, rn)

	ly := nf(q)
	e := logKernel(w, ly, y)
	h := nf(q)
	w.SubFloat64(h, y, 0.5, rn)
	s := nf(q)
	w.Mul(s, h, ly, rn)
	w.Sub(s, s, y, rn)
	ae := y.Exp() + ly.Exp() + 3 - min64(int64(q), e)

	l2p := pi(w, q)
	w.Mul2Exp(l2p, l2p, 1, rn)
	lp := nf(q)
	e = logKernel(w, lp, l2p)
	w.Quo2Exp(lp, lp, 1, rn)
	ae = max64(ae, lp.Exp()-min64(int64(q), e)+2)
	w.Add(s, s, lp, rn)
	ae = max64(ae, s.Exp()-int64(q))

	var (
		r    = nf(q)
		y2   = nf(q)
		term = nf(q)
		sum  = nf(q)
		bs   = bernoulliNumbers(w.Logger(), int(q)/4+8)
	)
	w.Quo(r, one, y, rn)
	w.Sqr(y2, r, rn)
	trunc := -int64(q) - 2
	prev := int64(1 << 62)
	var k int
	for k = 1; ; k++ {
		if k >= len(bs) {
			bs = bernoulliNumbers(w.Logger(), 2*k)
		}
		w.MulRat(term, r, bs[k], rn)
		w.QuoInt64(term, term, int64(2*k*(2*k-1)), rn)
		if term.IsZero() || term.Exp() < -int64(q)-2 {
			break
		}
		if term.Exp() > prev {
			// the asymptotic series starts diverging
			trunc = term.Exp()
			break
		}
		prev = term.Exp()
		w.Add(sum, sum, term, rn)
		w.Mul(r, r, y2, rn)
	}
	// terms are below 1/12 in absolute value
	ae = max64(ae, max64(trunc, lenInt(int64(k))+1-int64(q)))
	w.Add(s, s, sum, rn)

	if N > 0 {
		pr := nf(q)
		u := nf(x.Prec() + 64)
		w.Set(pr, x, rn)
		for i := int64(1); i < N; i++ {
			w.AddInt64(u, x, i, rn)
			w.Mul(pr, pr, u, rn)
		}
		if w.Cmp(pr, one) != 0 {
			lpr := nf(q)
			e = logKernel(w, lpr, pr)
			ae = max64(ae, lpr.Exp()-e)
			w.Sub(s, s, lpr, rn)
		}
		// relative error of pr below N×2**(1-q)
		ae = max64(ae, lenInt(N)+2-int64(q))
	}
	w.Set(t, s, rn)
	return max64(ae, t.Exp()-int64(q)) + 3
}

// gammaPos sets t to Γ(x) for an exact x >= 1/2 and returns the exponent of
// its relative error.
func gammaPos(w *mpfr.Context, t, x *mpfr.Float) int64 {
	wp := t.Prec()
	q := wp + 10
	for {
		L := nf(q)
		ae := lngammaPos(w, L, x)
		if ae > -int64(wp)-6 {
			q += uint(ae + int64(wp) + 6)
			continue
		}
		e := expKernel(w, t, L)
		return max64(ae+1, 1-e) + 1
	}
}

// sinPi sets s to sin(πx) for a regular x that is not an integer and
// returns the exponent of its relative error.
func sinPi(w *mpfr.Context, s, x *mpfr.Float) int64 {
	q := s.Prec()
	n := nf(x.Prec())
	w.Rint(n, x, mpfr.ToNearestEven)
	f := nf(x.Prec())
	w.Sub(f, x, n, rn)
	u := pi(w, q)
	w.Mul(u, u, f, rn)
	ae := sinCos(w, s, nil, u, q)
	if oddInt(n) {
		w.Neg(s, s, rn)
	}
	// |u| <= π/2: the relative error of u carries over to sin(u)
	return max64(ae-s.Exp()+1, 2-int64(q)) + 1
}

// sinPiSign returns the sign of sin(πx) for a regular x.
func sinPiSign(x *mpfr.Float) int {
	n := nf(x.Prec())
	wideCtx.Rint(n, x, mpfr.ToNearestEven)
	f := nf(x.Prec())
	wideCtx.Sub(f, x, n, rn)
	s := f.Sign()
	if oddInt(n) {
		s = -s
	}
	return s
}

// gammaSign returns the sign of Γ(x) for a regular x that is not a
// non-positive integer.
func gammaSign(x *mpfr.Float) int {
	if !x.Signbit() {
		return 1
	}
	return sinPiSign(x)
}

// log2GammaLower returns a lower bound of log2 Γ(a) for a regular a >= 1
// with EXP(a) < 63.
func log2GammaLower(a *mpfr.Float) float64 {
	f, _ := a.Float64(mpfr.ToZero)
	return (f-0.5)*float64(a.Exp()-1) - f*log2e + 1.3
}

// oneMinus returns 1-x computed exactly for a regular x.
func oneMinus(w *mpfr.Context, x *mpfr.Float) *mpfr.Float {
	a := nf(x.Prec() + uint(max64(-x.Exp(), 0)) + 2)
	w.Sub(a, one, x, rn)
	return a
}

// Gamma sets z to the Gamma function of x rounded with rnd.
//
// Special cases are:
//
//	Gamma(±0) = ±Inf (DivByZero)
//	Gamma(+Inf) = +Inf
//	Gamma(-Inf) = NaN
//	Gamma(x) = NaN for negative integers x
//	Gamma(NaN) = NaN
//
// Gamma(n) = (n-1)! is computed exactly before rounding for small integers.
func Gamma(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN():
		return setNaN(c, z)
	case x.IsZero():
		return pole(c, z, x.Signbit())
	case x.IsInf():
		if x.Signbit() {
			return setNaN(c, z)
		}
		return setInf(c, z, false)
	}
	if x.IsInt() {
		if x.Signbit() {
			return setNaN(c, z)
		}
		if n, _ := x.Int64(mpfr.ToZero); x.Exp() < 63 && n <= maxExactBits(targetPrec(c, z)) {
			return c.SetInt(z, new(big.Int).MulRange(1, n-1), rnd)
		}
	}
	if !x.Signbit() {
		if x.Exp() > 62 {
			return overflow(c, z, false, rnd)
		}
		if x.Exp() > 0 {
			if log2GammaLower(x) > float64(c.Emax()) {
				return overflow(c, z, false, rnd)
			}
		}
	} else {
		sgn := gammaSign(x)
		if x.Exp() > 62 {
			return underflow(c, z, sgn < 0, rnd)
		}
		if x.Exp() > 0 {
			// |Γ(x)| = π/(|sin(πx)| Γ(1-x)) with |sin(πx)| >= 2**EXP(f)
			// where f = x - round(x)
			f := nf(x.Prec())
			wideCtx.Rint(f, x, mpfr.ToNearestEven)
			wideCtx.Sub(f, x, f, rn)
			if 1.66-float64(f.Exp())-log2GammaLower(oneMinus(wideCtx, x)) < float64(c.Emin()-2) {
				return underflow(c, z, sgn < 0, rnd)
			}
		}
	}
	// Γ(x) = 1/x - γ + O(x)
	if x.MinPrec() == 1 {
		if v := inv2(x); tiny(c, z, v, 0) {
			return nudge(c, z, v, false, rnd)
		}
	}
	return ziv(c, z, rnd, "Gamma", func(w *mpfr.Context, t *mpfr.Float) int64 {
		if !x.Signbit() && w.CmpFloat64(x, 0.5) >= 0 {
			re := gammaPos(w, t, x)
			return errFromAbs(t, t.Exp()+re)
		}
		// Γ(x) = π/(sin(πx) Γ(1-x))
		q := t.Prec() + 10
		g := nf(q)
		re := gammaPos(w, g, oneMinus(w, x))
		s := nf(q)
		re = max64(re, sinPi(w, s, x))
		w.Mul(g, g, s, rn)
		u := pi(w, q)
		w.Quo(u, u, g, rn)
		w.Set(t, u, rn)
		return errFromAbs(t, t.Exp()+max64(re, 2-int64(q))+3)
	})
}

// lgammaKernel sets t to log|Γ(x)| for a regular x that is not a
// non-positive integer and returns its error count.
func lgammaKernel(w *mpfr.Context, t, x *mpfr.Float) int64 {
	if !x.Signbit() && w.CmpFloat64(x, 0.5) >= 0 {
		return errFromAbs(t, lngammaPos(w, t, x))
	}
	// log|Γ(x)| = log(π/|sin(πx)|) - log Γ(1-x)
	q := t.Prec() + 10
	g := nf(q)
	ae := lngammaPos(w, g, oneMinus(w, x))
	s := nf(q)
	re := sinPi(w, s, x)
	w.Abs(s, s, rn)
	u := pi(w, q)
	w.Quo(u, u, s, rn)
	// u >= π
	ls := nf(q)
	e := logKernel(w, ls, u)
	ae = max64(ae, max64(ls.Exp()-e, re+2))
	w.Sub(ls, ls, g, rn)
	w.Set(t, ls, rn)
	return errFromAbs(t, max64(ae, ls.Exp()-int64(q))+2)
}

// lgamma handles the common cases of LnGamma and Lgamma for a regular x
// that is not a non-positive integer, other than 1 and 2.
func lgamma(c *mpfr.Context, z, x *mpfr.Float, name string, rnd mpfr.RoundingMode) mpfr.Accuracy {
	if x.Exp() > c.Emax() {
		// log|Γ(x)| ≈ ±|x| log|x|
		return overflow(c, z, x.Signbit(), rnd)
	}
	return ziv(c, z, rnd, name, func(w *mpfr.Context, t *mpfr.Float) int64 {
		return lgammaKernel(w, t, x)
	})
}

// gammaPole reports whether x is a pole of Γ.
func gammaPole(x *mpfr.Float) bool {
	return x.IsZero() || x.Signbit() && x.IsInt()
}

// gammaZero reports whether log Γ(x) = 0.
func gammaZero(c *mpfr.Context, x *mpfr.Float) bool {
	return c.Cmp(x, one) == 0 || c.Cmp(x, two) == 0
}

// LnGamma sets z to log(Γ(x)) rounded with rnd.
//
// Special cases are:
//
//	LnGamma(1) = LnGamma(2) = +0
//	LnGamma(±Inf) = +Inf
//	LnGamma(x) = +Inf (DivByZero) for non-positive integers x
//	LnGamma(x) = NaN if Γ(x) < 0
//	LnGamma(NaN) = NaN
func LnGamma(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN():
		return setNaN(c, z)
	case x.IsInf():
		return setInf(c, z, false)
	case gammaPole(x):
		return pole(c, z, false)
	case gammaZero(c, x):
		return setZero(c, z, false)
	case gammaSign(x) < 0:
		return setNaN(c, z)
	}
	return lgamma(c, z, x, "LnGamma", rnd)
}

// Lgamma sets z to log|Γ(x)| rounded with rnd and returns the ternary value
// and the sign of Γ(x).
//
// Special cases are:
//
//	Lgamma(1) = Lgamma(2) = +0
//	Lgamma(±Inf) = +Inf, sign 1
//	Lgamma(±0) = +Inf (DivByZero), sign ±1
//	Lgamma(x) = +Inf (DivByZero), sign 1 for negative integers x
//	Lgamma(NaN) = NaN, sign 1
func Lgamma(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) (mpfr.Accuracy, int) {
	switch {
	case x.IsNaN():
		return setNaN(c, z), 1
	case x.IsInf():
		return setInf(c, z, false), 1
	case x.IsZero():
		sign := 1
		if x.Signbit() {
			sign = -1
		}
		return pole(c, z, false), sign
	case gammaPole(x):
		return pole(c, z, false), 1
	case gammaZero(c, x):
		return setZero(c, z, false), 1
	}
	return lgamma(c, z, x, "Lgamma", rnd), gammaSign(x)
}
