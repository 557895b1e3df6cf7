// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfr

import (
	"math"
	"math/bits"

	"go.uber.org/zap"
)

// Sqrt sets z to the rounded square root of x, and returns the ternary
// value.
//
// Following IEEE754-2008 (section 7.2), √±0 = ±0, √+Inf = +Inf and the
// square root of a negative operand is NaN.
func (c *Context) Sqrt(z, x *Float, rnd RoundingMode) Accuracy {
	c.prepare(z)
	switch {
	case x.form == nan:
		return c.setNaN(z)
	case x.form == zero:
		z.SetZero(x.neg)
		return Exact
	case x.neg:
		return c.setNaN(z)
	case x.form == inf:
		z.SetInf(false)
		return Exact
	}
	m, e, sticky := rootExact(x, 2, uint(z.prec))
	return c.round(z, false, m, e, sticky, rnd)
}

// RootN sets z to the rounded k-th root of x. For even k, the root of a
// negative number is NaN and the root of ±0 is +0; for odd k, the sign of x
// is kept. The 0-th root is NaN.
func (c *Context) RootN(z, x *Float, k uint, rnd RoundingMode) Accuracy {
	c.prepare(z)
	even := k&1 == 0
	switch {
	case k == 0 || x.form == nan:
		return c.setNaN(z)
	case k == 1:
		return c.Set(z, x, rnd)
	case x.form == zero:
		z.SetZero(x.neg && !even)
		return Exact
	case x.neg && even:
		return c.setNaN(z)
	case x.form == inf:
		z.SetInf(x.neg)
		return Exact
	}
	if kk := uint64(k); kk > 2*uint64(z.prec)+64 && kk > uint64(x.MinPrec()) {
		return c.rootLarge(z, x, kk, rnd)
	}
	m, e, sticky := rootExact(x, k, uint(z.prec))
	return c.round(z, x.neg, m, e, sticky, rnd)
}

// Cbrt sets z to the rounded cubic root of x.
func (c *Context) Cbrt(z, x *Float, rnd RoundingMode) Accuracy {
	return c.RootN(z, x, 3, rnd)
}

// rootExact returns ⌊|x|**(1/k)⌋ as m × 2**e with at least p+2 bits, and
// whether the root is inexact. x must be finite and nonzero.
func rootExact(x *Float, k uint, p uint) (m nat, e int64, sticky bool) {
	xm, xe := x.exact()
	kk := int64(k)
	// The root of a (n+s)-bit number has at least ⌊(n+s)/k⌋ bits.
	s := kk*(int64(p)+3) - int64(xm.bitLen())
	if s < 0 {
		s = 0
	}
	// xe-s must be a multiple of k.
	if r := (xe - s) % kk; r != 0 {
		if r < 0 {
			r += kk
		}
		s += r
	}
	m, sticky = nat(nil).shl(xm, uint(s)).rootRem(k)
	return m, (xe - s) / kk, sticky
}

// rootLarge sets z to the k-th root of a finite nonzero x when k exceeds
// x.MinPrec() and is large compared to the precision of z. The root is then
// either a power of two or irrational. It is approximated with a Newton
// iteration whose first corrections are computed in float64.
func (c *Context) rootLarge(z, x *Float, k uint64, rnd RoundingMode) Accuracy {
	// |x| = a × 2**(q k) with a = f × 2**r and 1/2 <= f < 1
	var q, r int64
	if k < 1<<62 {
		q, r = x.exp/int64(k), x.exp%int64(k)
	} else {
		r = x.exp
	}
	if x.MinPrec() == 1 {
		// |x| = 2**(exp-1)
		e1 := x.exp - 1
		if k < 1<<62 && e1%int64(k) == 0 || e1 == 0 {
			var d int64
			if e1 != 0 {
				d = e1 / int64(k)
			}
			one := exactInt64(1)
			one.neg = x.neg
			return c.Mul2Exp(z, one, d, rnd)
		}
	}
	w := c.Extended()
	f := NewFloat(x.Prec())
	w.Abs(f, x, ToNearestEven)
	f.exp = 0

	p := uint(z.prec)
	l := uint(bits.Len64(k))
	lg := (float64(r) + math.Log2(float64(f.top64())) - 64) / float64(k)
	guard := 2*uint(bits.Len(p)) + 20
	maxGuard := 64*p + 1<<16
	for {
		wp := p + l + guard
		w.SetPrec(wp)
		y := NewFloat(wp)
		w.SetFloat64(y, math.Exp2(lg), ToNearestEven)
		rho := NewFloat(wp)
		d := NewFloat(wp)
		for i := uint(0); i < wp/45+4; i++ {
			lr, small := rootResidual(w, rho, y, f, r, k)
			if small && (rho.form == zero || rho.exp < -int64(wp)-1) {
				break
			}
			if small && rho.exp < -40 {
				// (1+rho)**(1/k) - 1 = rho/k + O(rho²/k)
				w.SetUint64(d, k, ToNearestEven)
				w.Quo(d, rho, d, ToNearestEven)
			} else {
				w.SetFloat64(d, math.Expm1(lr/float64(k)), ToNearestEven)
			}
			w.Mul(d, d, y, ToNearestEven)
			w.Add(y, y, d, ToNearestEven)
		}
		_, small := rootResidual(w, rho, y, f, r, k)
		var err int64
		if small && (rho.form != finite || rho.exp < 0) {
			// |rho| < 1/2, so |y - root| <= 2 y (|rho| + 2**(l+5-wp)) / k
			m := int64(l) + 5 - int64(wp)
			if rho.form == finite && rho.exp > m {
				m = rho.exp
			}
			err = int64(l) - 3 - m
		}
		done := CanRound(y, err, rnd, p)
		if !done && guard > maxGuard {
			c.Logger().Warn("RootN: giving up correct rounding",
				zap.Uint("prec", p), zap.Uint64("k", k), zap.Uint("wp", wp))
			done = true
		}
		if done {
			w.Mul2Exp(y, y, q, ToNearestEven)
			y.neg = x.neg
			return c.Set(z, y, rnd)
		}
		c.Logger().Debug("RootN: retry", zap.Uint("prec", p), zap.Uint("wp", wp), zap.Int64("err", err))
		guard *= 2
	}
}

// rootResidual computes A = f × 2**r / y**k and returns ln A as a float64.
// If 1/4 <= A < 4, it also sets rho to A - 1 rounded to rho's precision and
// reports true. y must be positive and close to the root.
func rootResidual(w *Context, rho, y, f *Float, r int64, k uint64) (float64, bool) {
	// y**k = t × 2**e, with the exponent of t kept in e
	t := NewFloat(rho.Prec())
	w.SetInt64(t, 1, ToNearestEven)
	var e int64
	for i := bits.Len64(k) - 1; i >= 0; i-- {
		w.Sqr(t, t, ToNearestEven)
		e, t.exp = 2*e+t.exp, 0
		if k>>uint(i)&1 != 0 {
			w.Mul(t, t, y, ToNearestEven)
			e, t.exp = e+t.exp, 0
		}
	}
	w.Quo(t, f, t, ToNearestEven)
	d := r - e + t.exp
	if d >= -1 && d <= 2 {
		w.Mul2Exp(rho, t, r-e, ToNearestEven)
		w.Sub(rho, rho, exactInt64(1), ToNearestEven)
		rf, _ := rho.Float64(ToNearestEven)
		return math.Log1p(rf), true
	}
	t.exp = 0
	return (float64(d) + math.Log2(float64(t.top64())) - 64) * math.Ln2, false
}
