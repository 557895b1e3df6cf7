// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"math/bits"

	"github.com/db47h/mpfr"
	"go.uber.org/zap"
)

const rn = mpfr.ToNearestEven

// approx computes into t an approximation of a function value at t's
// precision (the working precision) and returns err such that
//
//	|t - exact| <= 2**(t.Exp() - err)
//
// An err <= 0 requests a retry at a higher precision.
//
// w is a Context with the widest exponent range whose flags are discarded.
type approx func(w *mpfr.Context, t *mpfr.Float) int64

// targetPrec returns the precision of the result stored in z.
func targetPrec(c *mpfr.Context, z *mpfr.Float) uint {
	if p := z.Prec(); p != 0 {
		return p
	}
	return c.Prec()
}

// initialGuard returns the number of guard bits of the first Ziv iteration
// for a target precision p.
func initialGuard(p uint) uint {
	return 2*uint(bits.Len(p)) + 20
}

// ziv sets z to f correctly rounded with rnd, using Ziv's strategy: f is
// evaluated with increasing working precision until its error bound allows
// correct rounding. f must never be an exactly representable value.
func ziv(c *mpfr.Context, z *mpfr.Float, rnd mpfr.RoundingMode, name string, f approx) mpfr.Accuracy {
	p := targetPrec(c, z)
	guard := initialGuard(p)
	maxGuard := 64*p + 1<<16
	for {
		wp := p + guard
		w := c.Extended().SetPrec(wp)
		t := mpfr.NewFloat(wp)
		err := f(w, t)
		if !t.IsRegular() && err > 0 {
			// exact special value
			return c.Set(z, t, rnd)
		}
		if mpfr.CanRound(t, err, rnd, p) {
			return c.Set(z, t, rnd)
		}
		if guard > maxGuard {
			c.Logger().Warn("ziv: giving up correct rounding",
				zap.String("func", name), zap.Uint("prec", p), zap.Uint("wp", wp))
			return c.Set(z, t, rnd)
		}
		c.Logger().Debug("ziv: retry",
			zap.String("func", name), zap.Uint("prec", p), zap.Uint("wp", wp), zap.Int64("err", err))
		guard *= 2
	}
}

// nudgePrec returns the precision at which nudge moves v. Callers use it to
// check that the distance between v and the exact value is below
// 2**(v.Exp()-nudgePrec-1).
func nudgePrec(c *mpfr.Context, z, v *mpfr.Float) uint {
	p := targetPrec(c, z) + 1
	if q := v.Prec(); q > p {
		p = q
	}
	return p + 2
}

// tiny reports whether an exact value v + d, with |d| <= 2**de, is close
// enough to v for nudge.
func tiny(c *mpfr.Context, z, v *mpfr.Float, de int64) bool {
	return de < v.Exp()-int64(nudgePrec(c, z, v))-1
}

// nudge sets z to the rounding of an exact value lying strictly between v
// and its neighbour toward +Inf (up) or -Inf at precision nudgePrec, and
// returns the ternary value. v must be regular.
func nudge(c *mpfr.Context, z, v *mpfr.Float, up bool, rnd mpfr.RoundingMode) mpfr.Accuracy {
	w := c.Extended()
	t := mpfr.NewFloat(nudgePrec(c, z, v))
	w.Set(t, v, rn)
	if up {
		w.NextAbove(t)
	} else {
		w.NextBelow(t)
	}
	return c.Set(z, t, rnd)
}

// setNaN sets z to NaN and raises the NaN flag of c.
func setNaN(c *mpfr.Context, z *mpfr.Float) mpfr.Accuracy {
	return c.Set(z, new(mpfr.Float).SetNaN(), rn)
}

// setInf sets z to an exact infinity.
func setInf(c *mpfr.Context, z *mpfr.Float, neg bool) mpfr.Accuracy {
	return c.Set(z, new(mpfr.Float).SetInf(neg), rn)
}

// setZero sets z to an exact zero.
func setZero(c *mpfr.Context, z *mpfr.Float, neg bool) mpfr.Accuracy {
	return c.Set(z, new(mpfr.Float).SetZero(neg), rn)
}

// pole sets z to an exact infinity and raises the DivByZero flag.
func pole(c *mpfr.Context, z *mpfr.Float, neg bool) mpfr.Accuracy {
	c.SetFlags(mpfr.DivByZero)
	return setInf(c, z, neg)
}

var (
	one      = newInt(1)
	minusOne = newInt(-1)
	two      = newInt(2)
	four     = newInt(4)
	ten      = newInt(10)
)

// newInt returns an exact Float of value i.
func newInt(i int64) *mpfr.Float {
	z := mpfr.NewFloat(64)
	wideCtx.SetInt64(z, i, rn)
	return z
}

// wideCtx is used for exact constant setup only.
var wideCtx = mpfr.NewContext().Extended()

// overflow sets z to the overflow value of c for the sign neg and rnd,
// raising the Overflow and Inexact flags.
func overflow(c *mpfr.Context, z *mpfr.Float, neg bool, rnd mpfr.RoundingMode) mpfr.Accuracy {
	s := one
	if neg {
		s = minusOne
	}
	return c.Mul2Exp(z, s, 1<<62, rnd)
}

// underflow sets z to the underflow value of c for a value of sign neg
// whose magnitude is much smaller than 2**(c.Emin()-1).
func underflow(c *mpfr.Context, z *mpfr.Float, neg bool, rnd mpfr.RoundingMode) mpfr.Accuracy {
	s := one
	if neg {
		s = minusOne
	}
	return c.Mul2Exp(z, s, -(1 << 62), rnd)
}

// scale2 sets z to t × 2**e, where t holds a result at z's target precision
// rounded with rnd and ternary value acc, and returns the ternary value of
// z. The scaling is exact in the widest range; z is then checked against the
// exponent range of c.
func scale2(c *mpfr.Context, z, t *mpfr.Float, acc mpfr.Accuracy, e int64, rnd mpfr.RoundingMode) mpfr.Accuracy {
	c.Extended().Mul2Exp(t, t, e, rn)
	acc = c.CheckRange(t, acc, rnd)
	c.Set(z, t, rnd)
	return acc
}

// nf returns a new Float of precision p.
func nf(p uint) *mpfr.Float {
	return mpfr.NewFloat(p)
}

// errFromAbs converts an absolute error bound 2**ae on t into a Ziv error
// count, accounting for the final rounding of t.
func errFromAbs(t *mpfr.Float, ae int64) int64 {
	if !t.IsRegular() {
		return 0
	}
	e := t.Exp() - ae - 1
	if p := int64(t.Prec()) - 1; e > p {
		e = p
	}
	return e
}

// errAdd returns the error count of t when an absolute error of 2**ae adds
// up to the error count err.
func errAdd(t *mpfr.Float, err, ae int64) int64 {
	return t.Exp() - max64(t.Exp()-err, ae) - 1
}

// lenInt returns the number of bits of |i|.
func lenInt(i int64) int64 {
	if i < 0 {
		i = -i
	}
	return int64(bits.Len64(uint64(i)))
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
