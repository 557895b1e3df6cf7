// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"math/big"
	"math/bits"

	"github.com/db47h/mpfr"
)

// trigSeries sets z to the Taylor series of sin(r) (or cos(r) if cos is
// set) for |r| < 1 at z's precision and returns the number of terms. The
// absolute error on z is below n×2**(EXP(z)+2-prec z).
func trigSeries(w *mpfr.Context, z, r *mpfr.Float, cos bool) int64 {
	p := z.Prec()
	var (
		r2   = nf(p)
		term = nf(p)
		i    int64
	)
	w.Sqr(r2, r, rn)
	if cos {
		w.Set(term, one, rn)
	} else {
		w.Set(term, r, rn)
		i = 1
	}
	w.Set(z, term, rn)
	var n int64
	for n = 1; ; n++ {
		w.Mul(term, term, r2, rn)
		w.QuoInt64(term, term, -(i+1)*(i+2), rn)
		i += 2
		if term.IsZero() || term.Exp() < z.Exp()-int64(p)-2 {
			break
		}
		w.Add(z, z, term, rn)
	}
	return n
}

// reduce sets r to x - k×π/2 with |r| <= π/4 (approximately) and returns k
// mod 4 and the exponent ae of the absolute error of r. Arguments with
// |x| < 1 are not reduced.
func reduce(w *mpfr.Context, r, x *mpfr.Float) (quad uint, ae int64) {
	q := r.Prec()
	if x.Exp() <= 0 {
		w.Set(r, x, rn)
		return 0, x.Exp() - int64(q) - 1
	}
	qq := q + uint(x.Exp())
	hp := pi(w, qq+2)
	w.Quo2Exp(hp, hp, 1, rn) // |hp - π/2| <= 2**(-qq-1)
	k := nf(qq)
	w.Quo(k, x, hp, rn)
	w.Rint(k, k, mpfr.ToNearestEven)
	kb, _ := k.Int(nil, mpfr.ToZero)
	quad = uint(new(big.Int).And(kb, big.NewInt(3)).Uint64())
	t := nf(qq)
	w.Mul(t, k, hp, rn)
	rr := nf(qq)
	w.Sub(rr, x, t, rn)
	w.Set(r, rr, rn)
	// |k| <= 2**EXP(x): errors of hp, Mul, Sub and the final rounding
	return quad, max64(x.Exp()+2-int64(qq), rr.Exp()-int64(q)) + 1
}

// sinCos computes s = sin(x) and co = cos(x) for a regular x, either of
// which may be nil, at precision q, and returns the exponent of their
// absolute error.
func sinCos(w *mpfr.Context, s, co, x *mpfr.Float, q uint) int64 {
	r := nf(q)
	quad, ae := reduce(w, r, x)
	var (
		ss  = nf(q)
		cc  = nf(q)
		n   int64
		neg = func(z *mpfr.Float) { w.Neg(z, z, rn) }
	)
	needSin := s != nil && quad&1 == 0 || co != nil && quad&1 == 1
	needCos := s != nil && quad&1 == 1 || co != nil && quad&1 == 0
	var se int64 = -1 << 62
	if needSin {
		n = trigSeries(w, ss, r, false)
		se = ss.Exp()
	}
	if needCos {
		n = max64(n, trigSeries(w, cc, r, true))
		se = max64(se, cc.Exp())
	}
	// quadrants: sin(x) = S, C, -S, -C and cos(x) = C, -S, -C, S
	if s != nil {
		if quad&1 == 0 {
			w.Set(s, ss, rn)
		} else {
			w.Set(s, cc, rn)
		}
		if quad >= 2 {
			neg(s)
		}
	}
	if co != nil {
		if quad&1 == 0 {
			w.Set(co, cc, rn)
		} else {
			w.Set(co, ss, rn)
		}
		if quad == 1 || quad == 2 {
			neg(co)
		}
	}
	return max64(ae, se+int64(bits.Len64(uint64(n)))+2-int64(q)) + 1
}

// Sin sets z to sin(x) rounded with rnd. Sin(±0) = ±0; Sin(±Inf) and
// Sin(NaN) are NaN.
func Sin(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN() || x.IsInf():
		return setNaN(c, z)
	case x.IsZero():
		return c.Set(z, x, rnd)
	}
	// |sin(x) - x| < |x|³/6, sin(x) is closer to 0 than x
	if tiny(c, z, x, 3*x.Exp()-2) {
		return nudge(c, z, x, x.Signbit(), rnd)
	}
	return ziv(c, z, rnd, "Sin", func(w *mpfr.Context, t *mpfr.Float) int64 {
		u := nf(t.Prec() + 10)
		ae := sinCos(w, u, nil, x, u.Prec())
		w.Set(t, u, rn)
		return errFromAbs(t, ae)
	})
}

// Cos sets z to cos(x) rounded with rnd. Cos(±0) = 1; Cos(±Inf) and
// Cos(NaN) are NaN.
func Cos(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN() || x.IsInf():
		return setNaN(c, z)
	case x.IsZero():
		return c.Set(z, one, rnd)
	}
	// 1 - x²/2 < cos(x) < 1
	if tiny(c, z, one, 2*x.Exp()-1) {
		return nudge(c, z, one, false, rnd)
	}
	return ziv(c, z, rnd, "Cos", func(w *mpfr.Context, t *mpfr.Float) int64 {
		u := nf(t.Prec() + 10)
		ae := sinCos(w, nil, u, x, u.Prec())
		w.Set(t, u, rn)
		return errFromAbs(t, ae)
	})
}

// SinCos sets s to sin(x) and co to cos(x), both rounded with rnd, and
// returns their ternary values. s and co must be distinct.
func SinCos(c *mpfr.Context, s, co, x *mpfr.Float, rnd mpfr.RoundingMode) (sacc, cacc mpfr.Accuracy) {
	if s == co {
		panic("mpfr/math: SinCos with identical destinations")
	}
	if x == s || x == co {
		x = new(mpfr.Float).Copy(x)
	}
	return Sin(c, s, x, rnd), Cos(c, co, x, rnd)
}

// quoErr returns the exponent of the absolute error of t = a/b computed at
// precision q, where a and b have absolute errors below 2**ae.
func quoErr(t, a, b *mpfr.Float, ae int64, q uint) int64 {
	var re int64 = -int64(q)
	if a != nil {
		re = max64(re, ae-a.Exp()+1)
	}
	re = max64(re, ae-b.Exp()+1)
	return t.Exp() + re + 2
}

// Tan sets z to tan(x) rounded with rnd. Tan(±0) = ±0; Tan(±Inf) and
// Tan(NaN) are NaN.
func Tan(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN() || x.IsInf():
		return setNaN(c, z)
	case x.IsZero():
		return c.Set(z, x, rnd)
	}
	// tan(x) - x ≈ x³/3, with the sign of x
	if tiny(c, z, x, 3*x.Exp()-1) {
		return nudge(c, z, x, !x.Signbit(), rnd)
	}
	return ziv(c, z, rnd, "Tan", func(w *mpfr.Context, t *mpfr.Float) int64 {
		q := t.Prec() + 10
		s, co, u := nf(q), nf(q), nf(q)
		ae := sinCos(w, s, co, x, q)
		if s.IsZero() || co.IsZero() {
			return 0
		}
		w.Quo(u, s, co, rn)
		ae = quoErr(u, s, co, ae, q)
		w.Set(t, u, rn)
		return errFromAbs(t, ae)
	})
}

// Sec sets z to 1/cos(x) rounded with rnd. Sec(±0) = 1; Sec(±Inf) and
// Sec(NaN) are NaN.
func Sec(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN() || x.IsInf():
		return setNaN(c, z)
	case x.IsZero():
		return c.Set(z, one, rnd)
	}
	// 1 < sec(x) < 1 + x²
	if tiny(c, z, one, 2*x.Exp()) {
		return nudge(c, z, one, true, rnd)
	}
	return ziv(c, z, rnd, "Sec", func(w *mpfr.Context, t *mpfr.Float) int64 {
		q := t.Prec() + 10
		co, u := nf(q), nf(q)
		ae := sinCos(w, nil, co, x, q)
		if co.IsZero() {
			return 0
		}
		w.Quo(u, one, co, rn)
		ae = quoErr(u, nil, co, ae, q)
		w.Set(t, u, rn)
		return errFromAbs(t, ae)
	})
}

// Csc sets z to 1/sin(x) rounded with rnd. Csc(±0) = ±Inf and raises
// DivByZero; Csc(±Inf) and Csc(NaN) are NaN.
func Csc(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN() || x.IsInf():
		return setNaN(c, z)
	case x.IsZero():
		return pole(c, z, x.Signbit())
	}
	// csc(x) - 1/x ≈ x/6, with the sign of x
	if x.MinPrec() == 1 {
		if v := inv2(x); tiny(c, z, v, x.Exp()-2) {
			return nudge(c, z, v, !x.Signbit(), rnd)
		}
	}
	return ziv(c, z, rnd, "Csc", func(w *mpfr.Context, t *mpfr.Float) int64 {
		q := t.Prec() + 10
		s, u := nf(q), nf(q)
		ae := sinCos(w, s, nil, x, q)
		if s.IsZero() {
			return 0
		}
		w.Quo(u, one, s, rn)
		ae = quoErr(u, nil, s, ae, q)
		w.Set(t, u, rn)
		return errFromAbs(t, ae)
	})
}

// Cot sets z to 1/tan(x) rounded with rnd. Cot(±0) = ±Inf and raises
// DivByZero; Cot(±Inf) and Cot(NaN) are NaN.
func Cot(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	switch {
	case x.IsNaN() || x.IsInf():
		return setNaN(c, z)
	case x.IsZero():
		return pole(c, z, x.Signbit())
	}
	// cot(x) - 1/x ≈ -x/3, with the sign of -x
	if x.MinPrec() == 1 {
		if v := inv2(x); tiny(c, z, v, x.Exp()-1) {
			return nudge(c, z, v, x.Signbit(), rnd)
		}
	}
	return ziv(c, z, rnd, "Cot", func(w *mpfr.Context, t *mpfr.Float) int64 {
		q := t.Prec() + 10
		s, co, u := nf(q), nf(q), nf(q)
		ae := sinCos(w, s, co, x, q)
		if s.IsZero() || co.IsZero() {
			return 0
		}
		w.Quo(u, co, s, rn)
		ae = quoErr(u, co, s, ae, q)
		w.Set(t, u, rn)
		return errFromAbs(t, ae)
	})
}

// inv2 returns 1/x for x = ±2**k exactly.
func inv2(x *mpfr.Float) *mpfr.Float {
	v := nf(1)
	s := one
	if x.Signbit() {
		s = minusOne
	}
	wideCtx.Mul2Exp(v, s, 1-x.Exp(), rn)
	return v
}
