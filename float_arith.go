// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfr

import "math"

// Arithmetic operations. All operations of the form
//
//	func (c *Context) Op(z, x, y *Float, rnd RoundingMode) Accuracy
//
// compute the exact result of x Op y, round it once to z's precision with
// rnd (c's default precision if z has none) and store it in z. The operands
// may alias z. The returned Accuracy is the ternary value of the result and
// the flags of c are updated.

// Set sets z to the value of x rounded to z's precision.
func (c *Context) Set(z, x *Float, rnd RoundingMode) Accuracy {
	return c.setSigned(z, x, x.neg, rnd)
}

// Neg sets z to -x.
func (c *Context) Neg(z, x *Float, rnd RoundingMode) Accuracy {
	return c.setSigned(z, x, !x.neg, rnd)
}

// Abs sets z to |x|.
func (c *Context) Abs(z, x *Float, rnd RoundingMode) Accuracy {
	return c.setSigned(z, x, false, rnd)
}

// CopySign sets z to |x| with the sign of y.
func (c *Context) CopySign(z, x, y *Float, rnd RoundingMode) Accuracy {
	return c.setSigned(z, x, y.neg, rnd)
}

// SetSign sets z to |x| with the sign given by neg.
func (c *Context) SetSign(z, x *Float, neg bool, rnd RoundingMode) Accuracy {
	return c.setSigned(z, x, neg, rnd)
}

// setSigned sets z to |x| with the sign neg, rounded to z's precision.
func (c *Context) setSigned(z, x *Float, neg bool, rnd RoundingMode) Accuracy {
	c.prepare(z)
	switch x.form {
	case nan:
		return c.setNaN(z)
	case inf:
		z.SetInf(neg)
		return Exact
	case zero:
		z.SetZero(neg)
		return Exact
	}
	if z == x && z.prec == x.prec && x.exp >= c.emin && x.exp <= c.emax {
		z.neg = neg
		return Exact
	}
	m, e := x.exact()
	return c.round(z, neg, m, e, false, rnd)
}

// Add sets z to the rounded sum x+y. If x and y are infinities with
// opposite signs, z is set to NaN. An exact zero sum of nonzero operands is
// +0, or -0 when rounding toward -Inf.
func (c *Context) Add(z, x, y *Float, rnd RoundingMode) Accuracy {
	return c.add(z, x, y, y.neg, rnd)
}

// Sub sets z to the rounded difference x-y.
func (c *Context) Sub(z, x, y *Float, rnd RoundingMode) Accuracy {
	return c.add(z, x, y, !y.neg, rnd)
}

// add sets z to x + (-1)**yneg × |y|.
func (c *Context) add(z, x, y *Float, yneg bool, rnd RoundingMode) Accuracy {
	c.prepare(z)
	if x.form == nan || y.form == nan {
		return c.setNaN(z)
	}
	if x.form == finite && y.form == finite {
		xm, xe := x.exact()
		ym, ye := y.exact()
		neg, m, e := addExact(x.neg, xm, xe, yneg, ym, ye, uint(z.prec))
		if len(m) == 0 {
			neg = rnd == ToNegativeInf
		}
		return c.round(z, neg, m, e, false, rnd)
	}
	if x.form == inf || y.form == inf {
		if x.form == inf && y.form == inf && x.neg != yneg {
			return c.setNaN(z)
		}
		if x.form == inf {
			z.SetInf(x.neg)
		} else {
			z.SetInf(yneg)
		}
		return Exact
	}
	// x or y is zero
	if x.form == zero && y.form == zero {
		neg := x.neg && yneg
		if x.neg != yneg {
			neg = rnd == ToNegativeInf
		}
		z.SetZero(neg)
		return Exact
	}
	if x.form == zero {
		return c.setSigned(z, y, yneg, rnd)
	}
	return c.setSigned(z, x, x.neg, rnd)
}

// alignAdd returns the exact sum (-1)**xn × xm × 2**xe + (-1)**yn × ym × 2**ye.
// The result is normalized; it is empty for an exact zero.
func alignAdd(xn bool, xm nat, xe int64, yn bool, ym nat, ye int64) (neg bool, m nat, e int64) {
	e = min64(xe, ye)
	a := nat(nil).shl(xm, uint(xe-e))
	b := nat(nil).shl(ym, uint(ye-e))
	if xn == yn {
		return xn, a.add(a, b), e
	}
	switch a.cmp(b) {
	case 1:
		return xn, a.sub(a, b), e
	case -1:
		return yn, b.sub(b, a), e
	}
	return false, nil, e
}

// addExact is like alignAdd, except that an addend too small to affect the
// rounding of the sum to p bits is replaced by a tiny stand-in of the same
// sign. This bounds the alignment shift by the operand sizes and p, while
// preserving both the rounded result and the ternary value.
func addExact(xn bool, xm nat, xe int64, yn bool, ym nat, ye int64, p uint) (neg bool, m nat, e int64) {
	xE := xe + int64(xm.bitLen())
	yE := ye + int64(ym.bitLen())
	if xE < yE {
		xn, xm, xe, xE, yn, ym, ye, yE = yn, ym, ye, yE, xn, xm, xe, xE
	}
	// |x| >= 2**(xE-1) and x is a multiple of 2**(xE-L+3): no rounding
	// boundary of the sum lies strictly between x and x ± 2**(xE-L).
	L := int64(p)
	if n := int64(xm.bitLen()); n > L {
		L = n
	}
	L += 3
	if yE <= xE-L {
		ym = nat(nil).setUint64(1)
		ye = xE - L - 1
	}
	return alignAdd(xn, xm, xe, yn, ym, ye)
}

// Mul sets z to the rounded product x*y. 0 × ±Inf is NaN.
func (c *Context) Mul(z, x, y *Float, rnd RoundingMode) Accuracy {
	c.prepare(z)
	if x.form == nan || y.form == nan {
		return c.setNaN(z)
	}
	neg := x.neg != y.neg
	if x.form == finite && y.form == finite {
		xm, xe := x.exact()
		ym, ye := y.exact()
		return c.round(z, neg, xm.mul(ym), xe+ye, false, rnd)
	}
	if x.form == inf || y.form == inf {
		if x.form == zero || y.form == zero {
			return c.setNaN(z)
		}
		z.SetInf(neg)
		return Exact
	}
	z.SetZero(neg)
	return Exact
}

// Sqr sets z to the rounded square of x.
func (c *Context) Sqr(z, x *Float, rnd RoundingMode) Accuracy {
	return c.Mul(z, x, x, rnd)
}

// Quo sets z to the rounded quotient x/y. ±0/±0 and ±Inf/±Inf are NaN. A
// nonzero x divided by ±0 is an infinity with the sign of the quotient and
// raises DivByZero.
func (c *Context) Quo(z, x, y *Float, rnd RoundingMode) Accuracy {
	c.prepare(z)
	if x.form == nan || y.form == nan {
		return c.setNaN(z)
	}
	neg := x.neg != y.neg
	if x.form == finite && y.form == finite {
		xm, xe := x.exact()
		ym, ye := y.exact()
		m, e, sticky := quoExact(xm, xe, ym, ye, uint(z.prec))
		return c.round(z, neg, m, e, sticky, rnd)
	}
	switch {
	case x.form == zero && y.form == zero, x.form == inf && y.form == inf:
		return c.setNaN(z)
	case x.form == zero, y.form == inf:
		z.SetZero(neg)
	case y.form == zero:
		c.raise(DivByZero)
		z.SetInf(neg)
	default: // x.form == inf
		z.SetInf(neg)
	}
	return Exact
}

// quoExact returns the truncated quotient (xm×2**xe)/(ym×2**ye) as m×2**e
// with at least p+2 bits, and whether the remainder is nonzero.
func quoExact(xm nat, xe int64, ym nat, ye int64, p uint) (m nat, e int64, sticky bool) {
	s := int64(p) + 2 + int64(ym.bitLen()) - int64(xm.bitLen())
	if s < 0 {
		s = 0
	}
	num := nat(nil).shl(xm, uint(s))
	q, r := num.quoRem(ym)
	return q, xe - s - ye, len(r.norm()) > 0
}

// FMA sets z to the rounded value of x*y + u, with a single rounding.
func (c *Context) FMA(z, x, y, u *Float, rnd RoundingMode) Accuracy {
	return c.fma(z, x, y, u, u.neg, rnd)
}

// FMS sets z to the rounded value of x*y - u, with a single rounding.
func (c *Context) FMS(z, x, y, u *Float, rnd RoundingMode) Accuracy {
	return c.fma(z, x, y, u, !u.neg, rnd)
}

func (c *Context) fma(z, x, y, u *Float, uneg bool, rnd RoundingMode) Accuracy {
	c.prepare(z)
	if x.form == nan || y.form == nan || u.form == nan {
		return c.setNaN(z)
	}
	pneg := x.neg != y.neg
	if x.form == inf || y.form == inf {
		if x.form == zero || y.form == zero {
			return c.setNaN(z)
		}
		if u.form == inf && uneg != pneg {
			return c.setNaN(z)
		}
		z.SetInf(pneg)
		return Exact
	}
	if u.form == inf {
		z.SetInf(uneg)
		return Exact
	}
	if x.form == zero || y.form == zero {
		if u.form == zero {
			neg := pneg && uneg
			if pneg != uneg {
				neg = rnd == ToNegativeInf
			}
			z.SetZero(neg)
			return Exact
		}
		return c.setSigned(z, u, uneg, rnd)
	}
	xm, xe := x.exact()
	ym, ye := y.exact()
	pm, pe := xm.mul(ym), xe+ye
	if u.form == zero {
		return c.round(z, pneg, pm, pe, false, rnd)
	}
	um, ue := u.exact()
	neg, m, e := addExact(pneg, pm, pe, uneg, um, ue, uint(z.prec))
	if len(m) == 0 {
		neg = rnd == ToNegativeInf
	}
	return c.round(z, neg, m, e, false, rnd)
}

// Dim sets z to the positive difference x-y if x > y, and to +0 otherwise.
// z is NaN if x or y is NaN.
func (c *Context) Dim(z, x, y *Float, rnd RoundingMode) Accuracy {
	c.prepare(z)
	if x.form == nan || y.form == nan {
		return c.setNaN(z)
	}
	if x.cmp(y) > 0 {
		return c.Sub(z, x, y, rnd)
	}
	z.SetZero(false)
	return Exact
}

// Min sets z to the minimum of x and y. If one operand is NaN, z is set to
// the other one. -0 is considered smaller than +0.
func (c *Context) Min(z, x, y *Float, rnd RoundingMode) Accuracy {
	return c.minmax(z, x, y, -1, rnd)
}

// Max sets z to the maximum of x and y. If one operand is NaN, z is set to
// the other one. +0 is considered larger than -0.
func (c *Context) Max(z, x, y *Float, rnd RoundingMode) Accuracy {
	return c.minmax(z, x, y, +1, rnd)
}

func (c *Context) minmax(z, x, y *Float, dir int, rnd RoundingMode) Accuracy {
	switch {
	case x.form == nan && y.form == nan:
		return c.setNaN(z)
	case x.form == nan:
		return c.Set(z, y, rnd)
	case y.form == nan:
		return c.Set(z, x, rnd)
	}
	if x.form == zero && y.form == zero {
		neg := x.neg && y.neg
		if dir < 0 {
			neg = x.neg || y.neg
		}
		c.prepare(z)
		z.SetZero(neg)
		return Exact
	}
	if x.cmp(y)*dir >= 0 {
		return c.Set(z, x, rnd)
	}
	return c.Set(z, y, rnd)
}

// Mul2Exp sets z to x × 2**k rounded to z's precision.
func (c *Context) Mul2Exp(z, x *Float, k int64, rnd RoundingMode) Accuracy {
	if x.form != finite {
		return c.Set(z, x, rnd)
	}
	const lim = 1 << 62
	switch {
	case k > lim:
		k = lim
	case k < -lim:
		k = -lim
	}
	m, e := x.exact()
	return c.round(z, x.neg, m, e+k, false, rnd)
}

// Quo2Exp sets z to x / 2**k rounded to z's precision.
func (c *Context) Quo2Exp(z, x *Float, k int64, rnd RoundingMode) Accuracy {
	if k == math.MinInt64 {
		k++
	}
	return c.Mul2Exp(z, x, -k, rnd)
}

// Sum sets z to the sum of all the values in xs, rounded once. The cost of
// the exact accumulation grows with the exponent spread of the terms.
func (c *Context) Sum(z *Float, xs []*Float, rnd RoundingMode) Accuracy {
	c.prepare(z)
	var (
		posInf, negInf bool
		posZero        bool
		negZero        bool
		nonZero        bool
		neg            bool
		m              nat
		e              int64
	)
	for _, x := range xs {
		switch x.form {
		case nan:
			return c.setNaN(z)
		case inf:
			if x.neg {
				negInf = true
			} else {
				posInf = true
			}
		case zero:
			if x.neg {
				negZero = true
			} else {
				posZero = true
			}
		case finite:
			xm, xe := x.exact()
			if !nonZero {
				nonZero = true
				neg, m, e = x.neg, nat(nil).set(xm), xe
				continue
			}
			if len(m) == 0 {
				neg, m, e = x.neg, nat(nil).set(xm), xe
				continue
			}
			neg, m, e = alignAdd(neg, m, e, x.neg, xm, xe)
		}
	}
	switch {
	case posInf && negInf:
		return c.setNaN(z)
	case posInf || negInf:
		z.SetInf(negInf)
		return Exact
	}
	if len(m) == 0 {
		switch {
		case nonZero:
			z.SetZero(rnd == ToNegativeInf)
		case negZero:
			z.SetZero(!posZero || rnd == ToNegativeInf)
		default:
			z.SetZero(false)
		}
		return Exact
	}
	return c.round(z, neg, m, e, false, rnd)
}
