// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfr

import (
	"github.com/pkg/errors"
)

// round sets z to (-1)**neg × (m + f) × 2**e rounded to z.prec bits with
// rnd, where 0 < f < 1 if sticky is set and f == 0 otherwise, and returns the
// ternary value. The result is then checked against the exponent range of c.
// Inexact, Overflow and Underflow flags are raised accordingly.
//
// If sticky is set, m must have at least z.prec+1 significant bits so that
// the rounding bit is known. m is only read; it may alias the mantissa of
// any operand, including z's.
//
// CAUTION: the sign matters for the directed rounding modes. A zero m with
// no sticky bit yields a zero of sign neg.
func (c *Context) round(z *Float, neg bool, m nat, e int64, sticky bool, rnd RoundingMode) Accuracy {
	c.prepare(z)
	m = m.norm()
	if len(m) == 0 {
		if sticky {
			panic("mpfr: rounding of an unknown nonzero value")
		}
		z.form = zero
		z.neg = neg
		return Exact
	}

	p := uint(z.prec)
	n := m.bitLen()
	E := e + int64(n)

	var (
		q       nat
		r, sbit bool
	)
	switch {
	case n > p:
		s := n - p
		r = m.bit(s-1) != 0
		sbit = sticky || m.sticky(s-1) != 0
		q = nat(nil).shr(m, s)
	case sticky:
		panic("mpfr: not enough bits to round")
	default:
		q = m
	}

	inexact := r || sbit
	inc := false
	if inexact {
		switch rnd {
		case ToNearestEven, Faithful:
			inc = r && (sbit || q[0]&1 != 0)
		case toNearestAway:
			inc = r
		case ToZero:
			// nothing to do
		case AwayFromZero:
			inc = true
		case ToPositiveInf:
			inc = !neg
		case ToNegativeInf:
			inc = neg
		default:
			panic("unreachable")
		}
	}
	if inc {
		q = nat(nil).incr(q)
		if q.bitLen() > p {
			// q == 2**p
			q = q.shr(q, 1)
			E++
		}
	}

	switch {
	case E > c.emax:
		return c.overflow(z, neg, rnd)
	case E < c.emin:
		return c.underflow(z, neg, rnd, E == c.emin-1 && !(q.isPow2() && (inc || !inexact)))
	}

	z.setFinite(neg, q, E)
	if !inexact {
		return Exact
	}
	c.raise(Inexact)
	return makeAcc(inc != neg)
}

// toInf reports whether a value overflowing with rounding mode rnd rounds to
// infinity rather than to the largest finite value.
func toInf(rnd RoundingMode, neg bool) bool {
	switch rnd {
	case ToZero:
		return false
	case ToPositiveInf:
		return !neg
	case ToNegativeInf:
		return neg
	}
	return true
}

// overflow sets z to ±Inf or to the largest finite value depending on rnd.
func (c *Context) overflow(z *Float, neg bool, rnd RoundingMode) Accuracy {
	c.prepare(z)
	c.raise(Overflow | Inexact)
	if toInf(rnd, neg) {
		z.SetInf(neg)
		return makeAcc(!neg)
	}
	z.setMax(neg, c.emax)
	return makeAcc(neg)
}

// underflow sets z to ±0 or to the smallest positive value ±2**(emin-1)
// depending on rnd. half reports, for round to nearest, whether the exact
// magnitude is above 2**(emin-2).
func (c *Context) underflow(z *Float, neg bool, rnd RoundingMode, half bool) Accuracy {
	c.prepare(z)
	c.raise(Underflow | Inexact)
	var up bool
	switch rnd {
	case ToNearestEven, Faithful, toNearestAway:
		up = half
	case ToZero:
		up = false
	case AwayFromZero:
		up = true
	case ToPositiveInf:
		up = !neg
	case ToNegativeInf:
		up = neg
	}
	if up {
		z.setMin(neg, c.emin)
		return makeAcc(!neg)
	}
	z.SetZero(neg)
	return makeAcc(neg)
}

// setNaN sets z to NaN and raises the NaN flag.
func (c *Context) setNaN(z *Float) Accuracy {
	c.prepare(z)
	c.raise(NaNFlag)
	z.SetNaN()
	return Exact
}

// virtual returns the mantissa of a finite x extended by one bit, such that
// rounding it to x.prec bits with sticky set reproduces x and the ternary
// value t. It is used to re-round an already rounded value.
func (x *Float) virtual(t Accuracy) (m nat, e int64, sticky bool) {
	m, e = x.exact()
	if t == Exact {
		return m, e, false
	}
	m = nat(nil).shl(m, 1)
	e--
	// t > 0 means x is above the exact value.
	if (t > 0) != x.neg {
		m = m.decr(m)
	}
	return m, e, true
}

// PrecRound rounds x to prec bits with rnd, changing its precision, and
// returns the ternary value. The value of x is kept when prec is large
// enough. It panics if x is built over borrowed storage and prec differs
// from x's precision.
func (c *Context) PrecRound(x *Float, prec uint, rnd RoundingMode) Accuracy {
	p := validPrec(prec)
	if x.prec == p {
		return Exact
	}
	if x.borrowed {
		panic(errors.Wrap(ErrBorrowed, "PrecRound"))
	}
	if x.form != finite {
		x.prec = p
		x.mant = nil
		return Exact
	}
	m, e := x.exact()
	m = nat(nil).set(m)
	x.prec = p
	x.mant = nil
	return c.round(x, x.neg, m, e, false, rnd)
}

// CheckRange checks that x, the result of an operation rounded with rnd and
// ternary value t, is within the exponent range of c. If it is not, x is
// set to the value it would have had with that range, the Overflow or
// Underflow flags are raised and the new ternary value is returned.
// Otherwise x is left unchanged and t is returned, raising Inexact if t is
// not Exact.
func (c *Context) CheckRange(x *Float, t Accuracy, rnd RoundingMode) Accuracy {
	if x.form != finite {
		return t
	}
	if x.exp >= c.emin && x.exp <= c.emax {
		if t != Exact {
			c.raise(Inexact)
		}
		return t
	}
	m, e, sticky := x.virtual(t)
	m = nat(nil).set(m)
	return c.round(x, x.neg, m, e, sticky, rnd)
}

// Subnormalize rounds x, the result of an operation rounded with rnd and
// ternary value t, so as to emulate IEEE 754 gradual underflow: if x has
// exponent E < emin + prec - 1, x is rounded to E - emin + 1 bits. The
// previous ternary value is used to avoid double rounding errors. It
// returns the new ternary value.
func (c *Context) Subnormalize(x *Float, t Accuracy, rnd RoundingMode) Accuracy {
	if x.form != finite {
		return t
	}
	if x.exp >= c.emin+int64(x.prec)-1 {
		return t
	}
	p := x.exp - c.emin + 1
	if p < 1 {
		p = 1
	}
	m, e, sticky := x.virtual(t)
	m = nat(nil).set(m)
	tmp := Float{prec: uint32(p)}
	acc := c.round(&tmp, x.neg, m, e, sticky, rnd)
	if tmp.form != finite {
		// cannot happen within the range
		x.form = tmp.form
		x.neg = tmp.neg
		return acc
	}
	q, _ := tmp.exact()
	x.setFinite(tmp.neg, q, tmp.exp)
	return acc
}

// CanRound reports whether an approximation b of an unknown value x, with
// |b - x| <= 2**(b.Exp() - err), can be rounded to prec bits with rnd
// such that the result and its ternary value are those of x rounded to prec
// bits. b must be a regular value.
func CanRound(b *Float, err int64, rnd RoundingMode, prec uint) bool {
	if b.form != finite || err <= 0 {
		return false
	}
	q := prec
	if rnd == ToNearestEven || rnd == Faithful {
		q++
	}
	if err <= int64(q) {
		return false
	}
	mb, eb := b.exact()
	ed := b.exp - err
	e := min64(eb, ed)
	M := nat(nil).shl(mb, uint(eb-e))
	D := nat(nil).shl(nat(nil).setUint64(1), uint(ed-e))
	if M.cmp(D) <= 0 {
		return false
	}
	lo := nat(nil).sub(M, D)
	hi := nat(nil).add(M, D)
	n := lo.bitLen()
	if hi.bitLen() != n || n <= q {
		return false
	}
	s := n - q
	// lo must not lie on a rounding boundary, and lo and hi must truncate
	// to the same value.
	if lo.sticky(s) == 0 {
		return false
	}
	return nat(nil).shr(lo, s).cmp(nat(nil).shr(hi, s)) == 0
}
