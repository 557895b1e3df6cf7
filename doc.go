// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package mpfr implements arbitrary-precision binary floating-point arithmetic
with correct rounding, in the spirit of the GNU MPFR library.

A Float holds a binary value of an arbitrary precision (from 1 to MaxPrec
bits), its sign, and one of four forms: zero, regular (finite nonzero),
infinite or NaN. Unlike big.Float, every operation rounds its exact result
exactly once to the precision of the destination, with one of six rounding
modes, and reports on which side of the exact value the result lies (its
ternary value, an Accuracy).

The mantissa is stored as a little-endian Word slice, with the most
significant bit of the last Word set, so that

	x = ±0.mantissa × 2**exponent

The zero value for a Float corresponds to +0 with precision 0. Precision 0
means "not yet set": a Float used as the destination of an operation takes the
default precision of the Context of the operation:

	var x mpfr.Float  // x is a Float of value +0 and precision 0
	z := mpfr.NewFloat(200)  // z is a Float of value +0 and precision 200

Operations are methods of a Context. A Context holds the default precision and
rounding mode used by its constructors, the exponent range [Emin, Emax] of its
results and a set of sticky exception flags (Underflow, Overflow, NaNFlag,
Inexact, Erange, DivByZero). Operations are of the form:

	func (c *Context) SetV(z *Float, v V, rnd RoundingMode) Accuracy      // z = v
	func (c *Context) Unary(z, x *Float, rnd RoundingMode) Accuracy       // z = unary x
	func (c *Context) Binary(z, x, y *Float, rnd RoundingMode) Accuracy   // z = x binary y
	func (x *Float) Pred() P                                              // p = pred(x)

The destination z keeps its own precision, and may be one of the operands.
Operands are never modified otherwise. For instance:

	c := mpfr.NewContext()
	x := mpfr.NewFloat(100)
	c.SetInt64(x, 1, mpfr.ToNearestEven)
	c.Quo(x, x, c.NewInt64(3), mpfr.ToZero) // x = 1/3 rounded to 100 bits toward zero

Operations never fail: invalid operations produce NaN and raise the NaNFlag
flag, a division of a nonzero value by zero produces an infinity and raises
DivByZero, and results outside the exponent range overflow to infinity or the
largest finite value, or underflow to zero or the smallest positive value,
depending on the rounding mode. Errors are only reported for conversions that
cannot represent their result and for malformed input.

Contexts are not shared implicitly: each goroutine should use its own
Context. Floats are not safe for concurrent modification.

Transcendental functions live in package mpfr/math, formatted output with
MPFR-style directives in package mpfr/printf, random Floats in package
mpfr/random and conversions to and from other decimal types in package
mpfr/interop.

*Float satisfies the fmt package's Scanner interface for scanning and the
Formatter interface for formatted printing.
*/
package mpfr
