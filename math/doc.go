// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package math implements correctly rounded transcendental and special
// functions for mpfr.Float values.
//
// All functions have the form
//
//	func F(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy
//
// They set z to F(x) correctly rounded to z's precision (or c's default
// precision if z's precision is 0) with the rounding mode rnd, and return the
// ternary value. The flags of c are updated as for the arithmetic operations
// of mpfr.Context: invalid arguments produce NaN and raise the NaN flag,
// poles produce an infinity and raise DivByZero, and results outside the
// exponent range of c overflow or underflow.
//
// Results are computed with Ziv's strategy: the function is evaluated at a
// working precision somewhat larger than the target, together with an error
// bound, and the working precision is increased until the result can be
// correctly rounded. Exact results (such as Exp(0), Log2(8) or Gamma(5)) are
// detected beforehand. Retries are logged at debug level on the Context's
// logger.
//
// Mathematical constants are cached at the highest precision computed so far.
// The caches are safe for concurrent use.
package math
