// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import "github.com/db47h/mpfr"

// FMA sets z to x×y + u, computed with only one rounding, and returns the
// ternary value. If z's precision is 0, the precision of c is used.
// FMA(0, ±Inf, u) and Inf - Inf set z to NaN.
//
// This function is a proxy for c.FMA(z, x, y, u, rnd).
func FMA(c *mpfr.Context, z, x, y, u *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	return c.FMA(z, x, y, u, rnd)
}

// Sqrt sets z to the rounded square root of x. Sqrt(-0) = -0 and Sqrt(x)
// with x < 0 sets z to NaN.
//
// This function is a proxy for c.Sqrt(z, x, rnd).
func Sqrt(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	return c.Sqrt(z, x, rnd)
}

// Cbrt sets z to the rounded cube root of x.
//
// This function is a proxy for c.Cbrt(z, x, rnd).
func Cbrt(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	return c.Cbrt(z, x, rnd)
}

// RootN sets z to the rounded k-th root of x.
//
// This function is a proxy for c.RootN(z, x, k, rnd).
func RootN(c *mpfr.Context, z, x *mpfr.Float, k uint, rnd mpfr.RoundingMode) mpfr.Accuracy {
	return c.RootN(z, x, k, rnd)
}
