// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math_test

import (
	"fmt"

	"github.com/db47h/mpfr"
	"github.com/db47h/mpfr/math"
)

func ExamplePi() {
	c := mpfr.NewContext()
	z := mpfr.NewFloat(100)
	acc := math.Pi(c, z, mpfr.ToZero)
	fmt.Println(z.Text('g', 30), acc)
	// Output: 3.14159265358979323846264338328 Below
}

func ExampleGamma() {
	c := mpfr.NewContext()
	z := mpfr.NewFloat(80)
	// Γ(1/2) = √π
	math.Gamma(c, z, c.NewFloat64(0.5), mpfr.ToNearestEven)
	fmt.Println(z.Text('g', 20))
	// Γ(6) = 5! is exact
	acc := math.Gamma(c, z, c.NewInt64(6), mpfr.ToNearestEven)
	fmt.Println(z.Text('g', 20), acc)
	// Output:
	// 1.7724538509055160273
	// 120 Exact
}

func ExampleLog1p() {
	c := mpfr.NewContext()
	z := mpfr.NewFloat(53)
	x := mpfr.NewFloat(53)
	c.Mul2Exp(x, c.NewInt64(1), -60, mpfr.ToNearestEven)
	// log(1+x) is below x
	acc := math.Log1p(c, z, x, mpfr.ToZero)
	fmt.Println(z.Less(x), acc, c.Flags())
	// Output: true Below inexact
}
