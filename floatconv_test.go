// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfr

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatSetString(t *testing.T) {
	for _, test := range []struct {
		s    string
		want string
		acc  Accuracy
	}{
		{"0", "0", Exact},
		{"-0", "-0", Exact},
		{"+0.", "0", Exact},
		{".5", "0.5", Exact},
		{"1e10", "1e+10", Exact},
		{"1E-3", "0.001", Above},
		{"-1.25e+2", "-125", Exact},
		{" 0x1.8p1", "3", Exact},
		{"0X.8P-1", "0.25", Exact},
		{"0b101.1", "5.5", Exact},
		{"0B1p-2", "0.25", Exact},
		{"1@2", "100", Exact},
		{"inf", "+Inf", Exact},
		{"-Infinity", "-Inf", Exact},
		{"+@inf@", "+Inf", Exact},
		{"nan", "NaN", Exact},
		{"-NaN(abc_123)", "NaN", Exact},
		{"0.1", "0.1", Above},
		{"123456789012345678901234567890", "1.23456789e+29", Below},
	} {
		c := NewContext()
		var z Float
		acc, err := c.SetString(&z, test.s, ToNearestEven)
		if !assert.NoError(t, err, test.s) {
			continue
		}
		assert.Equal(t, test.want, z.Text('g', 10), test.s)
		assert.Equal(t, test.acc, acc, test.s)
		assert.Equal(t, uint(DefaultPrec), z.Prec(), test.s)
	}
}

func TestFloatSetStringErrors(t *testing.T) {
	for _, s := range []string{
		"",
		"-",
		".",
		"abc",
		"1.5x",
		"1e",
		"1e+",
		"0x1e10p", // dangling p
		"1p10",    // p exponent in base 10
		"1 ",
		"--1",
	} {
		c := NewContext()
		z := c.NewInt64(42)
		_, err := c.SetString(z, s, ToNearestEven)
		assert.Error(t, err, "%q", s)
		assert.Equal(t, "42", z.String(), "%q: z must be left unchanged", s)
		assert.Zero(t, c.Flags(), "%q: flags must be left unchanged", s)
	}
}

func TestFloatSetStringBase(t *testing.T) {
	for _, test := range []struct {
		s    string
		base int
		want string
	}{
		{"zz", 36, "1295"},
		{"ZZ", 36, "1295"},
		{"Zz", 62, "2231"},
		{"1@-1", 3, "0.3333333333"},
		{"0x10", 16, "16"},
		{"10", 16, "16"},
		{"1.1", 2, "1.5"},
		{"12", 7, "9"},
		{"@nan@", 62, "NaN"},
	} {
		c := NewContext()
		var z Float
		_, err := c.SetStringBase(&z, test.s, test.base, ToNearestEven)
		if assert.NoError(t, err, "%s (base %d)", test.s, test.base) {
			assert.Equal(t, test.want, z.Text('g', 10), "%s (base %d)", test.s, test.base)
		}
	}

	// "nan" is a number in base 36
	c := NewContext()
	var z Float
	_, err := c.SetStringBase(&z, "nan", 36, ToNearestEven)
	require.NoError(t, err)
	assert.Equal(t, "30191", z.String())

	assert.Panics(t, func() { c.SetStringBase(&z, "1", 63, ToNearestEven) })
}

func TestFloatParse(t *testing.T) {
	for _, test := range []struct {
		s        string
		base     int
		want     string
		consumed int
	}{
		{"12abc", 10, "12", 2},
		{"  -7.5e1xyz", 0, "-75", 8},
		{"1e5e", 0, "100000", 3},
		{"0x1p4z", 0, "16", 5},
		{"infinite", 0, "+Inf", 3},
		{"1_000", 10, "1", 1},
	} {
		c := NewContext()
		var z Float
		_, n, err := c.Parse(&z, test.s, test.base, ToNearestEven)
		if assert.NoError(t, err, test.s) {
			assert.Equal(t, test.want, z.String(), test.s)
			assert.Equal(t, test.consumed, n, test.s)
		}
	}
	_, n, err := NewContext().Parse(new(Float), "xyz", 10, ToNearestEven)
	assert.Error(t, err)
	assert.Zero(t, n)
}

func TestFloatSetStringRounding(t *testing.T) {
	c := NewContext()
	for _, test := range []struct {
		mode RoundingMode
		want string
		acc  Accuracy
	}{
		{ToNearestEven, "0.3333333433", Above},
		{ToZero, "0.3333333135", Below},
		{ToNegativeInf, "0.3333333135", Below},
		{ToPositiveInf, "0.3333333433", Above},
		{AwayFromZero, "0.3333333433", Above},
	} {
		z := NewFloat(24)
		acc, err := c.SetString(z, "0.333333333333333333333333333333333", test.mode)
		require.NoError(t, err)
		assert.Equal(t, test.want, z.String(), test.mode.String())
		assert.Equal(t, test.acc, acc, test.mode.String())
	}
}

func TestFloatScan(t *testing.T) {
	for _, test := range []struct {
		input string
		want  string
	}{
		{"1.5", "1.5"},
		{"  -2e3 tail", "-2000"},
		{"0x1p-1", "0.5"},
		{"Inf", "+Inf"},
	} {
		var z Float
		_, err := fmt.Sscan(test.input, &z)
		if assert.NoError(t, err, test.input) {
			assert.Equal(t, test.want, z.String(), test.input)
			assert.Equal(t, uint(DefaultPrec), z.Prec())
		}
	}
	var z Float
	_, err := fmt.Sscanf("1.5", "%d", &z)
	assert.Error(t, err)
}

func TestFloatNewString(t *testing.T) {
	c := NewContext().SetPrec(10)
	x, ok := c.NewString("1023")
	require.True(t, ok)
	assert.Equal(t, uint(10), x.Prec())
	assert.Equal(t, "1023", x.String())

	x, ok = c.NewString("1025")
	require.True(t, ok)
	assert.Equal(t, "1024", x.String())

	_, ok = c.NewString("10 25")
	assert.False(t, ok)
}

func TestFloatSetStringHugeExponent(t *testing.T) {
	// 10**690000000000000000 = 0.m × 2**e and 10**-690000000000000000 = 0.m' × 2**(1-e)
	const e = 2292130385472280021
	for _, test := range []struct {
		s          string
		emin, emax int64
		exp        int64
		flags      Flags
	}{
		{"1e690000000000000000", MinExp, e, e, Inexact},
		{"-1e690000000000000000", MinExp, e, e, Inexact},
		{"1e690000000000000000", MinExp, e - 1, 0, Overflow | Inexact},
		{"1e-690000000000000000", 1 - e, MaxExp, 1 - e, Inexact},
		{"1e-690000000000000000", 2 - e, MaxExp, 0, Underflow | Inexact},
	} {
		c := NewContext()
		require.NoError(t, c.SetEmin(test.emin))
		require.NoError(t, c.SetEmax(test.emax))
		z := NewFloat(53)
		_, err := c.SetString(z, test.s, ToNearestEven)
		require.NoError(t, err, test.s)
		assert.Equal(t, test.flags, c.Flags(), "%s in [%d, %d]", test.s, test.emin, test.emax)
		if test.flags&(Overflow|Underflow) == 0 {
			assert.Equal(t, test.exp, z.Exp(), test.s)
		}
	}
}

func TestFloatSetStringLargeExponent(t *testing.T) {
	// large decimal exponents must round like the exact value
	for _, test := range []struct {
		mant string
		k    int64
	}{
		{"1", 100000},
		{"-7", 80000},
		{"3", -70000},
		{"123456789", -100001},
	} {
		m, _ := new(big.Int).SetString(test.mant, 10)
		p := new(big.Int).Exp(big.NewInt(10), big.NewInt(abs64(test.k)), nil)
		r := new(big.Rat).SetInt(m)
		if test.k > 0 {
			r.Mul(r, new(big.Rat).SetInt(p))
		} else {
			r.Quo(r, new(big.Rat).SetInt(p))
		}
		s := fmt.Sprintf("%se%d", test.mant, test.k)
		for _, mode := range []RoundingMode{ToNearestEven, ToZero, AwayFromZero, ToPositiveInf, ToNegativeInf} {
			for _, prec := range []uint{2, 24, 53, 200} {
				c := NewContext()
				got, want := NewFloat(prec), NewFloat(prec)
				acc, err := c.SetString(got, s, mode)
				require.NoError(t, err)
				wacc := c.SetRat(want, r, mode)
				assert.True(t, alike(got, want), "%s prec %d %s: %s != %s", s, prec, mode, got.String(), want.String())
				assert.Equal(t, wacc, acc, "%s prec %d %s", s, prec, mode)
			}
		}
	}
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
