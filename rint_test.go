// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatRint(t *testing.T) {
	type op func(c *Context, z, x *Float) Accuracy
	ops := []struct {
		name string
		fn   op
	}{
		{"Ceil", (*Context).Ceil},
		{"Floor", (*Context).Floor},
		{"Trunc", (*Context).Trunc},
		{"Round", (*Context).Round},
		{"RoundEven", (*Context).RoundEven},
	}
	for _, test := range []struct {
		x    string
		want [5]string // Ceil, Floor, Trunc, Round, RoundEven
	}{
		{"2.5", [5]string{"3", "2", "2", "3", "2"}},
		{"-2.5", [5]string{"-2", "-3", "-2", "-3", "-2"}},
		{"3.5", [5]string{"4", "3", "3", "4", "4"}},
		{"0.4", [5]string{"1", "0", "0", "0", "0"}},
		{"-0.4", [5]string{"-0", "-1", "-0", "-0", "-0"}},
		{"0.5", [5]string{"1", "0", "0", "1", "0"}},
		{"-0.75", [5]string{"-0", "-1", "-0", "-1", "-1"}},
		{"7", [5]string{"7", "7", "7", "7", "7"}},
		{"-0", [5]string{"-0", "-0", "-0", "-0", "-0"}},
		{"Inf", [5]string{"+Inf", "+Inf", "+Inf", "+Inf", "+Inf"}},
		{"NaN", [5]string{"NaN", "NaN", "NaN", "NaN", "NaN"}},
		{"1e100", [5]string{"1e+100", "1e+100", "1e+100", "1e+100", "1e+100"}},
	} {
		for i, o := range ops {
			c := NewContext()
			x := makeFloat(test.x, 53)
			var z Float
			acc := o.fn(c, &z, x)
			if got := z.String(); got != test.want[i] {
				t.Errorf("%s(%s) = %s; want %s", o.name, test.x, got, test.want[i])
			}
			if x.IsNaN() {
				continue
			}
			exact := z.IsInf() || x.IsInt()
			if exact != (acc == Exact) {
				t.Errorf("%s(%s): accuracy %s", o.name, test.x, acc)
			}
			if (c.Flags()&Inexact != 0) == exact {
				t.Errorf("%s(%s): flags %s", o.name, test.x, c.Flags())
			}
		}
	}
}

func TestFloatRintPrecision(t *testing.T) {
	c := NewContext()
	z := NewFloat(2)
	// 5 is not representable with 2 bits
	acc := c.Rint(z, makeFloat("5.25", 53), ToNearestEven)
	assert.Equal(t, "4", z.String())
	assert.Equal(t, Below, acc)

	acc = c.Rint(z, makeFloat("5.25", 53), ToPositiveInf)
	assert.Equal(t, "6", z.String())
	assert.Equal(t, Above, acc)

	acc = c.Ceil(z, makeFloat("2.5", 53))
	assert.Equal(t, "3", z.String())
	assert.Equal(t, Above, acc)

	acc = c.Floor(z, makeFloat("-2.5", 53))
	assert.Equal(t, "-3", z.String())
	assert.Equal(t, Below, acc)
}

func TestFloatFrac(t *testing.T) {
	for _, test := range []struct {
		x, want string
	}{
		{"2.75", "0.75"},
		{"-2.75", "-0.75"},
		{"3", "0"},
		{"-3", "-0"},
		{"0.3", "0.3"},
		{"-0", "-0"},
		{"1e100", "0"},
		{"0x123456789abcdef.fedcba987654321p0", "0.9955555556"},
		{"Inf", "NaN"},
		{"NaN", "NaN"},
	} {
		var z Float
		NewContext().Frac(&z, makeFloat(test.x, 120), ToNearestEven)
		assert.Equal(t, test.want, z.String(), test.x)
	}
}

func TestFloatModf(t *testing.T) {
	c := NewContext()
	for _, test := range []struct {
		x, i, f string
	}{
		{"-3.25", "-3", "-0.25"},
		{"3.25", "3", "0.25"},
		{"0.5", "0", "0.5"},
		{"-0.5", "-0", "-0.5"},
		{"42", "42", "0"},
		{"-Inf", "-Inf", "-0"},
		{"NaN", "NaN", "NaN"},
	} {
		var i, f Float
		iacc, facc := c.Modf(&i, &f, makeFloat(test.x, 53), ToNearestEven)
		assert.Equal(t, test.i, i.String(), test.x)
		assert.Equal(t, test.f, f.String(), test.x)
		assert.Equal(t, Exact, iacc)
		assert.Equal(t, Exact, facc)
	}

	// x may alias either destination
	x := makeFloat("-7.125", 53)
	f := new(Float)
	c.Modf(x, f, x, ToNearestEven)
	assert.Equal(t, "-7", x.String())
	assert.Equal(t, "-0.125", f.String())

	// rounding of the integral part
	i := NewFloat(2)
	iacc, _ := c.Modf(i, f, makeFloat("7.5", 53), ToZero)
	assert.Equal(t, "6", i.String())
	assert.Equal(t, Below, iacc)

	assert.Panics(t, func() { c.Modf(f, f, x, ToNearestEven) })
}

func TestFloatRemainders(t *testing.T) {
	for _, test := range []struct {
		x, y      string
		fmod, rem string
		quo       int64
	}{
		{"7", "3", "1", "1", 2},
		{"-7", "3", "-1", "-1", -2},
		{"7", "-3", "1", "1", -2},
		{"8", "3", "2", "-1", 3},
		{"-8", "3", "-2", "1", -3},
		{"5", "2", "1", "1", 2},
		{"7", "2", "1", "-1", 4},
		{"5.5", "1.5", "1", "-0.5", 4},
		{"6", "3", "0", "0", 2},
		{"-6", "3", "-0", "-0", -2},
		{"0.25", "3", "0.25", "0.25", 0},
		{"1", "Inf", "1", "1", 0},
		{"-0", "1", "-0", "-0", 0},
		{"0x1p100000", "3", "1", "1", 0},
		{"1", "0", "NaN", "NaN", 0},
		{"Inf", "1", "NaN", "NaN", 0},
		{"NaN", "1", "NaN", "NaN", 0},
	} {
		c := NewContext()
		x, y := makeFloat(test.x, 53), makeFloat(test.y, 53)
		var z Float
		c.Fmod(&z, x, y, ToNearestEven)
		assert.Equal(t, test.fmod, z.String(), "Fmod(%s, %s)", test.x, test.y)
		c.Remainder(&z, x, y, ToNearestEven)
		assert.Equal(t, test.rem, z.String(), "Remainder(%s, %s)", test.x, test.y)
		_, q := c.Remquo(&z, x, y, ToNearestEven)
		assert.Equal(t, test.rem, z.String(), "Remquo(%s, %s)", test.x, test.y)
		if test.x != "0x1p100000" {
			assert.Equal(t, test.quo, q, "Remquo(%s, %s)", test.x, test.y)
		}
	}
}

func TestFloatRemainderMatchesMath(t *testing.T) {
	for _, xy := range [][2]float64{
		{10.3, 3.1},
		{-1e10, 7.25},
		{1e300, 1e-300},
		{0.1, 0.03},
		{123456789, -0.001},
	} {
		c := NewContext()
		x, y := c.NewFloat64(xy[0]), c.NewFloat64(xy[1])
		var z Float
		c.Fmod(&z, x, y, ToNearestEven)
		got, _ := z.Float64(ToNearestEven)
		assert.Equal(t, math.Mod(xy[0], xy[1]), got, "Fmod(%g, %g)", xy[0], xy[1])
		c.Remainder(&z, x, y, ToNearestEven)
		got, _ = z.Float64(ToNearestEven)
		assert.Equal(t, math.Remainder(xy[0], xy[1]), got, "Remainder(%g, %g)", xy[0], xy[1])
	}
}

func TestFloatNext(t *testing.T) {
	c := NewContext()
	require.NoError(t, c.SetEmin(-1073))

	x := makeFloat("1", 53)
	c.NextAbove(x)
	assert.True(t, alike(x, makeFloat("0x1.0000000000001p0", 53)))
	c.NextBelow(x)
	c.NextBelow(x)
	assert.True(t, alike(x, makeFloat("0x1.fffffffffffffp-1", 53)))
	c.NextAbove(x)
	assert.Equal(t, "1", x.String())

	x = makeFloat("0", 53)
	c.NextAbove(x)
	f, _ := x.Float64(ToNearestEven)
	assert.Equal(t, math.SmallestNonzeroFloat64, f)
	c.NextBelow(x)
	assert.True(t, x.IsZero())

	x = makeFloat("-0", 53)
	c.NextBelow(x)
	f, _ = x.Float64(ToNearestEven)
	assert.Equal(t, -math.SmallestNonzeroFloat64, f)

	x = makeFloat("-Inf", 53)
	c.NextBelow(x)
	assert.True(t, x.IsInf())
	c.NextAbove(x)
	assert.False(t, x.IsInf())
	assert.Equal(t, int64(DefaultEmax), x.Exp())
	assert.True(t, x.Signbit())

	// overflow past the largest value of the exponent range
	d := NewContext()
	require.NoError(t, d.SetEmax(2))
	x = makeFloat("3", 2)
	d.NextAbove(x)
	assert.Equal(t, "+Inf", x.String())

	x = makeFloat("NaN", 53)
	c.NextAbove(x)
	assert.True(t, x.IsNaN())
}

func TestFloatNextToward(t *testing.T) {
	c := NewContext()
	x := makeFloat("1", 4)
	c.NextToward(x, makeFloat("2", 53))
	assert.Equal(t, "1.125", x.String())
	c.NextToward(x, makeFloat("-5", 53))
	c.NextToward(x, makeFloat("-5", 53))
	assert.Equal(t, "0.9375", x.String())
	c.NextToward(x, makeFloat("0.9375", 53))
	assert.Equal(t, "0.9375", x.String())

	c.NextToward(x, makeFloat("NaN", 53))
	assert.True(t, x.IsNaN())
	assert.Equal(t, NaNFlag, c.Flags()&NaNFlag)
}

func TestFloatCmpContext(t *testing.T) {
	c := NewContext()
	one := makeFloat("1", 53)
	assert.Equal(t, -1, c.Cmp(one, makeFloat("2", 53)))
	assert.Equal(t, 0, c.Cmp(makeFloat("-0", 53), makeFloat("0", 53)))
	assert.Equal(t, 1, c.CmpAbs(makeFloat("-3", 53), makeFloat("2", 53)))
	assert.Equal(t, 1, c.CmpInt64(one, 0))
	assert.Equal(t, -1, c.CmpFloat64(one, math.Inf(1)))
	assert.Zero(t, c.Flags())

	assert.Equal(t, 0, c.CmpFloat64(one, math.NaN()))
	assert.Equal(t, Erange, c.Flags())
	c.ClearFlags(AllFlags)
	assert.Equal(t, 0, c.CmpAbs(makeFloat("NaN", 53), one))
	assert.Equal(t, Erange, c.Flags())
}
