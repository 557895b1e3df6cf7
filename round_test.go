// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfr

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bigModes = map[RoundingMode]big.RoundingMode{
	ToNearestEven: big.ToNearestEven,
	ToZero:        big.ToZero,
	ToPositiveInf: big.ToPositiveInf,
	ToNegativeInf: big.ToNegativeInf,
	AwayFromZero:  big.AwayFromZero,
}

// randBig returns a random big.Float with up to maxBits mantissa bits and an
// exponent in [-maxExp, maxExp].
func randBig(r *rand.Rand, maxBits, maxExp int) *big.Float {
	n := 1 + r.Intn(maxBits)
	m := new(big.Int).Rand(r, new(big.Int).Lsh(big.NewInt(1), uint(n)))
	if m.Sign() == 0 {
		m.SetInt64(1)
	}
	if r.Intn(2) == 0 {
		m.Neg(m)
	}
	f := new(big.Float).SetPrec(uint(maxBits)).SetInt(m)
	return f.SetMantExp(f, r.Intn(2*maxExp+1)-maxExp)
}

func fromBig(t *testing.T, x *big.Float) *Float {
	t.Helper()
	z := NewFloat(x.Prec())
	acc := NewContext().SetBigFloat(z, x, ToNearestEven)
	require.Equal(t, Exact, acc)
	return z
}

// checkBig compares z and its ternary value to the big.Float oracle.
func checkBig(t *testing.T, msg string, z *Float, acc Accuracy, want *big.Float) {
	t.Helper()
	got, err := z.BigFloat(nil)
	if err != nil {
		t.Errorf("%s: %v", msg, err)
		return
	}
	if got.Cmp(want) != 0 || (want.Sign() != 0 && got.Signbit() != want.Signbit()) {
		t.Errorf("%s: got %s; want %s", msg, got.Text('p', 0), want.Text('p', 0))
	}
	if int8(acc) != int8(want.Acc()) {
		t.Errorf("%s: got accuracy %s; want %s", msg, acc, want.Acc())
	}
}

func TestRoundingOracle(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	ops := []struct {
		name string
		op   func(c *Context) func(z, x, y *Float, rnd RoundingMode) Accuracy
		big  func(z, x, y *big.Float) *big.Float
	}{
		{"Add", func(c *Context) func(z, x, y *Float, rnd RoundingMode) Accuracy { return c.Add }, (*big.Float).Add},
		{"Sub", func(c *Context) func(z, x, y *Float, rnd RoundingMode) Accuracy { return c.Sub }, (*big.Float).Sub},
		{"Mul", func(c *Context) func(z, x, y *Float, rnd RoundingMode) Accuracy { return c.Mul }, (*big.Float).Mul},
		{"Quo", func(c *Context) func(z, x, y *Float, rnd RoundingMode) Accuracy { return c.Quo }, (*big.Float).Quo},
	}
	for i := 0; i < 500; i++ {
		bx, by := randBig(r, 150, 80), randBig(r, 150, 80)
		x, y := fromBig(t, bx), fromBig(t, by)
		prec := uint(1 + r.Intn(130))
		for mode, bmode := range bigModes {
			for _, o := range ops {
				c := NewContext()
				z := NewFloat(prec)
				acc := o.op(c)(z, x, y, mode)
				want := o.big(new(big.Float).SetPrec(prec).SetMode(bmode), bx, by)
				checkBig(t, o.name+" "+mode.String(), z, acc, want)
				if (acc != Exact) != (c.Flags()&Inexact != 0) {
					t.Errorf("%s %s: accuracy %s with flags %s", o.name, mode, acc, c.Flags())
				}
			}
		}
	}
}

func TestPrecRoundOracle(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		bx := randBig(r, 200, 100)
		prec := uint(1 + r.Intn(200))
		for mode, bmode := range bigModes {
			x := fromBig(t, bx)
			acc := NewContext().PrecRound(x, prec, mode)
			want := new(big.Float).SetPrec(prec).SetMode(bmode).Set(bx)
			checkBig(t, "PrecRound "+mode.String(), x, acc, want)
		}
	}
}

func TestSqrtOracle(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 300; i++ {
		bx := randBig(r, 120, 60)
		bx.Abs(bx)
		prec := uint(2 + r.Intn(120))
		x := fromBig(t, bx)
		z := NewFloat(prec)
		acc := NewContext().Sqrt(z, x, ToNearestEven)
		// big.Float.Sqrt only rounds to nearest even, without an
		// accuracy; compare the value only.
		want := new(big.Float).SetPrec(prec).Sqrt(bx)
		got, err := z.BigFloat(nil)
		require.NoError(t, err)
		assert.Zero(t, got.Cmp(want), "sqrt(%s)", bx.Text('p', 0))
		// the ternary value agrees with the square of the result
		sq := new(big.Float).SetPrec(2*prec).Mul(got, got)
		assert.Equal(t, int8(sq.Cmp(bx)), int8(acc), "sqrt(%s)", bx.Text('p', 0))
	}
}

func TestFMASingleRounding(t *testing.T) {
	// x² - 1 where x² rounded on its own drops the low bits
	for _, test := range []struct {
		x     string
		prec  uint
		fma   string
		split string
	}{
		{"0x1.0000002p0", 53, "0x1.0000001p-26", "0x1p-26"},
		{"0x1.001p0", 24, "0x1.0008p-11", "0x1p-11"},
	} {
		c := NewContext()
		x := makeFloat(test.x, test.prec)
		m1 := makeFloat("-1", test.prec)

		z := NewFloat(test.prec)
		acc := c.FMA(z, x, x, m1, ToNearestEven)
		assert.Equal(t, Exact, acc, test.x)
		assert.True(t, alike(z, makeFloat(test.fma, test.prec)), "FMA(%s) = %s", test.x, z.Text('p', 0))
		assert.Zero(t, c.Flags(), test.x)

		p := NewFloat(test.prec)
		assert.Equal(t, Below, c.Mul(p, x, x, ToNearestEven), test.x)
		c.Add(p, p, m1, ToNearestEven)
		assert.True(t, alike(p, makeFloat(test.split, test.prec)), "%s² - 1 = %s", test.x, p.Text('p', 0))
		assert.False(t, alike(p, z), test.x)
	}
}

func TestFMASumOracle(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	rat := func(x *Float) *big.Rat {
		q, err := x.Rat(nil)
		require.NoError(t, err)
		return q
	}
	for i := 0; i < 300; i++ {
		x := fromBig(t, randBig(r, 100, 40))
		y := fromBig(t, randBig(r, 100, 40))
		u := fromBig(t, randBig(r, 100, 80))
		prec := uint(1 + r.Intn(100))
		for mode := range bigModes {
			c := NewContext()

			exact := new(big.Rat).Mul(rat(x), rat(y))
			exact.Add(exact, rat(u))
			want := NewFloat(prec)
			wacc := c.SetRat(want, exact, mode)
			z := NewFloat(prec)
			acc := c.FMA(z, x, y, u, mode)
			if !alike(z, want) && !(z.IsZero() && want.IsZero()) || acc != wacc {
				t.Errorf("FMA %s: got %s (%s); want %s (%s)", mode, z.Text('p', 0), acc, want.Text('p', 0), wacc)
			}

			xs := []*Float{x, y, u}
			exact.Add(rat(x), rat(y))
			exact.Add(exact, rat(u))
			wacc = c.SetRat(want, exact, mode)
			acc = c.Sum(z, xs, mode)
			if !alike(z, want) && !(z.IsZero() && want.IsZero()) || acc != wacc {
				t.Errorf("Sum %s: got %s (%s); want %s (%s)", mode, z.Text('p', 0), acc, want.Text('p', 0), wacc)
			}
		}
	}
}

func TestOverflowUnderflow(t *testing.T) {
	c := NewContext()
	require.NoError(t, c.SetEmin(-10))
	require.NoError(t, c.SetEmax(10))
	x := makeFloat("1000", 53) // 0.9765625 × 2**10
	z := NewFloat(53)

	for _, test := range []struct {
		mode RoundingMode
		want string
		acc  Accuracy
	}{
		{ToNearestEven, "+Inf", Above},
		{ToPositiveInf, "+Inf", Above},
		{AwayFromZero, "+Inf", Above},
		{ToZero, "max", Below},
		{ToNegativeInf, "max", Below},
	} {
		c.ClearFlags(AllFlags)
		acc := c.Mul2Exp(z, x, 1, test.mode)
		assert.Equal(t, test.acc, acc, test.mode.String())
		if z.IsInf() {
			assert.Equal(t, test.want, z.String(), test.mode.String())
		} else {
			// largest finite value: (1 - 2**-53) × 2**10
			assert.Equal(t, 10, int(z.Exp()))
			assert.Equal(t, uint(53), z.MinPrec())
		}
		assert.Equal(t, Overflow|Inexact, c.Flags(), test.mode.String())
	}

	y := makeFloat("0x1p-12", 53) // 0.5 × 2**-11
	for _, test := range []struct {
		mode RoundingMode
		zero bool
		acc  Accuracy
	}{
		{ToNearestEven, true, Below}, // midpoint rounds to zero
		{ToZero, true, Below},
		{ToNegativeInf, true, Below},
		{ToPositiveInf, false, Above},
		{AwayFromZero, false, Above},
	} {
		c.ClearFlags(AllFlags)
		acc := c.Set(z, y, test.mode)
		assert.Equal(t, test.acc, acc, test.mode.String())
		assert.Equal(t, test.zero, z.IsZero(), test.mode.String())
		if !test.zero {
			// smallest positive value: 0.5 × 2**-10
			assert.Equal(t, -10, int(z.Exp()))
		}
		assert.Equal(t, Underflow|Inexact, c.Flags(), test.mode.String())
	}

	// just above the midpoint rounds to the smallest value
	c.ClearFlags(AllFlags)
	c.Set(z, makeFloat("0x1.8p-12", 53), ToNearestEven)
	assert.False(t, z.IsZero())
	assert.Equal(t, int64(-10), z.Exp())
}

func TestCheckRange(t *testing.T) {
	c := NewContext()
	x := makeFloat("0x1p100", 53)
	require.NoError(t, c.SetEmax(50))
	acc := c.CheckRange(x, Exact, ToNearestEven)
	assert.True(t, x.IsInf())
	assert.Equal(t, Above, acc)
	assert.Equal(t, Overflow|Inexact, c.Flags())

	c.ClearFlags(AllFlags)
	y := makeFloat("3", 2)
	assert.Equal(t, Below, c.CheckRange(y, Below, ToNearestEven))
	assert.Equal(t, Inexact, c.Flags())
	assert.Equal(t, "3", y.String())
}

func TestSubnormalize(t *testing.T) {
	// binary64-like range: 0.5 × 2**-1073 is the smallest subnormal
	c := NewContext()
	require.NoError(t, c.SetEmin(-1073))
	require.NoError(t, c.SetEmax(1024))

	tiny := makeFloat("0x1.8p-1074", 53) // 1.5 × smallest subnormal
	acc := c.Subnormalize(tiny, Exact, ToNearestEven)
	f, _ := tiny.Float64(ToNearestEven)
	assert.Equal(t, 2*5e-324, f)
	assert.Equal(t, Above, acc)

	// the previous ternary value breaks ties
	mid := makeFloat("0x1.8p-1074", 53)
	acc = c.Subnormalize(mid, Above, ToNearestEven)
	f, _ = mid.Float64(ToNearestEven)
	assert.Equal(t, 5e-324, f)
	assert.Equal(t, Below, acc)

	normal := makeFloat("1", 53)
	assert.Equal(t, Below, c.Subnormalize(normal, Below, ToNearestEven))
	assert.Equal(t, "1", normal.String())
}

func TestCanRound(t *testing.T) {
	b := makeFloat("0x1.0000001p0", 64)
	assert.True(t, CanRound(b, 60, ToNearestEven, 24))
	assert.True(t, CanRound(b, 60, ToZero, 24))
	// not enough correct bits
	assert.False(t, CanRound(b, 20, ToZero, 24))
	// the error interval contains a rounding boundary
	exact := makeFloat("0x1p0", 64)
	assert.False(t, CanRound(exact, 60, ToZero, 24))
	assert.False(t, CanRound(new(Float), 60, ToZero, 24))
}

func TestFlagsString(t *testing.T) {
	assert.Equal(t, "none", Flags(0).String())
	assert.Equal(t, "inexact", Inexact.String())
	assert.Equal(t, "underflow|overflow|nan|inexact|erange|divby0", AllFlags.String())
	assert.Equal(t, Inexact|Erange, (Inexact|Overflow).Restore(Erange, Overflow|Erange))
}

func TestParseRoundingMode(t *testing.T) {
	for s, want := range map[string]RoundingMode{
		"N": ToNearestEven, "RNDZ": ToZero, "ToPositiveInf": ToPositiveInf,
		"down": ToNegativeInf, "Y": AwayFromZero, "F": Faithful,
	} {
		got, err := ParseRoundingMode(s)
		if assert.NoError(t, err, s) {
			assert.Equal(t, want, got, s)
		}
	}
	_, err := ParseRoundingMode("X")
	assert.Error(t, err)
	assert.Equal(t, "RoundingMode(9)", RoundingMode(9).String())
}
