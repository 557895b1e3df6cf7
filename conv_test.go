// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfr

import (
	"math"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatSetFloat64(t *testing.T) {
	for _, want := range []float64{
		0,
		1,
		2,
		12345,
		1e10,
		1e100,
		3.14159265358979323846264338327950288419716939937510582097494459,
		math.MaxFloat32,
		math.MaxFloat64,
		math.SmallestNonzeroFloat32,
		math.SmallestNonzeroFloat64,
		math.Inf(1),
	} {
		for i := range [2]struct{}{} {
			if i&1 != 0 {
				want = -want
			}
			c := NewContext()
			var f Float
			acc := c.SetFloat64(&f, want, ToNearestEven)
			assert.Equal(t, Exact, acc)
			assert.Zero(t, c.Flags())
			got, acc := f.Float64(ToNearestEven)
			if got != want || acc != Exact || math.Signbit(got) != math.Signbit(want) {
				t.Errorf("SetFloat64(%g).Float64() = %g (%s); want %g (Exact)", want, got, acc, want)
			}
		}
	}

	// NaN sets the NaN flag
	c := NewContext()
	var f Float
	c.SetFloat64(&f, math.NaN(), ToNearestEven)
	assert.True(t, f.IsNaN())
	assert.Equal(t, NaNFlag, c.Flags())

	// rounding on input
	c.ClearFlags(AllFlags)
	g := NewFloat(24)
	acc := c.SetFloat64(g, 16777217, ToNearestEven)
	assert.Equal(t, Below, acc)
	assert.Equal(t, Inexact, c.Flags())
	assert.Equal(t, int64(16777216), g.mustInt64())
}

func TestFloatFloat64(t *testing.T) {
	for _, test := range []struct {
		x    string
		mode RoundingMode
		want float64
		acc  Accuracy
	}{
		{"0", ToNearestEven, 0, Exact},
		{"-0", ToNearestEven, math.Copysign(0, -1), Exact},
		{"1", ToNearestEven, 1, Exact},
		{"0x1.00000000000008p0", ToNearestEven, 1, Below},
		{"0x1.00000000000018p0", ToNearestEven, 1 + 0x1p-51, Above},
		{"0x1.00000000000008p0", AwayFromZero, 1 + 0x1p-52, Above},
		{"-0x1.00000000000008p0", ToPositiveInf, -1, Above},
		{"1e-400", ToNearestEven, 0, Below},
		{"1e-400", ToPositiveInf, math.SmallestNonzeroFloat64, Above},
		{"-1e-400", ToNearestEven, math.Copysign(0, -1), Above},
		{"1e400", ToNearestEven, math.Inf(1), Above},
		{"1e400", ToZero, math.MaxFloat64, Below},
		{"-1e400", ToNearestEven, math.Inf(-1), Below},
		// gradual underflow: 1.5 × smallest subnormal rounds to even
		{"0x1.8p-1074", ToNearestEven, 2 * math.SmallestNonzeroFloat64, Above},
		{"0x1.4p-1074", ToNearestEven, math.SmallestNonzeroFloat64, Below},
		{"Inf", ToNearestEven, math.Inf(1), Exact},
	} {
		x := makeFloat(test.x, 100)
		got, acc := x.Float64(test.mode)
		if got != test.want || math.Signbit(got) != math.Signbit(test.want) || acc != test.acc {
			t.Errorf("%s.Float64(%s) = %g (%s); want %g (%s)", test.x, test.mode, got, acc, test.want, test.acc)
		}
	}

	got, _ := new(Float).SetNaN().Float64(ToNearestEven)
	assert.True(t, math.IsNaN(got))

	c := NewContext()
	c.Float64(makeFloat("1e400", 100), ToNearestEven)
	assert.Equal(t, Overflow|Inexact, c.Flags())
	c.ClearFlags(AllFlags)
	c.Float64(makeFloat("1e-400", 100), ToNearestEven)
	assert.Equal(t, Underflow|Inexact, c.Flags())
}

func TestFloatFloat32(t *testing.T) {
	for _, test := range []struct {
		x    string
		mode RoundingMode
		want float32
		acc  Accuracy
	}{
		{"0", ToNearestEven, 0, Exact},
		{"1", ToNearestEven, 1, Exact},
		{"16777217", ToNearestEven, 16777216, Below},
		{"16777217", ToPositiveInf, 16777218, Above},
		{"0.1", ToNearestEven, 0.1, Above},
		{"1e39", ToNearestEven, float32(math.Inf(1)), Above},
		{"1e39", ToZero, math.MaxFloat32, Below},
		{"1e-46", ToNearestEven, 0, Below},
		{"1e-46", AwayFromZero, math.SmallestNonzeroFloat32, Above},
	} {
		x := makeFloat(test.x, 100)
		got, acc := x.Float32(test.mode)
		if got != test.want || acc != test.acc {
			t.Errorf("%s.Float32(%s) = %g (%s); want %g (%s)", test.x, test.mode, got, acc, test.want, test.acc)
		}
	}
}

func TestFloatInt64(t *testing.T) {
	for _, test := range []struct {
		x    string
		mode RoundingMode
		want int64
		acc  Accuracy
	}{
		{"NaN", ToNearestEven, 0, Exact},
		{"0", ToNearestEven, 0, Exact},
		{"-0", ToNearestEven, 0, Exact},
		{"1.5", ToZero, 1, Below},
		{"-1.5", ToZero, -1, Above},
		{"-1.5", ToNearestEven, -2, Below},
		{"2.5", ToNearestEven, 2, Below},
		{"2.5", AwayFromZero, 3, Above},
		{"0.25", ToPositiveInf, 1, Above},
		{"-0.25", ToNegativeInf, -1, Below},
		{"9223372036854775807", ToNearestEven, math.MaxInt64, Exact},
		{"9223372036854775808", ToNearestEven, math.MaxInt64, Below},
		{"-9223372036854775808", ToNearestEven, math.MinInt64, Exact},
		{"-9223372036854775809", ToNearestEven, math.MinInt64, Above},
		{"1e100", ToNearestEven, math.MaxInt64, Below},
		{"+Inf", ToNearestEven, math.MaxInt64, Below},
		{"-Inf", ToNearestEven, math.MinInt64, Above},
	} {
		x := makeFloat(test.x, 100)
		got, acc := x.Int64(test.mode)
		if got != test.want || acc != test.acc {
			t.Errorf("%s.Int64(%s) = %d (%s); want %d (%s)", test.x, test.mode, got, acc, test.want, test.acc)
		}
	}
}

func TestFloatUint64(t *testing.T) {
	for _, test := range []struct {
		x    string
		mode RoundingMode
		want uint64
		acc  Accuracy
	}{
		{"0", ToNearestEven, 0, Exact},
		{"-0.25", ToZero, 0, Above},
		{"-1", ToZero, 0, Above},
		{"1.75", ToZero, 1, Below},
		{"18446744073709551615", ToNearestEven, math.MaxUint64, Exact},
		{"18446744073709551616", ToNearestEven, math.MaxUint64, Below},
		{"+Inf", ToNearestEven, math.MaxUint64, Below},
		{"-Inf", ToNearestEven, 0, Above},
	} {
		x := makeFloat(test.x, 100)
		got, acc := x.Uint64(test.mode)
		if got != test.want || acc != test.acc {
			t.Errorf("%s.Uint64(%s) = %d (%s); want %d (%s)", test.x, test.mode, got, acc, test.want, test.acc)
		}
	}
}

func TestContextIntFlags(t *testing.T) {
	c := NewContext()
	assert.Equal(t, int64(1), c.Int64(makeFloat("1.5", 53), ToZero))
	assert.Equal(t, Inexact, c.Flags())

	c.ClearFlags(AllFlags)
	c.Int64(new(Float).SetNaN(), ToZero)
	assert.Equal(t, Erange, c.Flags())

	c.ClearFlags(AllFlags)
	assert.Equal(t, uint64(0), c.Uint64(makeFloat("-2", 53), ToZero))
	assert.Equal(t, Erange, c.Flags())

	c.ClearFlags(AllFlags)
	i, _ := c.Int(nil, makeFloat("Inf", 53), ToZero)
	assert.Nil(t, i)
	assert.Equal(t, Erange, c.Flags())
}

func TestFloatFits(t *testing.T) {
	for _, test := range []struct {
		x    string
		mode RoundingMode
		fits func(*Float, RoundingMode) bool
		want bool
	}{
		{"127", ToNearestEven, (*Float).FitsInt8, true},
		{"128", ToNearestEven, (*Float).FitsInt8, false},
		{"-128", ToNearestEven, (*Float).FitsInt8, true},
		{"-129", ToNearestEven, (*Float).FitsInt8, false},
		{"127.6", ToZero, (*Float).FitsInt8, true},
		{"127.6", ToNearestEven, (*Float).FitsInt8, false},
		{"255", ToNearestEven, (*Float).FitsUint8, true},
		{"256", ToNearestEven, (*Float).FitsUint8, false},
		{"-0.4", ToNearestEven, (*Float).FitsUint8, true},
		{"-1", ToNearestEven, (*Float).FitsUint8, false},
		{"-32768", ToNearestEven, (*Float).FitsInt16, true},
		{"65535", ToNearestEven, (*Float).FitsUint16, true},
		{"2147483648", ToNearestEven, (*Float).FitsInt32, false},
		{"4294967295", ToNearestEven, (*Float).FitsUint32, true},
		{"4294967296", ToNearestEven, (*Float).FitsUint32, false},
		{"4294967295.4", ToNearestEven, (*Float).FitsUint32, true},
		{"4294967295.5", ToNearestEven, (*Float).FitsUint32, false},
		{"-9223372036854775808", ToNearestEven, (*Float).FitsInt64, true},
		{"9223372036854775808", ToNearestEven, (*Float).FitsInt64, false},
		{"18446744073709551615", ToNearestEven, (*Float).FitsUint64, true},
		{"NaN", ToNearestEven, (*Float).FitsUint64, false},
		{"Inf", ToNearestEven, (*Float).FitsInt64, false},
	} {
		x := makeFloat(test.x, 100)
		assert.Equal(t, test.want, test.fits(x, test.mode), "%s (%s)", test.x, test.mode)
	}
}

func TestToInt(t *testing.T) {
	i8, err := ToInt[int8](makeFloat("-128", 53), ToNearestEven)
	require.NoError(t, err)
	assert.Equal(t, int8(-128), i8)

	_, err = ToInt[int8](makeFloat("128", 53), ToNearestEven)
	assert.True(t, errors.Is(err, ErrOverflow), "%v", err)

	_, err = ToInt[uint8](makeFloat("-1", 53), ToNearestEven)
	assert.True(t, errors.Is(err, ErrOverflow), "%v", err)

	u32, err := ToInt[uint32](makeFloat("4294967295", 53), ToNearestEven)
	require.NoError(t, err)
	assert.Equal(t, uint32(4294967295), u32)

	_, err = ToInt[uint32](makeFloat("4294967296", 53), ToNearestEven)
	assert.True(t, errors.Is(err, ErrOverflow), "%v", err)

	u, err := ToInt[uint](makeFloat("41.5", 53), AwayFromZero)
	require.NoError(t, err)
	assert.Equal(t, uint(42), u)

	_, err = ToInt[int64](makeFloat("1e30", 100), ToNearestEven)
	assert.True(t, errors.Is(err, ErrOverflow), "%v", err)

	_, err = ToInt[int](new(Float).SetNaN(), ToNearestEven)
	assert.True(t, errors.Is(err, ErrNotFinite), "%v", err)
}

func TestFloatInt(t *testing.T) {
	for _, test := range []struct {
		x    string
		mode RoundingMode
		want string
		acc  Accuracy
	}{
		{"0", ToNearestEven, "0", Exact},
		{"-2.5", ToNearestEven, "-2", Above},
		{"-2.5", AwayFromZero, "-3", Below},
		{"1e30", ToNearestEven, "1000000000000000000000000000000", Exact},
		{"123456789012345678901234567890.5", ToZero, "123456789012345678901234567890", Below},
	} {
		x := makeFloat(test.x, 120)
		i, acc := x.Int(nil, test.mode)
		assert.Equal(t, test.want, i.String(), test.x)
		assert.Equal(t, test.acc, acc, test.x)
	}
	i, _ := makeFloat("-Inf", 53).Int(nil, ToNearestEven)
	assert.Nil(t, i)
}

func TestFloatIntExpRat(t *testing.T) {
	for _, s := range []string{"0", "0.75", "-3.5e-20", "1e30", "0x1p-200"} {
		x := makeFloat(s, 100)
		m, e := x.IntExp(nil)
		c := NewContext().SetPrec(100)
		z := c.New()
		c.SetIntExp(z, m, e, ToNearestEven)
		assert.True(t, alike(x, z) || x.IsZero() && z.IsZero(), s)

		q, err := x.Rat(nil)
		require.NoError(t, err)
		assert.Zero(t, c.CmpRat(x, q), s)
		assert.Zero(t, c.Flags()&Erange)
	}
	q, err := makeFloat("0.75", 53).Rat(nil)
	require.NoError(t, err)
	assert.Equal(t, "3/4", q.String())

	_, err = makeFloat("Inf", 53).Rat(nil)
	assert.True(t, errors.Is(err, ErrNotFinite))
	m, _ := new(Float).SetNaN().IntExp(nil)
	assert.Nil(t, m)
}

func TestFloatSetRat(t *testing.T) {
	c := NewContext()
	for _, test := range []struct {
		num, den int64
		prec     uint
		mode     RoundingMode
		want     string
		acc      Accuracy
	}{
		{1, 4, 53, ToNearestEven, "0.25", Exact},
		{-1, 3, 24, ToNearestEven, "-0.3333333433", Below},
		{1, 3, 24, ToZero, "0.3333333135", Below},
		{2, 3, 2, ToNearestEven, "0.75", Above},
		{0, 7, 53, ToNearestEven, "0", Exact},
	} {
		z := NewFloat(test.prec)
		acc := c.SetRat(z, big.NewRat(test.num, test.den), test.mode)
		assert.Equal(t, test.want, z.Text('g', 10), "%d/%d", test.num, test.den)
		assert.Equal(t, test.acc, acc, "%d/%d", test.num, test.den)
	}
}

func TestFloatBigFloat(t *testing.T) {
	x := makeFloat("-1.25e-5", 70)
	f, err := x.BigFloat(nil)
	require.NoError(t, err)
	assert.Equal(t, uint(70), f.Prec())
	var y Float
	NewContext().SetBigFloat(&y, f, ToNearestEven)
	assert.True(t, alike(x, &y))

	_, err = new(Float).SetNaN().BigFloat(nil)
	assert.True(t, errors.Is(err, ErrNotFinite))

	c := NewContext().Extended()
	huge := NewFloat(10)
	c.Mul2Exp(huge, makeFloat("1", 10), 1<<40, ToNearestEven)
	_, err = huge.BigFloat(nil)
	assert.True(t, errors.Is(err, ErrExpRange))
}

func TestMixedOperands(t *testing.T) {
	c := NewContext()
	x := makeFloat("2.5", 53)
	z := c.New()
	for _, test := range []struct {
		name string
		op   func() Accuracy
		want string
	}{
		{"AddInt", func() Accuracy { return c.AddInt(z, x, big.NewInt(3), ToNearestEven) }, "5.5"},
		{"SubInt", func() Accuracy { return c.SubInt(z, x, big.NewInt(3), ToNearestEven) }, "-0.5"},
		{"IntSub", func() Accuracy { return c.IntSub(z, big.NewInt(3), x, ToNearestEven) }, "0.5"},
		{"MulInt", func() Accuracy { return c.MulInt(z, x, big.NewInt(-4), ToNearestEven) }, "-10"},
		{"QuoInt", func() Accuracy { return c.QuoInt(z, x, big.NewInt(5), ToNearestEven) }, "0.5"},
		{"IntQuo", func() Accuracy { return c.IntQuo(z, big.NewInt(5), x, ToNearestEven) }, "2"},
		{"AddInt64", func() Accuracy { return c.AddInt64(z, x, -1, ToNearestEven) }, "1.5"},
		{"MulInt64", func() Accuracy { return c.MulInt64(z, x, 2, ToNearestEven) }, "5"},
		{"QuoFloat64", func() Accuracy { return c.QuoFloat64(z, x, 0.5, ToNearestEven) }, "5"},
		{"AddRat", func() Accuracy { return c.AddRat(z, x, big.NewRat(1, 2), ToNearestEven) }, "3"},
		{"SubRat", func() Accuracy { return c.SubRat(z, x, big.NewRat(5, 2), ToNearestEven) }, "0"},
		{"MulRat", func() Accuracy { return c.MulRat(z, x, big.NewRat(2, 5), ToNearestEven) }, "1"},
		{"QuoRat", func() Accuracy { return c.QuoRat(z, x, big.NewRat(5, 4), ToNearestEven) }, "2"},
	} {
		acc := test.op()
		assert.Equal(t, Exact, acc, test.name)
		assert.Equal(t, test.want, z.String(), test.name)
	}

	// one third is rounded once
	acc := c.QuoRat(z, makeFloat("1", 53), big.NewRat(3, 1), ToNearestEven)
	assert.Equal(t, Below, acc)
	assert.Equal(t, "0.3333333333", z.String())

	assert.Equal(t, -1, c.CmpInt64(x, 3))
	assert.Equal(t, 1, c.CmpFloat64(x, 2.4999))
	assert.Equal(t, 0, c.CmpRat(x, big.NewRat(5, 2)))
	assert.Equal(t, 1, c.CmpInt(x, big.NewInt(-10)))
}
