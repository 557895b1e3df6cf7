// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfr

import (
	"fmt"
	"math/big"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatText(t *testing.T) {
	for _, test := range []struct {
		x      string
		prec   uint
		format byte
		digits int
		want   string
	}{
		{"0", 53, 'f', 0, "0"},
		{"-0", 53, 'f', 0, "-0"},
		{"1", 53, 'f', 0, "1"},
		{"-1", 53, 'f', 0, "-1"},
		{"0.001", 53, 'e', 0, "1e-03"},
		{"1.5", 53, 'f', 3, "1.500"},
		{"1.5", 53, 'e', 2, "1.50e+00"},
		{"1234.5678", 53, 'g', 6, "1234.57"},
		{"1e20", 53, 'g', -1, "1e+20"},
		{"0.1", 53, 'g', -1, "0.1"},
		{"0.1", 24, 'g', -1, "0.1"},
		{"0.1", 100, 'g', -1, "0.1"},
		{"1024", 53, 'g', -1, "1024"},
		{"16777216", 53, 'g', -1, "1.6777216e+07"},
		{"+Inf", 53, 'g', -1, "+Inf"},
		{"-Inf", 53, 'f', 3, "-Inf"},
		{"NaN", 53, 'g', -1, "NaN"},

		// exact binary formats
		{"3", 2, 'b', 0, "3p+0"},
		{"-1.5", 53, 'b', 0, "-6755399441055744p-52"},
		{"0.25", 4, 'b', 0, "8p-5"},
		{"1.5", 53, 'p', 0, "0x.cp+1"},
		{"-0.0625", 10, 'p', 0, "-0x.8p-3"},
		{"1023", 10, 'p', 0, "0x.ffcp+10"},
	} {
		x := makeFloat(test.x, test.prec)
		if got := x.Text(test.format, test.digits); got != test.want {
			t.Errorf("%s.Text('%c', %d) = %s; want %s", test.x, test.format, test.digits, got, test.want)
		}
		if got := string(x.Append([]byte("x="), test.format, test.digits)); got != "x="+test.want {
			t.Errorf("Append: got %s; want x=%s", got, test.want)
		}
	}
}

func TestFloatTextHugeExponent(t *testing.T) {
	// the binary formats do not depend on math/big's exponent range
	c := NewContext().Extended()
	x := NewFloat(20)
	c.Mul2Exp(x, makeFloat("-1", 20), 1<<32, ToNearestEven)
	assert.Equal(t, int64(1<<32+1), x.Exp())
	assert.Equal(t, "-0x.8p+4294967297", x.Text('p', 0))
	assert.Equal(t, "-524288p+4294967277", x.Text('b', 0))
}

func TestDigitCount(t *testing.T) {
	for _, test := range []struct {
		prec uint
		base int
		want int
	}{
		{53, 10, 17},
		{24, 10, 9},
		{113, 10, 36},
		{1, 10, 2},
		{53, 2, 54},
		{53, 16, 15},
		{64, 62, 12},
	} {
		assert.Equal(t, test.want, DigitCount(test.prec, test.base), "DigitCount(%d, %d)", test.prec, test.base)
	}
	assert.Panics(t, func() { DigitCount(53, 1) })
}

func TestFloatDigits(t *testing.T) {
	for _, test := range []struct {
		x    string
		prec uint
		base int
		n    int
		mode RoundingMode
		ds   string
		e    int64
		acc  Accuracy
	}{
		{"0", 53, 10, 3, ToNearestEven, "000", 0, Exact},
		{"-0", 53, 10, 3, ToNearestEven, "-000", 0, Exact},
		{"Inf", 53, 10, 3, ToNearestEven, "@Inf@", 0, Exact},
		{"-Inf", 53, 10, 3, ToNearestEven, "-@Inf@", 0, Exact},
		{"NaN", 53, 10, 3, ToNearestEven, "@NaN@", 0, Exact},
		{"1", 53, 10, 3, ToNearestEven, "100", 1, Exact},
		{"0.75", 53, 2, 8, ToNearestEven, "11000000", 0, Exact},
		{"255", 53, 10, 0, ToNearestEven, "25500000000000000", 3, Exact},
		{"255", 53, 16, 2, ToNearestEven, "ff", 2, Exact},
		{"0.1", 53, 10, 5, ToNearestEven, "10000", 0, Below},
		{"0.1", 53, 10, 5, ToPositiveInf, "10001", 0, Above},
		{"9.99", 53, 10, 2, ToNearestEven, "10", 2, Above},
		{"9.99", 53, 10, 2, ToZero, "99", 1, Below},
		{"-2.5", 53, 10, 1, ToNearestEven, "-2", 1, Above},
		{"-2.5", 53, 10, 1, AwayFromZero, "-3", 1, Below},
		{"0x1p-10", 53, 10, 4, ToNearestEven, "9766", -3, Above},
		{"61", 53, 62, 1, ToNearestEven, "z", 1, Exact},
		{"36", 53, 62, 2, ToNearestEven, "a0", 1, Exact},
	} {
		x := makeFloat(test.x, test.prec)
		ds, e, acc := x.Digits(test.base, test.n, test.mode)
		if ds != test.ds || e != test.e || acc != test.acc {
			t.Errorf("%s.Digits(%d, %d, %s) = %s, %d, %s; want %s, %d, %s",
				test.x, test.base, test.n, test.mode, ds, e, acc, test.ds, test.e, test.acc)
		}
	}
	assert.Panics(t, func() { makeFloat("1", 53).Digits(63, 1, ToNearestEven) })
}

func TestFloatFormat(t *testing.T) {
	for _, test := range []struct {
		format string
		x      string
		want   string
	}{
		{"%v", "1.5", "1.5"},
		{"%g", "1e100", "1e+100"},
		{"%.3f", "3.14159", "3.142"},
		{"%10.2f", "-2.5", "     -2.50"},
		{"%-8.1f|", "2", "2.0     |"},
		{"%+.1e", "12", "+1.2e+01"},
		{"%08.2f", "-1.5", "-0001.50"},
		{"%b", "3", "6755399441055744p-51"},
		{"%x", "1", "0x1p+00"},
		{"%v", "Inf", "+Inf"},
		{"%5.1f", "-Inf", " -Inf"},
		{"%f", "NaN", "NaN"},
		{"%+g", "0", "+0"},
		{"%d", "1", "%!d(*mpfr.Float=1)"},
	} {
		x := makeFloat(test.x, 53)
		if got := fmt.Sprintf(test.format, x); got != test.want {
			t.Errorf("Sprintf(%q, %s) = %q; want %q", test.format, test.x, got, test.want)
		}
	}
}

func TestFloatDigitsRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(62))
	c := NewContext()
	for i := 0; i < 3000; i++ {
		prec := uint(1 + r.Intn(200))
		base := 2 + r.Intn(MaxBase-1)
		m := new(big.Int).Rand(r, new(big.Int).Lsh(big.NewInt(1), prec-1))
		m.SetBit(m, int(prec-1), 1)
		if r.Intn(2) == 0 {
			m.Neg(m)
		}
		x := NewFloat(prec)
		require.Equal(t, Exact, c.SetIntExp(x, m, int64(r.Intn(2000)-1000), ToNearestEven))

		ds, e, _ := x.Digits(base, 0, ToNearestEven)
		sign := ""
		if strings.HasPrefix(ds, "-") {
			sign, ds = "-", ds[1:]
		}
		s := fmt.Sprintf("%s0.%s@%d", sign, ds, e)
		y := NewFloat(prec)
		_, err := c.SetStringBase(y, s, base, ToNearestEven)
		require.NoError(t, err, s)
		if !alike(x, y) {
			t.Fatalf("base %d prec %d: %s -> %s -> %s", base, prec, x.Text('p', 0), s, y.Text('p', 0))
		}
	}
}
