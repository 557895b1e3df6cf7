// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfr

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomSize(t *testing.T) {
	assert.Equal(t, 1, CustomSize(1))
	assert.Equal(t, 1, CustomSize(_W))
	assert.Equal(t, 2, CustomSize(_W+1))
	assert.Equal(t, (1000+_W-1)/_W, CustomSize(1000))
	assert.Panics(t, func() { CustomSize(0) })
}

func TestNewCustom(t *testing.T) {
	buf := make([]Word, CustomSize(100))
	buf[len(buf)-1] = 1 << (_W - 1)
	x, err := NewCustom(buf, RegularKind, true, 3, 100)
	require.NoError(t, err)
	assert.True(t, x.Borrowed())
	assert.Equal(t, uint(100), x.Prec())
	assert.Equal(t, "-4", x.String())

	// results are stored in the caller's buffer
	c := NewContext()
	c.Add(x, x, makeFloat("1.5", 53), ToNearestEven)
	assert.Equal(t, "-2.5", x.String())
	assert.Equal(t, Word(5)<<(_W-3), buf[len(buf)-1])

	for _, test := range []struct {
		kind Kind
		want string
	}{
		{NaNKind, "NaN"},
		{InfKind, "-Inf"},
		{ZeroKind, "-0"},
	} {
		x, err := NewCustom(make([]Word, 1), test.kind, true, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, test.want, x.String())
	}
}

func TestNewCustomErrors(t *testing.T) {
	norm := []Word{1 << (_W - 1)}
	for _, test := range []struct {
		name string
		buf  []Word
		kind Kind
		exp  int64
		prec uint
		err  error
	}{
		{"precision", norm, RegularKind, 0, 0, ErrPrec},
		{"exponent", norm, RegularKind, MaxExp + 1, 10, ErrExpRange},
		{"not normalized", []Word{1}, RegularKind, 0, 10, ErrMalformed},
		{"bits past precision", []Word{1<<(_W-1) | 1}, RegularKind, 0, 10, ErrMalformed},
		{"short buffer", nil, RegularKind, 0, 10, nil},
		{"kind", norm, Kind(7), 0, 10, nil},
	} {
		_, err := NewCustom(test.buf, test.kind, false, test.exp, test.prec)
		if assert.Error(t, err, test.name) && test.err != nil {
			assert.True(t, errors.Is(err, test.err), "%s: %v", test.name, err)
		}
	}
}

func TestBorrowedPrecision(t *testing.T) {
	buf := make([]Word, CustomSize(64))
	x, err := NewCustom(buf, ZeroKind, false, 0, 64)
	require.NoError(t, err)

	assert.PanicsWithValue(t, ErrBorrowed, func() { x.SetPrec(10) })
	assert.Panics(t, func() { NewContext().PrecRound(x, 10, ToNearestEven) })
	assert.Panics(t, func() { x.Copy(makeFloat("1", 10)) })
	// same precision is fine
	assert.Equal(t, Exact, NewContext().PrecRound(x, 64, ToNearestEven))
	assert.Equal(t, "1", x.Copy(makeFloat("1", 64)).String())

	// results are rounded to the borrowed precision
	c := NewContext()
	acc := c.Set(x, makeFloat("0.1", 200), ToZero)
	assert.Equal(t, Below, acc)
	assert.Equal(t, uint(64), x.Prec())
	assert.Equal(t, uint(62), x.MinPrec())

	_, err = c.SetString(x, "0.25", ToNearestEven)
	require.NoError(t, err)
	assert.Equal(t, "0.25", x.String())
	assert.True(t, x.Borrowed())

	// Import needs a matching precision
	var b bytes.Buffer
	require.NoError(t, makeFloat("3", 10).Export(&b))
	err = x.Import(&b)
	assert.True(t, errors.Is(err, ErrBorrowed), "%v", err)
	b.Reset()
	require.NoError(t, makeFloat("3", 64).Export(&b))
	require.NoError(t, x.Import(&b))
	assert.Equal(t, "3", x.String())

	// gob decoding rounds into borrowed storage
	g, err := makeFloat("1.5", 2).GobEncode()
	require.NoError(t, err)
	require.NoError(t, x.GobDecode(g))
	assert.Equal(t, "1.5", x.String())
	assert.Equal(t, uint(64), x.Prec())

	x.SetNaN()
	assert.True(t, x.IsNaN())
}
