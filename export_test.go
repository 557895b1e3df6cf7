// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfr

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var floatVals = []string{
	"0",
	"-0",
	"1",
	"-1",
	"0.1",
	"-2.71828182845904523536028747135266249775724709369995957496696763",
	"1234567890123456789012345678901234567890",
	"1e-1000",
	"0x1p-100000",
	"+Inf",
	"-Inf",
	"NaN",
}

func TestFloatExportEncoding(t *testing.T) {
	for _, test := range []struct {
		x    string
		prec uint
		want []byte
	}{
		{"1.5", 10, []byte{1, 3, 10, 2, 0xc0, 0x00}},
		{"-1.5", 8, []byte{1, 0x83, 8, 2, 0xc0}},
		{"0.375", 3, []byte{1, 3, 3, 1, 0xc0}},
		{"-0", 53, []byte{1, 0x82, 53}},
		{"+Inf", 53, []byte{1, 1, 53}},
		{"NaN", 200, []byte{1, 0, 0xc8, 0x01}},
	} {
		var buf bytes.Buffer
		require.NoError(t, makeFloat(test.x, test.prec).Export(&buf))
		if diff := cmp.Diff(test.want, buf.Bytes()); diff != "" {
			t.Errorf("%s (prec %d) export mismatch (-want +got):\n%s", test.x, test.prec, diff)
		}
	}
}

func TestFloatExportImport(t *testing.T) {
	for _, s := range floatVals {
		for _, prec := range []uint{1, 7, 53, 64, 65, 1000} {
			x := makeFloat(s, prec)
			var buf bytes.Buffer
			require.NoError(t, x.Export(&buf))
			var y Float
			require.NoError(t, y.Import(&buf), "%s (prec %d)", s, prec)
			assert.Equal(t, x.Prec(), y.Prec())
			assert.True(t, alike(x, &y), "%s (prec %d): got %s", s, prec, y.Text('g', 20))
			assert.Zero(t, buf.Len(), "trailing bytes")
		}
	}
}

func TestFloatImportStream(t *testing.T) {
	// Import does not read past the encoded value
	var buf bytes.Buffer
	xs := []*Float{makeFloat("3.25", 20), makeFloat("-Inf", 5), makeFloat("1e100", 300)}
	for _, x := range xs {
		require.NoError(t, x.Export(&buf))
	}
	r := io.MultiReader(&buf) // not an io.ByteReader
	for _, x := range xs {
		var y Float
		require.NoError(t, y.Import(r))
		assert.True(t, alike(x, &y))
		assert.Equal(t, x.Prec(), y.Prec())
	}
}

func TestFloatImportMalformed(t *testing.T) {
	for _, test := range []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"version", []byte{2, 3, 10, 2, 0xc0, 0}},
		{"kind", []byte{1, 4, 10}},
		{"no precision", []byte{1, 3}},
		{"zero precision", []byte{1, 2, 0}},
		{"huge precision", []byte{1, 2, 0xff, 0xff, 0xff, 0xff, 0x0f}},
		{"no exponent", []byte{1, 3, 10}},
		{"truncated mantissa", []byte{1, 3, 10, 2, 0xc0}},
		{"not normalized", []byte{1, 3, 10, 2, 0x40, 0}},
		{"bits past precision", []byte{1, 3, 10, 2, 0xc0, 0x01}},
		{"exponent range", []byte{1, 3, 8, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01, 0x80}},
	} {
		z := makeFloat("42", 53)
		err := z.Import(bytes.NewReader(test.data))
		assert.True(t, errors.Is(err, ErrMalformed), "%s: %v", test.name, err)
		assert.Equal(t, "42", z.String(), "%s: z must be left unchanged", test.name)
		assert.Equal(t, uint(53), z.Prec())
	}
}

func TestFloatGobEncoding(t *testing.T) {
	var medium bytes.Buffer
	enc := gob.NewEncoder(&medium)
	dec := gob.NewDecoder(&medium)
	for _, s := range floatVals {
		for _, prec := range []uint{1, 10, 53, 100, 1000} {
			x := makeFloat(s, prec)
			medium.Reset()
			if err := enc.Encode(x); err != nil {
				t.Fatalf("encoding %s (prec %d): %v", s, prec, err)
			}
			var y Float
			if err := dec.Decode(&y); err != nil {
				t.Fatalf("decoding %s (prec %d): %v", s, prec, err)
			}
			if !alike(x, &y) || x.Prec() != y.Prec() {
				t.Errorf("gob: got %s (prec %d); want %s (prec %d)", y.Text('g', 20), y.Prec(), x.Text('g', 20), x.Prec())
			}
		}
	}
}

func TestFloatGobDecodeRounds(t *testing.T) {
	b, err := makeFloat("1.75", 53).GobEncode()
	require.NoError(t, err)
	z := NewFloat(2)
	require.NoError(t, z.GobDecode(b))
	assert.Equal(t, uint(2), z.Prec())
	assert.Equal(t, "2", z.String())

	// a nil value decodes to +0
	require.NoError(t, z.GobDecode(nil))
	assert.True(t, z.IsZero())

	err = z.GobDecode([]byte{9})
	assert.True(t, errors.Is(err, ErrMalformed), "%v", err)

	var x *Float
	b, err = x.GobEncode()
	assert.NoError(t, err)
	assert.Nil(t, b)
}

func TestFloatJSONEncoding(t *testing.T) {
	for _, s := range []string{"0", "1", "-1", "0.1", "1e-1000", "-1.5e300"} {
		for _, prec := range []uint{24, 53, 100, 500} {
			x := makeFloat(s, prec)
			b, err := json.Marshal(x)
			require.NoError(t, err)
			y := NewFloat(prec)
			require.NoError(t, json.Unmarshal(b, y), string(b))
			if !alike(x, y) {
				t.Errorf("json: %s (prec %d) round trips to %s", s, prec, y.Text('g', 20))
			}
		}
	}
}

func TestFloatMarshalText(t *testing.T) {
	x := makeFloat("-0.1", 24)
	b, err := x.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "-0.1", string(b))

	var y Float
	require.NoError(t, y.UnmarshalText(b))
	assert.Equal(t, uint(DefaultPrec), y.Prec())
	assert.Equal(t, "-0.1", y.Text('g', -1))

	err = y.UnmarshalText([]byte("0x"))
	assert.Error(t, err)

	var nilFloat *Float
	b, _ = nilFloat.MarshalText()
	assert.Equal(t, "<nil>", string(b))
}
