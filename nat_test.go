// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfr

import (
	"math/big"
	"math/rand"
	"testing"
)

func natFromString(s string) nat {
	x, ok := new(big.Int).SetString(s, 0)
	if !ok {
		panic("invalid nat " + s)
	}
	return natOf(x)
}

func randNat(r *rand.Rand, maxBits int) nat {
	n := r.Intn(maxBits + 1)
	x := new(big.Int).Rand(r, new(big.Int).Lsh(big.NewInt(1), uint(n)))
	return natOf(x)
}

func TestNatNorm(t *testing.T) {
	for _, test := range []struct {
		x    nat
		want int
	}{
		{nil, 0},
		{nat{0}, 0},
		{nat{0, 0, 0}, 0},
		{nat{1, 0}, 1},
		{nat{0, 1, 0, 0}, 2},
	} {
		if got := len(test.x.norm()); got != test.want {
			t.Errorf("len(%v.norm()) = %d; want %d", test.x, got, test.want)
		}
	}
}

func TestNatArith(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		x, y := randNat(r, 300), randNat(r, 300)
		bx, by := x.int(), y.int()

		if got, want := nat(nil).add(x, y).int(), new(big.Int).Add(bx, by); got.Cmp(want) != 0 {
			t.Fatalf("%s + %s = %s; want %s", bx, by, got, want)
		}
		if bx.Cmp(by) < 0 {
			x, y = y, x
			bx, by = by, bx
		}
		if got, want := nat(nil).sub(x, y).int(), new(big.Int).Sub(bx, by); got.Cmp(want) != 0 {
			t.Fatalf("%s - %s = %s; want %s", bx, by, got, want)
		}
		if got, want := x.cmp(y), bx.Cmp(by); got != want {
			t.Fatalf("cmp(%s, %s) = %d; want %d", bx, by, got, want)
		}
		if got, want := x.mul(y).int(), new(big.Int).Mul(bx, by); got.Cmp(want) != 0 {
			t.Fatalf("%s × %s = %s; want %s", bx, by, got, want)
		}
		if len(y) > 0 {
			q, rem := x.quoRem(y)
			wq, wr := new(big.Int).QuoRem(bx, by, new(big.Int))
			if q.int().Cmp(wq) != 0 || rem.int().Cmp(wr) != 0 {
				t.Fatalf("%s / %s = %s, %s; want %s, %s", bx, by, q.int(), rem.int(), wq, wr)
			}
		}

		s := uint(r.Intn(200))
		if got, want := nat(nil).shl(x, s).int(), new(big.Int).Lsh(bx, s); got.Cmp(want) != 0 {
			t.Fatalf("%s << %d = %s; want %s", bx, s, got, want)
		}
		if got, want := nat(nil).shr(x, s).int(), new(big.Int).Rsh(bx, s); got.Cmp(want) != 0 {
			t.Fatalf("%s >> %d = %s; want %s", bx, s, got, want)
		}
		if got, want := nat(nil).incr(x).int(), new(big.Int).Add(bx, big.NewInt(1)); got.Cmp(want) != 0 {
			t.Fatalf("%s + 1 = %s; want %s", bx, got, want)
		}
		if len(x) > 0 {
			if got, want := nat(nil).decr(x).int(), new(big.Int).Sub(bx, big.NewInt(1)); got.Cmp(want) != 0 {
				t.Fatalf("%s - 1 = %s; want %s", bx, got, want)
			}
		}
	}
}

func TestNatShiftInPlace(t *testing.T) {
	x := natFromString("0x123456789abcdef0123456789abcdef")
	want := x.int().String()
	x = x.shl(x, 67)
	x = x.shr(x, 67)
	if got := x.int().String(); got != want {
		t.Errorf("(x << 67) >> 67 = %s; want %s", got, want)
	}
}

func TestNatBits(t *testing.T) {
	x := natFromString("0x80000000000000000000000000000001000")
	if got := x.bitLen(); got != 140 {
		t.Errorf("bitLen = %d; want 140", got)
	}
	if got := x.trailingZeroBits(); got != 12 {
		t.Errorf("trailingZeroBits = %d; want 12", got)
	}
	for _, test := range []struct {
		i           uint
		bit, sticky uint
	}{
		{0, 0, 0},
		{11, 0, 0},
		{12, 1, 0},
		{13, 0, 1},
		{64, 0, 1},
		{139, 1, 1},
		{140, 0, 1},
		{1000, 0, 1},
	} {
		if got := x.bit(test.i); got != test.bit {
			t.Errorf("bit(%d) = %d; want %d", test.i, got, test.bit)
		}
		if got := x.sticky(test.i); got != test.sticky {
			t.Errorf("sticky(%d) = %d; want %d", test.i, got, test.sticky)
		}
	}
	if nat(nil).sticky(10) != 0 || nat(nil).bitLen() != 0 {
		t.Error("zero nat has bits")
	}
}

func TestNatIsPow2(t *testing.T) {
	for _, test := range []struct {
		x    string
		want bool
	}{
		{"0", false},
		{"1", true},
		{"2", true},
		{"3", false},
		{"0x10000000000000000", true},
		{"0x10000000000000001", false},
		{"0x30000000000000000", false},
	} {
		if got := natFromString(test.x).isPow2(); got != test.want {
			t.Errorf("isPow2(%s) = %v; want %v", test.x, got, test.want)
		}
	}
}

func TestNatRootRem(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 300; i++ {
		x := randNat(r, 500)
		k := uint(1 + r.Intn(9))
		root, inexact := x.rootRem(k)
		bx, br := x.int(), root.int()

		lo := new(big.Int).Exp(br, big.NewInt(int64(k)), nil)
		hi := new(big.Int).Exp(new(big.Int).Add(br, big.NewInt(1)), big.NewInt(int64(k)), nil)
		if lo.Cmp(bx) > 0 || hi.Cmp(bx) <= 0 {
			t.Fatalf("rootRem(%s, %d) = %s: not the floor of the root", bx, k, br)
		}
		if inexact != (lo.Cmp(bx) != 0) {
			t.Fatalf("rootRem(%s, %d): inexact = %v", bx, k, inexact)
		}
	}

	// perfect powers
	for k := uint(2); k < 8; k++ {
		b := new(big.Int).Exp(big.NewInt(12345), big.NewInt(int64(k)), nil)
		root, inexact := natOf(b).rootRem(k)
		if inexact || root.int().Int64() != 12345 {
			t.Errorf("rootRem(12345**%d, %d) = %s, %v", k, k, root.int(), inexact)
		}
	}
}

func TestMsb64(t *testing.T) {
	x := natFromString("0xfedcba98765432100123456789abcdef")
	if got, want := msb64(x), uint64(0xfedcba9876543210); got != want {
		t.Errorf("msb64 = %#x; want %#x", got, want)
	}
	if msb64(nil) != 0 {
		t.Error("msb64(nil) != 0")
	}
}
