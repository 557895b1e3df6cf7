// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfr

import (
	"math/big"
	"math/bits"
)

// nat is an unsigned integer x of the form
//
//	x = x[n-1]*2^(_W*(n-1)) + x[n-2]*2^(_W*(n-2)) + ... + x[1]*2^_W + x[0]
//
// with 0 <= x[i] < 2^_W and 0 <= i < n stored in a slice of length n, with
// the limbs x[i] as the slice elements.
//
// A number is normalized if the slice contains no leading 0 limbs. During
// arithmetic operations, denormalized values may occur but are always
// normalized before returning the final result. The normalized representation
// of 0 is the empty or nil slice (length = 0).
//
// Multiplication, division and integer roots are delegated to math/big: a nat
// is handed to a big.Int with SetBits, which shares the limbs. Such big.Int
// values are only ever used as operands.
type nat []Word

// nwords returns the number of limbs required for prec bits.
func nwords(prec uint32) int {
	return int((uint64(prec) + _W - 1) / _W)
}

func (z nat) make(n int) nat {
	if n <= cap(z) {
		return z[:n] // reuse z
	}
	if n == 1 {
		// Most nats start small and stay that way; don't over-allocate.
		return make(nat, 1)
	}
	// Choosing a good value for e has significant performance impact
	// because it increases the chance that a value can be reused.
	const e = 4 // extra capacity
	return make(nat, n, n+e)
}

func (z nat) set(x nat) nat {
	z = z.make(len(x))
	copy(z, x)
	return z
}

func (z nat) clear() {
	for i := range z {
		z[i] = 0
	}
}

func (z nat) norm() nat {
	i := len(z)
	for i > 0 && z[i-1] == 0 {
		i--
	}
	return z[0:i]
}

func (z nat) setUint64(x uint64) nat {
	if x == 0 {
		return z[:0]
	}
	if _W == 64 {
		z = z.make(1)
		z[0] = Word(x)
		return z
	}
	if x>>32 == 0 {
		z = z.make(1)
		z[0] = Word(x)
		return z
	}
	z = z.make(2)
	z[0] = Word(x & 0xffffffff)
	z[1] = Word(x >> 32)
	return z
}

// bitLen returns the length of x in bits. x must be normalized.
func (x nat) bitLen() uint {
	if i := len(x) - 1; i >= 0 {
		return uint(i)*_W + uint(bits.Len(uint(x[i])))
	}
	return 0
}

// bit returns the value of the i'th bit of x.
func (x nat) bit(i uint) uint {
	j := i / _W
	if j >= uint(len(x)) {
		return 0
	}
	return uint(x[j] >> (i % _W) & 1)
}

// sticky returns 1 if there's a 1 bit within the
// i least significant bits, otherwise it returns 0.
func (x nat) sticky(i uint) uint {
	j := i / _W
	if j >= uint(len(x)) {
		if len(x) == 0 {
			return 0
		}
		return 1
	}
	// 0 <= j < len(x)
	for _, x := range x[:j] {
		if x != 0 {
			return 1
		}
	}
	if x[j]<<(_W-i%_W) != 0 {
		return 1
	}
	return 0
}

// trailingZeroBits returns the number of consecutive least significant zero
// bits of x.
func (x nat) trailingZeroBits() uint {
	for i, w := range x {
		if w != 0 {
			return uint(i)*_W + uint(bits.TrailingZeros(uint(w)))
		}
	}
	return 0
}

func (x nat) cmp(y nat) (r int) {
	m := len(x)
	n := len(y)
	if m != n || m == 0 {
		switch {
		case m < n:
			r = -1
		case m > n:
			r = 1
		}
		return
	}

	i := m - 1
	for i > 0 && x[i] == y[i] {
		i--
	}

	switch {
	case x[i] < y[i]:
		r = -1
	case x[i] > y[i]:
		r = 1
	}
	return
}

func (z nat) add(x, y nat) nat {
	m := len(x)
	n := len(y)

	switch {
	case m < n:
		return z.add(y, x)
	case m == 0:
		// n == 0 because m >= n; result is 0
		return z[:0]
	case n == 0:
		// result is x
		return z.set(x)
	}
	// m > 0

	z = z.make(m + 1)
	c := addVV(z[0:n], x, y)
	if m > n {
		c = addVW(z[n:m], x[n:], c)
	}
	z[m] = c

	return z.norm()
}

// sub sets z = x - y. x must be >= y.
func (z nat) sub(x, y nat) nat {
	m := len(x)
	n := len(y)

	switch {
	case m < n:
		panic("underflow")
	case m == 0:
		// n == 0 because m >= n; result is 0
		return z[:0]
	case n == 0:
		// result is x
		return z.set(x)
	}
	// m > 0

	z = z.make(m)
	c := subVV(z[0:n], x, y)
	if m > n {
		c = subVW(z[n:], x[n:], c)
	}
	if c != 0 {
		panic("underflow")
	}

	return z.norm()
}

// shl sets z = x << s.
func (z nat) shl(x nat, s uint) nat {
	if s == 0 {
		if same(z, x) {
			return z
		}
		if !alias(z, x) {
			return z.set(x)
		}
	}

	m := len(x)
	if m == 0 {
		return z[:0]
	}
	// m > 0

	n := m + int(s/_W)
	z = z.make(n + 1)
	z[n] = shlVU(z[n-m:n], x, s%_W)
	z[0 : n-m].clear()

	return z.norm()
}

// shr sets z = x >> s.
func (z nat) shr(x nat, s uint) nat {
	if s == 0 {
		if same(z, x) {
			return z
		}
		if !alias(z, x) {
			return z.set(x)
		}
	}

	m := len(x)
	n := m - int(s/_W)
	if n <= 0 {
		return z[:0]
	}
	// n > 0

	z = z.make(n)
	shrVU(z, x[m-n:], s%_W)

	return z.norm()
}

// incr sets z = x + 1.
func (z nat) incr(x nat) nat {
	m := len(x)
	if m == 0 {
		return z.setUint64(1)
	}
	z = z.make(m + 1)
	z[m] = addVW(z[:m], x, 1)
	return z.norm()
}

// decr sets z = x - 1. x must be > 0.
func (z nat) decr(x nat) nat {
	z = z.make(len(x))
	if subVW(z, x, 1) != 0 {
		panic("underflow")
	}
	return z.norm()
}

// isPow2 reports whether x is a power of two.
func (x nat) isPow2() bool {
	if len(x) == 0 {
		return false
	}
	return x.trailingZeroBits() == x.bitLen()-1
}

// int returns a big.Int sharing x's limbs. The result must not be used as
// the receiver of a big.Int operation.
func (x nat) int() *big.Int {
	return new(big.Int).SetBits(x)
}

// natOf returns the absolute value of x as a normalized nat that does not
// share memory with x.
func natOf(x *big.Int) nat {
	return nat(nil).set(nat(x.Bits()).norm())
}

// mul returns x × y in a new nat.
func (x nat) mul(y nat) nat {
	if len(x) == 0 || len(y) == 0 {
		return nil
	}
	return nat(new(big.Int).Mul(x.int(), y.int()).Bits())
}

// quoRem returns the quotient and remainder of x / y in new nats.
func (x nat) quoRem(y nat) (q, r nat) {
	qq, rr := new(big.Int).QuoRem(x.int(), y.int(), new(big.Int))
	return nat(qq.Bits()), nat(rr.Bits())
}

// sqrtRem returns floor(√x) and whether the remainder x - ⌊√x⌋² is non-zero.
func (x nat) sqrtRem() (r nat, inexact bool) {
	xi := x.int()
	ri := new(big.Int).Sqrt(xi)
	t := new(big.Int).Mul(ri, ri)
	return nat(ri.Bits()), t.Cmp(xi) != 0
}

// rootRem returns floor(x^(1/k)) and whether the root is inexact. k > 0.
func (x nat) rootRem(k uint) (r nat, inexact bool) {
	if k == 1 || len(x) == 0 {
		return nat(nil).set(x), false
	}
	if k == 2 {
		return x.sqrtRem()
	}
	xi := x.int()
	n := x.bitLen()
	// initial guess 2^ceil(n/k) >= root; Newton's iteration is then
	// monotonically decreasing down to floor(root).
	y := new(big.Int).Lsh(big.NewInt(1), (n+k-1)/k)
	kk := big.NewInt(int64(k))
	km1 := big.NewInt(int64(k - 1))
	t, u := new(big.Int), new(big.Int)
	for {
		// u = ((k-1)·y + x / y^(k-1)) / k
		t.Exp(y, km1, nil)
		u.Quo(xi, t)
		t.Mul(y, km1)
		u.Add(u, t)
		u.Quo(u, kk)
		if u.Cmp(y) >= 0 {
			break
		}
		y.Set(u)
	}
	t.Exp(y, kk, nil)
	return nat(y.Bits()), t.Cmp(xi) != 0
}

func same(x, y []Word) bool {
	return len(x) == len(y) && len(x) > 0 && &x[0] == &y[0]
}

func alias(x, y []Word) bool {
	return cap(x) > 0 && cap(y) > 0 && &x[0:cap(x)][cap(x)-1] == &y[0:cap(y)][cap(y)-1]
}
