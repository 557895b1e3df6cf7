// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package random generates random Floats.
//
// A State draws its bits from a golang.org/x/exp/rand Source, by default a
// PCG generator. Urandomb and Urandom are exact or correctly rounded with
// respect to an ideal uniform real number. Nrandom and Erandom compute their
// variate at a higher working precision and round it to the destination.
//
// A State is not safe for concurrent use.
package random

import (
	"encoding/binary"
	"math/big"
	"math/bits"

	"github.com/db47h/mpfr"
	"github.com/db47h/mpfr/math"
	"golang.org/x/exp/rand"
)

// extra bits of working precision for Nrandom and Erandom.
const guardBits = 32

// A State is a source of random Floats.
type State struct {
	r *rand.Rand
}

// New returns a State seeded with seed.
func New(seed uint64) *State {
	var pcg rand.PCGSource
	pcg.Seed(seed)
	return &State{r: rand.New(&pcg)}
}

// NewSource returns a State drawing its bits from src.
func NewSource(src rand.Source) *State {
	return &State{r: rand.New(src)}
}

// Seed reseeds the underlying source.
func (s *State) Seed(seed uint64) {
	s.r.Seed(seed)
}

// bits returns a non-negative integer of n random bits.
func (s *State) bits(n uint) *big.Int {
	words := (n + 63) / 64
	buf := make([]byte, words*8)
	for i := uint(0); i < words; i++ {
		binary.BigEndian.PutUint64(buf[i*8:], s.r.Uint64())
	}
	m := new(big.Int).SetBytes(buf)
	return m.Rsh(m, uint(words*64-n))
}

func prec(c *mpfr.Context, z *mpfr.Float) uint {
	p := z.Prec()
	if p == 0 {
		p = c.Prec()
		z.SetPrec(p)
	}
	return p
}

// Urandomb sets z to a random value uniformly distributed in [0, 1) with all
// z.Prec() significant bits random, and returns z. z is exact: it is a
// multiple of 2**-z.Prec(). If z has no precision, DefaultPrec is used.
func (s *State) Urandomb(z *mpfr.Float) *mpfr.Float {
	c := mpfr.NewContext().Extended()
	p := prec(c, z)
	c.SetIntExp(z, s.bits(p), -int64(p), mpfr.ToZero)
	return z
}

// Urandom sets z to a random value uniformly distributed in [0, 1), rounded
// with rnd from an ideal real number uniformly distributed in [0, 1). The
// result may be 1 when rounding upward. Values below the exponent range of
// c underflow according to rnd.
//
// Since the ideal number has infinitely many random bits, the result is never
// exact.
func (s *State) Urandom(c *mpfr.Context, z *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	p := prec(c, z)
	// the exponent is minus the number of leading zero bits.
	var exp int64
	for {
		w := s.r.Uint64()
		if w != 0 {
			exp -= int64(bits.LeadingZeros64(w))
			break
		}
		exp -= 64
		if exp < c.Emin()-1 {
			break
		}
	}
	// m = 1 (leading bit), p-1 random bits, a rounding bit and a sticky bit
	// standing for the infinite tail.
	m := s.bits(p)
	m.SetBit(m, int(p-1), 1)
	m.Lsh(m, 2)
	m.SetBit(m, 0, 1)
	if s.r.Uint64()>>63 != 0 {
		m.SetBit(m, 1, 1)
	}
	return c.SetIntExp(z, m, exp-int64(p)-2, rnd)
}

// Nrandom sets z to a random value following the standard normal distribution,
// computed with Marsaglia's polar method at a working precision exceeding
// z's, then rounded with rnd.
func (s *State) Nrandom(c *mpfr.Context, z *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	w := prec(c, z) + guardBits
	wc := c.Extended()
	u, v, r := mpfr.NewFloat(w), mpfr.NewFloat(w), mpfr.NewFloat(w)
	for {
		s.symmetric(wc, u)
		s.symmetric(wc, v)
		wc.Sqr(r, u, mpfr.ToNearestEven)
		wc.FMA(r, v, v, r, mpfr.ToNearestEven)
		if !r.IsZero() && wc.CmpInt64(r, 1) < 0 {
			break
		}
	}
	// u × √(-2 ln(r)/r)
	t := mpfr.NewFloat(w)
	math.Log(wc, t, r, mpfr.ToNearestEven)
	wc.Quo(t, t, r, mpfr.ToNearestEven)
	wc.Mul2Exp(t, t, 1, mpfr.ToNearestEven)
	wc.Neg(t, t, mpfr.ToNearestEven)
	wc.Sqrt(t, t, mpfr.ToNearestEven)
	return c.Mul(z, u, t, rnd)
}

// symmetric sets u to a uniform random value in (-1, 1).
func (s *State) symmetric(c *mpfr.Context, u *mpfr.Float) {
	s.Urandom(c, u, mpfr.ToZero)
	c.Mul2Exp(u, u, 1, mpfr.ToNearestEven)
	c.SubInt64(u, u, 1, mpfr.ToNearestEven)
}

// Erandom sets z to a random value following the exponential distribution of
// rate 1, computed as -ln(U) with U uniform in (0, 1) at a working precision
// exceeding z's, then rounded with rnd.
func (s *State) Erandom(c *mpfr.Context, z *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	w := prec(c, z) + guardBits
	wc := c.Extended()
	u := mpfr.NewFloat(w)
	for {
		s.Urandom(wc, u, mpfr.ToZero)
		if !u.IsZero() {
			break
		}
	}
	t := mpfr.NewFloat(w)
	math.Log(wc, t, u, mpfr.ToNearestEven)
	return c.Neg(z, t, rnd)
}
