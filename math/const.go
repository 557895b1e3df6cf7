// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"math/big"
	"math/bits"
	"sync"

	"github.com/db47h/mpfr"
	"go.uber.org/zap"
)

// Mathematical constants are computed in fixed point: a constant k with b
// fractional bits is the integer v with |v - k×2**b| < 2**constSlack. Values
// are cached at the highest precision computed so far.

const (
	constSlack = 32 // error bound of cached fixed point values, in units
	constGuard = 64 // extra fractional bits computed
)

type constant struct {
	name string
	fn   func(b uint) *big.Int

	mu sync.Mutex
	b  uint
	v  *big.Int
}

// fixed returns the constant with at least b fractional bits. The result
// must not be modified.
func (k *constant) fixed(log *zap.Logger, b uint) (*big.Int, uint) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.v == nil || k.b < b {
		nb := b + constGuard
		if nb < 2*k.b {
			// amortize refills
			nb = 2 * k.b
		}
		log.Debug("refilling constant cache", zap.String("const", k.name), zap.Uint("bits", nb))
		k.v = k.fn(nb)
		k.b = nb
	}
	return k.v, k.b
}

// approx sets t to the constant rounded to nearest at t's precision and
// returns the Ziv error count.
func (k *constant) approx(w *mpfr.Context, t *mpfr.Float) int64 {
	v, b := k.fixed(w.Logger(), t.Prec()+constGuard)
	w.SetIntExp(t, v, -int64(b), rn)
	// |t - k| <= ulp/2 + 2**(constSlack-b)
	return int64(t.Prec()) - 1
}

var (
	cPi      = &constant{name: "pi", fn: fixedPi}
	cLog2    = &constant{name: "log2", fn: fixedLog2}
	cEuler   = &constant{name: "euler", fn: fixedEuler}
	cCatalan = &constant{name: "catalan", fn: fixedCatalan}
)

// Pi sets z to π rounded with rnd.
func Pi(c *mpfr.Context, z *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	return ziv(c, z, rnd, "Pi", cPi.approx)
}

// Log2Const sets z to log(2) rounded with rnd.
func Log2Const(c *mpfr.Context, z *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	return ziv(c, z, rnd, "Log2Const", cLog2.approx)
}

// Euler sets z to the Euler-Mascheroni constant γ = 0.577... rounded with rnd.
func Euler(c *mpfr.Context, z *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	return ziv(c, z, rnd, "Euler", cEuler.approx)
}

// Catalan sets z to Catalan's constant G = 0.915... rounded with rnd.
func Catalan(c *mpfr.Context, z *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy {
	return ziv(c, z, rnd, "Catalan", cCatalan.approx)
}

// pi returns a new Float of precision p holding π with an error below one
// ulp.
func pi(w *mpfr.Context, p uint) *mpfr.Float {
	t := nf(p)
	cPi.approx(w, t)
	return t
}

// log2 returns a new Float of precision p holding log(2) with an error below
// one ulp.
func log2(w *mpfr.Context, p uint) *mpfr.Float {
	t := nf(p)
	cLog2.approx(w, t)
	return t
}

// fixed point helpers

func pow2(b uint) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), b)
}

// atanInv returns atan(1/n)×2**b (or atanh(1/n)×2**b if hyperbolic) with an
// error below the number of terms.
func atanInv(n int64, b uint, hyperbolic bool) *big.Int {
	var (
		sum  = new(big.Int)
		pw   = new(big.Int).Quo(pow2(b), big.NewInt(n)) // 1/n**(2k+1)
		nn   = big.NewInt(n * n)
		term = new(big.Int)
		d    = new(big.Int)
	)
	for k := int64(0); pw.Sign() != 0; k++ {
		term.Quo(pw, d.SetInt64(2*k+1))
		if k&1 != 0 && !hyperbolic {
			sum.Sub(sum, term)
		} else {
			sum.Add(sum, term)
		}
		pw.Quo(pw, nn)
	}
	return sum
}

// fixedPi uses Machin's formula π = 16 atan(1/5) - 4 atan(1/239).
func fixedPi(b uint) *big.Int {
	const g = 16
	a := atanInv(5, b+g, false)
	a.Lsh(a, 4)
	t := atanInv(239, b+g, false)
	t.Lsh(t, 2)
	a.Sub(a, t)
	return a.Rsh(a, g)
}

// fixedLog2 uses log(2) = 2 atanh(1/3).
func fixedLog2(b uint) *big.Int {
	const g = 16
	a := atanInv(3, b+g, true)
	a.Lsh(a, 1)
	return a.Rsh(a, g)
}

// fixedEuler uses the Brent-McMillan algorithm with n = 2**m:
//
//	γ = U/V - log(n), U = Σ (n**k/k!)**2 H(k), V = Σ (n**k/k!)**2
//
// with an error below π e**(-4n).
func fixedEuler(b uint) *big.Int {
	// e**(-4n) < 2**-(b+8)
	m := uint(1)
	for (uint(1)<<m)*4 < (b+8)*7/10+1 {
		m++
	}
	n := int64(1) << m
	g := uint(2*bits.Len(b) + 32)
	bb := b + g

	var (
		n2  = big.NewInt(n * n)
		one = pow2(bb)
		A   = fixedLog2(bb) // A(0) = -log(n)
		B   = new(big.Int).Set(one)
		U   = new(big.Int)
		V   = new(big.Int).Set(one)
		kk  = new(big.Int)
	)
	A.Mul(A, big.NewInt(int64(m)))
	A.Neg(A)
	U.Set(A)
	for k := int64(1); ; k++ {
		kk.SetInt64(k)
		// B(k) = B(k-1) n²/k²
		B.Mul(B, n2)
		B.Quo(B, kk)
		B.Quo(B, kk)
		// A(k) = (A(k-1) n²/k + B(k))/k
		A.Mul(A, n2)
		A.Quo(A, kk)
		A.Add(A, B)
		A.Quo(A, kk)
		if B.Sign() == 0 && A.Sign() == 0 {
			break
		}
		U.Add(U, A)
		V.Add(V, B)
	}
	U.Lsh(U, bb)
	U.Quo(U, V)
	return U.Rsh(U, g)
}

// fixedCatalan uses
//
//	G = 3/8 Σ (k!)²/((2k)!(2k+1)²) + π/8 log(2+√3)
//
// with log(2+√3) = 2 atanh(1/√3) = 2/√3 Σ 3**-k/(2k+1).
func fixedCatalan(b uint) *big.Int {
	const g = 32
	bb := b + g
	var (
		s    = new(big.Int)
		a    = pow2(bb) // (k!)²/(2k)!
		term = new(big.Int)
		d    = new(big.Int)
	)
	for k := int64(0); a.Sign() != 0; k++ {
		if k > 0 {
			// a(k) = a(k-1) k/(2(2k-1))
			a.Mul(a, d.SetInt64(k))
			a.Quo(a, d.SetInt64(2*(2*k-1)))
		}
		term.Quo(a, d.SetInt64((2*k+1)*(2*k+1)))
		s.Add(s, term)
	}
	s.Mul(s, big.NewInt(3))
	s.Rsh(s, 3) // 3/8 Σ

	s3 := new(big.Int)
	p3 := pow2(bb)
	for k := int64(0); p3.Sign() != 0; k++ {
		s3.Add(s3, term.Quo(p3, d.SetInt64(2*k+1)))
		p3.Quo(p3, big.NewInt(3))
	}
	// π/8 × 2/√3 × s3 = π √3 s3 / 12
	sqrt3 := new(big.Int).Sqrt(new(big.Int).Lsh(big.NewInt(3), 2*bb))
	t := fixedPi(bb)
	t.Mul(t, sqrt3)
	t.Rsh(t, bb)
	t.Mul(t, s3)
	t.Rsh(t, bb)
	t.Quo(t, big.NewInt(12))
	s.Add(s, t)
	return s.Rsh(s, g)
}
