// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfr

import "math/big"

// Mixed-type operations. The non-Float operand is used as an exact value for
// the duration of the operation, so that the result is rounded only once.

// AddInt sets z to the rounded sum x+y.
func (c *Context) AddInt(z, x *Float, y *big.Int, rnd RoundingMode) Accuracy {
	return c.Add(z, x, exactInt(y), rnd)
}

// SubInt sets z to the rounded difference x-y.
func (c *Context) SubInt(z, x *Float, y *big.Int, rnd RoundingMode) Accuracy {
	return c.Sub(z, x, exactInt(y), rnd)
}

// IntSub sets z to the rounded difference x-y.
func (c *Context) IntSub(z *Float, x *big.Int, y *Float, rnd RoundingMode) Accuracy {
	return c.Sub(z, exactInt(x), y, rnd)
}

// MulInt sets z to the rounded product x*y.
func (c *Context) MulInt(z, x *Float, y *big.Int, rnd RoundingMode) Accuracy {
	return c.Mul(z, x, exactInt(y), rnd)
}

// QuoInt sets z to the rounded quotient x/y.
func (c *Context) QuoInt(z, x *Float, y *big.Int, rnd RoundingMode) Accuracy {
	return c.Quo(z, x, exactInt(y), rnd)
}

// IntQuo sets z to the rounded quotient x/y.
func (c *Context) IntQuo(z *Float, x *big.Int, y *Float, rnd RoundingMode) Accuracy {
	return c.Quo(z, exactInt(x), y, rnd)
}

// AddInt64 sets z to the rounded sum x+y.
func (c *Context) AddInt64(z, x *Float, y int64, rnd RoundingMode) Accuracy {
	return c.Add(z, x, exactInt64(y), rnd)
}

// SubInt64 sets z to the rounded difference x-y.
func (c *Context) SubInt64(z, x *Float, y int64, rnd RoundingMode) Accuracy {
	return c.Sub(z, x, exactInt64(y), rnd)
}

// MulInt64 sets z to the rounded product x*y.
func (c *Context) MulInt64(z, x *Float, y int64, rnd RoundingMode) Accuracy {
	return c.Mul(z, x, exactInt64(y), rnd)
}

// QuoInt64 sets z to the rounded quotient x/y.
func (c *Context) QuoInt64(z, x *Float, y int64, rnd RoundingMode) Accuracy {
	return c.Quo(z, x, exactInt64(y), rnd)
}

// AddFloat64 sets z to the rounded sum x+y.
func (c *Context) AddFloat64(z, x *Float, y float64, rnd RoundingMode) Accuracy {
	return c.Add(z, x, exactFloat64(y), rnd)
}

// SubFloat64 sets z to the rounded difference x-y.
func (c *Context) SubFloat64(z, x *Float, y float64, rnd RoundingMode) Accuracy {
	return c.Sub(z, x, exactFloat64(y), rnd)
}

// MulFloat64 sets z to the rounded product x*y.
func (c *Context) MulFloat64(z, x *Float, y float64, rnd RoundingMode) Accuracy {
	return c.Mul(z, x, exactFloat64(y), rnd)
}

// QuoFloat64 sets z to the rounded quotient x/y.
func (c *Context) QuoFloat64(z, x *Float, y float64, rnd RoundingMode) Accuracy {
	return c.Quo(z, x, exactFloat64(y), rnd)
}

// ratSign returns a Float with the sign and zeroness of q: ±0 or ±1.
func ratSign(q *big.Rat) *Float {
	switch q.Sign() {
	case 0:
		return new(Float)
	case -1:
		return exactInt64(-1)
	}
	return exactInt64(1)
}

// AddRat sets z to the correctly rounded sum x+y.
func (c *Context) AddRat(z, x *Float, y *big.Rat, rnd RoundingMode) Accuracy {
	return c.addRat(z, x, y, false, rnd)
}

// SubRat sets z to the correctly rounded difference x-y.
func (c *Context) SubRat(z, x *Float, y *big.Rat, rnd RoundingMode) Accuracy {
	return c.addRat(z, x, y, true, rnd)
}

func (c *Context) addRat(z, x *Float, y *big.Rat, sub bool, rnd RoundingMode) Accuracy {
	if x.form != finite || y.Sign() == 0 {
		if x.form == zero {
			// exact result y, but keep the zero sign rules of Add.
			if y.Sign() == 0 {
				return c.add(z, x, ratSign(y), sub, rnd)
			}
			return c.setRatio(z, (y.Sign() < 0) != sub, nat(y.Num().Bits()), nat(y.Denom().Bits()), 0, rnd)
		}
		if sub {
			return c.Sub(z, x, ratSign(y), rnd)
		}
		return c.Add(z, x, ratSign(y), rnd)
	}
	// x + a/b = (m×b×2**e ± a) / b
	m, e := x.exact()
	a := y.Num()
	b := y.Denom()
	xi := new(big.Int).Mul(m.int(), b)
	if x.neg {
		xi.Neg(xi)
	}
	ai := new(big.Int).Set(a)
	if sub {
		ai.Neg(ai)
	}
	if e >= 0 {
		xi.Lsh(xi, uint(e))
		e = 0
	} else {
		ai.Lsh(ai, uint(-e))
	}
	n := xi.Add(xi, ai)
	if n.Sign() == 0 {
		c.prepare(z)
		z.SetZero(rnd == ToNegativeInf)
		return Exact
	}
	return c.setRatio(z, n.Sign() < 0, nat(n.Bits()), nat(b.Bits()), e, rnd)
}

// MulRat sets z to the correctly rounded product x*y.
func (c *Context) MulRat(z, x *Float, y *big.Rat, rnd RoundingMode) Accuracy {
	if x.form != finite || y.Sign() == 0 {
		return c.Mul(z, x, ratSign(y), rnd)
	}
	m, e := x.exact()
	n := new(big.Int).Mul(m.int(), y.Num())
	return c.setRatio(z, x.neg != (y.Sign() < 0), nat(n.Bits()), nat(y.Denom().Bits()), e, rnd)
}

// QuoRat sets z to the correctly rounded quotient x/y.
func (c *Context) QuoRat(z, x *Float, y *big.Rat, rnd RoundingMode) Accuracy {
	if x.form != finite || y.Sign() == 0 {
		return c.Quo(z, x, ratSign(y), rnd)
	}
	m, e := x.exact()
	n := new(big.Int).Mul(m.int(), y.Denom())
	return c.setRatio(z, x.neg != (y.Sign() < 0), nat(n.Bits()), nat(y.Num().Bits()), e, rnd)
}
