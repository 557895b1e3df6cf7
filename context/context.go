// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package context provides trapping contexts for mpfr Floats.
//
// Operators that set a receiver z to function of other Float arguments like:
//
//	func (c *Context) UnaryOp(z, x *mpfr.Float) *mpfr.Float
//	func (c *Context) BinaryOp(z, x, y *mpfr.Float) *mpfr.Float
//
// set z to the result of the corresponding mpfr.Context operation, rounded to
// z's precision using c's rounding mode, and return z.
//
// A Context traps a set of exception flags: if an operation raises one of
// them, the operation completes normally but further operations with the
// context are no-ops (they simply return the receiver z) until (*Context).Err
// is called to check for errors. This allows a sequence of operations to be
// written without checking flags after each step.
package context

import (
	"github.com/db47h/mpfr"
	"github.com/pkg/errors"
)

// A TrapError records the first operation that raised a trapped flag.
type TrapError struct {
	Op    string     // operation name
	Flags mpfr.Flags // trapped flags raised by Op
}

func (e *TrapError) Error() string {
	return "mpfr: " + e.Op + " raised " + e.Flags.String()
}

// A Context is a wrapper around an mpfr.Context that traps exception flags.
type Context struct {
	c     *mpfr.Context
	traps mpfr.Flags
	err   *TrapError
}

// New returns a new Context operating on c and trapping the flags in traps.
// If c is nil, a new mpfr.Context is used.
func New(c *mpfr.Context, traps mpfr.Flags) *Context {
	if c == nil {
		c = mpfr.NewContext()
	}
	return &Context{c: c, traps: traps & mpfr.AllFlags}
}

// Context returns the underlying mpfr.Context.
func (c *Context) Context() *mpfr.Context { return c.c }

// Traps returns the set of trapped flags.
func (c *Context) Traps() mpfr.Flags { return c.traps }

// SetTraps sets the trapped flags and returns c.
func (c *Context) SetTraps(traps mpfr.Flags) *Context {
	c.traps = traps & mpfr.AllFlags
	return c
}

// Mode returns the rounding mode used by c's operations.
func (c *Context) Mode() mpfr.RoundingMode { return c.c.Mode() }

// Prec returns the precision of Floats created by c.
func (c *Context) Prec() uint { return c.c.Prec() }

// New returns a new Float with value +0 and c's precision.
func (c *Context) New() *mpfr.Float { return c.c.New() }

// NewInt64 returns a new Float set to the (possibly rounded) value of x.
func (c *Context) NewInt64(x int64) *mpfr.Float { return c.c.NewInt64(x) }

// NewFloat64 returns a new Float set to the (possibly rounded) value of x.
func (c *Context) NewFloat64(x float64) *mpfr.Float { return c.c.NewFloat64(x) }

// NewString returns a new Float with the value of s and a boolean indicating
// success. See (*mpfr.Context).NewString.
func (c *Context) NewString(s string) (*mpfr.Float, bool) { return c.c.NewString(s) }

// Err returns the first trap encountered since the last call to Err and clears
// the error state. The returned error, if any, is a *TrapError.
func (c *Context) Err() error {
	err := c.err
	c.err = nil
	if err == nil {
		return nil
	}
	return err
}

// Apply calls fn with c's mpfr.Context and rounding mode, trapping the flags
// it raises under the name op. It does nothing if a trap is pending.
func (c *Context) Apply(op string, fn func(c *mpfr.Context, rnd mpfr.RoundingMode) mpfr.Accuracy) mpfr.Accuracy {
	if c.err != nil {
		return mpfr.Exact
	}
	saved := c.c.TestFlags(c.traps)
	c.c.ClearFlags(c.traps)
	acc := fn(c.c, c.c.Mode())
	if raised := c.c.TestFlags(c.traps); raised != 0 {
		c.err = &TrapError{Op: op, Flags: raised}
	}
	c.c.SetFlags(saved)
	return acc
}

func (c *Context) unary(op string, z *mpfr.Float, f func(z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy, x *mpfr.Float) *mpfr.Float {
	c.Apply(op, func(_ *mpfr.Context, rnd mpfr.RoundingMode) mpfr.Accuracy {
		return f(z, x, rnd)
	})
	return z
}

func (c *Context) binary(op string, z *mpfr.Float, f func(z, x, y *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy, x, y *mpfr.Float) *mpfr.Float {
	c.Apply(op, func(_ *mpfr.Context, rnd mpfr.RoundingMode) mpfr.Accuracy {
		return f(z, x, y, rnd)
	})
	return z
}

// Set sets z to the (possibly rounded) value of x and returns z.
func (c *Context) Set(z, x *mpfr.Float) *mpfr.Float {
	return c.unary("Set", z, c.c.Set, x)
}

// Neg sets z to the (possibly rounded) value of x with its sign negated,
// and returns z.
func (c *Context) Neg(z, x *mpfr.Float) *mpfr.Float {
	return c.unary("Neg", z, c.c.Neg, x)
}

// Abs sets z to the (possibly rounded) value |x| and returns z.
func (c *Context) Abs(z, x *mpfr.Float) *mpfr.Float {
	return c.unary("Abs", z, c.c.Abs, x)
}

// Sqrt sets z to the rounded square root of x, and returns z.
func (c *Context) Sqrt(z, x *mpfr.Float) *mpfr.Float {
	return c.unary("Sqrt", z, c.c.Sqrt, x)
}

// Add sets z to the rounded sum x+y and returns z.
func (c *Context) Add(z, x, y *mpfr.Float) *mpfr.Float {
	return c.binary("Add", z, c.c.Add, x, y)
}

// Sub sets z to the rounded difference x-y and returns z.
func (c *Context) Sub(z, x, y *mpfr.Float) *mpfr.Float {
	return c.binary("Sub", z, c.c.Sub, x, y)
}

// Mul sets z to the rounded product x×y and returns z.
func (c *Context) Mul(z, x, y *mpfr.Float) *mpfr.Float {
	return c.binary("Mul", z, c.c.Mul, x, y)
}

// Quo sets z to the rounded quotient x/y and returns z.
func (c *Context) Quo(z, x, y *mpfr.Float) *mpfr.Float {
	return c.binary("Quo", z, c.c.Quo, x, y)
}

// FMA sets z to x×y + u, computed with only one rounding, and returns z.
func (c *Context) FMA(z, x, y, u *mpfr.Float) *mpfr.Float {
	c.Apply("FMA", func(m *mpfr.Context, rnd mpfr.RoundingMode) mpfr.Accuracy {
		return m.FMA(z, x, y, u, rnd)
	})
	return z
}

// IsTrap reports whether err is a *TrapError raised for one of the flags in
// mask.
func IsTrap(err error, mask mpfr.Flags) bool {
	var t *TrapError
	return errors.As(err, &t) && t.Flags&mask != 0
}
