// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfr

import (
	"math/big"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// A Context holds the state consulted and updated by Float operations: the
// default precision and rounding mode used by constructors, the exponent range
// [Emin, Emax] and the sticky exception flags.
//
// Operations never consult hidden package-level state: each goroutine should
// use its own Context. The flags are updated atomically, so a Context may be
// shared for flag inspection, but its configuration must not be modified
// concurrently with operations. Float values themselves are not synchronized.
type Context struct {
	prec  uint32
	mode  RoundingMode
	emin  int64
	emax  int64
	flags atomic.Uint32
	log   *zap.Logger
}

// NewContext returns a new Context with 53 bits of precision, ToNearestEven
// rounding, the default exponent range and all flags clear.
func NewContext() *Context {
	return &Context{
		prec: DefaultPrec,
		mode: ToNearestEven,
		emin: DefaultEmin,
		emax: DefaultEmax,
		log:  zap.NewNop(),
	}
}

// Clone returns a copy of c with the same configuration and flags.
func (c *Context) Clone() *Context {
	d := &Context{
		prec: c.prec,
		mode: c.mode,
		emin: c.emin,
		emax: c.emax,
		log:  c.log,
	}
	d.flags.Store(c.flags.Load())
	return d
}

// Extended returns a new Context with the same default precision, rounding
// mode and logger as c, all flags clear and the widest exponent range. It is
// meant for intermediate computations.
func (c *Context) Extended() *Context {
	return &Context{
		prec: c.prec,
		mode: c.mode,
		emin: MinExp,
		emax: MaxExp,
		log:  c.Logger(),
	}
}

// Prec returns the default precision of c in bits.
func (c *Context) Prec() uint {
	return uint(c.prec)
}

// SetPrec sets the default precision of c. It panics if prec is outside
// [MinPrec, MaxPrec].
func (c *Context) SetPrec(prec uint) *Context {
	c.prec = validPrec(prec)
	return c
}

// Mode returns the default rounding mode of c.
func (c *Context) Mode() RoundingMode {
	return c.mode
}

// SetMode sets the default rounding mode of c.
func (c *Context) SetMode(mode RoundingMode) *Context {
	c.mode = mode
	return c
}

// Emin returns the smallest exponent allowed for Floats.
func (c *Context) Emin() int64 { return c.emin }

// Emax returns the largest exponent allowed for Floats.
func (c *Context) Emax() int64 { return c.emax }

// SetEmin sets the smallest exponent allowed for Floats. Existing Floats are
// not affected; see CheckRange.
func (c *Context) SetEmin(e int64) error {
	if e < MinExp || e > MaxExp {
		return errors.Wrapf(ErrExpRange, "emin %d", e)
	}
	c.emin = e
	return nil
}

// SetEmax sets the largest exponent allowed for Floats. Existing Floats are
// not affected; see CheckRange.
func (c *Context) SetEmax(e int64) error {
	if e < MinExp || e > MaxExp {
		return errors.Wrapf(ErrExpRange, "emax %d", e)
	}
	c.emax = e
	return nil
}

// Logger returns the logger used to trace expensive computations.
func (c *Context) Logger() *zap.Logger {
	if c.log == nil {
		return zap.NewNop()
	}
	return c.log
}

// SetLogger sets the logger of c. A nil logger disables logging.
func (c *Context) SetLogger(l *zap.Logger) *Context {
	if l == nil {
		l = zap.NewNop()
	}
	c.log = l
	return c
}

// Flags returns the current value of all flags. It is the same as SaveFlags.
func (c *Context) Flags() Flags {
	return Flags(c.flags.Load())
}

// SaveFlags returns a snapshot of all flags.
func (c *Context) SaveFlags() Flags {
	return Flags(c.flags.Load())
}

// TestFlags returns the subset of mask that is currently raised.
func (c *Context) TestFlags(mask Flags) Flags {
	return Flags(c.flags.Load()) & mask
}

// SetFlags raises the flags in mask.
func (c *Context) SetFlags(mask Flags) {
	c.update(func(f Flags) Flags { return f | mask })
}

// ClearFlags clears the flags in mask.
func (c *Context) ClearFlags(mask Flags) {
	c.update(func(f Flags) Flags { return f &^ mask })
}

// RestoreFlags sets each flag in mask to its value in saved. Flags not in
// mask are left alone.
func (c *Context) RestoreFlags(saved, mask Flags) {
	c.update(func(f Flags) Flags { return f.Restore(saved, mask) })
}

func (c *Context) update(fn func(Flags) Flags) {
	for {
		old := c.flags.Load()
		if c.flags.CompareAndSwap(old, uint32(fn(Flags(old)))) {
			return
		}
	}
}

// raise is the internal version of SetFlags.
func (c *Context) raise(f Flags) {
	if f == 0 || Flags(c.flags.Load())&f == f {
		return
	}
	c.SetFlags(f)
}

// New returns a new Float with value +0 and c's default precision.
func (c *Context) New() *Float {
	return &Float{prec: c.prec}
}

// NewFloat64 returns a new Float set to the value of x, rounded to c's
// default precision and rounding mode.
func (c *Context) NewFloat64(x float64) *Float {
	z := c.New()
	c.SetFloat64(z, x, c.mode)
	return z
}

// NewInt64 returns a new Float set to the value of x, rounded to c's default
// precision and rounding mode.
func (c *Context) NewInt64(x int64) *Float {
	z := c.New()
	c.SetInt64(z, x, c.mode)
	return z
}

// NewInt returns a new Float set to the value of x, rounded to c's default
// precision and rounding mode.
func (c *Context) NewInt(x *big.Int) *Float {
	z := c.New()
	c.SetInt(z, x, c.mode)
	return z
}

// NewString returns a new Float set to the value of s in base 10 (or the base
// given by its prefix), rounded to c's default precision and rounding mode.
// The entire string must be valid for success.
func (c *Context) NewString(s string) (*Float, bool) {
	z := c.New()
	if _, err := c.SetString(z, s, c.mode); err != nil {
		return nil, false
	}
	return z, true
}

// prepare sets z's precision to c's default if z has none.
func (c *Context) prepare(z *Float) {
	if z.prec == 0 {
		z.prec = c.prec
	}
}
