// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rpn implements a reverse Polish notation calculator over Floats.
package rpn

import (
	"sort"
	"strings"

	"github.com/db47h/mpfr"
	"github.com/db47h/mpfr/math"
	"github.com/gammazero/deque"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Evaluation errors.
var (
	ErrStackUnderflow = errors.New("rpn: stack underflow")
	ErrUnknownToken   = errors.New("rpn: unknown token")
	ErrEmpty          = errors.New("rpn: empty stack")
)

type (
	nullary = func(c *mpfr.Context, z *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy
	unary   = func(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy
	binary  = func(c *mpfr.Context, z, x, y *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy
	ternary = func(c *mpfr.Context, z, x, y, u *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy
)

var constants = map[string]nullary{
	"pi":      math.Pi,
	"ln2":     math.Log2Const,
	"euler":   math.Euler,
	"catalan": math.Catalan,
}

var unaries = map[string]unary{
	"neg":     func(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy { return c.Neg(z, x, rnd) },
	"abs":     func(c *mpfr.Context, z, x *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy { return c.Abs(z, x, rnd) },
	"sqrt":    math.Sqrt,
	"cbrt":    math.Cbrt,
	"rsqrt":   math.RecSqrt,
	"exp":     math.Exp,
	"exp2":    math.Exp2,
	"exp10":   math.Exp10,
	"expm1":   math.Expm1,
	"log":     math.Log,
	"log2":    math.Log2,
	"log10":   math.Log10,
	"log1p":   math.Log1p,
	"sin":     math.Sin,
	"cos":     math.Cos,
	"tan":     math.Tan,
	"sec":     math.Sec,
	"csc":     math.Csc,
	"cot":     math.Cot,
	"asin":    math.Asin,
	"acos":    math.Acos,
	"atan":    math.Atan,
	"sinh":    math.Sinh,
	"cosh":    math.Cosh,
	"tanh":    math.Tanh,
	"asinh":   math.Asinh,
	"acosh":   math.Acosh,
	"atanh":   math.Atanh,
	"gamma":   math.Gamma,
	"lngamma": math.LnGamma,
	"erf":     math.Erf,
	"erfc":    math.Erfc,
	"zeta":    math.Zeta,
	"ai":      math.Ai,
	"j0":      math.J0,
	"j1":      math.J1,
}

var binaries = map[string]binary{
	"+":     (*mpfr.Context).Add,
	"-":     (*mpfr.Context).Sub,
	"*":     (*mpfr.Context).Mul,
	"/":     (*mpfr.Context).Quo,
	"min":   (*mpfr.Context).Min,
	"max":   (*mpfr.Context).Max,
	"fmod":  (*mpfr.Context).Fmod,
	"^":     math.Pow,
	"hypot": math.Hypot,
	"atan2": math.Atan2,
	"agm":   math.AGM,
}

var ternaries = map[string]ternary{
	"fma": math.FMA,
}

// stack manipulation words
var words = map[string]func(c *Calc) error{
	"dup": func(c *Calc) error {
		x, err := c.peek()
		if err != nil {
			return err
		}
		z := mpfr.NewFloat(x.Prec())
		c.ctx.Set(z, x, c.rnd)
		c.stack.PushBack(z)
		return nil
	},
	"drop": func(c *Calc) error {
		_, err := c.pop(1)
		return err
	},
	"swap": func(c *Calc) error {
		xs, err := c.pop(2)
		if err != nil {
			return err
		}
		c.stack.PushBack(xs[1])
		c.stack.PushBack(xs[0])
		return nil
	},
	"clear": func(c *Calc) error {
		c.stack.Clear()
		return nil
	},
}

// Words returns the sorted list of operators and words known to a Calc.
func Words() []string {
	var ws []string
	for k := range constants {
		ws = append(ws, k)
	}
	for k := range unaries {
		ws = append(ws, k)
	}
	for k := range binaries {
		ws = append(ws, k)
	}
	for k := range ternaries {
		ws = append(ws, k)
	}
	for k := range words {
		ws = append(ws, k)
	}
	sort.Strings(ws)
	return ws
}

// A Calc is an RPN calculator. Numbers are pushed on a stack, operators pop
// their arguments and push their result, rounded to the calculator's
// precision with its rounding mode.
type Calc struct {
	ctx   *mpfr.Context
	rnd   mpfr.RoundingMode
	prec  uint
	stack deque.Deque[*mpfr.Float]
	log   *zap.Logger
}

// New returns a new Calc computing with c's precision and rounding mode.
func New(c *mpfr.Context) *Calc {
	return &Calc{
		ctx:  c,
		rnd:  c.Mode(),
		prec: c.Prec(),
		log:  c.Logger(),
	}
}

// Len returns the stack depth.
func (c *Calc) Len() int { return c.stack.Len() }

// Stack returns the stack contents, bottom first.
func (c *Calc) Stack() []*mpfr.Float {
	xs := make([]*mpfr.Float, c.stack.Len())
	for i := range xs {
		xs[i] = c.stack.At(i)
	}
	return xs
}

// Top returns the value on top of the stack.
func (c *Calc) Top() (*mpfr.Float, error) {
	return c.peek()
}

func (c *Calc) peek() (*mpfr.Float, error) {
	if c.stack.Len() == 0 {
		return nil, ErrEmpty
	}
	return c.stack.Back(), nil
}

// pop removes n values and returns them, bottom first.
func (c *Calc) pop(n int) ([]*mpfr.Float, error) {
	if c.stack.Len() < n {
		return nil, errors.Wrapf(ErrStackUnderflow, "need %d operands, have %d", n, c.stack.Len())
	}
	xs := make([]*mpfr.Float, n)
	for i := n - 1; i >= 0; i-- {
		xs[i] = c.stack.PopBack()
	}
	return xs, nil
}

// Eval evaluates the space separated tokens of expr.
func (c *Calc) Eval(expr string) error {
	return c.EvalTokens(strings.Fields(expr))
}

// EvalTokens evaluates tokens in order. It stops at the first error, leaving
// the stack as it was before the failing token.
func (c *Calc) EvalTokens(tokens []string) error {
	for _, tok := range tokens {
		if err := c.token(tok); err != nil {
			return errors.Wrapf(err, "token %q", tok)
		}
	}
	return nil
}

func (c *Calc) token(tok string) error {
	if w, ok := words[tok]; ok {
		return w(c)
	}
	z := mpfr.NewFloat(c.prec)
	var acc mpfr.Accuracy
	if f, ok := constants[tok]; ok {
		acc = f(c.ctx, z, c.rnd)
	} else if f, ok := unaries[tok]; ok {
		xs, err := c.pop(1)
		if err != nil {
			return err
		}
		acc = f(c.ctx, z, xs[0], c.rnd)
	} else if f, ok := binaries[tok]; ok {
		xs, err := c.pop(2)
		if err != nil {
			return err
		}
		acc = f(c.ctx, z, xs[0], xs[1], c.rnd)
	} else if f, ok := ternaries[tok]; ok {
		xs, err := c.pop(3)
		if err != nil {
			return err
		}
		acc = f(c.ctx, z, xs[0], xs[1], xs[2], c.rnd)
	} else {
		var err error
		if acc, err = c.ctx.SetString(z, tok, c.rnd); err != nil {
			return errors.Wrap(ErrUnknownToken, err.Error())
		}
	}
	c.log.Debug("rpn", zap.String("token", tok), zap.Stringer("result", z), zap.Stringer("acc", acc))
	c.stack.PushBack(z)
	return nil
}
