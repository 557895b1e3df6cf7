package context_test

import (
	"fmt"

	"github.com/db47h/mpfr"
	"github.com/db47h/mpfr/context"
	"github.com/db47h/mpfr/math"
)

// geometric returns the sum 1 + r + r² + ... + r**(n-1) computed with the
// closed form (1 - r**n) / (1 - r). r = 1 yields 0/0, which the trapping
// context reports instead of returning a NaN.
func geometric(ctx *context.Context, r *mpfr.Float, n int64) (*mpfr.Float, error) {
	one := ctx.NewInt64(1)
	p := ctx.New()
	ctx.Apply("PowInt", func(c *mpfr.Context, rnd mpfr.RoundingMode) mpfr.Accuracy {
		return math.PowInt(c, p, r, n, rnd)
	})
	num := ctx.Sub(ctx.New(), one, p)
	den := ctx.Sub(ctx.New(), one, r)
	s := ctx.Quo(ctx.New(), num, den)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("geometric sum of %g: %w", r, err)
	}
	return s, nil
}

// Example demonstrates trapping Contexts.
func Example() {
	traps := mpfr.NaNFlag | mpfr.DivByZero | mpfr.Overflow
	ctx := context.New(nil, traps)

	for _, r := range []float64{0.5, 1} {
		s, err := geometric(ctx, ctx.NewFloat64(r), 10)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Printf("%g\n", s)
	}

	// a narrow exponent range makes 2**2000 overflow
	c := mpfr.NewContext()
	if err := c.SetEmax(1000); err != nil {
		panic(err)
	}
	ctx = context.New(c, traps)
	if _, err := geometric(ctx, ctx.NewInt64(2), 2000); err != nil {
		fmt.Println(err)
	}
	// Output:
	// 1.998046875
	// geometric sum of 1: mpfr: Quo raised nan
	// geometric sum of 2: mpfr: PowInt raised overflow
}
