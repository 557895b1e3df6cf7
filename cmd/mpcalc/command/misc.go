// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/db47h/mpfr"
	"github.com/db47h/mpfr/math"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var constants = map[string]func(c *mpfr.Context, z *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy{
	"pi":      math.Pi,
	"log2":    math.Log2Const,
	"euler":   math.Euler,
	"catalan": math.Catalan,
}

func constantNames() string {
	names := make([]string, 0, len(constants))
	for k := range constants {
		names = append(names, k)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func (a *app) constCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "const <name>",
		Short:     "Print a mathematical constant: " + constantNames() + ".",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"pi", "log2", "euler", "catalan"},
		RunE: func(cmd *cobra.Command, args []string) error {
			f, ok := constants[args[0]]
			if !ok {
				return errors.Errorf("unknown constant %q, expected one of %s", args[0], constantNames())
			}
			z := a.ctx.New()
			acc := f(a.ctx, z, a.set.Rnd)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%v)\n", z.Text('g', mpfr.DigitCount(z.Prec(), 10)), acc)
			return nil
		},
	}
}

func (a *app) digitsCmd() *cobra.Command {
	var (
		base int
		n    int
	)
	cmd := &cobra.Command{
		Use:   "digits <number>",
		Short: "Print the digits and exponent of a number in a base.",
		Long: "Print the digits d and exponent e of a number x such that x = 0.d × base**e,\n" +
			"rounded to n digits. With n = 0, enough digits to read the value back are printed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if base < 2 || base > mpfr.MaxBase {
				return errors.Errorf("base %d out of range [2, %d]", base, mpfr.MaxBase)
			}
			x := a.ctx.New()
			if _, err := a.ctx.SetString(x, args[0], a.set.Rnd); err != nil {
				return err
			}
			ds, e, acc := x.Digits(base, n, a.set.Rnd)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d (%v)\n", ds, e, acc)
			return nil
		},
	}
	cmd.Flags().IntVarP(&base, "base", "b", 10, "Output base.")
	cmd.Flags().IntVarP(&n, "count", "n", 0, "Number of digits.")
	return cmd
}

func (a *app) flagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flags <token>...",
		Short: "Evaluate an expression and print only the raised exception flags.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.eval(args); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.ctx.Flags())
			return nil
		},
	}
}
