// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/db47h/mpfr"
	"github.com/db47h/mpfr/cmd/mpcalc/internal/rpn"
	"github.com/db47h/mpfr/printf"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) evalCmd() *cobra.Command {
	var (
		format    string
		showFlags bool
		stack     bool
	)
	cmd := &cobra.Command{
		Use:   "eval <token>...",
		Short: "Evaluate a reverse Polish notation expression.",
		Long: "Evaluate a reverse Polish notation expression and print the value on top of the stack.\n\n" +
			"Operators: " + strings.Join(rpn.Words(), " "),
		Example: "mpcalc eval --prec 200 2 sqrt\n" +
			"mpcalc eval --format '%.30RDf' 1 3 /",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			calc, err := a.eval(args)
			if err != nil {
				return err
			}
			xs := calc.Stack()
			if !stack {
				xs = xs[len(xs)-1:]
			}
			out := cmd.OutOrStdout()
			for _, x := range xs {
				if err := a.print(out, format, x); err != nil {
					return err
				}
			}
			if showFlags {
				fmt.Fprintf(out, "flags: %v\n", a.ctx.Flags())
			}
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&format, "format", "", "printf format of the result, for example %.20Re (default shortest round-trip form)")
	fs.BoolVar(&showFlags, "flags", false, "Print the raised exception flags after the result.")
	fs.BoolVar(&stack, "stack", false, "Print the whole stack, bottom first.")
	return cmd
}

// eval evaluates tokens with a's context.
func (a *app) eval(tokens []string) (*rpn.Calc, error) {
	calc := rpn.New(a.ctx)
	if err := calc.EvalTokens(tokens); err != nil {
		return nil, err
	}
	if calc.Len() == 0 {
		return nil, rpn.ErrEmpty
	}
	a.log.Debug("eval", zap.Int("depth", calc.Len()), zap.Stringer("flags", a.ctx.Flags()))
	return calc, nil
}

func (a *app) print(w io.Writer, format string, x *mpfr.Float) error {
	if format == "" {
		_, err := fmt.Fprintln(w, x.Text('g', -1))
		return err
	}
	_, err := printf.Fprintf(w, format+"\n", x)
	return err
}
