// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package command implements the mpcalc command line.
package command

import (
	"strings"

	"github.com/db47h/mpfr"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Settings are the options shared by all sub-commands.
type Settings struct {
	Prec    uint
	Rnd     mpfr.RoundingMode
	Emin    int64
	Emax    int64
	Verbose bool
}

// Context returns a new mpfr.Context configured from s and logging to log.
func (s *Settings) Context(log *zap.Logger) (*mpfr.Context, error) {
	c := mpfr.NewContext().SetPrec(s.Prec).SetMode(s.Rnd).SetLogger(log)
	if err := c.SetEmin(s.Emin); err != nil {
		return nil, err
	}
	if err := c.SetEmax(s.Emax); err != nil {
		return nil, err
	}
	return c, nil
}

// app holds the state of a command invocation.
type app struct {
	v   *viper.Viper
	set Settings
	log *zap.Logger
	ctx *mpfr.Context
}

// New returns the root command with all sub-commands attached.
func New() *cobra.Command {
	a := &app{v: viper.New()}
	root := &cobra.Command{
		Use:   "mpcalc",
		Short: "mpcalc evaluates expressions with correctly rounded multiple precision floats.",
		Long: "`mpcalc` is a reverse Polish notation calculator over arbitrary precision binary floats.\n\n" +
			"Options can also be set with MPCALC_* environment variables or a YAML configuration file.",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	fs := root.PersistentFlags()
	fs.Uint("prec", mpfr.DefaultPrec, "Precision in bits.")
	fs.String("rnd", "N", "Rounding mode: N, Z, U, D, A or F.")
	fs.Int64("emin", mpfr.DefaultEmin, "Smallest exponent.")
	fs.Int64("emax", mpfr.DefaultEmax, "Largest exponent.")
	fs.BoolP("verbose", "v", false, "Log computations to stderr.")
	fs.String("config", "", "Path to a YAML configuration file.")

	root.AddCommand(a.evalCmd(), a.constCmd(), a.digitsCmd(), a.flagsCmd())
	return root
}

// bind makes viper read the flags of fs, the environment and the
// configuration file.
func (a *app) bind(fs *pflag.FlagSet) error {
	v := a.v
	if err := v.BindPFlags(fs); err != nil {
		return errors.Wrap(err, "binding flags")
	}
	v.SetEnvPrefix("MPCALC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if cfg := v.GetString("config"); cfg != "" {
		v.SetConfigFile(cfg)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config %s", cfg)
		}
	}
	return nil
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := a.bind(cmd.Flags()); err != nil {
		return err
	}
	v := a.v
	rnd, err := mpfr.ParseRoundingMode(v.GetString("rnd"))
	if err != nil {
		return err
	}
	prec := v.GetUint("prec")
	if prec < mpfr.MinPrec || prec > mpfr.MaxPrec {
		return errors.Wrapf(mpfr.ErrPrec, "precision %d", prec)
	}
	a.set = Settings{
		Prec:    prec,
		Rnd:     rnd,
		Emin:    v.GetInt64("emin"),
		Emax:    v.GetInt64("emax"),
		Verbose: v.GetBool("verbose"),
	}
	if a.set.Verbose {
		a.log, err = zap.NewDevelopment()
	} else {
		a.log, err = zap.NewProduction(zap.IncreaseLevel(zap.WarnLevel))
	}
	if err != nil {
		return errors.Wrap(err, "creating logger")
	}
	a.ctx, err = a.set.Context(a.log)
	if err != nil {
		return err
	}
	a.log.Debug("settings",
		zap.Uint("prec", a.set.Prec),
		zap.Stringer("rnd", a.set.Rnd),
		zap.Int64("emin", a.set.Emin),
		zap.Int64("emax", a.set.Emax))
	return nil
}
