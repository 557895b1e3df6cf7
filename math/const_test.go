// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/db47h/mpfr"
	"github.com/db47h/mpfr/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type constFunc func(c *mpfr.Context, z *mpfr.Float, rnd mpfr.RoundingMode) mpfr.Accuracy

var constants = []struct {
	name   string
	fn     constFunc
	digits string
	prec   uint // max precision the digits allow checking
}{
	{"Pi", math.Pi,
		"3.1415926535897932384626433832795028841971693993751058209749445923078164062862089986280348253421170679",
		300},
	{"Log2Const", math.Log2Const,
		"0.69314718055994530941723212145817656807550013436025525412068000949339362196969471560586332699641868754",
		300},
	{"Euler", math.Euler,
		"0.5772156649015328606065120900824024310421593359399235988057672348848677267776646709369470632917467495",
		300},
	{"Catalan", math.Catalan,
		"0.9159655941772190150546035149323841107741493742816721342664981196217630197762547694793565129261151062",
		300},
}

func TestConstants(t *testing.T) {
	c := mpfr.NewContext()
	for _, k := range constants {
		t.Run(k.name, func(t *testing.T) {
			for prec := uint(1); prec <= k.prec; prec += 7 {
				for _, rnd := range modes {
					z := mpfr.NewFloat(prec)
					acc := k.fn(c, z, rnd)
					want := mpfr.NewFloat(prec)
					wacc, err := c.SetString(want, k.digits, rnd)
					require.NoError(t, err)
					assert.Equal(t, text(want), text(z), "prec %d %s", prec, rnd)
					assert.Equal(t, wacc, acc, "prec %d %s", prec, rnd)
				}
			}
		})
	}
}

// TestConstantsConcurrent fills the constant caches from several goroutines
// at random precisions, each with its own Context.
func TestConstantsConcurrent(t *testing.T) {
	seed := rand.Int63()
	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < 8; i++ {
		rng := rand.New(rand.NewSource(seed + int64(i)))
		g.Go(func() error {
			c := mpfr.NewContext()
			for j := 0; j < 20; j++ {
				prec := uint(rng.Intn(2000) + 1)
				a, b := mpfr.NewFloat(prec), mpfr.NewFloat(prec+100)
				for _, k := range constants {
					k.fn(c, a, mpfr.ToNearestEven)
					k.fn(c, b, mpfr.ToNearestEven)
					r := mpfr.NewFloat(prec)
					c.Set(r, b, mpfr.ToNearestEven)
					if !r.Equal(a) {
						t.Errorf("SEED %x, %s at %d bits: %s != %s", seed, k.name, prec, a.Text('p', 0), r.Text('p', 0))
					}
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func BenchmarkPi(b *testing.B) {
	for _, prec := range []uint{64, 1000, 10000} {
		b.Run(fmt.Sprint(prec), func(b *testing.B) {
			c := mpfr.NewContext()
			z := mpfr.NewFloat(prec)
			for i := 0; i < b.N; i++ {
				math.Pi(c, z, mpfr.ToNearestEven)
			}
		})
	}
}
