// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package checked implements bounds-checked conversions and arithmetic on
// machine integers of any width.
package checked

import (
	"math"
	"math/bits"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// ErrOverflow is returned when a value does not fit the destination type.
var ErrOverflow = errors.New("mpfr: value out of range")

// Signed reports whether T is a signed integer type.
func Signed[T constraints.Integer]() bool {
	var t T
	t--
	return t < 0
}

// Bits returns the width of T in bits.
func Bits[T constraints.Integer]() uint {
	var t T
	t = ^t
	if Signed[T]() {
		// t == -1
		n := uint(1)
		for x := T(1); x > 0; x <<= 1 {
			n++
		}
		return n
	}
	n := uint(0)
	for t != 0 {
		t >>= 1
		n++
	}
	return n
}

// Convert converts v to type To, returning a wrapped ErrOverflow if v does
// not fit.
func Convert[To, From constraints.Integer](v From) (To, error) {
	r := To(v)
	if From(r) != v || (v < 0) != (r < 0) {
		return 0, errors.Wrapf(ErrOverflow, "%d does not fit in %d bits", v, Bits[To]())
	}
	return r, nil
}

// FromUint64 converts v to type To, returning a wrapped ErrOverflow if v
// does not fit.
func FromUint64[To constraints.Integer](v uint64) (To, error) {
	return Convert[To](v)
}

// FromInt64 converts v to type To, returning a wrapped ErrOverflow if v does
// not fit.
func FromInt64[To constraints.Integer](v int64) (To, error) {
	return Convert[To](v)
}

// Add64 returns x + y or ErrOverflow.
func Add64(x, y int64) (int64, error) {
	s := x + y
	if (s > x) != (y > 0) {
		return 0, errors.Wrapf(ErrOverflow, "%d + %d", x, y)
	}
	return s, nil
}

// Sub64 returns x - y or ErrOverflow.
func Sub64(x, y int64) (int64, error) {
	d := x - y
	if (d < x) != (y > 0) {
		return 0, errors.Wrapf(ErrOverflow, "%d - %d", x, y)
	}
	return d, nil
}

// Mul64 returns x × y or ErrOverflow.
func Mul64(x, y int64) (int64, error) {
	if x == 0 || y == 0 {
		return 0, nil
	}
	neg := (x < 0) != (y < 0)
	hi, lo := bits.Mul64(abs64(x), abs64(y))
	lim := uint64(math.MaxInt64)
	if neg {
		lim++
	}
	if hi != 0 || lo > lim {
		return 0, errors.Wrapf(ErrOverflow, "%d × %d", x, y)
	}
	if neg {
		return int64(-lo), nil
	}
	return int64(lo), nil
}

func abs64(x int64) uint64 {
	if x < 0 {
		return uint64(-x)
	}
	return uint64(x)
}
