// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfr

import "github.com/pkg/errors"

// CustomSize returns the number of Words needed to hold the significand of
// a Float of precision prec. It panics if prec is outside [MinPrec, MaxPrec].
func CustomSize(prec uint) int {
	return nwords(validPrec(prec))
}

// NewCustom returns a Float of precision prec whose significand is stored in
// the caller-provided buf, which must hold at least CustomSize(prec) Words.
// For a RegularKind value, buf holds the significand least significant Word
// first, with the most significant bit of buf[CustomSize(prec)-1] set and the
// bits below prec clear, and the value is ±0.buf × 2**exp; exp and buf are
// ignored for the other kinds.
//
// The returned Float borrows buf: operations storing into it write the
// result into buf and never reallocate, SetPrec and PrecRound with a
// different precision panic with ErrBorrowed, and buf must not be used for
// anything else while the Float is in use. Results still honor the exponent
// range of the Context used.
func NewCustom(buf []Word, kind Kind, neg bool, exp int64, prec uint) (*Float, error) {
	if prec < MinPrec || prec > MaxPrec {
		return nil, errors.Wrapf(ErrPrec, "precision %d", prec)
	}
	n := nwords(uint32(prec))
	if len(buf) < n {
		return nil, errors.Errorf("mpfr: significand buffer too small: %d < %d words", len(buf), n)
	}
	z := &Float{prec: uint32(prec), neg: neg, borrowed: true, mant: nat(buf[:n:n])}
	switch kind {
	case NaNKind:
		z.form = nan
	case InfKind:
		z.form = inf
	case ZeroKind:
		z.form = zero
	case RegularKind:
		if exp < MinExp || exp > MaxExp {
			return nil, errors.Wrapf(ErrExpRange, "exponent %d", exp)
		}
		if buf[n-1]&(1<<(_W-1)) == 0 {
			return nil, errors.Wrap(ErrMalformed, "significand is not normalized")
		}
		if r := uint(n)*_W - uint(prec); r > 0 && buf[0]&(1<<r-1) != 0 {
			return nil, errors.Wrap(ErrMalformed, "significand bits set past precision")
		}
		z.form = finite
		z.exp = exp
	default:
		return nil, errors.Errorf("mpfr: invalid kind %v", kind)
	}
	return z, nil
}

// Borrowed reports whether x's significand is stored in a caller-provided
// buffer. See NewCustom.
func (x *Float) Borrowed() bool {
	return x.borrowed
}
