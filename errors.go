// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfr

import (
	"github.com/db47h/mpfr/internal/checked"
	"github.com/pkg/errors"
)

// Errors reported by operations that cannot satisfy their contract at all.
// Numerically special results (NaN, ±Inf, inexact results) are never errors:
// they are reported through the returned Accuracy and the Context flags.
var (
	// ErrOverflow is returned by checked conversions when a value does not
	// fit the destination type.
	ErrOverflow = checked.ErrOverflow
	// ErrMalformed is returned when decoding malformed binary data.
	ErrMalformed = errors.New("mpfr: malformed data")
	// ErrBorrowed is raised when attempting to change the precision of a
	// Float built over caller-provided storage.
	ErrBorrowed = errors.New("mpfr: operation not permitted on borrowed storage")
	// ErrPrec is raised for precisions outside [MinPrec, MaxPrec].
	ErrPrec = errors.New("mpfr: invalid precision")
	// ErrExpRange is returned for exponent bounds outside [MinExp, MaxExp].
	ErrExpRange = errors.New("mpfr: exponent out of range")
	// ErrNotFinite is returned when converting NaN or ±Inf to a type that
	// cannot represent it.
	ErrNotFinite = errors.New("mpfr: value is not finite")
)

func validPrec(prec uint) uint32 {
	if prec < MinPrec || prec > MaxPrec {
		panic(errors.Wrapf(ErrPrec, "precision %d", prec))
	}
	return uint32(prec)
}
