// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfr

import "strings"

// Flags is a set of sticky exception flags. Once raised by an operation, a
// flag stays set until explicitly cleared.
type Flags uint32

// The flag values match the MPFR flag bits.
const (
	Underflow Flags = 1 << iota // a non-zero result was too small for the exponent range
	Overflow                    // a result was too large for the exponent range
	NaNFlag                     // an invalid operation produced a NaN
	Inexact                     // a result was rounded
	Erange                      // out of range integer conversion or comparison with NaN
	DivByZero                   // an exact infinite result was produced from finite operands

	AllFlags = Underflow | Overflow | NaNFlag | Inexact | Erange | DivByZero
)

var flagNames = [...]string{
	"underflow",
	"overflow",
	"nan",
	"inexact",
	"erange",
	"divby0",
}

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var b strings.Builder
	for i, n := range flagNames {
		if f&(1<<uint(i)) != 0 {
			if b.Len() > 0 {
				b.WriteByte('|')
			}
			b.WriteString(n)
		}
	}
	return b.String()
}

// Restore returns f with the flags in mask set to their value in saved. Flags
// not in mask keep their value in f.
func (f Flags) Restore(saved, mask Flags) Flags {
	return f&^mask | saved&mask
}
