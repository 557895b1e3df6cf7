// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package printf

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/db47h/mpfr"
	"github.com/pkg/errors"
)

// Errors returned for bad argument lists. They are wrapped with the
// offending directive.
var (
	ErrMissingArg = errors.New("printf: missing argument")
	ErrArgType    = errors.New("printf: wrong argument type")
	ErrExtraArg   = errors.New("printf: extra arguments")
)

// state holds the argument list and the output of a formatting run.
type state struct {
	args []interface{}
	next int
	buf  []byte
}

func (s *state) arg(d *directive) (interface{}, error) {
	if s.next >= len(s.args) {
		return nil, errors.Wrapf(ErrMissingArg, "directive %q", d.text)
	}
	a := s.args[s.next]
	s.next++
	return a, nil
}

func badArg(d *directive, a interface{}) error {
	return errors.Wrapf(ErrArgType, "directive %q got %T", d.text, a)
}

// intArg returns a '*' width or precision argument.
func (s *state) intArg(d *directive) (int, error) {
	a, err := s.arg(d)
	if err != nil {
		return 0, err
	}
	i, ok := a.(int)
	if !ok {
		return 0, badArg(d, a)
	}
	return i, nil
}

// format runs the directives ds. It stops at the first error.
func (s *state) format(ds []directive) error {
	for i := range ds {
		d := &ds[i]
		switch d.class {
		case literal:
			s.buf = append(s.buf, d.text...)
			continue
		case percent:
			s.buf = append(s.buf, '%')
			continue
		}
		if err := s.directive(d); err != nil {
			return err
		}
	}
	if s.next < len(s.args) {
		return errors.Wrapf(ErrExtraArg, "%d unused", len(s.args)-s.next)
	}
	return nil
}

func (s *state) directive(d *directive) error {
	dd := *d
	width, prec := d.width, d.prec
	var err error
	if width == fromArg {
		if width, err = s.intArg(d); err != nil {
			return err
		}
		if width < 0 {
			dd.flags |= flagMinus
			width = -width
		}
	}
	if prec == fromArg {
		if prec, err = s.intArg(d); err != nil {
			return err
		}
		if prec < 0 {
			prec = noValue
		}
	}
	rnd := d.rnd
	if d.rndArg {
		a, err := s.arg(d)
		if err != nil {
			return err
		}
		r, ok := a.(mpfr.RoundingMode)
		if !ok {
			return badArg(d, a)
		}
		rnd = r
	}
	a, err := s.arg(d)
	if err != nil {
		return err
	}

	var f field
	switch d.class {
	case integer:
		if r, ok := a.(*big.Rat); ok && d.typ == 'Q' {
			f = formatRat(&dd, prec, r)
			break
		}
		x, err := intValue(&dd, a)
		if err != nil {
			return err
		}
		f = formatInt(&dd, prec, x)
	case float:
		x, err := floatValue(&dd, a)
		if err != nil {
			return err
		}
		f = formatFloat(&dd, prec, x, rnd)
	case char:
		r, err := charValue(&dd, a)
		if err != nil {
			return err
		}
		f = field{body: string(r)}
	case str:
		v, ok := stringValue(a)
		if !ok {
			return badArg(d, a)
		}
		f = formatString(prec, v)
	case pointer:
		p := fmt.Sprintf("%p", a)
		if strings.HasPrefix(p, "%!") {
			return badArg(d, a)
		}
		f = field{body: p}
	case count:
		return setCount(&dd, a, len(s.buf))
	}
	s.buf = pad(s.buf, &dd, width, f)
	return nil
}

// intValue converts an integer argument according to the type modifier of
// d. Negative machine integers are reinterpreted as unsigned for the
// unsigned conversions, as in C.
func intValue(d *directive, a interface{}) (*big.Int, error) {
	unsigned := d.verb != 'd' && d.verb != 'i'
	switch d.typ {
	case 'Z':
		if x, ok := a.(*big.Int); ok {
			return x, nil
		}
		return nil, badArg(d, a)
	case 'P':
		switch p := a.(type) {
		case uint:
			return new(big.Int).SetUint64(uint64(p)), nil
		case int:
			return big.NewInt(int64(p)), nil
		}
		return nil, badArg(d, a)
	case 0:
	default:
		return nil, badArg(d, a)
	}
	var (
		i     int64
		u     uint64
		isInt = true
	)
	switch v := a.(type) {
	case int:
		i, u = int64(v), uint64(uint(v))
	case int8:
		i, u = int64(v), uint64(uint8(v))
	case int16:
		i, u = int64(v), uint64(uint16(v))
	case int32:
		i, u = int64(v), uint64(uint32(v))
	case int64:
		i, u = v, uint64(v)
	case uint:
		u, isInt = uint64(v), false
	case uint8:
		u, isInt = uint64(v), false
	case uint16:
		u, isInt = uint64(v), false
	case uint32:
		u, isInt = uint64(v), false
	case uint64:
		u, isInt = v, false
	case uintptr:
		u, isInt = uint64(v), false
	default:
		return nil, badArg(d, a)
	}
	if isInt && !unsigned {
		return big.NewInt(i), nil
	}
	return new(big.Int).SetUint64(u), nil
}

// floatValue converts a floating-point argument to an exact *mpfr.Float.
func floatValue(d *directive, a interface{}) (*mpfr.Float, error) {
	c := mpfr.NewContext()
	switch d.typ {
	case 'R':
		if x, ok := a.(*mpfr.Float); ok {
			return x, nil
		}
	case 'F':
		if x, ok := a.(*big.Float); ok {
			prec := x.Prec()
			if prec == 0 {
				prec = mpfr.DefaultPrec
			}
			z := mpfr.NewFloat(prec)
			c.SetBigFloat(z, x, mpfr.ToNearestEven)
			return z, nil
		}
	case 0:
		switch x := a.(type) {
		case float64:
			z := mpfr.NewFloat(53)
			c.SetFloat64(z, x, mpfr.ToNearestEven)
			return z, nil
		case float32:
			z := mpfr.NewFloat(24)
			c.SetFloat32(z, x, mpfr.ToNearestEven)
			return z, nil
		}
	}
	return nil, badArg(d, a)
}

func charValue(d *directive, a interface{}) (rune, error) {
	switch v := a.(type) {
	case rune:
		return v, nil
	case byte:
		return rune(v), nil
	case int:
		return rune(v), nil
	}
	return 0, badArg(d, a)
}

func stringValue(a interface{}) (string, bool) {
	switch v := a.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	case fmt.Stringer:
		return v.String(), true
	}
	return "", false
}

// setCount stores the number of bytes written so far in the argument of a
// %n directive.
func setCount(d *directive, a interface{}, n int) error {
	switch p := a.(type) {
	case *int:
		if d.typ == 0 {
			*p = n
			return nil
		}
	case *int64:
		if d.typ == 0 {
			*p = int64(n)
			return nil
		}
	case *int32:
		if d.typ == 0 {
			*p = int32(n)
			return nil
		}
	case *big.Int:
		if d.typ == 'Z' {
			p.SetInt64(int64(n))
			return nil
		}
	case *big.Rat:
		if d.typ == 'Q' {
			p.SetInt64(int64(n))
			return nil
		}
	case *big.Float:
		if d.typ == 'F' {
			p.SetInt64(int64(n))
			return nil
		}
	case *mpfr.Float:
		if d.typ == 'R' {
			mpfr.NewContext().SetInt64(p, int64(n), mpfr.ToNearestEven)
			return nil
		}
	}
	return badArg(d, a)
}

func sprintf(format string, args []interface{}) ([]byte, error) {
	ds, err := parse(format)
	if err != nil {
		return nil, err
	}
	s := state{args: args}
	err = s.format(ds)
	return s.buf, err
}

// Fprintf formats according to a format specifier and writes to w. It
// returns the number of bytes written and any error encountered. Nothing is
// written if the format or the arguments are invalid.
//
// The format is made of C-style conversion specifications
//
//	% [flags] [width] [. precision] [length] [type [rounding]] conversion
//
// where flags are any of "-+ #0", width and precision are decimal numbers
// or '*' to take an int from the argument list, length is one of the C
// length modifiers "hh h l ll j z t L q" (accepted and ignored) and the
// conversion is one of:
//
//	d i	signed integer
//	o u x X	unsigned integer in base 8, 10 or 16
//	e E	d.ddde±dd
//	f F	ddd.ddd
//	g G	%e or %f, trailing zeros removed
//	a A	hexadecimal 0x1.hhhp±d
//	b	binary 1.bbbp±d
//	c	character
//	s	string, []byte or fmt.Stringer
//	p	pointer
//	n	store the number of bytes written so far
//	%	literal %
//
// The type modifiers select the argument types:
//
//	Z	*big.Int for integer conversions and %n
//	Q	*big.Rat for integer conversions and %n, printed as num/den
//	F	*big.Float for float conversions and %n
//	P	a precision (uint) for integer conversions
//	R	*mpfr.Float for float conversions and %n
//
// Without type modifier, integer conversions take any Go integer and float
// conversions take a float64 or float32. The R type may be followed by a
// rounding mode character, N, Z, U, D, Y or F, or by '*' to take an
// mpfr.RoundingMode argument preceding the value; the default is
// mpfr.ToNearestEven. The e conversion of an *mpfr.Float without precision
// prints enough digits to read the value back.
func Fprintf(w io.Writer, format string, args ...interface{}) (int, error) {
	buf, err := sprintf(format, args)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(buf)
	return n, errors.Wrap(err, "printf")
}

// Printf is like Fprintf with os.Stdout as writer.
func Printf(format string, args ...interface{}) (int, error) {
	return Fprintf(os.Stdout, format, args...)
}

// Sprintf formats according to a format specifier and returns the resulting
// string and its length in bytes.
func Sprintf(format string, args ...interface{}) (string, int, error) {
	buf, err := sprintf(format, args)
	if err != nil {
		return "", 0, err
	}
	return string(buf), len(buf), nil
}

// Snprintf is like Sprintf but writes at most len(buf) bytes of the result
// to buf. It returns the length of the complete result, which may exceed
// len(buf).
func Snprintf(buf []byte, format string, args ...interface{}) (int, error) {
	out, err := sprintf(format, args)
	if err != nil {
		return 0, err
	}
	copy(buf, out)
	return len(out), nil
}
