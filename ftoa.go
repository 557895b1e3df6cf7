// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements Float-to-string conversion functions.

package mpfr

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// itoa returns the digits of the non-negative x in the given base. For bases
// above 36, upper-case letters are the digits 10 to 35 and lower-case letters
// the digits 36 to 61.
func itoa(x *big.Int, base int) string {
	s := x.Text(base)
	if base <= maxBaseSmall {
		return s
	}
	// math/big uses the opposite case convention
	b := []byte(s)
	for i, ch := range b {
		switch {
		case 'a' <= ch && ch <= 'z':
			b[i] = ch - 'a' + 'A'
		case 'A' <= ch && ch <= 'Z':
			b[i] = ch - 'A' + 'a'
		}
	}
	return string(b)
}

// DigitCount returns the number of base digits needed to recover a value of
// precision prec by rounding to nearest: 1 + ceil(prec × log(2)/log(base)).
func DigitCount(prec uint, base int) int {
	if base < 2 || base > MaxBase {
		panic(fmt.Sprintf("invalid number base %d", base))
	}
	if base&(base-1) == 0 {
		lb := 0
		for t := base; t > 1; t >>= 1 {
			lb++
		}
		return 1 + (int(prec)+lb-1)/lb
	}
	return 1 + int(math.Ceil(float64(prec)*math.Ln2/math.Log(float64(base))))
}

// Digits returns the n most significant digits of x in the given base,
// correctly rounded with rnd, and an exponent e such that
//
//	x ≈ ±0.d1d2...dn × base**e
//
// with d1 != 0, along with the ternary value of the digit rounding. If n is
// 0, it is set to DigitCount(x.Prec(), base), the count needed for the
// digits to round trip. The result has a leading '-' for negative values.
// Zeros give n zero digits and exponent 0; NaN and infinities are returned
// as "@NaN@", "@Inf@" and "-@Inf@". Digits panics if base is invalid.
func (x *Float) Digits(base, n int, rnd RoundingMode) (string, int64, Accuracy) {
	if base < 2 || base > MaxBase {
		panic(fmt.Sprintf("invalid number base %d", base))
	}
	if n <= 0 {
		prec := x.prec
		if prec == 0 {
			prec = DefaultPrec
		}
		n = DigitCount(uint(prec), base)
	}
	sign := ""
	if x.neg && x.form != nan {
		sign = "-"
	}
	switch x.form {
	case nan:
		return "@NaN@", 0, Exact
	case inf:
		return sign + "@Inf@", 0, Exact
	case zero:
		return sign + strings.Repeat("0", n), 0, Exact
	}

	m, e := x.exact()
	// first guess of the exponent: base**(E-1) <= |x| < base**E
	lb := math.Log2(float64(base))
	E := int64(math.Floor(float64(x.exp-1)/lb)) + 1

	bb := big.NewInt(int64(base))
	lo := new(big.Int).Exp(bb, big.NewInt(int64(n-1)), nil)
	hi := new(big.Int).Mul(lo, bb)
	for {
		d, acc := scaleRound(m, e, bb, int64(n)-E, x.neg, rnd)
		switch {
		case d.Cmp(hi) >= 0:
			if d.Cmp(hi) == 0 {
				// carry out of the rounding
				return sign + itoa(lo, base), E + 1, acc
			}
			E++
		case d.Cmp(lo) < 0:
			E--
		default:
			return sign + itoa(d, base), E, acc
		}
	}
}

// scaleRound returns m × 2**e × base**k rounded to an integer with rnd,
// for a value of sign neg, and the ternary value of the rounding.
func scaleRound(m nat, e int64, base *big.Int, k int64, neg bool, rnd RoundingMode) (*big.Int, Accuracy) {
	num := new(big.Int).Set(m.int())
	den := big.NewInt(1)
	if k >= 0 {
		num.Mul(num, new(big.Int).Exp(base, big.NewInt(k), nil))
	} else {
		den.Exp(base, big.NewInt(-k), nil)
	}
	if e >= 0 {
		num.Lsh(num, uint(e))
	} else {
		den.Lsh(den, uint(-e))
	}
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	if r.Sign() == 0 {
		return q, Exact
	}
	inc := false
	switch rnd {
	case ToNearestEven, Faithful, toNearestAway:
		c := r.Lsh(r, 1).Cmp(den)
		inc = c > 0 || c == 0 && (rnd == toNearestAway || q.Bit(0) != 0)
	case AwayFromZero:
		inc = true
	case ToPositiveInf:
		inc = !neg
	case ToNegativeInf:
		inc = neg
	}
	if inc {
		q.Add(q, big.NewInt(1))
	}
	return q, makeAcc(inc != neg)
}

// Text converts the floating-point number x to a string according to the
// given format and precision prec. The format is one of:
//
//	'e'	-d.dddde±dd, decimal exponent, at least two (possibly 0) exponent digits
//	'E'	-d.ddddE±dd, decimal exponent, at least two (possibly 0) exponent digits
//	'f'	-ddddd.dddd, no exponent
//	'g'	like 'e' for large exponents, like 'f' otherwise
//	'G'	like 'E' for large exponents, like 'f' otherwise
//	'x'	-0xd.dddddp±dd, hexadecimal mantissa, decimal power of two exponent
//	'b'	-ddddddp±dd, decimal mantissa, decimal power of two exponent
//	'p'	-0x.dddp±dd, hexadecimal mantissa, decimal power of two exponent
//
// For the decimal formats, prec is the number of digits following the
// decimal point ('e', 'E', 'f') or the number of significant digits ('g',
// 'G'); a negative prec selects the smallest number of decimal digits
// necessary to represent x uniquely at its precision. Decimal digits are
// rounded to nearest even. The 'b' and 'p' formats are exact and ignore
// prec. A NaN is printed as "NaN".
//
// Values whose exponent exceeds the range of the decimal formatter are
// always printed in 'e' (or 'E') style.
func (x *Float) Text(format byte, prec int) string {
	cap := 10
	if prec > 0 {
		cap += prec
	}
	return string(x.Append(make([]byte, 0, cap), format, prec))
}

// String formats x like x.Text('g', 10).
// (String must be called explicitly, Float.Format does not support %s verb.)
func (x *Float) String() string {
	return x.Text('g', 10)
}

// Append appends to buf the string form of the floating-point number x,
// as generated by x.Text, and returns the extended buffer.
func (x *Float) Append(buf []byte, fmt byte, prec int) []byte {
	switch x.form {
	case nan:
		return append(buf, "NaN"...)
	case zero, inf:
		bf, _ := x.BigFloat(nil)
		return bf.Append(buf, fmt, prec)
	}
	switch fmt {
	case 'b':
		return x.fmtB(buf)
	case 'p':
		return x.fmtP(buf)
	}
	if bf, err := x.BigFloat(nil); err == nil {
		return bf.Append(buf, fmt, prec)
	}
	switch fmt {
	case 'E', 'G':
		return x.fmtE(buf, 'E', prec)
	}
	return x.fmtE(buf, 'e', prec)
}

// fmtB appends the exact value of a finite x as mantissa "p" exponent,
// with an integer mantissa of x.prec bits.
func (x *Float) fmtB(buf []byte) []byte {
	if x.neg {
		buf = append(buf, '-')
	}
	m := nat(nil).shr(x.mant, uint(len(x.mant))*_W-uint(x.prec))
	buf = m.int().Append(buf, 10)
	buf = append(buf, 'p')
	e := x.exp - int64(x.prec)
	if e >= 0 {
		buf = append(buf, '+')
	}
	return strconv.AppendInt(buf, e, 10)
}

// fmtP appends the exact value of a finite x as 0x.mantissa "p" exponent,
// with the mantissa in hexadecimal and trailing zero digits removed.
func (x *Float) fmtP(buf []byte) []byte {
	if x.neg {
		buf = append(buf, '-')
	}
	m, _ := x.exact()
	// align the mantissa on a hex digit boundary
	n := m.bitLen()
	s := (4 - n%4) % 4
	t := nat(nil).shl(m, s)
	h := t.int().Text(16)
	h = strings.TrimRight(h, "0")
	buf = append(buf, "0x."...)
	buf = append(buf, h...)
	buf = append(buf, 'p')
	if x.exp >= 0 {
		buf = append(buf, '+')
	}
	return strconv.AppendInt(buf, x.exp, 10)
}

// fmtE appends x in scientific notation with prec digits after the point.
func (x *Float) fmtE(buf []byte, e byte, prec int) []byte {
	n := prec + 1
	if prec < 0 {
		n = 0
	}
	d, exp, _ := x.Digits(10, n, ToNearestEven)
	if d[0] == '-' {
		buf = append(buf, '-')
		d = d[1:]
	}
	if prec < 0 {
		d = strings.TrimRight(d, "0")
		if d == "" {
			d = "0"
		}
	}
	buf = append(buf, d[0])
	if len(d) > 1 {
		buf = append(buf, '.')
		buf = append(buf, d[1:]...)
	}
	buf = append(buf, e)
	exp--
	if exp < 0 {
		buf = append(buf, '-')
		exp = -exp
	} else {
		buf = append(buf, '+')
	}
	if exp < 10 {
		buf = append(buf, '0')
	}
	return strconv.AppendInt(buf, exp, 10)
}

var _ fmt.Formatter = &floatZero // *Float must implement fmt.Formatter

// Format implements fmt.Formatter. It accepts all the regular formats for
// floating-point numbers ('b', 'e', 'E', 'f', 'F', 'g', 'G', 'x') as
// well as 'p' and 'v'. See (*Float).Text for the interpretation of 'p'. The
// 'v' format is handled like 'g'. Format also supports the minimum
// precision in digits, the minimum field width and the flags '+' and ' '
// for sign control, '0' for space or zero padding, and '-' for left or
// right justification. See the fmt package for details.
func (x *Float) Format(s fmt.State, format rune) {
	switch format {
	case 'e', 'E', 'f', 'F', 'g', 'G', 'v', 'x':
		if x.form == nan {
			break
		}
		if bf, err := x.BigFloat(nil); err == nil {
			bf.Format(s, format)
			return
		}
	case 'b', 'p':
	default:
		fmt.Fprintf(s, "%%!%c(*mpfr.Float=%s)", format, x.String())
		return
	}
	prec, hasPrec := s.Precision()
	if !hasPrec {
		prec = 6 // default precision for 'e', 'f'
	}
	switch format {
	case 'e', 'E', 'f', 'b', 'p', 'x':
		// nothing to do
	case 'F':
		format = 'f'
	case 'v':
		format = 'g'
		fallthrough
	case 'g', 'G':
		if !hasPrec {
			prec = -1
		}
	}
	var sign string
	switch {
	case x.form == nan:
	case x.neg:
		sign = "-"
	case s.Flag('+') || x.form == inf && !s.Flag(' '):
		sign = "+"
	case s.Flag(' '):
		sign = " "
	}
	var buf []byte
	switch x.form {
	case nan:
		buf = []byte("NaN")
	case inf:
		buf = []byte("Inf")
	default:
		a := *x
		a.neg = false
		buf = a.Append(make([]byte, 0, 16), byte(format), prec)
	}

	var padding int
	if width, hasWidth := s.Width(); hasWidth && width > len(sign)+len(buf) {
		padding = width - len(sign) - len(buf)
	}
	switch {
	case s.Flag('0') && x.form == finite:
		writeMultiple(s, sign, 1)
		writeMultiple(s, "0", padding)
		s.Write(buf)
	case s.Flag('-'):
		writeMultiple(s, sign, 1)
		s.Write(buf)
		writeMultiple(s, " ", padding)
	default:
		writeMultiple(s, " ", padding)
		writeMultiple(s, sign, 1)
		s.Write(buf)
	}
}

// write count copies of text to s
func writeMultiple(s fmt.State, text string, count int) {
	if len(text) > 0 {
		b := []byte(text)
		for ; count > 0; count-- {
			s.Write(b)
		}
	}
}
