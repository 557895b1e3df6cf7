// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package printf

import (
	"math/big"
	"strings"

	"github.com/db47h/mpfr"
)

// field is a formatted value before padding: sign, then prefix, then body.
// Zero padding goes between prefix and body.
type field struct {
	sign    string
	prefix  string
	body    string
	numeric bool // zero padding allowed
}

// pad appends f to buf, padded to d's width.
func pad(buf []byte, d *directive, width int, f field) []byte {
	n := len(f.sign) + len(f.prefix) + len(f.body)
	fill := 0
	if width > n {
		fill = width - n
	}
	switch {
	case d.has(flagMinus):
		buf = append(buf, f.sign...)
		buf = append(buf, f.prefix...)
		buf = append(buf, f.body...)
		return appendRepeat(buf, ' ', fill)
	case d.has(flagZero) && f.numeric:
		buf = append(buf, f.sign...)
		buf = append(buf, f.prefix...)
		buf = appendRepeat(buf, '0', fill)
		return append(buf, f.body...)
	}
	buf = appendRepeat(buf, ' ', fill)
	buf = append(buf, f.sign...)
	buf = append(buf, f.prefix...)
	return append(buf, f.body...)
}

func appendRepeat(buf []byte, ch byte, n int) []byte {
	for ; n > 0; n-- {
		buf = append(buf, ch)
	}
	return buf
}

func signOf(d *directive, neg bool) string {
	switch {
	case neg:
		return "-"
	case d.has(flagPlus):
		return "+"
	case d.has(flagSpace):
		return " "
	}
	return ""
}

// integer formatting

func base(verb byte) int {
	switch verb {
	case 'o':
		return 8
	case 'x', 'X':
		return 16
	}
	return 10
}

// intDigits returns the digits of |x| for d's verb and precision.
func intDigits(d *directive, prec int, x *big.Int) string {
	var s string
	if x.Sign() != 0 || prec != 0 {
		s = new(big.Int).Abs(x).Text(base(d.verb))
	}
	if d.verb == 'X' {
		s = strings.ToUpper(s)
	}
	if len(s) < prec {
		s = strings.Repeat("0", prec-len(s)) + s
	}
	if d.verb == 'o' && d.has(flagSharp) && (s == "" || s[0] != '0') {
		s = "0" + s
	}
	return s
}

func intPrefix(d *directive, x *big.Int) string {
	if !d.has(flagSharp) || x.Sign() == 0 {
		return ""
	}
	switch d.verb {
	case 'x':
		return "0x"
	case 'X':
		return "0X"
	}
	return ""
}

func formatInt(d *directive, prec int, x *big.Int) field {
	neg := x.Sign() < 0
	f := field{
		prefix:  intPrefix(d, x),
		body:    intDigits(d, prec, x),
		numeric: prec == noValue,
	}
	if d.verb == 'd' || d.verb == 'i' {
		f.sign = signOf(d, neg)
	} else if neg {
		f.sign = "-"
	}
	return f
}

// formatRat formats x as num/den, with the denominator omitted if it is 1.
func formatRat(d *directive, prec int, x *big.Rat) field {
	f := formatInt(d, prec, x.Num())
	if !x.IsInt() {
		den := x.Denom()
		f.body += "/" + intPrefix(d, den) + intDigits(d, noValue, den)
	}
	return f
}

// float formatting

func isUpper(verb byte) bool {
	return verb == 'E' || verb == 'F' || verb == 'G' || verb == 'A'
}

// formatFloat formats x with d's verb, prec digits (or noValue) and the
// rounding mode rnd.
func formatFloat(d *directive, prec int, x *mpfr.Float, rnd mpfr.RoundingMode) field {
	upper := isUpper(d.verb)
	f := field{sign: signOf(d, x.Signbit() && !x.IsNaN())}
	switch {
	case x.IsNaN():
		f.sign = ""
		f.body = "nan"
	case x.IsInf():
		f.body = "inf"
	}
	if f.body != "" {
		if upper {
			f.body = strings.ToUpper(f.body)
		}
		return f
	}
	f.numeric = true
	switch d.verb {
	case 'e', 'E':
		if prec == noValue {
			prec = 6
			if d.typ == 'R' {
				prec = mpfr.DigitCount(x.Prec(), 10) - 1
			}
		}
		ds, e := decDigits(x, prec+1, rnd)
		f.body = expForm(d, ds, e-1)
	case 'f', 'F':
		if prec == noValue {
			prec = 6
		}
		f.body = fixedForm(d, fixedDigits(x, prec, rnd))
	case 'g', 'G':
		f.body = generalForm(d, prec, x, rnd)
	case 'a', 'A':
		f.prefix = "0x"
		f.body = radixForm(d, x, 4, prec, rnd)
	case 'b':
		f.body = radixForm(d, x, 1, prec, rnd)
	}
	if upper {
		f.prefix = strings.ToUpper(f.prefix)
		f.body = strings.ToUpper(f.body)
	}
	return f
}

// decDigits returns the n most significant decimal digits of |x| rounded
// with rnd and the exponent e such that |x| ≈ 0.ds × 10**e. Zeros have the
// exponent 1.
func decDigits(x *mpfr.Float, n int, rnd mpfr.RoundingMode) (string, int64) {
	ds, e, _ := x.Digits(10, n, rnd)
	if x.IsZero() {
		e = 1
	}
	return strings.TrimPrefix(ds, "-"), e
}

// decimal digits of a fixed-point value: the integer and fraction parts.
type fixed struct {
	ip, fp string
}

// fixedDigits returns |x| rounded with rnd to frac fractional digits.
func fixedDigits(x *mpfr.Float, frac int, rnd mpfr.RoundingMode) fixed {
	if x.IsZero() {
		return fixed{"0", strings.Repeat("0", frac)}
	}
	ds, e0, acc := x.Digits(10, 1, mpfr.ToZero)
	ds = strings.TrimPrefix(ds, "-")
	n := e0 + int64(frac)
	if n <= 0 {
		// |x| < 10**-frac
		var up bool
		switch rnd {
		case mpfr.ToNearestEven, mpfr.Faithful:
			up = n == 0 && (ds[0] > '5' || ds[0] == '5' && acc != mpfr.Exact)
		case mpfr.AwayFromZero:
			up = true
		case mpfr.ToPositiveInf:
			up = !x.Signbit()
		case mpfr.ToNegativeInf:
			up = x.Signbit()
		}
		if !up {
			return fixed{"0", strings.Repeat("0", frac)}
		}
		return digitsToFixed("1", 1-int64(frac))
	}
	ds, e := decDigits(x, int(n), rnd)
	if e > e0 {
		// carry: ds is 1 followed by zeros
		ds += "0"
	}
	return digitsToFixed(ds, e)
}

// digitsToFixed splits the value 0.ds × 10**e into its integer and fraction
// digits.
func digitsToFixed(ds string, e int64) fixed {
	if e <= 0 {
		return fixed{"0", strings.Repeat("0", int(-e)) + ds}
	}
	if int(e) >= len(ds) {
		return fixed{ds + strings.Repeat("0", int(e)-len(ds)), ""}
	}
	return fixed{ds[:e], ds[e:]}
}

func fixedForm(d *directive, v fixed) string {
	if v.fp == "" && !d.has(flagSharp) {
		return v.ip
	}
	return v.ip + "." + v.fp
}

// expForm formats the digits ds as d.ddd with exponent e.
func expForm(d *directive, ds string, e int64) string {
	var b strings.Builder
	b.WriteByte(ds[0])
	if len(ds) > 1 || d.has(flagSharp) {
		b.WriteByte('.')
		b.WriteString(ds[1:])
	}
	b.WriteByte('e')
	if e < 0 {
		b.WriteByte('-')
		e = -e
	} else {
		b.WriteByte('+')
	}
	if e < 10 {
		b.WriteByte('0')
	}
	b.WriteString(big.NewInt(e).String())
	return b.String()
}

// generalForm implements %g: prec significant digits, in exponent form for
// exponents below -4 or not below the precision, trailing zeros removed
// unless the '#' flag is set.
func generalForm(d *directive, prec int, x *mpfr.Float, rnd mpfr.RoundingMode) string {
	switch prec {
	case noValue:
		prec = 6
	case 0:
		prec = 1
	}
	ds, e := decDigits(x, prec, rnd)
	X := e - 1
	var s string
	if X < -4 || X >= int64(prec) {
		if !d.has(flagSharp) {
			ds = trimZeros(ds)
		}
		s = expForm(d, ds, X)
	} else {
		v := digitsToFixed(ds, e)
		if !d.has(flagSharp) {
			v.fp = trimZeros(v.fp)
			if v.fp == "" {
				return v.ip
			}
		}
		s = v.ip + "." + v.fp
	}
	return s
}

// trimZeros removes the trailing zeros of ds, keeping its first character.
func trimZeros(ds string) string {
	i := len(ds)
	for i > 1 && ds[i-1] == '0' {
		i--
	}
	if len(ds) > 0 && i == 1 && ds[0] == '0' {
		return ""
	}
	return ds[:i]
}

// radixForm formats x as 1.ddd p±e where each digit holds k bits (4 for hex,
// 1 for binary) and e is a decimal power of two.
func radixForm(d *directive, x *mpfr.Float, k uint, prec int, rnd mpfr.RoundingMode) string {
	var (
		lead, frac string
		exp        int64
	)
	if x.IsZero() {
		lead = "0"
		if prec > 0 {
			frac = strings.Repeat("0", prec)
		}
	} else {
		m, e := x.IntExp(nil)
		m.Abs(m)
		f := uint(m.BitLen() - 1) // fraction bits
		exp = e + int64(f)
		var h uint
		if prec == noValue {
			h = (f + k - 1) / k
		} else {
			h = uint(prec)
		}
		if f > h*k {
			m = roundShr(m, f-h*k, x.Signbit(), rnd)
			if uint(m.BitLen()) > 1+h*k {
				// carry to the next power of two
				m.Rsh(m, 1)
				exp++
			}
		} else {
			m.Lsh(m, h*k-f)
		}
		s := m.Text(1 << k)
		lead, frac = s[:1], s[1:]
		if prec == noValue {
			frac = strings.TrimRight(frac, "0")
		}
	}
	var b strings.Builder
	b.WriteString(lead)
	if frac != "" || d.has(flagSharp) {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	b.WriteByte('p')
	if exp >= 0 {
		b.WriteByte('+')
	}
	b.WriteString(big.NewInt(exp).String())
	return b.String()
}

// roundShr returns m >> s rounded with rnd, for a value of sign neg.
func roundShr(m *big.Int, s uint, neg bool, rnd mpfr.RoundingMode) *big.Int {
	q := new(big.Int).Rsh(m, s)
	r := new(big.Int).Sub(m, new(big.Int).Lsh(q, s))
	if r.Sign() == 0 {
		return q
	}
	var inc bool
	switch rnd {
	case mpfr.ToNearestEven, mpfr.Faithful:
		half := new(big.Int).Lsh(big.NewInt(1), s-1)
		c := r.Cmp(half)
		inc = c > 0 || c == 0 && q.Bit(0) != 0
	case mpfr.AwayFromZero:
		inc = true
	case mpfr.ToPositiveInf:
		inc = !neg
	case mpfr.ToNegativeInf:
		inc = neg
	}
	if inc {
		q.Add(q, big.NewInt(1))
	}
	return q
}

// formatString formats s, truncated to prec bytes.
func formatString(prec int, s string) field {
	if prec >= 0 && prec < len(s) {
		s = s[:prec]
	}
	return field{body: s}
}
