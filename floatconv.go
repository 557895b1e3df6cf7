// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements string-to-Float conversion functions.

package mpfr

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
	"strings"

	"github.com/db47h/mpfr/internal/checked"
	"github.com/pkg/errors"
)

var floatZero Float

// digitValue returns the value of ch as a digit in the given base, or
// MaxBase if ch is not a digit. For bases up to 36, letters are case
// insensitive; for larger bases, upper-case letters are the digits 10 to 35
// and lower-case letters the digits 36 to 61.
func digitValue(ch byte, base int) int {
	var d int
	switch {
	case '0' <= ch && ch <= '9':
		d = int(ch - '0')
	case 'A' <= ch && ch <= 'Z':
		d = int(ch-'A') + 10
	case 'a' <= ch && ch <= 'z':
		d = int(ch - 'a' + 10)
		if base > maxBaseSmall {
			d += 26
		}
	default:
		return MaxBase
	}
	if d >= base {
		return MaxBase
	}
	return d
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\v' || ch == '\f'
}

// hasPrefixFold reports whether s starts with prefix, ignoring ASCII case.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// special recognizes the NaN and infinity spellings at the start of s and
// returns the number of bytes they use.
func special(s string, base int) (f form, n int) {
	switch {
	case hasPrefixFold(s, "@nan@"):
		return nan, 5
	case hasPrefixFold(s, "@inf@"):
		return inf, 5
	case base > 16:
		return zero, 0
	case hasPrefixFold(s, "nan"):
		n = 3
		// optional "(chars)"
		if i := strings.IndexByte(s[n:], ')'); len(s) > n && s[n] == '(' && i > 0 {
			ok := true
			for _, ch := range s[n+1 : n+i] {
				if !(ch == '_' || '0' <= ch && ch <= '9' || 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z') {
					ok = false
					break
				}
			}
			if ok {
				n += i + 1
			}
		}
		return nan, n
	case hasPrefixFold(s, "infinity"):
		return inf, 8
	case hasPrefixFold(s, "inf"):
		return inf, 3
	}
	return zero, 0
}

// Parse parses the longest prefix of s that represents a floating-point
// number in the given base, sets z to its correctly rounded value and
// returns the ternary value and the number of bytes consumed. Leading white
// space is skipped and counted. The number must be of the form:
//
//	number    = [ sign ] ( float | nan | inf ) .
//	sign      = "+" | "-" .
//	float     = [ prefix ] mantissa [ exponent ] .
//	prefix    = "0" ( "b" | "B" | "x" | "X" ) .
//	mantissa  = digits "." [ digits ] | digits | "." digits .
//	exponent  = ( "e" | "E" | "p" | "P" | "@" ) [ sign ] decimal digits .
//	nan       = "@nan@" | "nan" [ "(" { letter | digit | "_" } ")" ] .
//	inf       = "@inf@" | "inf" | "infinity" .
//
// The base must be 0 or in [2, MaxBase]. For base 0, a "0b" prefix selects
// base 2, "0x" selects base 16 and the base is 10 otherwise; the prefix is
// also accepted for the bases 2 and 16 respectively. For bases up to 36,
// letters in digits are case insensitive; for larger bases, upper-case
// letters are the digits 10 to 35 and lower-case letters the digits 36 to
// 61.
//
// An "e" or "E" exponent, allowed for bases up to 10, and an "@" exponent,
// allowed for any base, scale the mantissa by a power of the base. A "p" or
// "P" exponent, allowed for bases 2 and 16, scales it by a power of two.
// Exponents are always written in decimal. The spellings "nan", "inf" and
// "infinity" (in any case) are only recognized for bases up to 16.
//
// If no number can be parsed, z is left unchanged, consumed is 0 and the
// error is non-nil. Parse panics if base is invalid.
func (c *Context) Parse(z *Float, s string, base int, rnd RoundingMode) (acc Accuracy, consumed int, err error) {
	if base != 0 && (base < 2 || base > MaxBase) {
		panic(fmt.Sprintf("invalid number base %d", base))
	}
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	if f, n := special(s[i:], base); n > 0 {
		c.prepare(z)
		if f == nan {
			return c.setNaN(z), i + n, nil
		}
		z.SetInf(neg)
		return Exact, i + n, nil
	}

	// base prefix
	b := base
	if base == 0 {
		b = 10
	}
	if (base == 0 || base == 2 || base == 16) && i+2 < len(s) && s[i] == '0' {
		switch s[i+1] {
		case 'b', 'B':
			if base != 16 && (digitValue(s[i+2], 2) < 2 || s[i+2] == '.') {
				b = 2
				i += 2
			}
		case 'x', 'X':
			if base != 2 && (digitValue(s[i+2], 16) < 16 || s[i+2] == '.') {
				b = 16
				i += 2
			}
		}
	}

	// mantissa
	var (
		mant    = new(big.Int)
		bb      = big.NewInt(int64(b))
		dv      = new(big.Int)
		ndigits int
		nfrac   int64
		dot     bool
	)
	j := i
	for ; j < len(s); j++ {
		ch := s[j]
		if ch == '.' && !dot {
			dot = true
			continue
		}
		d := digitValue(ch, b)
		if d >= b {
			break
		}
		mant.Mul(mant, bb)
		mant.Add(mant, dv.SetInt64(int64(d)))
		ndigits++
		if dot {
			nfrac++
		}
	}
	if ndigits == 0 {
		return Exact, 0, errors.Wrapf(errNoDigits, "parsing %q", s)
	}

	// exponent
	var exp, exp2 int64
	if j < len(s) {
		r := &countingReader{r: strings.NewReader(s[j:])}
		e, ebase, err := scanExponent(r, b, b == 2 || b == 16, false)
		if err == nil && r.n > 0 {
			if ebase == 2 {
				exp2 = e
			} else {
				exp = e
			}
			j += r.n
		}
	}

	acc = c.setScaled(z, neg, mant, b, exp, nfrac, exp2, rnd)
	return acc, j, nil
}

// setScaled sets z to (-1)**neg × mant × base**(exp-nfrac) × 2**exp2,
// correctly rounded.
func (c *Context) setScaled(z *Float, neg bool, mant *big.Int, base int, exp, nfrac, exp2 int64, rnd RoundingMode) Accuracy {
	c.prepare(z)
	if mant.Sign() == 0 {
		z.SetZero(neg)
		return Exact
	}
	k, err := checked.Sub64(exp, nfrac)
	if err != nil {
		k = exp
	}

	// powers of two are exact
	if base&(base-1) == 0 {
		lb := int64(0)
		for t := base; t > 1; t >>= 1 {
			lb++
		}
		e2 := satMulAdd(lb, k, exp2)
		return c.round(z, neg, nat(mant.Bits()), e2, false, rnd)
	}

	// rough magnitude check to avoid huge powers. The float64 estimate is
	// off by a few units in the last place of its largest term.
	lk := float64(k) * math.Log2(float64(base))
	l2 := float64(mant.BitLen()) + lk + float64(exp2)
	margin := (math.Abs(lk)+math.Abs(float64(exp2))+float64(mant.BitLen()))*0x1p-50 + 8
	switch {
	case l2 > float64(c.emax)+margin:
		return c.overflow(z, neg, rnd)
	case l2 < float64(c.emin)-margin:
		return c.underflow(z, neg, rnd, false)
	}

	// base**|k| is too large to compute exactly
	if ak := absInt64(k); ak > 1<<16 && ak > uint64(z.prec) && ak > uint64(mant.BitLen()) {
		return c.setScaledApprox(z, neg, mant, base, k, exp2, rnd)
	}

	bb := big.NewInt(int64(base))
	if k >= 0 {
		n := new(big.Int).Exp(bb, big.NewInt(k), nil)
		n.Mul(n, mant)
		return c.round(z, neg, nat(n.Bits()), exp2, false, rnd)
	}
	d := new(big.Int).Exp(bb, big.NewInt(-k), nil)
	return c.setRatio(z, neg, nat(mant.Bits()), nat(d.Bits()), exp2, rnd)
}

// setScaledApprox is setScaled for a base that is not a power of two and a
// large |k|, such that the result is never exactly representable: the odd
// part of base**|k| is larger than both mant and 2**prec z. The result is
// computed with increasing precision until it can be rounded.
func (c *Context) setScaledApprox(z *Float, neg bool, mant *big.Int, base int, k, exp2 int64, rnd RoundingMode) Accuracy {
	p := uint(z.prec)
	ak := absInt64(k)
	l := uint(bits.Len64(ak))
	guard := 2*uint(bits.Len(p)) + 20
	for {
		wp := p + l + guard
		w := c.Extended().SetPrec(wp)
		t := NewFloat(wp)
		powUint64(w, t, exactInt64(int64(base)), ak)
		m := NewFloat(wp)
		w.SetInt(m, mant, ToNearestEven)
		if k < 0 {
			w.Quo(t, m, t, ToNearestEven)
		} else {
			w.Mul(t, t, m, ToNearestEven)
		}
		w.Mul2Exp(t, t, exp2, ToNearestEven)
		switch t.form {
		case inf:
			return c.overflow(z, neg, rnd)
		case zero:
			return c.underflow(z, neg, rnd, false)
		}
		// relative error below 2**(l+3-wp)
		if CanRound(t, int64(wp)-int64(l)-4, rnd, p) || guard > 64*p+1<<16 {
			t.neg = neg
			return c.Set(z, t, rnd)
		}
		guard *= 2
	}
}

// powUint64 sets z to x**n rounded to nearest at each step. The relative
// error of z is below 2**(bits.Len64(n)+2) ulps.
func powUint64(w *Context, z, x *Float, n uint64) {
	w.SetInt64(z, 1, ToNearestEven)
	for i := bits.Len64(n) - 1; i >= 0; i-- {
		w.Sqr(z, z, ToNearestEven)
		if n>>uint(i)&1 != 0 {
			w.Mul(z, z, x, ToNearestEven)
		}
	}
}

func absInt64(x int64) uint64 {
	if x < 0 {
		return -uint64(x)
	}
	return uint64(x)
}

// satMulAdd returns a×b + c saturated to ±(1<<62).
func satMulAdd(a, b, c int64) int64 {
	const lim = 1 << 62
	p, err := checked.Mul64(a, b)
	if err == nil {
		p, err = checked.Add64(p, c)
	}
	switch {
	case err != nil && (a < 0) != (b < 0):
		return -lim
	case err != nil:
		return lim
	case p > lim:
		return lim
	case p < -lim:
		return -lim
	}
	return p
}

// SetString sets z to the value of s, which must be a number in the format
// accepted by Parse with base 0, correctly rounded with rnd. The entire
// string must be valid for success.
func (c *Context) SetString(z *Float, s string, rnd RoundingMode) (Accuracy, error) {
	return c.SetStringBase(z, s, 0, rnd)
}

// SetStringBase is like SetString with the given base.
func (c *Context) SetStringBase(z *Float, s string, base int, rnd RoundingMode) (Accuracy, error) {
	saved := c.SaveFlags()
	tmp := new(Float)
	tmp.prec = z.prec
	c.prepare(tmp)
	acc, n, err := c.Parse(tmp, s, base, rnd)
	if err != nil {
		c.RestoreFlags(saved, AllFlags)
		return acc, err
	}
	if n != len(s) {
		c.RestoreFlags(saved, AllFlags)
		return acc, errors.Errorf("mpfr: expected end of string, found %q", s[n:])
	}
	c.prepare(z)
	if z.borrowed {
		c.Set(z, tmp, rnd)
	} else {
		z.Swap(tmp)
	}
	return acc, nil
}

var _ fmt.Scanner = &floatZero // *Float must implement fmt.Scanner

// Scan is a support routine for fmt.Scanner; it sets z to the value of the
// scanned number, in base 10 or with a base prefix, rounded to nearest. If
// z's precision is 0, it is set to DefaultPrec. It accepts the verbs 'e',
// 'E', 'f', 'F', 'g', 'G' and 'v'.
func (z *Float) Scan(s fmt.ScanState, ch rune) error {
	switch ch {
	case 'e', 'E', 'f', 'F', 'g', 'G', 'v':
	default:
		return errors.Errorf("mpfr: invalid verb %q for Float.Scan", ch)
	}
	s.SkipSpace()
	tok, err := s.Token(false, func(r rune) bool {
		return r < 0x80 && (digitValue(byte(r), MaxBase) < MaxBase || strings.ContainsRune("+-.@()_", r))
	})
	if err != nil {
		return err
	}
	c := NewContext()
	_, err = c.SetString(z, string(tok), ToNearestEven)
	return err
}
