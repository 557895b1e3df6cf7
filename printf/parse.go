// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package printf

import (
	"strings"

	"github.com/db47h/mpfr"
	"github.com/pkg/errors"
)

// class is the formatter family of a directive.
type class uint8

const (
	literal class = iota
	percent
	integer
	float
	str
	char
	pointer
	count
)

var classNames = [...]string{"literal", "percent", "integer", "float", "string", "char", "pointer", "count"}

func (c class) String() string { return classNames[c] }

// flag bits
type flags uint8

const (
	flagMinus flags = 1 << iota
	flagPlus
	flagSpace
	flagSharp
	flagZero
)

// Arguments taken by '*' fields.
const (
	noValue = -1
	fromArg = -2
)

// A directive is a literal string or a single conversion specification:
//
//	% [flags] [width] [. precision] [length] [type [rounding]] conversion
type directive struct {
	class class
	text  string // literal text, or the directive as written in the format

	flags flags
	width int // noValue, fromArg or the field width
	prec  int // noValue, fromArg or the precision

	length string // C length modifier, accepted and ignored
	typ    byte   // 0 or one of 'Z', 'Q', 'F', 'R', 'P'
	rnd    mpfr.RoundingMode
	rndArg bool // rounding mode taken from the argument list
	verb   byte
}

func (d *directive) has(f flags) bool { return d.flags&f != 0 }

// verbs maps conversion characters to their class.
var verbs = map[byte]class{
	'd': integer, 'i': integer, 'o': integer, 'u': integer, 'x': integer, 'X': integer,
	'e': float, 'E': float, 'f': float, 'F': float, 'g': float, 'G': float,
	'a': float, 'A': float, 'b': float,
	'c': char,
	's': str,
	'p': pointer,
	'n': count,
	'%': percent,
}

var roundingChars = map[byte]mpfr.RoundingMode{
	'N': mpfr.ToNearestEven,
	'Z': mpfr.ToZero,
	'U': mpfr.ToPositiveInf,
	'D': mpfr.ToNegativeInf,
	'Y': mpfr.AwayFromZero,
	'F': mpfr.Faithful,
}

// ErrSyntax is returned for malformed format strings.
var ErrSyntax = errors.New("printf: syntax error")

// parser is a recursive descent parser for format strings.
type parser struct {
	s   string
	pos int
}

// parse splits format into directives.
func parse(format string) ([]directive, error) {
	p := parser{s: format}
	return p.format()
}

func (p *parser) peek() byte {
	if p.pos < len(p.s) {
		return p.s[p.pos]
	}
	return 0
}

func (p *parser) peekAt(i int) byte {
	if p.pos+i < len(p.s) {
		return p.s[p.pos+i]
	}
	return 0
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrSyntax, "at offset %d: "+format, append([]interface{}{p.pos}, args...)...)
}

// format = { literal | directive } .
func (p *parser) format() ([]directive, error) {
	var ds []directive
	for p.pos < len(p.s) {
		if p.peek() != '%' {
			ds = append(ds, p.literal())
			continue
		}
		d, err := p.directive()
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	return ds, nil
}

func (p *parser) literal() directive {
	i := strings.IndexByte(p.s[p.pos:], '%')
	if i < 0 {
		i = len(p.s) - p.pos
	}
	d := directive{class: literal, text: p.s[p.pos : p.pos+i]}
	p.pos += i
	return d
}

// directive = "%" flags [ width ] [ "." precision ] length [ type ] verb .
func (p *parser) directive() (directive, error) {
	start := p.pos
	p.pos++ // '%'
	d := directive{width: noValue, prec: noValue}
	d.flags = p.flags()
	d.width = p.number()
	if p.peek() == '.' {
		p.pos++
		d.prec = p.number()
		if d.prec == noValue {
			// "%.f" is a zero precision
			d.prec = 0
		}
	}
	d.length = p.length()
	if err := p.typ(&d); err != nil {
		return d, err
	}
	ch := p.peek()
	cl, ok := verbs[ch]
	if !ok {
		if ch == 0 {
			return d, p.errorf("missing conversion in %q", p.s[start:])
		}
		return d, p.errorf("unknown conversion %q", ch)
	}
	p.pos++
	d.class = cl
	d.verb = ch
	d.text = p.s[start:p.pos]
	if cl == percent && p.pos-start != 2 {
		return d, p.errorf("malformed %%%% directive %q", d.text)
	}
	return d, nil
}

// flags = { "-" | "+" | " " | "#" | "0" } .
func (p *parser) flags() (f flags) {
	for {
		switch p.peek() {
		case '-':
			f |= flagMinus
		case '+':
			f |= flagPlus
		case ' ':
			f |= flagSpace
		case '#':
			f |= flagSharp
		case '0':
			f |= flagZero
		default:
			return f
		}
		p.pos++
	}
}

// number = "*" | digit { digit } .
func (p *parser) number() int {
	if p.peek() == '*' {
		p.pos++
		return fromArg
	}
	n := noValue
	for ch := p.peek(); '0' <= ch && ch <= '9'; ch = p.peek() {
		if n == noValue {
			n = 0
		}
		if n < 1<<24 {
			n = n*10 + int(ch-'0')
		}
		p.pos++
	}
	return n
}

// length = [ "hh" | "h" | "ll" | "l" | "j" | "z" | "t" | "L" | "q" ] .
func (p *parser) length() string {
	switch p.peek() {
	case 'h', 'l':
		n := 1
		if p.peekAt(1) == p.peek() {
			n = 2
		}
		p.pos += n
		return p.s[p.pos-n : p.pos]
	case 'j', 'z', 't', 'L', 'q':
		p.pos++
		return p.s[p.pos-1 : p.pos]
	}
	return ""
}

// isVerb reports whether ch is a conversion character other than '%'.
func isVerb(ch byte) bool {
	cl, ok := verbs[ch]
	return ok && cl != percent
}

// type = "Z" | "Q" | "F" | "P" | "R" [ rounding ] .
// rounding = "U" | "D" | "Y" | "Z" | "N" | "F" | "*" .
//
// 'F' is a type only if followed by a conversion, otherwise it is the
// conversion itself. The same applies to rounding characters after 'R'.
func (p *parser) typ(d *directive) error {
	switch ch := p.peek(); ch {
	case 'Z', 'Q', 'P':
		d.typ = ch
		p.pos++
	case 'F':
		if isVerb(p.peekAt(1)) {
			d.typ = ch
			p.pos++
		}
	case 'R':
		d.typ = ch
		d.rnd = mpfr.ToNearestEven
		p.pos++
		r := p.peek()
		if r == '*' {
			d.rndArg = true
			p.pos++
		} else if m, ok := roundingChars[r]; ok && isVerb(p.peekAt(1)) {
			d.rnd = m
			p.pos++
		}
	default:
		return nil
	}
	if !isVerb(p.peek()) {
		return p.errorf("type modifier %q not followed by a conversion", d.typ)
	}
	return nil
}
