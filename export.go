// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements the portable binary encoding of Floats.

package mpfr

import (
	"encoding/binary"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// Binary codec version. Permits backward-compatible changes to the encoding.
const exportVersion byte = 1

const signBit = 0x80

// Export writes a portable binary encoding of x to w. The encoding is:
//
//	version    byte (currently 1)
//	kind|sign  byte: Kind in the low bits, 0x80 if the sign bit is set
//	prec       uvarint
//	exp        varint, regular values only
//	mantissa   ceil(prec/8) bytes, big-endian, regular values only
//
// The mantissa bytes hold the prec significant bits of x left-aligned: the
// most significant bit of the first byte is set and the bits past prec are
// zero. Export and Import round trip bit-identically, including the
// precision and the sign of zeros. NaN payloads are not encoded.
func (x *Float) Export(w io.Writer) error {
	_, err := w.Write(x.appendExport(nil))
	return errors.Wrap(err, "mpfr: export")
}

func (x *Float) appendExport(buf []byte) []byte {
	prec := x.prec
	if prec == 0 {
		prec = DefaultPrec
	}
	b := byte(x.Kind())
	if x.neg {
		b |= signBit
	}
	buf = append(buf, exportVersion, b)
	buf = binary.AppendUvarint(buf, uint64(prec))
	if x.form != finite {
		return buf
	}
	buf = binary.AppendVarint(buf, x.exp)
	n := (uint(prec) + 7) / 8
	m := nat(nil).shr(x.mant, uint(len(x.mant))*_W-n*8)
	return append(buf, m.int().FillBytes(make([]byte, n))...)
}

// byteReader adapts an io.Reader to io.ByteReader without reading ahead.
type byteReader struct {
	io.Reader
	b [1]byte
}

func (r *byteReader) ReadByte() (byte, error) {
	_, err := io.ReadFull(r.Reader, r.b[:])
	return r.b[0], err
}

// Import reads a Float encoded by Export from r and sets z to its exact
// value and precision. Malformed or truncated input yields an error wrapping
// ErrMalformed, in which case z is unchanged. If z is built over borrowed
// storage, the encoded precision must match z's precision.
func (z *Float) Import(r io.Reader) error {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = &byteReader{Reader: r}
	}
	malformed := func(err error, what string) error {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		if err == nil {
			return errors.Wrap(ErrMalformed, what)
		}
		return errors.Wrapf(ErrMalformed, "%s: %v", what, err)
	}

	v, err := br.ReadByte()
	if err != nil {
		return malformed(err, "version")
	}
	if v != exportVersion {
		return errors.Wrapf(ErrMalformed, "encoding version %d not supported", v)
	}
	b, err := br.ReadByte()
	if err != nil {
		return malformed(err, "kind")
	}
	neg := b&signBit != 0
	kind := Kind(b &^ signBit)
	if kind > RegularKind {
		return errors.Wrapf(ErrMalformed, "invalid kind %d", kind)
	}
	p, err := binary.ReadUvarint(br)
	if err != nil {
		return malformed(err, "precision")
	}
	if p < MinPrec || p > MaxPrec {
		return errors.Wrapf(ErrMalformed, "precision %d out of range", p)
	}
	prec := uint32(p)
	if z.borrowed && z.prec != prec {
		return errors.Wrapf(ErrBorrowed, "importing precision %d into precision %d", prec, z.prec)
	}

	var (
		mant nat
		exp  int64
	)
	if kind == RegularKind {
		exp, err = binary.ReadVarint(br)
		if err != nil {
			return malformed(err, "exponent")
		}
		if exp < MinExp || exp > MaxExp {
			return errors.Wrapf(ErrMalformed, "exponent %d out of range", exp)
		}
		n := (uint(prec) + 7) / 8
		buf := make([]byte, n)
		if _, err = io.ReadFull(r, buf); err != nil {
			return malformed(err, "mantissa")
		}
		if buf[0]&0x80 == 0 {
			return errors.Wrap(ErrMalformed, "mantissa is not normalized")
		}
		if t := n*8 - uint(prec); buf[n-1]&(1<<t-1) != 0 {
			return errors.Wrap(ErrMalformed, "mantissa bits set past precision")
		}
		m := natOf(new(big.Int).SetBytes(buf))
		mant = nat(nil).shl(m, uint(nwords(prec))*_W-n*8)
	}

	z.prec = prec
	z.neg = neg
	switch kind {
	case NaNKind:
		z.form = nan
	case InfKind:
		z.form = inf
	case ZeroKind:
		z.form = zero
	default:
		z.form = finite
		z.exp = exp
		z.mant = z.mant.make(len(mant))
		copy(z.mant, mant)
	}
	return nil
}
