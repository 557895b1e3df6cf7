// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements encoding/decoding of Floats.

package mpfr

import (
	"bytes"

	"github.com/pkg/errors"
)

// GobEncode implements the gob.GobEncoder interface. The Float value and its
// precision are marshaled using the Export encoding.
func (x *Float) GobEncode() ([]byte, error) {
	if x == nil {
		return nil, nil
	}
	return x.appendExport(nil), nil
}

// GobDecode implements the gob.GobDecoder interface. The result is rounded
// to nearest even to the precision of z unless z's precision is 0, in which
// case z is set exactly to the decoded value and precision.
func (z *Float) GobDecode(buf []byte) error {
	if len(buf) == 0 {
		// Other side sent a nil or default value.
		if z.borrowed {
			z.form, z.neg = zero, false
			return nil
		}
		*z = Float{}
		return nil
	}
	var t Float
	if err := t.Import(bytes.NewReader(buf)); err != nil {
		return errors.Wrap(err, "Float.GobDecode")
	}
	if z.prec == 0 || z.prec == t.prec && !z.borrowed {
		z.Swap(&t)
		return nil
	}
	wide.Set(z, &t, ToNearestEven)
	return nil
}

// wide is a flag-less rounding context with the widest exponent range. Its
// flags are never read.
var wide = &Context{prec: DefaultPrec, emin: MinExp, emax: MaxExp}

// MarshalText implements the encoding.TextMarshaler interface. Only the
// Float value is marshaled (in full precision), other attributes such as
// precision are ignored.
func (x *Float) MarshalText() (text []byte, err error) {
	if x == nil {
		return []byte("<nil>"), nil
	}
	var buf []byte
	return x.Append(buf, 'g', -1), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. The
// result is rounded to nearest even to the precision of z. If z's precision
// is 0, it is changed to DefaultPrec before rounding takes effect.
func (z *Float) UnmarshalText(text []byte) error {
	_, err := wide.SetString(z, string(text), ToNearestEven)
	if err != nil {
		err = errors.Wrapf(err, "mpfr: cannot unmarshal %q into a *mpfr.Float", text)
	}
	return err
}
