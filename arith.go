// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfr

import "math/bits"

// This file provides the limb level primitives. Vector operations work on
// little-endian word slices and require len(x) >= len(z) (and len(y) >= len(z)
// where applicable).

// addVV sets z = x + y and returns the carry.
func addVV(z, x, y []Word) (c Word) {
	for i := range z {
		zi, cc := bits.Add(uint(x[i]), uint(y[i]), uint(c))
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

// subVV sets z = x - y and returns the borrow.
func subVV(z, x, y []Word) (c Word) {
	for i := range z {
		zi, cc := bits.Sub(uint(x[i]), uint(y[i]), uint(c))
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

// addVW sets z = x + y and returns the carry.
func addVW(z, x []Word, y Word) (c Word) {
	c = y
	for i := range z {
		zi, cc := bits.Add(uint(x[i]), uint(c), 0)
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

// subVW sets z = x - y and returns the borrow.
func subVW(z, x []Word, y Word) (c Word) {
	c = y
	for i := range z {
		zi, cc := bits.Sub(uint(x[i]), uint(c), 0)
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

// shlVU sets z = x << s for 0 <= s < _W and returns the bits shifted out.
func shlVU(z, x []Word, s uint) (c Word) {
	if s == 0 {
		copy(z, x)
		return
	}
	if n := len(z); n > 0 {
		ŝ := _W - s
		w1 := x[n-1]
		c = w1 >> ŝ
		for i := n - 1; i > 0; i-- {
			w := w1
			w1 = x[i-1]
			z[i] = w<<s | w1>>ŝ
		}
		z[0] = w1 << s
	}
	return
}

// shrVU sets z = x >> s for 0 <= s < _W and returns the bits shifted out,
// left aligned.
func shrVU(z, x []Word, s uint) (c Word) {
	if s == 0 {
		copy(z, x)
		return
	}
	if n := len(z); n > 0 {
		ŝ := _W - s
		w1 := x[0]
		c = w1 << ŝ
		for i := 0; i < n-1; i++ {
			w := w1
			w1 = x[i+1]
			z[i] = w>>s | w1<<ŝ
		}
		z[n-1] = w1 >> s
	}
	return
}

// nlz returns the number of leading zero bits in x.
func nlz(x Word) uint {
	return uint(bits.LeadingZeros(uint(x)))
}

// msb64 returns the 64 most significant bits of x, left aligned.
func msb64(x nat) uint64 {
	i := len(x)
	if i == 0 {
		return 0
	}
	if _W == 64 {
		return uint64(x[i-1])
	}
	v := uint64(x[i-1]) << 32
	if i > 1 {
		v |= uint64(x[i-2])
	}
	return v
}
