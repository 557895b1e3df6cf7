// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// mpcalc is a multiple precision RPN calculator.
package main

import (
	"os"

	"github.com/db47h/mpfr/cmd/mpcalc/command"
)

func main() {
	if err := command.New().Execute(); err != nil {
		os.Exit(1)
	}
}
