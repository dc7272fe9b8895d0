// Copyright 2016 The Godem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the verification of computed results and console diagnostics
package out

import (
	"math"

	"github.com/cpmech/gosl/io"
)

// CheckVector compares computed against expected values component-wise
//
//	Note: a component is flagged if |expected - computed| > tol; thus tol = 0 means exact
//	Output:
//	 nbad -- number of flagged components; one line is printed for each of them
func CheckVector(name string, expected, computed []float64, tol float64) (nbad int) {
	if len(expected) != len(computed) {
		io.PfRed("%s: expected %d values; got %d\n", name, len(expected), len(computed))
		return len(expected) + len(computed)
	}
	for i := range expected {
		diff := math.Abs(expected[i] - computed[i])
		if diff > tol || math.IsNaN(diff) {
			io.PfRed("%s[%d]: expected %.16f, got %.16f (|diff| = %g > %g)\n", name, i, expected[i], computed[i], diff, tol)
			nbad++
		}
	}
	return
}

// CheckPerEntity runs CheckVector on each dim-long entity; labels are name[n]
func CheckPerEntity(name string, expected, computed []float64, dim int, tol float64) (nbad int) {
	if len(expected) != len(computed) || dim < 1 || len(expected)%dim != 0 {
		return CheckVector(name, expected, computed, tol)
	}
	for n := 0; n < len(expected)/dim; n++ {
		nbad += CheckVector(io.Sf("%s[%d]", name, n), expected[n*dim:(n+1)*dim], computed[n*dim:(n+1)*dim], tol)
	}
	return
}

// PrintFirst prints the first n values of v in groups of 3
func PrintFirst(name string, v []float64, n int) {
	if n > len(v) {
		n = len(v)
	}
	for i := 0; i < n; i++ {
		if i%3 == 0 {
			io.Pf("\n")
		}
		io.Pf("%s[%d] = %.16f\n", name, i, v[i])
	}
}

// CountZeros returns the number of values equal to zero
func CountZeros(v []float64) (nzero int) {
	for _, x := range v {
		if x == 0 {
			nzero++
		}
	}
	return
}

// PrintZeros prints the number of zero values out of all values
func PrintZeros(name string, v []float64) {
	io.Pf("# num_%s_zero %d/%d\n", name, CountZeros(v), len(v))
}
