// Copyright 2016 The Godem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package contact implements pairwise contact models for particles (discrete elements)
package contact

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Pair holds the kinematic state of the two particles (i and j) in contact
type Pair struct {
	Xi, Xj         [3]float64 // positions
	Vi, Vj         [3]float64 // velocities
	Omegai, Omegaj [3]float64 // angular velocities
	Radi, Radj     float64    // radii
	Massi, Massj   float64    // masses
	Typei, Typej   int        // material types
}

// Table holds effective material properties for all pairs of material types
type Table struct {
	Ntype      int       // number of types
	Yeff       []float64 // [ntype*ntype] effective Young's modulus
	Geff       []float64 // [ntype*ntype] effective shear modulus
	Betaeff    []float64 // [ntype*ntype] effective damping coefficient
	CoeffFrict []float64 // [ntype*ntype] friction coefficient
}

// Check checks dimensions
func (o *Table) Check() error {
	if o.Ntype < 1 {
		return chk.Err("number of material types must be positive; got %d", o.Ntype)
	}
	nn := o.Ntype * o.Ntype
	for _, a := range []struct {
		name string
		v    []float64
	}{{"yeff", o.Yeff}, {"geff", o.Geff}, {"betaeff", o.Betaeff}, {"coeffFrict", o.CoeffFrict}} {
		if len(a.v) != nn {
			return chk.Err("table %q must have ntype*ntype=%d values; got %d", a.name, nn, len(a.v))
		}
	}
	return nil
}

// Index returns the position of the (typei, typej) entry; -1 if a type is out of range
func (o *Table) Index(typei, typej int) int {
	if typei < 0 || typei >= o.Ntype || typej < 0 || typej >= o.Ntype {
		return -1
	}
	return typei*o.Ntype + typej
}

// String returns the tables in matrix form
func (o *Table) String() (l string) {
	for _, a := range []struct {
		name string
		v    []float64
	}{{"yeff", o.Yeff}, {"geff", o.Geff}, {"betaeff", o.Betaeff}, {"coeffFrict", o.CoeffFrict}} {
		l += io.Sf("%s =\n", a.name)
		for i := 0; i < o.Ntype; i++ {
			for j := 0; j < o.Ntype; j++ {
				l += io.Sf(" %13g", a.v[i*o.Ntype+j])
			}
			l += "\n"
		}
	}
	return
}

// Model defines contact models
type Model interface {
	Init(tab *Table, dt, nktv2p float64) error // Init initialises this structure

	// Compute computes the contributions of one contact
	//
	//	Input:
	//	 p -- state of particles i and j
	//	Input/Output:
	//	 shear -- [3] shear history of contact; updated
	//	Output:
	//	 fi -- [3] force on i; the force on j is -fi
	//	 ti -- [3] torque to be subtracted from i
	//	 tj -- [3] torque to be subtracted from j
	Compute(p *Pair, shear, fi, ti, tj []float64)
}

// New contact model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'contact' database", name)
	}
	return allocator(), nil
}

// allocators holds all available models
var allocators = map[string]func() Model{}
