// Copyright 2016 The Godem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements contact (edge) records and the kernels computed over contacts and particles
package ele

import (
	"github.com/cpmech/godem/inp"
	"github.com/cpmech/godem/mdl/contact"
	"github.com/cpmech/gosl/chk"
)

// Contact holds a copy of the state of both particles of one contact (edge)
//
//	Note: I and J index the particle arrays; the copies are not written back
type Contact struct {
	I, J int // particles
	contact.Pair
}

// BuildContacts copies the state of the particles of each edge into one Contact record
func BuildContacts(stp *inp.Step) (cts []Contact, err error) {
	if len(stp.Edge) != stp.Nedge*2 {
		return nil, chk.Err("edge array must have 2*nedge=%d values; got %d", stp.Nedge*2, len(stp.Edge))
	}
	cts = make([]Contact, stp.Nedge)
	for e := range cts {
		i, j := stp.Edge[e*2], stp.Edge[e*2+1]
		if i < 0 || i >= stp.Nnode || j < 0 || j >= stp.Nnode {
			return nil, chk.Err("edge %d: particles (%d,%d) must be in [0,%d)", e, i, j, stp.Nnode)
		}
		if stp.Type[i] < 0 || stp.Type[i] >= stp.Ntype || stp.Type[j] < 0 || stp.Type[j] >= stp.Ntype {
			return nil, chk.Err("edge %d: material types (%d,%d) must be in [0,%d)", e, stp.Type[i], stp.Type[j], stp.Ntype)
		}
		c := &cts[e]
		c.I, c.J = i, j
		copy(c.Xi[:], stp.X[i*3:i*3+3])
		copy(c.Xj[:], stp.X[j*3:j*3+3])
		copy(c.Vi[:], stp.V[i*3:i*3+3])
		copy(c.Vj[:], stp.V[j*3:j*3+3])
		copy(c.Omegai[:], stp.Omega[i*3:i*3+3])
		copy(c.Omegaj[:], stp.Omega[j*3:j*3+3])
		c.Radi, c.Radj = stp.Radius[i], stp.Radius[j]
		c.Massi, c.Massj = stp.Mass[i], stp.Mass[j]
		c.Typei, c.Typej = stp.Type[i], stp.Type[j]
	}
	return
}

// NewTable returns the table of material properties of a step
func NewTable(stp *inp.Step) *contact.Table {
	return &contact.Table{
		Ntype:      stp.Ntype,
		Yeff:       stp.Yeff,
		Geff:       stp.Geff,
		Betaeff:    stp.Betaeff,
		CoeffFrict: stp.CoeffFrict,
	}
}
