// Copyright 2016 The Godem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/godem/mdl/contact"
	"github.com/cpmech/godem/par"
)

// Res returns the kernel computing the force, torque and shear contributions of each contact
//
//	Arguments (see ResArgs):
//	 0 shear      [3] RW  contact
//	 1 force_inc  [3] INC particle i
//	 2 force_dec  [3] INC particle j
//	 3 torque_dec [3] INC particle i
//	 4 torque_dec [3] INC particle j
func Res(mdl contact.Model, cts []Contact) par.Kernel {
	return func(e int, v [][]float64) {
		shear, finc, fdec, tdeci, tdecj := v[0], v[1], v[2], v[3], v[4]
		var f, ti, tj [3]float64
		mdl.Compute(&cts[e].Pair, shear, f[:], ti[:], tj[:])
		for c := 0; c < 3; c++ {
			finc[c] += f[c]
			fdec[c] += f[c]
			tdeci[c] += ti[c]
			tdecj[c] += tj[c]
		}
	}
}

// ResArgs returns the arguments for the Res kernel over the set of contacts
func ResArgs(shear, forceInc, forceDec, torqueDec *par.Dat, edgeMap *par.Map) []par.Arg {
	return []par.Arg{
		par.ArgDirect(shear, par.ReadWrite),
		par.ArgMapped(forceInc, 0, edgeMap, par.Inc),
		par.ArgMapped(forceDec, 1, edgeMap, par.Inc),
		par.ArgMapped(torqueDec, 0, edgeMap, par.Inc),
		par.ArgMapped(torqueDec, 1, edgeMap, par.Inc),
	}
}

// Update returns the kernel folding the accumulated increments into force and torque of each particle
//
//	Arguments (see UpdateArgs):
//	 0 force_inc  [3] READ
//	 1 force_dec  [3] READ
//	 2 torque_dec [3] READ
//	 3 force      [3] RW
//	 4 torque     [3] RW
func Update() par.Kernel {
	return func(n int, v [][]float64) {
		finc, fdec, tdec, force, torque := v[0], v[1], v[2], v[3], v[4]
		for c := 0; c < 3; c++ {
			force[c] += finc[c]
			force[c] -= fdec[c]
			torque[c] -= tdec[c]
		}
	}
}

// UpdateArgs returns the arguments for the Update kernel over the set of particles
func UpdateArgs(forceInc, forceDec, torqueDec, force, torque *par.Dat) []par.Arg {
	return []par.Arg{
		par.ArgDirect(forceInc, par.Read),
		par.ArgDirect(forceDec, par.Read),
		par.ArgDirect(torqueDec, par.Read),
		par.ArgDirect(force, par.ReadWrite),
		par.ArgDirect(torque, par.ReadWrite),
	}
}

// Smoke returns a kernel that only exercises the access modes
//
//	Arguments (see SmokeArgs):
//	 0 i        [1] READ contact
//	 1 j        [1] READ contact
//	 2 per_node [3] INC  particle i
//	 3 per_edge [3] RW   contact
//	Each contact adds (1, j, e+1) to per_node of i and sets per_edge to (i, j, e)
func Smoke() par.Kernel {
	return func(e int, v [][]float64) {
		i, j, node, edge := v[0], v[1], v[2], v[3]
		node[0] += 1
		node[1] += j[0]
		node[2] += float64(e + 1)
		edge[0], edge[1], edge[2] = i[0], j[0], float64(e)
	}
}

// SmokeArgs returns the arguments for the Smoke kernel over the set of contacts
func SmokeArgs(nodei, nodej, perNode, perEdge *par.Dat, edgeMap *par.Map) []par.Arg {
	return []par.Arg{
		par.ArgDirect(nodei, par.Read),
		par.ArgDirect(nodej, par.Read),
		par.ArgMapped(perNode, 0, edgeMap, par.Inc),
		par.ArgDirect(perEdge, par.ReadWrite),
	}
}
