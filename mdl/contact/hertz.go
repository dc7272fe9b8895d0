// Copyright 2016 The Godem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// sqrt(5/6)
var sqrtFiveOverSix = math.Sqrt(5.0 / 6.0)

// Hertz implements the granular Hertz model with shear history
//
//	δ = ri + rj - r        reff = ri rj / (ri + rj)        meff = mi mj / (mi + mj)
//
//	kn = 4/3 Y √(reff δ)    kt = 8 G √(reff δ)
//
//	γn = -2 √(5/6) β √(2 Y √(reff δ) meff)    γt = -2 √(5/6) β √(8 G √(reff δ) meff)
//
//	fn = kn δ - γn vn            fs = -(kt s + γt vt)    with |fs| ≤ μ |fn|
type Hertz struct {
	Tab    *Table  // material properties
	Dt     float64 // time step
	Nktv2p float64 // stiffness conversion factor
}

// add model to factory
func init() {
	allocators["hertz"] = func() Model { return new(Hertz) }
}

// Init initialises this structure
func (o *Hertz) Init(tab *Table, dt, nktv2p float64) (err error) {
	if tab == nil {
		return chk.Err("Hertz model: table of material properties is missing")
	}
	if err = tab.Check(); err != nil {
		return chk.Err("Hertz model: %v", err)
	}
	if nktv2p == 0 {
		return chk.Err("Hertz model: nktv2p must not be zero")
	}
	o.Tab, o.Dt, o.Nktv2p = tab, dt, nktv2p
	return
}

// Compute computes the contributions of one contact
func (o *Hertz) Compute(p *Pair, shear, fi, ti, tj []float64) {

	// clear output
	for c := 0; c < 3; c++ {
		fi[c], ti[c], tj[c] = 0, 0, 0
	}

	// branch vector from j to i
	delx := p.Xi[0] - p.Xj[0]
	dely := p.Xi[1] - p.Xj[1]
	delz := p.Xi[2] - p.Xj[2]
	rsq := delx*delx + dely*dely + delz*delz
	radsum := p.Radi + p.Radj

	// not touching: forget shear history
	if rsq >= radsum*radsum {
		shear[0], shear[1], shear[2] = 0, 0, 0
		return
	}
	r := math.Sqrt(rsq)
	rinv := 1.0 / r
	rsqinv := 1.0 / rsq

	// relative translational velocity
	vr1 := p.Vi[0] - p.Vj[0]
	vr2 := p.Vi[1] - p.Vj[1]
	vr3 := p.Vi[2] - p.Vj[2]

	// normal component
	vnnr := vr1*delx + vr2*dely + vr3*delz
	vn1 := delx * vnnr * rsqinv
	vn2 := dely * vnnr * rsqinv
	vn3 := delz * vnnr * rsqinv

	// tangential component
	vt1 := vr1 - vn1
	vt2 := vr2 - vn2
	vt3 := vr3 - vn3

	// relative rotational velocity
	wr1 := (p.Radi*p.Omegai[0] + p.Radj*p.Omegaj[0]) * rinv
	wr2 := (p.Radi*p.Omegai[1] + p.Radj*p.Omegaj[1]) * rinv
	wr3 := (p.Radi*p.Omegai[2] + p.Radj*p.Omegaj[2]) * rinv

	// contact parameters
	k := o.Tab.Index(p.Typei, p.Typej)
	yeff, geff, betaeff, xmu := o.Tab.Yeff[k], o.Tab.Geff[k], o.Tab.Betaeff[k], o.Tab.CoeffFrict[k]
	meff := p.Massi * p.Massj / (p.Massi + p.Massj)
	deltan := radsum - r
	reff := p.Radi * p.Radj / radsum
	sqrtval := math.Sqrt(reff * deltan)
	Sn := 2.0 * yeff * sqrtval
	St := 8.0 * geff * sqrtval
	kn := 4.0 / 3.0 * yeff * sqrtval / o.Nktv2p
	kt := St / o.Nktv2p
	gamman := -2.0 * sqrtFiveOverSix * betaeff * math.Sqrt(Sn*meff)
	gammat := -2.0 * sqrtFiveOverSix * betaeff * math.Sqrt(St*meff)

	// normal force = Hertzian contact + normal velocity damping
	damp := gamman * vnnr * rsqinv
	ccel := kn*deltan*rinv - damp

	// relative velocities at contact point
	vtr1 := vt1 - (delz*wr2 - dely*wr3)
	vtr2 := vt2 - (delx*wr3 - delz*wr1)
	vtr3 := vt3 - (dely*wr1 - delx*wr2)

	// shear history
	shear[0] += vtr1 * o.Dt
	shear[1] += vtr2 * o.Dt
	shear[2] += vtr3 * o.Dt
	shrmag := math.Sqrt(shear[0]*shear[0] + shear[1]*shear[1] + shear[2]*shear[2])

	// rotate shear displacements into the tangent plane
	rsht := (shear[0]*delx + shear[1]*dely + shear[2]*delz) * rsqinv
	shear[0] -= rsht * delx
	shear[1] -= rsht * dely
	shear[2] -= rsht * delz

	// tangential force = shear + tangential velocity damping
	fs1 := -(kt*shear[0] + gammat*vtr1)
	fs2 := -(kt*shear[1] + gammat*vtr2)
	fs3 := -(kt*shear[2] + gammat*vtr3)

	// Coulomb limit: rescale shear displacements and forces
	fs := math.Sqrt(fs1*fs1 + fs2*fs2 + fs3*fs3)
	fn := xmu * math.Abs(ccel*r)
	if fs > fn {
		if shrmag != 0.0 {
			ratio := fn / fs
			shear[0] = ratio*(shear[0]+gammat*vtr1/kt) - gammat*vtr1/kt
			shear[1] = ratio*(shear[1]+gammat*vtr2/kt) - gammat*vtr2/kt
			shear[2] = ratio*(shear[2]+gammat*vtr3/kt) - gammat*vtr3/kt
			fs1 *= ratio
			fs2 *= ratio
			fs3 *= ratio
		} else {
			fs1, fs2, fs3 = 0, 0, 0
		}
	}

	// force on i
	fi[0] = delx*ccel + fs1
	fi[1] = dely*ccel + fs2
	fi[2] = delz*ccel + fs3

	// torques
	tor1 := rinv * (dely*fs3 - delz*fs2)
	tor2 := rinv * (delz*fs1 - delx*fs3)
	tor3 := rinv * (delx*fs2 - dely*fs1)
	ti[0], ti[1], ti[2] = p.Radi*tor1, p.Radi*tor2, p.Radi*tor3
	tj[0], tj[1], tj[2] = p.Radj*tor1, p.Radj*tor2, p.Radj*tor3
}
