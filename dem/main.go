// Copyright 2016 The Godem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package dem implements the driver running the contact kernels over many iterations and timing them
package dem

import (
	"fmt"

	"github.com/cpmech/godem/ele"
	"github.com/cpmech/godem/inp"
	"github.com/cpmech/godem/mdl/contact"
	"github.com/cpmech/godem/out"
	"github.com/cpmech/godem/par"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// names of loops
const (
	LoopRes    = "res"    // force kernel over contacts
	LoopUpdate = "update" // accumulation kernel over particles
)

// Main holds all data for a benchmark run of the contact kernels
type Main struct {
	Stp      *inp.Step     // input data; Shear, Force and Torque are updated in place
	Cfg      inp.RunConfig // run configuration
	Contacts []ele.Contact // one record per edge
	Model    contact.Model // contact law
	Exec     par.Executor  // runs the loops
	Decl     par.Decl      // declared sets, maps and datasets
	ShowMsg  bool          // show messages

	// sets and maps
	Nodes   *par.Set // particles
	Edges   *par.Set // contacts
	EdgeMap *par.Map // contact => (i, j)

	// datasets
	Shear     *par.Dat // [nedge][3] shear history
	ForceInc  *par.Dat // [nnode][3] force increments
	ForceDec  *par.Dat // [nnode][3] force decrements
	TorqueDec *par.Dat // [nnode][3] torque decrements
	Force     *par.Dat // [nnode][3] force
	Torque    *par.Dat // [nnode][3] torque

	// timers
	OneTime []*Timer // one-time costs measured by NewMain

	cleaned bool
}

// NewMain returns a new Main structure with all one-time setup done
func NewMain(stp *inp.Step, cfg *inp.Config) (o *Main, err error) {

	// new Main object
	if stp == nil {
		return nil, chk.Err("step data must not be nil")
	}
	if cfg == nil {
		cfg = inp.DefaultConfig()
	}
	if err = cfg.Run.Check(); err != nil {
		return nil, err
	}
	o = &Main{Stp: stp, Cfg: cfg.Run, ShowMsg: cfg.Run.Verbose}

	// layout: one contact record per edge
	aos := o.timer("aos_gen")
	aos.Start()
	o.Contacts, err = ele.BuildContacts(stp)
	if err != nil {
		return nil, chk.Err("cannot build contacts:\n%v", err)
	}
	o.Model, err = contact.New("hertz")
	if err != nil {
		return nil, err
	}
	if err = o.Model.Init(ele.NewTable(stp), stp.Dt, stp.Nktv2p); err != nil {
		return nil, err
	}
	aos.Stop()

	// executor
	ini := o.timer("init")
	ini.Start()
	switch o.Cfg.Executor {
	case inp.ExecSeq:
		o.Exec = new(par.Seq)
	default:
		o.Exec = par.NewBlocks(o.Cfg.Workers, o.Cfg.Blocks)
	}
	ini.Stop()

	// declarations
	decl := o.timer("decl")
	decl.Start()
	if err = o.declare(); err != nil {
		return nil, err
	}
	decl.Stop()
	if o.ShowMsg {
		io.Pf("\n%v", o.Decl.String())
	}

	// plans
	plan := o.timer("plan")
	plan.Start()
	if p, ok := o.Exec.(par.Preparer); ok {
		if err = p.Prepare(LoopRes, o.Edges, o.resArgs()...); err != nil {
			return nil, err
		}
		if err = p.Prepare(LoopUpdate, o.Nodes, o.updateArgs()...); err != nil {
			return nil, err
		}
	}
	plan.Stop()
	if s, ok := o.Exec.(fmt.Stringer); ok && o.ShowMsg {
		io.Pf("%v", s.String())
	}
	return
}

// Run runs all iterations; results are verified after the first one
//
//	Note: verification mismatches are reported but do not cause an error
func (o *Main) Run() (rpt *Report, err error) {
	defer o.Clean()
	if o.cleaned {
		return nil, chk.Err("Run cannot be called after Clean")
	}
	res, add := NewTimer("compute_kernel"), NewTimer("add_kernel")
	rpt = &Report{NumIter: o.Cfg.Iterations, OneTime: o.OneTime, PerIter: []*Timer{res, add}}
	for run := 0; run < o.Cfg.Iterations; run++ {

		// accumulators (not timed)
		o.ForceInc.Zero()
		o.ForceDec.Zero()
		o.TorqueDec.Zero()

		// force kernel
		res.Start()
		err = o.Exec.Loop(LoopRes, o.Edges, ele.Res(o.Model, o.Contacts), o.resArgs()...)
		res.Stop()
		if err != nil {
			return rpt, chk.Err("iteration %d: %v", run, err)
		}
		if o.ShowMsg {
			out.PrintFirst("force_inc", o.ForceInc.Data, 9)
			out.PrintFirst("force_dec", o.ForceDec.Data, 9)
			out.PrintFirst("force", o.Force.Data, 9)
		}

		// accumulation kernel
		if o.Cfg.Update {
			add.Start()
			err = o.Exec.Loop(LoopUpdate, o.Nodes, ele.Update(), o.updateArgs()...)
			add.Stop()
			if err != nil {
				return rpt, chk.Err("iteration %d: %v", run, err)
			}
		}

		// verification
		if run == 0 {
			rpt.Mismatches = o.verify()
		}
	}
	return
}

// Clean releases the contact records and accumulators; it is safe to call it more than once
func (o *Main) Clean() {
	if o.cleaned {
		return
	}
	o.Contacts = nil
	for _, d := range []*par.Dat{o.ForceInc, o.ForceDec, o.TorqueDec} {
		if d != nil {
			d.Data = nil
		}
	}
	o.cleaned = true
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// timer adds a new one-time timer
func (o *Main) timer(name string) (t *Timer) {
	t = NewTimer(name)
	o.OneTime = append(o.OneTime, t)
	return
}

// declare declares sets, maps and datasets
func (o *Main) declare() (err error) {
	stp := o.Stp
	var parts []int
	if stp.Npart() > 1 {
		parts = stp.Partitions
	}
	if o.Nodes, err = o.Decl.Set("nodes", stp.Nnode, nil); err != nil {
		return
	}
	if o.Edges, err = o.Decl.Set("edges", stp.Nedge, parts); err != nil {
		return
	}
	if o.EdgeMap, err = o.Decl.Map("edge_map", o.Edges, o.Nodes, 2, stp.Edge); err != nil {
		return
	}
	for _, d := range []struct {
		dat  **par.Dat
		name string
		set  *par.Set
		data []float64
	}{
		{&o.Shear, "shear", o.Edges, stp.Shear},
		{&o.ForceInc, "force_inc", o.Nodes, nil},
		{&o.ForceDec, "force_dec", o.Nodes, nil},
		{&o.TorqueDec, "torque_dec", o.Nodes, nil},
		{&o.Force, "force", o.Nodes, stp.Force},
		{&o.Torque, "torque", o.Nodes, stp.Torque},
	} {
		if *d.dat, err = o.Decl.Dat(d.name, d.set, 3, d.data); err != nil {
			return
		}
	}
	return
}

func (o *Main) resArgs() []par.Arg {
	return ele.ResArgs(o.Shear, o.ForceInc, o.ForceDec, o.TorqueDec, o.EdgeMap)
}

func (o *Main) updateArgs() []par.Arg {
	return ele.UpdateArgs(o.ForceInc, o.ForceDec, o.TorqueDec, o.Force, o.Torque)
}

// verify compares force, torque and shear against the expected values
//
//	Note: force and torque are only checked when the accumulation kernel runs
func (o *Main) verify() (nbad int) {
	if o.Cfg.Update {
		nbad += out.CheckPerEntity("force", o.Stp.ExpForce, o.Force.Data, 3, o.Cfg.Tol)
		nbad += out.CheckPerEntity("torque", o.Stp.ExpTorque, o.Torque.Data, 3, o.Cfg.Tol)
	}
	nbad += out.CheckPerEntity("shear", o.Stp.ExpShear, o.Shear.Data, 3, o.Cfg.ShearTol)
	return
}
