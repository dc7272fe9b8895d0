// Copyright 2016 The Godem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dem

import (
	"testing"

	"github.com/cpmech/godem/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"go.uber.org/goleak"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func readTwo(tst *testing.T) *inp.Step {
	stp, err := inp.ReadStep("../inp/data/two.step")
	if err != nil {
		tst.Fatalf("ReadStep failed:\n%v", err)
	}
	return stp
}

func config(tst *testing.T, data string) *inp.Config {
	cfg, err := inp.ReadConfigString(data)
	if err != nil {
		tst.Fatalf("ReadConfigString failed:\n%v", err)
	}
	cfg.Run.Verbose = chk.Verbose
	return cfg
}

func Test_main01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main01. two particles. end-to-end")

	for _, executor := range []string{"seq", "blocks"} {
		stp := readTwo(tst)
		cfg := config(tst, "[Run]\nIterations = 1\nExecutor = "+executor+"\n")
		drv, err := NewMain(stp, cfg)
		if err != nil {
			tst.Errorf("NewMain failed:\n%v", err)
			return
		}
		rpt, err := drv.Run()
		if err != nil {
			tst.Errorf("Run failed:\n%v", err)
			return
		}
		io.Pf("%v", rpt)
		chk.Int(tst, "mismatches", rpt.Mismatches, 0)
		chk.Int(tst, "niter", rpt.NumIter, 1)
		chk.Array(tst, "force", 1e-15, drv.Force.Data, []float64{-1.0 / 3.0, 0, 0, 1.0 / 3.0, 0, 0})
		chk.Array(tst, "torque", 1e-17, drv.Torque.Data, []float64{0, 0, 0, 0, 0, 0})
		chk.Array(tst, "shear", 1e-17, drv.Shear.Data, []float64{0, 0, 0})

		// timers
		names := make([]string, len(rpt.OneTime))
		for i, t := range rpt.OneTime {
			names[i] = t.Name
			chk.Int(tst, t.Name+": count", t.Count(), 1)
		}
		chk.Strings(tst, "one-time", names, []string{"aos_gen", "init", "decl", "plan"})
		chk.Int(tst, "compute_kernel: count", rpt.PerIter[0].Count(), 1)
		chk.Int(tst, "add_kernel: count", rpt.PerIter[1].Count(), 1)

		// cleanup
		if drv.Contacts != nil || drv.ForceInc.Data != nil {
			tst.Errorf("Clean should release contacts and accumulators\n")
		}
		_, err = drv.Run()
		if err == nil {
			tst.Errorf("Run after Clean should fail\n")
		}
	}
}

func Test_main02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main02. many iterations and no iterations")

	// force accumulates in every iteration; only the first one is verified
	stp := readTwo(tst)
	drv, err := NewMain(stp, config(tst, "[Run]\nIterations = 3\nWorkers = 2\n"))
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	rpt, err := drv.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	chk.Int(tst, "mismatches", rpt.Mismatches, 0)
	chk.Int(tst, "compute_kernel: count", rpt.PerIter[0].Count(), 3)
	chk.Array(tst, "force", 1e-15, stp.Force, []float64{-1, 0, 0, 1, 0, 0})

	// zero iterations: nothing is computed but cleanup still runs
	stp = readTwo(tst)
	drv, err = NewMain(stp, config(tst, "[Run]\nIterations = 0\n"))
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	rpt, err = drv.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	chk.Int(tst, "mismatches", rpt.Mismatches, 0)
	chk.Int(tst, "compute_kernel: count", rpt.PerIter[0].Count(), 0)
	chk.Array(tst, "force", 1e-17, stp.Force, []float64{0, 0, 0, 0, 0, 0})
	if drv.Contacts != nil {
		tst.Errorf("Clean should run even without iterations\n")
	}
	io.Pf("%v", rpt)
}

func Test_main03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main03. mismatches and errors")

	// wrong expected values are reported but are not fatal
	stp := readTwo(tst)
	stp.ExpForce[0] = 0
	stp.ExpShear[2] = 1
	drv, err := NewMain(stp, config(tst, "[Run]\nIterations = 2\nExecutor = seq\n"))
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	rpt, err := drv.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	chk.Int(tst, "mismatches", rpt.Mismatches, 2)

	// force and torque are not verified without the accumulation kernel
	stp = readTwo(tst)
	stp.ExpForce[0] = 0
	drv, err = NewMain(stp, config(tst, "[Run]\nIterations = 1\nUpdate = false\n"))
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	rpt, err = drv.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	chk.Int(tst, "mismatches", rpt.Mismatches, 0)
	chk.Int(tst, "add_kernel: count", rpt.PerIter[1].Count(), 0)
	chk.Array(tst, "force", 1e-17, stp.Force, []float64{0, 0, 0, 0, 0, 0})

	// invalid input
	stp = readTwo(tst)
	stp.Edge[1] = 5
	_, err = NewMain(stp, nil)
	if err == nil {
		tst.Errorf("edge with invalid particle should fail\n")
	}
	io.Pforan("%v\n", err)
	_, err = NewMain(nil, nil)
	if err == nil {
		tst.Errorf("nil step should fail\n")
	}
	stp = readTwo(tst)
	stp.Nktv2p = 0
	_, err = NewMain(stp, nil)
	if err == nil {
		tst.Errorf("nktv2p = 0 should fail\n")
	}
}
