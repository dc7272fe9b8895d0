// Copyright 2016 The Godem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"os"

	"github.com/cpmech/godem/dem"
	"github.com/cpmech/godem/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {
	flag.Parse()
	os.Exit(run(os.Args[0], flag.Args()))
}

// run runs the benchmark with the command line arguments <stepfile> [numiter] [cfgfile]
//
//	Output:
//	 status -- 0 on success (even with mismatches); 1 on usage or fatal errors
func run(prog string, args []string) (status int) {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			status = 1
		}
	}()

	// read input parameters
	if len(args) < 1 {
		io.Pf("Usage: %s <stepfile> [numiter] [cfgfile]\n", prog)
		return 1
	}
	fnamepath := args[0]
	cfgpath := ""
	if len(args) > 2 {
		cfgpath = args[2]
	}

	// configuration
	cfg := inp.DefaultConfig()
	if cfgpath != "" {
		var err error
		cfg, err = inp.ReadConfig(cfgpath)
		if err != nil {
			chk.Panic("%v", err)
		}
	}
	if len(args) > 1 {
		cfg.Run.Iterations = io.Atoi(args[1])
	}
	if cfg.Run.Iterations < 0 {
		chk.Panic("number of iterations must be non-negative; got %d", cfg.Run.Iterations)
	}

	// message
	if cfg.Run.Verbose {
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"step filename path", "fnamepath", fnamepath,
			"number of iterations", "numiter", cfg.Run.Iterations,
			"configuration file", "cfgpath", cfgpath,
		))
		io.Pf("%v\n", cfg.Run)
	}

	// input data
	stp, err := inp.ReadStep(fnamepath)
	if err != nil {
		chk.Panic("cannot read step file:\n%v", err)
	}

	// run benchmark
	drv, err := dem.NewMain(stp, cfg)
	if err != nil {
		chk.Panic("setup failed:\n%v", err)
	}
	rpt, err := drv.Run()
	if err != nil {
		chk.Panic("Run failed:\n%v", err)
	}
	io.Pf("\n%v", rpt)
	if rpt.Mismatches > 0 {
		io.PfRed("> %d values do not match the expected results\n", rpt.Mismatches)
		return 0
	}
	io.PfGreen("> all checked values match the expected results\n")
	return 0
}
