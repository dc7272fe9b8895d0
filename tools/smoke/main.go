// Copyright 2016 The Godem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// smoke loads a step file, runs one loop with INC and RW arguments and reports how many values are still zero
package main

import (
	"flag"
	"os"

	"github.com/cpmech/godem/dem"
	"github.com/cpmech/godem/inp"
	"github.com/cpmech/godem/out"
	"github.com/cpmech/godem/par"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {
	flag.Parse()
	os.Exit(run(os.Args[0], flag.Args()))
}

// run runs the smoke loop with the command line arguments <stepfile> [workers]; it returns the exit status
func run(prog string, args []string) (status int) {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			status = 1
		}
	}()

	// input
	if len(args) < 1 {
		io.Pf("Usage: %s <stepfile> [workers]\n", prog)
		return 1
	}
	fnamepath := args[0]
	workers := 0
	if len(args) > 1 {
		workers = io.Atoi(args[1])
	}
	io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
		"step filename path", "fnamepath", fnamepath,
		"max number of goroutines (0 => GOMAXPROCS)", "workers", workers,
	))
	stp, err := inp.ReadStep(fnamepath)
	if err != nil {
		chk.Panic("cannot read step file:\n%v", err)
	}

	// run
	ex := par.NewBlocks(workers, 0)
	perNode, perEdge, err := dem.Smoke(stp, ex)
	if err != nil {
		chk.Panic("smoke loop failed:\n%v", err)
	}
	io.Pf("%v", ex)
	out.PrintZeros("per_node", perNode.Data)
	out.PrintZeros("per_edge", perEdge.Data)
	return 0
}
