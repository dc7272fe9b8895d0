// Copyright 2016 The Godem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gopkg.in/gcfg.v1"
)

// executors that can be chosen in the [Run] section
const (
	ExecSeq    = "seq"    // one goroutine; element order
	ExecBlocks = "blocks" // blocks of elements in parallel; INC into per-block buffers
)

// RunConfig holds options controlling one benchmark run
type RunConfig struct {
	Iterations int     // number of iterations; the first one is verified
	Executor   string  // "seq" or "blocks"
	Workers    int     // maximum number of goroutines; 0 => GOMAXPROCS
	Blocks     int     // number of blocks of contacts; 0 => from partitions or 4*workers
	Tol        float64 // absolute tolerance for force and torque checks
	ShearTol   float64 // absolute tolerance for shear checks
	Update     bool    // run the accumulation (update) kernel after the force kernel
	Verbose    bool    // show messages
}

// Config wraps the sections of a .cfg file
type Config struct {
	Run RunConfig
}

// DefaultConfig returns the configuration used when no .cfg file is given
func DefaultConfig() *Config {
	return &Config{Run: RunConfig{
		Iterations: 100,
		Executor:   ExecBlocks,
		Tol:        1e-5,
		ShearTol:   1e-5,
		Update:     true,
		Verbose:    true,
	}}
}

// ReadConfig reads a .cfg (INI-like) file on top of the default configuration
func ReadConfig(fnpath string) (o *Config, err error) {
	o = DefaultConfig()
	if err = gcfg.ReadFileInto(o, fnpath); err != nil {
		return nil, chk.Err("cannot read config file [%s]:\n%v", fnpath, err)
	}
	if err = o.Run.Check(); err != nil {
		return nil, chk.Err("invalid config file [%s]:\n%v", fnpath, err)
	}
	return
}

// ReadConfigString parses configuration data from a string
func ReadConfigString(data string) (o *Config, err error) {
	o = DefaultConfig()
	if err = gcfg.ReadStringInto(o, data); err != nil {
		return nil, err
	}
	if err = o.Run.Check(); err != nil {
		return nil, err
	}
	return
}

// Check checks values
func (o *RunConfig) Check() error {
	if o.Executor != ExecSeq && o.Executor != ExecBlocks {
		return chk.Err("Executor must be %q or %q; got %q", ExecSeq, ExecBlocks, o.Executor)
	}
	if o.Iterations < 0 {
		return chk.Err("Iterations must be non-negative; got %d", o.Iterations)
	}
	if o.Workers < 0 {
		return chk.Err("Workers must be non-negative; got %d", o.Workers)
	}
	if o.Blocks < 0 {
		return chk.Err("Blocks must be non-negative; got %d", o.Blocks)
	}
	if o.Tol < 0 || o.ShearTol < 0 {
		return chk.Err("tolerances must be non-negative; got Tol=%g ShearTol=%g", o.Tol, o.ShearTol)
	}
	return nil
}

// String returns a table with the run configuration
func (o RunConfig) String() string {
	return io.ArgsTable("RUN CONFIGURATION",
		"number of iterations", "Iterations", o.Iterations,
		"executor: seq or blocks", "Executor", o.Executor,
		"max number of goroutines", "Workers", o.Workers,
		"number of blocks of contacts", "Blocks", o.Blocks,
		"tolerance: force and torque", "Tol", o.Tol,
		"tolerance: shear", "ShearTol", o.ShearTol,
		"run update kernel", "Update", o.Update,
		"show messages", "Verbose", o.Verbose,
	)
}
