// Copyright 2016 The Godem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package par

import (
	"github.com/cpmech/gosl/chk"
)

// Arg is one dataset argument of a loop
type Arg struct {
	Dat *Dat   // dataset
	Idx int    // which of the Map.Dim targets to use; ignored for direct access
	Map *Map   // mapping from loop set to Dat.Set; nil means direct access
	Acc Access // access mode
}

// ArgDirect returns an argument accessing element e of dat when the loop visits e
func ArgDirect(dat *Dat, acc Access) Arg {
	return Arg{Dat: dat, Idx: -1, Acc: acc}
}

// ArgMapped returns an argument accessing element Map.Idx[e*Map.Dim+idx] of dat when the loop visits e
func ArgMapped(dat *Dat, idx int, m *Map, acc Access) Arg {
	return Arg{Dat: dat, Idx: idx, Map: m, Acc: acc}
}

// target returns the element of Dat.Set accessed when the loop visits e
func (o *Arg) target(e int) int {
	if o.Map == nil {
		return e
	}
	return o.Map.Idx[e*o.Map.Dim+o.Idx]
}

// Kernel computes one element e of a loop
//
//	v[k] holds the Dat.Dim values of argument k for element e
type Kernel func(e int, v [][]float64)

// Executor runs kernels over all elements of a set
type Executor interface {
	Loop(name string, set *Set, kernel Kernel, args ...Arg) error
}

// Preparer is implemented by executors that build (and cache) an execution plan for a loop
type Preparer interface {
	Prepare(name string, set *Set, args ...Arg) error
}

// Check checks whether the arguments of a loop over set can be run by independent workers
//
//	Rules:
//	 * direct arguments live on set; mapped arguments go from set to Dat.Set
//	 * ReadWrite is only allowed with direct access
//	 * a dataset incremented through a map is only incremented in that loop
//	 * a dataset written directly is not touched by any other argument
func Check(set *Set, args []Arg) error {
	if set == nil {
		return chk.Err("set must not be nil")
	}
	for k, a := range args {
		if a.Dat == nil {
			return chk.Err("arg %d: dat must not be nil", k)
		}
		if a.Acc != Read && a.Acc != ReadWrite && a.Acc != Inc {
			return chk.Err("arg %d (%s): invalid access mode %v", k, a.Dat.Name, a.Acc)
		}
		if a.Map == nil {
			if a.Dat.Set != set {
				return chk.Err("arg %d (%s): dat lives on %q but loop is over %q", k, a.Dat.Name, a.Dat.Set.Name, set.Name)
			}
			continue
		}
		if a.Map.From != set {
			return chk.Err("arg %d (%s): map %q is from %q but loop is over %q", k, a.Dat.Name, a.Map.Name, a.Map.From.Name, set.Name)
		}
		if a.Map.To != a.Dat.Set {
			return chk.Err("arg %d (%s): map %q is to %q but dat lives on %q", k, a.Dat.Name, a.Map.Name, a.Map.To.Name, a.Dat.Set.Name)
		}
		if a.Idx < 0 || a.Idx >= a.Map.Dim {
			return chk.Err("arg %d (%s): index %d is out of range for map %q with dim %d", k, a.Dat.Name, a.Idx, a.Map.Name, a.Map.Dim)
		}
		if a.Acc == ReadWrite {
			return chk.Err("arg %d (%s): RW access through map %q is not supported; use INC", k, a.Dat.Name, a.Map.Name)
		}
	}
	for k, a := range args {
		incMapped := a.Acc == Inc && a.Map != nil
		if !incMapped && a.Acc != ReadWrite {
			continue
		}
		for l, b := range args {
			if l == k || b.Dat != a.Dat {
				continue
			}
			if incMapped && b.Acc == Inc && b.Map != nil {
				continue
			}
			return chk.Err("args %d and %d: dat %q is accessed as %v and %v in the same loop", k, l, a.Dat.Name, a.Acc, b.Acc)
		}
	}
	return nil
}

// Seq runs all elements in order on the calling goroutine; increments go straight into the datasets
type Seq struct{}

// Loop runs kernel for every element of set
func (o *Seq) Loop(name string, set *Set, kernel Kernel, args ...Arg) (err error) {
	if err = Check(set, args); err != nil {
		return chk.Err("loop %q: %v", name, err)
	}
	v := make([][]float64, len(args))
	for e := 0; e < set.Size; e++ {
		for k := range args {
			v[k] = args[k].Dat.Get(args[k].target(e))
		}
		kernel(e, v)
	}
	return
}
