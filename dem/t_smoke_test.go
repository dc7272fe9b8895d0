// Copyright 2016 The Godem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dem

import (
	"math/rand"
	"testing"

	"github.com/cpmech/godem/inp"
	"github.com/cpmech/godem/out"
	"github.com/cpmech/godem/par"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

func Test_smoke01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("smoke01. two particles")

	perNode, perEdge, err := Smoke(readTwo(tst), nil)
	if err != nil {
		tst.Errorf("Smoke failed:\n%v", err)
		return
	}
	chk.Array(tst, "per_node", 1e-17, perNode.Data, []float64{1, 1, 1, 0, 0, 0})
	chk.Array(tst, "per_edge", 1e-17, perEdge.Data, []float64{0, 1, 0})
	chk.Int(tst, "num_per_node_zero", out.CountZeros(perNode.Data), 3)
	chk.Int(tst, "num_per_edge_zero", out.CountZeros(perEdge.Data), 2)

	_, _, err = Smoke(nil, nil)
	if err == nil {
		tst.Errorf("nil step should fail\n")
	}

	// errors are returned without datasets
	stp := readTwo(tst)
	stp.Nedge = 2
	perNode, perEdge, err = Smoke(stp, nil)
	if err == nil {
		tst.Errorf("inconsistent number of edges should fail\n")
		return
	}
	io.Pforan("%v\n", err)
	if perNode != nil || perEdge != nil {
		tst.Errorf("datasets must be nil on error\n")
	}
}

func Test_smoke02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("smoke02. sequential and blocks give the same counts")

	rnd := rand.New(rand.NewSource(33))
	nnode, nedge := 40, 300
	stp := &inp.Step{Nnode: nnode, Nedge: nedge, Edge: make([]int, 2*nedge)}
	for e := 0; e < nedge; e++ {
		stp.Edge[e*2], stp.Edge[e*2+1] = rnd.Intn(nnode), rnd.Intn(nnode)
	}

	// expected values
	count := make([]int, nnode)
	for _, e := range utl.IntRange(nedge) {
		count[stp.Edge[e*2]]++
	}

	a, ea, err := Smoke(stp, new(par.Seq))
	if err != nil {
		tst.Errorf("Smoke failed:\n%v", err)
		return
	}
	b, eb, err := Smoke(stp, par.NewBlocks(4, 7))
	if err != nil {
		tst.Errorf("Smoke failed:\n%v", err)
		return
	}
	chk.Array(tst, "per_node", 1e-17, b.Data, a.Data)
	chk.Array(tst, "per_edge", 1e-17, eb.Data, ea.Data)
	for n := 0; n < nnode; n++ {
		chk.Float64(tst, io.Sf("count[%d]", n), 1e-17, a.Get(n)[0], float64(count[n]))
	}
	for e := 0; e < nedge; e++ {
		chk.Array(tst, "per_edge", 1e-17, ea.Get(e), []float64{float64(stp.Edge[e*2]), float64(stp.Edge[e*2+1]), float64(e)})
	}
}
