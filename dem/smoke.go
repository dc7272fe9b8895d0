// Copyright 2016 The Godem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dem

import (
	"github.com/cpmech/godem/ele"
	"github.com/cpmech/godem/inp"
	"github.com/cpmech/godem/par"
	"github.com/cpmech/gosl/chk"
)

// Smoke runs the smoke kernel once over all contacts; no update or verification is done
//
//	Output:
//	 perNode -- [nnode][3] per particle i: number of contacts, sum of j, sum of (e+1)
//	 perEdge -- [nedge][3] per contact: i, j, e
func Smoke(stp *inp.Step, ex par.Executor) (perNode, perEdge *par.Dat, err error) {
	if stp == nil {
		return nil, nil, chk.Err("step data must not be nil")
	}
	if ex == nil {
		ex = new(par.Seq)
	}
	var d par.Decl
	nodes, err := d.Set("nodes", stp.Nnode, nil)
	if err != nil {
		return
	}
	edges, err := d.Set("edges", stp.Nedge, nil)
	if err != nil {
		return
	}
	edgeMap, err := d.Map("edge_map", edges, nodes, 2, stp.Edge)
	if err != nil {
		return
	}

	// unzip edge map so the kernel knows both endpoints
	nodei, nodej := make([]float64, stp.Nedge), make([]float64, stp.Nedge)
	for e := 0; e < stp.Nedge; e++ {
		nodei[e], nodej[e] = float64(stp.Edge[e*2]), float64(stp.Edge[e*2+1])
	}
	pi, err := d.Dat("nodei", edges, 1, nodei)
	if err != nil {
		return
	}
	pj, err := d.Dat("nodej", edges, 1, nodej)
	if err != nil {
		return
	}
	if perNode, err = d.Dat("per_node", nodes, 3, nil); err != nil {
		return nil, nil, err
	}
	if perEdge, err = d.Dat("per_edge", edges, 3, nil); err != nil {
		return nil, nil, err
	}
	err = ex.Loop("smoke", edges, ele.Smoke(), ele.SmokeArgs(pi, pj, perNode, perEdge, edgeMap)...)
	return
}
