// Copyright 2016 The Godem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"bytes"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_step01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("step01. two particles, one contact")

	stp, err := ReadStep("data/two.step")
	if err != nil {
		tst.Errorf("ReadStep failed:\n%v", err)
		return
	}

	chk.Float64(tst, "dt", 1e-17, stp.Dt, 0.001)
	chk.Float64(tst, "nktv2p", 1e-17, stp.Nktv2p, 1)
	chk.Int(tst, "ntype", stp.Ntype, 1)
	chk.Array(tst, "yeff", 1e-17, stp.Yeff, []float64{1})
	chk.Array(tst, "coeffFrict", 1e-17, stp.CoeffFrict, []float64{1})
	chk.Int(tst, "nnode", stp.Nnode, 2)
	chk.Array(tst, "x", 1e-17, stp.X, []float64{0, 0, 0, 1.5, 0, 0})
	chk.Array(tst, "radius", 1e-17, stp.Radius, []float64{1, 1})
	chk.Ints(tst, "type", stp.Type, []int{0, 0})
	chk.Int(tst, "nedge", stp.Nedge, 1)
	chk.Ints(tst, "edge", stp.Edge, []int{0, 1})
	chk.Ints(tst, "partitions", stp.Partitions, []int{1})
	chk.Int(tst, "npart", stp.Npart(), 1)
	chk.Array(tst, "expected force", 1e-15, stp.ExpForce, []float64{-1.0 / 3.0, 0, 0, 1.0 / 3.0, 0, 0})
	chk.Array(tst, "expected shear", 1e-17, stp.ExpShear, []float64{0, 0, 0})
}

func Test_step02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("step02. errors")

	_, err := ReadStep("data/not-there.step")
	if err == nil {
		tst.Errorf("missing file should fail\n")
		return
	}
	io.Pforan("%v\n", err)

	_, err = ReadStep("data/truncated.step")
	if err == nil {
		tst.Errorf("truncated file should fail\n")
		return
	}
	io.Pforan("%v\n", err)
	if !strings.Contains(err.Error(), "expected_force") {
		tst.Errorf("error should name the array being read: %v\n", err)
	}

	_, err = ReadStep("data/badtoken.step")
	if err == nil {
		tst.Errorf("bad token should fail\n")
		return
	}
	io.Pforan("%v\n", err)

	_, err = DecodeStep(strings.NewReader("0.001 1 -1"))
	if err == nil {
		tst.Errorf("negative ntype should fail\n")
	}

	// ntype*ntype would overflow
	_, err = DecodeStep(strings.NewReader("0.001 1 4294967296 1 1 1 1"))
	if err == nil {
		tst.Errorf("huge ntype should fail\n")
	}
	io.Pforan("%v\n", err)
	_, err = DecodeStep(strings.NewReader("0.001 1 46341"))
	if err == nil {
		tst.Errorf("ntype with ntype*ntype > MaxCount should fail\n")
	}

	// huge counts in a truncated file: end of input is reported
	_, err = DecodeStep(strings.NewReader("0.001 1 1 1 1 1 1 700000000 0 0"))
	if err == nil {
		tst.Errorf("truncated input should fail\n")
		return
	}
	io.Pforan("%v\n", err)
	if !strings.Contains(err.Error(), "reading x: got 2 of 2100000000") {
		tst.Errorf("error should report end of input while reading x: %v\n", err)
	}
	_, err = DecodeStep(strings.NewReader("0.001 1 1 1 1 1 1 800000000"))
	if err == nil {
		tst.Errorf("nnode with 3*nnode > MaxCount should fail\n")
	}
}

func Test_step03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("step03. write and read back")

	rnd := rand.New(rand.NewSource(1234))
	stp := randomStep(rnd, 2, 7, 11)

	var buf bytes.Buffer
	err := stp.Write(&buf)
	if err != nil {
		tst.Errorf("Write failed:\n%v", err)
		return
	}
	res, err := DecodeStep(&buf)
	if err != nil {
		tst.Errorf("DecodeStep failed:\n%v", err)
		return
	}

	chk.Int(tst, "nnode", res.Nnode, 7)
	chk.Int(tst, "nedge", res.Nedge, 11)
	chk.Int(tst, "len(x)", len(res.X), 21)
	chk.Int(tst, "len(omega)", len(res.Omega), 21)
	chk.Int(tst, "len(mass)", len(res.Mass), 7)
	chk.Int(tst, "len(edge)", len(res.Edge), 22)
	chk.Int(tst, "len(shear)", len(res.Shear), 33)
	chk.Int(tst, "len(expected torque)", len(res.ExpTorque), 21)
	chk.Array(tst, "geff", 1e-17, res.Geff, stp.Geff)
	chk.Array(tst, "v", 1e-17, res.V, stp.V)
	chk.Ints(tst, "type", res.Type, stp.Type)
	chk.Ints(tst, "edge", res.Edge, stp.Edge)
	chk.Array(tst, "shear", 1e-17, res.Shear, stp.Shear)

	fn := filepath.Join(tst.TempDir(), "random.step")
	err = WriteStep(fn, stp)
	if err != nil {
		tst.Errorf("WriteStep failed:\n%v", err)
		return
	}
	res, err = ReadStep(fn)
	if err != nil {
		tst.Errorf("ReadStep failed:\n%v", err)
		return
	}
	chk.Array(tst, "expected shear", 1e-17, res.ExpShear, stp.ExpShear)
}

func Test_config01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("config01")

	cfg, err := ReadConfigString(`
[Run]
Iterations = 7
Executor = seq
Workers = 3
Tol = 1e-8
Update = false
`)
	if err != nil {
		tst.Errorf("ReadConfigString failed:\n%v", err)
		return
	}
	io.Pforan("%v\n", cfg.Run)
	chk.Int(tst, "iterations", cfg.Run.Iterations, 7)
	chk.Int(tst, "workers", cfg.Run.Workers, 3)
	chk.Int(tst, "blocks", cfg.Run.Blocks, 0)
	chk.Float64(tst, "tol", 1e-20, cfg.Run.Tol, 1e-8)
	chk.Float64(tst, "shear tol (default)", 1e-20, cfg.Run.ShearTol, 1e-5)
	if cfg.Run.Executor != ExecSeq {
		tst.Errorf("executor should be %q\n", ExecSeq)
	}
	if cfg.Run.Update {
		tst.Errorf("update should be off\n")
	}

	_, err = ReadConfigString("[Run]\nExecutor = gpu\n")
	if err == nil {
		tst.Errorf("unknown executor should fail\n")
	}
	_, err = ReadConfigString("[Run]\nBlocks = -2\n")
	if err == nil {
		tst.Errorf("negative number of blocks should fail\n")
	}
	_, err = ReadConfig("data/not-there.cfg")
	if err == nil {
		tst.Errorf("missing file should fail\n")
	}
}

// randomStep generates a step with random values and valid indices
func randomStep(rnd *rand.Rand, ntype, nnode, nedge int) (o *Step) {
	fill := func(n int) (v []float64) {
		v = make([]float64, n)
		for i := range v {
			v[i] = rnd.Float64()
		}
		return
	}
	o = &Step{Dt: 1e-5, Nktv2p: 1, Ntype: ntype, Nnode: nnode, Nedge: nedge}
	o.Yeff, o.Geff, o.Betaeff, o.CoeffFrict = fill(ntype*ntype), fill(ntype*ntype), fill(ntype*ntype), fill(ntype*ntype)
	o.X, o.V, o.Omega = fill(nnode*3), fill(nnode*3), fill(nnode*3)
	o.Radius, o.Mass = fill(nnode), fill(nnode)
	o.Type = make([]int, nnode)
	for i := range o.Type {
		o.Type[i] = rnd.Intn(ntype)
	}
	o.Force, o.Torque = fill(nnode*3), fill(nnode*3)
	o.Edge = make([]int, nedge*2)
	for e := 0; e < nedge; e++ {
		i := rnd.Intn(nnode)
		j := (i + 1 + rnd.Intn(nnode-1)) % nnode
		o.Edge[e*2], o.Edge[e*2+1] = i, j
	}
	o.Shear = fill(nedge * 3)
	o.Partitions = []int{nedge}
	o.ExpForce, o.ExpTorque, o.ExpShear = fill(nnode*3), fill(nnode*3), fill(nedge*3)
	return
}

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}
