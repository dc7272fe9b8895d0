// Copyright 2016 The Godem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from step (.step) files and
// run configuration (.cfg) files
package inp

import (
	"bufio"
	goio "io"
	"os"
	"strconv"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Step holds all data of one serialized test case: constants, particles (nodes), contacts (edges)
// and the expected results after one pairwise step
type Step struct {

	// constants
	Dt     float64 // time step
	Nktv2p float64 // force*distance/volume to pressure conversion factor
	Ntype  int     // number of material types

	// material tables [ntype*ntype] row-major, indexed by (typei, typej)
	Yeff       []float64 // effective Young's modulus
	Geff       []float64 // effective shear modulus
	Betaeff    []float64 // effective damping coefficient
	CoeffFrict []float64 // friction coefficient

	// nodes
	Nnode  int       // number of particles
	X      []float64 // [nnode*3] positions
	V      []float64 // [nnode*3] velocities
	Omega  []float64 // [nnode*3] angular velocities
	Radius []float64 // [nnode] radii
	Mass   []float64 // [nnode] masses
	Type   []int     // [nnode] material types
	Force  []float64 // [nnode*3] forces
	Torque []float64 // [nnode*3] torques

	// edges
	Nedge int       // number of contacts
	Edge  []int     // [nedge*2] (i,j) pairs
	Shear []float64 // [nedge*3] shear history

	// partition lengths of the edge set; one partition by default
	Partitions []int

	// expected results
	ExpForce  []float64 // [nnode*3]
	ExpTorque []float64 // [nnode*3]
	ExpShear  []float64 // [nedge*3]
}

// Npart returns the number of partitions of the edge set
func (o *Step) Npart() int {
	return len(o.Partitions)
}

// ReadStep reads a step file
//
//	Note: the format is positional; only element counts are checked
func ReadStep(fnpath string) (o *Step, err error) {
	f, err := os.Open(fnpath)
	if err != nil {
		return nil, chk.Err("cannot open step file [%s]:\n%v", fnpath, err)
	}
	defer f.Close()
	o, err = DecodeStep(f)
	if err != nil {
		return nil, chk.Err("cannot read step file [%s]:\n%v", fnpath, err)
	}
	return
}

// DecodeStep unpickles step data from r
func DecodeStep(r goio.Reader) (o *Step, err error) {

	o = new(Step)
	s := newScanner(r)

	// constants
	if o.Dt, err = s.float("dt"); err != nil {
		return nil, err
	}
	if o.Nktv2p, err = s.float("nktv2p"); err != nil {
		return nil, err
	}
	if o.Ntype, err = s.count("ntype", 1); err != nil {
		return nil, err
	}
	if o.Ntype > 0 && o.Ntype > MaxCount/o.Ntype {
		return nil, chk.Err("ntype: ntype*ntype must not exceed %d; got ntype=%d", MaxCount, o.Ntype)
	}
	nn := o.Ntype * o.Ntype
	for _, a := range []struct {
		name string
		v    *[]float64
	}{{"yeff", &o.Yeff}, {"geff", &o.Geff}, {"betaeff", &o.Betaeff}, {"coeffFrict", &o.CoeffFrict}} {
		if *a.v, err = s.floats(a.name, nn); err != nil {
			return nil, err
		}
	}

	// nodes
	if o.Nnode, err = s.count("nnode", 3); err != nil {
		return nil, err
	}
	n := o.Nnode
	for _, a := range []struct {
		name string
		v    *[]float64
		size int
	}{{"x", &o.X, n * 3}, {"v", &o.V, n * 3}, {"omega", &o.Omega, n * 3}, {"radius", &o.Radius, n}, {"mass", &o.Mass, n}} {
		if *a.v, err = s.floats(a.name, a.size); err != nil {
			return nil, err
		}
	}
	if o.Type, err = s.ints("type", n); err != nil {
		return nil, err
	}
	if o.Force, err = s.floats("force", n*3); err != nil {
		return nil, err
	}
	if o.Torque, err = s.floats("torque", n*3); err != nil {
		return nil, err
	}

	// edges
	if o.Nedge, err = s.count("nedge", 3); err != nil {
		return nil, err
	}
	if o.Edge, err = s.ints("edge", o.Nedge*2); err != nil {
		return nil, err
	}
	if o.Shear, err = s.floats("shear", o.Nedge*3); err != nil {
		return nil, err
	}
	o.Partitions = []int{o.Nedge}

	// expected results
	if o.ExpForce, err = s.floats("expected_force", n*3); err != nil {
		return nil, err
	}
	if o.ExpTorque, err = s.floats("expected_torque", n*3); err != nil {
		return nil, err
	}
	if o.ExpShear, err = s.floats("expected_shear", o.Nedge*3); err != nil {
		return nil, err
	}
	return
}

// WriteStep writes step file
func WriteStep(fnpath string, o *Step) (err error) {
	f, err := os.Create(fnpath)
	if err != nil {
		return chk.Err("cannot create step file [%s]:\n%v", fnpath, err)
	}
	err = o.Write(f)
	if e := f.Close(); err == nil {
		err = e
	}
	return
}

// Write pickles step data into w using the same positional order read by DecodeStep
func (o *Step) Write(w goio.Writer) (err error) {
	b := bufio.NewWriter(w)
	floats := func(v []float64) {
		for i, x := range v {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
		}
		b.WriteByte('\n')
	}
	ints := func(v []int) {
		for i, x := range v {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.Itoa(x))
		}
		b.WriteByte('\n')
	}
	b.WriteString(io.Sf("%s\n", strconv.FormatFloat(o.Dt, 'g', -1, 64)))
	b.WriteString(io.Sf("%s\n", strconv.FormatFloat(o.Nktv2p, 'g', -1, 64)))
	b.WriteString(io.Sf("%d\n", o.Ntype))
	floats(o.Yeff)
	floats(o.Geff)
	floats(o.Betaeff)
	floats(o.CoeffFrict)
	b.WriteString(io.Sf("%d\n", o.Nnode))
	floats(o.X)
	floats(o.V)
	floats(o.Omega)
	floats(o.Radius)
	floats(o.Mass)
	ints(o.Type)
	floats(o.Force)
	floats(o.Torque)
	b.WriteString(io.Sf("%d\n", o.Nedge))
	ints(o.Edge)
	floats(o.Shear)
	floats(o.ExpForce)
	floats(o.ExpTorque)
	floats(o.ExpShear)
	return b.Flush()
}

// scanner reads whitespace separated numbers ///////////////////////////////////////////////////////

// MaxCount is the largest number of values of one array in a step file
const MaxCount = 1<<31 - 1

// chunk is the largest number of values allocated before they are read
const chunk = 4096

type scanner struct {
	sc  *bufio.Scanner
	pos int // number of tokens consumed
}

func newScanner(r goio.Reader) *scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	return &scanner{sc: sc}
}

func (o *scanner) next(name string, i, n int) (tok string, err error) {
	if !o.sc.Scan() {
		if err = o.sc.Err(); err != nil {
			return "", chk.Err("%s: %v", name, err)
		}
		return "", chk.Err("unexpected end of input reading %s: got %d of %d values", name, i, n)
	}
	o.pos++
	return o.sc.Text(), nil
}

func (o *scanner) float(name string) (x float64, err error) {
	tok, err := o.next(name, 0, 1)
	if err != nil {
		return
	}
	x, err = strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, chk.Err("%s: token #%d %q is not a number", name, o.pos, tok)
	}
	return
}

// count reads a non-negative count; mult*count must not exceed MaxCount
func (o *scanner) count(name string, mult int) (n int, err error) {
	tok, err := o.next(name, 0, 1)
	if err != nil {
		return
	}
	n, err = strconv.Atoi(tok)
	if err != nil {
		return 0, chk.Err("%s: token #%d %q is not an integer", name, o.pos, tok)
	}
	if n < 0 {
		return 0, chk.Err("%s: count must be non-negative; got %d", name, n)
	}
	if n > MaxCount/mult {
		return 0, chk.Err("%s: count must not exceed %d; got %d", name, MaxCount/mult, n)
	}
	return
}

// floats reads n values; memory grows as values arrive
func (o *scanner) floats(name string, n int) (v []float64, err error) {
	v = make([]float64, 0, min(n, chunk))
	var tok string
	var x float64
	for i := 0; i < n; i++ {
		if tok, err = o.next(name, i, n); err != nil {
			return nil, err
		}
		if x, err = strconv.ParseFloat(tok, 64); err != nil {
			return nil, chk.Err("%s[%d]: token #%d %q is not a number", name, i, o.pos, tok)
		}
		v = append(v, x)
	}
	return
}

// ints reads n integers; memory grows as values arrive
func (o *scanner) ints(name string, n int) (v []int, err error) {
	v = make([]int, 0, min(n, chunk))
	var tok string
	var x int
	for i := 0; i < n; i++ {
		if tok, err = o.next(name, i, n); err != nil {
			return nil, err
		}
		if x, err = strconv.Atoi(tok); err != nil {
			return nil, chk.Err("%s[%d]: token #%d %q is not an integer", name, i, o.pos, tok)
		}
		v = append(v, x)
	}
	return
}
