// Copyright 2016 The Godem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package par implements loops over sets of elements (e.g. contacts, particles) where each dataset
// argument is declared with an access mode: Read, ReadWrite or Inc (increment via a mapping)
package par

import (
	"bytes"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Access defines how a kernel accesses one dataset argument
type Access int

const (
	Read      Access = iota // read only; no conflict
	ReadWrite               // exclusive per element; direct access only
	Inc                     // associative increment; targets may be shared through a mapping
)

// String returns the name of the access mode
func (o Access) String() string {
	switch o {
	case Read:
		return "READ"
	case ReadWrite:
		return "RW"
	case Inc:
		return "INC"
	}
	return io.Sf("Access(%d)", int(o))
}

// Set is a fixed-size index set
type Set struct {
	Name  string // name of set; e.g. "nodes", "edges"
	Size  int    // number of elements
	Parts []int  // lengths of partitions; may be empty; otherwise sum(Parts) == Size
}

// NewSet returns a new set
func NewSet(name string, size int, parts []int) (o *Set, err error) {
	if size < 0 {
		return nil, chk.Err("set %q: size must be non-negative; got %d", name, size)
	}
	sum := 0
	for i, n := range parts {
		if n < 0 {
			return nil, chk.Err("set %q: length of partition %d is negative: %d", name, i, n)
		}
		sum += n
	}
	if len(parts) > 0 && sum != size {
		return nil, chk.Err("set %q: sum of partition lengths (%d) must equal size (%d)", name, sum, size)
	}
	o = &Set{Name: name, Size: size}
	if len(parts) > 0 {
		o.Parts = append([]int{}, parts...)
	}
	return
}

// Map maps each element of From to Dim elements of To
type Map struct {
	Name string // name of map
	From *Set   // source set
	To   *Set   // target set
	Dim  int    // arity
	Idx  []int  // [From.Size*Dim] target indices
}

// NewMap returns a new map; all indices must be valid elements of "to"
func NewMap(name string, from, to *Set, dim int, idx []int) (o *Map, err error) {
	if from == nil || to == nil {
		return nil, chk.Err("map %q: sets must not be nil", name)
	}
	if dim < 1 {
		return nil, chk.Err("map %q: dim must be positive; got %d", name, dim)
	}
	if len(idx) != from.Size*dim {
		return nil, chk.Err("map %q: len(idx)=%d is incorrect; %s.Size*dim=%d", name, len(idx), from.Name, from.Size*dim)
	}
	for k, t := range idx {
		if t < 0 || t >= to.Size {
			return nil, chk.Err("map %q: element %d of %s maps to %d which is not in %s [0,%d)", name, k/dim, from.Name, t, to.Name, to.Size)
		}
	}
	return &Map{Name: name, From: from, To: to, Dim: dim, Idx: idx}, nil
}

// Dat holds Dim values per element of a set
type Dat struct {
	Name string    // name of dataset
	Set  *Set      // set this dataset lives on
	Dim  int       // number of values per element
	Data []float64 // [Set.Size*Dim] values
}

// NewDat returns a new dataset wrapping data; data == nil allocates a zeroed array
func NewDat(name string, set *Set, dim int, data []float64) (o *Dat, err error) {
	if set == nil {
		return nil, chk.Err("dat %q: set must not be nil", name)
	}
	if dim < 1 {
		return nil, chk.Err("dat %q: dim must be positive; got %d", name, dim)
	}
	if data == nil {
		data = make([]float64, set.Size*dim)
	}
	if len(data) != set.Size*dim {
		return nil, chk.Err("dat %q: len(data)=%d is incorrect; %s.Size*dim=%d", name, len(data), set.Name, set.Size*dim)
	}
	return &Dat{Name: name, Set: set, Dim: dim, Data: data}, nil
}

// Get returns the values of element e
func (o *Dat) Get(e int) []float64 {
	return o.Data[e*o.Dim : (e+1)*o.Dim]
}

// Zero sets all values to zero
func (o *Dat) Zero() {
	for i := range o.Data {
		o.Data[i] = 0
	}
}

// Decl holds all declared sets, maps and datasets
type Decl struct {
	Sets []*Set
	Maps []*Map
	Dats []*Dat
}

// Set declares a new set
func (o *Decl) Set(name string, size int, parts []int) (s *Set, err error) {
	if s, err = NewSet(name, size, parts); err == nil {
		o.Sets = append(o.Sets, s)
	}
	return
}

// Map declares a new map
func (o *Decl) Map(name string, from, to *Set, dim int, idx []int) (m *Map, err error) {
	if m, err = NewMap(name, from, to, dim, idx); err == nil {
		o.Maps = append(o.Maps, m)
	}
	return
}

// Dat declares a new dataset
func (o *Decl) Dat(name string, set *Set, dim int, data []float64) (d *Dat, err error) {
	if d, err = NewDat(name, set, dim, data); err == nil {
		o.Dats = append(o.Dats, d)
	}
	return
}

// String returns diagnostics about all declarations
func (o *Decl) String() string {
	var b bytes.Buffer
	b.WriteString(io.Sf("  SETS\n"))
	for _, s := range o.Sets {
		b.WriteString(io.Sf("    %-12s size=%-8d nparts=%d\n", s.Name, s.Size, len(s.Parts)))
	}
	b.WriteString(io.Sf("  MAPS\n"))
	for _, m := range o.Maps {
		b.WriteString(io.Sf("    %-12s %s -> %s dim=%d\n", m.Name, m.From.Name, m.To.Name, m.Dim))
	}
	b.WriteString(io.Sf("  DATS\n"))
	for _, d := range o.Dats {
		b.WriteString(io.Sf("    %-12s on %-8s dim=%d\n", d.Name, d.Set.Name, d.Dim))
	}
	return b.String()
}
