// Copyright 2016 The Godem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package par

import (
	"bytes"
	"runtime"
	"sort"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/exascience/pargo/parallel"
)

// Blocks splits the loop set into blocks and runs blocks in parallel
//
// Each dataset incremented through a map gets one buffer per block holding only the
// targets touched by the elements of that block (local numbering). After all blocks are
// done, buffers are added into the dataset target by target, in block order. Thus, for a
// given plan, the results do not depend on how goroutines are scheduled.
//
// Plans are cached by loop name; loops with the same name must not run concurrently.
type Blocks struct {
	Workers int // maximum number of goroutines; 0 => GOMAXPROCS
	Nblocks int // number of blocks when the set has no partitions; 0 => 4*workers

	mu    sync.Mutex
	plans map[string]*Plan
}

// NewBlocks returns a new parallel executor
func NewBlocks(workers, nblocks int) *Blocks {
	return &Blocks{Workers: workers, Nblocks: nblocks, plans: make(map[string]*Plan)}
}

// Plan holds the block decomposition of one loop and the buffers for its increments
type Plan struct {
	Name   string   // name of loop
	Set    *Set     // loop set
	Ranges [][2]int // [nblocks] {start, end} elements of each block
	Incs   []*Dat   // datasets incremented through maps

	slot  []int     // [nargs] index in Incs or -1
	local [][]int   // [nargs][Set.Size] local index of the target within its block; nil if slot < 0
	bufs  []*incBuf // [ninc] buffers
	acc   []Access  // [nargs] access modes when plan was built
	dats  []*Dat    // [nargs] datasets when plan was built
	maps  []*Map    // [nargs] maps when plan was built
}

// incBuf holds the per-block buffers of one incremented dataset
type incBuf struct {
	dat     *Dat
	partial [][]float64 // [nblocks][nlocal*dim] increments of the touched targets

	// reduction: targets[i] receives partial[blk[q]][loc[q]] for q in [start[i], start[i+1])
	targets []int
	start   []int
	blk     []int
	loc     []int
}

// Nblocks returns the number of blocks
func (o *Plan) Nblocks() int {
	return len(o.Ranges)
}

// BufferLen returns the total number of values in the block buffers
func (o *Plan) BufferLen() (n int) {
	for _, buf := range o.bufs {
		for _, p := range buf.partial {
			n += len(p)
		}
	}
	return
}

// workers returns the maximum number of goroutines
func (o *Blocks) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Prepare builds and caches the plan of a loop
func (o *Blocks) Prepare(name string, set *Set, args ...Arg) (err error) {
	_, err = o.plan(name, set, args)
	return
}

// Plan returns the cached plan of a loop; nil if not prepared yet
func (o *Blocks) Plan(name string) *Plan {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.plans[name]
}

// Loop runs kernel for every element of set
func (o *Blocks) Loop(name string, set *Set, kernel Kernel, args ...Arg) (err error) {

	// plan
	p, err := o.plan(name, set, args)
	if err != nil {
		return
	}
	nb := p.Nblocks()
	if nb == 0 {
		return
	}

	// compute blocks
	parallel.Range(0, nb, o.batches(nb), func(low, high int) {
		v := make([][]float64, len(args))
		for b := low; b < high; b++ {
			for _, buf := range p.bufs {
				clear(buf.partial[b])
			}
			for e := p.Ranges[b][0]; e < p.Ranges[b][1]; e++ {
				for k := range args {
					if s := p.slot[k]; s >= 0 {
						dim, l := p.Incs[s].Dim, p.local[k][e]
						v[k] = p.bufs[s].partial[b][l*dim : (l+1)*dim]
					} else {
						v[k] = args[k].Dat.Get(args[k].target(e))
					}
				}
				kernel(e, v)
			}
		}
	})

	// add increments of touched targets in block order
	for _, buf := range p.bufs {
		n := len(buf.targets)
		if n == 0 {
			continue
		}
		dim := buf.dat.Dim
		parallel.Range(0, n, o.batches(n), func(low, high int) {
			for i := low; i < high; i++ {
				dst := buf.dat.Get(buf.targets[i])
				for q := buf.start[i]; q < buf.start[i+1]; q++ {
					src := buf.partial[buf.blk[q]][buf.loc[q]*dim:]
					for c := 0; c < dim; c++ {
						dst[c] += src[c]
					}
				}
			}
		})
	}
	return
}

// String returns diagnostics about all cached plans
func (o *Blocks) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	var b bytes.Buffer
	b.WriteString(io.Sf("  PLANS (workers=%d)\n", o.workers()))
	for _, p := range o.plans {
		b.WriteString(io.Sf("    %-12s over %-8s nblocks=%d ninc=%d nbuffer=%d\n", p.Name, p.Set.Name, p.Nblocks(), len(p.Incs), p.BufferLen()))
	}
	return b.String()
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// batches returns the number of batches for parallel.Range over n items
func (o *Blocks) batches(n int) int {
	w := o.workers()
	if w > n {
		return n
	}
	return w
}

// plan returns the cached plan or builds a new one if the loop arguments have changed
func (o *Blocks) plan(name string, set *Set, args []Arg) (p *Plan, err error) {
	if err = Check(set, args); err != nil {
		return nil, chk.Err("loop %q: %v", name, err)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.plans == nil {
		o.plans = make(map[string]*Plan)
	}
	if p = o.plans[name]; p != nil && p.matches(set, args) {
		return
	}
	p = newPlan(name, set, args, o.ranges(set))
	o.plans[name] = p
	return
}

// ranges splits set into blocks; partitions of the set are used when available
func (o *Blocks) ranges(set *Set) (r [][2]int) {
	if len(set.Parts) > 1 {
		start := 0
		for _, n := range set.Parts {
			if n > 0 {
				r = append(r, [2]int{start, start + n})
			}
			start += n
		}
		return
	}
	nb := o.Nblocks
	if nb < 1 {
		nb = 4 * o.workers()
	}
	if nb > set.Size {
		nb = set.Size
	}
	for b := 0; b < nb; b++ {
		r = append(r, [2]int{b * set.Size / nb, (b + 1) * set.Size / nb})
	}
	return
}

// newPlan numbers the targets of each block locally and allocates the buffers of a new plan
func newPlan(name string, set *Set, args []Arg, ranges [][2]int) (o *Plan) {
	o = &Plan{Name: name, Set: set, Ranges: ranges}
	o.slot = make([]int, len(args))
	o.local = make([][]int, len(args))
	o.acc = make([]Access, len(args))
	o.dats = make([]*Dat, len(args))
	o.maps = make([]*Map, len(args))
	index := make(map[*Dat]int)
	for k, a := range args {
		o.slot[k] = -1
		o.acc[k] = a.Acc
		o.dats[k] = a.Dat
		o.maps[k] = a.Map
		if a.Acc != Inc || a.Map == nil {
			continue
		}
		s, ok := index[a.Dat]
		if !ok {
			s = len(o.Incs)
			index[a.Dat] = s
			o.Incs = append(o.Incs, a.Dat)
			o.bufs = append(o.bufs, &incBuf{dat: a.Dat, partial: make([][]float64, len(ranges))})
		}
		o.slot[k] = s
		o.local[k] = make([]int, set.Size)
	}
	if len(o.Incs) == 0 {
		return
	}

	// local numbering of touched targets
	type contrib struct{ t, b, l int }
	contribs := make([][]contrib, len(o.Incs))
	for b, r := range ranges {
		touched := make([]map[int]int, len(o.Incs))
		for s := range touched {
			touched[s] = make(map[int]int)
		}
		for e := r[0]; e < r[1]; e++ {
			for k := range args {
				s := o.slot[k]
				if s < 0 {
					continue
				}
				t := args[k].target(e)
				l, ok := touched[s][t]
				if !ok {
					l = len(touched[s])
					touched[s][t] = l
					contribs[s] = append(contribs[s], contrib{t, b, l})
				}
				o.local[k][e] = l
			}
		}
		for s, buf := range o.bufs {
			buf.partial[b] = make([]float64, len(touched[s])*buf.dat.Dim)
		}
	}

	// reduction lists: by target, then in block order
	for s, buf := range o.bufs {
		cs := contribs[s]
		sort.SliceStable(cs, func(i, j int) bool { return cs[i].t < cs[j].t })
		buf.blk = make([]int, len(cs))
		buf.loc = make([]int, len(cs))
		for q, c := range cs {
			if q == 0 || c.t != cs[q-1].t {
				buf.targets = append(buf.targets, c.t)
				buf.start = append(buf.start, q)
			}
			buf.blk[q], buf.loc[q] = c.b, c.l
		}
		buf.start = append(buf.start, len(cs))
	}
	return
}

// matches tells whether this plan was built for the same set and arguments
func (o *Plan) matches(set *Set, args []Arg) bool {
	if o.Set != set || len(o.dats) != len(args) {
		return false
	}
	for k, a := range args {
		if o.dats[k] != a.Dat || o.acc[k] != a.Acc || o.maps[k] != a.Map {
			return false
		}
	}
	return true
}
